package state

import (
	"halfearth/internal/ids"
	"halfearth/internal/project"
)

// StartProject transitions an Inactive or Halted project into Building.
// Unknown ids are a programmer error and are ignored rather than
// propagated as an exception, per the engine's fail-quiet contract for
// unknown-id lookups.
func (s *State) StartProject(projectId ids.Id) {
	if p, ok := s.Projects.Get(projectId); ok {
		p.Start()
	}
}

// StopProject halts or deactivates a project, unapplying its active
// effects and reversing its relationship bumps.
func (s *State) StopProject(projectId ids.Id) {
	p, ok := s.Projects.Get(projectId)
	if !ok {
		return
	}
	ch := p.Stop()
	s.foldProjectChanges(p, project.Changes{RemoveEffects: ch.RemoveEffects})
	for _, i := range ch.SupporterDeltas {
		if i < len(p.Supporters) {
			s.AddNPCRelationship(p.Supporters[i], -project.RelationshipChangeAmount)
		}
	}
	for _, i := range ch.OpposerDeltas {
		if i < len(p.Opposers) {
			s.AddNPCRelationship(p.Opposers[i], project.RelationshipChangeAmount)
		}
	}
}

// SetProjectPoints assigns research/labor points to a project, recomputing
// its years-to-completion estimate.
func (s *State) SetProjectPoints(projectId ids.Id, points int) {
	if p, ok := s.Projects.Get(projectId); ok {
		p.SetPoints(points)
	}
}

// UpgradeProject applies the next upgrade level immediately for a Policy;
// for any other project kind the change is deferred to the next cycle
// boundary via QueuedUpgrades.
func (s *State) UpgradeProject(projectId ids.Id) {
	p, ok := s.Projects.Get(projectId)
	if !ok {
		return
	}
	if p.Kind == project.TypePolicy {
		ch, ok := p.Upgrade()
		if ok {
			s.foldProjectChanges(p, ch)
		}
		return
	}
	s.QueuedUpgrades[projectId] = 1
}

// DowngradeProject reverts to the previous upgrade level immediately for a
// Policy; otherwise the change is deferred to the next cycle boundary.
func (s *State) DowngradeProject(projectId ids.Id) {
	p, ok := s.Projects.Get(projectId)
	if !ok {
		return
	}
	if p.Kind == project.TypePolicy {
		ch, ok := p.Downgrade()
		if ok {
			s.foldProjectChanges(p, ch)
		}
		return
	}
	s.QueuedUpgrades[projectId] = -1
}

// ChangeProcessMixShare queues a delta to processId's MixShare in
// QueuedMixShares; FinishCycle applies it at the next cycle boundary.
// The caller is responsible for ensuring the twenty-mix invariant (the sum across
// every process sharing an Output stays at 20) holds across the whole
// change it is making, typically by pairing a positive delta on one
// process with an equal negative delta on another.
func (s *State) ChangeProcessMixShare(processId ids.Id, delta int) {
	if _, ok := s.Processes.Get(processId); ok {
		s.QueuedMixShares[processId] += delta
	}
}

// ChangePoliticalCapital adjusts the player's political capital balance,
// which may go negative.
func (s *State) ChangePoliticalCapital(delta int) {
	s.PoliticalCapital += delta
}

// ApplyDisaster applies an immediate outlook shock to a region, e.g. from
// an externally-driven disaster event.
func (s *State) ApplyDisaster(regionId ids.Id, outlookDelta float32) {
	s.AddRegionOutlook(regionId, outlookDelta)
}

// ApplyEvent applies every effect of a content-defined event directly,
// bypassing the roll/occurrence machinery. regionId is ids.Nil for a
// global event.
func (s *State) ApplyEvent(eventId ids.Id, regionId ids.Id) {
	ev, ok := s.EventPool.Events.Get(eventId)
	if !ok {
		return
	}
	for _, e := range ev.Effects {
		e.Apply(s, regionId)
	}
}
