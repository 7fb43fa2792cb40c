package state

import (
	"halfearth/internal/ids"
	"halfearth/internal/project"
)

// CycleReport summarizes what changed across a finished 5-year cycle,
// produced by diffing a snapshot taken at FinishCycle's start against the
// state after its changes are folded in.
type CycleReport struct {
	ResearchPointsGained int
	PoliticalCapital     int
	MixSharesChanged     []ids.Id
	LevelsChanged        map[ids.Id]int
}

// cycleSnapshot is the minimal set of fields diff() compares.
type cycleSnapshot struct {
	researchPoints   int
	politicalCapital int
	levels           map[ids.Id]int
}

func (s *State) snapshot() cycleSnapshot {
	levels := map[ids.Id]int{}
	s.Projects.Each(func(p *project.Project) bool {
		levels[p.Id] = p.Level
		return true
	})
	return cycleSnapshot{
		researchPoints:   s.ResearchPoints,
		politicalCapital: s.PoliticalCapital,
		levels:           levels,
	}
}

// diff is a pure function comparing two snapshots, producing the report a
// caller can show the player at a cycle boundary.
func diff(from, to cycleSnapshot) CycleReport {
	report := CycleReport{
		ResearchPointsGained: to.researchPoints - from.researchPoints,
		PoliticalCapital:     to.politicalCapital - from.politicalCapital,
		LevelsChanged:        map[ids.Id]int{},
	}
	for id, level := range to.levels {
		if from.levels[id] != level {
			report.LevelsChanged[id] = level
		}
	}
	return report
}

// FinishCycle runs every-5-years bookkeeping: queued project
// upgrades/downgrades and process mix-share changes are applied, research
// points are collected from Research projects, required majorities are
// re-evaluated against current NPC support, and a CycleReport is returned
// comparing state before and after.
func (s *State) FinishCycle() CycleReport {
	before := s.snapshot()

	for projectId, direction := range s.QueuedUpgrades {
		p, ok := s.Projects.Get(projectId)
		if !ok {
			continue
		}
		s.applyQueuedLevelChange(p, direction)
	}
	s.QueuedUpgrades = map[ids.Id]int{}

	for processId, delta := range s.QueuedMixShares {
		if p, ok := s.Processes.Get(processId); ok {
			p.MixShare += delta
		}
	}
	s.QueuedMixShares = map[ids.Id]int{}

	s.Projects.Each(func(p *project.Project) bool {
		if p.Kind == project.TypeResearch && p.Status == project.Active {
			s.ResearchPoints++
		}
		return true
	})

	s.recomputeRequiredMajorities()

	after := s.snapshot()
	return diff(before, after)
}

func (s *State) applyQueuedLevelChange(p *project.Project, direction int) {
	var ch project.Changes
	var ok bool
	if direction > 0 {
		ch, ok = p.Upgrade()
	} else if direction < 0 {
		ch, ok = p.Downgrade()
	}
	if !ok {
		return
	}
	s.foldProjectChanges(p, ch)
}

func (s *State) recomputeRequiredMajorities() {
	s.Projects.Each(func(p *project.Project) bool {
		opposers := s.unlockedNonAllyCount(p.Opposers)
		supporters := s.unlockedCount(p.Supporters)
		p.UpdateRequiredMajority(opposers, supporters)
		return true
	})
}

func (s *State) unlockedCount(npcIds []ids.Id) int {
	count := 0
	for _, id := range npcIds {
		if n, ok := s.NPCs.Get(id); ok && !n.Locked {
			count++
		}
	}
	return count
}

func (s *State) unlockedNonAllyCount(npcIds []ids.Id) int {
	count := 0
	for _, id := range npcIds {
		n, ok := s.NPCs.Get(id)
		if !ok || n.Locked {
			continue
		}
		if !n.IsAlly() {
			count++
		}
	}
	return count
}
