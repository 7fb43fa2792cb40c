package project

import "halfearth/internal/eventdsl"

// RelationshipChangeAmount is the magnitude of the NPC relationship bump
// applied to a project's supporters (positive) and opposers (negative)
// when it completes, and reversed when it stops.
const RelationshipChangeAmount = 1.0

// RelationshipDelta names one NPC relationship adjustment produced by a
// lifecycle transition.
type RelationshipDelta struct {
	NPCIndex int // index into Supporters/Opposers, resolved by the caller
	Amount   float32
}

// Changes describes everything a lifecycle operation wants folded into
// state: effects to remove (unapply), effects to add (apply), and
// relationship deltas. The caller (State) is responsible for performing
// the actual mutation via eventdsl.Effect.Apply/Unapply.
type Changes struct {
	Completed        bool
	RemoveEffects    []eventdsl.Effect
	AddEffects       []eventdsl.Effect
	SupporterDeltas  []int // indices into Supporters
	OpposerDeltas    []int // indices into Opposers
}

// Start transitions an Inactive or Halted project into Building.
func (p *Project) Start() {
	p.Status = Building
}

// Stop halts or deactivates a project, yielding the effects that must be
// unapplied and the relationship bumps that must be reversed. If the
// project has never progressed it returns to Inactive; otherwise Halted.
func (p *Project) Stop() Changes {
	var ch Changes
	if p.Status == Active || p.Status == Finished {
		ch.RemoveEffects = append(ch.RemoveEffects, p.ActiveEffects()...)
		ch.RemoveEffects = append(ch.RemoveEffects, p.ActiveOutcomeEffects()...)
		ch.SupporterDeltas = indices(len(p.Supporters))
		ch.OpposerDeltas = indices(len(p.Opposers))
	}
	if p.Progress > 0 {
		p.Status = Halted
	} else {
		p.Status = Inactive
	}
	return ch
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Advance runs one year of progress for a Building project and returns the
// resulting Changes. For a gradual project, it unapplies the previous
// progress's effect scaling and applies the new progress's, so that two
// consecutive years' add/remove pairs compose correctly. On completion it
// adds the full-strength effects and the relationship bumps for
// supporters/opposers.
func (p *Project) Advance() Changes {
	var ch Changes
	if p.Status != Building {
		return ch
	}

	prevProgress := p.Progress
	if p.Gradual {
		for _, e := range p.Effects {
			ch.RemoveEffects = append(ch.RemoveEffects, e.Scale(prevProgress))
		}
	}

	completed := p.Build()

	if p.Gradual && !completed {
		for _, e := range p.Effects {
			ch.AddEffects = append(ch.AddEffects, e.Scale(p.Progress))
		}
	}

	if completed {
		ch.Completed = true
		ch.AddEffects = append(ch.AddEffects, p.Effects...)
		ch.SupporterDeltas = indices(len(p.Supporters))
		ch.OpposerDeltas = indices(len(p.Opposers))
	}

	return ch
}

// Upgrade advances the project to its next upgrade level, if one exists.
// It returns the effects to remove (the current level's, excluding
// one-shot unlock/AddEvent effects which persist across upgrades) and to
// add (the new level's).
func (p *Project) Upgrade() (Changes, bool) {
	if p.Level >= len(p.Upgrades) {
		return Changes{}, false
	}
	var ch Changes
	ch.RemoveEffects = persistentFilter(p.ActiveEffects())
	p.Level++
	ch.AddEffects = p.ActiveEffects()
	return ch, true
}

// Downgrade reverts to the previous upgrade level, if any.
func (p *Project) Downgrade() (Changes, bool) {
	if p.Level <= 0 {
		return Changes{}, false
	}
	var ch Changes
	ch.RemoveEffects = persistentFilter(p.ActiveEffects())
	p.Level--
	ch.AddEffects = p.ActiveEffects()
	return ch, true
}

// persistentFilter drops AddEvent effects (and other one-shot unlocks)
// from an effect set being removed on upgrade/downgrade, since those
// unlocks are meant to persist once triggered.
func persistentFilter(effects []eventdsl.Effect) []eventdsl.Effect {
	out := make([]eventdsl.Effect, 0, len(effects))
	for _, e := range effects {
		switch e.Kind {
		case eventdsl.EffectAddEvent, eventdsl.EffectUnlocksProject, eventdsl.EffectUnlocksProcess, eventdsl.EffectUnlocksNPC:
			continue
		}
		out = append(out, e)
	}
	return out
}
