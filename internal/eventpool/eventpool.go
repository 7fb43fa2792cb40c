// Package eventpool implements the per-phase event rolling system: a
// pool of content-defined Events, a countdown queue for delayed
// triggers, and dedup bookkeeping so a one-shot event never fires twice.
package eventpool

import (
	"halfearth/internal/eventdsl"
	"halfearth/internal/ids"
	"halfearth/internal/rng"
)

// Phase names a point in the yearly/cyclical caller loop at which events
// may be rolled.
type Phase string

const (
	PhaseWorldMain              Phase = "world_main"
	PhaseWorldStart             Phase = "world_start"
	PhaseReportStart            Phase = "report_start"
	PhaseBreakStart             Phase = "break_start"
	PhaseEndStart               Phase = "end_start"
	PhaseIcon                   Phase = "icon"
	PhasePlanningStart          Phase = "planning_start"
	PhasePlanningPlan           Phase = "planning_plan"
	PhasePlanningAdd            Phase = "planning_add"
	PhasePlanningResearch       Phase = "planning_research"
	PhasePlanningInitiatives    Phase = "planning_initiatives"
	PhasePlanningPolicies       Phase = "planning_policies"
	PhasePlanningProcesses      Phase = "planning_processes"
	PhasePlanningParliament     Phase = "planning_parliament"
	PhasePlanningRegions        Phase = "planning_regions"
	PhasePlanningDashboard      Phase = "planning_dashboard"
	PhasePlanningPlanChange     Phase = "planning_plan_change"
	PhaseInterstitialStart      Phase = "interstitial_start"
	PhaseInterstitialWin        Phase = "interstitial_win"
	PhaseCutsceneIntro          Phase = "cutscene_intro"
)

// Event is a single content-defined occurrence: a named bundle of
// probabilities (evaluated in order) and effects (applied by the caller
// once the event is presented and a branch, if any, is chosen).
type Event struct {
	Id            ids.Id
	Name          string
	Locked        bool
	Occurred      bool
	Phase         Phase
	Probabilities []eventdsl.Probability
	Effects       []eventdsl.Effect
	ProbModifier  float32
	Intensity     int
	Flavor        string
	Notes         string
}

func (e *Event) GetId() ids.Id { return e.Id }

// NewEvent returns an Event with the DSL's default probability (Guaranteed,
// no conditions) and a neutral probability modifier, matching content
// that declares no explicit Probability.
func NewEvent(id ids.Id, name string, phase Phase) *Event {
	return &Event{
		Id:           id,
		Name:         name,
		Phase:        phase,
		ProbModifier: 1,
		Probabilities: []eventdsl.Probability{
			{Likelihood: eventdsl.Guaranteed},
		},
	}
}

// IsRegional reports whether any of the event's probabilities read
// region-scoped state.
func (e *Event) IsRegional() bool {
	for _, p := range e.Probabilities {
		if p.IsRegional() {
			return true
		}
	}
	return false
}

// eval returns the Likelihood of the first probability whose conditions
// all hold, or ok=false if none do.
func (e *Event) eval(s eventdsl.ConditionState, regionId ids.Id) (eventdsl.Likelihood, bool) {
	for _, p := range e.Probabilities {
		if l, ok := p.Eval(s, regionId); ok {
			return l, true
		}
	}
	return "", false
}

// roll evaluates e's probability at (state, region) and draws against it,
// scaled by ProbModifier.
func (e *Event) roll(s eventdsl.ConditionState, regionId ids.Id, source rng.Source) bool {
	l, ok := e.eval(s, regionId)
	if !ok {
		return false
	}
	p := l.P() * e.ProbModifier
	return source.Chance(p)
}

// queuedEntry is one countdown-gated delayed trigger.
type queuedEntry struct {
	Phase     Phase
	EventId   ids.Id
	RegionId  ids.Id
	Countdown int
}

// triggeredEntry is a roll success awaiting dispatch to the caller.
type triggeredEntry struct {
	Phase    Phase
	EventId  ids.Id
	RegionId ids.Id
}

// Pool owns the event catalog, the countdown queue, and the dedup ledger.
type Pool struct {
	Events    *ids.Collection[*Event]
	queue     []queuedEntry
	triggered []triggeredEntry
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{Events: ids.NewCollection[*Event]()}
}

// QueueEvent schedules eventId to roll after the given number of years,
// tagged with the event's own phase so the countdown only ticks when that
// phase is rolled.
func (p *Pool) QueueEvent(eventId ids.Id, regionId ids.Id, years int) {
	ev, ok := p.Events.Get(eventId)
	if !ok {
		return
	}
	p.queue = append(p.queue, queuedEntry{Phase: ev.Phase, EventId: eventId, RegionId: regionId, Countdown: years})
}

// Occurring is one emitted event paired with the region it fired for
// (ids.Nil for global events).
type Occurring struct {
	Event    *Event
	RegionId ids.Id
}

// RollForPhase rolls the pool for phase, returning up to limit newly
// occurring events. limit <= 0 means unlimited.
func (p *Pool) RollForPhase(phase Phase, s eventdsl.ConditionState, regionIds []ids.Id, limit int, source rng.Source) []Occurring {
	excluded := map[ids.Id]bool{}
	for _, q := range p.queue {
		excluded[q.EventId] = true
	}
	for _, t := range p.triggered {
		excluded[t.EventId] = true
	}

	// Step 3: tick queued countdowns for entries in this phase.
	remaining := p.queue[:0]
	for _, q := range p.queue {
		if q.Phase != phase {
			remaining = append(remaining, q)
			continue
		}
		q.Countdown--
		if q.Countdown > 0 {
			remaining = append(remaining, q)
			continue
		}
		ev, ok := p.Events.Get(q.EventId)
		if ok && ev.roll(s, q.RegionId, source) {
			p.triggered = append(p.triggered, triggeredEntry{Phase: q.Phase, EventId: q.EventId, RegionId: q.RegionId})
		}
		// countdown exhausted: drop from queue either way
	}
	p.queue = append([]queuedEntry{}, remaining...)

	// Step 2 + 4: candidate pool, shuffled, rolled once per region (or
	// globally) depending on phase/regionality.
	var candidates []*Event
	p.Events.Each(func(ev *Event) bool {
		if ev.Phase != phase || ev.Locked || ev.Occurred || excluded[ev.Id] {
			return true
		}
		candidates = append(candidates, ev)
		return true
	})
	source.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	for _, ev := range candidates {
		switch {
		case ev.Phase == PhaseIcon:
			for _, r := range regionIds {
				if ev.roll(s, r, source) {
					p.triggered = append(p.triggered, triggeredEntry{Phase: ev.Phase, EventId: ev.Id, RegionId: r})
				}
			}
		case ev.IsRegional():
			for _, r := range regionIds {
				if ev.roll(s, r, source) {
					p.triggered = append(p.triggered, triggeredEntry{Phase: ev.Phase, EventId: ev.Id, RegionId: r})
				}
			}
		default:
			if ev.roll(s, ids.Nil, source) {
				p.triggered = append(p.triggered, triggeredEntry{Phase: ev.Phase, EventId: ev.Id})
			}
		}
	}

	// Step 5: shuffle triggered, then walk it emitting matching-phase
	// entries and deduping by occurred (except Icon events, which may
	// repeat).
	source.Shuffle(len(p.triggered), func(i, j int) { p.triggered[i], p.triggered[j] = p.triggered[j], p.triggered[i] })

	var out []Occurring
	var kept []triggeredEntry
	for i := 0; i < len(p.triggered); i++ {
		t := p.triggered[i]
		if t.Phase != phase {
			kept = append(kept, t)
			continue
		}
		ev, ok := p.Events.Get(t.EventId)
		if !ok {
			continue
		}
		if ev.Occurred {
			continue
		}
		if limit > 0 && len(out) >= limit {
			kept = append(kept, t)
			continue
		}
		out = append(out, Occurring{Event: ev, RegionId: t.RegionId})
		if ev.Phase != PhaseIcon {
			ev.Occurred = true
		}
	}
	p.triggered = kept

	return out
}
