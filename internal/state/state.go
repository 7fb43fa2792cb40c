// Package state implements the engine's single owned World+RunState
// value: it holds every Collection, exposes the per-year step function,
// the per-cycle finish_cycle, and the player command surface, and wires
// the event DSL's read/write interfaces against its own fields.
package state

import (
	"halfearth/internal/eventdsl"
	"halfearth/internal/eventpool"
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
	"halfearth/internal/npc"
	"halfearth/internal/process"
	"halfearth/internal/project"
	"halfearth/internal/region"
)

// MaxEmissions caps the cumulative emissions the engine will hand to the
// climate collaborator, guarding its numeric stability.
const MaxEmissions = 4000.0 // gigatonnes CO2-equivalent

// Produced tracks total and per-process output for the current step.
type Produced struct {
	Amount    kinds.OutputMap
	ByProcess map[ids.Id]float32
}

// Request is a pending player-facing suggestion emitted by an effect
// (ProjectRequest/ProcessRequest); the caller (UI layer) decides whether
// to surface it.
type Request struct {
	IsProject bool
	Id        ids.Id
	Add       bool
	Points    int
}

// State is the engine's single owned value. Every Collection lives here;
// every other component (Project, Process, Region, NPC, Event) refers to
// its peers only by Id and reaches them back through State.
type State struct {
	World region.World

	Regions   *ids.Collection[*region.Region]
	Processes *ids.Collection[*process.Process]
	Projects  *ids.Collection[*project.Project]
	Industries *ids.Collection[*region.Industry]
	NPCs      *ids.Collection[*npc.NPC]

	EventPool *eventpool.Pool

	Flags       map[string]bool
	RegionFlags map[ids.Id]map[string]bool

	Feedstocks kinds.FeedstockMap
	Resources  kinds.ResourceMap

	// ResourceDemandTotals and OutputDemandTotals are recomputed each step
	// (step 3); ConditionState reads them through accessor methods named
	// ResourceDemand/OutputDemand, so the underlying fields carry a
	// Totals suffix to avoid a field/method name collision.
	ResourceDemandTotals kinds.ResourceMap
	OutputDemandTotals   kinds.OutputMap
	OutputDemandModifier kinds.OutputMap
	OutputDemandExtras   kinds.OutputMap
	OutputModifier       kinds.OutputMap
	OutputModifierByFeature map[process.Feature]float32

	Produced Produced

	PoliticalCapital int
	ResearchPoints   int
	ProtectedLandPct float32

	Runs      int
	DeathYear int

	// ProjectCostModifiers and EventProbModifiers accumulate additive
	// effect contributions keyed by id, since Project/Event themselves
	// are read through Collections shared with other components.
	ProjectCostModifiers map[ids.Id]float32
	EventProbModifiers   map[ids.Id]float32

	Requests []Request

	// QueuedUpgrades holds non-Policy project upgrade/downgrade requests
	// deferred to the next cycle boundary: +1 means upgrade, -1 downgrade.
	QueuedUpgrades map[ids.Id]int

	// QueuedMixShares holds pending change_process_mix_share deltas,
	// applied at the next cycle boundary alongside queued upgrades.
	QueuedMixShares map[ids.Id]int
}

// New returns an empty State with every Collection initialized.
func New() *State {
	return &State{
		Regions:    ids.NewCollection[*region.Region](),
		Processes:  ids.NewCollection[*process.Process](),
		Projects:   ids.NewCollection[*project.Project](),
		Industries: ids.NewCollection[*region.Industry](),
		NPCs:       ids.NewCollection[*npc.NPC](),
		EventPool:  eventpool.NewPool(),

		Flags:       map[string]bool{},
		RegionFlags: map[ids.Id]map[string]bool{},

		OutputModifierByFeature: map[process.Feature]float32{},
		ProjectCostModifiers:    map[ids.Id]float32{},
		EventProbModifiers:      map[ids.Id]float32{},
		QueuedUpgrades:          map[ids.Id]int{},
		QueuedMixShares:         map[ids.Id]int{},
	}
}

// RegionIdList returns every non-seceded region id, in Collection order.
func (s *State) RegionIdList() []ids.Id {
	var out []ids.Id
	s.Regions.Each(func(r *region.Region) bool {
		if !r.Seceded {
			out = append(out, r.Id)
		}
		return true
	})
	return out
}

// Co2eqGt returns the accumulated emissions in gigatonnes CO2-equivalent,
// capped at MaxEmissions for the climate collaborator's benefit.
func (s *State) Co2eqGt() float32 {
	v := s.World.ByproductMods.Gtco2eq()
	if v > MaxEmissions {
		return MaxEmissions
	}
	return v
}

var _ eventdsl.ConditionState = (*State)(nil)
var _ eventdsl.EffectState = (*State)(nil)
