package eventdsl

import (
	"math"

	"halfearth/internal/ids"
	"halfearth/internal/kinds"
)

// EffectKind discriminates which Effect variant an Effect value holds.
type EffectKind string

const (
	EffectLocalVariable   EffectKind = "local_variable"
	EffectWorldVariable   EffectKind = "world_variable"
	EffectPlayerVariable  EffectKind = "player_variable"
	EffectResource        EffectKind = "resource"
	EffectDemand          EffectKind = "demand"
	EffectOutput          EffectKind = "output"
	EffectDemandAmount    EffectKind = "demand_amount"
	EffectOutputForFeature EffectKind = "output_for_feature"
	EffectOutputForProcess EffectKind = "output_for_process"
	EffectFeedstock       EffectKind = "feedstock"
	EffectAddEvent        EffectKind = "add_event"
	EffectTriggerEvent    EffectKind = "trigger_event"
	EffectUnlocksProject  EffectKind = "unlocks_project"
	EffectUnlocksProcess  EffectKind = "unlocks_process"
	EffectUnlocksNPC      EffectKind = "unlocks_npc"
	EffectLocksProject    EffectKind = "locks_project"
	EffectProjectRequest  EffectKind = "project_request"
	EffectProcessRequest  EffectKind = "process_request"
	EffectMigration       EffectKind = "migration"
	EffectRegionLeave     EffectKind = "region_leave"
	EffectAddRegionFlag   EffectKind = "add_region_flag"
	EffectAddFlag         EffectKind = "add_flag"
	EffectAutoClick       EffectKind = "auto_click"
	EffectNPCRelationship EffectKind = "npc_relationship"
	EffectModifyIndustryByproducts EffectKind = "modify_industry_byproducts"
	EffectModifyIndustryResources  EffectKind = "modify_industry_resources"
	EffectModifyIndustryDemand     EffectKind = "modify_industry_demand"
	EffectModifyEventProbability   EffectKind = "modify_event_probability"
	EffectDemandOutlookChange      EffectKind = "demand_outlook_change"
	EffectIncomeOutlookChange      EffectKind = "income_outlook_change"
	EffectProjectCostModifier      EffectKind = "project_cost_modifier"
	EffectProtectLand              EffectKind = "protect_land"
)

// reversible marks which Kinds support an algebraic inverse. One-shot
// effects have a no-op Unapply.
var reversible = map[EffectKind]bool{
	EffectLocalVariable:            true,
	EffectWorldVariable:            true,
	EffectPlayerVariable:           true,
	EffectResource:                 true,
	EffectDemand:                   true,
	EffectOutput:                   true,
	EffectDemandAmount:             true,
	EffectOutputForFeature:         true,
	EffectOutputForProcess:         true,
	EffectFeedstock:                true,
	EffectNPCRelationship:          true,
	EffectModifyIndustryByproducts: true,
	EffectModifyIndustryResources:  true,
	EffectModifyIndustryDemand:     true,
	EffectModifyEventProbability:   true,
	EffectDemandOutlookChange:      true,
	EffectIncomeOutlookChange:      true,
	EffectProjectCostModifier:      true,
	EffectProtectLand:              true,
}

// IsReversible reports whether e has a meaningful Unapply.
func (k EffectKind) IsReversible() bool { return reversible[k] }

// Effect is a state mutator tagged sum. Only the fields relevant to Kind
// are meaningful; the rest are zero.
type Effect struct {
	Kind EffectKind

	Change float32

	WorldVar  WorldVar
	LocalVar  LocalVar
	PlayerVar PlayerVar

	Resource  kinds.Resource
	Output    kinds.Output
	Feedstock kinds.Feedstock
	Byproduct kinds.Byproduct
	Feature   int

	EventId   ids.Id
	DelayYears int

	ProjectId ids.Id
	ProcessId ids.Id
	NPCId     ids.Id
	IndustryId ids.Id

	Flag string

	Points int
	Bool   bool
}

// Scale returns a copy of e with its numeric payload multiplied by s.
// One-shot variants are returned unchanged, matching the DSL's contract
// that only additive scalar effects participate in gradual interpolation.
func (e Effect) Scale(s float32) Effect {
	if !e.Kind.IsReversible() {
		return e
	}
	scaled := e
	scaled.Change = e.Change * s
	return scaled
}

// Apply mutates st according to e. region is ids.Nil when no region
// context applies.
func (e Effect) Apply(st EffectState, region ids.Id) {
	switch e.Kind {
	case EffectLocalVariable:
		applyLocal(st, e.LocalVar, region, e.Change, false)

	case EffectWorldVariable:
		applyWorld(st, e.WorldVar, e.Change, false)

	case EffectPlayerVariable:
		st.AddPlayerVariable(e.PlayerVar, e.Change)

	case EffectResource:
		st.ScaleResource(e.Resource, 1+e.Change)

	case EffectDemand:
		st.AddOutputDemandModifier(e.Output, e.Change)

	case EffectOutput:
		st.AddOutputModifier(e.Output, e.Change)

	case EffectDemandAmount:
		st.AddOutputDemandExtra(e.Output, e.Change)

	case EffectOutputForFeature:
		st.AddOutputModifierForFeature(e.Feature, e.Change)

	case EffectOutputForProcess:
		st.AddProcessOutputModifier(e.ProcessId, e.Change)

	case EffectFeedstock:
		st.ScaleFeedstock(e.Feedstock, e.Change)

	case EffectAddEvent:
		st.UnlockEvent(e.EventId)

	case EffectTriggerEvent:
		st.QueueEvent(e.EventId, region, e.DelayYears)

	case EffectUnlocksProject:
		st.UnlockProject(e.ProjectId)

	case EffectUnlocksProcess:
		st.UnlockProcess(e.ProcessId)

	case EffectUnlocksNPC:
		st.UnlockNPC(e.NPCId)

	case EffectLocksProject:
		st.LockProject(e.ProjectId)

	case EffectProjectRequest:
		st.RequestProject(e.ProjectId, e.Bool, e.Points)

	case EffectProcessRequest:
		st.RequestProcess(e.ProcessId, e.Bool, e.Points)

	case EffectMigration:
		st.Migrate(region)

	case EffectRegionLeave:
		st.SecedeRegion(region)

	case EffectAddRegionFlag:
		st.AddRegionFlag(region, e.Flag)

	case EffectAddFlag:
		st.AddFlag(e.Flag)

	case EffectAutoClick:
		// Auto-click effects are a UI affordance with no core-state
		// mutation; the engine records nothing for them.

	case EffectNPCRelationship:
		st.AddNPCRelationship(e.NPCId, e.Change)

	case EffectModifyIndustryByproducts:
		st.ScaleIndustryByproduct(e.IndustryId, e.Byproduct, e.Change)

	case EffectModifyIndustryResources:
		st.ScaleIndustryResource(e.IndustryId, e.Resource, e.Change)

	case EffectModifyIndustryDemand:
		st.AddIndustryDemandModifier(e.IndustryId, e.Change)

	case EffectModifyEventProbability:
		st.AddEventProbModifier(e.EventId, e.Change)

	case EffectDemandOutlookChange:
		forEachRegion(st, func(r ids.Id) {
			st.AddRegionOutlook(r, float32(math.Floor(float64(e.Change*st.RegionDemand(r, e.Output)))))
		})

	case EffectIncomeOutlookChange:
		forEachRegion(st, func(r ids.Id) {
			st.AddRegionOutlook(r, float32(math.Floor(float64(e.Change*st.RegionAdjustedIncome(r)))))
		})

	case EffectProjectCostModifier:
		st.AddProjectCostModifier(e.ProjectId, e.Change)

	case EffectProtectLand:
		st.AddProtectedLand(e.Change / 100.)
	}
}

// Unapply reverses Apply for reversible kinds; it is a no-op for one-shot
// effects.
func (e Effect) Unapply(st EffectState, region ids.Id) {
	switch e.Kind {
	case EffectLocalVariable:
		applyLocal(st, e.LocalVar, region, e.Change, true)

	case EffectWorldVariable:
		applyWorld(st, e.WorldVar, e.Change, true)

	case EffectPlayerVariable:
		st.AddPlayerVariable(e.PlayerVar, -e.Change)

	case EffectResource:
		st.ScaleResource(e.Resource, 1/(1+e.Change))

	case EffectDemand:
		st.AddOutputDemandModifier(e.Output, -e.Change)

	case EffectOutput:
		st.AddOutputModifier(e.Output, -e.Change)

	case EffectDemandAmount:
		st.AddOutputDemandExtra(e.Output, -e.Change)

	case EffectOutputForFeature:
		st.AddOutputModifierForFeature(e.Feature, -e.Change)

	case EffectOutputForProcess:
		st.AddProcessOutputModifier(e.ProcessId, -e.Change)

	case EffectFeedstock:
		st.ScaleFeedstock(e.Feedstock, 1/e.Change)

	case EffectNPCRelationship:
		st.AddNPCRelationship(e.NPCId, -e.Change)

	case EffectModifyIndustryByproducts:
		st.ScaleIndustryByproduct(e.IndustryId, e.Byproduct, 1/e.Change)

	case EffectModifyIndustryResources:
		st.ScaleIndustryResource(e.IndustryId, e.Resource, 1/e.Change)

	case EffectModifyIndustryDemand:
		st.AddIndustryDemandModifier(e.IndustryId, -e.Change)

	case EffectModifyEventProbability:
		st.AddEventProbModifier(e.EventId, -e.Change)

	case EffectDemandOutlookChange:
		// Unapply uses round() where Apply used floor(): the asymmetry is
		// inherited from the source game's effect system, not perfectly
		// reversible, and preserved here rather than normalized.
		forEachRegion(st, func(r ids.Id) {
			st.AddRegionOutlook(r, -float32(math.Round(float64(e.Change*st.RegionDemand(r, e.Output)))))
		})

	case EffectIncomeOutlookChange:
		forEachRegion(st, func(r ids.Id) {
			st.AddRegionOutlook(r, -float32(math.Round(float64(e.Change*st.RegionAdjustedIncome(r)))))
		})

	case EffectProjectCostModifier:
		st.AddProjectCostModifier(e.ProjectId, -e.Change)

	case EffectProtectLand:
		st.AddProtectedLand(-e.Change / 100.)

	default:
		// One-shot effects (AddEvent, TriggerEvent, Unlocks*, LocksProject,
		// *Request, Migration, RegionLeave, AddRegionFlag, AddFlag,
		// AutoClick) have no inverse.
	}
}

func applyLocal(st EffectState, v LocalVar, region ids.Id, change float32, invert bool) {
	if region == ids.Nil {
		return
	}
	switch v {
	case LocalPopulation:
		if invert {
			st.ScaleRegionPopulation(region, 1/(1+change/100.))
		} else {
			st.ScaleRegionPopulation(region, 1+change/100.)
		}
	case LocalOutlook:
		if invert {
			st.AddRegionOutlook(region, -change)
		} else {
			st.AddRegionOutlook(region, change)
		}
	case LocalHabitability:
		if invert {
			st.AddRegionBaseHabitability(region, -change)
		} else {
			st.AddRegionBaseHabitability(region, change)
		}
	}
}

func applyWorld(st EffectState, v WorldVar, change float32, invert bool) {
	sign := float32(1)
	if invert {
		sign = -1
	}
	switch v {
	case WorldYear:
		st.AddYear(int(sign * change))
	case WorldPopulation:
		if invert {
			st.ScaleWorldPopulation(1. / (change / 100.))
		} else {
			st.ScaleWorldPopulation(change / 100.)
		}
	case WorldPopulationGrowth:
		st.AddPopulationGrowthModifier(sign * change / 100.)
	case WorldEmissions:
		// Applies to both the ongoing emission-rate coefficient and the
		// accumulator simultaneously, so the delta is felt immediately as
		// well as every subsequent step.
		st.AddCo2Modifier(sign * change * 1e15)
		st.AddCo2Emissions(sign * change * 1e15)
	case WorldExtinctionRate:
		// Biodiversity pressure is negative-going: a positive change to
		// ExtinctionRate subtracts from the coefficient.
		st.AddBiodiversityModifier(-sign * change)
	case WorldOutlook:
		st.AddWorldOutlook(sign * change)
	case WorldTemperature:
		st.AddTemperatureModifier(sign * change)
	case WorldSeaLevelRise:
		st.AddSeaLevelRise(sign * change)
	case WorldSeaLevelRiseRate:
		st.AddSeaLevelRiseRate(sign * change)
	case WorldPrecipitation:
		st.AddPrecipitation(sign * change)
	}
}

func forEachRegion(st EffectState, fn func(ids.Id)) {
	for _, r := range st.RegionIds() {
		fn(r)
	}
}

// EffectState is the mutable view of simulation state an Effect needs to
// apply or unapply itself. State implements this interface.
type EffectState interface {
	AddPlayerVariable(PlayerVar, float32)
	ScaleResource(kinds.Resource, float32)
	AddOutputDemandModifier(kinds.Output, float32)
	AddOutputModifier(kinds.Output, float32)
	AddOutputDemandExtra(kinds.Output, float32)
	AddOutputModifierForFeature(feature int, delta float32)
	AddProcessOutputModifier(ids.Id, float32)
	ScaleFeedstock(kinds.Feedstock, float32)
	UnlockEvent(ids.Id)
	QueueEvent(eventId ids.Id, region ids.Id, delayYears int)
	UnlockProject(ids.Id)
	UnlockProcess(ids.Id)
	UnlockNPC(ids.Id)
	LockProject(ids.Id)
	RequestProject(id ids.Id, add bool, points int)
	RequestProcess(id ids.Id, add bool, points int)
	Migrate(region ids.Id)
	SecedeRegion(ids.Id)
	AddRegionFlag(region ids.Id, flag string)
	AddFlag(string)
	AddNPCRelationship(ids.Id, float32)
	ScaleIndustryByproduct(industry ids.Id, b kinds.Byproduct, mult float32)
	ScaleIndustryResource(industry ids.Id, r kinds.Resource, mult float32)
	AddIndustryDemandModifier(industry ids.Id, delta float32)
	AddEventProbModifier(event ids.Id, delta float32)
	AddRegionOutlook(region ids.Id, delta float32)
	RegionDemand(region ids.Id, o kinds.Output) float32
	RegionAdjustedIncome(region ids.Id) float32
	AddProjectCostModifier(ids.Id, float32)
	AddProtectedLand(float32)

	ScaleRegionPopulation(region ids.Id, mult float32)
	AddRegionBaseHabitability(region ids.Id, delta float32)
	AddYear(delta int)
	ScaleWorldPopulation(factor float32)
	AddPopulationGrowthModifier(delta float32)
	AddCo2Modifier(delta float32)
	AddCo2Emissions(delta float32)
	AddBiodiversityModifier(delta float32)
	AddWorldOutlook(delta float32)
	AddTemperatureModifier(delta float32)
	AddSeaLevelRise(delta float32)
	AddSeaLevelRiseRate(delta float32)
	AddPrecipitation(delta float32)

	RegionIds() []ids.Id
}
