// Package eventdsl implements the engine's rule language: Conditions
// (predicates over state) and Effects (state mutators), shared by Projects
// and Events. Both are closed tagged sums: a Kind discriminator plus the
// payload fields that kind's semantics need. All polymorphism is via
// switch on Kind, never via interfaces or subclassing.
package eventdsl

import (
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
)

// Comparator is one of the six scalar comparison operators used by
// Conditions.
type Comparator string

const (
	Less         Comparator = "less"
	LessEqual    Comparator = "less_equal"
	Equal        Comparator = "equal"
	NotEqual     Comparator = "not_equal"
	GreaterEqual Comparator = "greater_equal"
	Greater      Comparator = "greater"
)

// Eval applies the comparator to a, b.
func (c Comparator) Eval(a, b float32) bool {
	switch c {
	case Less:
		return a < b
	case LessEqual:
		return a <= b
	case Equal:
		return a == b
	case NotEqual:
		return a != b
	case GreaterEqual:
		return a >= b
	case Greater:
		return a > b
	default:
		return false
	}
}

// WorldVar selects a scalar world-level variable.
type WorldVar string

const (
	WorldYear             WorldVar = "year"
	WorldPopulation       WorldVar = "population"
	WorldPopulationGrowth WorldVar = "population_growth"
	WorldEmissions        WorldVar = "emissions"
	WorldExtinctionRate   WorldVar = "extinction_rate"
	WorldOutlook          WorldVar = "outlook"
	WorldTemperature      WorldVar = "temperature"
	WorldSeaLevelRise     WorldVar = "sea_level_rise"
	WorldSeaLevelRiseRate WorldVar = "sea_level_rise_rate"
	WorldPrecipitation    WorldVar = "precipitation"
)

// LocalVar selects a scalar region-level variable; requires a region id.
type LocalVar string

const (
	LocalPopulation  LocalVar = "population"
	LocalOutlook     LocalVar = "outlook"
	LocalHabitability LocalVar = "habitability"
)

// PlayerVar selects a scalar player-level variable.
type PlayerVar string

const (
	PlayerPoliticalCapital PlayerVar = "political_capital"
	PlayerResearchPoints   PlayerVar = "research_points"
	PlayerYearsToDeath     PlayerVar = "years_to_death"
)

// NPCBand is a discrete relationship band.
type NPCBand string

const (
	BandNemesis  NPCBand = "nemesis"
	BandNeutral  NPCBand = "neutral"
	BandFriendly NPCBand = "friendly"
	BandAlly     NPCBand = "ally"
)

// ProjectStatus mirrors project.Status for use in ProjectStatus conditions
// without importing the project package (which itself depends on
// eventdsl for effects), avoiding an import cycle.
type ProjectStatus string

const (
	StatusInactive ProjectStatus = "inactive"
	StatusBuilding ProjectStatus = "building"
	StatusActive   ProjectStatus = "active"
	StatusHalted   ProjectStatus = "halted"
	StatusStalled  ProjectStatus = "stalled"
	StatusFinished ProjectStatus = "finished"
)

// Kind discriminates which Condition variant a Condition value holds.
type Kind string

const (
	KindWorldVariable         Kind = "world_variable"
	KindLocalVariable         Kind = "local_variable"
	KindPlayerVariable        Kind = "player_variable"
	KindProcessOutput         Kind = "process_output"
	KindProcessMixShare       Kind = "process_mix_share"
	KindProcessMixShareFeature Kind = "process_mix_share_feature"
	KindResourcePressure      Kind = "resource_pressure"
	KindResourceDemandGap     Kind = "resource_demand_gap"
	KindOutputDemandGap       Kind = "output_demand_gap"
	KindDemand                Kind = "demand"
	KindFeedstockYears        Kind = "feedstock_years"
	KindProjectStatus         Kind = "project_status"
	KindActiveProjectUpgrades Kind = "active_project_upgrades"
	KindRunsPlayed            Kind = "runs_played"
	KindNPCRelationship       Kind = "npc_relationship"
	KindRegionFlag            Kind = "region_flag"
	KindHasFlag               Kind = "has_flag"
	KindWithoutFlag           Kind = "without_flag"
	KindHeavyProjects         Kind = "heavy_projects"
	KindProtectLand           Kind = "protect_land"
	KindWaterStress           Kind = "water_stress"
)

// Condition is a predicate tagged sum. Only the fields relevant to Kind
// are meaningful; the rest are zero.
type Condition struct {
	Kind Kind

	Comparator Comparator
	Value      float32

	WorldVar  WorldVar
	LocalVar  LocalVar
	PlayerVar PlayerVar

	ProcessId ids.Id
	Feature   int // process.Feature, kept untyped here to avoid an import cycle

	Resource   kinds.Resource
	Output     kinds.Output
	Feedstock  kinds.Feedstock

	ProjectId     ids.Id
	ProjectStatus ProjectStatus
	Upgrades      int

	NPCId ids.Id
	Band  NPCBand

	Flag string

	N int
}

// demandScale holds the per-output scaling factors used by the Demand
// condition, converting raw produced/demand units into the normalized
// scale content authors write thresholds against.
var demandScale = map[kinds.Output]float32{
	kinds.OutputFuel:            1e-12,
	kinds.OutputElectricity:     1e-12,
	kinds.OutputPlantCalories:   5e-14,
	kinds.OutputAnimalCalories:  5e-14,
}

// IsRegional reports whether this condition variant reads region-scoped
// state: it must be evaluated per-region rather than once globally.
func (c Condition) IsRegional() bool {
	return c.Kind == KindLocalVariable || c.Kind == KindRegionFlag
}

// Eval evaluates the condition against state. regionId is ids.Nil when no
// region context applies; LocalVariable and RegionFlag return false in
// that case.
func (c Condition) Eval(s ConditionState, regionId ids.Id) bool {
	switch c.Kind {
	case KindWorldVariable:
		return c.Comparator.Eval(s.WorldVariable(c.WorldVar), c.Value)

	case KindLocalVariable:
		if regionId == ids.Nil {
			return false
		}
		v, ok := s.LocalVariable(c.LocalVar, regionId)
		if !ok {
			return false
		}
		return c.Comparator.Eval(v, c.Value)

	case KindPlayerVariable:
		return c.Comparator.Eval(s.PlayerVariable(c.PlayerVar), c.Value)

	case KindProcessOutput:
		v, ok := s.ProcessOutput(c.ProcessId)
		if !ok {
			return false
		}
		return c.Comparator.Eval(v, c.Value)

	case KindProcessMixShare:
		return c.Comparator.Eval(s.ProcessMixPercent(c.ProcessId), c.Value)

	case KindProcessMixShareFeature:
		return c.Comparator.Eval(s.ProcessMixPercentByFeature(c.Feature), c.Value)

	case KindResourcePressure:
		demand := s.ResourceDemand(c.Resource)
		if demand == 0 {
			return false
		}
		return c.Comparator.Eval(s.ResourceAvailable(c.Resource)/demand, c.Value)

	case KindResourceDemandGap:
		demand := s.ResourceDemand(c.Resource)
		if demand == 0 {
			return false
		}
		gap := (s.ResourceAvailable(c.Resource) - demand) / demand
		return c.Comparator.Eval(gap, c.Value)

	case KindOutputDemandGap:
		demand := s.OutputDemand(c.Output)
		if demand == 0 {
			return c.Comparator.Eval(0, c.Value)
		}
		ratio := s.OutputProduced(c.Output) / demand
		if ratio > 1 {
			ratio = 1
		}
		gap := 1 - ratio
		return c.Comparator.Eval(gap, c.Value)

	case KindDemand:
		scale := demandScale[c.Output]
		return c.Comparator.Eval(s.OutputDemand(c.Output)*scale, c.Value)

	case KindFeedstockYears:
		return c.Comparator.Eval(s.FeedstockYears(c.Feedstock), c.Value)

	case KindProjectStatus:
		return statusClass(s.ProjectStatus(c.ProjectId)) == statusClass(c.ProjectStatus)

	case KindActiveProjectUpgrades:
		return c.Comparator.Eval(float32(s.ProjectLevel(c.ProjectId)), float32(c.Upgrades))

	case KindRunsPlayed:
		return c.Comparator.Eval(float32(s.RunsPlayed()), float32(c.N))

	case KindNPCRelationship:
		return bandOf(s.NPCRelationship(c.NPCId)) == c.Band

	case KindRegionFlag:
		if regionId == ids.Nil {
			return false
		}
		return s.RegionHasFlag(regionId, c.Flag)

	case KindHasFlag:
		return s.HasFlag(c.Flag)

	case KindWithoutFlag:
		return !s.HasFlag(c.Flag)

	case KindHeavyProjects:
		return c.Comparator.Eval(float32(s.HeavyProjectsFinished()), float32(c.N))

	case KindProtectLand:
		return c.Comparator.Eval(s.ProtectedLand(), c.Value)

	case KindWaterStress:
		return c.Comparator.Eval(s.WaterStress(), c.Value)

	default:
		return false
	}
}

// statusClass collapses Active and Finished into one equivalence class for
// ProjectStatus matching, per spec: "Active, Finished are treated as one
// class for matching purposes."
func statusClass(s ProjectStatus) ProjectStatus {
	if s == StatusActive || s == StatusFinished {
		return StatusActive
	}
	return s
}

// bandOf thresholds a raw relationship scalar into its discrete band.
func bandOf(relationship float32) NPCBand {
	switch {
	case relationship <= -2:
		return BandNemesis
	case relationship < 2:
		return BandNeutral
	case relationship < 5:
		return BandFriendly
	default:
		return BandAlly
	}
}

// BandOf exposes the relationship→band thresholding for use outside the
// DSL (e.g. by the npc package).
func BandOf(relationship float32) NPCBand { return bandOf(relationship) }

// ConditionState is the read-only view of simulation state a Condition
// needs to evaluate. State implements this interface; it is defined here,
// at the DSL's leaf, to keep eventdsl free of a dependency on the state
// package (which depends on eventdsl for Effects).
type ConditionState interface {
	WorldVariable(WorldVar) float32
	LocalVariable(v LocalVar, region ids.Id) (float32, bool)
	PlayerVariable(PlayerVar) float32
	ProcessOutput(ids.Id) (float32, bool)
	ProcessMixPercent(ids.Id) float32
	ProcessMixPercentByFeature(feature int) float32
	ResourceAvailable(kinds.Resource) float32
	ResourceDemand(kinds.Resource) float32
	OutputDemand(kinds.Output) float32
	OutputProduced(kinds.Output) float32
	FeedstockYears(kinds.Feedstock) float32
	ProjectStatus(ids.Id) ProjectStatus
	ProjectLevel(ids.Id) int
	RunsPlayed() int
	NPCRelationship(ids.Id) float32
	RegionHasFlag(region ids.Id, flag string) bool
	HasFlag(flag string) bool
	HeavyProjectsFinished() int
	ProtectedLand() float32
	WaterStress() float32
}
