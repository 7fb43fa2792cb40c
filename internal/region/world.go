package region

import (
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
)

// World holds the aggregate, non-regional coefficients of the
// simulation's physical model. The Collections of regions/processes/
// projects/industries that the specification attaches to World live in
// the state package, which is the sole owner of every Collection; World
// here holds only the scalar and per-region-independent fields.
type World struct {
	Year int

	StartingResources kinds.ResourceMap
	// PerCapitaDemand is indexed by income band (0..3), giving the
	// per-capita demand table the step loop scales by each region's
	// population.
	PerCapitaDemand [4]kinds.OutputMap

	TemperatureAnomaly    float32
	TemperatureModifier   float32
	SeaLevelRise          float32
	SeaLevelRiseRate      float32
	Precipitation         float32
	ExtinctionRate        float32
	// BaseGrowthModifier is the temperature-driven component of
	// population growth, recomputed every step. PopulationGrowthModifier
	// is a separate, persistent additive modifier that effects accrue
	// into (AddPopulationGrowthModifier) and that this step never
	// overwrites; growth uses the sum of the two (see GrowthModifier).
	BaseGrowthModifier       float32
	PopulationGrowthModifier float32
	WaterStress              float32

	ByproductMods kinds.ByproductMap
	Co2Emissions  float32

	regionIds []ids.Id
}

// SetRegionIds records the ids World should treat as "all regions" for
// aggregate calculations (population, habitability mean). The state
// package calls this once regions are loaded.
func (w *World) SetRegionIds(ids []ids.Id) { w.regionIds = ids }

// RegionIds returns the known region ids.
func (w *World) RegionIds() []ids.Id { return w.regionIds }

// UpdateSeaLevelRiseRate derives the rate of sea level rise from the
// current temperature anomaly. This coefficient function has no
// original_source implementation retained in the reference pack; it is
// implemented directly from the specification's description of step 1
// ("update sea-level-rise rate (function of temperature)") using a
// simple linear response, a common simplification for century-scale
// climate emulation.
func (w *World) UpdateSeaLevelRiseRate(tgav float32) {
	w.SeaLevelRiseRate = 0.01 * tgav
	w.SeaLevelRise += w.SeaLevelRiseRate
}

// UpdatePrecipitation nudges precipitation toward a temperature-driven
// baseline; same grounding note as UpdateSeaLevelRiseRate.
func (w *World) UpdatePrecipitation(tgav float32) {
	w.Precipitation += 0.02 * tgav
}

// UpdatePopulationGrowthModifier derives the temperature-driven base of
// population growth, damping growth as warming increases. Same grounding
// note as UpdateSeaLevelRiseRate: no surviving original_source formula,
// implemented directly from the specification's step 1 description. This
// only ever touches BaseGrowthModifier — PopulationGrowthModifier is the
// effect-accrued modifier and must persist across steps, never be
// overwritten here.
func (w *World) UpdatePopulationGrowthModifier(tgav float32) {
	w.BaseGrowthModifier = 0.02 - tgav*0.002
}

// GrowthModifier returns the total population growth modifier for the
// current step: the temperature-driven base plus whatever effects have
// accrued into PopulationGrowthModifier.
func (w *World) GrowthModifier() float32 {
	return w.BaseGrowthModifier + w.PopulationGrowthModifier
}

// Population sums population across every region the caller passes in
// (the state package owns the Region collection; World only aggregates).
func Population(pops []float32) float32 {
	var total float32
	for _, p := range pops {
		total += p
	}
	return total
}

// MeanHabitability averages habitability across a set of regions.
func MeanHabitability(habitabilities []float32) float32 {
	if len(habitabilities) == 0 {
		return 0
	}
	var sum float32
	for _, h := range habitabilities {
		sum += h
	}
	return sum / float32(len(habitabilities))
}

// RecomputeExtinctionRate derives a global extinction-rate coefficient
// from land use, temperature, and sea-level-rise, using fixed weights.
// No original_source implementation of this formula survived in the
// reference pack's retrieval (only call-sites in unretrieved view files);
// it is implemented directly from the specification's step 10
// description.
func (w *World) RecomputeExtinctionRate(protectedLand float32) float32 {
	landPressure := (1 - protectedLand) * 0.5
	tempPressure := w.TemperatureAnomaly * 0.3
	slrPressure := w.SeaLevelRise * 0.2
	rate := landPressure + tempPressure + slrPressure + w.ByproductMods.Get(kinds.Biodiversity)*0.01
	if rate < 0 {
		rate = 0
	}
	w.ExtinctionRate = rate
	return rate
}
