// Package region models regions and the aggregate world coefficients
// derived from them: income bands, habitability, and demand scaling.
package region

import (
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
)

// Income is a region's development band, which selects its row in the
// per-capita demand table.
type Income int

const (
	Low Income = iota
	LowerMiddle
	UpperMiddle
	High
)

// Level returns the income band as a 0..3 ordinal, used wherever the
// engine needs an "income level" scalar (e.g. Dynamic(Income) project
// costs, IncomeOutlookChange).
func (i Income) Level() float32 { return float32(i) }

// LatitudeBand groups regions into coarse climate zones, used by the
// (external) climate pattern tables.
type LatitudeBand int

const (
	Polar LatitudeBand = iota
	Temperate
	Tropical
)

// Region is one of the world's population centers.
type Region struct {
	Id         ids.Id
	Name       string
	Population float32
	Development float32 // [0,1] progress toward the next income band
	Income     Income

	BaseHabitability float32
	Outlook          float32

	Seceded bool

	Latitude    LatitudeBand
	ClimatePatternIndices []int

	Flags map[string]bool

	TemperatureRange    [2]float32
	PrecipitationRange  [2]float32

	// habitabilityPenalty accumulates the effect of temperature excursion,
	// sea level rise, and disasters since the last recompute; Habitability
	// subtracts it from BaseHabitability.
	habitabilityPenalty float32
}

func (r *Region) GetId() ids.Id { return r.Id }

// HasFlag reports whether flag is set on this region.
func (r *Region) HasFlag(flag string) bool {
	return r.Flags != nil && r.Flags[flag]
}

// AddFlag sets flag on this region.
func (r *Region) AddFlag(flag string) {
	if r.Flags == nil {
		r.Flags = map[string]bool{}
	}
	r.Flags[flag] = true
}

// Habitability returns the region's current livability score, clamped to
// a non-negative value.
func (r *Region) Habitability() float32 {
	h := r.BaseHabitability - r.habitabilityPenalty
	if h < 0 {
		return 0
	}
	return h
}

// RecomputeHabitabilityPenalty derives the habitability penalty from how
// far outside the region's comfortable temperature range the current
// global temperature anomaly has pushed it, plus sea-level-rise exposure
// for low-lying regions. There is no original_source formula retained in
// the reference pack for this calculation; it is implemented directly
// from the engine specification's description of habitability as
// "base_habitability minus penalties(temp_range, slr, disasters)".
func (r *Region) RecomputeHabitabilityPenalty(temperatureAnomaly, seaLevelRise float32, disasterPenalty float32) {
	var tempPenalty float32
	if temperatureAnomaly > r.TemperatureRange[1] {
		tempPenalty = (temperatureAnomaly - r.TemperatureRange[1]) * 2
	} else if temperatureAnomaly < r.TemperatureRange[0] {
		tempPenalty = (r.TemperatureRange[0] - temperatureAnomaly) * 2
	}
	slrPenalty := seaLevelRise * 0.5
	r.habitabilityPenalty = tempPenalty + slrPenalty + disasterPenalty
}

// Demand returns this region's total demand for output o, combining its
// population, the per-income-band per-capita table, demand modifiers, and
// flat demand extras.
func (r *Region) Demand(o kinds.Output, perCapita kinds.OutputMap, outputDemandModifier kinds.OutputMap, outputDemandExtras kinds.OutputMap) float32 {
	return r.Population*perCapita.Get(o)*(1+outputDemandModifier.Get(o)) + outputDemandExtras.Get(o)
}

// AdjustedIncome returns a region's income-weighted population, used by
// IncomeOutlookChange effects. There is no original_source formula
// available for this calculation either; it is implemented directly from
// the specification's description of income-scaled outlook effects.
func (r *Region) AdjustedIncome() float32 {
	return r.Population * (1 + r.Income.Level())
}

// GrowPopulationAndDevelopment advances population by the world growth
// modifier and nudges Development toward the next income band, promoting
// the region when Development reaches 1.
func (r *Region) GrowPopulationAndDevelopment(growthModifier float32, developmentRate float32) {
	r.Population *= 1 + growthModifier
	if r.Population < 0 {
		r.Population = 0
	}
	if r.Income == High {
		return
	}
	r.Development += developmentRate
	if r.Development >= 1 {
		r.Development = 0
		r.Income++
	}
}
