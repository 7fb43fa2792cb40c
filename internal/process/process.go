// Package process models production processes: the recipes that turn
// resources and feedstocks into outputs and byproducts.
package process

import (
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
)

// Feature is a tag describing a qualitative property of a process, used by
// event conditions and effects that target a class of processes rather
// than one by id (e.g. "all processes using oil").
type Feature int

const (
	FeatureIsCCS Feature = iota
	FeatureIsCombustion
	FeatureIsIntermittent
	FeatureMakesNuclearWaste
	FeatureCanMeltdown
	FeatureIsLaborIntensive
	FeatureIsSolar
	FeatureIsFossil
	FeatureUsesOil
	FeatureUsesLivestock
	FeatureUsesPesticides
	FeatureUsesSynFertilizer
)

// Feedstock pairs a feedstock kind with its per-unit-of-output amount.
type Feedstock struct {
	Kind   kinds.Feedstock
	Amount float32
}

// Process is a single recipe: one unit of output costs a fixed bundle of
// resources and a feedstock amount, and yields a fixed bundle of
// byproducts. Exactly one Output is produced per process.
type Process struct {
	Id     ids.Id
	Name   string
	Output kinds.Output

	// MixShare is this process's share of its Output's total production,
	// in twenty-mix units (5% each). Every Output's processes must sum
	// their MixShare to 20.
	MixShare int

	Resources  kinds.ResourceMap
	Byproducts kinds.ByproductMap
	Feedstock  Feedstock

	// Limit is the optional absolute output ceiling; a non-positive value
	// means unlimited.
	Limit float32

	OutputModifier    float32
	ByproductModifiers kinds.ByproductMap

	Features map[Feature]bool

	Supporters []ids.Id
	Opposers   []ids.Id

	Locked bool
}

func (p *Process) GetId() ids.Id { return p.Id }

// HasFeature reports whether the process is tagged with f.
func (p *Process) HasFeature(f Feature) bool {
	return p.Features != nil && p.Features[f]
}

// MixPercent returns this process's share of its Output's production, as a
// fraction of 1 (mix_share * 0.05).
func (p *Process) MixPercent() float32 {
	return float32(p.MixShare) * 0.05
}

// HasLimit reports whether the process has a finite absolute output cap.
func (p *Process) HasLimit() bool {
	return p.Limit > 0
}

// AdjustedResources returns the per-unit resource cost after OutputModifier
// (accumulated from effects/upgrades) scales the process's efficiency.
func (p *Process) AdjustedResources(globalOutputModifier float32) kinds.ResourceMap {
	return p.Resources.Scale(1. / (1. + globalOutputModifier + p.OutputModifier))
}

// AdjustedByproducts returns the per-unit byproduct yield after the
// byproduct modifiers from events/effects are applied.
func (p *Process) AdjustedByproducts(globalOutputModifier float32) kinds.ByproductMap {
	return p.Byproducts.Add(p.ByproductModifiers).Scale(1. / (1. + globalOutputModifier + p.OutputModifier))
}

// AdjustedFeedstockAmount returns the per-unit feedstock requirement after
// the same efficiency scaling as AdjustedResources.
func (p *Process) AdjustedFeedstockAmount(globalOutputModifier float32) float32 {
	return p.Feedstock.Amount / (1. + globalOutputModifier + p.OutputModifier)
}

// ValidateMixShares checks that every output's processes sum their
// MixShare to 20, the twenty-mix invariant. It returns the outputs that
// violate the invariant, for use in debug assertions.
func ValidateMixShares(procs []*Process) []kinds.Output {
	sums := map[kinds.Output]int{}
	for _, p := range procs {
		if p.Locked {
			continue
		}
		sums[p.Output] += p.MixShare
	}
	var bad []kinds.Output
	for o, sum := range sums {
		if sum != 20 {
			bad = append(bad, o)
		}
	}
	return bad
}
