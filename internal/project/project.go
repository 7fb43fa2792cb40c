// Package project implements the project lifecycle: the state machine
// that turns assigned points into progress, and progress into the
// project's effects going live.
package project

import (
	"math"

	"halfearth/internal/eventdsl"
	"halfearth/internal/ids"
)

// Status is a project's lifecycle state.
type Status string

const (
	Inactive Status = "inactive"
	Building Status = "building"
	Active   Status = "active"
	Halted   Status = "halted"
	Stalled  Status = "stalled"
	Finished Status = "finished"
)

// DSLStatus converts Status to the eventdsl package's ProjectStatus, used
// when evaluating ProjectStatus conditions.
func (s Status) DSLStatus() eventdsl.ProjectStatus {
	return eventdsl.ProjectStatus(s)
}

// Group categorizes a project for majority/heavy-project accounting.
type Group string

const (
	GroupOther           Group = "other"
	GroupSpace           Group = "space"
	GroupNuclear         Group = "nuclear"
	GroupRestoration     Group = "restoration"
	GroupAgriculture     Group = "agriculture"
	GroupFood            Group = "food"
	GroupGeoengineering  Group = "geoengineering"
	GroupPopulation      Group = "population"
	GroupControl         Group = "control"
	GroupProtection      Group = "protection"
	GroupElectrification Group = "electrification"
	GroupBehavior        Group = "behavior"
	GroupLimits          Group = "limits"
	GroupEnergy          Group = "energy"
	GroupMaterials       Group = "materials"
	GroupBuildings       Group = "buildings"
	GroupCities          Group = "cities"
)

// HeavyGroups are the groups counted by the HeavyProjects condition.
var HeavyGroups = map[Group]bool{
	GroupSpace:           true,
	GroupNuclear:         true,
	GroupGeoengineering:  true,
	GroupElectrification: true,
}

// Type classifies how a project is funded and presented to the player.
type Type string

const (
	TypePolicy     Type = "policy"
	TypeResearch   Type = "research"
	TypeInitiative Type = "initiative"
)

// Factor selects what a Dynamic cost scales with.
type Factor string

const (
	FactorTime   Factor = "time"
	FactorIncome Factor = "income"
	FactorOutput Factor = "output"
)

// Cost is either a fixed integer or a dynamic formula recomputed every
// year.
type Cost struct {
	Dynamic bool
	Fixed   int

	Coeff  float32
	Factor Factor
	Output int // kinds.Output, stored untyped to keep this struct comparable to zero value
}

// Outcome is one possible result of a completed project, gated by a
// Probability and contributing its own effects when selected.
type Outcome struct {
	Effects     []eventdsl.Effect
	Probability eventdsl.Probability
}

// Upgrade is one level of a project's progression beyond its base effects.
type Upgrade struct {
	Cost    int
	Effects []eventdsl.Effect
	Active  bool
}

// Project is a player action with a multi-year lifecycle.
type Project struct {
	Id       ids.Id
	Name     string
	Kind     Type
	Group    Group
	Ongoing  bool
	Gradual  bool
	Locked   bool

	Cost         Cost
	BaseCost     int
	CostModifier float32

	Progress float32
	Points   int
	Status   Status
	Level    int
	Estimate int

	CompletedAt int

	RequiredMajority float32

	Effects  []eventdsl.Effect
	Outcomes []Outcome
	Upgrades []Upgrade

	ActiveOutcome int
	HasOutcome    bool

	Supporters []ids.Id
	Opposers   []ids.Id

	Notes string
}

func (p *Project) GetId() ids.Id { return p.Id }

// YearsForPoints computes the number of years required to complete a
// project given the points assigned to it and its cost, per the engine's
// fixed exponent formula. Zero points never progresses; the caller treats
// such a project as paused rather than dividing by zero.
func YearsForPoints(points, cost int) float32 {
	if points <= 0 {
		return float32(math.Inf(1))
	}
	years := float32(cost) / float32(math.Pow(float64(points), 1./2.75))
	years = float32(math.Round(float64(years)))
	if years < 1 {
		years = 1
	}
	return years
}

// SetPoints assigns points to the project and recomputes its estimate.
func (p *Project) SetPoints(points int) {
	p.Points = points
	years := YearsForPoints(points, p.BaseCost)
	if math.IsInf(float64(years), 1) {
		p.Estimate = 0
		return
	}
	p.Estimate = int(years)
}

// Build advances progress by one year's worth, and is a no-op unless the
// project is currently Building. It returns true when this call completes
// the project.
func (p *Project) Build() bool {
	if p.Status != Building {
		return false
	}
	years := YearsForPoints(p.Points, p.BaseCost)
	if math.IsInf(float64(years), 1) {
		return false
	}
	p.Progress += 1. / years
	if p.Progress >= 1 {
		p.Progress = 1
		if p.Ongoing {
			p.Status = Active
		} else {
			p.Status = Finished
		}
		return true
	}
	return false
}

// ActiveEffects returns the effect set currently in force: the base
// effects at level 0, or the effects of the current upgrade level.
func (p *Project) ActiveEffects() []eventdsl.Effect {
	if p.Level == 0 {
		return p.Effects
	}
	return p.Upgrades[p.Level-1].Effects
}

// ActiveOutcomeEffects returns the effects of the rolled outcome, if any.
func (p *Project) ActiveOutcomeEffects() []eventdsl.Effect {
	if !p.HasOutcome || p.ActiveOutcome >= len(p.Outcomes) {
		return nil
	}
	return p.Outcomes[p.ActiveOutcome].Effects
}

// IsHaltable reports whether the project can currently be halted: it must
// be online, and either a Policy (which is always one-shot-reversible) or
// an ongoing project.
func (p *Project) IsHaltable() bool {
	online := p.Status == Active || p.Status == Finished
	return online && (p.Kind == TypePolicy || p.Ongoing)
}

// RollOutcome evaluates each outcome's Probability in declaration order
// against state and accepts the first success. If none succeed, outcome 0
// is the default. It does not mutate the project; the caller applies the
// result via SetActiveOutcome.
func (p *Project) RollOutcome(s eventdsl.ConditionState, regionId ids.Id, roll float32) (int, bool) {
	for i, o := range p.Outcomes {
		likelihood, ok := o.Probability.Eval(s, regionId)
		if !ok {
			continue
		}
		if roll <= likelihood.P() {
			return i, true
		}
	}
	if len(p.Outcomes) > 0 {
		return 0, true
	}
	return 0, false
}

// SetActiveOutcome records the rolled outcome index.
func (p *Project) SetActiveOutcome(i int) {
	p.ActiveOutcome = i
	p.HasOutcome = true
}

// UpdateCost recomputes Cost for the current year given world context, and
// returns the rounded, non-negative result after cost_modifier and the
// caller-supplied extern modifier are applied.
func (p *Project) UpdateCost(year int, incomeLevelAvg float32, outputDemand func(int) float32, externModifier float32) int {
	var base float32
	if !p.Cost.Dynamic {
		base = float32(p.Cost.Fixed)
	} else {
		switch p.Cost.Factor {
		case FactorTime:
			base = p.Cost.Coeff * float32(year-1980)
		case FactorIncome:
			base = p.Cost.Coeff * (1 + incomeLevelAvg)
		case FactorOutput:
			base = p.Cost.Coeff * outputDemand(p.Cost.Output)
		}
	}
	cost := base * p.CostModifier * externModifier
	cost = float32(math.Round(float64(cost)))
	if cost < 0 || math.IsNaN(float64(cost)) {
		cost = 0
	}
	p.BaseCost = int(cost)
	return p.BaseCost
}

// UpdateRequiredMajority recomputes RequiredMajority from the current NPC
// support/opposition counts: opponents is the number of unlocked opposers
// who are not Ally, supporters is the number of unlocked supporters.
func (p *Project) UpdateRequiredMajority(opposers, supporters int) {
	if opposers > supporters {
		p.RequiredMajority = 0.5
	} else {
		p.RequiredMajority = 0
	}
}
