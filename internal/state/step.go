package state

import (
	"halfearth/internal/eventpool"
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
	"halfearth/internal/planner"
	"halfearth/internal/process"
	"halfearth/internal/project"
	"halfearth/internal/region"
	"halfearth/internal/rng"
)

// developmentRate is the fixed per-year nudge toward a region's next
// income band. No original_source value survived retrieval for this
// constant; chosen directly from the specification's description of a
// gradual multi-year transition.
const developmentRate = 0.02

// Update is the per-step report returned to the caller: the engine never
// raises exceptions, so every observable consequence of a year passing is
// surfaced here instead.
type Update struct {
	Year             int
	CompletedProjects []ids.Id
	Occurring        []eventpool.Occurring
	OutputDemandGap  kinds.OutputMap
	Gtco2eq          float32
}

// StepYear advances the simulation by one year given the externally
// computed global temperature anomaly tgav, following the engine's fixed
// eleven-step sequence. source supplies all randomness for this step
// (event rolls, production tie-breaks are deterministic and need none).
func (s *State) StepYear(tgav float32, source rng.Source) Update {
	// 1. Update world coefficients with tgav.
	s.World.TemperatureAnomaly = tgav
	s.World.UpdateSeaLevelRiseRate(tgav)
	s.World.UpdatePrecipitation(tgav)
	s.World.UpdatePopulationGrowthModifier(tgav)

	// 2. Grow population and development per region.
	s.Regions.Each(func(r *region.Region) bool {
		if r.Seceded {
			return true
		}
		r.RecomputeHabitabilityPenalty(tgav, s.World.SeaLevelRise, 0)
		r.GrowPopulationAndDevelopment(s.World.GrowthModifier(), developmentRate)
		return true
	})

	// 3. Compute demand.
	s.recomputeDemand()

	// 4. Update project costs.
	incomeAvg := s.incomeLevelAvg()
	s.Projects.Each(func(p *project.Project) bool {
		p.UpdateCost(s.World.Year, incomeAvg, func(o int) float32 {
			return s.OutputDemandTotals.Get(kinds.Output(o))
		}, 1)
		return true
	})

	// 5 & 6. Advance Building projects, fold changes, roll outcomes for the
	// newly completed.
	var completed []ids.Id
	s.Projects.Each(func(p *project.Project) bool {
		if p.Status != project.Building {
			return true
		}
		ch := p.Advance()
		s.foldProjectChanges(p, ch)
		if ch.Completed {
			completed = append(completed, p.Id)
			s.rollProjectOutcome(p, source)
		}
		return true
	})

	// 7. Build production orders, run the planner, record output.
	s.runProduction()

	// 8. Accumulate byproducts into emissions.
	// (folded into runProduction, which owns the planner Result.)

	// 9. Update region outlook/habitability from shortages.
	gap := s.updateOutlooks()

	// 10. Recompute extinction rate.
	s.World.RecomputeExtinctionRate(s.ProtectedLandPct)

	// 11. Advance year.
	s.World.Year++

	occurring := s.rollEvents(source)

	return Update{
		Year:              s.World.Year,
		CompletedProjects: completed,
		Occurring:         occurring,
		OutputDemandGap:   gap,
		Gtco2eq:           s.Co2eqGt(),
	}
}

func (s *State) incomeLevelAvg() float32 {
	var sum float32
	var n int
	s.Regions.Each(func(r *region.Region) bool {
		if !r.Seceded {
			sum += r.Income.Level()
			n++
		}
		return true
	})
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}

func (s *State) recomputeDemand() {
	var total kinds.OutputMap
	s.Regions.Each(func(r *region.Region) bool {
		if r.Seceded {
			return true
		}
		perCapita := s.World.PerCapitaDemand[r.Income]
		for o := kinds.Output(0); int(o) < len(total); o++ {
			d := r.Demand(o, perCapita, s.OutputDemandModifier, s.OutputDemandExtras)
			total.Set(o, total.Get(o)+d)
		}
		return true
	})
	s.OutputDemandTotals = total
}

// foldProjectChanges applies/unapplies a lifecycle Changes value into
// state, resolving supporter/opposer relationship deltas against the
// project's own Supporters/Opposers id lists.
func (s *State) foldProjectChanges(p *project.Project, ch project.Changes) {
	for _, e := range ch.RemoveEffects {
		e.Unapply(s, ids.Nil)
	}
	for _, e := range ch.AddEffects {
		e.Apply(s, ids.Nil)
	}
	for _, i := range ch.SupporterDeltas {
		if i < len(p.Supporters) {
			s.AddNPCRelationship(p.Supporters[i], project.RelationshipChangeAmount)
		}
	}
	for _, i := range ch.OpposerDeltas {
		if i < len(p.Opposers) {
			s.AddNPCRelationship(p.Opposers[i], -project.RelationshipChangeAmount)
		}
	}
}

func (s *State) rollProjectOutcome(p *project.Project, source rng.Source) {
	if len(p.Outcomes) == 0 {
		return
	}
	idx, ok := p.RollOutcome(s, ids.Nil, source.Float32())
	if !ok {
		return
	}
	p.SetActiveOutcome(idx)
	for _, e := range p.Outcomes[idx].Effects {
		e.Apply(s, ids.Nil)
	}
}

func (s *State) runProduction() {
	globalMod := func(o kinds.Output) float32 { return s.OutputModifier.Get(o) }

	var orders []planner.Order
	s.Processes.Each(func(p *process.Process) bool {
		if p.Locked {
			return true
		}
		mod := globalMod(p.Output)
		orders = append(orders, planner.Order{
			ProcessId:       p.Id,
			Output:          p.Output,
			Amount:          s.OutputDemandTotals.Get(p.Output) * p.MixPercent(),
			Resources:       p.AdjustedResources(mod),
			Byproducts:      p.AdjustedByproducts(mod),
			Feedstock:       p.Feedstock.Kind,
			FeedstockAmount: p.AdjustedFeedstockAmount(mod),
		})
		return true
	})

	requiredResources, _ := planner.CalculateRequired(orders)
	s.ResourceDemandTotals = requiredResources

	result := planner.CalculateProduction(orders, s.World.StartingResources, s.Feedstocks)
	s.Resources = s.World.StartingResources.Sub(result.ConsumedResources)
	s.Feedstocks = s.Feedstocks.Sub(result.ConsumedFeedstocks)

	var produced kinds.OutputMap
	byProcess := make(map[ids.Id]float32, len(orders))
	for i, o := range orders {
		produced.Set(o.Output, produced.Get(o.Output)+result.Produced[i])
		byProcess[o.ProcessId] = result.Produced[i]
	}
	s.Produced = Produced{Amount: produced, ByProcess: byProcess}

	s.World.ByproductMods = s.World.ByproductMods.Add(result.ProducedByproducts)
	s.World.Co2Emissions += result.ProducedByproducts.Get(kinds.Co2)
}

// updateOutlooks lowers each region's outlook in proportion to unmet
// demand, and returns the world's aggregate output demand gap (1 when a
// demand is wholly unmet, 0 once it is fully met).
func (s *State) updateOutlooks() kinds.OutputMap {
	var gap kinds.OutputMap
	for o := kinds.Output(0); int(o) < len(gap); o++ {
		demand := s.OutputDemandTotals.Get(o)
		if demand <= 0 {
			gap.Set(o, 0)
			continue
		}
		produced := s.Produced.Amount.Get(o)
		g := 1 - produced/demand
		if g < 0 {
			g = 0
		}
		gap.Set(o, g)
	}

	var meanGap float32
	for o := kinds.Output(0); int(o) < len(gap); o++ {
		meanGap += gap.Get(o)
	}
	meanGap /= float32(len(gap))

	s.Regions.Each(func(r *region.Region) bool {
		if !r.Seceded {
			r.Outlook -= meanGap * 5
		}
		return true
	})

	return gap
}

func (s *State) rollEvents(source rng.Source) []eventpool.Occurring {
	return s.EventPool.RollForPhase(eventpool.PhaseWorldMain, s, s.RegionIdList(), 0, source)
}
