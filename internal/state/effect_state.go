package state

import (
	"halfearth/internal/eventdsl"
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
	"halfearth/internal/process"
	"halfearth/internal/region"
)

// AddPlayerVariable implements eventdsl.EffectState.
func (s *State) AddPlayerVariable(v eventdsl.PlayerVar, delta float32) {
	switch v {
	case eventdsl.PlayerPoliticalCapital:
		s.PoliticalCapital += int(delta)
	case eventdsl.PlayerResearchPoints:
		s.ResearchPoints += int(delta)
	}
}

// ScaleResource implements eventdsl.EffectState.
func (s *State) ScaleResource(r kinds.Resource, mult float32) {
	s.Resources.Set(r, s.Resources.Get(r)*mult)
}

// AddOutputDemandModifier implements eventdsl.EffectState.
func (s *State) AddOutputDemandModifier(o kinds.Output, delta float32) {
	s.OutputDemandModifier.Set(o, s.OutputDemandModifier.Get(o)+delta)
}

// AddOutputModifier implements eventdsl.EffectState.
func (s *State) AddOutputModifier(o kinds.Output, delta float32) {
	s.OutputModifier.Set(o, s.OutputModifier.Get(o)+delta)
}

// AddOutputDemandExtra implements eventdsl.EffectState.
func (s *State) AddOutputDemandExtra(o kinds.Output, delta float32) {
	s.OutputDemandExtras.Set(o, s.OutputDemandExtras.Get(o)+delta)
}

// AddOutputModifierForFeature implements eventdsl.EffectState.
func (s *State) AddOutputModifierForFeature(feature int, delta float32) {
	s.OutputModifierByFeature[process.Feature(feature)] += delta
	s.Processes.Each(func(p *process.Process) bool {
		if p.HasFeature(process.Feature(feature)) {
			p.OutputModifier += delta
		}
		return true
	})
}

// AddProcessOutputModifier implements eventdsl.EffectState.
func (s *State) AddProcessOutputModifier(processId ids.Id, delta float32) {
	if p, ok := s.Processes.Get(processId); ok {
		p.OutputModifier += delta
	}
}

// ScaleFeedstock implements eventdsl.EffectState.
func (s *State) ScaleFeedstock(f kinds.Feedstock, mult float32) {
	s.Feedstocks.Set(f, s.Feedstocks.Get(f)*mult)
}

// UnlockEvent implements eventdsl.EffectState.
func (s *State) UnlockEvent(eventId ids.Id) {
	if ev, ok := s.EventPool.Events.Get(eventId); ok {
		ev.Locked = false
	}
}

// QueueEvent implements eventdsl.EffectState.
func (s *State) QueueEvent(eventId ids.Id, region ids.Id, delayYears int) {
	s.EventPool.QueueEvent(eventId, region, delayYears)
}

// UnlockProject implements eventdsl.EffectState.
func (s *State) UnlockProject(projectId ids.Id) {
	if p, ok := s.Projects.Get(projectId); ok {
		p.Locked = false
	}
}

// UnlockProcess implements eventdsl.EffectState.
func (s *State) UnlockProcess(processId ids.Id) {
	if p, ok := s.Processes.Get(processId); ok {
		p.Locked = false
	}
}

// UnlockNPC implements eventdsl.EffectState.
func (s *State) UnlockNPC(npcId ids.Id) {
	if n, ok := s.NPCs.Get(npcId); ok {
		n.Locked = false
	}
}

// LockProject implements eventdsl.EffectState.
func (s *State) LockProject(projectId ids.Id) {
	if p, ok := s.Projects.Get(projectId); ok {
		p.Locked = true
	}
}

// RequestProject implements eventdsl.EffectState.
func (s *State) RequestProject(id ids.Id, add bool, points int) {
	s.Requests = append(s.Requests, Request{IsProject: true, Id: id, Add: add, Points: points})
}

// RequestProcess implements eventdsl.EffectState.
func (s *State) RequestProcess(id ids.Id, add bool, points int) {
	s.Requests = append(s.Requests, Request{IsProject: false, Id: id, Add: add, Points: points})
}

// Migrate implements eventdsl.EffectState: it removes 10% of the source
// region's population and distributes it equally among every other
// region whose habitability exceeds the world mean.
func (s *State) Migrate(source ids.Id) {
	src, ok := s.Regions.Get(source)
	if !ok {
		return
	}
	leaving := src.Population * 0.1
	src.Population -= leaving

	var habitabilities []float32
	s.Regions.Each(func(r *region.Region) bool {
		if !r.Seceded {
			habitabilities = append(habitabilities, r.Habitability())
		}
		return true
	})
	mean := region.MeanHabitability(habitabilities)

	var targets []*region.Region
	s.Regions.Each(func(r *region.Region) bool {
		if r.Id != source && !r.Seceded && r.Habitability() > mean {
			targets = append(targets, r)
		}
		return true
	})
	if len(targets) == 0 {
		return
	}
	perRegion := leaving / float32(len(targets))
	for _, t := range targets {
		t.Population += perRegion
	}
}

// SecedeRegion implements eventdsl.EffectState.
func (s *State) SecedeRegion(regionId ids.Id) {
	if r, ok := s.Regions.Get(regionId); ok {
		r.Seceded = true
	}
}

// AddRegionFlag implements eventdsl.EffectState.
func (s *State) AddRegionFlag(regionId ids.Id, flag string) {
	if s.RegionFlags[regionId] == nil {
		s.RegionFlags[regionId] = map[string]bool{}
	}
	s.RegionFlags[regionId][flag] = true
}

// AddFlag implements eventdsl.EffectState.
func (s *State) AddFlag(flag string) { s.Flags[flag] = true }

// AddNPCRelationship implements eventdsl.EffectState.
func (s *State) AddNPCRelationship(npcId ids.Id, delta float32) {
	if n, ok := s.NPCs.Get(npcId); ok {
		n.Relationship += delta
	}
}

// ScaleIndustryByproduct implements eventdsl.EffectState.
func (s *State) ScaleIndustryByproduct(industryId ids.Id, b kinds.Byproduct, mult float32) {
	if ind, ok := s.Industries.Get(industryId); ok {
		ind.Byproducts.Set(b, ind.Byproducts.Get(b)*mult)
	}
}

// ScaleIndustryResource implements eventdsl.EffectState.
func (s *State) ScaleIndustryResource(industryId ids.Id, r kinds.Resource, mult float32) {
	if ind, ok := s.Industries.Get(industryId); ok {
		ind.Resources.Set(r, ind.Resources.Get(r)*mult)
	}
}

// AddIndustryDemandModifier implements eventdsl.EffectState.
func (s *State) AddIndustryDemandModifier(industryId ids.Id, delta float32) {
	if ind, ok := s.Industries.Get(industryId); ok {
		ind.DemandModifier += delta
	}
}

// AddEventProbModifier implements eventdsl.EffectState.
func (s *State) AddEventProbModifier(eventId ids.Id, delta float32) {
	s.EventProbModifiers[eventId] += delta
	if ev, ok := s.EventPool.Events.Get(eventId); ok {
		ev.ProbModifier += delta
	}
}

// AddRegionOutlook implements eventdsl.EffectState.
func (s *State) AddRegionOutlook(regionId ids.Id, delta float32) {
	if r, ok := s.Regions.Get(regionId); ok {
		r.Outlook += delta
	}
}

// RegionDemand implements eventdsl.EffectState.
func (s *State) RegionDemand(regionId ids.Id, o kinds.Output) float32 {
	r, ok := s.Regions.Get(regionId)
	if !ok {
		return 0
	}
	return r.Demand(o, s.World.PerCapitaDemand[r.Income], s.OutputDemandModifier, s.OutputDemandExtras)
}

// RegionAdjustedIncome implements eventdsl.EffectState.
func (s *State) RegionAdjustedIncome(regionId ids.Id) float32 {
	r, ok := s.Regions.Get(regionId)
	if !ok {
		return 0
	}
	return r.AdjustedIncome()
}

// AddProjectCostModifier implements eventdsl.EffectState.
func (s *State) AddProjectCostModifier(projectId ids.Id, delta float32) {
	s.ProjectCostModifiers[projectId] += delta
	if p, ok := s.Projects.Get(projectId); ok {
		p.CostModifier += delta
	}
}

// AddProtectedLand implements eventdsl.EffectState.
func (s *State) AddProtectedLand(delta float32) {
	s.ProtectedLandPct += delta
	if s.ProtectedLandPct < 0 {
		s.ProtectedLandPct = 0
	}
	if s.ProtectedLandPct > 1 {
		s.ProtectedLandPct = 1
	}
}

// ScaleRegionPopulation implements eventdsl.EffectState.
func (s *State) ScaleRegionPopulation(regionId ids.Id, mult float32) {
	if r, ok := s.Regions.Get(regionId); ok {
		r.Population *= mult
	}
}

// AddRegionBaseHabitability implements eventdsl.EffectState.
func (s *State) AddRegionBaseHabitability(regionId ids.Id, delta float32) {
	if r, ok := s.Regions.Get(regionId); ok {
		r.BaseHabitability += delta
	}
}

// AddYear implements eventdsl.EffectState.
func (s *State) AddYear(delta int) { s.World.Year += delta }

// ScaleWorldPopulation implements eventdsl.EffectState: it scales every
// non-seceded region's population by factor, distributing the change
// proportionally rather than only at the aggregate level, since World
// itself holds no population field of its own.
func (s *State) ScaleWorldPopulation(factor float32) {
	s.Regions.Each(func(r *region.Region) bool {
		if !r.Seceded {
			r.Population *= factor
		}
		return true
	})
}

// AddPopulationGrowthModifier implements eventdsl.EffectState.
func (s *State) AddPopulationGrowthModifier(delta float32) {
	s.World.PopulationGrowthModifier += delta
}

// AddCo2Modifier implements eventdsl.EffectState.
func (s *State) AddCo2Modifier(delta float32) {
	s.World.ByproductMods.Set(kinds.Co2, s.World.ByproductMods.Get(kinds.Co2)+delta)
}

// AddCo2Emissions implements eventdsl.EffectState.
func (s *State) AddCo2Emissions(delta float32) { s.World.Co2Emissions += delta }

// AddBiodiversityModifier implements eventdsl.EffectState.
func (s *State) AddBiodiversityModifier(delta float32) {
	s.World.ByproductMods.Set(kinds.Biodiversity, s.World.ByproductMods.Get(kinds.Biodiversity)+delta)
}

// AddWorldOutlook implements eventdsl.EffectState: outlook is region-
// owned, so a world-scoped outlook effect is spread evenly over every
// non-seceded region.
func (s *State) AddWorldOutlook(delta float32) {
	regions := s.RegionIdList()
	if len(regions) == 0 {
		return
	}
	each := delta / float32(len(regions))
	for _, id := range regions {
		s.AddRegionOutlook(id, each)
	}
}

// AddTemperatureModifier implements eventdsl.EffectState.
func (s *State) AddTemperatureModifier(delta float32) { s.World.TemperatureModifier += delta }

// AddSeaLevelRise implements eventdsl.EffectState.
func (s *State) AddSeaLevelRise(delta float32) { s.World.SeaLevelRise += delta }

// AddSeaLevelRiseRate implements eventdsl.EffectState.
func (s *State) AddSeaLevelRiseRate(delta float32) { s.World.SeaLevelRiseRate += delta }

// AddPrecipitation implements eventdsl.EffectState.
func (s *State) AddPrecipitation(delta float32) { s.World.Precipitation += delta }

// RegionIds implements eventdsl.EffectState.
func (s *State) RegionIds() []ids.Id { return s.RegionIdList() }
