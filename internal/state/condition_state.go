package state

import (
	"halfearth/internal/eventdsl"
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
	"halfearth/internal/process"
	"halfearth/internal/project"
	"halfearth/internal/region"
)

// WorldVariable implements eventdsl.ConditionState.
func (s *State) WorldVariable(v eventdsl.WorldVar) float32 {
	switch v {
	case eventdsl.WorldYear:
		return float32(s.World.Year)
	case eventdsl.WorldPopulation:
		return s.totalPopulation()
	case eventdsl.WorldPopulationGrowth:
		return s.World.GrowthModifier()
	case eventdsl.WorldEmissions:
		return s.World.ByproductMods.Co2eq()
	case eventdsl.WorldExtinctionRate:
		return s.World.ExtinctionRate
	case eventdsl.WorldOutlook:
		return s.meanOutlook()
	case eventdsl.WorldTemperature:
		return s.World.TemperatureAnomaly + s.World.TemperatureModifier
	case eventdsl.WorldSeaLevelRise:
		return s.World.SeaLevelRise
	case eventdsl.WorldSeaLevelRiseRate:
		return s.World.SeaLevelRiseRate
	case eventdsl.WorldPrecipitation:
		return s.World.Precipitation
	default:
		return 0
	}
}

func (s *State) totalPopulation() float32 {
	var total float32
	s.Regions.Each(func(r *region.Region) bool {
		if !r.Seceded {
			total += r.Population
		}
		return true
	})
	return total
}

func (s *State) meanOutlook() float32 {
	var sum float32
	var n int
	s.Regions.Each(func(r *region.Region) bool {
		if !r.Seceded {
			sum += r.Outlook
			n++
		}
		return true
	})
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}

// LocalVariable implements eventdsl.ConditionState.
func (s *State) LocalVariable(v eventdsl.LocalVar, regionId ids.Id) (float32, bool) {
	r, ok := s.Regions.Get(regionId)
	if !ok {
		return 0, false
	}
	switch v {
	case eventdsl.LocalPopulation:
		return r.Population, true
	case eventdsl.LocalOutlook:
		return r.Outlook, true
	case eventdsl.LocalHabitability:
		return r.Habitability(), true
	default:
		return 0, false
	}
}

// PlayerVariable implements eventdsl.ConditionState.
func (s *State) PlayerVariable(v eventdsl.PlayerVar) float32 {
	switch v {
	case eventdsl.PlayerPoliticalCapital:
		return float32(s.PoliticalCapital)
	case eventdsl.PlayerResearchPoints:
		return float32(s.ResearchPoints)
	case eventdsl.PlayerYearsToDeath:
		return float32(s.DeathYear - s.World.Year)
	default:
		return 0
	}
}

// ProcessOutput implements eventdsl.ConditionState.
func (s *State) ProcessOutput(processId ids.Id) (float32, bool) {
	v, ok := s.Produced.ByProcess[processId]
	return v, ok
}

// ProcessMixPercent implements eventdsl.ConditionState.
func (s *State) ProcessMixPercent(processId ids.Id) float32 {
	p, ok := s.Processes.Get(processId)
	if !ok {
		return 0
	}
	return p.MixPercent()
}

// ProcessMixPercentByFeature implements eventdsl.ConditionState.
func (s *State) ProcessMixPercentByFeature(feature int) float32 {
	var total float32
	s.Processes.Each(func(p *process.Process) bool {
		if p.HasFeature(process.Feature(feature)) {
			total += p.MixPercent()
		}
		return true
	})
	return total
}

// ResourceAvailable implements eventdsl.ConditionState.
func (s *State) ResourceAvailable(r kinds.Resource) float32 { return s.Resources.Get(r) }

// ResourceDemand implements eventdsl.ConditionState.
func (s *State) ResourceDemand(r kinds.Resource) float32 { return s.ResourceDemandTotals.Get(r) }

// OutputDemand implements eventdsl.ConditionState.
func (s *State) OutputDemand(o kinds.Output) float32 { return s.OutputDemandTotals.Get(o) }

// OutputProduced implements eventdsl.ConditionState.
func (s *State) OutputProduced(o kinds.Output) float32 { return s.Produced.Amount.Get(o) }

// FeedstockYears implements eventdsl.ConditionState.
func (s *State) FeedstockYears(f kinds.Feedstock) float32 {
	annual := s.feedstockAnnualConsumption(f)
	return s.Feedstocks.UntilExhaustion(f, annual)
}

func (s *State) feedstockAnnualConsumption(f kinds.Feedstock) float32 {
	var total float32
	s.Processes.Each(func(p *process.Process) bool {
		if p.Feedstock.Kind == f {
			total += p.Feedstock.Amount * p.MixPercent() * s.OutputDemand(p.Output)
		}
		return true
	})
	return total
}

// ProjectStatus implements eventdsl.ConditionState.
func (s *State) ProjectStatus(projectId ids.Id) eventdsl.ProjectStatus {
	p, ok := s.Projects.Get(projectId)
	if !ok {
		return eventdsl.StatusInactive
	}
	return p.Status.DSLStatus()
}

// ProjectLevel implements eventdsl.ConditionState.
func (s *State) ProjectLevel(projectId ids.Id) int {
	p, ok := s.Projects.Get(projectId)
	if !ok {
		return 0
	}
	return p.Level
}

// RunsPlayed implements eventdsl.ConditionState.
func (s *State) RunsPlayed() int { return s.Runs }

// NPCRelationship implements eventdsl.ConditionState.
func (s *State) NPCRelationship(npcId ids.Id) float32 {
	n, ok := s.NPCs.Get(npcId)
	if !ok {
		return 0
	}
	return n.Relationship
}

// RegionHasFlag implements eventdsl.ConditionState.
func (s *State) RegionHasFlag(regionId ids.Id, flag string) bool {
	flags, ok := s.RegionFlags[regionId]
	return ok && flags[flag]
}

// HasFlag implements eventdsl.ConditionState.
func (s *State) HasFlag(flag string) bool { return s.Flags[flag] }

// HeavyProjectsFinished implements eventdsl.ConditionState.
func (s *State) HeavyProjectsFinished() int {
	count := 0
	s.Projects.Each(func(p *project.Project) bool {
		if p.Status == project.Finished && project.HeavyGroups[p.Group] {
			count++
		}
		return true
	})
	return count
}

// ProtectedLand implements eventdsl.ConditionState.
func (s *State) ProtectedLand() float32 { return s.ProtectedLandPct }

// WaterStress implements eventdsl.ConditionState.
func (s *State) WaterStress() float32 {
	demand := s.ResourceDemand(kinds.Water)
	avail := s.Resources.Get(kinds.Water)
	if avail == 0 {
		return 0
	}
	return demand / avail
}
