package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"halfearth/internal/eventdsl"
	"halfearth/internal/eventpool"
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
	"halfearth/internal/npc"
	"halfearth/internal/process"
	"halfearth/internal/project"
	"halfearth/internal/region"
	"halfearth/internal/rng"
	"halfearth/internal/state"
)

func newTestRegion(income region.Income, population float32) *region.Region {
	return &region.Region{
		Id:               ids.New(),
		Name:             "test region",
		Population:       population,
		Income:           income,
		BaseHabitability: 1,
		TemperatureRange: [2]float32{-5, 30},
	}
}

func newTestState() *state.State {
	s := state.New()
	r := newTestRegion(region.Low, 100)
	s.Regions.Add(r)
	s.World.SetRegionIds([]ids.Id{r.Id})
	s.World.PerCapitaDemand[region.Low].Set(kinds.OutputFuel, 1)
	s.World.StartingResources.Set(kinds.Water, 1000)
	return s
}

// TestOutputDemandGapScenario reproduces the spec's scenario 1 exactly,
// wired through State rather than a fake ConditionState.
func TestOutputDemandGapScenario(t *testing.T) {
	s := newTestState()
	s.OutputDemandTotals.Set(kinds.OutputFuel, 100)
	s.Produced.Amount.Set(kinds.OutputFuel, 84)

	cond := eventdsl.Condition{
		Kind:       eventdsl.KindOutputDemandGap,
		Output:     kinds.OutputFuel,
		Comparator: eventdsl.GreaterEqual,
		Value:      0.15,
	}
	assert.True(t, cond.Eval(s, ids.Nil))

	s.Produced.Amount.Set(kinds.OutputFuel, 100)
	assert.False(t, cond.Eval(s, ids.Nil))

	s.Produced.Amount.Set(kinds.OutputFuel, 99)
	assert.False(t, cond.Eval(s, ids.Nil))

	s.Produced.Amount.Set(kinds.OutputFuel, 50)
	assert.True(t, cond.Eval(s, ids.Nil))
}

// TestProductionScarcityScenario wires the spec's scenario 4 planner
// fixture through a full State.StepYear call.
func TestProductionScarcityScenario(t *testing.T) {
	s := state.New()
	r := newTestRegion(region.Low, 100)
	s.Regions.Add(r)
	s.World.SetRegionIds([]ids.Id{r.Id})
	s.World.PerCapitaDemand[region.Low].Set(kinds.OutputFuel, 1)
	s.World.PerCapitaDemand[region.Low].Set(kinds.OutputElectricity, 1)

	procA := &process.Process{Id: ids.New(), Name: "A", Output: kinds.OutputFuel, MixShare: 10, Feedstock: process.Feedstock{Kind: kinds.Oil, Amount: 1}}
	procA.Resources.Set(kinds.Water, 1)
	procB := &process.Process{Id: ids.New(), Name: "B", Output: kinds.OutputFuel, MixShare: 10, Feedstock: process.Feedstock{Kind: kinds.Oil, Amount: 1}}
	procB.Resources.Set(kinds.Water, 1)
	procC := &process.Process{Id: ids.New(), Name: "C", Output: kinds.OutputElectricity, MixShare: 20, Feedstock: process.Feedstock{Kind: kinds.Coal, Amount: 1}}
	procC.Resources.Set(kinds.Water, 1)
	s.Processes.Add(procA)
	s.Processes.Add(procB)
	s.Processes.Add(procC)

	// Demand (~100 for each output, given 100 population at 1 unit/capita)
	// comfortably exceeds the 80 units of water on hand, so total output
	// across both outputs is pinned at the water ceiling regardless of the
	// exact demand split the step computes.
	s.World.StartingResources.Set(kinds.Water, 80)
	s.Feedstocks.Set(kinds.Oil, 100)
	s.Feedstocks.Set(kinds.Coal, 100)

	s.StepYear(0, rng.New(1))

	total := s.Produced.Amount.Get(kinds.OutputFuel) + s.Produced.Amount.Get(kinds.OutputElectricity)
	assert.InDelta(t, 80, total, 1e-1)
	assert.InDelta(t, 80, s.World.StartingResources.Get(kinds.Water)-s.Resources.Get(kinds.Water), 1e-1)
}

func TestStepYearAdvancesCalendarAndDoesNotPanic(t *testing.T) {
	s := newTestState()
	s.World.Year = 2000
	u := s.StepYear(1.2, rng.New(42))
	assert.Equal(t, 2001, s.World.Year)
	assert.Equal(t, 2001, u.Year)
}

func TestProjectLifecycleThroughState(t *testing.T) {
	s := newTestState()
	npcSupporter := &npc.NPC{Id: ids.New(), Name: "ally", Relationship: 6, Seats: 10}
	s.NPCs.Add(npcSupporter)

	p := &project.Project{
		Id:       ids.New(),
		Name:     "Test Policy",
		Kind:     project.TypePolicy,
		BaseCost: 4,
		Effects: []eventdsl.Effect{
			{Kind: eventdsl.EffectPlayerVariable, PlayerVar: eventdsl.PlayerPoliticalCapital, Change: 10},
		},
		Supporters: []ids.Id{npcSupporter.Id},
	}
	p.SetPoints(4)
	s.Projects.Add(p)

	s.StartProject(p.Id)
	require.Equal(t, project.Building, p.Status)

	for i := 0; i < 3; i++ {
		s.StepYear(0, rng.New(int64(i)))
	}
	require.Equal(t, project.Finished, p.Status)
	assert.Equal(t, 10, s.PoliticalCapital)
	assert.InDelta(t, 7, npcSupporter.Relationship, 1e-6)

	s.StopProject(p.Id)
	assert.Equal(t, project.Halted, p.Status)
	assert.Equal(t, 0, s.PoliticalCapital)
	assert.InDelta(t, 6, npcSupporter.Relationship, 1e-6)
}

func TestEventDedupCountdownThroughState(t *testing.T) {
	s := newTestState()
	ev := eventpool.NewEvent(ids.New(), "countdown event", eventpool.PhaseWorldMain)
	ev.Locked = false
	s.EventPool.Events.Add(ev)
	s.EventPool.QueueEvent(ev.Id, ids.Nil, 2)

	source := rng.New(7)
	first := s.EventPool.RollForPhase(eventpool.PhaseWorldMain, s, s.RegionIdList(), 0, source)
	assert.Empty(t, first)

	second := s.EventPool.RollForPhase(eventpool.PhaseWorldMain, s, s.RegionIdList(), 0, source)
	require.Len(t, second, 1)
	assert.Equal(t, ev.Id, second[0].Event.Id)

	third := s.EventPool.RollForPhase(eventpool.PhaseWorldMain, s, s.RegionIdList(), 0, source)
	assert.Empty(t, third)
}

func TestFinishCycleAppliesQueuedUpgrade(t *testing.T) {
	s := newTestState()
	p := &project.Project{
		Id:     ids.New(),
		Name:   "Research Thing",
		Kind:   project.TypeResearch,
		Status: project.Active,
		Upgrades: []project.Upgrade{
			{Cost: 1, Effects: []eventdsl.Effect{
				{Kind: eventdsl.EffectPlayerVariable, PlayerVar: eventdsl.PlayerResearchPoints, Change: 5},
			}},
		},
	}
	s.Projects.Add(p)

	s.UpgradeProject(p.Id)
	assert.Equal(t, 0, p.Level, "non-Policy upgrade is deferred, not immediate")

	report := s.FinishCycle()
	assert.Equal(t, 1, p.Level)
	// +5 from the upgrade's effect, +1 from the cycle's own Research-project
	// point collection (p.Status is Active throughout).
	assert.Equal(t, 6, s.ResearchPoints)
	assert.Contains(t, report.LevelsChanged, p.Id)
}

func TestWaterStressZeroWhenNoAvailability(t *testing.T) {
	s := newTestState()
	s.Resources.Set(kinds.Water, 0)
	s.ResourceDemandTotals.Set(kinds.Water, 50)
	assert.Equal(t, float32(0), s.WaterStress())
}
