package eventdsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"halfearth/internal/eventdsl"
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
)

// fakeState is a minimal in-memory stand-in implementing both
// ConditionState and EffectState, used to exercise the DSL in isolation
// from the full State orchestrator.
type fakeState struct {
	outputDemand   kinds.OutputMap
	outputProduced kinds.OutputMap
	resourceAvail  kinds.ResourceMap
	resourceDemand kinds.ResourceMap
	flags          map[string]bool
	regionOutlook  map[ids.Id]float32
	protectedLand  float32
	RegionIds2     []ids.Id
}

func newFakeState() *fakeState {
	return &fakeState{flags: map[string]bool{}, regionOutlook: map[ids.Id]float32{}}
}

func (f *fakeState) WorldVariable(eventdsl.WorldVar) float32                { return 0 }
func (f *fakeState) LocalVariable(eventdsl.LocalVar, ids.Id) (float32, bool) { return 0, false }
func (f *fakeState) PlayerVariable(eventdsl.PlayerVar) float32              { return 0 }
func (f *fakeState) ProcessOutput(ids.Id) (float32, bool)                   { return 0, false }
func (f *fakeState) ProcessMixPercent(ids.Id) float32                       { return 0 }
func (f *fakeState) ProcessMixPercentByFeature(int) float32                 { return 0 }
func (f *fakeState) ResourceAvailable(r kinds.Resource) float32             { return f.resourceAvail.Get(r) }
func (f *fakeState) ResourceDemand(r kinds.Resource) float32                { return f.resourceDemand.Get(r) }
func (f *fakeState) OutputDemand(o kinds.Output) float32                    { return f.outputDemand.Get(o) }
func (f *fakeState) OutputProduced(o kinds.Output) float32                  { return f.outputProduced.Get(o) }
func (f *fakeState) FeedstockYears(kinds.Feedstock) float32                 { return 0 }
func (f *fakeState) ProjectStatus(ids.Id) eventdsl.ProjectStatus            { return eventdsl.StatusInactive }
func (f *fakeState) ProjectLevel(ids.Id) int                                { return 0 }
func (f *fakeState) RunsPlayed() int                                       { return 0 }
func (f *fakeState) NPCRelationship(ids.Id) float32                        { return 0 }
func (f *fakeState) RegionHasFlag(ids.Id, string) bool                     { return false }
func (f *fakeState) HasFlag(flag string) bool                              { return f.flags[flag] }
func (f *fakeState) HeavyProjectsFinished() int                            { return 0 }
func (f *fakeState) ProtectedLand() float32                                { return f.protectedLand }
func (f *fakeState) WaterStress() float32                                  { return 0 }

func (f *fakeState) AddPlayerVariable(eventdsl.PlayerVar, float32)       {}
func (f *fakeState) ScaleResource(r kinds.Resource, mult float32) {
	f.resourceAvail.Set(r, f.resourceAvail.Get(r)*mult)
}
func (f *fakeState) AddOutputDemandModifier(kinds.Output, float32)     {}
func (f *fakeState) AddOutputModifier(kinds.Output, float32)           {}
func (f *fakeState) AddOutputDemandExtra(kinds.Output, float32)        {}
func (f *fakeState) AddOutputModifierForFeature(int, float32)          {}
func (f *fakeState) AddProcessOutputModifier(ids.Id, float32)          {}
func (f *fakeState) ScaleFeedstock(kinds.Feedstock, float32)           {}
func (f *fakeState) UnlockEvent(ids.Id)                                {}
func (f *fakeState) QueueEvent(ids.Id, ids.Id, int)                    {}
func (f *fakeState) UnlockProject(ids.Id)                              {}
func (f *fakeState) UnlockProcess(ids.Id)                              {}
func (f *fakeState) UnlockNPC(ids.Id)                                  {}
func (f *fakeState) LockProject(ids.Id)                                {}
func (f *fakeState) RequestProject(ids.Id, bool, int)                  {}
func (f *fakeState) RequestProcess(ids.Id, bool, int)                  {}
func (f *fakeState) Migrate(ids.Id)                                    {}
func (f *fakeState) SecedeRegion(ids.Id)                               {}
func (f *fakeState) AddRegionFlag(ids.Id, string)                      {}
func (f *fakeState) AddFlag(flag string)                               { f.flags[flag] = true }
func (f *fakeState) AddNPCRelationship(ids.Id, float32)                {}
func (f *fakeState) ScaleIndustryByproduct(ids.Id, kinds.Byproduct, float32) {}
func (f *fakeState) ScaleIndustryResource(ids.Id, kinds.Resource, float32)   {}
func (f *fakeState) AddIndustryDemandModifier(ids.Id, float32)         {}
func (f *fakeState) AddEventProbModifier(ids.Id, float32)              {}
func (f *fakeState) AddRegionOutlook(region ids.Id, delta float32)     { f.regionOutlook[region] += delta }
func (f *fakeState) RegionDemand(ids.Id, kinds.Output) float32         { return 100 }
func (f *fakeState) RegionAdjustedIncome(ids.Id) float32               { return 0 }
func (f *fakeState) AddProjectCostModifier(ids.Id, float32)            {}
func (f *fakeState) AddProtectedLand(delta float32)                    { f.protectedLand += delta }
func (f *fakeState) ScaleRegionPopulation(ids.Id, float32)             {}
func (f *fakeState) AddRegionBaseHabitability(ids.Id, float32)         {}
func (f *fakeState) AddYear(int)                                       {}
func (f *fakeState) ScaleWorldPopulation(float32)                      {}
func (f *fakeState) AddPopulationGrowthModifier(float32)               {}
func (f *fakeState) AddCo2Modifier(float32)                            {}
func (f *fakeState) AddCo2Emissions(float32)                           {}
func (f *fakeState) AddBiodiversityModifier(float32)                   {}
func (f *fakeState) AddWorldOutlook(float32)                           {}
func (f *fakeState) AddTemperatureModifier(float32)                    {}
func (f *fakeState) AddSeaLevelRise(float32)                           {}
func (f *fakeState) AddSeaLevelRiseRate(float32)                       {}
func (f *fakeState) AddPrecipitation(float32)                          {}
func (f *fakeState) RegionIds() []ids.Id                               { return f.RegionIds2 }

func TestOutputDemandGapScenario(t *testing.T) {
	s := newFakeState()
	s.outputDemand.Set(kinds.OutputPlantCalories, 100)
	cond := eventdsl.Condition{
		Kind:       eventdsl.KindOutputDemandGap,
		Output:     kinds.OutputPlantCalories,
		Comparator: eventdsl.GreaterEqual,
		Value:      0.15,
	}

	s.outputProduced.Set(kinds.OutputPlantCalories, 84)
	assert.True(t, cond.Eval(s, ids.Nil))

	s.outputProduced.Set(kinds.OutputPlantCalories, 100)
	assert.False(t, cond.Eval(s, ids.Nil))

	s.outputProduced.Set(kinds.OutputPlantCalories, 99)
	assert.False(t, cond.Eval(s, ids.Nil))

	s.outputProduced.Set(kinds.OutputPlantCalories, 50)
	assert.True(t, cond.Eval(s, ids.Nil))
}

func TestResourceEffectRoundTrip(t *testing.T) {
	s := newFakeState()
	s.resourceAvail.Set(kinds.Water, 100)

	e := eventdsl.Effect{Kind: eventdsl.EffectResource, Resource: kinds.Water, Change: 0.2}
	e.Apply(s, ids.Nil)
	assert.InDelta(t, 120, s.resourceAvail.Get(kinds.Water), 1e-3)

	e.Unapply(s, ids.Nil)
	assert.InDelta(t, 100, s.resourceAvail.Get(kinds.Water), 1e-3)
}

func TestDemandOutlookChangeAsymmetry(t *testing.T) {
	// RegionDemand is stubbed at 100; 0.0349*100 = 3.49, whose floor (3)
	// and round (3) agree, but 0.0351*100 = 3.51 floors to 3 and rounds to
	// 4 -- demonstrating the documented apply/unapply asymmetry.
	s := newFakeState()
	s.RegionIds2 = []ids.Id{ids.New()}

	e := eventdsl.Effect{Kind: eventdsl.EffectDemandOutlookChange, Output: kinds.OutputFuel, Change: 0.0351}
	e.Apply(s, ids.Nil)
	applied := s.regionOutlook[s.RegionIds2[0]]
	assert.InDelta(t, 3, applied, 1e-6)

	e.Unapply(s, ids.Nil)
	after := s.regionOutlook[s.RegionIds2[0]]
	assert.InDelta(t, 3-4, after, 1e-6)
}

func TestProtectLandEffect(t *testing.T) {
	s := newFakeState()
	e := eventdsl.Effect{Kind: eventdsl.EffectProtectLand, Change: 10}
	e.Apply(s, ids.Nil)
	assert.InDelta(t, 0.1, s.ProtectedLand(), 1e-4)
	e.Unapply(s, ids.Nil)
	assert.InDelta(t, 0, s.ProtectedLand(), 1e-4)
}

func TestEffectScalePassesThroughOneShot(t *testing.T) {
	e := eventdsl.Effect{Kind: eventdsl.EffectAddFlag, Flag: "vegetarian"}
	scaled := e.Scale(0.5)
	assert.Equal(t, e, scaled)
}

func TestEffectScaleScalesReversible(t *testing.T) {
	e := eventdsl.Effect{Kind: eventdsl.EffectOutput, Output: kinds.OutputFuel, Change: 10}
	scaled := e.Scale(0.25)
	assert.InDelta(t, 2.5, scaled.Change, 1e-4)
}

func TestHasFlagWithoutFlag(t *testing.T) {
	s := newFakeState()
	hasCond := eventdsl.Condition{Kind: eventdsl.KindHasFlag, Flag: "vegan"}
	withoutCond := eventdsl.Condition{Kind: eventdsl.KindWithoutFlag, Flag: "vegan"}

	assert.False(t, hasCond.Eval(s, ids.Nil))
	assert.True(t, withoutCond.Eval(s, ids.Nil))

	s.AddFlag("vegan")
	assert.True(t, hasCond.Eval(s, ids.Nil))
	assert.False(t, withoutCond.Eval(s, ids.Nil))
}

func TestBandOf(t *testing.T) {
	assert.Equal(t, eventdsl.BandNemesis, eventdsl.BandOf(-5))
	assert.Equal(t, eventdsl.BandNeutral, eventdsl.BandOf(0))
	assert.Equal(t, eventdsl.BandFriendly, eventdsl.BandOf(3))
	assert.Equal(t, eventdsl.BandAlly, eventdsl.BandOf(10))
}
