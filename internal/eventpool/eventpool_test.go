package eventpool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"halfearth/internal/eventdsl"
	"halfearth/internal/eventpool"
	"halfearth/internal/ids"
	"halfearth/internal/kinds"
	"halfearth/internal/rng"
)

// fakeState implements eventdsl.ConditionState, tracking only per-region
// population for the Icon-event regional-dispatch scenario; every other
// reader returns a zero value.
type fakeState struct {
	population map[ids.Id]float32
}

func (f *fakeState) WorldVariable(eventdsl.WorldVar) float32 { return 0 }
func (f *fakeState) LocalVariable(v eventdsl.LocalVar, region ids.Id) (float32, bool) {
	if v != eventdsl.LocalPopulation {
		return 0, false
	}
	p, ok := f.population[region]
	return p, ok
}
func (f *fakeState) PlayerVariable(eventdsl.PlayerVar) float32            { return 0 }
func (f *fakeState) ProcessOutput(ids.Id) (float32, bool)                 { return 0, false }
func (f *fakeState) ProcessMixPercent(ids.Id) float32                     { return 0 }
func (f *fakeState) ProcessMixPercentByFeature(int) float32               { return 0 }
func (f *fakeState) ResourceAvailable(kinds.Resource) float32             { return 0 }
func (f *fakeState) ResourceDemand(kinds.Resource) float32                { return 0 }
func (f *fakeState) OutputDemand(kinds.Output) float32                    { return 0 }
func (f *fakeState) OutputProduced(kinds.Output) float32                  { return 0 }
func (f *fakeState) FeedstockYears(kinds.Feedstock) float32               { return 0 }
func (f *fakeState) ProjectStatus(ids.Id) eventdsl.ProjectStatus          { return eventdsl.StatusInactive }
func (f *fakeState) ProjectLevel(ids.Id) int                              { return 0 }
func (f *fakeState) RunsPlayed() int                                      { return 0 }
func (f *fakeState) NPCRelationship(ids.Id) float32                       { return 0 }
func (f *fakeState) RegionHasFlag(ids.Id, string) bool                    { return false }
func (f *fakeState) HasFlag(string) bool                                  { return false }
func (f *fakeState) HeavyProjectsFinished() int                           { return 0 }
func (f *fakeState) ProtectedLand() float32                               { return 0 }
func (f *fakeState) WaterStress() float32                                 { return 0 }

func TestEventPoolCountdownDedup(t *testing.T) {
	pool := eventpool.NewPool()
	eventId := ids.New()
	ev := eventpool.NewEvent(eventId, "E", eventpool.PhaseWorldMain)
	ev.Locked = true
	pool.Events.Add(ev)
	pool.QueueEvent(eventId, ids.Nil, 2)

	s := &fakeState{population: map[ids.Id]float32{}}
	source := rng.New(1)

	out := pool.RollForPhase(eventpool.PhaseWorldMain, s, nil, 0, source)
	assert.Empty(t, out)

	out = pool.RollForPhase(eventpool.PhaseWorldMain, s, nil, 0, source)
	assert.Len(t, out, 1)
	assert.Equal(t, eventId, out[0].Event.Id)

	for i := 0; i < 3; i++ {
		out = pool.RollForPhase(eventpool.PhaseWorldMain, s, nil, 0, source)
		assert.Empty(t, out)
	}
}

func TestEventPoolIconRegionalDispatch(t *testing.T) {
	pool := eventpool.NewPool()
	eventId := ids.New()
	ev := eventpool.NewEvent(eventId, "Disaster", eventpool.PhaseIcon)
	ev.Probabilities = []eventdsl.Probability{{
		Likelihood: eventdsl.Guaranteed,
		Conditions: []eventdsl.Condition{{
			Kind: eventdsl.KindLocalVariable, LocalVar: eventdsl.LocalPopulation,
			Comparator: eventdsl.Equal, Value: 10,
		}},
	}}
	pool.Events.Add(ev)

	regionA, regionB := ids.New(), ids.New()
	s := &fakeState{population: map[ids.Id]float32{regionA: 0, regionB: 0}}
	source := rng.New(1)

	out := pool.RollForPhase(eventpool.PhaseIcon, s, []ids.Id{regionA, regionB}, 0, source)
	assert.Empty(t, out)

	s.population[regionB] = 10
	out = pool.RollForPhase(eventpool.PhaseIcon, s, []ids.Id{regionA, regionB}, 0, source)
	assert.Len(t, out, 1)
	assert.Equal(t, regionB, out[0].RegionId)
}
