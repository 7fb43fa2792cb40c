package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"halfearth/internal/kinds"
	"halfearth/internal/planner"
)

func fuelOrder(amount float32) planner.Order {
	var resources kinds.ResourceMap
	resources.Set(kinds.Water, 1)
	return planner.Order{
		Output:          kinds.OutputFuel,
		Amount:          amount,
		Resources:       resources,
		Feedstock:       kinds.Oil,
		FeedstockAmount: 1,
	}
}

func electricityOrder(amount float32) planner.Order {
	var resources kinds.ResourceMap
	resources.Set(kinds.Water, 1)
	return planner.Order{
		Output:          kinds.OutputElectricity,
		Amount:          amount,
		Resources:       resources,
		Feedstock:       kinds.Coal,
		FeedstockAmount: 1,
	}
}

func TestCalculateProductionScarcityScenario(t *testing.T) {
	orders := []planner.Order{
		fuelOrder(50),
		fuelOrder(50),
		electricityOrder(100),
	}

	var resources kinds.ResourceMap
	resources.Set(kinds.Water, 80)
	var feedstocks kinds.FeedstockMap
	feedstocks.Set(kinds.Oil, 100)
	feedstocks.Set(kinds.Coal, 100)

	result := planner.CalculateProduction(orders, resources, feedstocks)

	assert.InDeltaSlice(t, []float32{0, 50, 30}, result.Produced, 1e-2)
	assert.InDelta(t, 80, result.ConsumedResources.Get(kinds.Water), 1e-2)
	assert.InDelta(t, 50, result.ConsumedFeedstocks.Get(kinds.Oil), 1e-2)
	assert.InDelta(t, 30, result.ConsumedFeedstocks.Get(kinds.Coal), 1e-2)
}

func TestCalculateRequired(t *testing.T) {
	orders := []planner.Order{fuelOrder(50), fuelOrder(50), electricityOrder(100)}

	resources, feedstocks := planner.CalculateRequired(orders)
	assert.InDelta(t, 200, resources.Get(kinds.Water), 1e-2)
	assert.InDelta(t, 100, feedstocks.Get(kinds.Oil), 1e-2)
	assert.InDelta(t, 100, feedstocks.Get(kinds.Coal), 1e-2)
}
