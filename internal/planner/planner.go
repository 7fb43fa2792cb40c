// Package planner implements the production planner: given a set of
// per-process production orders and the resources/feedstocks on hand, it
// allocates scarce inputs across processes, deferring resource- and
// byproduct-heavy orders so that easily-satisfied demand is served first
// when supply is tight.
package planner

import (
	"math"
	"sort"

	"halfearth/internal/ids"
	"halfearth/internal/kinds"
)

// Order is one process's requested production for this step.
type Order struct {
	ProcessId  ids.Id
	Output     kinds.Output
	Amount     float32
	Resources  kinds.ResourceMap
	Byproducts kinds.ByproductMap
	Feedstock  kinds.Feedstock
	FeedstockAmount float32
}

// Result is the outcome of CalculateProduction.
type Result struct {
	// Produced holds the produced amount for each input order, in the
	// same order as the Orders slice passed in.
	Produced           []float32
	ConsumedResources  kinds.ResourceMap
	ConsumedFeedstocks kinds.FeedstockMap
	ProducedByproducts kinds.ByproductMap
}

// rankOrders scores each remaining order index by its resource,
// feedstock, and byproduct intensity relative to the worst offender among
// the candidates, then sorts descending so the best (lowest) scoring
// orders land at the end — CalculateProduction takes from the end, so the
// cheapest-to-satisfy orders are produced first under scarcity.
func rankOrders(orders []Order, idxs []int, availableResources kinds.ResourceMap, availableFeedstocks kinds.FeedstockMap) []int {
	type score struct {
		resource   float32
		feedstock  float32
	}
	scores := make(map[int]score, len(idxs))

	var byproductMaxs kinds.ByproductMap
	var maxResourceScore, maxFeedstockScore float32

	for _, i := range idxs {
		o := orders[i]
		var resourceScore float32
		for r := kinds.Resource(0); r < kinds.Resource(len(o.Resources)); r++ {
			v := o.Resources.Get(r)
			if v == 0 {
				continue
			}
			resourceScore += v / (availableResources.Get(r) + 1.)
		}
		var feedstockScore float32
		if o.FeedstockAmount != 0 {
			feedstockScore = o.FeedstockAmount / (availableFeedstocks.Get(o.Feedstock) + 1.)
		}
		scores[i] = score{resource: resourceScore, feedstock: feedstockScore}
		if resourceScore > maxResourceScore {
			maxResourceScore = resourceScore
		}
		if feedstockScore > maxFeedstockScore {
			maxFeedstockScore = feedstockScore
		}
		for b := kinds.Byproduct(0); b < kinds.Byproduct(len(o.Byproducts)); b++ {
			if v := o.Byproducts.Get(b); v > byproductMaxs.Get(b) {
				byproductMaxs.Set(b, v)
			}
		}
	}

	if maxResourceScore == 0 {
		maxResourceScore = 1
	}
	if maxFeedstockScore == 0 {
		maxFeedstockScore = 1
	}

	composite := make(map[int]int, len(idxs))
	for _, i := range idxs {
		sc := scores[i]
		r := sc.resource / maxResourceScore
		f := sc.feedstock / maxFeedstockScore
		var byproductScore float32
		o := orders[i]
		for b := kinds.Byproduct(0); b < kinds.Byproduct(len(o.Byproducts)); b++ {
			v := o.Byproducts.Get(b)
			if v == 0 {
				continue
			}
			byproductScore += v / (byproductMaxs.Get(b) + 1.)
		}
		total := r + f + byproductScore
		composite[i] = int(math.Round(float64(total) * 100000))
	}

	sorted := append([]int{}, idxs...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return composite[sorted[a]] > composite[sorted[b]]
	})
	return sorted
}

// produceAmount produces as much of order as available inputs allow,
// deducting consumed resources/feedstock and accumulating byproducts.
func produceAmount(order Order, availableResources *kinds.ResourceMap, availableFeedstocks *kinds.FeedstockMap, producedByproducts *kinds.ByproductMap) float32 {
	feedstockMax := float32(math.Inf(1))
	if order.FeedstockAmount > 0 && !order.Feedstock.Inexhaustible() {
		feedstockMax = availableFeedstocks.Get(order.Feedstock) / order.FeedstockAmount
	}

	resourceMax := float32(math.Inf(1))
	for r := kinds.Resource(0); r < kinds.Resource(len(order.Resources)); r++ {
		v := order.Resources.Get(r)
		if v <= 0 {
			continue
		}
		limit := availableResources.Get(r) / v
		if limit < resourceMax {
			resourceMax = limit
		}
	}

	amount := order.Amount
	if feedstockMax < amount {
		amount = feedstockMax
	}
	if resourceMax < amount {
		amount = resourceMax
	}
	if amount < 0 {
		amount = 0
	}

	for r := kinds.Resource(0); r < kinds.Resource(len(order.Resources)); r++ {
		v := order.Resources.Get(r)
		if v == 0 {
			continue
		}
		remaining := availableResources.Get(r) - v*amount
		if remaining < 0 {
			remaining = 0
		}
		availableResources.Set(r, remaining)
	}

	if order.FeedstockAmount > 0 && !order.Feedstock.Inexhaustible() {
		remaining := availableFeedstocks.Get(order.Feedstock) - order.FeedstockAmount*amount
		if remaining < 0 {
			remaining = 0
		}
		availableFeedstocks.Set(order.Feedstock, remaining)
	}

	for b := kinds.Byproduct(0); b < kinds.Byproduct(len(order.Byproducts)); b++ {
		v := order.Byproducts.Get(b)
		if v == 0 {
			continue
		}
		producedByproducts.Set(b, producedByproducts.Get(b)+v*amount)
	}

	return amount
}

// CalculateProduction groups orders by Output and, within each group,
// repeatedly ranks the remaining orders by scarcity and produces the
// best-scoring one until every group is empty.
func CalculateProduction(orders []Order, startingResources kinds.ResourceMap, startingFeedstocks kinds.FeedstockMap) Result {
	produced := make([]float32, len(orders))
	availableResources := startingResources
	availableFeedstocks := startingFeedstocks
	var producedByproducts kinds.ByproductMap

	groups := map[kinds.Output][]int{}
	var groupOrder []kinds.Output
	for i, o := range orders {
		if _, ok := groups[o.Output]; !ok {
			groupOrder = append(groupOrder, o.Output)
		}
		groups[o.Output] = append(groups[o.Output], i)
	}

	for {
		anyNonEmpty := false
		for _, out := range groupOrder {
			idxs := groups[out]
			if len(idxs) == 0 {
				continue
			}
			anyNonEmpty = true

			ranked := rankOrders(orders, idxs, availableResources, availableFeedstocks)
			best := ranked[len(ranked)-1]
			produced[best] = produceAmount(orders[best], &availableResources, &availableFeedstocks, &producedByproducts)

			remaining := make([]int, 0, len(idxs)-1)
			for _, i := range idxs {
				if i != best {
					remaining = append(remaining, i)
				}
			}
			groups[out] = remaining
		}
		if !anyNonEmpty {
			break
		}
	}

	return Result{
		Produced:           produced,
		ConsumedResources:  startingResources.Sub(availableResources),
		ConsumedFeedstocks: startingFeedstocks.Sub(availableFeedstocks),
		ProducedByproducts: producedByproducts,
	}
}

// CalculateRequired sums each order's resource and feedstock requirements
// with no allocation limits, giving the total that would be needed to
// satisfy every order in full.
func CalculateRequired(orders []Order) (kinds.ResourceMap, kinds.FeedstockMap) {
	var resources kinds.ResourceMap
	var feedstocks kinds.FeedstockMap
	for _, o := range orders {
		resources = resources.Add(o.Resources.Scale(o.Amount))
		if o.FeedstockAmount != 0 {
			feedstocks.Set(o.Feedstock, feedstocks.Get(o.Feedstock)+o.FeedstockAmount*o.Amount)
		}
	}
	return resources, feedstocks
}
