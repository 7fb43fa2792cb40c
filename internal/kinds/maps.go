package kinds

import "math"

// ResourceMap holds a value per Resource.
type ResourceMap [numResources]float32

func (m ResourceMap) Get(r Resource) float32    { return m[r] }
func (m *ResourceMap) Set(r Resource, v float32) { m[r] = v }

// Add returns the elementwise sum of m and o.
func (m ResourceMap) Add(o ResourceMap) ResourceMap {
	var out ResourceMap
	for i := range m {
		out[i] = m[i] + o[i]
	}
	return out
}

// Sub returns the elementwise difference m - o.
func (m ResourceMap) Sub(o ResourceMap) ResourceMap {
	var out ResourceMap
	for i := range m {
		out[i] = m[i] - o[i]
	}
	return out
}

// Scale multiplies every entry by s.
func (m ResourceMap) Scale(s float32) ResourceMap {
	var out ResourceMap
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}

// Mul returns the elementwise product of m and o.
func (m ResourceMap) Mul(o ResourceMap) ResourceMap {
	var out ResourceMap
	for i := range m {
		out[i] = m[i] * o[i]
	}
	return out
}

// Div returns the elementwise quotient m / o.
func (m ResourceMap) Div(o ResourceMap) ResourceMap {
	var out ResourceMap
	for i := range m {
		out[i] = m[i] / o[i]
	}
	return out
}

// Energy is the sum of the electricity and fuel entries.
func (m ResourceMap) Energy() float32 {
	return m[Electricity] + m[Fuel]
}

// OutputMap holds a value per Output.
type OutputMap [numOutputs]float32

func (m OutputMap) Get(o Output) float32    { return m[o] }
func (m *OutputMap) Set(o Output, v float32) { m[o] = v }

func (m OutputMap) Add(o OutputMap) OutputMap {
	var out OutputMap
	for i := range m {
		out[i] = m[i] + o[i]
	}
	return out
}

func (m OutputMap) Sub(o OutputMap) OutputMap {
	var out OutputMap
	for i := range m {
		out[i] = m[i] - o[i]
	}
	return out
}

func (m OutputMap) Scale(s float32) OutputMap {
	var out OutputMap
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}

// Energy is the sum of the electricity and fuel entries.
func (m OutputMap) Energy() float32 {
	return m[OutputElectricity] + m[OutputFuel]
}

// FeedstockMap holds a value per Feedstock.
type FeedstockMap [numFeedstocks]float32

func (m FeedstockMap) Get(f Feedstock) float32    { return m[f] }
func (m *FeedstockMap) Set(f Feedstock, v float32) { m[f] = v }

func (m FeedstockMap) Add(o FeedstockMap) FeedstockMap {
	var out FeedstockMap
	for i := range m {
		out[i] = m[i] + o[i]
	}
	return out
}

func (m FeedstockMap) Sub(o FeedstockMap) FeedstockMap {
	var out FeedstockMap
	for i := range m {
		out[i] = m[i] - o[i]
	}
	return out
}

func (m FeedstockMap) Scale(s float32) FeedstockMap {
	var out FeedstockMap
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}

func (m FeedstockMap) Mul(o FeedstockMap) FeedstockMap {
	var out FeedstockMap
	for i := range m {
		out[i] = m[i] * o[i]
	}
	return out
}

// UntilExhaustion estimates the number of years of supply remaining for f
// given an annual consumption rate, treating inexhaustible feedstocks as
// having no limit.
func (m FeedstockMap) UntilExhaustion(f Feedstock, annualConsumption float32) float32 {
	if f.Inexhaustible() || annualConsumption <= 0 {
		return float32(math.Inf(1))
	}
	return m[f] / annualConsumption
}

// ByproductMap holds a value per Byproduct.
type ByproductMap [numByproducts]float32

func (m ByproductMap) Get(b Byproduct) float32    { return m[b] }
func (m *ByproductMap) Set(b Byproduct, v float32) { m[b] = v }

func (m ByproductMap) Add(o ByproductMap) ByproductMap {
	var out ByproductMap
	for i := range m {
		out[i] = m[i] + o[i]
	}
	return out
}

func (m ByproductMap) Sub(o ByproductMap) ByproductMap {
	var out ByproductMap
	for i := range m {
		out[i] = m[i] - o[i]
	}
	return out
}

func (m ByproductMap) Scale(s float32) ByproductMap {
	var out ByproductMap
	for i := range m {
		out[i] = m[i] * s
	}
	return out
}

// Co2eq converts all greenhouse-gas byproducts to CO2-equivalent mass,
// using 100-year global warming potentials for methane and nitrous oxide.
// Biodiversity pressure does not contribute, since it is not a gas.
func (m ByproductMap) Co2eq() float32 {
	return m[Co2] + m[Ch4]*ch4GWP + m[N2o]*n2oGWP
}

// Gtco2eq converts Co2eq from grams to gigatonnes.
func (m ByproductMap) Gtco2eq() float32 {
	return m.Co2eq() * 1e-15
}
