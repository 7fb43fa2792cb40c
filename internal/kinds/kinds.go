// Package kinds defines the closed enums that index every numeric quantity
// tracked by the simulation (resources, outputs, feedstocks, byproducts)
// and the fixed-key maps over them.
package kinds

import "fmt"

// Resource is a physical input consumed by production processes.
type Resource int

const (
	Land Resource = iota
	Water
	Electricity
	Fuel
	numResources
)

func (r Resource) String() string {
	switch r {
	case Land:
		return "Land"
	case Water:
		return "Water"
	case Electricity:
		return "Electricity"
	case Fuel:
		return "Fuel"
	default:
		return fmt.Sprintf("Resource(%d)", int(r))
	}
}

// AsOutput maps the two energy resources onto their corresponding Output,
// since electricity and fuel are both resources consumed by some processes
// and outputs produced by others.
func (r Resource) AsOutput() (Output, bool) {
	switch r {
	case Electricity:
		return OutputElectricity, true
	case Fuel:
		return OutputFuel, true
	default:
		return 0, false
	}
}

// Output is a produced good that satisfies regional demand.
type Output int

const (
	OutputFuel Output = iota
	OutputElectricity
	OutputPlantCalories
	OutputAnimalCalories
	numOutputs
)

func (o Output) String() string {
	switch o {
	case OutputFuel:
		return "Fuel"
	case OutputElectricity:
		return "Electricity"
	case OutputPlantCalories:
		return "Plant Calories"
	case OutputAnimalCalories:
		return "Animal Calories"
	default:
		return fmt.Sprintf("Output(%d)", int(o))
	}
}

// Feedstock is a depletable (or inexhaustible) raw material consumed by
// processes alongside their per-unit resource costs.
type Feedstock int

const (
	Soil Feedstock = iota
	Oil
	Coal
	Uranium
	Lithium
	Thorium
	NaturalGas
	Other
	numFeedstocks
)

func (f Feedstock) String() string {
	switch f {
	case Soil:
		return "Soil"
	case Oil:
		return "Oil"
	case Coal:
		return "Coal"
	case Uranium:
		return "Uranium"
	case Lithium:
		return "Lithium"
	case Thorium:
		return "Thorium"
	case NaturalGas:
		return "Natural Gas"
	case Other:
		return "Other"
	default:
		return fmt.Sprintf("Feedstock(%d)", int(f))
	}
}

// Inexhaustible reports whether the feedstock is never depleted by production.
func (f Feedstock) Inexhaustible() bool {
	return f == Soil || f == Other
}

// Byproduct is an emission or ecological pressure produced alongside output.
type Byproduct int

const (
	Co2 Byproduct = iota
	Ch4
	N2o
	Biodiversity
	numByproducts
)

func (b Byproduct) String() string {
	switch b {
	case Co2:
		return "CO2"
	case Ch4:
		return "CH4 (Methane)"
	case N2o:
		return "N2O"
	case Biodiversity:
		return "Biodiversity Pressure"
	default:
		return fmt.Sprintf("Byproduct(%d)", int(b))
	}
}

// GWP weights for converting non-CO2 greenhouse gases to CO2-equivalent,
// using 100-year global warming potentials.
const (
	ch4GWP = 36.
	n2oGWP = 298.
)
