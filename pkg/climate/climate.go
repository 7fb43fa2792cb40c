// Package climate is the pluggable climate collaborator the engine
// consumes but never implements: a function converting cumulative
// emissions into a global temperature anomaly. The engine core treats
// this as an external boundary (spec §6); this package supplies a
// default, intentionally simple emulator so the repository runs end to
// end without claiming physical accuracy.
package climate

// Model converts cumulative emissions (gigatonnes CO2-equivalent) and the
// run's emissions history into a global average temperature anomaly
// (tgav) in degrees Celsius above the pre-industrial baseline.
type Model func(cumulativeEmissionsGt float32, history []float32) (tgavCelsius float32)

// NewLinearModel returns a Model implementing a simple linear
// transient-climate-response approximation: tgav rises in direct
// proportion to cumulative emissions, scaled by sensitivity (°C per
// gigatonne CO2-equivalent). This is a deliberately crude stand-in for a
// real climate emulator, which is out of the engine's scope entirely.
func NewLinearModel(sensitivity float32) Model {
	return func(cumulativeEmissionsGt float32, _ []float32) float32 {
		return cumulativeEmissionsGt * sensitivity
	}
}
