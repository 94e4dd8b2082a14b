package testutil

// Draw records one Uniform call.
type Draw struct {
	Low, High float64
	Value     float64
}

// ScriptedSource returns low + (high-low)*Fractions[k] for the k-th call,
// cycling through Fractions, and records every draw.
type ScriptedSource struct {
	Fractions []float64
	Draws     []Draw

	next int
}

// NewScriptedSource returns a ScriptedSource cycling through fractions.
func NewScriptedSource(fractions ...float64) *ScriptedSource {
	return &ScriptedSource{Fractions: fractions}
}

// Uniform implements the synthesizer random source contract.
func (s *ScriptedSource) Uniform(low, high float64) float64 {
	frac := 0.0
	if len(s.Fractions) > 0 {
		frac = s.Fractions[s.next%len(s.Fractions)]
	}
	s.next++

	v := low + (high-low)*frac
	s.Draws = append(s.Draws, Draw{Low: low, High: high, Value: v})
	return v
}

// Calls returns the number of draws so far.
func (s *ScriptedSource) Calls() int { return len(s.Draws) }
