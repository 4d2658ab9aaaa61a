package animation

import "math"

// easeInOut maps linear progress in [0,1] onto a sine ease.
func easeInOut(progress float64) float64 {
	if progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return 1
	}
	return 0.5 - 0.5*math.Cos(math.Pi*progress)
}

// spring is a unit-mass damped spring pulling a value toward rest.
type spring struct {
	stiffness float64
	damping   float64
	rest      float64
	value     float64
	velocity  float64
}

func (state *spring) step(dt float64) {
	force := -state.stiffness*(state.value-state.rest) - state.damping*state.velocity
	state.velocity += force * dt
	state.value += state.velocity * dt
}

func (state *spring) settled() bool {
	return math.Abs(state.value-state.rest) < 1e-3 && math.Abs(state.velocity) < 1e-3
}
