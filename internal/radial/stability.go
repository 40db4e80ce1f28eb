package radial

import (
	"fmt"
	"math"
)

// StabilityLimit is the largest D·dt/dr² for which every FTCS update weight
// stays non-negative.
const StabilityLimit = 0.5

func StabilityNumber(p Params) float64 {
	dr := p.Spacing()
	return p.Diffusivity * p.Dt / (dr * dr)
}

// MaxStableDt is the largest time step that keeps the scheme stable on p's grid.
func MaxStableDt(p Params) float64 {
	if p.Diffusivity == 0 {
		return math.Inf(1)
	}
	dr := p.Spacing()
	return StabilityLimit * dr * dr / p.Diffusivity
}

func CheckStability(p Params) error {
	if lambda := StabilityNumber(p); lambda > StabilityLimit {
		return fmt.Errorf("%w: D·dt/dr² = %.4g exceeds %.2g (dt ≤ %.4gs required)",
			ErrUnstable, lambda, StabilityLimit, MaxStableDt(p))
	}
	return nil
}

// MissedCheckpoints lists requested hours the run will never capture, either
// because they lie beyond Duration or because no step ends exactly on them.
func MissedCheckpoints(p Params) []int {
	steps := p.Steps()
	var missed []int
	for _, h := range p.Checkpoints {
		if h == 0 {
			continue
		}
		if !landsOnHour(p.Dt, steps, h) {
			missed = append(missed, h)
		}
	}
	return missed
}

func landsOnHour(dt float64, steps, hour int) bool {
	target := float64(hour) * SecondsPerHour
	k := int(math.Round(target / dt))
	for _, step := range []int{k - 1, k, k + 1} {
		if step < 1 || step > steps {
			continue
		}
		if h, ok := hourAt(float64(step) * dt); ok && h == hour {
			return true
		}
	}
	return false
}

// hourAt reports the whole hour an elapsed time falls on, if it falls on one.
func hourAt(elapsed float64) (int, bool) {
	if math.Mod(elapsed, SecondsPerHour) != 0 {
		return 0, false
	}
	return int(elapsed / SecondsPerHour), true
}
