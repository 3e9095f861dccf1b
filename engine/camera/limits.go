package camera

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidLimits is returned when a limit pair is inverted, negative where it must not be,
	// or outside the angular range it describes.
	ErrInvalidLimits = errors.New("invalid orbit limits")

	// ErrInvalidDamping is returned when a damping factor lies outside (0, 1].
	ErrInvalidDamping = errors.New("invalid damping factor")
)

// Limits bounds the orbit. Every field is enforced on each OrbitConstraint.Update.
type Limits struct {
	// MinDistance and MaxDistance bound the orbit radius of a perspective camera.
	MinDistance, MaxDistance float64
	// MinZoom and MaxZoom bound the zoom factor of an orthographic camera.
	MinZoom, MaxZoom float64
	// MinPolarAngle and MaxPolarAngle bound the angle from the up axis, within [0, π].
	MinPolarAngle, MaxPolarAngle float64
	// MinAzimuthAngle and MaxAzimuthAngle bound the angle around the up axis.
	// Finite values must lie within [-π, π].
	MinAzimuthAngle, MaxAzimuthAngle float64
}

// DefaultLimits returns the unrestricted limits: any distance, any zoom, the full polar range
// and an unbounded azimuth.
//
// Returns:
//   - Limits: the default limits
func DefaultLimits() Limits {
	return Limits{
		MinDistance:     0,
		MaxDistance:     math.Inf(1),
		MinZoom:         0,
		MaxZoom:         math.Inf(1),
		MinPolarAngle:   0,
		MaxPolarAngle:   math.Pi,
		MinAzimuthAngle: math.Inf(-1),
		MaxAzimuthAngle: math.Inf(1),
	}
}

// Validate reports the first inconsistency in l, wrapped around ErrInvalidLimits.
// Update itself never validates; it applies whatever the clamp produces.
//
// Returns:
//   - error: nil if the limits are usable
func (l Limits) Validate() error {
	pairs := []struct {
		name     string
		min, max float64
	}{
		{"distance", l.MinDistance, l.MaxDistance},
		{"zoom", l.MinZoom, l.MaxZoom},
		{"polar angle", l.MinPolarAngle, l.MaxPolarAngle},
		{"azimuth angle", l.MinAzimuthAngle, l.MaxAzimuthAngle},
	}
	for _, p := range pairs {
		if math.IsNaN(p.min) || math.IsNaN(p.max) {
			return fmt.Errorf("%w: %s bound is NaN", ErrInvalidLimits, p.name)
		}
		if p.min > p.max {
			return fmt.Errorf("%w: min %s %v exceeds max %v", ErrInvalidLimits, p.name, p.min, p.max)
		}
	}
	if l.MinDistance < 0 {
		return fmt.Errorf("%w: min distance %v is negative", ErrInvalidLimits, l.MinDistance)
	}
	if l.MinZoom < 0 {
		return fmt.Errorf("%w: min zoom %v is negative", ErrInvalidLimits, l.MinZoom)
	}
	if l.MinPolarAngle < 0 || l.MaxPolarAngle > math.Pi {
		return fmt.Errorf("%w: polar angle range [%v, %v] is outside [0, π]", ErrInvalidLimits, l.MinPolarAngle, l.MaxPolarAngle)
	}
	for _, a := range []float64{l.MinAzimuthAngle, l.MaxAzimuthAngle} {
		if !math.IsInf(a, 0) && (a < -math.Pi || a > math.Pi) {
			return fmt.Errorf("%w: azimuth angle %v is outside [-π, π]", ErrInvalidLimits, a)
		}
	}
	return nil
}

// ValidateDampingFactor checks that factor lies in (0, 1].
//
// Parameters:
//   - factor: fraction of the pending rotation removed per frame
//
// Returns:
//   - error: nil if the factor is usable, otherwise wrapping ErrInvalidDamping
func ValidateDampingFactor(factor float64) error {
	if math.IsNaN(factor) || factor <= 0 || factor > 1 {
		return fmt.Errorf("%w: %v is outside (0, 1]", ErrInvalidDamping, factor)
	}
	return nil
}
