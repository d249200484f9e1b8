package deck

import (
	"fmt"
	"math"
)

// frameTolerance bounds how far a frame's Gram matrix may deviate from the
// identity before the frame is rejected as non-orthonormal.
const frameTolerance = 1e-6

// PlaneToPlane returns the rigid transform that carries from onto to: the
// origin of from maps to the origin of to and each axis onto its counterpart.
// Equal frames yield exactly [Identity].
func PlaneToPlane(from, to Frame) (Affine, error) {
	if from == to {
		return Identity, nil
	}
	for _, f := range [...]Frame{from, to} {
		if !f.IsOrthonormal(frameTolerance) {
			return Affine{}, fmt.Errorf("%w: frame %v is not orthonormal", ErrInvalidParameter, f)
		}
	}
	if math.Signbit(from.Handedness()) != math.Signbit(to.Handedness()) {
		return Affine{}, fmt.Errorf("%w: frames have opposite handedness, mapping one onto the other would mirror", ErrGeometricFailure)
	}
	return to.ToWorld().Mul(from.ToLocal()), nil
}

// Transport returns a copy of template moved rigidly from ref to target. The
// template is not modified.
func Transport(template Curve, ref, target Frame) (Curve, error) {
	if template == nil {
		return nil, fmt.Errorf("%w: template curve", ErrInputMissing)
	}
	aff, err := PlaneToPlane(ref, target)
	if err != nil {
		return nil, err
	}
	return template.Transform(aff), nil
}
