package catalog

import "github.com/pkg/errors"

// Error kinds reported by catalog operations. Match them with errors.Is; the
// returned errors wrap these with the offending handle or position.
var (
	ErrInvalidHandle        = errors.New("catalog: invalid handle")
	ErrCapacityExceeded     = errors.New("catalog: capacity exceeded")
	ErrPreconditionViolated = errors.New("catalog: precondition violated")
)

// errorKind names an error for the failures metric.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidHandle):
		return "invalid_handle"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrPreconditionViolated):
		return "precondition_violated"
	default:
		return "other"
	}
}
