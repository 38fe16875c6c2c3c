package calculator

import (
	"errors"

	"github.com/mmynk/splitbook/internal/models"
)

// Validation errors. They are returned wrapped with detail; match them with
// errors.Is.
var (
	ErrInvalidAmount        = errors.New("expense amount must be greater than zero")
	ErrEmptySplit           = errors.New("must have at least one participant")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrUnequalShare         = errors.New("shares of an equal split must be identical")
	ErrSumMismatch          = errors.New("shares do not add up to the expense amount")
	ErrPercentageSum        = errors.New("percentages do not add up to 100")
	ErrUnknownSplitKind     = models.ErrUnknownSplitKind
)

var validationErrors = []error{
	ErrInvalidAmount,
	ErrEmptySplit,
	ErrDuplicateParticipant,
	ErrUnequalShare,
	ErrSumMismatch,
	ErrPercentageSum,
	ErrUnknownSplitKind,
}

// IsValidationError reports whether err is caused by malformed expense input.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Reason returns a short label for a validation error, suitable as a metric
// label. Errors outside the taxonomy map to "other".
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrEmptySplit):
		return "empty_split"
	case errors.Is(err, ErrDuplicateParticipant):
		return "duplicate_participant"
	case errors.Is(err, ErrUnequalShare):
		return "unequal_share"
	case errors.Is(err, ErrSumMismatch):
		return "sum_mismatch"
	case errors.Is(err, ErrPercentageSum):
		return "percentage_sum"
	case errors.Is(err, ErrUnknownSplitKind):
		return "unknown_split_kind"
	default:
		return "other"
	}
}
