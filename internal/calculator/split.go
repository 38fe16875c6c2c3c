package calculator

import (
	"fmt"
	"math"

	"github.com/mmynk/splitbook/internal/models"
)

// Epsilon is the tolerance used for every floating-point share comparison.
const Epsilon = 1e-6

// Validator checks a set of splits against the expense total.
// On success it returns a copy of the splits with Amount holding the absolute
// share of every participant. The input slice is never modified.
type Validator func(splits []models.Split, total float64) ([]models.Split, error)

var validators = map[models.SplitKind]Validator{
	models.SplitEqual:      ValidateEqual,
	models.SplitUnequal:    ValidateUnequal,
	models.SplitPercentage: ValidatePercentage,
}

// Resolve returns the validator for a split kind.
func Resolve(kind models.SplitKind) (Validator, error) {
	v, ok := validators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSplitKind, kind)
	}
	return v, nil
}

// Validate resolves the validator for kind and runs it.
func Validate(kind models.SplitKind, splits []models.Split, total float64) ([]models.Split, error) {
	v, err := Resolve(kind)
	if err != nil {
		return nil, err
	}
	return v(splits, total)
}

// ValidateEqual requires every share to equal total/n.
func ValidateEqual(splits []models.Split, total float64) ([]models.Split, error) {
	if err := checkCommon(splits, total); err != nil {
		return nil, err
	}

	want := total / float64(len(splits))
	for _, s := range splits {
		if math.IsNaN(s.Amount) || math.Abs(s.Amount-want) > Epsilon {
			return nil, fmt.Errorf("%w: %s has %v, want %v", ErrUnequalShare, s.UserID, s.Amount, want)
		}
	}
	return copySplits(splits), nil
}

// ValidateUnequal requires non-negative shares that add up to total.
func ValidateUnequal(splits []models.Split, total float64) ([]models.Split, error) {
	if err := checkCommon(splits, total); err != nil {
		return nil, err
	}

	sum := 0.0
	for _, s := range splits {
		if s.Amount < 0 || math.IsNaN(s.Amount) {
			return nil, fmt.Errorf("%w: %s has negative share %v", ErrSumMismatch, s.UserID, s.Amount)
		}
		sum += s.Amount
	}
	if math.Abs(sum-total) > Epsilon {
		return nil, fmt.Errorf("%w: sum %v, total %v", ErrSumMismatch, sum, total)
	}
	return copySplits(splits), nil
}

// ValidatePercentage requires percentages in [0, 100] that add up to 100 and
// derives each absolute share as percent/100 × total.
func ValidatePercentage(splits []models.Split, total float64) ([]models.Split, error) {
	if err := checkCommon(splits, total); err != nil {
		return nil, err
	}

	sum := 0.0
	for _, s := range splits {
		if s.Percent < 0 || s.Percent > 100 || math.IsNaN(s.Percent) {
			return nil, fmt.Errorf("%w: %s has %v%%", ErrPercentageSum, s.UserID, s.Percent)
		}
		sum += s.Percent
	}
	if math.Abs(sum-100) > Epsilon {
		return nil, fmt.Errorf("%w: sum %v%%", ErrPercentageSum, sum)
	}

	out := copySplits(splits)
	for i := range out {
		out[i].Amount = out[i].Percent / 100 * total
	}
	return out, nil
}

// EqualSplits shares total equally between userIDs.
// The result passes ValidateEqual when userIDs are unique and non-empty.
func EqualSplits(total float64, userIDs []string) []models.Split {
	if len(userIDs) == 0 {
		return nil
	}
	share := total / float64(len(userIDs))
	splits := make([]models.Split, len(userIDs))
	for i, id := range userIDs {
		splits[i] = models.Split{UserID: id, Amount: share}
	}
	return splits
}

// checkCommon applies the rules shared by every split kind.
func checkCommon(splits []models.Split, total float64) error {
	if !(total > 0) || math.IsInf(total, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidAmount, total)
	}
	if len(splits) == 0 {
		return ErrEmptySplit
	}

	seen := make(map[string]bool, len(splits))
	for i, s := range splits {
		if s.UserID == "" {
			return fmt.Errorf("%w: split %d has no user", ErrDuplicateParticipant, i)
		}
		if seen[s.UserID] {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, s.UserID)
		}
		seen[s.UserID] = true
	}
	return nil
}

func copySplits(splits []models.Split) []models.Split {
	out := make([]models.Split, len(splits))
	copy(out, splits)
	return out
}
