package calculator

import "github.com/mmynk/splitbook/internal/models"

// SheetLookup returns the balance sheet of a user. It must return a non-nil
// sheet for the payer and every split participant.
type SheetLookup func(userID string) *models.BalanceSheet

// ApplyExpense posts a validated expense to the balance sheets involved.
//
// Algorithm:
//   - payer.TotalPaid += total
//   - payer's own split: payer.TotalOwnExpense += share (not a debt)
//   - every other split: the payer is owed the share by the participant,
//     and the participant owes it to the payer and consumed it
//
// Amounts are only ever added. OwedByMe and OwedToMe of the same pair are
// never netted, so the order of splits and expenses does not change the
// totals. The splits must already be validated; this function does not check
// its input.
func ApplyExpense(sheetFor SheetLookup, payerID string, splits []models.Split, total float64) {
	payer := sheetFor(payerID)
	payer.TotalPaid += total

	for _, split := range splits {
		if split.UserID == payerID {
			payer.TotalOwnExpense += split.Amount
			continue
		}

		payer.TotalYouGetBack += split.Amount
		payer.BalanceWith(split.UserID).OwedToMe += split.Amount

		participant := sheetFor(split.UserID)
		participant.TotalYouOwe += split.Amount
		participant.TotalOwnExpense += split.Amount
		participant.BalanceWith(payerID).OwedByMe += split.Amount
	}
}
