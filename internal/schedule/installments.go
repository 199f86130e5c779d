package schedule

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidInstallmentCount = errors.New("the number of installments must be at least 1")

// SplitAmount distributes total over n installments.
//
// The split happens in integer cents: every installment gets the floor
// share and the remainder cents go to the earliest installments, one
// cent each. The installments therefore always sum to total rounded to
// cents, e.g. 100 over 3 becomes 33.34, 33.33, 33.33.
func SplitAmount(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n < 1 {
		return nil, ErrInvalidInstallmentCount
	}

	cents := total.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	base := cents / int64(n)
	remainder := cents - base*int64(n)

	// Integer division truncates toward zero, the split needs floor
	// semantics for negative amounts as well
	if remainder < 0 {
		base--
		remainder += int64(n)
	}

	amounts := make([]decimal.Decimal, n)
	for i := range amounts {
		c := base
		if int64(i) < remainder {
			c++
		}
		amounts[i] = decimal.New(c, -2)
	}

	return amounts, nil
}
