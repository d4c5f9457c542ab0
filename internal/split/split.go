// Package split computes per-participant shares of an expense. It runs at
// expense creation time, so the balance engine downstream can trust that
// splits sum to the expense amount.
package split

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/money"
)

// Type identifies a split strategy.
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypeExact      Type = "EXACT"
	TypePercentage Type = "PERCENTAGE"
)

var (
	ErrNoParticipants      = errors.New("split requires at least one participant")
	ErrNonPositiveAmount   = errors.New("expense amount must be positive")
	ErrNegativeShare       = errors.New("split shares must not be negative")
	ErrMissingExactAmount  = errors.New("exact split requires an amount per participant")
	ErrInvalidExactAmounts = errors.New("exact split amounts must sum to the expense amount")
	ErrMissingPercentage   = errors.New("percentage split requires a percentage per participant")
	ErrInvalidPercentages  = errors.New("percentages must sum to 100")
	ErrUnknownType         = errors.New("unknown split type")
)

// Input describes one participant going into a split calculation. Amount is
// used by EXACT splits, Percentage by PERCENTAGE splits.
type Input struct {
	UserID     string
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
}

// Output is one participant's computed share. The payer appears here like
// everyone else; the pairwise balance view needs the payer's own share.
type Output struct {
	UserID string
	Amount decimal.Decimal
}

// Strategy computes shares for one split type.
type Strategy interface {
	Type() Type
	Calculate(total decimal.Decimal, participants []Input) ([]Output, error)
}

var strategies = map[Type]Strategy{
	TypeEqual:      equalStrategy{},
	TypeExact:      exactStrategy{},
	TypePercentage: percentageStrategy{},
}

// Calculate dispatches to the strategy for typ.
func Calculate(typ Type, total decimal.Decimal, participants []Input) ([]Output, error) {
	s, ok := strategies[typ]
	if !ok {
		return nil, ErrUnknownType
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if !total.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return s.Calculate(total, participants)
}

// equalStrategy divides the total evenly in cents. Leftover cents after
// flooring are handed out one each to the first participants in input
// order, so the remainder assignment is deterministic.
type equalStrategy struct{}

func (equalStrategy) Type() Type { return TypeEqual }

func (equalStrategy) Calculate(total decimal.Decimal, participants []Input) ([]Output, error) {
	totalCents := money.ToCents(total)
	n := money.Cents(len(participants))
	base := totalCents / n
	remainder := totalCents % n

	outputs := make([]Output, len(participants))
	for i, p := range participants {
		share := base
		if money.Cents(i) < remainder {
			share++
		}
		outputs[i] = Output{UserID: p.UserID, Amount: share.Decimal()}
	}
	return outputs, nil
}

// exactStrategy takes the amounts as given, requiring them to sum to the
// total within a cent.
type exactStrategy struct{}

func (exactStrategy) Type() Type { return TypeExact }

func (exactStrategy) Calculate(total decimal.Decimal, participants []Input) ([]Output, error) {
	var sum money.Cents
	outputs := make([]Output, len(participants))
	for i, p := range participants {
		if p.Amount == nil {
			return nil, ErrMissingExactAmount
		}
		if p.Amount.IsNegative() {
			return nil, ErrNegativeShare
		}
		share := money.ToCents(*p.Amount)
		sum += share
		outputs[i] = Output{UserID: p.UserID, Amount: share.Decimal()}
	}

	if (sum - money.ToCents(total)).Abs() > 1 {
		return nil, ErrInvalidExactAmounts
	}
	return outputs, nil
}

// percentageStrategy rounds each share to cents and corrects the rounding
// drift on the last participant so the shares sum exactly to the total.
type percentageStrategy struct{}

func (percentageStrategy) Type() Type { return TypePercentage }

func (percentageStrategy) Calculate(total decimal.Decimal, participants []Input) ([]Output, error) {
	oneHundred := decimal.NewFromInt(100)

	pctSum := decimal.Zero
	for _, p := range participants {
		if p.Percentage == nil {
			return nil, ErrMissingPercentage
		}
		if p.Percentage.IsNegative() {
			return nil, ErrNegativeShare
		}
		pctSum = pctSum.Add(*p.Percentage)
	}
	if pctSum.Sub(oneHundred).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		return nil, ErrInvalidPercentages
	}

	totalCents := money.ToCents(total)
	outputs := make([]Output, len(participants))
	var assigned money.Cents
	for i, p := range participants {
		var share money.Cents
		if i == len(participants)-1 {
			share = totalCents - assigned
		} else {
			share = money.ToCents(total.Mul(*p.Percentage).Div(oneHundred))
			assigned += share
		}
		outputs[i] = Output{UserID: p.UserID, Amount: share.Decimal()}
	}
	return outputs, nil
}
