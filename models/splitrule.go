package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Split rule tags as they appear on the wire and in storage
const (
	SplitRuleEqual      = "equal"
	SplitRulePercentage = "percentage"
	SplitRuleAmount     = "amount"
	SplitRuleShares     = "shares"
)

// SplitRule is the sealed set of ways an expense can be divided. Callers
// dispatch on the concrete type; an unknown rule never survives parsing.
type SplitRule interface {
	Tag() string
}

// EqualSplit divides the total evenly among the listed participants, with
// day-based proration for partial joiners.
type EqualSplit struct {
	ParticipantIDs []string
}

// Tag returns the wire tag for equal splits
func (EqualSplit) Tag() string { return SplitRuleEqual }

// PercentageSplit divides the total by per-participant percentages that must
// sum to 100.
type PercentageSplit struct {
	Percents map[string]decimal.Decimal
}

// Tag returns the wire tag for percentage splits
func (PercentageSplit) Tag() string { return SplitRulePercentage }

// AmountSplit takes per-participant amounts in minor units as given; they
// must sum to the expense total exactly.
type AmountSplit struct {
	Amounts map[string]int64
}

// Tag returns the wire tag for amount splits
func (AmountSplit) Tag() string { return SplitRuleAmount }

// SharesSplit divides the total proportionally to integer weights.
type SharesSplit struct {
	Weights map[string]int64
}

// Tag returns the wire tag for weight splits
func (SharesSplit) Tag() string { return SplitRuleShares }

// ParseSplitRule builds a SplitRule from a wire tag and the raw per-participant
// inputs. It rejects unknown tags, duplicate participants, and payload values
// that do not fit the rule (fractional amounts or weights, non-positive
// weights, negative percentages).
func ParseSplitRule(tag string, shares []ShareInput) (SplitRule, error) {
	seen := make(map[string]bool, len(shares))
	for _, sh := range shares {
		if seen[sh.ParticipantID] {
			return nil, fmt.Errorf("duplicate participant %s in shares", sh.ParticipantID)
		}
		seen[sh.ParticipantID] = true
	}

	switch tag {
	case SplitRuleEqual:
		ids := make([]string, 0, len(shares))
		for _, sh := range shares {
			ids = append(ids, sh.ParticipantID)
		}
		return EqualSplit{ParticipantIDs: ids}, nil

	case SplitRulePercentage:
		percents := make(map[string]decimal.Decimal, len(shares))
		for _, sh := range shares {
			if sh.Value.IsNegative() {
				return nil, fmt.Errorf("percentage for %s cannot be negative", sh.ParticipantID)
			}
			percents[sh.ParticipantID] = sh.Value
		}
		return PercentageSplit{Percents: percents}, nil

	case SplitRuleAmount:
		amounts := make(map[string]int64, len(shares))
		for _, sh := range shares {
			if !sh.Value.IsInteger() {
				return nil, fmt.Errorf("amount for %s must be whole minor units", sh.ParticipantID)
			}
			if sh.Value.IsNegative() {
				return nil, fmt.Errorf("amount for %s cannot be negative", sh.ParticipantID)
			}
			amounts[sh.ParticipantID] = sh.Value.IntPart()
		}
		return AmountSplit{Amounts: amounts}, nil

	case SplitRuleShares:
		weights := make(map[string]int64, len(shares))
		for _, sh := range shares {
			if !sh.Value.IsInteger() || sh.Value.IntPart() <= 0 {
				return nil, fmt.Errorf("weight for %s must be a positive integer", sh.ParticipantID)
			}
			weights[sh.ParticipantID] = sh.Value.IntPart()
		}
		return SharesSplit{Weights: weights}, nil

	default:
		return nil, fmt.Errorf("unknown split rule %q", tag)
	}
}
