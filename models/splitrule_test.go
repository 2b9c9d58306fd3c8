package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseSplitRule_Equal(t *testing.T) {
	rule, err := ParseSplitRule(SplitRuleEqual, []ShareInput{
		{ParticipantID: "alice"},
		{ParticipantID: "bob"},
	})

	assert.NoError(t, err)
	equal, ok := rule.(EqualSplit)
	assert.True(t, ok)
	assert.Equal(t, []string{"alice", "bob"}, equal.ParticipantIDs)
}

func TestParseSplitRule_Percentage(t *testing.T) {
	rule, err := ParseSplitRule(SplitRulePercentage, []ShareInput{
		{ParticipantID: "alice", Value: decimal.RequireFromString("62.5")},
		{ParticipantID: "bob", Value: decimal.RequireFromString("37.5")},
	})

	assert.NoError(t, err)
	pct, ok := rule.(PercentageSplit)
	assert.True(t, ok)
	assert.True(t, pct.Percents["alice"].Equal(decimal.RequireFromString("62.5")))
}

func TestParseSplitRule_RejectsNegativePercentage(t *testing.T) {
	_, err := ParseSplitRule(SplitRulePercentage, []ShareInput{
		{ParticipantID: "alice", Value: decimal.RequireFromString("-10")},
	})

	assert.Error(t, err)
}

func TestParseSplitRule_AmountMustBeWholeMinorUnits(t *testing.T) {
	_, err := ParseSplitRule(SplitRuleAmount, []ShareInput{
		{ParticipantID: "alice", Value: decimal.RequireFromString("10.5")},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "whole minor units")
}

func TestParseSplitRule_WeightMustBePositiveInteger(t *testing.T) {
	_, err := ParseSplitRule(SplitRuleShares, []ShareInput{
		{ParticipantID: "alice", Value: decimal.NewFromInt(0)},
	})
	assert.Error(t, err)

	_, err = ParseSplitRule(SplitRuleShares, []ShareInput{
		{ParticipantID: "alice", Value: decimal.RequireFromString("1.5")},
	})
	assert.Error(t, err)
}

func TestParseSplitRule_RejectsDuplicateParticipants(t *testing.T) {
	_, err := ParseSplitRule(SplitRuleEqual, []ShareInput{
		{ParticipantID: "alice"},
		{ParticipantID: "alice"},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParseSplitRule_RejectsUnknownTag(t *testing.T) {
	_, err := ParseSplitRule("raffle", []ShareInput{{ParticipantID: "alice"}})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown split rule")
}
