package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func fullParticipants(ids ...string) map[string]*models.Participant {
	m := make(map[string]*models.Participant, len(ids))
	for _, id := range ids {
		m[id] = &models.Participant{ID: id, TripID: "trip-1", UserID: id, DisplayName: id}
	}
	return m
}

func shareAmounts(shares []models.ExpenseShare) map[string]int64 {
	m := make(map[string]int64, len(shares))
	for _, sh := range shares {
		m[sh.ParticipantID] = sh.Share.Amount
	}
	return m
}

func TestShareService_EqualSplit_ExactDivision(t *testing.T) {
	service := NewShareService()

	shares, err := service.Calculate(
		models.NewMoney(3000, "USD"),
		models.EqualSplit{ParticipantIDs: []string{"alice", "bob", "carol"}},
		fullParticipants("alice", "bob", "carol"),
		date("2026-06-01"), date("2026-06-10"))

	assert.NoError(t, err)
	assert.Len(t, shares, 3)
	for _, sh := range shares {
		assert.Equal(t, int64(1000), sh.Share.Amount)
		assert.Equal(t, "USD", sh.Share.Currency)
	}
}

func TestShareService_EqualSplit_RemainderGoesToLowestIDs(t *testing.T) {
	service := NewShareService()

	// 10001 / 3 leaves 2 minor units; they land on the two lowest ids
	shares, err := service.Calculate(
		models.NewMoney(10001, "USD"),
		models.EqualSplit{ParticipantIDs: []string{"carol", "alice", "bob"}},
		fullParticipants("alice", "bob", "carol"),
		date("2026-06-01"), date("2026-06-10"))

	assert.NoError(t, err)
	amounts := shareAmounts(shares)
	assert.Equal(t, int64(3334), amounts["alice"])
	assert.Equal(t, int64(3334), amounts["bob"])
	assert.Equal(t, int64(3333), amounts["carol"])
}

func TestShareService_EqualSplit_ProratesPartialJoiner(t *testing.T) {
	service := NewShareService()

	// 10-day trip, bob present for 4 days. His even share of 5000 is scaled
	// to 4/10 and the discount is not pushed onto alice.
	joinStart := date("2026-06-03")
	joinEnd := date("2026-06-06")
	participants := fullParticipants("alice", "bob")
	participants["bob"].JoinStartDate = &joinStart
	participants["bob"].JoinEndDate = &joinEnd

	shares, err := service.Calculate(
		models.NewMoney(10000, "USD"),
		models.EqualSplit{ParticipantIDs: []string{"alice", "bob"}},
		participants,
		date("2026-06-01"), date("2026-06-10"))

	assert.NoError(t, err)
	amounts := shareAmounts(shares)
	assert.Equal(t, int64(5000), amounts["alice"])
	assert.Equal(t, int64(2000), amounts["bob"])
}

func TestShareService_EqualSplit_FullWindowIsNotProrated(t *testing.T) {
	service := NewShareService()

	// A join window covering the whole trip means full participation
	joinStart := date("2026-06-01")
	joinEnd := date("2026-06-10")
	participants := fullParticipants("alice", "bob")
	participants["bob"].JoinStartDate = &joinStart
	participants["bob"].JoinEndDate = &joinEnd

	shares, err := service.Calculate(
		models.NewMoney(10000, "USD"),
		models.EqualSplit{ParticipantIDs: []string{"alice", "bob"}},
		participants,
		date("2026-06-01"), date("2026-06-10"))

	assert.NoError(t, err)
	amounts := shareAmounts(shares)
	assert.Equal(t, int64(5000), amounts["alice"])
	assert.Equal(t, int64(5000), amounts["bob"])
}

func TestShareService_EqualSplit_UnknownParticipantRejected(t *testing.T) {
	service := NewShareService()

	_, err := service.Calculate(
		models.NewMoney(1000, "USD"),
		models.EqualSplit{ParticipantIDs: []string{"alice", "mallory"}},
		fullParticipants("alice", "bob"),
		date("2026-06-01"), date("2026-06-10"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mallory")
}

func TestShareService_PercentageSplit_SumsExactly(t *testing.T) {
	service := NewShareService()

	shares, err := service.Calculate(
		models.NewMoney(10000, "USD"),
		models.PercentageSplit{Percents: map[string]decimal.Decimal{
			"alice": decimal.RequireFromString("33.33"),
			"bob":   decimal.RequireFromString("33.33"),
			"carol": decimal.RequireFromString("33.34"),
		}},
		fullParticipants("alice", "bob", "carol"),
		date("2026-06-01"), date("2026-06-10"))

	assert.NoError(t, err)
	amounts := shareAmounts(shares)
	var sum int64
	for _, a := range amounts {
		sum += a
	}
	assert.Equal(t, int64(10000), sum)
	assert.Equal(t, int64(3333), amounts["alice"])
	assert.Equal(t, int64(3333), amounts["bob"])
	assert.Equal(t, int64(3334), amounts["carol"])
}

func TestShareService_PercentageSplit_ResidualToLargestThenLowestID(t *testing.T) {
	service := NewShareService()

	// 101 split 50/50 rounds both halves to 50; the leftover unit goes to
	// the tied-largest share with the lowest id
	shares, err := service.Calculate(
		models.NewMoney(101, "USD"),
		models.PercentageSplit{Percents: map[string]decimal.Decimal{
			"alice": decimal.NewFromInt(50),
			"bob":   decimal.NewFromInt(50),
		}},
		fullParticipants("alice", "bob"),
		date("2026-06-01"), date("2026-06-10"))

	assert.NoError(t, err)
	amounts := shareAmounts(shares)
	assert.Equal(t, int64(51), amounts["alice"])
	assert.Equal(t, int64(50), amounts["bob"])
}

func TestShareService_PercentageSplit_MustSumToHundred(t *testing.T) {
	service := NewShareService()

	_, err := service.Calculate(
		models.NewMoney(10000, "USD"),
		models.PercentageSplit{Percents: map[string]decimal.Decimal{
			"alice": decimal.NewFromInt(60),
			"bob":   decimal.NewFromInt(50),
		}},
		fullParticipants("alice", "bob"),
		date("2026-06-01"), date("2026-06-10"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 100")
}

func TestShareService_AmountSplit_TakenAsGiven(t *testing.T) {
	service := NewShareService()

	shares, err := service.Calculate(
		models.NewMoney(1000, "USD"),
		models.AmountSplit{Amounts: map[string]int64{"alice": 700, "bob": 300}},
		fullParticipants("alice", "bob"),
		date("2026-06-01"), date("2026-06-10"))

	assert.NoError(t, err)
	amounts := shareAmounts(shares)
	assert.Equal(t, int64(700), amounts["alice"])
	assert.Equal(t, int64(300), amounts["bob"])
}

func TestShareService_AmountSplit_MismatchRejected(t *testing.T) {
	service := NewShareService()

	_, err := service.Calculate(
		models.NewMoney(1000, "USD"),
		models.AmountSplit{Amounts: map[string]int64{"alice": 300, "bob": 400}},
		fullParticipants("alice", "bob"),
		date("2026-06-01"), date("2026-06-10"))

	assert.Error(t, err)
	assert.True(t, utils.IsShareMismatch(err))
}

func TestShareService_WeightSplit_Proportional(t *testing.T) {
	service := NewShareService()

	// Weights 1:1:1 over 1000 leaves one unit; the tied-largest weight with
	// the lowest id absorbs it
	shares, err := service.Calculate(
		models.NewMoney(1000, "USD"),
		models.SharesSplit{Weights: map[string]int64{"alice": 1, "bob": 1, "carol": 1}},
		fullParticipants("alice", "bob", "carol"),
		date("2026-06-01"), date("2026-06-10"))

	assert.NoError(t, err)
	amounts := shareAmounts(shares)
	assert.Equal(t, int64(334), amounts["alice"])
	assert.Equal(t, int64(333), amounts["bob"])
	assert.Equal(t, int64(333), amounts["carol"])
}

func TestShareService_WeightSplit_LargestWeightAbsorbs(t *testing.T) {
	service := NewShareService()

	shares, err := service.Calculate(
		models.NewMoney(1000, "USD"),
		models.SharesSplit{Weights: map[string]int64{"alice": 1, "bob": 2}},
		fullParticipants("alice", "bob"),
		date("2026-06-01"), date("2026-06-10"))

	assert.NoError(t, err)
	amounts := shareAmounts(shares)
	assert.Equal(t, int64(1000), amounts["alice"]+amounts["bob"])
	assert.Equal(t, int64(333), amounts["alice"])
	assert.Equal(t, int64(667), amounts["bob"])
}

func TestShareService_RejectsNonPositiveTotal(t *testing.T) {
	service := NewShareService()

	_, err := service.Calculate(
		models.NewMoney(0, "USD"),
		models.EqualSplit{ParticipantIDs: []string{"alice"}},
		fullParticipants("alice"),
		date("2026-06-01"), date("2026-06-10"))

	assert.Error(t, err)
}

func TestShareService_Deterministic(t *testing.T) {
	service := NewShareService()

	rule := models.PercentageSplit{Percents: map[string]decimal.Decimal{
		"alice": decimal.RequireFromString("12.5"),
		"bob":   decimal.RequireFromString("37.5"),
		"carol": decimal.NewFromInt(50),
	}}
	participants := fullParticipants("alice", "bob", "carol")

	first, err := service.Calculate(models.NewMoney(9999, "EUR"), rule, participants,
		date("2026-06-01"), date("2026-06-10"))
	assert.NoError(t, err)

	second, err := service.Calculate(models.NewMoney(9999, "EUR"), rule, participants,
		date("2026-06-01"), date("2026-06-10"))
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
