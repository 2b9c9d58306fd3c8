// services/ledger_service.go
package services

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/repository"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// maxSnapshotRetries bounds how often a balance computation restarts when
// expenses mutate underneath it.
const maxSnapshotRetries = 3

// RateResolver supplies an exchange rate for a currency pair and date
type RateResolver interface {
	Resolve(from, to string, date time.Time) (decimal.Decimal, error)
}

// LedgerService folds a trip's expenses and shares into net balances per
// participant in the trip's base currency.
type LedgerService struct {
	tripRepo        *repository.TripRepository
	participantRepo *repository.ParticipantRepository
	expenseRepo     *repository.ExpenseRepository
	resolver        RateResolver
}

// NewLedgerService creates a new ledger service
func NewLedgerService(tripRepo *repository.TripRepository, participantRepo *repository.ParticipantRepository,
	expenseRepo *repository.ExpenseRepository, resolver RateResolver) *LedgerService {
	return &LedgerService{
		tripRepo:        tripRepo,
		participantRepo: participantRepo,
		expenseRepo:     expenseRepo,
		resolver:        resolver,
	}
}

// ComputeBalances derives net balances for a trip from a consistent snapshot
// of its expense set. If the set mutates mid-computation (detected via the
// trip revision counter) the snapshot is discarded and retried rather than
// holding a lock across the whole pipeline. Recomputing over an unchanged
// expense set is idempotent.
func (s *LedgerService) ComputeBalances(tripID string) (*models.BalanceResult, error) {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return nil, utils.NewNotFoundError("Trip")
	}

	for attempt := 0; attempt < maxSnapshotRetries; attempt++ {
		before, err := s.tripRepo.GetRevision(tripID)
		if err != nil {
			return nil, utils.NewInternalError("Failed to read trip revision")
		}

		participants, err := s.participantRepo.GetParticipants(tripID)
		if err != nil {
			return nil, utils.NewInternalError("Failed to retrieve participants")
		}

		expenses, shares, err := s.expenseRepo.GetExpenses(tripID)
		if err != nil {
			return nil, utils.NewInternalError("Failed to retrieve expenses")
		}

		after, err := s.tripRepo.GetRevision(tripID)
		if err != nil {
			return nil, utils.NewInternalError("Failed to read trip revision")
		}

		if before == after {
			return AggregateBalances(trip, participants, expenses, shares, s.resolver), nil
		}

		slog.Debug("expense set changed during balance computation, retrying",
			"trip", tripID, "attempt", attempt+1)
	}

	return nil, utils.NewInternalError("Trip changed repeatedly during balance computation")
}

// AggregateBalances folds expenses into per-participant net balances in the
// trip's base currency. For each expense every sharing participant (payer
// included) is debited their converted share and the payer is credited the
// sum of those converted shares, so a trip's balances always sum to exactly
// zero. Crediting the collected sum rather than the raw total means any
// proration discount on an equal split falls on the payer, who covered the
// absent participant's portion out of pocket.
// Conversion uses the expense's frozen rate when present, 1 for same-currency
// expenses, and the resolver otherwise; an unresolvable rate excludes the
// expense and reports its id in DegradedExpenseIDs instead of aborting.
// Processing order does not affect the result.
func AggregateBalances(trip *models.Trip, participants []*models.Participant,
	expenses []*models.Expense, shares map[string][]models.ExpenseShare,
	resolver RateResolver) *models.BalanceResult {

	balances := make(map[string]int64, len(participants))
	for _, p := range participants {
		balances[p.ID] = 0
	}

	degraded := []string{}
	one := decimal.NewFromInt(1)

	for _, expense := range expenses {
		var rate decimal.Decimal
		switch {
		case expense.FrozenRate.Valid:
			rate = expense.FrozenRate.Decimal
		case expense.Amount.Currency == trip.BaseCurrency:
			rate = one
		default:
			resolved, err := resolver.Resolve(expense.Amount.Currency, trip.BaseCurrency, expense.Date)
			if err != nil {
				slog.Warn("excluding expense with unavailable rate",
					"trip", trip.ID, "expense", expense.ID,
					"currency", expense.Amount.Currency, "base", trip.BaseCurrency)
				degraded = append(degraded, expense.ID)
				continue
			}
			rate = resolved
		}

		var collected int64
		for _, share := range shares[expense.ID] {
			converted := utils.ConvertMinorUnits(share.Share.Amount, rate)
			balances[share.ParticipantID] -= converted
			collected += converted
		}
		balances[expense.PayerID] += collected
	}

	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]models.NetBalance, 0, len(ids))
	for _, id := range ids {
		result = append(result, models.NetBalance{
			ParticipantID: id,
			Amount:        models.NewMoney(balances[id], trip.BaseCurrency),
		})
	}

	return &models.BalanceResult{
		Balances:           result,
		DegradedExpenseIDs: degraded,
	}
}
