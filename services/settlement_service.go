// services/settlement_service.go
package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/repository"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// SettlementService turns net balances into a small deterministic list of
// suggested transfers and manages their persisted lifecycle.
type SettlementService struct {
	ledgerService  *LedgerService
	settlementRepo *repository.SettlementRepository
}

// NewSettlementService creates a new settlement service
func NewSettlementService(ledgerService *LedgerService, settlementRepo *repository.SettlementRepository) *SettlementService {
	return &SettlementService{
		ledgerService:  ledgerService,
		settlementRepo: settlementRepo,
	}
}

// personBalance is one party's remaining position during optimization
type personBalance struct {
	ParticipantID string
	Amount        int64
}

// ComputeSettlements derives the current settlement proposal for a trip.
// It has no persistence side effect.
func (s *SettlementService) ComputeSettlements(tripID string) ([]models.Settlement, error) {
	result, err := s.ledgerService.ComputeBalances(tripID)
	if err != nil {
		return nil, err
	}
	return s.Optimize(result.Balances)
}

// Optimize reduces net balances to transfers using greedy debt
// simplification: repeatedly match the largest creditor with the largest
// debtor. The result is deterministic but not provably minimal; true
// minimum-transaction netting is NP-hard and out of scope. After the loop
// every balance is zero; integer rounding can leave at most one minor unit
// per input balance unmatched, and anything beyond that tolerance is a
// defect surfaced as an internal inconsistency, never emitted as a wrong
// settlement.
func (s *SettlementService) Optimize(balances []models.NetBalance) ([]models.Settlement, error) {
	var creditors, debtors []personBalance
	var currency string

	for _, b := range balances {
		if currency == "" {
			currency = b.Amount.Currency
		}
		if b.Amount.Amount > 0 {
			creditors = append(creditors, personBalance{b.ParticipantID, b.Amount.Amount})
		} else if b.Amount.Amount < 0 {
			debtors = append(debtors, personBalance{b.ParticipantID, -b.Amount.Amount})
		}
	}

	sortByAmountDesc(creditors)
	sortByAmountDesc(debtors)

	settlements := []models.Settlement{}

	// Removing an extremal element keeps the remaining order sorted, so a
	// single pass with two cursors suffices.
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		amount := utils.MinInt64(creditors[i].Amount, debtors[j].Amount)

		if amount > 0 {
			settlements = append(settlements, models.Settlement{
				FromParticipant: debtors[j].ParticipantID,
				ToParticipant:   creditors[i].ParticipantID,
				Amount:          models.NewMoney(amount, currency),
				Status:          models.SettlementStatusPending,
			})
		}

		creditors[i].Amount -= amount
		debtors[j].Amount -= amount

		if creditors[i].Amount == 0 {
			i++
		}
		if debtors[j].Amount == 0 {
			j++
		}
	}

	var residual int64
	for ; i < len(creditors); i++ {
		residual += creditors[i].Amount
	}
	for ; j < len(debtors); j++ {
		residual += debtors[j].Amount
	}

	if residual > int64(len(balances)) {
		return nil, utils.NewInternalInconsistencyError(residual)
	}

	return settlements, nil
}

// RecordSettlements computes the trip's settlement proposal and persists it
// as the pending plan, replacing any previous still-pending plan. Settled
// records are never replaced.
func (s *SettlementService) RecordSettlements(tripID string) ([]models.Settlement, error) {
	plan, err := s.ComputeSettlements(tripID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range plan {
		plan[i].ID = uuid.NewString()
		plan[i].TripID = tripID
		plan[i].CreatedAt = now
	}

	if err := s.settlementRepo.ReplacePendingPlan(tripID, plan); err != nil {
		return nil, utils.NewInternalError("Failed to store settlement plan")
	}

	return plan, nil
}

// ListSettlements returns all persisted settlements for a trip
func (s *SettlementService) ListSettlements(tripID string) ([]models.Settlement, error) {
	settlements, err := s.settlementRepo.GetSettlements(tripID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve settlements")
	}
	if settlements == nil {
		settlements = []models.Settlement{}
	}
	return settlements, nil
}

// MarkSettled marks a settlement as paid out-of-band. The write is a single
// idempotent update keyed by settlement id; re-marking an already-settled
// record returns it unchanged.
func (s *SettlementService) MarkSettled(settlementID, settledBy, note string) (*models.Settlement, error) {
	if err := utils.ValidateRequired(settlementID, "settlementId"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(settledBy, "settledBy"); err != nil {
		return nil, err
	}

	settlement, err := s.settlementRepo.MarkSettled(settlementID, settledBy, strings.TrimSpace(note))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, utils.NewNotFoundError("Settlement")
		}
		return nil, utils.NewInternalError("Failed to mark settlement settled")
	}

	return settlement, nil
}

// sortByAmountDesc orders balances by amount descending, ties broken by
// ascending participant id for deterministic output
func sortByAmountDesc(slice []personBalance) {
	sort.Slice(slice, func(i, j int) bool {
		if slice[i].Amount != slice[j].Amount {
			return slice[i].Amount > slice[j].Amount
		}
		return slice[i].ParticipantID < slice[j].ParticipantID
	})
}
