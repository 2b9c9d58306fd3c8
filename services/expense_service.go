// services/expense_service.go
package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/repository"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// ExpenseService handles expense business logic. Shares are computed and
// validated when the expense is written, so a share mismatch never reaches
// the aggregator, and the FX snapshot is frozen here at creation time.
type ExpenseService struct {
	tripRepo        *repository.TripRepository
	participantRepo *repository.ParticipantRepository
	expenseRepo     *repository.ExpenseRepository
	shareService    *ShareService
	fxService       *FXService
}

// NewExpenseService creates a new expense service
func NewExpenseService(tripRepo *repository.TripRepository, participantRepo *repository.ParticipantRepository,
	expenseRepo *repository.ExpenseRepository, shareService *ShareService, fxService *FXService) *ExpenseService {
	return &ExpenseService{
		tripRepo:        tripRepo,
		participantRepo: participantRepo,
		expenseRepo:     expenseRepo,
		shareService:    shareService,
		fxService:       fxService,
	}
}

// AddExpense creates an expense and its computed shares as one unit
func (s *ExpenseService) AddExpense(req *models.AddExpenseRequest) (*models.ExpenseWithShares, error) {
	trip, err := s.tripRepo.GetTripByCode(req.Code)
	if err != nil {
		return nil, utils.NewNotFoundError("Trip")
	}

	expense, shares, err := s.buildExpense(trip, req.PayerID, req.Amount, req.Currency,
		req.Category, req.Date, req.SplitRule, req.Shares)
	if err != nil {
		return nil, err
	}

	expense.ID = uuid.NewString()
	expense.CreationTime = time.Now().UnixMilli()
	for i := range shares {
		shares[i].ExpenseID = expense.ID
	}

	expense.FrozenRate = s.freezeRate(trip, expense.Amount.Currency, expense.Date)

	if err := s.expenseRepo.StoreExpense(expense, shares); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return &models.ExpenseWithShares{Expense: expense, Shares: shares}, nil
}

// EditExpense replaces an expense and all of its shares as one unit, forcing
// balance recomputation for the whole trip. The frozen FX snapshot is kept
// when the currency is unchanged and re-captured otherwise.
func (s *ExpenseService) EditExpense(req *models.EditExpenseRequest) (*models.ExpenseWithShares, error) {
	trip, err := s.tripRepo.GetTripByCode(req.Code)
	if err != nil {
		return nil, utils.NewNotFoundError("Trip")
	}

	existing, err := s.expenseRepo.GetExpense(req.ExpenseID)
	if err != nil || existing.TripID != trip.ID {
		return nil, utils.NewNotFoundError("Expense")
	}

	expense, shares, err := s.buildExpense(trip, req.PayerID, req.Amount, req.Currency,
		req.Category, req.Date, req.SplitRule, req.Shares)
	if err != nil {
		return nil, err
	}

	expense.ID = existing.ID
	expense.CreationTime = existing.CreationTime
	for i := range shares {
		shares[i].ExpenseID = expense.ID
	}

	if expense.Amount.Currency == existing.Amount.Currency && existing.FrozenRate.Valid {
		expense.FrozenRate = existing.FrozenRate
	} else {
		expense.FrozenRate = s.freezeRate(trip, expense.Amount.Currency, expense.Date)
	}

	if err := s.expenseRepo.ReplaceExpense(expense, shares); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return &models.ExpenseWithShares{Expense: expense, Shares: shares}, nil
}

// RemoveExpense removes an expense from a trip
func (s *ExpenseService) RemoveExpense(code, expenseID string) error {
	trip, err := s.tripRepo.GetTripByCode(code)
	if err != nil {
		return utils.NewNotFoundError("Trip")
	}

	removed, err := s.expenseRepo.RemoveExpense(trip.ID, expenseID)
	if err != nil {
		return utils.NewInternalError("Failed to remove expense")
	}
	if !removed {
		return utils.NewNotFoundError("Expense")
	}

	return nil
}

// ListExpenses lists a trip's expenses with their shares
func (s *ExpenseService) ListExpenses(code string) ([]models.ExpenseWithShares, error) {
	trip, err := s.tripRepo.GetTripByCode(code)
	if err != nil {
		return nil, utils.NewNotFoundError("Trip")
	}

	expenses, shares, err := s.expenseRepo.GetExpenses(trip.ID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	result := make([]models.ExpenseWithShares, 0, len(expenses))
	for _, expense := range expenses {
		result = append(result, models.ExpenseWithShares{
			Expense: expense,
			Shares:  shares[expense.ID],
		})
	}
	return result, nil
}

// buildExpense validates the request parts shared by add and edit and
// computes the shares
func (s *ExpenseService) buildExpense(trip *models.Trip, payerID string, amount int64,
	currency, category, date, splitRule string, shareInputs []models.ShareInput) (*models.Expense, []models.ExpenseShare, error) {

	currency = utils.NormalizeCurrency(currency)
	if err := utils.ValidateCurrencyCode(currency, "currency"); err != nil {
		return nil, nil, err
	}

	expenseDate, err := utils.ParseDate(date, "date")
	if err != nil {
		return nil, nil, err
	}

	rule, err := models.ParseSplitRule(splitRule, shareInputs)
	if err != nil {
		return nil, nil, utils.NewValidationError(err.Error())
	}

	participants, err := s.participantRepo.GetParticipants(trip.ID)
	if err != nil {
		return nil, nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	participantsByID := make(map[string]*models.Participant, len(participants))
	for _, p := range participants {
		participantsByID[p.ID] = p
	}

	if _, ok := participantsByID[payerID]; !ok {
		return nil, nil, utils.NewValidationError(fmt.Sprintf("payer %s is not on this trip", payerID))
	}
	for _, input := range shareInputs {
		if _, ok := participantsByID[input.ParticipantID]; !ok {
			return nil, nil, utils.NewValidationError(
				fmt.Sprintf("participant %s is not on this trip", input.ParticipantID))
		}
	}

	total := models.NewMoney(amount, currency)
	shares, err := s.shareService.Calculate(total, rule, participantsByID, trip.StartDate, trip.EndDate)
	if err != nil {
		return nil, nil, err
	}

	expense := &models.Expense{
		TripID:   trip.ID,
		PayerID:  payerID,
		Amount:   total,
		Category: category,
		Date:     expenseDate,
	}
	return expense, shares, nil
}

// freezeRate captures the FX snapshot for a new expense. Failure is soft:
// the expense is stored without a frozen rate and aggregation resolves or
// degrades it later.
func (s *ExpenseService) freezeRate(trip *models.Trip, currency string, date time.Time) decimal.NullDecimal {
	if currency == trip.BaseCurrency {
		return decimal.NullDecimal{}
	}

	rate, err := s.fxService.Resolve(currency, trip.BaseCurrency, date)
	if err != nil {
		slog.Warn("could not freeze FX rate at expense creation",
			"trip", trip.ID, "currency", currency, "base", trip.BaseCurrency)
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: rate, Valid: true}
}
