// services/report_service.go
package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// ReportService handles Excel export of a trip's ledger
type ReportService struct {
	tripService       *TripService
	expenseService    *ExpenseService
	ledgerService     *LedgerService
	settlementService *SettlementService
}

// NewReportService creates a new report service
func NewReportService(tripService *TripService, expenseService *ExpenseService,
	ledgerService *LedgerService, settlementService *SettlementService) *ReportService {
	return &ReportService{
		tripService:       tripService,
		expenseService:    expenseService,
		ledgerService:     ledgerService,
		settlementService: settlementService,
	}
}

// ExportTripReport generates an Excel file for a trip and returns it with a
// suggested filename
func (s *ReportService) ExportTripReport(tripCode string) (*excelize.File, string, error) {
	trip, err := s.tripService.GetTripByCode(tripCode)
	if err != nil {
		return nil, "", err
	}

	participants, err := s.tripService.GetParticipants(trip.ID)
	if err != nil {
		return nil, "", err
	}
	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.DisplayName
	}

	balanceResult, err := s.ledgerService.ComputeBalances(trip.ID)
	if err != nil {
		return nil, "", err
	}

	expenses, err := s.expenseService.ListExpenses(tripCode)
	if err != nil {
		return nil, "", err
	}

	plan, err := s.settlementService.ComputeSettlements(trip.ID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	if err := s.createSummarySheet(f, trip, balanceResult, names); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}
	if err := s.createExpensesSheet(f, expenses, names); err != nil {
		return nil, "", fmt.Errorf("failed to create expenses sheet: %v", err)
	}
	if err := s.createSettlementsSheet(f, plan, names); err != nil {
		return nil, "", fmt.Errorf("failed to create settlements sheet: %v", err)
	}

	// Remove the default sheet
	f.DeleteSheet("Sheet1")

	filename := utils.CleanFileName(fmt.Sprintf("%s_%s_report.xlsx", trip.Name, trip.Code))
	return f, filename, nil
}

// createSummarySheet writes trip info and net balances, marking excluded
// expenses so degraded views stay visible
func (s *ReportService) createSummarySheet(f *excelize.File, trip *models.Trip,
	result *models.BalanceResult, names map[string]string) error {

	sheet := "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Trip")
	f.SetCellValue(sheet, "B1", trip.Name)
	f.SetCellValue(sheet, "A2", "Code")
	f.SetCellValue(sheet, "B2", trip.Code)
	f.SetCellValue(sheet, "A3", "Base currency")
	f.SetCellValue(sheet, "B3", trip.BaseCurrency)
	f.SetCellValue(sheet, "A4", "Dates")
	f.SetCellValue(sheet, "B4", fmt.Sprintf("%s to %s",
		trip.StartDate.Format(utils.DateLayout), trip.EndDate.Format(utils.DateLayout)))

	f.SetCellValue(sheet, "A6", "Participant")
	f.SetCellValue(sheet, "B6", "Net balance")
	f.SetCellValue(sheet, "C6", "Position")

	row := 7
	for _, balance := range result.Balances {
		position := "even"
		if balance.Amount.Amount > 0 {
			position = "is owed"
		} else if balance.Amount.Amount < 0 {
			position = "owes"
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), displayName(names, balance.ParticipantID))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row),
			utils.FormatMinorUnits(balance.Amount.Amount, balance.Amount.Currency))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), position)
		row++
	}

	if len(result.DegradedExpenseIDs) > 0 {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row),
			fmt.Sprintf("Excluded expenses (no exchange rate available): %d", len(result.DegradedExpenseIDs)))
		for _, id := range result.DegradedExpenseIDs {
			row++
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), id)
		}
	}

	return nil
}

// createExpensesSheet writes one row per expense
func (s *ReportService) createExpensesSheet(f *excelize.File,
	expenses []models.ExpenseWithShares, names map[string]string) error {

	sheet := "Expenses"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Date", "Category", "Paid by", "Amount", "Currency", "Frozen rate", "Split rule"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, e := range expenses {
		row := i + 2
		rate := ""
		if e.Expense.FrozenRate.Valid {
			rate = e.Expense.FrozenRate.Decimal.String()
		}
		ruleTag := ""
		if len(e.Shares) > 0 {
			ruleTag = e.Shares[0].RuleTag
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.Expense.Date.Format(utils.DateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Expense.Category)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), displayName(names, e.Expense.PayerID))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row),
			utils.FormatMinorUnits(e.Expense.Amount.Amount, e.Expense.Amount.Currency))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.Expense.Amount.Currency)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), rate)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), ruleTag)
	}

	return nil
}

// createSettlementsSheet writes the suggested settlement plan
func (s *ReportService) createSettlementsSheet(f *excelize.File,
	plan []models.Settlement, names map[string]string) error {

	sheet := "Settlement Plan"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "From")
	f.SetCellValue(sheet, "B1", "To")
	f.SetCellValue(sheet, "C1", "Amount")

	for i, settlement := range plan {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), displayName(names, settlement.FromParticipant))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), displayName(names, settlement.ToParticipant))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row),
			utils.FormatMinorUnits(settlement.Amount.Amount, settlement.Amount.Currency))
	}

	return nil
}

// displayName resolves a participant id to its display name, falling back to
// the id for participants no longer on the trip
func displayName(names map[string]string, participantID string) string {
	if name, ok := names[participantID]; ok && name != "" {
		return name
	}
	return participantID
}
