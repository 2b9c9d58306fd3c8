package handlers

import (
	"github.com/colin-rod/tripthreads-sub007/repository"
	"github.com/colin-rod/tripthreads-sub007/services"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	TripService       *services.TripService
	ExpenseService    *services.ExpenseService
	LedgerService     *services.LedgerService
	SettlementService *services.SettlementService
	ReportService     *services.ReportService
}

// NewHandlerServices creates a new handler services instance
func NewHandlerServices() *HandlerServices {
	tripRepo := repository.NewTripRepository()
	participantRepo := repository.NewParticipantRepository()
	expenseRepo := repository.NewExpenseRepository()
	settlementRepo := repository.NewSettlementRepository()

	fxService := services.NewFXService()
	shareService := services.NewShareService()
	tripService := services.NewTripService(tripRepo, participantRepo)
	expenseService := services.NewExpenseService(tripRepo, participantRepo, expenseRepo, shareService, fxService)
	ledgerService := services.NewLedgerService(tripRepo, participantRepo, expenseRepo, fxService)
	settlementService := services.NewSettlementService(ledgerService, settlementRepo)
	reportService := services.NewReportService(tripService, expenseService, ledgerService, settlementService)

	return &HandlerServices{
		TripService:       tripService,
		ExpenseService:    expenseService,
		LedgerService:     ledgerService,
		SettlementService: settlementService,
		ReportService:     reportService,
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers() {
	handlerServices = NewHandlerServices()
}
