package routes

import (
	"github.com/colin-rod/tripthreads-sub007/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine) {
	handlers.InitHandlers()

	v1 := router.Group("/api/v1")
	{
		// Trip endpoints
		v1.POST("/trips/create", handlers.CreateTrip)
		v1.POST("/trips/getByCode", handlers.GetTripByCode)
		v1.POST("/participants/add", handlers.AddParticipant)

		// Expense endpoints
		v1.POST("/expenses/add", handlers.AddExpense)
		v1.POST("/expenses/edit", handlers.EditExpense)
		v1.POST("/expenses/remove", handlers.RemoveExpense)
		v1.POST("/expenses/list", handlers.ListExpenses)

		// Balance and settlement endpoints
		v1.POST("/balances/compute", handlers.ComputeBalances)
		v1.POST("/settlements/compute", handlers.ComputeSettlements)
		v1.POST("/settlements/record", handlers.RecordSettlements)
		v1.POST("/settlements/markSettled", handlers.MarkSettled)
		v1.POST("/settlements/list", handlers.ListSettlements)

		// Report export endpoint
		v1.GET("/trips/:code/export", handlers.ExportTripReport)
	}
}
