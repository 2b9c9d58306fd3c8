package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// ComputeBalances computes net balances for a trip. Expenses excluded for a
// missing exchange rate are reported alongside the balances so views can mark
// them.
func ComputeBalances(c *gin.Context) {
	var request models.GetTripByCodeRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.GetTripByCode(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	result, err := handlerServices.LedgerService.ComputeBalances(trip.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, result)
}
