package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// ComputeSettlements calculates the suggested settlement plan for a trip
// without persisting it
func ComputeSettlements(c *gin.Context) {
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

	settlements, err := handlerServices.SettlementService.ComputeSettlements(trip.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlements)
}

// RecordSettlements persists the current settlement proposal as the trip's
// pending plan
func RecordSettlements(c *gin.Context) {
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

	settlements, err := handlerServices.SettlementService.RecordSettlements(trip.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlements)
}

// ListSettlements lists a trip's persisted settlements
func ListSettlements(c *gin.Context) {
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

	settlements, err := handlerServices.SettlementService.ListSettlements(trip.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlements)
}

// MarkSettled marks a settlement as paid out-of-band. The operation is
// idempotent, so callers may safely retry it.
func MarkSettled(c *gin.Context) {
	var request models.MarkSettledRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	settlement, err := handlerServices.SettlementService.MarkSettled(
		request.SettlementID, request.SettledBy, request.Note)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlement)
}
