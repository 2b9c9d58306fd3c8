package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// CreateTrip handles the creation of a new trip
func CreateTrip(c *gin.Context) {
	var request models.CreateTripRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.CreateTrip(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	response := models.CreateTripResponse{
		TripID: trip.ID,
		Code:   trip.Code,
	}

	utils.HandleSuccess(c, response)
}

// GetTripByCode handles retrieving a trip by its code
func GetTripByCode(c *gin.Context) {
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

	utils.HandleSuccess(c, trip)
}

// AddParticipant adds a participant to a trip, optionally with a join window
// for partial attendance
func AddParticipant(c *gin.Context) {
	var request models.AddParticipantRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	participant, err := handlerServices.TripService.AddParticipant(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, participant)
}
