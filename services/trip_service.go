// services/trip_service.go
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/repository"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// TripService handles trip and participant business logic
type TripService struct {
	tripRepo        *repository.TripRepository
	participantRepo *repository.ParticipantRepository
}

// NewTripService creates a new trip service
func NewTripService(tripRepo *repository.TripRepository, participantRepo *repository.ParticipantRepository) *TripService {
	return &TripService{
		tripRepo:        tripRepo,
		participantRepo: participantRepo,
	}
}

// CreateTrip creates a new trip with a join code and a base currency
func (s *TripService) CreateTrip(req *models.CreateTripRequest) (*models.Trip, error) {
	currency := utils.NormalizeCurrency(req.BaseCurrency)
	if err := utils.ValidateCurrencyCode(currency, "baseCurrency"); err != nil {
		return nil, err
	}

	startDate, err := utils.ParseDate(req.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := utils.ParseDate(req.EndDate, "endDate")
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateDateOrder(startDate, endDate); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		ID:           uuid.NewString(),
		CreationTime: time.Now().UnixMilli(),
		Code:         utils.GenerateCode(),
		Name:         req.Name,
		BaseCurrency: currency,
		StartDate:    startDate,
		EndDate:      endDate,
	}

	if err := s.tripRepo.StoreTrip(trip); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return trip, nil
}

// GetTripByCode retrieves a trip by its code
func (s *TripService) GetTripByCode(code string) (*models.Trip, error) {
	trip, err := s.tripRepo.GetTripByCode(code)
	if err != nil {
		return nil, utils.NewNotFoundError("Trip")
	}
	return trip, nil
}

// AddParticipant adds a participant to a trip. Adding the same user twice is
// a no-op returning the existing record. Join dates, when both are set and
// the window lies strictly inside the trip range, mark a partial joiner.
func (s *TripService) AddParticipant(req *models.AddParticipantRequest) (*models.Participant, error) {
	trip, err := s.GetTripByCode(req.Code)
	if err != nil {
		return nil, err
	}

	participant := &models.Participant{
		ID:          uuid.NewString(),
		TripID:      trip.ID,
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
	}

	if req.JoinStartDate != "" {
		start, err := utils.ParseDate(req.JoinStartDate, "joinStartDate")
		if err != nil {
			return nil, err
		}
		participant.JoinStartDate = &start
	}
	if req.JoinEndDate != "" {
		end, err := utils.ParseDate(req.JoinEndDate, "joinEndDate")
		if err != nil {
			return nil, err
		}
		participant.JoinEndDate = &end
	}
	if participant.JoinStartDate != nil && participant.JoinEndDate != nil {
		if err := utils.ValidateDateOrder(*participant.JoinStartDate, *participant.JoinEndDate); err != nil {
			return nil, err
		}
	}

	stored, err := s.participantRepo.AddParticipant(participant)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return stored, nil
}

// GetParticipants lists a trip's participants
func (s *TripService) GetParticipants(tripID string) ([]*models.Participant, error) {
	participants, err := s.participantRepo.GetParticipants(tripID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return participants, nil
}
