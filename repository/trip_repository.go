// repository/trip_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/colin-rod/tripthreads-sub007/models"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	DB *sql.DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository() *TripRepository {
	return &TripRepository{
		DB: GetDB(),
	}
}

// StoreTrip saves a trip to the database
func (r *TripRepository) StoreTrip(trip *models.Trip) error {
	_, err := r.DB.Exec(
		`INSERT INTO trips (id, code, name, base_currency, start_date, end_date, creation_time)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		trip.ID, trip.Code, trip.Name, trip.BaseCurrency, trip.StartDate, trip.EndDate, trip.CreationTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %v", err)
	}
	return nil
}

// GetTripByCode retrieves a trip by its code
func (r *TripRepository) GetTripByCode(code string) (*models.Trip, error) {
	var trip models.Trip
	err := r.DB.QueryRow(
		`SELECT id, code, name, base_currency, start_date, end_date, revision, creation_time
         FROM trips WHERE code = $1`,
		code,
	).Scan(&trip.ID, &trip.Code, &trip.Name, &trip.BaseCurrency,
		&trip.StartDate, &trip.EndDate, &trip.Revision, &trip.CreationTime)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("trip not found")
		}
		return nil, fmt.Errorf("failed to get trip: %v", err)
	}

	return &trip, nil
}

// GetTripByID retrieves a trip by its ID
func (r *TripRepository) GetTripByID(tripID string) (*models.Trip, error) {
	var trip models.Trip
	err := r.DB.QueryRow(
		`SELECT id, code, name, base_currency, start_date, end_date, revision, creation_time
         FROM trips WHERE id = $1`,
		tripID,
	).Scan(&trip.ID, &trip.Code, &trip.Name, &trip.BaseCurrency,
		&trip.StartDate, &trip.EndDate, &trip.Revision, &trip.CreationTime)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("trip not found")
		}
		return nil, fmt.Errorf("failed to get trip: %v", err)
	}

	return &trip, nil
}

// GetRevision returns the trip's current revision counter. The counter is
// bumped in the same transaction as every expense mutation, so comparing it
// before and after a snapshot read detects concurrent changes.
func (r *TripRepository) GetRevision(tripID string) (int64, error) {
	var revision int64
	err := r.DB.QueryRow("SELECT revision FROM trips WHERE id = $1", tripID).Scan(&revision)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("trip not found")
		}
		return 0, fmt.Errorf("failed to get trip revision: %v", err)
	}
	return revision, nil
}
