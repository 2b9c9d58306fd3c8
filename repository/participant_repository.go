// repository/participant_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/colin-rod/tripthreads-sub007/models"
)

// ParticipantRepository handles database operations for trip participants
type ParticipantRepository struct {
	DB *sql.DB
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{
		DB: GetDB(),
	}
}

// AddParticipant adds a participant to a trip if they don't exist already.
// Returns the stored participant either way.
func (r *ParticipantRepository) AddParticipant(p *models.Participant) (*models.Participant, error) {
	// Check if participant already exists for this user
	var existing models.Participant
	err := r.DB.QueryRow(
		`SELECT id, trip_id, user_id, display_name, join_start_date, join_end_date
         FROM participants WHERE trip_id = $1 AND user_id = $2`,
		p.TripID, p.UserID,
	).Scan(&existing.ID, &existing.TripID, &existing.UserID, &existing.DisplayName,
		&existing.JoinStartDate, &existing.JoinEndDate)

	if err == nil {
		return &existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check participant: %v", err)
	}

	_, err = r.DB.Exec(
		`INSERT INTO participants (id, trip_id, user_id, display_name, join_start_date, join_end_date)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.TripID, p.UserID, p.DisplayName, p.JoinStartDate, p.JoinEndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert participant: %v", err)
	}

	return p, nil
}

// GetParticipants retrieves all participants for a trip in ascending id order
func (r *ParticipantRepository) GetParticipants(tripID string) ([]*models.Participant, error) {
	rows, err := r.DB.Query(
		`SELECT id, trip_id, user_id, display_name, join_start_date, join_end_date
         FROM participants WHERE trip_id = $1 ORDER BY id ASC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %v", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.TripID, &p.UserID, &p.DisplayName,
			&p.JoinStartDate, &p.JoinEndDate); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %v", err)
		}
		participants = append(participants, &p)
	}

	return participants, rows.Err()
}

// GetParticipant retrieves a single participant by id
func (r *ParticipantRepository) GetParticipant(participantID string) (*models.Participant, error) {
	var p models.Participant
	err := r.DB.QueryRow(
		`SELECT id, trip_id, user_id, display_name, join_start_date, join_end_date
         FROM participants WHERE id = $1`,
		participantID,
	).Scan(&p.ID, &p.TripID, &p.UserID, &p.DisplayName, &p.JoinStartDate, &p.JoinEndDate)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("participant not found")
		}
		return nil, fmt.Errorf("failed to get participant: %v", err)
	}

	return &p, nil
}
