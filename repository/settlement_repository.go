// repository/settlement_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/colin-rod/tripthreads-sub007/models"
)

// SettlementRepository handles settlement record persistence
type SettlementRepository struct {
	DB *sql.DB
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository() *SettlementRepository {
	return &SettlementRepository{
		DB: GetDB(),
	}
}

// ReplacePendingPlan replaces the trip's pending settlement plan with the
// given one in a single transaction. Settled records are never touched.
func (r *SettlementRepository) ReplacePendingPlan(tripID string, settlements []models.Settlement) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"DELETE FROM settlements WHERE trip_id = $1 AND status = $2",
		tripID, models.SettlementStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to clear pending settlements: %v", err)
	}

	for _, s := range settlements {
		_, err = tx.Exec(
			`INSERT INTO settlements
             (id, trip_id, from_participant, to_participant, amount, currency, status, created_at)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID, s.TripID, s.FromParticipant, s.ToParticipant,
			s.Amount.Amount, s.Amount.Currency, s.Status, s.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %v", err)
		}
	}

	return tx.Commit()
}

// GetSettlements retrieves all settlements for a trip
func (r *SettlementRepository) GetSettlements(tripID string) ([]models.Settlement, error) {
	rows, err := r.DB.Query(
		`SELECT id, trip_id, from_participant, to_participant, amount, currency,
                status, settled_at, settled_by, note, created_at
         FROM settlements WHERE trip_id = $1 ORDER BY created_at ASC, id ASC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlements: %v", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows.Scan)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, *s)
	}

	return settlements, rows.Err()
}

// GetSettlement retrieves a settlement by id
func (r *SettlementRepository) GetSettlement(settlementID string) (*models.Settlement, error) {
	row := r.DB.QueryRow(
		`SELECT id, trip_id, from_participant, to_participant, amount, currency,
                status, settled_at, settled_by, note, created_at
         FROM settlements WHERE id = $1`,
		settlementID,
	)
	s, err := scanSettlement(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("settlement not found")
	}
	return s, err
}

// MarkSettled marks a settlement as settled. The update is a single statement
// keyed by id, so retries and re-marking an already-settled record are
// harmless no-ops; the stored row is returned either way.
func (r *SettlementRepository) MarkSettled(settlementID, settledBy, note string) (*models.Settlement, error) {
	_, err := r.DB.Exec(
		`UPDATE settlements
         SET status = $2, settled_at = now(), settled_by = $3,
             note = CASE WHEN $4 <> '' THEN $4 ELSE note END
         WHERE id = $1 AND status = $5`,
		settlementID, models.SettlementStatusSettled, settledBy, note,
		models.SettlementStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark settlement settled: %v", err)
	}

	return r.GetSettlement(settlementID)
}

// scanSettlement scans one settlement row, mapping nullable columns
func scanSettlement(scan func(dest ...interface{}) error) (*models.Settlement, error) {
	var s models.Settlement
	var settledAt sql.NullTime
	var settledBy, note sql.NullString

	err := scan(&s.ID, &s.TripID, &s.FromParticipant, &s.ToParticipant,
		&s.Amount.Amount, &s.Amount.Currency, &s.Status, &settledAt, &settledBy, &note,
		&s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan settlement: %v", err)
	}

	if settledAt.Valid {
		s.SettledAt = &settledAt.Time
	}
	if settledBy.Valid {
		s.SettledBy = settledBy.String
	}
	if note.Valid {
		s.Note = note.String
	}

	return &s, nil
}
