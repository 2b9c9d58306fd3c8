// repository/expense_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/colin-rod/tripthreads-sub007/models"
)

// ExpenseRepository handles database operations for expenses and their shares
type ExpenseRepository struct {
	DB *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{
		DB: GetDB(),
	}
}

// StoreExpense saves an expense and its shares in one transaction and bumps
// the trip revision so cached balances are invalidated.
func (r *ExpenseRepository) StoreExpense(expense *models.Expense, shares []models.ExpenseShare) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO expenses
         (id, trip_id, payer_id, amount, currency, category, expense_date, fx_rate, creation_time)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		expense.ID, expense.TripID, expense.PayerID, expense.Amount.Amount, expense.Amount.Currency,
		expense.Category, expense.Date, expense.FrozenRate, expense.CreationTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %v", err)
	}

	if err := insertShares(tx, expense.ID, shares); err != nil {
		return err
	}

	if err := bumpRevision(tx, expense.TripID); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceExpense replaces an expense and all of its shares as one unit.
// Used by full edits; partial share updates are not supported.
func (r *ExpenseRepository) ReplaceExpense(expense *models.Expense, shares []models.ExpenseShare) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE expenses
         SET payer_id = $1, amount = $2, currency = $3, category = $4, expense_date = $5, fx_rate = $6
         WHERE id = $7 AND trip_id = $8`,
		expense.PayerID, expense.Amount.Amount, expense.Amount.Currency, expense.Category,
		expense.Date, expense.FrozenRate, expense.ID, expense.TripID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check expense update: %v", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense not found")
	}

	_, err = tx.Exec("DELETE FROM expense_shares WHERE expense_id = $1", expense.ID)
	if err != nil {
		return fmt.Errorf("failed to delete expense shares: %v", err)
	}

	if err := insertShares(tx, expense.ID, shares); err != nil {
		return err
	}

	if err := bumpRevision(tx, expense.TripID); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveExpense removes an expense. Returns false if the expense does not
// exist or does not belong to the trip.
func (r *ExpenseRepository) RemoveExpense(tripID string, expenseID string) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM expenses WHERE id = $1 AND trip_id = $2", expenseID, tripID)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check expense delete: %v", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := bumpRevision(tx, tripID); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// GetExpense retrieves a single expense by id
func (r *ExpenseRepository) GetExpense(expenseID string) (*models.Expense, error) {
	var expense models.Expense
	err := r.DB.QueryRow(
		`SELECT id, trip_id, payer_id, amount, currency, category, expense_date, fx_rate, creation_time
         FROM expenses WHERE id = $1`,
		expenseID,
	).Scan(&expense.ID, &expense.TripID, &expense.PayerID, &expense.Amount.Amount,
		&expense.Amount.Currency, &expense.Category, &expense.Date, &expense.FrozenRate,
		&expense.CreationTime)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("expense not found")
		}
		return nil, fmt.Errorf("failed to get expense: %v", err)
	}

	return &expense, nil
}

// GetExpenses retrieves all expenses for a trip with their shares, ordered by
// creation time.
func (r *ExpenseRepository) GetExpenses(tripID string) ([]*models.Expense, map[string][]models.ExpenseShare, error) {
	rows, err := r.DB.Query(
		`SELECT id, trip_id, payer_id, amount, currency, category, expense_date, fx_rate, creation_time
         FROM expenses WHERE trip_id = $1 ORDER BY creation_time ASC, id ASC`,
		tripID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get expenses: %v", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var expense models.Expense
		if err := rows.Scan(&expense.ID, &expense.TripID, &expense.PayerID,
			&expense.Amount.Amount, &expense.Amount.Currency, &expense.Category,
			&expense.Date, &expense.FrozenRate, &expense.CreationTime); err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		expenses = append(expenses, &expense)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read expenses: %v", err)
	}

	shareRows, err := r.DB.Query(
		`SELECT s.expense_id, s.participant_id, s.split_rule, s.raw_value, s.share_amount, s.share_currency
         FROM expense_shares s
         JOIN expenses e ON e.id = s.expense_id
         WHERE e.trip_id = $1
         ORDER BY s.expense_id ASC, s.participant_id ASC`,
		tripID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get expense shares: %v", err)
	}
	defer shareRows.Close()

	shares := make(map[string][]models.ExpenseShare)
	for shareRows.Next() {
		var share models.ExpenseShare
		if err := shareRows.Scan(&share.ExpenseID, &share.ParticipantID, &share.RuleTag,
			&share.RawValue, &share.Share.Amount, &share.Share.Currency); err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense share: %v", err)
		}
		shares[share.ExpenseID] = append(shares[share.ExpenseID], share)
	}

	return expenses, shares, shareRows.Err()
}

// insertShares inserts the computed shares for an expense
func insertShares(tx *sql.Tx, expenseID string, shares []models.ExpenseShare) error {
	for _, share := range shares {
		_, err := tx.Exec(
			`INSERT INTO expense_shares
             (expense_id, participant_id, split_rule, raw_value, share_amount, share_currency)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			expenseID, share.ParticipantID, share.RuleTag, share.RawValue,
			share.Share.Amount, share.Share.Currency,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %v", err)
		}
	}
	return nil
}

// bumpRevision advances the trip revision inside the mutation transaction
func bumpRevision(tx *sql.Tx, tripID string) error {
	_, err := tx.Exec("UPDATE trips SET revision = revision + 1 WHERE id = $1", tripID)
	if err != nil {
		return fmt.Errorf("failed to bump trip revision: %v", err)
	}
	return nil
}
