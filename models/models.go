// models/models.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (cents) tagged with an ISO 4217 currency
// code. Monetary values are never represented as floats.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney creates a Money value
func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Trip represents a group of people sharing expenses over a date range
type Trip struct {
	ID           string    `json:"_id"`
	CreationTime int64     `json:"_creationTime"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"baseCurrency"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Revision     int64     `json:"-"`
}

// Participant represents one person's membership in a trip. A missing join
// window means full-trip participation; a window strictly inside the trip's
// range makes the participant a partial joiner eligible for prorated equal
// shares.
type Participant struct {
	ID            string     `json:"id"`
	TripID        string     `json:"tripId"`
	UserID        string     `json:"userId"`
	DisplayName   string     `json:"displayName"`
	JoinStartDate *time.Time `json:"joinStartDate,omitempty"`
	JoinEndDate   *time.Time `json:"joinEndDate,omitempty"`
}

// Expense represents a shared expense paid by one participant.
// FrozenRate is the FX snapshot from the expense currency to the trip's base
// currency captured at creation time; once set it is reused for every later
// conversion of this expense.
type Expense struct {
	ID           string              `json:"_id"`
	CreationTime int64               `json:"_creationTime"`
	TripID       string              `json:"tripId"`
	PayerID      string              `json:"payerId"`
	Amount       Money               `json:"total"`
	Category     string              `json:"category"`
	Date         time.Time           `json:"date"`
	FrozenRate   decimal.NullDecimal `json:"frozenRate,omitempty"`
}

// ExpenseShare is one participant's computed share of an expense. For a given
// expense the computed shares sum to the expense total exactly in the
// expense's native currency, except equal splits with partial joiners, which
// may sum to less (see the share calculator).
type ExpenseShare struct {
	ExpenseID     string          `json:"expenseId"`
	ParticipantID string          `json:"participantId"`
	RuleTag       string          `json:"splitRule"`
	RawValue      decimal.Decimal `json:"rawValue"`
	Share         Money           `json:"share"`
}

// NetBalance is a participant's aggregate position in the trip's base
// currency. Positive means net creditor, negative means net debtor.
type NetBalance struct {
	ParticipantID string `json:"participantId"`
	Amount        Money  `json:"amount"`
}

// Settlement statuses
const (
	SettlementStatusPending = "pending"
	SettlementStatusSettled = "settled"
)

// Settlement represents a suggested payment from one participant to another.
// Invariants: FromParticipant != ToParticipant and Amount.Amount > 0.
type Settlement struct {
	ID              string     `json:"id"`
	TripID          string     `json:"tripId"`
	FromParticipant string     `json:"from"`
	ToParticipant   string     `json:"to"`
	Amount          Money      `json:"amount"`
	Status          string     `json:"status"`
	SettledAt       *time.Time `json:"settledAt,omitempty"`
	SettledBy       string     `json:"settledBy,omitempty"`
	Note            string     `json:"note,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// BalanceResult is the output of a balance computation. Expenses that could
// not be converted to the base currency are excluded from the balances and
// listed in DegradedExpenseIDs instead of aborting the whole computation.
type BalanceResult struct {
	Balances           []NetBalance `json:"balances"`
	DegradedExpenseIDs []string     `json:"degradedExpenseIds"`
}

// ExpenseWithShares pairs an expense with its computed shares
type ExpenseWithShares struct {
	Expense *Expense       `json:"expense"`
	Shares  []ExpenseShare `json:"shares"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateTripRequest request model
type CreateTripRequest struct {
	Name         string `json:"name" binding:"required"`
	BaseCurrency string `json:"baseCurrency" binding:"required,len=3"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate" binding:"required"`
}

// CreateTripResponse response model
type CreateTripResponse struct {
	TripID string `json:"tripId"`
	Code   string `json:"code"`
}

// GetTripByCodeRequest request model
type GetTripByCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// AddParticipantRequest request model
type AddParticipantRequest struct {
	Code          string `json:"code" binding:"required"`
	UserID        string `json:"userId" binding:"required"`
	DisplayName   string `json:"displayName" binding:"required"`
	JoinStartDate string `json:"joinStartDate,omitempty"`
	JoinEndDate   string `json:"joinEndDate,omitempty"`
}

// ShareInput is one participant's raw split input for an expense. Value is
// interpreted per the expense's split rule: a percentage, an exact amount in
// minor units, or a weight. It is ignored for equal splits.
type ShareInput struct {
	ParticipantID string          `json:"participantId" binding:"required"`
	Value         decimal.Decimal `json:"value"`
}

// AddExpenseRequest request model
type AddExpenseRequest struct {
	Code      string       `json:"code" binding:"required"`
	PayerID   string       `json:"payerId" binding:"required"`
	Amount    int64        `json:"amount" binding:"required,gt=0"`
	Currency  string       `json:"currency" binding:"required,len=3"`
	Category  string       `json:"category"`
	Date      string       `json:"date" binding:"required"`
	SplitRule string       `json:"splitRule" binding:"required"`
	Shares    []ShareInput `json:"shares" binding:"required,min=1"`
}

// EditExpenseRequest request model. An edit replaces the expense and all of
// its shares as one unit and forces balance recomputation for the trip.
type EditExpenseRequest struct {
	Code      string       `json:"code" binding:"required"`
	ExpenseID string       `json:"expenseId" binding:"required"`
	PayerID   string       `json:"payerId" binding:"required"`
	Amount    int64        `json:"amount" binding:"required,gt=0"`
	Currency  string       `json:"currency" binding:"required,len=3"`
	Category  string       `json:"category"`
	Date      string       `json:"date" binding:"required"`
	SplitRule string       `json:"splitRule" binding:"required"`
	Shares    []ShareInput `json:"shares" binding:"required,min=1"`
}

// RemoveExpenseRequest request model
type RemoveExpenseRequest struct {
	Code      string `json:"code" binding:"required"`
	ExpenseID string `json:"expenseId" binding:"required"`
}

// MarkSettledRequest request model
type MarkSettledRequest struct {
	SettlementID string `json:"settlementId" binding:"required"`
	SettledBy    string `json:"settledBy" binding:"required"`
	Note         string `json:"note"`
}
