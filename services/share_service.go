// services/share_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// ShareService turns an expense total and a split rule into exact
// per-participant integer shares. For every rule the computed shares sum to
// the total exactly, except equal splits involving partial joiners: a partial
// joiner's share is prorated by days present and the discount is deliberately
// not redistributed onto full participants, so the collected sum may fall
// short of the total.
type ShareService struct{}

// NewShareService creates a new share service
func NewShareService() *ShareService {
	return &ShareService{}
}

// Calculate computes each participant's share of the total under the given
// rule. Participants are consulted for join windows (equal-split proration);
// trip start/end bound the proration. Output is ordered by ascending
// participant id so residual distribution is deterministic.
func (s *ShareService) Calculate(total models.Money, rule models.SplitRule,
	participants map[string]*models.Participant, tripStart, tripEnd time.Time) ([]models.ExpenseShare, error) {

	if err := utils.ValidatePositiveAmount(total.Amount, "expense total"); err != nil {
		return nil, err
	}

	switch r := rule.(type) {
	case models.EqualSplit:
		return s.calculateEqual(total, r, participants, tripStart, tripEnd)
	case models.PercentageSplit:
		return s.calculatePercentage(total, r)
	case models.AmountSplit:
		return s.calculateAmount(total, r)
	case models.SharesSplit:
		return s.calculateWeights(total, r)
	default:
		return nil, utils.NewValidationError(fmt.Sprintf("unknown split rule %q", rule.Tag()))
	}
}

// calculateEqual splits the total evenly, prorating partial joiners by days
// present. The remainder left by integer division goes one minor unit at a
// time to full participants in ascending id order; prorated shares are fixed
// before remainder distribution and receive units only when every
// participant is prorated.
func (s *ShareService) calculateEqual(total models.Money, rule models.EqualSplit,
	participants map[string]*models.Participant, tripStart, tripEnd time.Time) ([]models.ExpenseShare, error) {

	if err := utils.ValidateNotEmpty(rule.ParticipantIDs, "split participants"); err != nil {
		return nil, err
	}

	ids := append([]string(nil), rule.ParticipantIDs...)
	sort.Strings(ids)

	n := int64(len(ids))
	base := total.Amount / n
	remainder := total.Amount % n

	amounts := make(map[string]int64, len(ids))
	prorated := make(map[string]bool, len(ids))

	for _, id := range ids {
		p, ok := participants[id]
		if !ok {
			return nil, utils.NewValidationError(fmt.Sprintf("participant %s is not on this trip", id))
		}

		daysJoined, totalDays, partial := prorationDays(p, tripStart, tripEnd)
		if partial {
			amounts[id] = decimal.NewFromInt(base).
				Mul(decimal.NewFromInt(daysJoined)).
				Div(decimal.NewFromInt(totalDays)).
				RoundBank(0).IntPart()
			prorated[id] = true
		} else {
			amounts[id] = base
		}
	}

	// Remainder goes to full participants; fall back to everyone when the
	// whole expense is split among partial joiners.
	eligible := make([]string, 0, len(ids))
	for _, id := range ids {
		if !prorated[id] {
			eligible = append(eligible, id)
		}
	}
	if len(eligible) == 0 {
		eligible = ids
	}
	for i := int64(0); i < remainder; i++ {
		amounts[eligible[i%int64(len(eligible))]]++
	}

	shares := make([]models.ExpenseShare, 0, len(ids))
	for _, id := range ids {
		shares = append(shares, models.ExpenseShare{
			ParticipantID: id,
			RuleTag:       rule.Tag(),
			RawValue:      decimal.Zero,
			Share:         models.NewMoney(amounts[id], total.Currency),
		})
	}
	return shares, nil
}

// calculatePercentage splits by percentages that must sum to 100; the
// participant with the largest percentage (ties broken by ascending id)
// absorbs the rounding residual so the sum is exact.
func (s *ShareService) calculatePercentage(total models.Money, rule models.PercentageSplit) ([]models.ExpenseShare, error) {
	ids := sortedKeys(rule.Percents)
	if len(ids) == 0 {
		return nil, utils.NewValidationError("split participants cannot be empty")
	}

	sum := decimal.Zero
	for _, id := range ids {
		sum = sum.Add(rule.Percents[id])
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		return nil, utils.NewValidationError("percentages must sum to 100")
	}

	hundred := decimal.NewFromInt(100)
	totalDec := decimal.NewFromInt(total.Amount)

	amounts := make(map[string]int64, len(ids))
	var allocated int64
	absorber := ids[0]
	for _, id := range ids {
		pct := rule.Percents[id]
		amounts[id] = totalDec.Mul(pct).Div(hundred).RoundBank(0).IntPart()
		allocated += amounts[id]
		if pct.GreaterThan(rule.Percents[absorber]) {
			absorber = id
		}
	}
	amounts[absorber] += total.Amount - allocated

	return buildShares(ids, amounts, rule.Tag(), func(id string) decimal.Decimal { return rule.Percents[id] }, total.Currency), nil
}

// calculateAmount takes custom shares as given and verifies they sum to the
// total; it never silently rescales.
func (s *ShareService) calculateAmount(total models.Money, rule models.AmountSplit) ([]models.ExpenseShare, error) {
	ids := sortedKeys(rule.Amounts)
	if len(ids) == 0 {
		return nil, utils.NewValidationError("split participants cannot be empty")
	}

	var sum int64
	for _, id := range ids {
		sum += rule.Amounts[id]
	}
	if sum != total.Amount {
		return nil, utils.NewShareMismatchError(total.Amount, sum)
	}

	return buildShares(ids, rule.Amounts, rule.Tag(), func(id string) decimal.Decimal {
		return decimal.NewFromInt(rule.Amounts[id])
	}, total.Currency), nil
}

// calculateWeights splits proportionally to integer weights; the participant
// with the largest weight (ties broken by ascending id) absorbs the residual.
func (s *ShareService) calculateWeights(total models.Money, rule models.SharesSplit) ([]models.ExpenseShare, error) {
	ids := sortedKeys(rule.Weights)
	if len(ids) == 0 {
		return nil, utils.NewValidationError("split participants cannot be empty")
	}

	var weightSum int64
	for _, id := range ids {
		weightSum += rule.Weights[id]
	}

	totalDec := decimal.NewFromInt(total.Amount)
	weightSumDec := decimal.NewFromInt(weightSum)

	amounts := make(map[string]int64, len(ids))
	var allocated int64
	absorber := ids[0]
	for _, id := range ids {
		w := rule.Weights[id]
		amounts[id] = totalDec.Mul(decimal.NewFromInt(w)).Div(weightSumDec).RoundBank(0).IntPart()
		allocated += amounts[id]
		if w > rule.Weights[absorber] {
			absorber = id
		}
	}
	amounts[absorber] += total.Amount - allocated

	return buildShares(ids, amounts, rule.Tag(), func(id string) decimal.Decimal {
		return decimal.NewFromInt(rule.Weights[id])
	}, total.Currency), nil
}

// prorationDays returns the inclusive day counts for a partial joiner.
// Full participation (no window, a window covering the whole trip, or an
// inverted window) reports partial=false.
func prorationDays(p *models.Participant, tripStart, tripEnd time.Time) (daysJoined, totalDays int64, partial bool) {
	if p.JoinStartDate == nil || p.JoinEndDate == nil {
		return 0, 0, false
	}

	totalDays = daysInclusive(tripStart, tripEnd)
	daysJoined = daysInclusive(*p.JoinStartDate, *p.JoinEndDate)

	if totalDays <= 0 || daysJoined <= 0 || daysJoined >= totalDays {
		return 0, 0, false
	}
	return daysJoined, totalDays, true
}

// daysInclusive counts days between two dates, both ends included
func daysInclusive(start, end time.Time) int64 {
	return int64(end.Sub(start).Hours()/24) + 1
}

// sortedKeys returns map keys in ascending order for deterministic iteration
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildShares assembles the ordered share list for a computed amount map
func buildShares(ids []string, amounts map[string]int64, tag string,
	rawValue func(id string) decimal.Decimal, currency string) []models.ExpenseShare {

	shares := make([]models.ExpenseShare, 0, len(ids))
	for _, id := range ids {
		shares = append(shares, models.ExpenseShare{
			ParticipantID: id,
			RuleTag:       tag,
			RawValue:      rawValue(id),
			Share:         models.NewMoney(amounts[id], currency),
		})
	}
	return shares
}
