package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colin-rod/tripthreads-sub007/models"
)

func netBalance(id string, amount int64) models.NetBalance {
	return models.NetBalance{ParticipantID: id, Amount: models.NewMoney(amount, "USD")}
}

func TestSettlementService_Optimize_SimpleChain(t *testing.T) {
	service := &SettlementService{}

	settlements, err := service.Optimize([]models.NetBalance{
		netBalance("alice", 500),
		netBalance("bob", -200),
		netBalance("carol", -300),
	})

	assert.NoError(t, err)
	assert.Len(t, settlements, 2)

	// Largest debtor pairs with the largest creditor first
	assert.Equal(t, "carol", settlements[0].FromParticipant)
	assert.Equal(t, "alice", settlements[0].ToParticipant)
	assert.Equal(t, int64(300), settlements[0].Amount.Amount)

	assert.Equal(t, "bob", settlements[1].FromParticipant)
	assert.Equal(t, "alice", settlements[1].ToParticipant)
	assert.Equal(t, int64(200), settlements[1].Amount.Amount)
}

func TestSettlementService_Optimize_AllSettledUp(t *testing.T) {
	service := &SettlementService{}

	settlements, err := service.Optimize([]models.NetBalance{
		netBalance("alice", 0),
		netBalance("bob", 0),
	})

	assert.NoError(t, err)
	assert.Empty(t, settlements)
}

func TestSettlementService_Optimize_TiesBrokenByParticipantID(t *testing.T) {
	service := &SettlementService{}

	settlements, err := service.Optimize([]models.NetBalance{
		netBalance("carol", -200),
		netBalance("bob", 100),
		netBalance("alice", 100),
	})

	assert.NoError(t, err)
	assert.Len(t, settlements, 2)
	assert.Equal(t, "alice", settlements[0].ToParticipant)
	assert.Equal(t, "bob", settlements[1].ToParticipant)
	for _, s := range settlements {
		assert.Equal(t, "carol", s.FromParticipant)
		assert.Equal(t, int64(100), s.Amount.Amount)
	}
}

func TestSettlementService_Optimize_NoSelfOrNonPositiveTransfers(t *testing.T) {
	service := &SettlementService{}

	settlements, err := service.Optimize([]models.NetBalance{
		netBalance("alice", 730),
		netBalance("bob", -120),
		netBalance("carol", -345),
		netBalance("dave", -265),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, settlements)
	for _, s := range settlements {
		assert.NotEqual(t, s.FromParticipant, s.ToParticipant)
		assert.Greater(t, s.Amount.Amount, int64(0))
		assert.Equal(t, models.SettlementStatusPending, s.Status)
	}
}

func TestSettlementService_Optimize_TransferCountBounded(t *testing.T) {
	service := &SettlementService{}

	balances := []models.NetBalance{
		netBalance("alice", 400),
		netBalance("bob", 100),
		netBalance("carol", -250),
		netBalance("dave", -150),
		netBalance("erin", -100),
	}

	settlements, err := service.Optimize(balances)

	assert.NoError(t, err)
	// Greedy matching needs at most n-1 transfers for n nonzero balances
	assert.LessOrEqual(t, len(settlements), len(balances)-1)
}

func TestSettlementService_Optimize_Deterministic(t *testing.T) {
	service := &SettlementService{}

	balances := []models.NetBalance{
		netBalance("dave", -150),
		netBalance("alice", 400),
		netBalance("erin", -100),
		netBalance("bob", 100),
		netBalance("carol", -250),
	}

	first, err := service.Optimize(balances)
	assert.NoError(t, err)

	second, err := service.Optimize([]models.NetBalance{
		netBalance("dave", -150),
		netBalance("alice", 400),
		netBalance("erin", -100),
		netBalance("bob", 100),
		netBalance("carol", -250),
	})
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSettlementService_Optimize_RoundingResidualTolerated(t *testing.T) {
	service := &SettlementService{}

	// One stray minor unit per balance is within the rounding tolerance
	settlements, err := service.Optimize([]models.NetBalance{
		netBalance("alice", 101),
		netBalance("bob", -100),
	})

	assert.NoError(t, err)
	assert.Len(t, settlements, 1)
	assert.Equal(t, int64(100), settlements[0].Amount.Amount)
}

func TestSettlementService_Optimize_LargeResidualIsInconsistency(t *testing.T) {
	service := &SettlementService{}

	_, err := service.Optimize([]models.NetBalance{
		netBalance("alice", 500),
		netBalance("bob", -200),
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "residual")
}

func TestSettlementService_MarkSettled_RequiresFields(t *testing.T) {
	service := &SettlementService{}

	_, err := service.MarkSettled("", "alice", "")
	assert.Error(t, err)

	_, err = service.MarkSettled("settlement-1", "", "")
	assert.Error(t, err)
}
