package client

import (
	"testing"
	"time"

	"github.com/meridianadvisory/api-portal/internal/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestContractProgress(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 100)

	t.Run("completed is always 100", func(t *testing.T) {
		c := contract.Contract{Status: contract.StatusCompleted}
		assert.Equal(t, 100, ContractProgress(c, start))
	})

	t.Run("non active statuses are 0", func(t *testing.T) {
		for _, status := range []string{contract.StatusDraft, contract.StatusCancelled} {
			c := contract.Contract{Status: status, StartDate: &start, EndDate: &end}
			assert.Equal(t, 0, ContractProgress(c, end), status)
		}
	})

	t.Run("active without dates is 0", func(t *testing.T) {
		c := contract.Contract{Status: contract.StatusActive, StartDate: &start}
		assert.Equal(t, 0, ContractProgress(c, end))
	})

	t.Run("quarter elapsed is 25", func(t *testing.T) {
		c := contract.Contract{Status: contract.StatusActive, StartDate: &start, EndDate: &end}
		now := start.AddDate(0, 0, 25)
		assert.Equal(t, 25, ContractProgress(c, now))
	})

	t.Run("clamped to bounds", func(t *testing.T) {
		c := contract.Contract{Status: contract.StatusActive, StartDate: &start, EndDate: &end}
		assert.Equal(t, 0, ContractProgress(c, start.AddDate(0, 0, -10)))
		assert.Equal(t, 100, ContractProgress(c, end.AddDate(0, 0, 10)))
	})

	t.Run("degenerate window never divides", func(t *testing.T) {
		c := contract.Contract{Status: contract.StatusActive, StartDate: &start, EndDate: &start}
		assert.Equal(t, 100, ContractProgress(c, start.Add(time.Hour)))
		assert.Equal(t, 0, ContractProgress(c, start.Add(-time.Hour)))
	})
}

func TestBuildContractsResponse(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 100)
	now := start.AddDate(0, 0, 25)

	contracts := []contract.Contract{
		{ID: 1, Amount: 1000, Status: contract.StatusActive, StartDate: &start, EndDate: &end},
		{ID: 2, Amount: 400, Status: contract.StatusCompleted},
	}

	resp := BuildContractsResponse(contracts, now)

	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, 1400.0, resp.TotalValue)
	assert.Equal(t, 1, resp.ActiveCount)
	assert.Equal(t, 1, resp.CompletedCount)
	require.Len(t, resp.Contracts, 2)
	assert.Equal(t, 25, resp.Contracts[0].Progress)
	assert.Equal(t, 100, resp.Contracts[1].Progress)
	assert.Nil(t, resp.Contracts[1].StartDate, "absent dates stay absent")
}

func TestBuildStatsResponse_NextPaymentHeuristic(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	contracts := []contract.Contract{
		{Amount: 1200, Status: contract.StatusActive},
		{Amount: 600, Status: contract.StatusActive},
		{Amount: 5000, Status: contract.StatusCompleted},
	}

	stats := BuildStatsResponse(contracts, now)

	assert.Equal(t, 150.0, stats.NextPaymentAmount, "round(1200/12) + round(600/12)")
	require.NotNil(t, stats.NextPaymentDate)
	assert.Equal(t, now.Add(30*24*time.Hour).Format(time.RFC3339), *stats.NextPaymentDate)
}

func TestBuildStatsResponse_NoActiveContracts(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	contracts := []contract.Contract{{Amount: 900, Status: contract.StatusCompleted}}

	stats := BuildStatsResponse(contracts, now)

	assert.Nil(t, stats.NextPaymentDate)
	assert.Equal(t, 0.0, stats.NextPaymentAmount)
	assert.Equal(t, 900.0, stats.TotalSpent)
}

func TestBuildStatsResponse_CurrentMonthSpent(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	contracts := []contract.Contract{
		{Amount: 100, ContractDate: timePtr(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))},
		{Amount: 50, ContractDate: timePtr(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC))},
		{Amount: 25}, // no contract date, never attributed
	}

	stats := BuildStatsResponse(contracts, now)

	assert.Equal(t, 100.0, stats.CurrentMonthSpent)
	assert.Equal(t, 175.0, stats.TotalSpent)
	assert.Equal(t, 3, stats.TotalContracts)
}
