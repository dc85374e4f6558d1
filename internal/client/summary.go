package client

import (
	"math"
	"time"

	"github.com/meridianadvisory/api-portal/internal/contract"
	"github.com/meridianadvisory/api-portal/internal/utils"
)

// ContractProgress estimates how far along a contract is, as a percentage,
// from elapsed wall-clock time between its start and end dates. Completed
// contracts are always 100; anything not active (or missing a date) is 0.
// This is a time estimate only, no delivery milestone is consulted.
func ContractProgress(c contract.Contract, now time.Time) int {
	switch c.Status {
	case contract.StatusCompleted:
		return 100
	case contract.StatusActive:
		if c.StartDate == nil || c.EndDate == nil {
			return 0
		}
		total := c.EndDate.Sub(*c.StartDate)
		if total <= 0 {
			// Degenerate window: clamp without dividing.
			if now.Before(*c.StartDate) {
				return 0
			}
			return 100
		}
		elapsed := now.Sub(*c.StartDate)
		p := int(math.Round(100 * float64(elapsed) / float64(total)))
		if p < 0 {
			return 0
		}
		if p > 100 {
			return 100
		}
		return p
	default:
		return 0
	}
}

// BuildContractsResponse assembles the client contracts view. The input
// order (newest first, as fetched) is preserved.
func BuildContractsResponse(contracts []contract.Contract, now time.Time) ContractsResponse {
	resp := ContractsResponse{
		Contracts:  make([]ContractDTO, 0, len(contracts)),
		TotalCount: len(contracts),
	}
	for _, c := range contracts {
		resp.TotalValue += c.Amount
		switch c.Status {
		case contract.StatusActive:
			resp.ActiveCount++
		case contract.StatusCompleted:
			resp.CompletedCount++
		}
		resp.Contracts = append(resp.Contracts, ContractDTO{
			ID:           c.ID,
			Title:        c.Title,
			Amount:       c.Amount,
			Status:       c.Status,
			ContractDate: utils.FormatTime(c.ContractDate),
			StartDate:    utils.FormatTime(c.StartDate),
			EndDate:      utils.FormatTime(c.EndDate),
			CreatedAt:    c.CreatedAt.Format(time.RFC3339),
			Progress:     ContractProgress(c, now),
		})
	}
	return resp
}

// BuildStatsResponse assembles the client dashboard numbers.
//
// The next payment block is a placeholder estimate, not a billing schedule:
// any active contract pins the next payment 30 days out, and the amount
// assumes each active contract bills a twelfth of its value monthly.
func BuildStatsResponse(contracts []contract.Contract, now time.Time) StatsResponse {
	stats := StatsResponse{TotalContracts: len(contracts)}
	monthStart := utils.StartOfMonth(now)

	for _, c := range contracts {
		stats.TotalSpent += c.Amount
		switch c.Status {
		case contract.StatusActive:
			stats.ActiveContracts++
		case contract.StatusCompleted:
			stats.CompletedContracts++
		}
		// Month attribution uses the contract date here, while the affiliate
		// month window uses createdAt. Kept as-is pending product review.
		if c.ContractDate != nil && !c.ContractDate.Before(monthStart) {
			stats.CurrentMonthSpent += c.Amount
		}
	}

	if stats.ActiveContracts > 0 {
		next := now.Add(30 * 24 * time.Hour)
		stats.NextPaymentDate = utils.FormatTime(&next)
		for _, c := range contracts {
			if c.Status == contract.StatusActive {
				stats.NextPaymentAmount += math.Round(c.Amount / 12)
			}
		}
	}

	return stats
}
