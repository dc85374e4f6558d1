package affiliate

import (
	"math"
	"time"

	"github.com/meridianadvisory/api-portal/internal/commission"
	"github.com/meridianadvisory/api-portal/internal/contract"
	"github.com/meridianadvisory/api-portal/internal/negotiation"
	"github.com/meridianadvisory/api-portal/internal/utils"
)

// CommissionWithContract pairs a commission with its referenced contract.
// Contract is nil when the referenced record no longer exists; the
// commission still appears in the output.
type CommissionWithContract struct {
	Commission commission.Commission
	Contract   *contract.Contract
}

// BuildCommissionsResponse assembles the affiliate commissions view from
// the commission list (newest first, as fetched).
//
// totalEarnings, pendingAmount and paidAmount are read off the affiliate
// record, which the commission write path keeps up to date. They are not
// recomputed from the list here; the record is authoritative even if the
// two ever drift.
func BuildCommissionsResponse(aff Affiliate, list []CommissionWithContract, now time.Time) CommissionsResponse {
	resp := CommissionsResponse{
		Commissions:      make([]CommissionDTO, 0, len(list)),
		TotalEarnings:    aff.TotalEarnings,
		PendingAmount:    aff.PendingEarnings,
		PaidAmount:       aff.PaidEarnings,
		PaymentHistory:   []PaymentGroup{},
		UpcomingPayments: []CommissionDTO{},
	}

	monthStart := utils.StartOfMonth(now)
	groupIndex := map[string]int{}

	for _, item := range list {
		c := item.Commission
		dto := CommissionDTO{
			ID:               c.ID,
			Amount:           c.Amount,
			Status:           c.Status,
			PaymentReference: c.PaymentReference,
			PaymentMethod:    c.PaymentMethod,
			ApprovedDate:     utils.FormatTime(c.ApprovedDate),
			PaymentDate:      utils.FormatTime(c.PaymentDate),
			CreatedAt:        c.CreatedAt.Format(time.RFC3339),
		}
		if item.Contract != nil {
			dto.Contract = &ContractRef{
				ID:     item.Contract.ID,
				Title:  item.Contract.Title,
				Amount: item.Contract.Amount,
				Status: item.Contract.Status,
			}
		}
		resp.Commissions = append(resp.Commissions, dto)

		// Current calendar month of the server clock, [monthStart, now).
		if !c.CreatedAt.Before(monthStart) && c.CreatedAt.Before(now) {
			resp.ThisMonthEarnings += c.Amount
		}

		// Fold paid commissions into payment groups, in list order. Within a
		// group the amount sums and the ids accumulate; date and method are
		// last-write-wins, matching the historical portal behavior.
		if c.Status == commission.StatusPaid && c.PaymentReference != nil {
			ref := *c.PaymentReference
			idx, ok := groupIndex[ref]
			if !ok {
				idx = len(resp.PaymentHistory)
				groupIndex[ref] = idx
				resp.PaymentHistory = append(resp.PaymentHistory, PaymentGroup{PaymentReference: ref})
			}
			g := &resp.PaymentHistory[idx]
			g.Amount += c.Amount
			g.CommissionIDs = append(g.CommissionIDs, c.ID)
			g.PaymentDate = dto.PaymentDate
			g.PaymentMethod = c.PaymentMethod
		}

		if c.Status == commission.StatusApproved {
			resp.UpcomingPayments = append(resp.UpcomingPayments, dto)
		}
	}

	return resp
}

// BuildContractsResponse assembles the affiliate contracts view. The input
// order (newest first, as fetched) is preserved.
func BuildContractsResponse(contracts []contract.Contract) ContractsResponse {
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
			ClientID:     c.ClientID,
			Title:        c.Title,
			Amount:       c.Amount,
			Status:       c.Status,
			ContractDate: utils.FormatTime(c.ContractDate),
			StartDate:    utils.FormatTime(c.StartDate),
			EndDate:      utils.FormatTime(c.EndDate),
			CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}

// BuildStatsResponse assembles the affiliate dashboard numbers from the
// cached earnings plus contract and negotiation counts.
func BuildStatsResponse(aff Affiliate, contracts []contract.Contract, negotiations []negotiation.Negotiation) StatsResponse {
	stats := StatsResponse{
		TotalEarnings:   aff.TotalEarnings,
		PendingEarnings: aff.PendingEarnings,
		PaidEarnings:    aff.PaidEarnings,
		CommissionRate:  aff.CommissionRate,
		Status:          aff.Status,
		TotalContracts:  len(contracts),
	}
	if stats.CommissionRate == 0 {
		stats.CommissionRate = DefaultCommissionRate
	}
	if stats.Status == "" {
		stats.Status = StatusPending
	}

	for _, c := range contracts {
		if c.Status == contract.StatusActive {
			stats.ActiveContracts++
		}
	}

	closedWon := 0
	for _, n := range negotiations {
		if negotiation.IsActiveStage(n.Stage) {
			stats.ActiveNegotiations++
		}
		if n.Stage == negotiation.StageClosedWon {
			closedWon++
		}
	}
	if len(negotiations) > 0 {
		stats.ConversionRate = int(math.Round(100 * float64(closedWon) / float64(len(negotiations))))
	}

	return stats
}
