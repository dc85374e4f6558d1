package affiliate

import (
	"testing"
	"time"

	"github.com/meridianadvisory/api-portal/internal/commission"
	"github.com/meridianadvisory/api-portal/internal/contract"
	"github.com/meridianadvisory/api-portal/internal/negotiation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildStatsResponse_NoNegotiations(t *testing.T) {
	aff := Affiliate{TotalEarnings: 500, PendingEarnings: 200, PaidEarnings: 300, CommissionRate: 15, Status: StatusApproved}

	stats := BuildStatsResponse(aff, nil, nil)

	assert.Equal(t, 0, stats.ConversionRate, "no negotiations must not divide by zero")
	assert.Equal(t, 0, stats.ActiveNegotiations)
	assert.Equal(t, 500.0, stats.TotalEarnings)
	assert.Equal(t, 15.0, stats.CommissionRate)
	assert.Equal(t, StatusApproved, stats.Status)
}

func TestBuildStatsResponse_Defaults(t *testing.T) {
	stats := BuildStatsResponse(Affiliate{}, nil, nil)

	assert.Equal(t, float64(DefaultCommissionRate), stats.CommissionRate)
	assert.Equal(t, StatusPending, stats.Status)
}

func TestBuildStatsResponse_CountsAndConversion(t *testing.T) {
	contracts := []contract.Contract{
		{Status: contract.StatusActive},
		{Status: contract.StatusActive},
		{Status: contract.StatusCompleted},
		{Status: contract.StatusDraft},
	}
	negotiations := []negotiation.Negotiation{
		{Stage: negotiation.StageLead},
		{Stage: negotiation.StageProposal},
		{Stage: negotiation.StageClosedWon},
		{Stage: negotiation.StageClosedLost},
	}

	stats := BuildStatsResponse(Affiliate{}, contracts, negotiations)

	assert.Equal(t, 4, stats.TotalContracts)
	assert.Equal(t, 2, stats.ActiveContracts)
	assert.Equal(t, 2, stats.ActiveNegotiations, "closed stages are not active")
	assert.Equal(t, 25, stats.ConversionRate, "1 won of 4 total")
}

func TestBuildCommissionsResponse_TotalsComeFromAffiliateRecord(t *testing.T) {
	// The cached totals deliberately disagree with the commission list;
	// the response must report the record, not a recomputation.
	aff := Affiliate{TotalEarnings: 9999, PendingEarnings: 8888, PaidEarnings: 7777}
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	list := []CommissionWithContract{
		{Commission: commission.Commission{ID: 1, Amount: 10, Status: commission.StatusPending, CreatedAt: now.AddDate(0, -2, 0)}},
	}

	resp := BuildCommissionsResponse(aff, list, now)

	assert.Equal(t, 9999.0, resp.TotalEarnings)
	assert.Equal(t, 8888.0, resp.PendingAmount)
	assert.Equal(t, 7777.0, resp.PaidAmount)
}

func TestBuildCommissionsResponse_ThisMonthWindow(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	lastDayPrevMonth := time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)

	list := []CommissionWithContract{
		{Commission: commission.Commission{ID: 1, Amount: 100, CreatedAt: monthStart}},         // first instant: in
		{Commission: commission.Commission{ID: 2, Amount: 50, CreatedAt: lastDayPrevMonth}},    // previous month: out
		{Commission: commission.Commission{ID: 3, Amount: 25, CreatedAt: now.Add(time.Hour)}},  // future: out
		{Commission: commission.Commission{ID: 4, Amount: 10, CreatedAt: now.Add(-time.Hour)}}, // in
	}

	resp := BuildCommissionsResponse(Affiliate{}, list, now)

	assert.Equal(t, 110.0, resp.ThisMonthEarnings)
}

func TestBuildCommissionsResponse_PaymentGrouping(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	d1 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	// List is newest-first, as fetched.
	list := []CommissionWithContract{
		{Commission: commission.Commission{ID: 3, Amount: 30, Status: commission.StatusPaid, PaymentReference: strPtr("PAY-B"), PaymentMethod: "wire", PaymentDate: &d2, CreatedAt: d2}},
		{Commission: commission.Commission{ID: 2, Amount: 20, Status: commission.StatusPaid, PaymentReference: strPtr("PAY-A"), PaymentMethod: "wire", PaymentDate: &d2, CreatedAt: d2}},
		{Commission: commission.Commission{ID: 1, Amount: 10, Status: commission.StatusPaid, PaymentReference: strPtr("PAY-A"), PaymentMethod: "ach", PaymentDate: &d1, CreatedAt: d1}},
		{Commission: commission.Commission{ID: 4, Amount: 99, Status: commission.StatusPending, CreatedAt: d1}},
	}

	resp := BuildCommissionsResponse(Affiliate{}, list, now)

	require.Len(t, resp.PaymentHistory, 2)
	// Groups appear in first-encounter order of the fold.
	assert.Equal(t, "PAY-B", resp.PaymentHistory[0].PaymentReference)
	assert.Equal(t, "PAY-A", resp.PaymentHistory[1].PaymentReference)

	payA := resp.PaymentHistory[1]
	assert.Equal(t, 30.0, payA.Amount)
	assert.Equal(t, []uint{2, 1}, payA.CommissionIDs)
	// Last commission folded into the group wins the non-summed fields.
	assert.Equal(t, "ach", payA.PaymentMethod)
	require.NotNil(t, payA.PaymentDate)
	assert.Equal(t, d1.Format(time.RFC3339), *payA.PaymentDate)

	// Grouped sum equals the ungrouped paid sum.
	var grouped, paid float64
	for _, g := range resp.PaymentHistory {
		grouped += g.Amount
	}
	for _, item := range list {
		if item.Commission.Status == commission.StatusPaid {
			paid += item.Commission.Amount
		}
	}
	assert.Equal(t, paid, grouped)
}

func TestBuildCommissionsResponse_MissingContractAndUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	ct := contract.Contract{ID: 7, Title: "Advisory retainer", Amount: 1200, Status: contract.StatusActive}

	list := []CommissionWithContract{
		{Commission: commission.Commission{ID: 1, Amount: 120, Status: commission.StatusApproved, CreatedAt: now.AddDate(0, -1, 0)}, Contract: &ct},
		{Commission: commission.Commission{ID: 2, Amount: 60, Status: commission.StatusPending, CreatedAt: now.AddDate(0, -1, 0)}, Contract: nil},
	}

	resp := BuildCommissionsResponse(Affiliate{}, list, now)

	require.Len(t, resp.Commissions, 2, "a commission with a missing contract still appears")
	require.NotNil(t, resp.Commissions[0].Contract)
	assert.Equal(t, uint(7), resp.Commissions[0].Contract.ID)
	assert.Nil(t, resp.Commissions[1].Contract)

	require.Len(t, resp.UpcomingPayments, 1)
	assert.Equal(t, uint(1), resp.UpcomingPayments[0].ID)

	// Absent source dates stay absent.
	assert.Nil(t, resp.Commissions[0].PaymentDate)
	assert.Nil(t, resp.Commissions[0].ApprovedDate)
}

func TestBuildContractsResponse_Summary(t *testing.T) {
	contracts := []contract.Contract{
		{ID: 1, Amount: 1000, Status: contract.StatusActive},
		{ID: 2, Amount: 500, Status: contract.StatusCompleted},
		{ID: 3, Status: contract.StatusCancelled}, // missing amount counts as 0
	}

	resp := BuildContractsResponse(contracts)

	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 1500.0, resp.TotalValue)
	assert.Equal(t, 1, resp.ActiveCount)
	assert.Equal(t, 1, resp.CompletedCount)
	require.Len(t, resp.Contracts, 3)
	assert.Equal(t, uint(1), resp.Contracts[0].ID, "fetch order preserved")
}
