package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meridianadvisory/api-portal/internal/auth"
	"github.com/meridianadvisory/api-portal/internal/contract"
	"github.com/meridianadvisory/api-portal/internal/user"
	"github.com/meridianadvisory/api-portal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func (f *fakeUserRepo) Create(_ *gorm.DB, _ *user.User) error { return nil }
func (f *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByID(_ *gorm.DB, _ uint) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeClientRepo struct {
	byUser map[uint]*Client
}

func (f *fakeClientRepo) Create(_ *gorm.DB, _ *Client) error { return nil }
func (f *fakeClientRepo) FindByID(_ *gorm.DB, _ uint) (*Client, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeClientRepo) FindByUserID(_ *gorm.DB, userID uint) (*Client, error) {
	if c, ok := f.byUser[userID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeClientRepo) ListAll(_ *gorm.DB) ([]Client, error) { return nil, nil }
func (f *fakeClientRepo) Update(_ *gorm.DB, _ *Client) error   { return nil }
func (f *fakeClientRepo) Delete(_ *gorm.DB, _ uint) error      { return nil }

type fakeContractRepo struct {
	byClient []contract.Contract
}

func (f *fakeContractRepo) Create(_ *gorm.DB, _ *contract.Contract) error { return nil }
func (f *fakeContractRepo) FindByID(_ *gorm.DB, _ uint) (*contract.Contract, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeContractRepo) ListByAffiliate(_ *gorm.DB, _ uint, _ int) ([]contract.Contract, error) {
	return nil, nil
}
func (f *fakeContractRepo) ListByClient(_ *gorm.DB, _ uint) ([]contract.Contract, error) {
	return f.byClient, nil
}
func (f *fakeContractRepo) ListAll(_ *gorm.DB) ([]contract.Contract, error) { return nil, nil }
func (f *fakeContractRepo) Update(_ *gorm.DB, _ *contract.Contract) error   { return nil }
func (f *fakeContractRepo) Delete(_ *gorm.DB, _ uint) error                 { return nil }

const testEmail = "buyer@example.com"

func newTestHandler() *Handler {
	return &Handler{
		Repository: &fakeClientRepo{byUser: map[uint]*Client{20: {ID: 2, UserID: 20, CompanyName: "Acme Corp"}}},
		Users:      &fakeUserRepo{byEmail: map[string]*user.User{testEmail: {ID: 20, Email: testEmail, Role: auth.RoleClient}}},
		Contracts:  &fakeContractRepo{},
		Log:        logger.Nop(),
		now:        func() time.Time { return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC) },
	}
}

func doGet(h http.HandlerFunc, email string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), auth.CtxEmail, email)
	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))
	return rec
}

func TestGetContracts_WithProgress(t *testing.T) {
	h := newTestHandler()
	start := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 100)
	h.Contracts = &fakeContractRepo{byClient: []contract.Contract{
		{ID: 1, ClientID: 2, Amount: 1200, Status: contract.StatusActive, StartDate: &start, EndDate: &end},
		{ID: 2, ClientID: 2, Amount: 600, Status: contract.StatusCompleted},
	}}

	rec := doGet(h.GetContracts, testEmail)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ContractsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Contracts, 2)
	assert.Equal(t, 10, resp.Contracts[0].Progress)
	assert.Equal(t, 100, resp.Contracts[1].Progress)
	assert.Equal(t, 1800.0, resp.TotalValue)
}

func TestGetStats_NextPayment(t *testing.T) {
	h := newTestHandler()
	h.Contracts = &fakeContractRepo{byClient: []contract.Contract{
		{ID: 1, ClientID: 2, Amount: 1200, Status: contract.StatusActive},
		{ID: 2, ClientID: 2, Amount: 600, Status: contract.StatusActive},
	}}

	rec := doGet(h.GetStats, testEmail)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 150.0, stats.NextPaymentAmount)
	assert.NotNil(t, stats.NextPaymentDate)
	assert.Equal(t, 2, stats.ActiveContracts)
}

func TestGetStats_UnknownAccountIs404(t *testing.T) {
	h := newTestHandler()
	rec := doGet(h.GetStats, "nobody@example.com")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStats_AccountWithoutClientRecordIs404(t *testing.T) {
	h := newTestHandler()
	h.Repository = &fakeClientRepo{byUser: map[uint]*Client{}}
	rec := doGet(h.GetStats, testEmail)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
