package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

type fakeAPI struct {
	nextID int
	byID   map[string]core.Transaction
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{byID: make(map[string]core.Transaction)}
}

func (f *fakeAPI) Create(_ context.Context, e core.Entry) (core.Transaction, error) {
	t, err := e.Classify()
	if err != nil {
		return core.Transaction{}, err
	}
	f.nextID++
	t.ID = fmt.Sprintf("tx-%d", f.nextID)
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeAPI) List(_ context.Context, ownerID string) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, t := range f.byID {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeAPI) Settle(_ context.Context, id string) error {
	t, ok := f.byID[id]
	if !ok {
		return ledger.ErrNotFound
	}
	if t.Status != core.Pending {
		return ledger.ErrNotPending
	}
	t.Status = core.Paid
	f.byID[id] = t
	return nil
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return ledger.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestServer() (*Server, *fakeAPI) {
	api := newFakeAPI()
	return NewServer(":0", api, "casa"), api
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateTransaction(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())

	rec := doJSON(t, s, http.MethodPost, "/transactions", createTransactionRequest{
		Origin:   "Negocio",
		Activity: "Consumo Clientes",
		Amount:   "125.50",
		Client:   "Mario",
		Date:     "2026-03-05",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AmountCents != 12550 || resp.Category != "Consumo en Club" || resp.Status != "paid" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreateTransactionRejectsBadEntry(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())

	// Sale without a client name.
	rec := doJSON(t, s, http.MethodPost, "/transactions", createTransactionRequest{
		Origin:   "Negocio",
		Activity: "Consumo Clientes",
		Amount:   "10",
		Date:     "2026-03-05",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, s, http.MethodPost, "/transactions", createTransactionRequest{
		Origin:   "Negocio",
		Activity: "Consumo Clientes",
		Amount:   "-5",
		Client:   "Mario",
		Date:     "2026-03-05",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative amount: status = %d, want 400", rec.Code)
	}
}

func TestSettleStatusMapping(t *testing.T) {
	s, api := newTestServer()
	defer s.Shutdown(context.Background())

	rec := doJSON(t, s, http.MethodPost, "/transactions", createTransactionRequest{
		Origin:     "Negocio",
		Activity:   "Venta Producto",
		Amount:     "50",
		Client:     "Rosa",
		CreditSale: true,
		Date:       "2026-03-05",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}
	var created transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != "pending" {
		t.Fatalf("status = %q, want pending", created.Status)
	}

	rec = doJSON(t, s, http.MethodPost, "/transactions/"+created.ID+"/settle", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("settle: status = %d, want 204", rec.Code)
	}
	if api.byID[created.ID].Status != core.Paid {
		t.Error("record not settled")
	}

	rec = doJSON(t, s, http.MethodPost, "/transactions/"+created.ID+"/settle", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("second settle: status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/transactions/nope/settle", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown settle: status = %d, want 404", rec.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())

	rec := doJSON(t, s, http.MethodPost, "/transactions", createTransactionRequest{
		Origin:       "Hogar",
		HomeCategory: "Comida",
		Amount:       "30",
		Date:         "2026-03-05",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body)
	}
	var created transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, s, http.MethodDelete, "/transactions/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, s, http.MethodDelete, "/transactions/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double delete: status = %d, want 404", rec.Code)
	}
}

func TestListTransactionsWindowFilter(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())
	seedDashboard(t, s)

	rec := doJSON(t, s, http.MethodGet, "/transactions?window=day&date=2026-03-05", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var day []transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(day) != 1 {
		t.Errorf("day window: got %d transactions, want 1", len(day))
	}

	rec = doJSON(t, s, http.MethodGet, "/transactions?window=month&date=2026-03-05", nil)
	var month []transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &month); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(month) != 6 {
		t.Errorf("month window: got %d transactions, want 6", len(month))
	}

	rec = doJSON(t, s, http.MethodGet, "/transactions?window=week", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad window: status = %d, want 400", rec.Code)
	}
}

func seedDashboard(t *testing.T, s *Server) {
	t.Helper()
	entries := []createTransactionRequest{
		{Origin: "Negocio", Activity: "Consumo Clientes", Amount: "100", Client: "Mario", Date: "2026-03-05"},
		{Origin: "Negocio", Activity: "Regalías", Amount: "20", Date: "2026-03-10"},
		{Origin: "Negocio", Activity: "Gastos", ExpenseCategory: "Hielo", Amount: "30", Date: "2026-03-12"},
		{Origin: "Negocio", Activity: "Consumo Propio", Amount: "50", Consumer: "Luis", Date: "2026-03-15"},
		{Origin: "Hogar", HomeCategory: "Aporte Familiar", Amount: "150", Date: "2026-03-08"},
		{Origin: "Hogar", HomeCategory: "Comida", Amount: "80", Date: "2026-03-09"},
	}
	for i, e := range entries {
		if rec := doJSON(t, s, http.MethodPost, "/transactions", e); rec.Code != http.StatusCreated {
			t.Fatalf("seed %d: status = %d, body %s", i, rec.Code, rec.Body)
		}
	}
}

func TestDashboard(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())
	seedDashboard(t, s)

	rec := doJSON(t, s, http.MethodGet, "/dashboard?window=month&date=2026-03-05", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	biz := resp.Business
	if biz.SalesPaidCents != 10000 || biz.RoyaltiesCents != 2000 {
		t.Errorf("sales/royalties = %d/%d", biz.SalesPaidCents, biz.RoyaltiesCents)
	}
	if biz.FamilyCostCents != 2500 {
		t.Errorf("family cost = %d, want 2500", biz.FamilyCostCents)
	}
	// 100 + 20 - 30 - 25 = 65
	if biz.NetProfitCents != 6500 {
		t.Errorf("net profit = %d, want 6500", biz.NetProfitCents)
	}

	home := resp.Household
	if home.ContributionsCents != 15000 || home.ExpensesCents != 8000 {
		t.Errorf("household = %+v", home)
	}
	if home.CostOfLivingCents != -7000 || !home.Surplus {
		t.Errorf("cost of living = %d surplus=%v, want -7000 true", home.CostOfLivingCents, home.Surplus)
	}

	if len(resp.Buckets) == 0 {
		t.Error("expected buckets")
	}
}

func TestDashboardRejectsBadWindow(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())

	rec := doJSON(t, s, http.MethodGet, "/dashboard?window=week", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDashboardCacheInvalidatedOnCreate(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())
	seedDashboard(t, s)

	first := doJSON(t, s, http.MethodGet, "/dashboard?window=month&date=2026-03-05", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d", first.Code)
	}

	rec := doJSON(t, s, http.MethodPost, "/transactions", createTransactionRequest{
		Origin: "Negocio", Activity: "Consumo Clientes", Amount: "10", Client: "Ana", Date: "2026-03-20",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}

	second := doJSON(t, s, http.MethodGet, "/dashboard?window=month&date=2026-03-05", nil)
	var a, b dashboardResponse
	if err := json.Unmarshal(first.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Business.SalesPaidCents != a.Business.SalesPaidCents+1000 {
		t.Errorf("stale dashboard after create: %d then %d", a.Business.SalesPaidCents, b.Business.SalesPaidCents)
	}
}

func TestDailyCash(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())
	seedDashboard(t, s)

	rec := doJSON(t, s, http.MethodGet, "/cash?date=2026-03-05", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp cashResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CashCents != 10000 {
		t.Errorf("cash = %d, want 10000", resp.CashCents)
	}
}

func TestOwnerScoping(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())

	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(
		`{"origin":"Hogar","home_category":"Comida","amount":"10","date":"2026-03-05"}`))
	req.Header.Set("X-User-ID", "amarilis")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body)
	}

	// Default owner sees nothing.
	list := doJSON(t, s, http.MethodGet, "/transactions", nil)
	var txs []transactionResponse
	if err := json.Unmarshal(list.Body.Bytes(), &txs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("default owner sees %d records, want 0", len(txs))
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.Header.Set("X-User-ID", "amarilis")
	rec = httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &txs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("owner sees %d records, want 1", len(txs))
	}
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer()
	defer s.Shutdown(context.Background())

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, s, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
	}
}
