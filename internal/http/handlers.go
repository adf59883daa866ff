package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

type createTransactionRequest struct {
	Origin          string `json:"origin"`
	Activity        string `json:"activity,omitempty"`
	ExpenseCategory string `json:"expense_category,omitempty"`
	HomeCategory    string `json:"home_category,omitempty"`
	Amount          string `json:"amount"`
	Note            string `json:"note,omitempty"`
	Client          string `json:"client,omitempty"`
	Consumer        string `json:"consumer,omitempty"`
	CreditSale      bool   `json:"credit_sale,omitempty"`
	Date            string `json:"date,omitempty"` // YYYY-MM-DD, today if empty
}

type transactionResponse struct {
	ID          string  `json:"id"`
	AmountCents int64   `json:"amount_cents"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Origin      string  `json:"origin"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
	Note        string  `json:"note,omitempty"`
	Client      string  `json:"client,omitempty"`
	Consumer    string  `json:"consumer,omitempty"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		AmountCents: t.Amount.Cents,
		Amount:      t.Amount.Units(),
		Type:        string(t.Type),
		Origin:      string(t.Origin),
		Category:    t.Category,
		Status:      string(t.Status),
		Date:        t.Date.Format("2006-01-02"),
		Note:        t.Note,
		Client:      t.Client,
		Consumer:    t.Consumer,
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", req.Date))
			return
		}
		date = parsed
	}

	entry := core.Entry{
		Origin:     core.Origin(req.Origin),
		Activity:   core.Activity(req.Activity),
		ExpenseCat: sanitizeInput(req.ExpenseCategory),
		HomeCat:    sanitizeInput(req.HomeCategory),
		Amount:     req.Amount,
		Note:       sanitizeInput(req.Note),
		Client:     sanitizeInput(req.Client),
		Consumer:   sanitizeInput(req.Consumer),
		CreditSale: req.CreditSale,
		Date:       date,
		UserID:     s.ownerID(r),
	}

	t, err := s.api.Create(r.Context(), entry)
	if err != nil {
		if isEntryError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create transaction failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	s.invalidateOwner(entry.UserID)
	respondJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.api.List(r.Context(), s.ownerID(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	if raw := r.URL.Query().Get("window"); raw != "" {
		window := core.Window(raw)
		if !window.Valid() {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid window %q: must be day, month or year", window))
			return
		}
		ref, err := parseDateQuery(r, "date")
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
			return
		}
		txs = window.Filter(txs, ref)
	}

	out := make([]transactionResponse, len(txs))
	for i, t := range txs {
		out[i] = toTransactionResponse(t)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSettleTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch err := s.api.Settle(r.Context(), id); {
	case err == nil:
		s.invalidateOwner(s.ownerID(r))
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, ledger.ErrNotFound):
		respondError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, ledger.ErrNotPending):
		respondError(w, http.StatusConflict, "transaction is not pending")
	default:
		slog.ErrorContext(r.Context(), "Settle transaction failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to settle transaction")
	}
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch err := s.api.Delete(r.Context(), id); {
	case err == nil:
		s.invalidateOwner(s.ownerID(r))
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, ledger.ErrNotFound):
		respondError(w, http.StatusNotFound, "transaction not found")
	default:
		slog.ErrorContext(r.Context(), "Delete transaction failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete transaction")
	}
}

type consumerAmountResponse struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

type businessSummaryResponse struct {
	SalesPaidCents         int64                    `json:"sales_paid_cents"`
	PendingCents           int64                    `json:"pending_cents"`
	RoyaltiesCents         int64                    `json:"royalties_cents"`
	OperatingExpenseCents  int64                    `json:"operating_expense_cents"`
	CardPaymentsCents      int64                    `json:"card_payments_cents"`
	InitialInventoryCents  int64                    `json:"initial_inventory_cents"`
	FamilyConsumptionCents int64                    `json:"family_consumption_cents"`
	FamilyBreakdown        []consumerAmountResponse `json:"family_breakdown"`
	FamilyCostCents        int64                    `json:"family_cost_cents"`
	NetProfitCents         int64                    `json:"net_profit_cents"`
}

type householdSummaryResponse struct {
	ContributionsCents int64 `json:"contributions_cents"`
	ExpensesCents      int64 `json:"expenses_cents"`
	CostOfLivingCents  int64 `json:"cost_of_living_cents"`
	Surplus            bool  `json:"surplus"`
}

type bucketResponse struct {
	Label         string `json:"label"`
	SalesCents    int64  `json:"sales_cents"`
	ExpensesCents int64  `json:"expenses_cents"`
}

type dashboardResponse struct {
	Window    string                   `json:"window"`
	Date      string                   `json:"date"`
	Business  businessSummaryResponse  `json:"business"`
	Household householdSummaryResponse `json:"household"`
	Buckets   []bucketResponse         `json:"buckets"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	window := core.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = core.Month
	}
	if !window.Valid() {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid window %q: must be day, month or year", window))
		return
	}

	ref, err := parseDateQuery(r, "date")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	owner := s.ownerID(r)
	cacheKey := fmt.Sprintf("%s:dashboard:%s:%s", owner, window, ref.Format("2006-01-02"))
	if cached, ok := s.dashCache.Get(cacheKey); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	txs, err := s.api.List(r.Context(), owner)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard listing failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	scoped := window.Filter(txs, ref)
	biz := core.BusinessReport(scoped)
	home := core.HouseholdReport(scoped)
	buckets := core.Bucketize(scoped, window)

	resp := dashboardResponse{
		Window: string(window),
		Date:   ref.Format("2006-01-02"),
		Business: businessSummaryResponse{
			SalesPaidCents:         biz.SalesPaid.Cents,
			PendingCents:           biz.Pending.Cents,
			RoyaltiesCents:         biz.Royalties.Cents,
			OperatingExpenseCents:  biz.OperatingExpense.Cents,
			CardPaymentsCents:      biz.CardPayments.Cents,
			InitialInventoryCents:  biz.InitialInventory.Cents,
			FamilyConsumptionCents: biz.FamilyConsumption.Cents,
			FamilyBreakdown:        toBreakdownResponse(biz.FamilyBreakdown),
			FamilyCostCents:        biz.FamilyCost.Cents,
			NetProfitCents:         biz.NetProfit.Cents,
		},
		Household: householdSummaryResponse{
			ContributionsCents: home.Contributions.Cents,
			ExpensesCents:      home.Expenses.Cents,
			CostOfLivingCents:  home.CostOfLiving.Cents,
			Surplus:            home.Surplus,
		},
		Buckets: toBucketsResponse(buckets),
	}

	s.dashCache.Set(cacheKey, resp)
	respondJSON(w, http.StatusOK, resp)
}

func toBreakdownResponse(breakdown []core.ConsumerAmount) []consumerAmountResponse {
	out := make([]consumerAmountResponse, len(breakdown))
	for i, c := range breakdown {
		out[i] = consumerAmountResponse{Name: c.Name, AmountCents: c.Amount.Cents}
	}
	return out
}

func toBucketsResponse(buckets []core.Bucket) []bucketResponse {
	out := make([]bucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = bucketResponse{
			Label:         b.Label,
			SalesCents:    b.Sales.Cents,
			ExpensesCents: b.Expenses.Cents,
		}
	}
	return out
}

type cashResponse struct {
	Date      string `json:"date"`
	CashCents int64  `json:"cash_cents"`
}

func (s *Server) handleDailyCash(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateQuery(r, "date")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	owner := s.ownerID(r)
	cacheKey := fmt.Sprintf("%s:cash:%s", owner, day.Format("2006-01-02"))
	if cached, ok := s.cashCache.Get(cacheKey); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	txs, err := s.api.List(r.Context(), owner)
	if err != nil {
		slog.ErrorContext(r.Context(), "Cash listing failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to compute daily cash")
		return
	}

	resp := cashResponse{
		Date:      day.Format("2006-01-02"),
		CashCents: core.DailyCash(txs, day).Cents,
	}

	s.cashCache.Set(cacheKey, resp)
	respondJSON(w, http.StatusOK, resp)
}

// invalidateOwner drops every memoized aggregation for one owner.
func (s *Server) invalidateOwner(owner string) {
	s.dashCache.DeletePrefix(owner + ":")
	s.cashCache.DeletePrefix(owner + ":")
}

// entryErrors are rejected entry-form selections, reported as 400.
var entryErrors = []error{
	core.ErrInvalidAmount,
	core.ErrInvalidType,
	core.ErrInvalidOrigin,
	core.ErrInvalidStatus,
	core.ErrEmptyCategory,
	core.ErrMissingClient,
	core.ErrMissingNote,
	core.ErrMissingConsumer,
	core.ErrUnknownConsumer,
	core.ErrPendingExpense,
	core.ErrZeroDate,
	core.ErrMissingOwner,
	core.ErrUnknownActivity,
}

func isEntryError(err error) bool {
	for _, target := range entryErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
