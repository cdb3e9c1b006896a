package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	mW "github.com/swingold/backend/internal/middleware"
	"github.com/swingold/backend/internal/models"
	"github.com/swingold/backend/internal/services"
)

const (
	defaultPageLimit = 50
	maxBodyBytes     = 1_048_576
)

// Recorder is the write side of the ledger.
type Recorder interface {
	RecordItemPurchase(ctx context.Context, userID, itemID int64, amount decimal.Decimal, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error)
	RecordEventRegistration(ctx context.Context, userID, eventID int64, amount decimal.Decimal, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error)
	RecordTransfer(ctx context.Context, senderID int64, amount decimal.Decimal, txHash, recipientAddress string, opts ...services.RecordOption) (*services.TransferRecord, error)
	RecordTradeCreation(ctx context.Context, buyerID int64, sellerAddress, itemName, itemCategory string, amount decimal.Decimal, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error)
	RecordTradeConfirmation(ctx context.Context, buyerID int64, itemName, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error)
	RecordTradeCancellation(ctx context.Context, buyerID int64, itemName, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error)
	RecordTokenMinting(ctx context.Context, toAddress string, amount decimal.Decimal, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error)
	RecordP2PTrade(ctx context.Context, userID int64, amount decimal.Decimal, txHash, itemName, itemCategory, counterpartyAddress string, opts ...services.RecordOption) (*models.LedgerEntry, error)
}

// Reconciler is the chain-facing side of the ledger.
type Reconciler interface {
	Sync(ctx context.Context, entryID int64) (*models.LedgerEntry, error)
	SyncByTxHash(ctx context.Context, hash string) (*models.LedgerEntry, error)
	Details(ctx context.Context, hash string) (*models.TransactionDetails, error)
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
}

// LedgerReader lists and fetches stored entries.
type LedgerReader interface {
	Get(ctx context.Context, id int64) (*models.LedgerEntry, error)
	Query(ctx context.Context, f models.LedgerFilter, p models.Page) ([]*models.LedgerEntry, error)
	Count(ctx context.Context, f models.LedgerFilter) (int64, error)
}

type Statistics interface {
	ComputeUserStats(ctx context.Context, userID int64) (*models.UserStats, error)
}

type UserLookup interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

type LedgerHandler struct {
	recorder   Recorder
	reconciler Reconciler
	ledger     LedgerReader
	stats      Statistics
	users      UserLookup
	validator  *services.ValidationHelper
}

func NewLedgerHandler(recorder Recorder, reconciler Reconciler, ledger LedgerReader, stats Statistics, users UserLookup) *LedgerHandler {
	return &LedgerHandler{
		recorder:   recorder,
		reconciler: reconciler,
		ledger:     ledger,
		stats:      stats,
		users:      users,
		validator:  services.NewValidationHelper(),
	}
}

// Routes mounts the ledger API. auth guards the routes that act as the caller.
func (h *LedgerHandler) Routes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Route("/onchain", func(r chi.Router) {
		r.Post("/purchase", h.RecordPurchase)
		r.Post("/event-registration", h.RecordEventRegistration)
		r.Post("/transfer", h.RecordTransfer)
		r.Post("/trades", h.RecordTradeCreation)
		r.Post("/trades/confirm", h.RecordTradeConfirmation)
		r.Post("/trades/cancel", h.RecordTradeCancellation)
		r.Post("/mint", h.RecordMint)
		r.Post("/p2p", h.RecordP2PTrade)
		r.Get("/balance/{address}", h.GetBalance)
		r.Get("/transaction/{hash}/details", h.GetTransactionDetails)
		r.Post("/transaction/{hash}/sync", h.SyncTransactionByHash)
		r.Get("/user/{userId}/history", h.GetUserHistory)
	})

	r.Get("/transactions", h.ListTransactions)
	r.Get("/transactions/{id}", h.GetTransaction)
	r.Post("/transactions/{id}/sync", h.SyncTransaction)

	r.Get("/statistics/user/{userId}", h.GetUserStatistics)

	r.Get("/transfers/history/{userId}", h.GetTransferHistory)
	r.With(auth).Post("/transfers/send", h.SendGold)
}

type purchaseRequest struct {
	UserID      int64           `json:"user_id" validate:"required,gt=0"`
	ItemID      int64           `json:"item_id" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price" validate:"amount"`
	TxHash      string          `json:"tx_hash" validate:"omitempty,tx_hash"`
	Description string          `json:"description" validate:"max=500"`
	Pending     bool            `json:"pending"`
}

type eventRegistrationRequest struct {
	UserID  int64           `json:"user_id" validate:"required,gt=0"`
	EventID int64           `json:"event_id" validate:"required,gt=0"`
	Amount  decimal.Decimal `json:"amount" validate:"amount"`
	TxHash  string          `json:"tx_hash" validate:"omitempty,tx_hash"`
	Pending bool            `json:"pending"`
}

type transferRequest struct {
	UserID           int64           `json:"user_id" validate:"required,gt=0"`
	RecipientAddress string          `json:"recipient_address" validate:"required,eth_addr"`
	Amount           decimal.Decimal `json:"amount" validate:"positive_amount"`
	TxHash           string          `json:"tx_hash" validate:"required,tx_hash"`
	Pending          bool            `json:"pending"`
}

type sendGoldRequest struct {
	RecipientAddress string          `json:"recipient_address" validate:"required,eth_addr"`
	Amount           decimal.Decimal `json:"amount" validate:"positive_amount"`
	TxHash           string          `json:"tx_hash" validate:"required,tx_hash"`
}

type tradeCreationRequest struct {
	BuyerID       int64           `json:"buyer_id" validate:"required,gt=0"`
	SellerAddress string          `json:"seller_address" validate:"required,eth_addr"`
	ItemName      string          `json:"item_name" validate:"required,max=255"`
	ItemCategory  string          `json:"item_category" validate:"max=100"`
	Amount        decimal.Decimal `json:"amount" validate:"amount"`
	TxHash        string          `json:"tx_hash" validate:"required,tx_hash"`
	Pending       bool            `json:"pending"`
}

type tradeOutcomeRequest struct {
	BuyerID  int64  `json:"buyer_id" validate:"required,gt=0"`
	ItemName string `json:"item_name" validate:"required,max=255"`
	TxHash   string `json:"tx_hash" validate:"required,tx_hash"`
	Pending  bool   `json:"pending"`
}

type mintRequest struct {
	ToAddress string          `json:"to_address" validate:"required,eth_addr"`
	Amount    decimal.Decimal `json:"amount" validate:"positive_amount"`
	TxHash    string          `json:"tx_hash" validate:"required,tx_hash"`
	Pending   bool            `json:"pending"`
}

type p2pTradeRequest struct {
	UserID              int64           `json:"user_id" validate:"required,gt=0"`
	Amount              decimal.Decimal `json:"amount" validate:"amount"`
	TxHash              string          `json:"tx_hash" validate:"omitempty,tx_hash"`
	ItemName            string          `json:"item_name" validate:"max=255"`
	ItemCategory        string          `json:"item_category" validate:"max=100"`
	CounterpartyAddress string          `json:"counterparty_address" validate:"omitempty,eth_addr"`
	Pending             bool            `json:"pending"`
}

// HistoryResponse is one page of a user's ledger.
type HistoryResponse struct {
	UserID       int64                 `json:"user_id"`
	Transactions []*models.LedgerEntry `json:"transactions"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

func recordOptions(pending bool) []services.RecordOption {
	if pending {
		return []services.RecordOption{services.Pending()}
	}
	return nil
}

// RecordPurchase records an item purchase
// @Summary Record item purchase
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body purchaseRequest true "Purchase"
// @Success 201 {object} models.LedgerEntry
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /onchain/purchase [post]
func (h *LedgerHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !h.decode(w, r, &req) {
		return
	}

	opts := recordOptions(req.Pending)
	if req.Description != "" {
		opts = append(opts, services.WithDescription(req.Description))
	}
	entry, err := h.recorder.RecordItemPurchase(r.Context(), req.UserID, req.ItemID, req.Price, req.TxHash, opts...)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, entry)
}

// RecordEventRegistration records the reward for registering to an event
// @Summary Record event registration
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body eventRegistrationRequest true "Registration"
// @Success 201 {object} models.LedgerEntry
// @Router /onchain/event-registration [post]
func (h *LedgerHandler) RecordEventRegistration(w http.ResponseWriter, r *http.Request) {
	var req eventRegistrationRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.recorder.RecordEventRegistration(r.Context(), req.UserID, req.EventID, req.Amount, req.TxHash, recordOptions(req.Pending)...)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, entry)
}

// RecordTransfer records both legs of a transfer
// @Summary Record transfer
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body transferRequest true "Transfer"
// @Success 201 {object} services.TransferRecord
// @Failure 404 {object} services.ErrorResponse
// @Router /onchain/transfer [post]
func (h *LedgerHandler) RecordTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !h.decode(w, r, &req) {
		return
	}

	record, err := h.recorder.RecordTransfer(r.Context(), req.UserID, req.Amount, req.TxHash, req.RecipientAddress, recordOptions(req.Pending)...)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, record)
}

// SendGold transfers gold from the authenticated user
// @Summary Send gold
// @Tags Transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body sendGoldRequest true "Transfer"
// @Success 201 {object} services.TransferRecord
// @Failure 401 {object} services.ErrorResponse
// @Router /transfers/send [post]
func (h *LedgerHandler) SendGold(w http.ResponseWriter, r *http.Request) {
	senderID, ok := mW.UserIDFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req sendGoldRequest
	if !h.decode(w, r, &req) {
		return
	}

	record, err := h.recorder.RecordTransfer(r.Context(), senderID, req.Amount, req.TxHash, req.RecipientAddress)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, record)
}

// RecordTradeCreation records the buyer's payment into a trade
// @Summary Record trade creation
// @Tags Trades
// @Accept json
// @Produce json
// @Param request body tradeCreationRequest true "Trade"
// @Success 201 {object} models.LedgerEntry
// @Router /onchain/trades [post]
func (h *LedgerHandler) RecordTradeCreation(w http.ResponseWriter, r *http.Request) {
	var req tradeCreationRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.recorder.RecordTradeCreation(r.Context(), req.BuyerID, req.SellerAddress, req.ItemName, req.ItemCategory, req.Amount, req.TxHash, recordOptions(req.Pending)...)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, entry)
}

// RecordTradeConfirmation records the buyer confirming receipt of a traded item
// @Summary Record trade confirmation
// @Tags Trades
// @Accept json
// @Produce json
// @Param request body tradeOutcomeRequest true "Trade outcome"
// @Success 201 {object} models.LedgerEntry
// @Failure 404 {object} services.ErrorResponse
// @Router /onchain/trades/confirm [post]
func (h *LedgerHandler) RecordTradeConfirmation(w http.ResponseWriter, r *http.Request) {
	var req tradeOutcomeRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.recorder.RecordTradeConfirmation(r.Context(), req.BuyerID, req.ItemName, req.TxHash, recordOptions(req.Pending)...)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, entry)
}

// RecordTradeCancellation records a cancelled trade
// @Summary Record trade cancellation
// @Tags Trades
// @Accept json
// @Produce json
// @Param request body tradeOutcomeRequest true "Trade outcome"
// @Success 201 {object} models.LedgerEntry
// @Failure 404 {object} services.ErrorResponse
// @Router /onchain/trades/cancel [post]
func (h *LedgerHandler) RecordTradeCancellation(w http.ResponseWriter, r *http.Request) {
	var req tradeOutcomeRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.recorder.RecordTradeCancellation(r.Context(), req.BuyerID, req.ItemName, req.TxHash, recordOptions(req.Pending)...)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, entry)
}

// RecordMint records newly minted gold
// @Summary Record token minting
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body mintRequest true "Mint"
// @Success 201 {object} models.LedgerEntry
// @Router /onchain/mint [post]
func (h *LedgerHandler) RecordMint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.recorder.RecordTokenMinting(r.Context(), req.ToAddress, req.Amount, req.TxHash, recordOptions(req.Pending)...)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, entry)
}

// RecordP2PTrade records a peer-to-peer trade payment
// @Summary Record P2P trade
// @Tags Trades
// @Accept json
// @Produce json
// @Param request body p2pTradeRequest true "P2P trade"
// @Success 201 {object} models.LedgerEntry
// @Failure 400 {object} services.ErrorResponse
// @Router /onchain/p2p [post]
func (h *LedgerHandler) RecordP2PTrade(w http.ResponseWriter, r *http.Request) {
	var req p2pTradeRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.recorder.RecordP2PTrade(r.Context(), req.UserID, req.Amount, req.TxHash, req.ItemName, req.ItemCategory, req.CounterpartyAddress, recordOptions(req.Pending)...)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, entry)
}

// GetBalance returns the on-chain balance of a wallet
// @Summary On-chain balance
// @Tags Chain
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} object{address=string,balance=string}
// @Failure 503 {object} services.ErrorResponse
// @Router /onchain/balance/{address} [get]
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	balance, err := h.reconciler.Balance(r.Context(), address)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, map[string]string{
		"address": address,
		"balance": balance.String(),
	})
}

// GetTransactionDetails returns the stored entry and the chain's view of it
// @Summary Transaction details
// @Tags Chain
// @Produce json
// @Param hash path string true "Transaction hash"
// @Success 200 {object} models.TransactionDetails
// @Failure 404 {object} services.ErrorResponse
// @Router /onchain/transaction/{hash}/details [get]
func (h *LedgerHandler) GetTransactionDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.reconciler.Details(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, details)
}

// SyncTransactionByHash reconciles the entry recorded under a transaction hash
// @Summary Sync ledger entry by hash
// @Tags Chain
// @Produce json
// @Param hash path string true "Transaction hash"
// @Success 200 {object} object{message=string,transaction=models.LedgerEntry}
// @Failure 404 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Router /onchain/transaction/{hash}/sync [post]
func (h *LedgerHandler) SyncTransactionByHash(w http.ResponseWriter, r *http.Request) {
	entry, err := h.reconciler.SyncByTxHash(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, map[string]any{
		"message":     "Transaction synced successfully",
		"transaction": entry,
	})
}

// SyncTransaction reconciles one entry with the chain
// @Summary Sync ledger entry
// @Tags Ledger
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} models.LedgerEntry
// @Failure 503 {object} services.ErrorResponse
// @Router /transactions/{id}/sync [post]
func (h *LedgerHandler) SyncTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	entry, err := h.reconciler.Sync(r.Context(), id)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, entry)
}

// GetTransaction returns one ledger entry
// @Summary Get ledger entry
// @Tags Ledger
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} models.LedgerEntry
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/{id} [get]
func (h *LedgerHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	entry, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, entry)
}

// ListTransactions lists ledger entries, newest first
// @Summary List ledger entries
// @Tags Ledger
// @Produce json
// @Param user_id query int false "Owner"
// @Param trade_type query string false "Trade type"
// @Param status query string false "pending, confirmed or failed"
// @Param search query string false "Description substring"
// @Param limit query int false "Page size (1-1000)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.LedgerEntry
// @Router /transactions [get]
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.LedgerFilter{
		TradeType:   q.Get("trade_type"),
		Status:      models.Status(q.Get("status")),
		Description: q.Get("search"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		services.SendErrorResponse(w, "Invalid status filter", http.StatusBadRequest, nil)
		return
	}
	if raw := q.Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			services.SendErrorResponse(w, "Invalid user_id", http.StatusBadRequest, nil)
			return
		}
		filter.UserID = id
	}

	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	entries, err := h.ledger.Query(r.Context(), filter, page)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, entries)
}

// GetUserHistory returns one page of a user's ledger with the total count
// @Summary User transaction history
// @Tags Ledger
// @Produce json
// @Param userId path int true "User ID"
// @Param trade_type query string false "Trade type"
// @Success 200 {object} HistoryResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /onchain/user/{userId}/history [get]
func (h *LedgerHandler) GetUserHistory(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, r.URL.Query().Get("trade_type"))
}

// GetTransferHistory returns one page of a user's transfers with the total count
// @Summary Transfer history
// @Tags Transfers
// @Produce json
// @Param userId path int true "User ID"
// @Param limit query int false "Page size (1-1000)"
// @Param offset query int false "Offset"
// @Success 200 {object} HistoryResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /transfers/history/{userId} [get]
func (h *LedgerHandler) GetTransferHistory(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, models.TradeTypeTransfer)
}

func (h *LedgerHandler) history(w http.ResponseWriter, r *http.Request, tradeType string) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	page, ok := pageParams(w, r)
	if !ok {
		return
	}

	if _, err := h.users.FindUserByID(r.Context(), userID); err != nil {
		services.SendServiceError(w, err)
		return
	}

	filter := models.LedgerFilter{UserID: userID, TradeType: tradeType}
	entries, err := h.ledger.Query(r.Context(), filter, page)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	total, err := h.ledger.Count(r.Context(), filter)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	services.SendJSON(w, http.StatusOK, HistoryResponse{
		UserID:       userID,
		Transactions: entries,
		Total:        total,
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
}

// GetUserStatistics returns spend and earn totals for a user
// @Summary User statistics
// @Tags Statistics
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.UserStats
// @Failure 404 {object} services.ErrorResponse
// @Router /statistics/user/{userId} [get]
func (h *LedgerHandler) GetUserStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	stats, err := h.stats.ComputeUserStats(r.Context(), userID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, stats)
}

func (h *LedgerHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	if err := h.validator.ValidateStruct(dst); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		services.SendErrorResponse(w, "Invalid "+name, http.StatusBadRequest, nil)
		return 0, false
	}
	return id, true
}

// pageParams reads limit and offset. Range checks are left to the store.
func pageParams(w http.ResponseWriter, r *http.Request) (models.Page, bool) {
	page := models.Page{Limit: defaultPageLimit}
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			services.SendErrorResponse(w, "Invalid limit", http.StatusBadRequest, nil)
			return page, false
		}
		page.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			services.SendErrorResponse(w, "Invalid offset", http.StatusBadRequest, nil)
			return page, false
		}
		page.Offset = n
	}
	return page, true
}
