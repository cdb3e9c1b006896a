package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mW "github.com/swingold/backend/internal/middleware"
	"github.com/swingold/backend/internal/models"
	"github.com/swingold/backend/internal/services"
)

const (
	testHash   = "0x8f2b6c0e3a1d4e5f60718293a4b5c6d7e8f90112233445566778899aabbccdde"
	testWallet = "0xb0b0000000000000000000000000000000000002"
)

type handlerFixture struct {
	router     chi.Router
	recorder   *MockRecorder
	reconciler *MockReconciler
	ledger     *MockLedger
	stats      *MockStatistics
	users      *MockUsers
}

// asUser stands in for the JWT middleware.
func asUser(id int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id != 0 {
				r = r.WithContext(mW.WithUserID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newHandlerFixture(callerID int64) *handlerFixture {
	f := &handlerFixture{
		recorder:   &MockRecorder{},
		reconciler: &MockReconciler{},
		ledger:     &MockLedger{},
		stats:      &MockStatistics{},
		users:      &MockUsers{},
	}
	h := NewLedgerHandler(f.recorder, f.reconciler, f.ledger, f.stats, f.users)
	r := chi.NewRouter()
	h.Routes(r, asUser(callerID))
	f.router = r
	return f
}

func (f *handlerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) services.ErrorResponse {
	t.Helper()
	var resp services.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLedgerHandler_RecordPurchase(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newHandlerFixture(0)
		itemID := int64(5)
		f.recorder.On("RecordItemPurchase", int64(1), int64(5), "100", testHash, 0).
			Return(&models.LedgerEntry{ID: 21, Amount: decimal.NewFromInt(100), Direction: models.DirectionDebit, ItemID: &itemID, Status: models.StatusConfirmed}, nil)

		w := f.do(http.MethodPost, "/onchain/purchase", fmt.Sprintf(`{"user_id":1,"item_id":5,"price":"100","tx_hash":"%s"}`, testHash))

		assert.Equal(t, http.StatusCreated, w.Code)
		var entry models.LedgerEntry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
		assert.Equal(t, int64(21), entry.ID)
		assert.Equal(t, models.DirectionDebit, entry.Direction)
		f.recorder.AssertExpectations(t)
	})

	t.Run("pending with description passes two options", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.recorder.On("RecordItemPurchase", int64(1), int64(5), "12.5", "", 2).
			Return(&models.LedgerEntry{ID: 22}, nil)

		w := f.do(http.MethodPost, "/onchain/purchase", `{"user_id":1,"item_id":5,"price":12.5,"pending":true,"description":"Merch"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		f.recorder.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		f := newHandlerFixture(0)

		w := f.do(http.MethodPost, "/onchain/purchase", `{"user_id":0,"item_id":5,"price":"-1","tx_hash":"0x12"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "Validation failed", resp.Error)
		assert.Contains(t, resp.Details, "UserID")
		assert.Contains(t, resp.Details, "Price")
		assert.Contains(t, resp.Details, "TxHash")
		f.recorder.AssertNotCalled(t, "RecordItemPurchase")
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		f := newHandlerFixture(0)

		w := f.do(http.MethodPost, "/onchain/purchase", `{"user_id":1,"item_id":5,"price":"1","quantity":2}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("item not found maps to 404", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.recorder.On("RecordItemPurchase", int64(1), int64(404), "1", "", 0).
			Return(nil, fmt.Errorf("%w: id=404", services.ErrItemNotFound))

		w := f.do(http.MethodPost, "/onchain/purchase", `{"user_id":1,"item_id":404,"price":"1"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLedgerHandler_Transfers(t *testing.T) {
	body := fmt.Sprintf(`{"recipient_address":"%s","amount":"30","tx_hash":"%s"}`, testWallet, testHash)

	t.Run("send as the authenticated user", func(t *testing.T) {
		f := newHandlerFixture(1)
		record := &services.TransferRecord{
			Debit:  &models.LedgerEntry{ID: 40, TxHash: testHash, Direction: models.DirectionDebit},
			Credit: &models.LedgerEntry{ID: 41, TxHash: testHash + models.CreditLegSuffix, Direction: models.DirectionCredit},
		}
		f.recorder.On("RecordTransfer", int64(1), "30", testHash, testWallet, 0).Return(record, nil)

		w := f.do(http.MethodPost, "/transfers/send", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got services.TransferRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, int64(40), got.Debit.ID)
		assert.Equal(t, int64(41), got.Credit.ID)
	})

	t.Run("send without identity", func(t *testing.T) {
		f := newHandlerFixture(0)

		w := f.do(http.MethodPost, "/transfers/send", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("self transfer is a bad request", func(t *testing.T) {
		f := newHandlerFixture(1)
		f.recorder.On("RecordTransfer", int64(1), "30", testHash, testWallet, 0).Return(nil, services.ErrSelfTransfer)

		w := f.do(http.MethodPost, "/transfers/send", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, services.ErrSelfTransfer.Error(), decodeError(t, w).Error)
	})

	t.Run("recipient not found", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.recorder.On("RecordTransfer", int64(1), "30", testHash, testWallet, 1).Return(nil, services.ErrRecipientNotFound)

		w := f.do(http.MethodPost, "/onchain/transfer",
			fmt.Sprintf(`{"user_id":1,"recipient_address":"%s","amount":"30","tx_hash":"%s","pending":true}`, testWallet, testHash))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("zero amount rejected before the recorder", func(t *testing.T) {
		f := newHandlerFixture(1)

		w := f.do(http.MethodPost, "/transfers/send", fmt.Sprintf(`{"recipient_address":"%s","amount":"0","tx_hash":"%s"}`, testWallet, testHash))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Details, "Amount")
	})

	t.Run("history filters on transfers", func(t *testing.T) {
		f := newHandlerFixture(0)
		filter := models.LedgerFilter{UserID: 1, TradeType: models.TradeTypeTransfer}
		f.users.On("FindUserByID", int64(1)).Return(&models.User{ID: 1}, nil)
		f.ledger.On("Query", filter, models.Page{Limit: 10, Offset: 20}).Return([]*models.LedgerEntry{{ID: 40}}, nil)
		f.ledger.On("Count", filter).Return(int64(21), nil)

		w := f.do(http.MethodGet, "/transfers/history/1?limit=10&offset=20", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp HistoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(21), resp.Total)
		assert.Len(t, resp.Transactions, 1)
		assert.Equal(t, 10, resp.Limit)
	})
}

func TestLedgerHandler_Trades(t *testing.T) {
	f := newHandlerFixture(0)
	f.recorder.On("RecordTradeCreation", int64(1), testWallet, "Textbook", "books", "15", testHash, 0).
		Return(&models.LedgerEntry{ID: 50, TradeType: models.TradeTypeTradeCreation}, nil)
	f.recorder.On("RecordTradeConfirmation", int64(1), "Textbook", testHash, 0).
		Return(&models.LedgerEntry{ID: 51}, nil)
	f.recorder.On("RecordTradeCancellation", int64(1), "Textbook", testHash, 1).
		Return(&models.LedgerEntry{ID: 52}, nil)

	w := f.do(http.MethodPost, "/onchain/trades",
		fmt.Sprintf(`{"buyer_id":1,"seller_address":"%s","item_name":"Textbook","item_category":"books","amount":"15","tx_hash":"%s"}`, testWallet, testHash))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.do(http.MethodPost, "/onchain/trades/confirm", fmt.Sprintf(`{"buyer_id":1,"item_name":"Textbook","tx_hash":"%s"}`, testHash))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.do(http.MethodPost, "/onchain/trades/cancel", fmt.Sprintf(`{"buyer_id":1,"item_name":"Textbook","tx_hash":"%s","pending":true}`, testHash))
	assert.Equal(t, http.StatusCreated, w.Code)

	f.recorder.AssertExpectations(t)
}

func TestLedgerHandler_MintAndEventRegistration(t *testing.T) {
	f := newHandlerFixture(0)
	f.recorder.On("RecordTokenMinting", testWallet, "500", testHash, 0).Return(&models.LedgerEntry{ID: 60}, nil)
	f.recorder.On("RecordEventRegistration", int64(1), int64(9), "50", "", 0).Return(&models.LedgerEntry{ID: 30}, nil)
	f.recorder.On("RecordP2PTrade", int64(1), "8", "", "Calculator", "", "", 0).Return(&models.LedgerEntry{ID: 70}, nil)

	w := f.do(http.MethodPost, "/onchain/mint", fmt.Sprintf(`{"to_address":"%s","amount":"500","tx_hash":"%s"}`, testWallet, testHash))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.do(http.MethodPost, "/onchain/event-registration", `{"user_id":1,"event_id":9,"amount":"50"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.do(http.MethodPost, "/onchain/p2p", `{"user_id":1,"amount":"8","item_name":"Calculator"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.do(http.MethodPost, "/onchain/mint", `{"to_address":"not-a-wallet","amount":"500"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.recorder.AssertExpectations(t)
}

func TestLedgerHandler_Chain(t *testing.T) {
	t.Run("balance", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.reconciler.On("Balance", testWallet).Return(decimal.NewFromInt(1500), nil)

		w := f.do(http.MethodGet, "/onchain/balance/"+testWallet, "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1500", resp["balance"])
	})

	t.Run("chain unavailable is 503", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.reconciler.On("Balance", testWallet).Return(decimal.Zero, fmt.Errorf("%w: refused", services.ErrChainUnavailable))

		w := f.do(http.MethodGet, "/onchain/balance/"+testWallet, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("details", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.reconciler.On("Details", testHash).Return(&models.TransactionDetails{
			Entry: &models.LedgerEntry{ID: 4, TxHash: testHash},
			Chain: &models.ChainStatus{TxHash: testHash, Status: models.StatusConfirmed},
		}, nil)

		w := f.do(http.MethodGet, "/onchain/transaction/"+testHash+"/details", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp, "database_transaction")
		assert.Contains(t, resp, "blockchain_details")
	})

	t.Run("sync by hash unknown to the chain", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.reconciler.On("SyncByTxHash", testHash).Return(nil, services.ErrUnknownTxHash)

		w := f.do(http.MethodPost, "/onchain/transaction/"+testHash+"/sync", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("sync by id", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.reconciler.On("Sync", int64(3)).Return(&models.LedgerEntry{ID: 3, Status: models.StatusConfirmed}, nil)

		w := f.do(http.MethodPost, "/transactions/3/sync", "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = f.do(http.MethodPost, "/transactions/abc/sync", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLedgerHandler_Queries(t *testing.T) {
	t.Run("list with filters", func(t *testing.T) {
		f := newHandlerFixture(0)
		filter := models.LedgerFilter{UserID: 1, TradeType: "item_purchase", Status: models.StatusPending, Description: "hoodie"}
		f.ledger.On("Query", filter, models.Page{Limit: 50}).Return([]*models.LedgerEntry{}, nil)

		w := f.do(http.MethodGet, "/transactions?user_id=1&trade_type=item_purchase&status=pending&search=hoodie", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("bad status filter", func(t *testing.T) {
		f := newHandlerFixture(0)

		w := f.do(http.MethodGet, "/transactions?status=settled", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("out of range limit is rejected by the store", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.ledger.On("Query", models.LedgerFilter{}, models.Page{Limit: 5000}).
			Return(nil, fmt.Errorf("%w: limit must be between 1 and 1000", services.ErrInvalidArgument))

		w := f.do(http.MethodGet, "/transactions?limit=5000", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get missing entry", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.ledger.On("Get", int64(404)).Return(nil, services.ErrEntryNotFound)

		w := f.do(http.MethodGet, "/transactions/404", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("history for unknown user", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.users.On("FindUserByID", int64(9)).Return(nil, services.ErrUserNotFound)

		w := f.do(http.MethodGet, "/onchain/user/9/history", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		f.ledger.AssertNotCalled(t, "Query")
	})

	t.Run("statistics", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.stats.On("ComputeUserStats", int64(1)).Return(&models.UserStats{
			UserID:     1,
			TotalSpent: decimal.NewFromInt(130),
		}, nil)

		w := f.do(http.MethodGet, "/statistics/user/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "130", resp["total_spent"])
	})

	t.Run("store failure hides internals", func(t *testing.T) {
		f := newHandlerFixture(0)
		f.stats.On("ComputeUserStats", int64(2)).Return(nil, fmt.Errorf("%w: compute user stats: connection reset", services.ErrStore))

		w := f.do(http.MethodGet, "/statistics/user/2", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeError(t, w).Error)
	})
}
