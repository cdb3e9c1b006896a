package handlers

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/swingold/backend/internal/models"
	"github.com/swingold/backend/internal/services"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) entry(args mock.Arguments) (*models.LedgerEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *MockRecorder) RecordItemPurchase(ctx context.Context, userID, itemID int64, amount decimal.Decimal, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error) {
	return m.entry(m.Called(userID, itemID, amount.String(), txHash, len(opts)))
}

func (m *MockRecorder) RecordEventRegistration(ctx context.Context, userID, eventID int64, amount decimal.Decimal, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error) {
	return m.entry(m.Called(userID, eventID, amount.String(), txHash, len(opts)))
}

func (m *MockRecorder) RecordTransfer(ctx context.Context, senderID int64, amount decimal.Decimal, txHash, recipientAddress string, opts ...services.RecordOption) (*services.TransferRecord, error) {
	args := m.Called(senderID, amount.String(), txHash, recipientAddress, len(opts))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TransferRecord), args.Error(1)
}

func (m *MockRecorder) RecordTradeCreation(ctx context.Context, buyerID int64, sellerAddress, itemName, itemCategory string, amount decimal.Decimal, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error) {
	return m.entry(m.Called(buyerID, sellerAddress, itemName, itemCategory, amount.String(), txHash, len(opts)))
}

func (m *MockRecorder) RecordTradeConfirmation(ctx context.Context, buyerID int64, itemName, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error) {
	return m.entry(m.Called(buyerID, itemName, txHash, len(opts)))
}

func (m *MockRecorder) RecordTradeCancellation(ctx context.Context, buyerID int64, itemName, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error) {
	return m.entry(m.Called(buyerID, itemName, txHash, len(opts)))
}

func (m *MockRecorder) RecordTokenMinting(ctx context.Context, toAddress string, amount decimal.Decimal, txHash string, opts ...services.RecordOption) (*models.LedgerEntry, error) {
	return m.entry(m.Called(toAddress, amount.String(), txHash, len(opts)))
}

func (m *MockRecorder) RecordP2PTrade(ctx context.Context, userID int64, amount decimal.Decimal, txHash, itemName, itemCategory, counterpartyAddress string, opts ...services.RecordOption) (*models.LedgerEntry, error) {
	return m.entry(m.Called(userID, amount.String(), txHash, itemName, itemCategory, counterpartyAddress, len(opts)))
}

type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Sync(ctx context.Context, entryID int64) (*models.LedgerEntry, error) {
	args := m.Called(entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *MockReconciler) SyncByTxHash(ctx context.Context, hash string) (*models.LedgerEntry, error) {
	args := m.Called(hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *MockReconciler) Details(ctx context.Context, hash string) (*models.TransactionDetails, error) {
	args := m.Called(hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionDetails), args.Error(1)
}

func (m *MockReconciler) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	args := m.Called(address)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Get(ctx context.Context, id int64) (*models.LedgerEntry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *MockLedger) Query(ctx context.Context, f models.LedgerFilter, p models.Page) ([]*models.LedgerEntry, error) {
	args := m.Called(f, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedger) Count(ctx context.Context, f models.LedgerFilter) (int64, error) {
	args := m.Called(f)
	return args.Get(0).(int64), args.Error(1)
}

type MockStatistics struct {
	mock.Mock
}

func (m *MockStatistics) ComputeUserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
