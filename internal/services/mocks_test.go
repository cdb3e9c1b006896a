package services

import (
	"context"
	"math/big"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/swingold/backend/internal/chain"
)

type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) TransactionReceipt(ctx context.Context, hash string) (*chain.Receipt, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.Receipt), args.Error(1)
}

func (m *MockChainClient) Transaction(ctx context.Context, hash string) (*chain.Transaction, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.Transaction), args.Error(1)
}

func (m *MockChainClient) BlockTime(ctx context.Context, number uint64) (time.Time, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockChainClient) TokenBalance(ctx context.Context, address string) (*big.Int, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

type MockStatsInvalidator struct {
	mock.Mock
}

func (m *MockStatsInvalidator) Invalidate(ctx context.Context, userIDs ...int64) {
	m.Called(userIDs)
}

var ledgerColumns = []string{
	"id", "amount", "direction", "tx_hash", "description", "status", "user_id", "event_id", "item_id",
	"counterparty_address", "trade_type", "item_name", "item_category",
	"block_number", "gas_used", "gas_price", "mined_at", "created_at",
}

var testCreatedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// pendingRow is a stored pending debit with no chain metadata.
func pendingRow(rows *sqlmock.Rows, id, userID int64, txHash string) *sqlmock.Rows {
	return rows.AddRow(id, "25", "debit", txHash, "Item purchase: Mug", "pending", userID, nil, int64(5),
		nil, "item_purchase", "Mug", nil, nil, nil, nil, nil, testCreatedAt)
}

func userRows(id int64, username, wallet string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "wallet_address"}).AddRow(id, username, wallet)
}
