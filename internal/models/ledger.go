package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the balance side of a ledger entry.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// Status is the on-chain settlement state of a ledger entry.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further status move is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// Trade types recorded on ledger entries
const (
	TradeTypeItemPurchase      = "item_purchase"
	TradeTypeEventRegistration = "event_registration"
	TradeTypeTransfer          = "transfer"
	TradeTypeTradeCreation     = "trade_creation"
	TradeTypeTradeConfirmation = "trade_confirmation"
	TradeTypeTradeCancellation = "trade_cancellation"
	TradeTypeTokenMinting      = "token_minting"
	TradeTypeP2PTrade          = "p2p_trade"
)

// CreditLegSuffix marks the recipient leg of a transfer so both legs keep a unique tx_hash.
const CreditLegSuffix = "#credit"

// LedgerEntry is one recorded economic movement affecting a user's Swingold balance.
type LedgerEntry struct {
	ID                  int64               `json:"id" db:"id"`
	Amount              decimal.Decimal     `json:"amount" db:"amount"`
	Direction           Direction           `json:"direction" db:"direction"`
	TxHash              string              `json:"tx_hash,omitempty" db:"tx_hash"`
	Description         string              `json:"description" db:"description"`
	Status              Status              `json:"status" db:"status"`
	UserID              int64               `json:"user_id" db:"user_id"`
	EventID             *int64              `json:"event_id,omitempty" db:"event_id"`
	ItemID              *int64              `json:"item_id,omitempty" db:"item_id"`
	CounterpartyAddress string              `json:"counterparty_address,omitempty" db:"counterparty_address"`
	TradeType           string              `json:"trade_type,omitempty" db:"trade_type"`
	ItemName            string              `json:"item_name,omitempty" db:"item_name"`
	ItemCategory        string              `json:"item_category,omitempty" db:"item_category"`
	BlockNumber         *int64              `json:"block_number,omitempty" db:"block_number"`
	GasUsed             *int64              `json:"gas_used,omitempty" db:"gas_used"`
	GasPrice            decimal.NullDecimal `json:"gas_price" db:"gas_price"`
	MinedAt             *time.Time          `json:"mined_at,omitempty" db:"mined_at"`
	CreatedAt           time.Time           `json:"created_at" db:"created_at"`
}

// SignedAmount returns amount for credits and -amount for debits.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Direction == DirectionDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// ChainTxHash returns the on-chain hash this entry mirrors, without any leg suffix.
func (e *LedgerEntry) ChainTxHash() string {
	return strings.TrimSuffix(e.TxHash, CreditLegSuffix)
}

// ChainMetadata is the reconciliation data copied from the chain onto an entry.
type ChainMetadata struct {
	BlockNumber *int64
	GasUsed     *int64
	GasPrice    decimal.NullDecimal
	MinedAt     *time.Time
}

// ChainStatus is the authoritative view of a transaction as reported by the chain.
type ChainStatus struct {
	TxHash      string              `json:"tx_hash"`
	Status      Status              `json:"status"`
	BlockNumber *int64              `json:"block_number,omitempty"`
	GasUsed     *int64              `json:"gas_used,omitempty"`
	GasPrice    decimal.NullDecimal `json:"gas_price"`
	MinedAt     *time.Time          `json:"mined_at,omitempty"`
}

// Metadata converts the chain view into the fields persisted on the ledger row.
func (c *ChainStatus) Metadata() ChainMetadata {
	return ChainMetadata{
		BlockNumber: c.BlockNumber,
		GasUsed:     c.GasUsed,
		GasPrice:    c.GasPrice,
		MinedAt:     c.MinedAt,
	}
}

// LedgerFilter narrows ledger queries. Zero values are ignored.
type LedgerFilter struct {
	UserID      int64
	TradeType   string
	Status      Status
	Description string // case-insensitive substring
}

// Page is offset/limit pagination.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// TransactionDetails pairs the stored row with what the chain currently reports.
type TransactionDetails struct {
	Entry *LedgerEntry `json:"database_transaction"`
	Chain *ChainStatus `json:"blockchain_details"`
}
