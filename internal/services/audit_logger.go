package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/swingold/backend/internal/models"
)

// AuditEvent is one line of the ledger audit trail.
type AuditEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	EventType string          `json:"event_type"`
	EntryID   int64           `json:"entry_id,omitempty"`
	TxHash    string          `json:"tx_hash,omitempty"`
	UserID    int64           `json:"user_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Details   map[string]any  `json:"details,omitempty"`
}

type AuditLogger struct {
	log *logrus.Logger
}

func NewAuditLogger(logger *logrus.Logger) *AuditLogger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuditLogger{log: logger}
}

func (a *AuditLogger) LogEntry(operation string, e *models.LedgerEntry) {
	a.emit(AuditEvent{
		Timestamp: time.Now(),
		EventType: operation,
		EntryID:   e.ID,
		TxHash:    e.TxHash,
		UserID:    e.UserID,
		Amount:    e.Amount,
		Status:    string(e.Status),
		Details: map[string]any{
			"direction":  e.Direction,
			"trade_type": e.TradeType,
		},
	})
}

func (a *AuditLogger) LogTransfer(txHash string, fromUser, toUser int64, amount decimal.Decimal) {
	a.emit(AuditEvent{
		Timestamp: time.Now(),
		EventType: "TRANSFER",
		TxHash:    txHash,
		UserID:    fromUser,
		Amount:    amount,
		Status:    "SUCCESS",
		Details:   map[string]any{"to_user_id": toUser},
	})
}

func (a *AuditLogger) LogStatusChange(e *models.LedgerEntry, from models.Status) {
	a.emit(AuditEvent{
		Timestamp: time.Now(),
		EventType: "RECONCILE",
		EntryID:   e.ID,
		TxHash:    e.TxHash,
		UserID:    e.UserID,
		Amount:    e.Amount,
		Status:    string(e.Status),
		Details:   map[string]any{"from_status": from, "block_number": e.BlockNumber},
	})
}

func (a *AuditLogger) LogError(operation, txHash string, err error) {
	a.emit(AuditEvent{
		Timestamp: time.Now(),
		EventType: "ERROR",
		TxHash:    txHash,
		Status:    "FAILED",
		Details:   map[string]any{"operation": operation, "error": err.Error()},
	})
}

func (a *AuditLogger) emit(event AuditEvent) {
	entry := a.log.WithFields(logrus.Fields{
		"audit":      true,
		"event_type": event.EventType,
		"status":     event.Status,
		"amount":     event.Amount.String(),
	})
	if event.EntryID != 0 {
		entry = entry.WithField("entry_id", event.EntryID)
	}
	if event.TxHash != "" {
		entry = entry.WithField("tx_hash", event.TxHash)
	}
	if event.UserID != 0 {
		entry = entry.WithField("user_id", event.UserID)
	}
	for k, v := range event.Details {
		entry = entry.WithField(k, v)
	}
	entry.WithTime(event.Timestamp).Info("AUDIT")
}
