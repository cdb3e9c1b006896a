package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/swingold/backend/internal/models"
)

type statsInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...int64)
}

type recordOptions struct {
	status      models.Status
	description string
}

// RecordOption adjusts the defaults a Record* call writes.
type RecordOption func(*recordOptions)

// Pending records the entry before the chain has settled it, leaving it for the reconciler.
func Pending() RecordOption {
	return func(o *recordOptions) {
		o.status = models.StatusPending
	}
}

// WithDescription replaces the generated description.
func WithDescription(description string) RecordOption {
	return func(o *recordOptions) {
		o.description = strings.TrimSpace(description)
	}
}

func applyOptions(opts []RecordOption) recordOptions {
	o := recordOptions{status: models.StatusConfirmed}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o recordOptions) describe(generated, txHash string) string {
	if o.description != "" {
		return o.description
	}
	if txHash == "" {
		return generated
	}
	return fmt.Sprintf("%s - tx: %s", generated, txHash)
}

// TransferRecord holds both legs of a recorded transfer.
type TransferRecord struct {
	Debit  *models.LedgerEntry `json:"debit"`
	Credit *models.LedgerEntry `json:"credit"`
}

// TransactionRecorder turns validated economic events into ledger entries.
// Each call commits all of its entries in one transaction or none of them.
type TransactionRecorder struct {
	store     *LedgerStore
	directory *Directory
	stats     statsInvalidator
	audit     *AuditLogger
	log       *logrus.Logger
}

func NewTransactionRecorder(store *LedgerStore, directory *Directory, stats statsInvalidator, logger *logrus.Logger) *TransactionRecorder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TransactionRecorder{
		store:     store,
		directory: directory,
		stats:     stats,
		audit:     NewAuditLogger(logger),
		log:       logger,
	}
}

// RecordItemPurchase debits userID for buying itemID.
func (r *TransactionRecorder) RecordItemPurchase(ctx context.Context, userID, itemID int64, amount decimal.Decimal, txHash string, opts ...RecordOption) (*models.LedgerEntry, error) {
	const op = models.TradeTypeItemPurchase

	if err := requireNonNegative(amount); err != nil {
		return nil, r.fail(op, txHash, err)
	}
	if _, err := r.directory.FindUserByID(ctx, userID); err != nil {
		return nil, r.fail(op, txHash, err)
	}
	item, err := r.directory.FindItem(ctx, itemID)
	if err != nil {
		return nil, r.fail(op, txHash, err)
	}

	o := applyOptions(opts)
	entry := &models.LedgerEntry{
		Amount:      amount,
		Direction:   models.DirectionDebit,
		TxHash:      txHash,
		Description: o.describe("Item purchase: "+item.Name, txHash),
		Status:      o.status,
		UserID:      userID,
		ItemID:      &item.ID,
		TradeType:   models.TradeTypeItemPurchase,
		ItemName:    item.Name,
	}
	if err := r.commit(ctx, op, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordEventRegistration credits userID with the reward for registering to eventID.
func (r *TransactionRecorder) RecordEventRegistration(ctx context.Context, userID, eventID int64, amount decimal.Decimal, txHash string, opts ...RecordOption) (*models.LedgerEntry, error) {
	const op = models.TradeTypeEventRegistration

	if err := requireNonNegative(amount); err != nil {
		return nil, r.fail(op, txHash, err)
	}
	if _, err := r.directory.FindUserByID(ctx, userID); err != nil {
		return nil, r.fail(op, txHash, err)
	}
	event, err := r.directory.FindEvent(ctx, eventID)
	if err != nil {
		return nil, r.fail(op, txHash, err)
	}

	o := applyOptions(opts)
	entry := &models.LedgerEntry{
		Amount:      amount,
		Direction:   models.DirectionCredit,
		TxHash:      txHash,
		Description: o.describe("Event registration reward: "+event.Name, txHash),
		Status:      o.status,
		UserID:      userID,
		EventID:     &event.ID,
		TradeType:   models.TradeTypeEventRegistration,
	}
	if err := r.commit(ctx, op, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordTransfer writes the sender's debit and the recipient's credit as one unit.
// The recipient is whoever owns recipientAddress; its leg is stored under txHash+CreditLegSuffix.
func (r *TransactionRecorder) RecordTransfer(ctx context.Context, senderID int64, amount decimal.Decimal, txHash, recipientAddress string, opts ...RecordOption) (*TransferRecord, error) {
	const op = models.TradeTypeTransfer

	if err := requirePositive(amount); err != nil {
		return nil, r.fail(op, txHash, err)
	}
	if txHash == "" || strings.HasSuffix(txHash, models.CreditLegSuffix) {
		return nil, r.fail(op, txHash, invalidArgument("a chain tx hash is required for transfers"))
	}

	sender, err := r.directory.FindUserByID(ctx, senderID)
	if err != nil {
		return nil, r.fail(op, txHash, err)
	}
	recipient, err := r.directory.FindUserByWallet(ctx, recipientAddress)
	if errors.Is(err, ErrUserNotFound) {
		return nil, r.fail(op, txHash, fmt.Errorf("%w: %s", ErrRecipientNotFound, recipientAddress))
	}
	if err != nil {
		return nil, r.fail(op, txHash, err)
	}
	if recipient.ID == sender.ID {
		return nil, r.fail(op, txHash, ErrSelfTransfer)
	}

	o := applyOptions(opts)
	debit := &models.LedgerEntry{
		Amount:              amount,
		Direction:           models.DirectionDebit,
		TxHash:              txHash,
		Description:         o.describe(fmt.Sprintf("Sent gold to %s (%s...)", recipient.Username, shortAddress(recipientAddress)), txHash),
		Status:              o.status,
		UserID:              sender.ID,
		CounterpartyAddress: recipientAddress,
		TradeType:           models.TradeTypeTransfer,
	}
	credit := &models.LedgerEntry{
		Amount:              amount,
		Direction:           models.DirectionCredit,
		TxHash:              txHash + models.CreditLegSuffix,
		Description:         o.describe("Received gold from "+sender.Username, txHash),
		Status:              o.status,
		UserID:              recipient.ID,
		CounterpartyAddress: sender.WalletAddress,
		TradeType:           models.TradeTypeTransfer,
	}

	if err := r.commit(ctx, op, debit, credit); err != nil {
		return nil, err
	}
	r.audit.LogTransfer(txHash, sender.ID, recipient.ID, amount)
	return &TransferRecord{Debit: debit, Credit: credit}, nil
}

// RecordTradeCreation debits buyerID for opening an escrow trade with sellerAddress.
func (r *TransactionRecorder) RecordTradeCreation(ctx context.Context, buyerID int64, sellerAddress, itemName, itemCategory string, amount decimal.Decimal, txHash string, opts ...RecordOption) (*models.LedgerEntry, error) {
	const op = models.TradeTypeTradeCreation

	if err := requireNonNegative(amount); err != nil {
		return nil, r.fail(op, txHash, err)
	}
	if strings.TrimSpace(itemName) == "" {
		return nil, r.fail(op, txHash, invalidArgument("item name is required"))
	}
	if _, err := r.directory.FindUserByID(ctx, buyerID); err != nil {
		return nil, r.fail(op, txHash, err)
	}

	o := applyOptions(opts)
	entry := &models.LedgerEntry{
		Amount:              amount,
		Direction:           models.DirectionDebit,
		TxHash:              txHash,
		Description:         o.describe("Trade creation for "+itemName, txHash),
		Status:              o.status,
		UserID:              buyerID,
		CounterpartyAddress: sellerAddress,
		TradeType:           models.TradeTypeTradeCreation,
		ItemName:            itemName,
		ItemCategory:        itemCategory,
	}
	if err := r.commit(ctx, op, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordTradeConfirmation marks the buyer's confirmation of a trade. It moves no gold.
func (r *TransactionRecorder) RecordTradeConfirmation(ctx context.Context, buyerID int64, itemName, txHash string, opts ...RecordOption) (*models.LedgerEntry, error) {
	return r.recordTradeOutcome(ctx, models.TradeTypeTradeConfirmation, models.DirectionDebit, "Trade confirmation for ", buyerID, itemName, txHash, opts)
}

// RecordTradeCancellation marks the cancellation of a trade. It moves no gold.
func (r *TransactionRecorder) RecordTradeCancellation(ctx context.Context, buyerID int64, itemName, txHash string, opts ...RecordOption) (*models.LedgerEntry, error) {
	return r.recordTradeOutcome(ctx, models.TradeTypeTradeCancellation, models.DirectionCredit, "Trade cancellation for ", buyerID, itemName, txHash, opts)
}

func (r *TransactionRecorder) recordTradeOutcome(ctx context.Context, op string, direction models.Direction, prefix string, buyerID int64, itemName, txHash string, opts []RecordOption) (*models.LedgerEntry, error) {
	if strings.TrimSpace(itemName) == "" {
		return nil, r.fail(op, txHash, invalidArgument("item name is required"))
	}
	if _, err := r.directory.FindUserByID(ctx, buyerID); err != nil {
		return nil, r.fail(op, txHash, err)
	}

	o := applyOptions(opts)
	entry := &models.LedgerEntry{
		Amount:      decimal.Zero,
		Direction:   direction,
		TxHash:      txHash,
		Description: o.describe(prefix+itemName, txHash),
		Status:      o.status,
		UserID:      buyerID,
		TradeType:   op,
		ItemName:    itemName,
	}
	if err := r.commit(ctx, op, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordTokenMinting credits the owner of toAddress with newly minted gold.
func (r *TransactionRecorder) RecordTokenMinting(ctx context.Context, toAddress string, amount decimal.Decimal, txHash string, opts ...RecordOption) (*models.LedgerEntry, error) {
	const op = models.TradeTypeTokenMinting

	if err := requirePositive(amount); err != nil {
		return nil, r.fail(op, txHash, err)
	}
	owner, err := r.directory.FindUserByWallet(ctx, toAddress)
	if errors.Is(err, ErrUserNotFound) {
		return nil, r.fail(op, txHash, fmt.Errorf("%w: %s", ErrRecipientNotFound, toAddress))
	}
	if err != nil {
		return nil, r.fail(op, txHash, err)
	}

	o := applyOptions(opts)
	entry := &models.LedgerEntry{
		Amount:              amount,
		Direction:           models.DirectionCredit,
		TxHash:              txHash,
		Description:         o.describe(fmt.Sprintf("Token minting to %s...", shortAddress(toAddress)), txHash),
		Status:              o.status,
		UserID:              owner.ID,
		CounterpartyAddress: toAddress,
		TradeType:           models.TradeTypeTokenMinting,
	}
	if err := r.commit(ctx, op, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordP2PTrade debits userID for a peer-to-peer trade with counterpartyAddress.
func (r *TransactionRecorder) RecordP2PTrade(ctx context.Context, userID int64, amount decimal.Decimal, txHash, itemName, itemCategory, counterpartyAddress string, opts ...RecordOption) (*models.LedgerEntry, error) {
	const op = models.TradeTypeP2PTrade

	if err := requireNonNegative(amount); err != nil {
		return nil, r.fail(op, txHash, err)
	}
	if _, err := r.directory.FindUserByID(ctx, userID); err != nil {
		return nil, r.fail(op, txHash, err)
	}

	o := applyOptions(opts)
	entry := &models.LedgerEntry{
		Amount:              amount,
		Direction:           models.DirectionDebit,
		TxHash:              txHash,
		Description:         o.describe("P2P trade: "+itemName, txHash),
		Status:              o.status,
		UserID:              userID,
		CounterpartyAddress: counterpartyAddress,
		TradeType:           models.TradeTypeP2PTrade,
		ItemName:            itemName,
		ItemCategory:        itemCategory,
	}
	if err := r.commit(ctx, op, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *TransactionRecorder) commit(ctx context.Context, op string, entries ...*models.LedgerEntry) error {
	err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
		for _, e := range entries {
			if err := r.store.InsertTx(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// ids handed out before the rollback no longer exist
		for _, e := range entries {
			e.ID = 0
			e.CreatedAt = time.Time{}
		}
		return r.fail(op, entries[0].TxHash, err)
	}

	userIDs := make([]int64, 0, len(entries))
	for _, e := range entries {
		ledgerEntriesRecorded.WithLabelValues(e.TradeType, string(e.Direction)).Inc()
		r.audit.LogEntry(strings.ToUpper(op), e)
		userIDs = append(userIDs, e.UserID)
	}
	if r.stats != nil {
		r.stats.Invalidate(ctx, userIDs...)
	}
	return nil
}

func (r *TransactionRecorder) fail(op, txHash string, err error) error {
	ledgerRecordFailures.WithLabelValues(op, errorReason(err)).Inc()
	r.log.WithFields(logrus.Fields{
		"operation": op,
		"tx_hash":   txHash,
		"error":     err.Error(),
	}).Warn("Ledger record rejected")
	r.audit.LogError(strings.ToUpper(op), txHash, err)
	return err
}

func requireNonNegative(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return invalidArgument("amount must not be negative, got %s", amount)
	}
	return nil
}

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidArgument("amount must be positive, got %s", amount)
	}
	return nil
}

func shortAddress(address string) string {
	if len(address) <= 8 {
		return address
	}
	return address[:8]
}
