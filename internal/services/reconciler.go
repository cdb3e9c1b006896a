package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/swingold/backend/internal/chain"
	"github.com/swingold/backend/internal/models"
)

const chainStatusKeyPrefix = "chain:status:"

// ReconcilerConfig holds the chain call timeout and how long settled chain answers are cached.
type ReconcilerConfig struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

// ChainReconciler moves pending ledger entries to the status the chain reports for them.
type ChainReconciler struct {
	chain    chain.Client
	store    *LedgerStore
	redis    *redis.Client
	stats    statsInvalidator
	timeout  time.Duration
	cacheTTL time.Duration
	audit    *AuditLogger
	log      *logrus.Logger
}

func NewChainReconciler(client chain.Client, store *LedgerStore, redisClient *redis.Client, stats statsInvalidator, cfg ReconcilerConfig, logger *logrus.Logger) *ChainReconciler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &ChainReconciler{
		chain:    client,
		store:    store,
		redis:    redisClient,
		stats:    stats,
		timeout:  cfg.Timeout,
		cacheTTL: cfg.CacheTTL,
		audit:    NewAuditLogger(logger),
		log:      logger,
	}
}

// FetchChainStatus asks the chain what happened to hash.
// A transaction the node knows about but has not mined yet reports StatusPending.
func (r *ChainReconciler) FetchChainStatus(ctx context.Context, hash string) (*models.ChainStatus, error) {
	hash = strings.TrimSuffix(hash, models.CreditLegSuffix)
	if hash == "" {
		return nil, invalidArgument("tx hash is required")
	}

	if cached := r.cachedStatus(ctx, hash); cached != nil {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var receipt *chain.Receipt
	err := r.observe("receipt", func() (err error) {
		receipt, err = r.chain.TransactionReceipt(ctx, hash)
		return err
	})
	if errors.Is(err, chain.ErrNotFound) {
		return r.unminedStatus(ctx, hash)
	}
	if err != nil {
		return nil, chainError(hash, err)
	}

	status := &models.ChainStatus{TxHash: hash, Status: models.StatusFailed}
	if receipt.Succeeded {
		status.Status = models.StatusConfirmed
	}
	block := int64(receipt.BlockNumber)
	gasUsed := int64(receipt.GasUsed)
	status.BlockNumber = &block
	status.GasUsed = &gasUsed
	if receipt.EffectiveGasPrice != nil {
		status.GasPrice = decimal.NewNullDecimal(decimal.NewFromBigInt(receipt.EffectiveGasPrice, 0))
	}

	var minedAt time.Time
	err = r.observe("block_time", func() (err error) {
		minedAt, err = r.chain.BlockTime(ctx, receipt.BlockNumber)
		return err
	})
	if err != nil {
		return nil, chainError(hash, err)
	}
	status.MinedAt = &minedAt

	r.cacheStatus(ctx, status)
	return status, nil
}

// unminedStatus reports a transaction still waiting in the mempool, with the gas price it offers.
func (r *ChainReconciler) unminedStatus(ctx context.Context, hash string) (*models.ChainStatus, error) {
	var tx *chain.Transaction
	err := r.observe("transaction", func() (err error) {
		tx, err = r.chain.Transaction(ctx, hash)
		return err
	})
	if err != nil {
		return nil, chainError(hash, err)
	}

	status := &models.ChainStatus{TxHash: hash, Status: models.StatusPending}
	if tx.GasPrice != nil {
		status.GasPrice = decimal.NewNullDecimal(decimal.NewFromBigInt(tx.GasPrice, 0))
	}
	return status, nil
}

// Sync reconciles one entry. Settled entries are returned as stored without touching the chain.
func (r *ChainReconciler) Sync(ctx context.Context, entryID int64) (*models.LedgerEntry, error) {
	entry, err := r.store.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status.Terminal() {
		chainSyncs.WithLabelValues("noop").Inc()
		return entry, nil
	}
	if entry.TxHash == "" {
		return nil, invalidArgument("entry %d has no tx hash to reconcile", entryID)
	}

	status, err := r.FetchChainStatus(ctx, entry.ChainTxHash())
	if err != nil {
		chainSyncs.WithLabelValues(errorReason(err)).Inc()
		r.log.WithFields(logrus.Fields{
			"entry_id": entry.ID,
			"tx_hash":  entry.TxHash,
			"error":    err.Error(),
		}).Warn("Chain sync failed, entry left pending")
		return nil, err
	}
	if status.Status == models.StatusPending {
		chainSyncs.WithLabelValues("still_pending").Inc()
		return entry, nil
	}

	err = r.store.UpdateStatus(ctx, entry.ID, status.Status, status.Metadata())
	if errors.Is(err, ErrInvalidTransition) {
		// settled concurrently
		chainSyncs.WithLabelValues("raced").Inc()
		return r.store.Get(ctx, entry.ID)
	}
	if err != nil {
		chainSyncs.WithLabelValues(errorReason(err)).Inc()
		return nil, err
	}

	from := entry.Status
	entry.Status = status.Status
	entry.BlockNumber = status.BlockNumber
	entry.GasUsed = status.GasUsed
	entry.GasPrice = status.GasPrice
	entry.MinedAt = status.MinedAt

	chainSyncs.WithLabelValues(string(status.Status)).Inc()
	r.audit.LogStatusChange(entry, from)
	touched := []int64{entry.UserID}
	if other := r.settleOtherLeg(ctx, entry, status); other != nil {
		touched = append(touched, other.UserID)
	}
	if r.stats != nil {
		r.stats.Invalidate(ctx, touched...)
	}
	return entry, nil
}

// settleOtherLeg applies status to the second leg of a transfer, which mirrors the
// same chain transaction. It returns the leg it moved, or nil. Failures are logged
// only: the requested entry is already settled and the sweep retries the other one.
func (r *ChainReconciler) settleOtherLeg(ctx context.Context, entry *models.LedgerEntry, status *models.ChainStatus) *models.LedgerEntry {
	if entry.TradeType != models.TradeTypeTransfer {
		return nil
	}
	otherHash := entry.ChainTxHash() + models.CreditLegSuffix
	if entry.TxHash == otherHash {
		otherHash = entry.ChainTxHash()
	}

	other, err := r.store.FindByTxHash(ctx, otherHash)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		r.log.WithError(err).WithField("tx_hash", otherHash).Warn("Transfer leg lookup failed")
		return nil
	}
	if other.Status.Terminal() {
		return nil
	}

	err = r.store.UpdateStatus(ctx, other.ID, status.Status, status.Metadata())
	if errors.Is(err, ErrInvalidTransition) {
		return nil
	}
	if err != nil {
		r.log.WithError(err).WithField("entry_id", other.ID).Warn("Transfer leg left pending")
		return nil
	}

	from := other.Status
	other.Status = status.Status
	other.BlockNumber = status.BlockNumber
	other.GasUsed = status.GasUsed
	other.GasPrice = status.GasPrice
	other.MinedAt = status.MinedAt
	chainSyncs.WithLabelValues(string(status.Status)).Inc()
	r.audit.LogStatusChange(other, from)
	return other
}

// SyncByTxHash reconciles the entry recorded under hash.
func (r *ChainReconciler) SyncByTxHash(ctx context.Context, hash string) (*models.LedgerEntry, error) {
	entry, err := r.store.FindByTxHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	return r.Sync(ctx, entry.ID)
}

// Details returns the stored entry for hash next to the chain's current view of it.
func (r *ChainReconciler) Details(ctx context.Context, hash string) (*models.TransactionDetails, error) {
	entry, err := r.store.FindByTxHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	status, err := r.FetchChainStatus(ctx, entry.ChainTxHash())
	if err != nil {
		return nil, err
	}
	return &models.TransactionDetails{Entry: entry, Chain: status}, nil
}

// Balance returns the on-chain token balance of address in base units.
func (r *ChainReconciler) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var balance decimal.Decimal
	err := r.observe("balance", func() error {
		bal, err := r.chain.TokenBalance(ctx, address)
		if err != nil {
			return err
		}
		balance = decimal.NewFromBigInt(bal, 0)
		return nil
	})
	if errors.Is(err, chain.ErrInvalidAddress) {
		return decimal.Zero, invalidArgument("%s", err.Error())
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrChainUnavailable, err)
	}
	return balance, nil
}

// SweepResult counts what one sweep did.
type SweepResult struct {
	RunID     string `json:"run_id"`
	Scanned   int    `json:"scanned"`
	Settled   int    `json:"settled"`
	StillOpen int    `json:"still_open"`
	Failed    int    `json:"failed"`
}

// SweepPending tries to settle up to batch of the oldest pending entries.
// Per-entry chain errors are counted and logged; the sweep carries on.
func (r *ChainReconciler) SweepPending(ctx context.Context, batch int) (*SweepResult, error) {
	pending, err := r.store.ListPending(ctx, batch)
	if err != nil {
		return nil, err
	}

	res := &SweepResult{RunID: uuid.New().String(), Scanned: len(pending)}
	for _, e := range pending {
		if ctx.Err() != nil {
			break
		}
		synced, err := r.Sync(ctx, e.ID)
		switch {
		case err != nil:
			res.Failed++
		case synced.Status.Terminal():
			res.Settled++
		default:
			res.StillOpen++
		}
	}

	r.log.WithFields(logrus.Fields{
		"run_id":     res.RunID,
		"scanned":    res.Scanned,
		"settled":    res.Settled,
		"still_open": res.StillOpen,
		"failed":     res.Failed,
	}).Info("Pending ledger sweep finished")
	return res, ctx.Err()
}

// RunSweeper calls SweepPending every interval until ctx is done.
func (r *ChainReconciler) RunSweeper(ctx context.Context, interval time.Duration, batch int) {
	if interval <= 0 {
		r.log.Info("Pending ledger sweeper disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.WithFields(logrus.Fields{"interval": interval.String(), "batch": batch}).Info("Pending ledger sweeper started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info("Pending ledger sweeper stopped")
			return
		case <-ticker.C:
			if _, err := r.SweepPending(ctx, batch); err != nil && ctx.Err() == nil {
				r.log.WithError(err).Error("Pending ledger sweep failed")
			}
		}
	}
}

func (r *ChainReconciler) observe(call string, fn func() error) error {
	start := time.Now()
	err := fn()
	chainRequestDuration.WithLabelValues(call).Observe(time.Since(start).Seconds())
	return err
}

func (r *ChainReconciler) cachedStatus(ctx context.Context, hash string) *models.ChainStatus {
	if r.redis == nil || r.cacheTTL <= 0 {
		return nil
	}
	raw, err := r.redis.Get(ctx, chainStatusKeyPrefix+hash).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.WithError(err).Debug("Chain status cache read failed")
		}
		return nil
	}
	var status models.ChainStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil
	}
	return &status
}

// cacheStatus stores settled answers only; a mined receipt never changes.
func (r *ChainReconciler) cacheStatus(ctx context.Context, status *models.ChainStatus) {
	if r.redis == nil || r.cacheTTL <= 0 || !status.Status.Terminal() {
		return
	}
	raw, err := json.Marshal(status)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, chainStatusKeyPrefix+status.TxHash, raw, r.cacheTTL).Err(); err != nil {
		r.log.WithError(err).Debug("Chain status cache write failed")
	}
}

func chainError(hash string, err error) error {
	if errors.Is(err, chain.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownTxHash, hash)
	}
	return fmt.Errorf("%w: %w", ErrChainUnavailable, err)
}
