package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/swingold/backend/internal/models"
)

// PostgreSQL SQLSTATE codes the store translates
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MaxPageLimit bounds a single ledger page.
const MaxPageLimit = 1000

const entryColumns = `id, amount, direction, tx_hash, description, status, user_id, event_id, item_id,
	counterparty_address, trade_type, item_name, item_category, block_number, gas_used, gas_price, mined_at, created_at`

// LedgerStore is the durable, append-mostly table of ledger entries.
// Rows are only ever inserted or moved out of pending; nothing is deleted.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// WithTx runs fn inside one database transaction, committing only if fn succeeds.
func (s *LedgerStore) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storeError("commit transaction", err)
	}
	return nil
}

// Insert persists e and fills in its ID and CreatedAt.
func (s *LedgerStore) Insert(ctx context.Context, e *models.LedgerEntry) error {
	return s.insert(ctx, s.db, e)
}

// InsertTx is Insert inside the caller's transaction.
func (s *LedgerStore) InsertTx(ctx context.Context, tx *sql.Tx, e *models.LedgerEntry) error {
	return s.insert(ctx, tx, e)
}

func (s *LedgerStore) insert(ctx context.Context, q rowQuerier, e *models.LedgerEntry) error {
	if err := validateEntry(e); err != nil {
		return err
	}

	err := q.QueryRowContext(ctx, `
		INSERT INTO ledger_entries (amount, direction, tx_hash, description, status, user_id, event_id, item_id,
			counterparty_address, trade_type, item_name, item_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`,
		e.Amount, string(e.Direction), nullString(e.TxHash), e.Description, string(e.Status), e.UserID,
		e.EventID, e.ItemID, nullString(e.CounterpartyAddress), nullString(e.TradeType),
		nullString(e.ItemName), nullString(e.ItemCategory),
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return translatePQError("insert ledger entry", err)
	}
	return nil
}

// Get returns the entry with the given id.
func (s *LedgerStore) Get(ctx context.Context, id int64) (*models.LedgerEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE id = $1`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrEntryNotFound, id)
	}
	if err != nil {
		return nil, storeError("get ledger entry", err)
	}
	return e, nil
}

// FindByTxHash returns the entry recorded under hash.
func (s *LedgerStore) FindByTxHash(ctx context.Context, hash string) (*models.LedgerEntry, error) {
	if hash == "" {
		return nil, invalidArgument("tx hash is required")
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE tx_hash = $1`, hash)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: tx_hash=%s", ErrEntryNotFound, hash)
	}
	if err != nil {
		return nil, storeError("find ledger entry by hash", err)
	}
	return e, nil
}

// UpdateStatus moves a pending entry to status and stores the chain metadata with it.
// Confirmed and failed entries are terminal and reject any further update.
func (s *LedgerStore) UpdateStatus(ctx context.Context, id int64, status models.Status, meta models.ChainMetadata) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE ledger_entries
		SET status = $1, block_number = $2, gas_used = $3, gas_price = $4, mined_at = $5
		WHERE id = $6 AND status = 'pending'`,
		string(status), meta.BlockNumber, meta.GasUsed, meta.GasPrice, meta.MinedAt, id)
	if err != nil {
		return storeError("update ledger status", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return storeError("update ledger status", err)
	}
	if rowsAffected == 1 {
		return nil
	}

	var current string
	err = s.db.QueryRowContext(ctx, `SELECT status FROM ledger_entries WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id=%d", ErrEntryNotFound, id)
	}
	if err != nil {
		return storeError("read ledger status", err)
	}
	return fmt.Errorf("%w: entry %d is already %s", ErrInvalidTransition, id, current)
}

// Query lists entries matching f, newest first.
func (s *LedgerStore) Query(ctx context.Context, f models.LedgerFilter, p models.Page) ([]*models.LedgerEntry, error) {
	if err := validatePage(p); err != nil {
		return nil, err
	}

	where, args := buildFilter(f)
	args = append(args, p.Limit, p.Offset)
	query := fmt.Sprintf(`SELECT %s FROM ledger_entries%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		entryColumns, where, len(args)-1, len(args))

	return s.list(ctx, "query ledger", query, args...)
}

// Count returns how many entries match f.
func (s *LedgerStore) Count(ctx context.Context, f models.LedgerFilter) (int64, error) {
	where, args := buildFilter(f)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_entries`+where, args...).Scan(&total); err != nil {
		return 0, storeError("count ledger", err)
	}
	return total, nil
}

// ListPending returns up to limit pending entries, oldest first.
func (s *LedgerStore) ListPending(ctx context.Context, limit int) ([]*models.LedgerEntry, error) {
	if err := validatePage(models.Page{Limit: limit}); err != nil {
		return nil, err
	}
	return s.list(ctx, "list pending", `SELECT `+entryColumns+` FROM ledger_entries
		WHERE status = 'pending' ORDER BY created_at ASC, id ASC LIMIT $1`, limit)
}

func (s *LedgerStore) list(ctx context.Context, op, query string, args ...any) ([]*models.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	entries := []*models.LedgerEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, storeError(op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}
	return entries, nil
}

func scanEntry(row rowScanner) (*models.LedgerEntry, error) {
	var (
		e                 models.LedgerEntry
		direction, status string
		txHash            sql.NullString
		counterparty      sql.NullString
		tradeType         sql.NullString
		itemName          sql.NullString
		itemCategory      sql.NullString
	)

	err := row.Scan(&e.ID, &e.Amount, &direction, &txHash, &e.Description, &status, &e.UserID,
		&e.EventID, &e.ItemID, &counterparty, &tradeType, &itemName, &itemCategory,
		&e.BlockNumber, &e.GasUsed, &e.GasPrice, &e.MinedAt, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	e.Direction = models.Direction(direction)
	e.Status = models.Status(status)
	e.TxHash = txHash.String
	e.CounterpartyAddress = counterparty.String
	e.TradeType = tradeType.String
	e.ItemName = itemName.String
	e.ItemCategory = itemCategory.String
	return &e, nil
}

func buildFilter(f models.LedgerFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UserID != 0 {
		add("user_id = $%d", f.UserID)
	}
	if f.TradeType != "" {
		add("trade_type = $%d", f.TradeType)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Description != "" {
		add("description ILIKE $%d", "%"+escapeLike(f.Description)+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func validatePage(p models.Page) error {
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return invalidArgument("limit must be between 1 and %d, got %d", MaxPageLimit, p.Limit)
	}
	if p.Offset < 0 {
		return invalidArgument("offset must not be negative, got %d", p.Offset)
	}
	return nil
}

func validateEntry(e *models.LedgerEntry) error {
	switch {
	case e.Amount.IsNegative():
		return invalidArgument("amount must not be negative")
	case !e.Direction.Valid():
		return invalidArgument("unknown direction %q", e.Direction)
	case !e.Status.Valid():
		return invalidArgument("unknown status %q", e.Status)
	case e.UserID <= 0:
		return invalidArgument("user id is required")
	}
	return nil
}

func translatePQError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateTxHash, pqErr.Detail)
		case pgForeignKeyViolation:
			switch {
			case strings.Contains(pqErr.Constraint, "item"):
				return fmt.Errorf("%w: %s", ErrItemNotFound, pqErr.Detail)
			case strings.Contains(pqErr.Constraint, "event"):
				return fmt.Errorf("%w: %s", ErrEventNotFound, pqErr.Detail)
			default:
				return fmt.Errorf("%w: %s", ErrUserNotFound, pqErr.Detail)
			}
		case pgCheckViolation:
			return invalidArgument("%s", pqErr.Message)
		}
	}
	return storeError(op, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
