package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/swingold/backend/internal/models"
)

// Directory is the read-only view of users, items and events the ledger validates against.
type Directory struct {
	db *sql.DB
}

func NewDirectory(db *sql.DB) *Directory {
	return &Directory{db: db}
}

// FindUserByID returns the user with the given id.
func (d *Directory) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	var (
		u      models.User
		wallet sql.NullString
	)
	err := d.db.QueryRowContext(ctx, `SELECT id, username, wallet_address FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &wallet)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, storeError("find user", err)
	}
	u.WalletAddress = wallet.String
	return &u, nil
}

// FindUserByWallet resolves the owner of a wallet address, ignoring checksum casing.
func (d *Directory) FindUserByWallet(ctx context.Context, address string) (*models.User, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, invalidArgument("wallet address is required")
	}

	var (
		u      models.User
		wallet sql.NullString
	)
	err := d.db.QueryRowContext(ctx, `SELECT id, username, wallet_address FROM users WHERE LOWER(wallet_address) = LOWER($1)`, address).
		Scan(&u.ID, &u.Username, &wallet)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: address=%s", ErrUserNotFound, address)
	}
	if err != nil {
		return nil, storeError("find user by wallet", err)
	}
	u.WalletAddress = wallet.String
	return &u, nil
}

// FindItem returns the item with the given id.
func (d *Directory) FindItem(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := d.db.QueryRowContext(ctx, `SELECT id, name, price FROM items WHERE id = $1`, id).
		Scan(&item.ID, &item.Name, &item.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, storeError("find item", err)
	}
	return &item, nil
}

// FindEvent returns the event with the given id.
func (d *Directory) FindEvent(ctx context.Context, id int64) (*models.Event, error) {
	var ev models.Event
	err := d.db.QueryRowContext(ctx, `SELECT id, name, category FROM events WHERE id = $1`, id).
		Scan(&ev.ID, &ev.Name, &ev.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrEventNotFound, id)
	}
	if err != nil {
		return nil, storeError("find event", err)
	}
	return &ev, nil
}
