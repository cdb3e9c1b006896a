package models

import "github.com/shopspring/decimal"

// User is the minimal account view the ledger needs from the user directory.
type User struct {
	ID            int64  `json:"id" db:"id"`
	Username      string `json:"username" db:"username"`
	WalletAddress string `json:"wallet_address,omitempty" db:"wallet_address"`
}

// Item is a purchasable reward.
type Item struct {
	ID    int64           `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Price decimal.Decimal `json:"price" db:"price"`
}

// Event is a campus event users register for to earn Swingold.
type Event struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
}
