package models

import "github.com/shopspring/decimal"

// SpendingBreakdown splits a user's debits by what they were spent on.
type SpendingBreakdown struct {
	Events    decimal.Decimal `json:"events"`
	Items     decimal.Decimal `json:"items"`
	Transfers decimal.Decimal `json:"transfers"`
}

// UserStats is the spend/earn rollup for one user.
type UserStats struct {
	UserID             int64             `json:"user_id"`
	TotalSpent         decimal.Decimal   `json:"total_spent"`
	TotalEarned        decimal.Decimal   `json:"total_earned"`
	SpendingBreakdown  SpendingBreakdown `json:"spending_breakdown"`
	SpendingPercentage SpendingBreakdown `json:"spending_percentage"`
}
