package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func tx(id string, typ core.TransactionType, amount int64, category string, date core.Date) core.Transaction {
	return core.Transaction{
		ID:          id,
		Type:        typ,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Description: id,
		Date:        date,
		CreatedAt:   date.Add(12 * time.Hour),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
