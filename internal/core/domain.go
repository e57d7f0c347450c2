package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// maxDescriptionLen bounds free-text descriptions accepted at the intent boundary.
const maxDescriptionLen = 200

type (
	TransactionType string

	// Period is the recurrence window of a budget.
	Period string

	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"` // Category name, not an enforced reference
		Description string          `json:"description"`
		Date        Date            `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// TransactionDraft is an add intent; the coordinator assigns ID and CreatedAt.
	TransactionDraft struct {
		Type        TransactionType `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
	}

	Category struct {
		ID    string          `json:"id" yaml:"id"`
		Name  string          `json:"name" yaml:"name"`
		Type  TransactionType `json:"type" yaml:"type"`
		Icon  string          `json:"icon" yaml:"icon"`
		Color string          `json:"color" yaml:"color"`
	}

	CategoryDraft struct {
		Name  string          `json:"name"`
		Type  TransactionType `json:"type"`
		Icon  string          `json:"icon"`
		Color string          `json:"color"`
	}

	Budget struct {
		ID       string          `json:"id"`
		Category string          `json:"category"`
		Limit    decimal.Decimal `json:"limit"`
		Period   Period          `json:"period"`
		// Spent is kept in the persisted record only. Status is always
		// recomputed from transactions and never reads this value.
		Spent decimal.Decimal `json:"spent"`
	}

	// BudgetDraft is an upsert intent keyed by Category. ID is optional.
	BudgetDraft struct {
		ID       string          `json:"id,omitempty"`
		Category string          `json:"category"`
		Limit    decimal.Decimal `json:"limit"`
		Period   Period          `json:"period"`
	}
)

var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidPeriod    = errors.New("invalid budget period")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidLimit     = errors.New("budget limit must be positive")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyName        = errors.New("empty category name")
	ErrZeroDate         = errors.New("date cannot be zero")
)

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (p Period) IsValid() bool {
	switch p {
	case Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}

// Validate checks the draft at the intent boundary (HTTP, CLI).
func (d TransactionDraft) Validate() error {
	if !d.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, d.Type)
	}
	if d.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(d.Description) > maxDescriptionLen {
		return fmt.Errorf("description too long (max %d characters)", maxDescriptionLen)
	}
	return d.Date.Validate()
}

func (d CategoryDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, d.Type)
	}
	return nil
}

func (d BudgetDraft) Validate() error {
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if !d.Limit.IsPositive() {
		return ErrInvalidLimit
	}
	if !d.Period.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, d.Period)
	}
	return nil
}
