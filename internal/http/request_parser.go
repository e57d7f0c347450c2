// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// Bodies may be JSON objects or form-encoded; both are read through the same
// key lookup and turned into validated drafts.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fintrack/internal/analytics"
	"fintrack/internal/config"
	"fintrack/internal/core"
)

const maxBodyBytes = 64 << 10

// RequestBodyParser handles different content types for request body parsing.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
	parsed   bool
	err      error
}

// NewRequestBodyParser reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := strings.TrimSpace(string(p.body))
	if trimmed == "" {
		p.formData = url.Values{}
		return nil
	}

	if trimmed[0] == '{' {
		// Numbers stay json.Number so amounts never pass through float64.
		dec := json.NewDecoder(strings.NewReader(trimmed))
		dec.UseNumber()
		p.jsonData = make(map[string]any)
		if err := dec.Decode(&p.jsonData); err != nil {
			p.jsonData = nil
			p.err = fmt.Errorf("invalid JSON body: %w", err)
			return p.err
		}
		if dec.More() {
			p.jsonData = nil
			p.err = errors.New("invalid JSON body: trailing data after object")
			return p.err
		}
		return nil
	}
	if trimmed[0] == '[' {
		p.err = errors.New("invalid JSON body: expected an object")
		return p.err
	}

	p.formData, p.err = url.ParseQuery(trimmed)
	return p.err
}

// Get returns a trimmed, sanitized string value from the parsed data.
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ParseTransactionDraft builds and validates a transaction intent.
func ParseTransactionDraft(p *RequestBodyParser) (core.TransactionDraft, error) {
	amount, err := core.ParseAmount(p.Get("amount"))
	if err != nil {
		return core.TransactionDraft{}, err
	}

	var date core.Date
	if v := p.Get("date"); v != "" {
		if date, err = core.ParseDate(v); err != nil {
			return core.TransactionDraft{}, err
		}
	}

	d := core.TransactionDraft{
		Type:        core.TransactionType(strings.ToLower(p.Get("type"))),
		Amount:      amount,
		Category:    p.Get("category"),
		Description: p.Get("description"),
		Date:        date,
	}
	if err := d.Validate(); err != nil {
		return core.TransactionDraft{}, err
	}
	return d, nil
}

// ParseCategoryDraft builds and validates a category intent.
func ParseCategoryDraft(p *RequestBodyParser) (core.CategoryDraft, error) {
	d := core.CategoryDraft{
		Name:  p.Get("name"),
		Type:  core.TransactionType(strings.ToLower(p.Get("type"))),
		Icon:  p.Get("icon"),
		Color: p.Get("color"),
	}
	if err := d.Validate(); err != nil {
		return core.CategoryDraft{}, err
	}
	return d, nil
}

// ParseBudgetDraft builds and validates a budget upsert intent. A missing
// period means monthly.
func ParseBudgetDraft(p *RequestBodyParser) (core.BudgetDraft, error) {
	limit, err := core.ParseLimit(p.Get("limit"))
	if err != nil {
		return core.BudgetDraft{}, err
	}

	period := core.Period(strings.ToLower(p.Get("period")))
	if period == "" {
		period = core.Monthly
	}

	d := core.BudgetDraft{
		ID:       p.Get("id"),
		Category: p.Get("category"),
		Limit:    limit,
		Period:   period,
	}
	if err := d.Validate(); err != nil {
		return core.BudgetDraft{}, err
	}
	return d, nil
}

// ParseFilter reads type, category and limit from the query string.
func ParseFilter(query url.Values) (analytics.Filter, error) {
	f := analytics.Filter{
		Type:     core.TransactionType(strings.ToLower(strings.TrimSpace(query.Get("type")))),
		Category: strings.TrimSpace(query.Get("category")),
	}
	if f.Type != "" && !f.Type.IsValid() {
		return analytics.Filter{}, core.ErrInvalidType
	}
	if v := strings.TrimSpace(query.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return analytics.Filter{}, fmt.Errorf("invalid limit %q: must be a non-negative integer", v)
		}
		f.Limit = n
	}
	return f, nil
}

// ParseMonths reads the trend window; 0 means the configured default.
func ParseMonths(query url.Values) (int, error) {
	v := strings.TrimSpace(query.Get("months"))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > config.MaxTrendMonths {
		return 0, fmt.Errorf("invalid months %q: must be between 1 and %d", v, config.MaxTrendMonths)
	}
	return n, nil
}
