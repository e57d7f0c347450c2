package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, 2, 28), d)

	d, err = ParseDate("2025-02-28T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, 2, 28), d)

	_, err = ParseDate("28/02/2025")
	assert.Error(t, err)
}

func TestNewDateNormalizes(t *testing.T) {
	assert.Equal(t, NewDate(2024, 12, 31), NewDate(2025, 1, 0))
	assert.Equal(t, NewDate(2024, 12, 29), NewDate(2025, 1, 5-7))
}

func TestDateJSONRoundTrip(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}
	b, err := json.Marshal(wrapper{Date: NewDate(2025, 7, 4)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-07-04"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-07-04"}`), &w))
	assert.Equal(t, NewDate(2025, 7, 4), w.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"July 4"}`), &w))
}

func TestDateSameMonth(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.True(t, NewDate(2025, 3, 1).SameMonth(now))
	assert.False(t, NewDate(2024, 3, 1).SameMonth(now))
	assert.False(t, NewDate(2025, 2, 28).SameMonth(now))
}
