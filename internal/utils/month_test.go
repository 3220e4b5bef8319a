package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-08", MonthKey(time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, "2026-01", MonthKey(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Non-UTC times normalize to UTC before formatting.
	loc := time.FixedZone("UTC+5", 5*3600)
	assert.Equal(t, "2026-08", MonthKey(time.Date(2026, 9, 1, 3, 0, 0, 0, loc)))
}

func TestPrevMonthKey(t *testing.T) {
	assert.Equal(t, "2026-07", PrevMonthKey(time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)))

	// Year boundary
	assert.Equal(t, "2025-12", PrevMonthKey(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))

	// March rolls back to February regardless of day-count differences.
	assert.Equal(t, "2026-02", PrevMonthKey(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestIsMonthKey(t *testing.T) {
	assert.True(t, IsMonthKey("2026-08"))
	assert.True(t, IsMonthKey("1999-01"))

	assert.False(t, IsMonthKey("2026-13"))
	assert.False(t, IsMonthKey("2026-8"))
	assert.False(t, IsMonthKey("2026/08"))
	assert.False(t, IsMonthKey("2026-08-01"))
	assert.False(t, IsMonthKey(""))
}
