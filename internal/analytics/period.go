// Package analytics derives statistics, breakdowns, trends and budget
// status from in-memory collections. Every function is pure.
//
// This file implements the period window strategies used by budgets. Each
// period has a strategy that returns the inclusive start of the window
// containing now.
package analytics

import (
	"time"

	"fintrack/internal/core"
)

// PeriodWindow computes the inclusive start date of a budget period.
type PeriodWindow interface {
	Start(now time.Time) core.Date
}

// WeeklyWindow starts seven calendar days before today.
type WeeklyWindow struct{}

// Start subtracts days on the calendar, so month and year boundaries
// normalize through time.Date rather than a fixed 168h offset.
func (WeeklyWindow) Start(now time.Time) core.Date {
	return core.NewDate(now.Year(), int(now.Month()), now.Day()-7)
}

// MonthlyWindow starts on the first day of the current month.
type MonthlyWindow struct{}

func (MonthlyWindow) Start(now time.Time) core.Date {
	return core.NewDate(now.Year(), int(now.Month()), 1)
}

// YearlyWindow starts on January 1 of the current year.
type YearlyWindow struct{}

func (YearlyWindow) Start(now time.Time) core.Date {
	return core.NewDate(now.Year(), 1, 1)
}

var periodWindows = map[core.Period]PeriodWindow{
	core.Weekly:  WeeklyWindow{},
	core.Monthly: MonthlyWindow{},
	core.Yearly:  YearlyWindow{},
}

// WindowFor returns the strategy for p. Unknown or empty periods are monthly.
func WindowFor(p core.Period) PeriodWindow {
	if w, ok := periodWindows[p]; ok {
		return w
	}
	return MonthlyWindow{}
}

// PeriodStart is shorthand for WindowFor(p).Start(now).
func PeriodStart(p core.Period, now time.Time) core.Date {
	return WindowFor(p).Start(now)
}
