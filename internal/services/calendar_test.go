package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthGridMondayFirst(t *testing.T) {
	// December 2024 starts on a Sunday and ends on a Tuesday.
	weeks := BuildMonthGrid(2024, time.December, map[string]bool{"2024-12-25": true})
	require.Len(t, weeks, 6)

	first := weeks[0]
	for i := 0; i < 6; i++ {
		assert.True(t, first[i].Blank(), "cell %d", i)
	}
	assert.Equal(t, 1, first[6].Day)
	assert.Equal(t, "2024-12-01", first[6].Date)

	last := weeks[5]
	assert.Equal(t, 30, last[0].Day)
	assert.Equal(t, 31, last[1].Day)
	for i := 2; i < 7; i++ {
		assert.True(t, last[i].Blank())
	}

	days := 0
	for _, w := range weeks {
		require.Len(t, w, 7)
		for _, c := range w {
			if !c.Blank() {
				days++
				assert.Equal(t, c.Date == "2024-12-25", c.HasMeals)
			}
		}
	}
	assert.Equal(t, 31, days)
}

func TestBuildMonthGridExactWeeks(t *testing.T) {
	// February 2021 starts on a Monday and has exactly four weeks.
	weeks := BuildMonthGrid(2021, time.February, nil)
	require.Len(t, weeks, 4)
	assert.Equal(t, 1, weeks[0][0].Day)
	assert.Equal(t, 28, weeks[3][6].Day)
}

func TestBuildMonthGridLeapYear(t *testing.T) {
	weeks := BuildMonthGrid(2024, time.February, nil)
	last := weeks[len(weeks)-1]
	maxDay := 0
	for _, c := range last {
		if c.Day > maxDay {
			maxDay = c.Day
		}
	}
	assert.Equal(t, 29, maxDay)
}

func TestMonthAnchorsRollOver(t *testing.T) {
	prev, next := MonthAnchors(2024, time.January)
	assert.Equal(t, MonthAnchor{2023, time.December}, prev)
	assert.Equal(t, MonthAnchor{2024, time.February}, next)

	prev, next = MonthAnchors(2024, time.December)
	assert.Equal(t, MonthAnchor{2024, time.November}, prev)
	assert.Equal(t, MonthAnchor{2025, time.January}, next)
	assert.Equal(t, "January", next.Name())
}
