package services

import "time"

// CalendarCell is one day slot of the month grid. Day is 0 for padding cells outside the month.
type CalendarCell struct {
	Day      int
	Date     string
	HasMeals bool
}

func (c CalendarCell) Blank() bool { return c.Day == 0 }

type MonthAnchor struct {
	Year  int
	Month time.Month
}

func (a MonthAnchor) Name() string { return a.Month.String() }

// MonthAnchors returns the months before and after year/month, rolling over the year.
func MonthAnchors(year int, month time.Month) (prev, next MonthAnchor) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	p := first.AddDate(0, -1, 0)
	n := first.AddDate(0, 1, 0)
	return MonthAnchor{p.Year(), p.Month()}, MonthAnchor{n.Year(), n.Month()}
}

// BuildMonthGrid lays the month out in Monday-first weeks. Cells before the 1st and after the
// last day are blank; hasMeals is keyed by YYYY-MM-DD.
func BuildMonthGrid(year int, month time.Month, hasMeals map[string]bool) [][]CalendarCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7

	var weeks [][]CalendarCell
	week := make([]CalendarCell, offset, 7)
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		week = append(week, CalendarCell{Day: d, Date: date, HasMeals: hasMeals[date]})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]CalendarCell, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, CalendarCell{})
		}
		weeks = append(weeks, week)
	}
	return weeks
}
