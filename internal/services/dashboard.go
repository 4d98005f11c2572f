package services

import "fittrack/internal/models"

// GoalProgress compares one nutrient's intake with the profile goal.
type GoalProgress struct {
	Name      string
	Consumed  float64
	Goal      float64
	Remaining float64
	Percent   int
}

type DashboardSummary struct {
	Day        *DayView
	Profile    *models.UserProfile
	Progress   []GoalProgress
	HasProfile bool
}

func progress(name string, consumed, goal float64) GoalProgress {
	g := GoalProgress{Name: name, Consumed: consumed, Goal: goal, Remaining: goal - consumed}
	if goal > 0 {
		g.Percent = int(consumed / goal * 100)
	}
	return g
}

// BuildDashboard pairs the day's totals with the profile goals. Without a profile only the
// totals are reported.
func BuildDashboard(day *DayView, p *models.UserProfile) DashboardSummary {
	out := DashboardSummary{Day: day, Profile: p, HasProfile: p != nil}
	if p == nil {
		return out
	}
	out.Progress = []GoalProgress{
		progress("Calories", day.Totals.Calories, float64(p.DailyCalorieGoal)),
		progress("Protein", day.Totals.Protein, float64(p.ProteinGoal)),
		progress("Carbs", day.Totals.Carbs, float64(p.CarbsGoal)),
		progress("Fat", day.Totals.Fat, float64(p.FatGoal)),
	}
	return out
}
