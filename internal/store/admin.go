package store

import (
	"context"
	"time"
)

type Overview struct {
	TotalUsers      int `json:"total_users"`
	TotalProfiles   int `json:"total_profiles"`
	TotalMeals      int `json:"total_meals"`
	TotalComments   int `json:"total_comments"`
	MealsThisWeek   int `json:"meals_this_week"`
	ExercisesLogged int `json:"exercises_logged"`
}

// Overview gathers site-wide counters; weekStart bounds the "this week" figure.
func (s *Store) Overview(ctx context.Context, weekStart time.Time) (Overview, error) {
	var out Overview
	err := s.db.QueryRowxContext(ctx, `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM user_profiles),
		(SELECT COUNT(*) FROM meal_logs),
		(SELECT COUNT(*) FROM comments),
		(SELECT COUNT(*) FROM meal_logs WHERE date >= $1),
		(SELECT COUNT(*) FROM exercise_logs)`, weekStart).
		Scan(&out.TotalUsers, &out.TotalProfiles, &out.TotalMeals, &out.TotalComments, &out.MealsThisWeek, &out.ExercisesLogged)
	return out, err
}
