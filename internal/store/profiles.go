package store

import (
	"context"
	"database/sql"
	"errors"

	"fittrack/internal/models"
)

const profileColumns = `id, user_id, age, gender, height, weight, target_weight,
	medical_conditions, medications, allergies, past_injuries,
	fitness_goal, time_preference, exercise_types, preferred_sports, exercise_notes,
	daily_calorie_goal, protein_goal, carbs_goal, fat_goal, water_goal,
	sleep_hours, stress_level, meal_frequency, created_at, updated_at`

func (s *Store) ProfileByUserID(ctx context.Context, userID int) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.db.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile creates the user's profile or overwrites it in place, keeping created_at.
func (s *Store) UpsertProfile(ctx context.Context, p *models.UserProfile) error {
	query, args, err := s.db.BindNamed(`INSERT INTO user_profiles (
		user_id, age, gender, height, weight, target_weight,
		medical_conditions, medications, allergies, past_injuries,
		fitness_goal, time_preference, exercise_types, preferred_sports, exercise_notes,
		daily_calorie_goal, protein_goal, carbs_goal, fat_goal, water_goal,
		sleep_hours, stress_level, meal_frequency
	) VALUES (
		:user_id, :age, :gender, :height, :weight, :target_weight,
		:medical_conditions, :medications, :allergies, :past_injuries,
		:fitness_goal, :time_preference, :exercise_types, :preferred_sports, :exercise_notes,
		:daily_calorie_goal, :protein_goal, :carbs_goal, :fat_goal, :water_goal,
		:sleep_hours, :stress_level, :meal_frequency
	)
	ON CONFLICT (user_id) DO UPDATE SET
		age = EXCLUDED.age,
		gender = EXCLUDED.gender,
		height = EXCLUDED.height,
		weight = EXCLUDED.weight,
		target_weight = EXCLUDED.target_weight,
		medical_conditions = EXCLUDED.medical_conditions,
		medications = EXCLUDED.medications,
		allergies = EXCLUDED.allergies,
		past_injuries = EXCLUDED.past_injuries,
		fitness_goal = EXCLUDED.fitness_goal,
		time_preference = EXCLUDED.time_preference,
		exercise_types = EXCLUDED.exercise_types,
		preferred_sports = EXCLUDED.preferred_sports,
		exercise_notes = EXCLUDED.exercise_notes,
		daily_calorie_goal = EXCLUDED.daily_calorie_goal,
		protein_goal = EXCLUDED.protein_goal,
		carbs_goal = EXCLUDED.carbs_goal,
		fat_goal = EXCLUDED.fat_goal,
		water_goal = EXCLUDED.water_goal,
		sleep_hours = EXCLUDED.sleep_hours,
		stress_level = EXCLUDED.stress_level,
		meal_frequency = EXCLUDED.meal_frequency,
		updated_at = NOW()
	RETURNING id, created_at, updated_at`, p)
	if err != nil {
		return err
	}
	return s.db.QueryRowxContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}
