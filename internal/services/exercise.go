package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fittrack/internal/models"
)

type ExerciseComponentInput struct {
	ExerciseName   string   `json:"exercise_name"`
	Category       string   `json:"category"`
	Sets           *int     `json:"sets"`
	Reps           *int     `json:"reps"`
	Weight         *float64 `json:"weight"`
	Distance       *float64 `json:"distance"`
	CaloriesBurned *int     `json:"calories_burned"`
}

type ExerciseInput struct {
	Date                time.Time
	ExerciseType        string
	Duration            float64
	Intensity           string
	TotalCaloriesBurned *int
	Notes               *string
	Components          []ExerciseComponentInput
}

type ExerciseService struct {
	exercises ExerciseStore
	meals     *MealService
	logger    *zap.Logger
}

// NewExerciseService shares the meal service's zone and date parsing so both logs agree on days.
func NewExerciseService(exercises ExerciseStore, meals *MealService, logger *zap.Logger) *ExerciseService {
	return &ExerciseService{exercises: exercises, meals: meals, logger: logger}
}

func nonNegativeInt(v *int) bool { return v == nil || *v >= 0 }

func nonNegativeFloat(v *float64) bool { return v == nil || nonNegative(*v) }

func (s *ExerciseService) CreateExercise(ctx context.Context, userID int, in ExerciseInput) (*models.ExerciseLog, error) {
	errs := fieldErrors{}
	if in.Date.IsZero() {
		errs.add("date", "Date is required")
	}
	et, err := models.ExerciseTypes.Parse(in.ExerciseType)
	if err != nil {
		errs.add("exercise_type", err.Error())
	}
	intensity, err := models.Intensities.Parse(in.Intensity)
	if err != nil {
		errs.add("intensity", err.Error())
	}
	if !nonNegative(in.Duration) || in.Duration == 0 {
		errs.add("duration", "Duration must be greater than zero")
	}
	if !nonNegativeInt(in.TotalCaloriesBurned) {
		errs.add("total_calories_burned", "Must not be negative")
	}

	e := &models.ExerciseLog{
		UserID:              userID,
		Date:                in.Date,
		ExerciseType:        et,
		Duration:            in.Duration,
		Intensity:           intensity,
		TotalCaloriesBurned: in.TotalCaloriesBurned,
		Notes:               in.Notes,
		Components:          make([]models.ExerciseComponent, 0, len(in.Components)),
	}
	for i, c := range in.Components {
		key := func(f string) string { return fmt.Sprintf("components[%d][%s]", i, f) }
		name := strings.TrimSpace(c.ExerciseName)
		if name == "" {
			errs.add(key("exercise_name"), "Exercise name is required")
		}
		cat, err := models.ExerciseCategories.Parse(c.Category)
		if err != nil {
			errs.add(key("category"), err.Error())
		}
		if !nonNegativeInt(c.Sets) || !nonNegativeInt(c.Reps) || !nonNegativeInt(c.CaloriesBurned) ||
			!nonNegativeFloat(c.Weight) || !nonNegativeFloat(c.Distance) {
			errs.add(key("values"), "Must not be negative")
		}
		e.Components = append(e.Components, models.ExerciseComponent{
			ExerciseName:   name,
			Category:       cat,
			Sets:           c.Sets,
			Reps:           c.Reps,
			Weight:         c.Weight,
			Distance:       c.Distance,
			CaloriesBurned: c.CaloriesBurned,
		})
	}
	if err := errs.err("Invalid exercise"); err != nil {
		return nil, err
	}

	if err := s.exercises.CreateExercise(ctx, e); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return e, nil
}

// ExercisesOn lists the exercises logged on date (YYYY-MM-DD); an empty date means today.
func (s *ExerciseService) ExercisesOn(ctx context.Context, userID int, date string) ([]models.ExerciseLog, error) {
	day := s.meals.Today()
	if date != "" {
		d, err := s.meals.ParseDate(date)
		if err != nil {
			return nil, err
		}
		day = d
	}
	return s.exercises.ExercisesInPeriod(ctx, userID, dayPeriod(day))
}

func (s *ExerciseService) GetExercise(ctx context.Context, userID, id int) (*models.ExerciseLog, error) {
	return s.exercises.ExerciseByID(ctx, userID, id)
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, userID, id int) error {
	return s.exercises.DeleteExercise(ctx, userID, id)
}
