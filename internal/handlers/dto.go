package handlers

import (
	"time"

	"fittrack/internal/models"
	"fittrack/internal/services"
)

// UserDTO is the /api/me shape: the account plus its profile when the survey is done.
type UserDTO struct {
	ID          int                 `json:"id"`
	Email       string              `json:"email"`
	Username    string              `json:"username"`
	FullName    *string             `json:"full_name,omitempty"`
	IsSuperuser bool                `json:"is_superuser"`
	IsVerified  bool                `json:"is_verified"`
	CreatedAt   string              `json:"created_at"`
	HasProfile  bool                `json:"has_profile"`
	Profile     *models.UserProfile `json:"profile,omitempty"`
}

func ToUserDTO(u models.User, p *models.UserProfile) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName,
		IsSuperuser: u.IsSuperuser,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		HasProfile:  p != nil,
		Profile:     p,
	}
}

// MealDTO renders a meal with a minute-precision local datetime.
type MealDTO struct {
	ID         int                  `json:"id"`
	Datetime   string               `json:"datetime"`
	MealType   models.MealType      `json:"meal_type"`
	IsFavorite bool                 `json:"is_favorite"`
	Notes      *string              `json:"notes,omitempty"`
	Components []models.FoodPortion `json:"components"`
	Totals     services.MealTotals  `json:"totals"`
}

func ToMealDTO(m models.MealLog, loc *time.Location) MealDTO {
	portions := make([]models.FoodPortion, len(m.Components))
	for i, c := range m.Components {
		portions[i] = c.FoodPortion
	}
	return MealDTO{
		ID:         m.ID,
		Datetime:   m.Date.In(loc).Format(services.DateTimeLayout),
		MealType:   m.MealType,
		IsFavorite: m.IsFavorite,
		Notes:      m.Notes,
		Components: portions,
		Totals:     services.SumPortions(portions),
	}
}

type FavoriteDTO struct {
	ID         int                  `json:"id"`
	Name       string               `json:"name"`
	MealType   models.MealType      `json:"meal_type"`
	CreatedAt  string               `json:"created_at"`
	Components []models.FoodPortion `json:"components"`
	Totals     services.MealTotals  `json:"totals"`
}

func ToFavoriteDTO(f models.FavoriteMeal) FavoriteDTO {
	portions := make([]models.FoodPortion, len(f.Components))
	for i, c := range f.Components {
		portions[i] = c.FoodPortion
	}
	return FavoriteDTO{
		ID:         f.ID,
		Name:       f.Name,
		MealType:   f.MealType,
		CreatedAt:  f.CreatedAt.Format(time.RFC3339),
		Components: portions,
		Totals:     services.SumPortions(portions),
	}
}

type ExerciseDTO struct {
	ID                  int                        `json:"id"`
	Datetime            string                     `json:"datetime"`
	ExerciseType        models.ExerciseType        `json:"exercise_type"`
	Duration            float64                    `json:"duration"`
	Intensity           models.Intensity           `json:"intensity"`
	TotalCaloriesBurned *int                       `json:"total_calories_burned,omitempty"`
	Notes               *string                    `json:"notes,omitempty"`
	Components          []models.ExerciseComponent `json:"components"`
}

func ToExerciseDTO(e models.ExerciseLog, loc *time.Location) ExerciseDTO {
	components := e.Components
	if components == nil {
		components = []models.ExerciseComponent{}
	}
	return ExerciseDTO{
		ID:                  e.ID,
		Datetime:            e.Date.In(loc).Format(services.DateTimeLayout),
		ExerciseType:        e.ExerciseType,
		Duration:            e.Duration,
		Intensity:           e.Intensity,
		TotalCaloriesBurned: e.TotalCaloriesBurned,
		Notes:               e.Notes,
		Components:          components,
	}
}
