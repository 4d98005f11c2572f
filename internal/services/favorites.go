package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fittrack/internal/models"
)

type FavoriteInput struct {
	Name       string           `json:"name"`
	MealType   string           `json:"meal_type"`
	Components []ComponentInput `json:"components"`
}

// FavoriteService manages saved meal templates and copies them into the meal log.
type FavoriteService struct {
	favorites FavoriteStore
	meals     MealStore
	logger    *zap.Logger
}

func NewFavoriteService(favorites FavoriteStore, meals MealStore, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, meals: meals, logger: logger}
}

func (s *FavoriteService) CreateFavorite(ctx context.Context, userID int, in FavoriteInput) (*models.FavoriteMeal, error) {
	errs := fieldErrors{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs.add("name", "Name is required")
	}
	mt, err := models.MealTypes.Parse(in.MealType)
	if err != nil {
		errs.add("meal_type", err.Error())
	}
	portions := validateComponents(in.Components, errs)
	if err := errs.err("Invalid favorite meal"); err != nil {
		return nil, err
	}

	f := &models.FavoriteMeal{
		UserID:     userID,
		Name:       name,
		MealType:   mt,
		Components: make([]models.FavoriteMealComponent, len(portions)),
	}
	for i, p := range portions {
		f.Components[i] = models.FavoriteMealComponent{FoodPortion: p}
	}
	if err := s.favorites.CreateFavorite(ctx, f); err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return f, nil
}

func (s *FavoriteService) GetFavorite(ctx context.Context, userID, id int) (*models.FavoriteMeal, error) {
	return s.favorites.FavoriteByID(ctx, userID, id)
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID int) ([]models.FavoriteMeal, error) {
	return s.favorites.ListFavorites(ctx, userID)
}

func (s *FavoriteService) DeleteFavorite(ctx context.Context, userID, id int) error {
	return s.favorites.DeleteFavorite(ctx, userID, id)
}

// ApplyFavorite logs a new meal at the given time whose components are copies of the
// template's. Later edits to either side do not affect the other.
func (s *FavoriteService) ApplyFavorite(ctx context.Context, userID, favoriteID int, at time.Time, notes *string) (*models.MealLog, error) {
	if at.IsZero() {
		return nil, invalid("Date is required")
	}
	f, err := s.favorites.FavoriteByID(ctx, userID, favoriteID)
	if err != nil {
		return nil, err
	}
	m := &models.MealLog{
		UserID:     userID,
		Date:       at,
		MealType:   f.MealType,
		IsFavorite: true,
		Notes:      notes,
		Components: make([]models.MealComponent, len(f.Components)),
	}
	for i, c := range f.Components {
		m.Components[i] = models.MealComponent{FoodPortion: copyPortion(c.FoodPortion)}
	}
	if err := s.meals.CreateMeal(ctx, m); err != nil {
		return nil, fmt.Errorf("create meal from favorite: %w", err)
	}
	s.logger.Debug("favorite applied", zap.Int("user_id", userID), zap.Int("favorite_id", favoriteID), zap.Int("meal_id", m.ID))
	return m, nil
}

func copyPortion(p models.FoodPortion) models.FoodPortion {
	dup := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		c := *v
		return &c
	}
	p.Protein, p.Carbs, p.Fat = dup(p.Protein), dup(p.Carbs), dup(p.Fat)
	return p
}
