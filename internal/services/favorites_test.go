package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

func TestFavoriteLifecycle(t *testing.T) {
	meals, mem := newMeals(t)
	svc := NewFavoriteService(mem, mem, zap.NewNop())
	ctx := context.Background()

	fav, err := svc.CreateFavorite(ctx, 1, FavoriteInput{Name: " Power breakfast ", MealType: "breakfast", Components: []ComponentInput{
		{FoodItem: "eggs", Category: "protein", Quantity: 2, Unit: "pcs", Calories: 140, Protein: f64(12)},
		{FoodItem: "toast", Category: "carb", Quantity: 1, Unit: "pcs", Calories: 80},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Power breakfast", fav.Name)

	list, err := svc.ListFavorites(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	others, err := svc.ListFavorites(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, others)

	_, err = svc.GetFavorite(ctx, 2, fav.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	meal, err := svc.ApplyFavorite(ctx, 1, fav.ID, at(5, 7, 30), nil)
	require.NoError(t, err)
	assert.True(t, meal.IsFavorite)
	assert.Equal(t, models.MealBreakfast, meal.MealType)
	require.Len(t, meal.Components, 2)
	assert.Equal(t, "eggs", meal.Components[0].FoodItem)
	assert.NotEqual(t, fav.Components[0].ID, meal.Components[0].ID)

	view, err := meals.ViewDay(ctx, 1, "2024-12-05")
	require.NoError(t, err)
	assert.Equal(t, 220.0, view.Totals.Calories)

	// the logged meal survives the template's deletion
	require.NoError(t, svc.DeleteFavorite(ctx, 1, fav.ID))
	_, err = meals.GetMeal(ctx, 1, meal.ID)
	assert.NoError(t, err)
	assert.ErrorIs(t, svc.DeleteFavorite(ctx, 1, fav.ID), store.ErrNotFound)
}

func TestApplyFavoriteCopiesMacros(t *testing.T) {
	_, mem := newMeals(t)
	svc := NewFavoriteService(mem, mem, zap.NewNop())
	ctx := context.Background()

	fav, err := svc.CreateFavorite(ctx, 1, FavoriteInput{Name: "shake", MealType: "snack", Components: []ComponentInput{
		{FoodItem: "whey", Category: "protein", Quantity: 1, Unit: "servings", Calories: 120, Protein: f64(24)},
	}})
	require.NoError(t, err)

	meal, err := svc.ApplyFavorite(ctx, 1, fav.ID, at(5, 16, 0), nil)
	require.NoError(t, err)
	*meal.Components[0].Protein = 99

	again, err := svc.GetFavorite(ctx, 1, fav.ID)
	require.NoError(t, err)
	assert.Equal(t, 24.0, *again.Components[0].Protein)
}

func TestCreateFavoriteValidation(t *testing.T) {
	_, mem := newMeals(t)
	svc := NewFavoriteService(mem, mem, zap.NewNop())
	_, err := svc.CreateFavorite(context.Background(), 1, FavoriteInput{Name: "", MealType: "elevenses"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "meal_type")
	assert.Empty(t, mem.Favorites)
}
