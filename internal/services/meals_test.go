package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fittrack/internal/models"
	"fittrack/internal/store"
	"fittrack/internal/store/storetest"
)

func f64(v float64) *float64 { return &v }

func newMeals(t *testing.T) (*MealService, *storetest.Memory) {
	t.Helper()
	mem := storetest.NewMemory()
	now := time.Date(2024, 12, 5, 18, 0, 0, 0, time.UTC)
	svc := NewMealService(mem, time.UTC, zap.NewNop()).WithClock(func() time.Time { return now })
	return svc, mem
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 12, day, hour, minute, 0, 0, time.UTC)
}

func TestSumMealTreatsMissingMacrosAsZero(t *testing.T) {
	m := models.MealLog{Components: []models.MealComponent{
		{FoodPortion: models.FoodPortion{Calories: 200, Protein: f64(10)}},
		{FoodPortion: models.FoodPortion{Calories: 150, Carbs: f64(30), Fat: f64(2)}},
	}}
	assert.Equal(t, MealTotals{Calories: 350, Protein: 10, Carbs: 30, Fat: 2}, SumMeal(m))
	assert.Equal(t, MealTotals{}, SumMeal(models.MealLog{}))
}

func TestViewDayTotals(t *testing.T) {
	svc, _ := newMeals(t)
	ctx := context.Background()

	_, err := svc.AddMeal(ctx, 1, MealInput{Date: at(5, 8, 0), MealType: "breakfast", Components: []ComponentInput{
		{FoodItem: "oats", Category: "carb", Quantity: 50, Unit: "g", Calories: 190, Protein: f64(6), Carbs: f64(32)},
		{FoodItem: "milk", Category: "dairy", Quantity: 1, Unit: "cups", Calories: 100, Protein: f64(8), Fat: f64(2.5)},
	}})
	require.NoError(t, err)
	_, err = svc.AddMeal(ctx, 1, MealInput{Date: at(5, 23, 59), MealType: "snack", Components: []ComponentInput{
		{FoodItem: "apple", Category: "fruit", Quantity: 1, Unit: "pcs", Calories: 95},
	}})
	require.NoError(t, err)
	// other day and other user are excluded
	_, err = svc.AddMeal(ctx, 1, MealInput{Date: at(6, 0, 0), MealType: "breakfast"})
	require.NoError(t, err)
	_, err = svc.AddMeal(ctx, 2, MealInput{Date: at(5, 12, 0), MealType: "lunch"})
	require.NoError(t, err)

	view, err := svc.ViewDay(ctx, 1, "2024-12-05")
	require.NoError(t, err)
	require.Len(t, view.Meals, 2)
	assert.Equal(t, "2024-12-05 08:00:00", view.Meals[0].Date)
	assert.Equal(t, models.MealBreakfast, view.Meals[0].MealType)
	assert.Equal(t, 290.0, view.Meals[0].TotalCalories)
	assert.Equal(t, 14.0, view.Meals[0].TotalProtein)
	assert.Equal(t, MealTotals{Calories: 385, Protein: 14, Carbs: 32, Fat: 2.5}, view.Totals)

	empty, err := svc.ViewDay(ctx, 1, "2024-12-10")
	require.NoError(t, err)
	assert.Empty(t, empty.Meals)
	assert.Equal(t, MealTotals{}, empty.Totals)
}

func TestViewDayRejectsBadDate(t *testing.T) {
	svc, _ := newMeals(t)
	_, err := svc.ViewDay(context.Background(), 1, "05/12/2024")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestViewDayStoreFailure(t *testing.T) {
	svc, mem := newMeals(t)
	mem.Err = assert.AnError
	_, err := svc.ViewDay(context.Background(), 1, "2024-12-05")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestViewMonth(t *testing.T) {
	svc, _ := newMeals(t)
	ctx := context.Background()
	for _, d := range []time.Time{at(2, 9, 0), at(2, 13, 0), at(31, 20, 0)} {
		_, err := svc.AddMeal(ctx, 1, MealInput{Date: d, MealType: "lunch"})
		require.NoError(t, err)
	}

	view, err := svc.ViewMonth(ctx, 1, 2024, 12)
	require.NoError(t, err)
	assert.Equal(t, MonthAnchor{2024, time.November}, view.Prev)
	assert.Equal(t, MonthAnchor{2025, time.January}, view.Next)
	assert.Equal(t, "2024-12-05", view.Today)

	var flagged []string
	for _, week := range view.Weeks {
		require.Len(t, week, 7)
		for _, c := range week {
			if c.HasMeals {
				flagged = append(flagged, c.Date)
			}
		}
	}
	assert.Equal(t, []string{"2024-12-02", "2024-12-31"}, flagged)

	_, err = svc.ViewMonth(ctx, 1, 2024, 13)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	_, err = svc.ViewMonth(ctx, 1, 2024, 0)
	assert.ErrorAs(t, err, &verr)
}

func TestAddMealValidatesBeforeWriting(t *testing.T) {
	svc, mem := newMeals(t)
	_, err := svc.AddMeal(context.Background(), 1, MealInput{Date: at(5, 8, 0), MealType: "brunch", Components: []ComponentInput{
		{FoodItem: "toast", Category: "bread", Unit: "g"},
		{FoodItem: "", Category: "carb", Unit: "litre", Calories: -5},
	}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "meal_type")
	assert.Contains(t, verr.Fields, "components[0][category]")
	assert.Contains(t, verr.Fields, "components[1][food_item]")
	assert.Contains(t, verr.Fields, "components[1][unit]")
	assert.Contains(t, verr.Fields, "components[1][calories]")
	assert.Empty(t, mem.Meals)
}

func TestAddMealRejectsNonFiniteNumbers(t *testing.T) {
	svc, mem := newMeals(t)
	_, err := svc.AddMeal(context.Background(), 1, MealInput{Date: at(5, 8, 0), MealType: "lunch", Components: []ComponentInput{
		{FoodItem: "rice", Category: "carb", Unit: "g", Quantity: math.Inf(1), Calories: math.NaN(), Fat: f64(math.Inf(-1))},
	}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "components[0][quantity]")
	assert.Contains(t, verr.Fields, "components[0][calories]")
	assert.Contains(t, verr.Fields, "components[0][fat]")
	assert.Empty(t, mem.Meals)
}

func TestUpdateMealReplacesComponents(t *testing.T) {
	svc, _ := newMeals(t)
	ctx := context.Background()
	m, err := svc.AddMeal(ctx, 1, MealInput{Date: at(5, 12, 0), MealType: "lunch", Components: []ComponentInput{
		{FoodItem: "rice", Category: "carb", Quantity: 100, Unit: "g", Calories: 130},
		{FoodItem: "beans", Category: "protein", Quantity: 100, Unit: "g", Calories: 120},
	}})
	require.NoError(t, err)

	_, err = svc.UpdateMeal(ctx, 1, m.ID, MealInput{Date: at(5, 13, 0), MealType: "dinner", Components: []ComponentInput{
		{FoodItem: "soup", Category: "vegetable", Quantity: 1, Unit: "servings", Calories: 80},
	}})
	require.NoError(t, err)

	got, err := svc.GetMeal(ctx, 1, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MealDinner, got.MealType)
	require.Len(t, got.Components, 1)
	assert.Equal(t, "soup", got.Components[0].FoodItem)

	_, err = svc.UpdateMeal(ctx, 2, m.ID, MealInput{Date: at(5, 13, 0), MealType: "dinner"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteMealLeavesNoComponents(t *testing.T) {
	svc, mem := newMeals(t)
	ctx := context.Background()
	m, err := svc.AddMeal(ctx, 1, MealInput{Date: at(5, 12, 0), MealType: "lunch", Components: []ComponentInput{
		{FoodItem: "rice", Category: "carb", Quantity: 100, Unit: "g", Calories: 130},
	}})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteMeal(ctx, 2, m.ID), store.ErrNotFound)
	require.NoError(t, svc.DeleteMeal(ctx, 1, m.ID))
	assert.Zero(t, mem.ComponentCount())
	_, err = svc.GetMeal(ctx, 1, m.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestParseDateTime(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	svc := NewMealService(storetest.NewMemory(), loc, zap.NewNop())

	got, err := svc.ParseDateTime("2024-12-05", "08:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 5, 8, 30, 0, 0, loc), got)

	got, err = svc.ParseDateTime("2024-12-05T19:05", "")
	require.NoError(t, err)
	assert.Equal(t, 19, got.Hour())

	_, err = svc.ParseDateTime("2024-12-05", "8pm")
	assert.Error(t, err)
}

func TestDayBoundsFollowLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	mem := storetest.NewMemory()
	svc := NewMealService(mem, loc, zap.NewNop())
	ctx := context.Background()

	// 23:30 in New York is already the next day in UTC
	late := time.Date(2024, 12, 5, 23, 30, 0, 0, loc)
	_, err = svc.AddMeal(ctx, 1, MealInput{Date: late, MealType: "snack"})
	require.NoError(t, err)

	view, err := svc.ViewDay(ctx, 1, "2024-12-05")
	require.NoError(t, err)
	require.Len(t, view.Meals, 1)
	assert.Equal(t, "2024-12-05 23:30:00", view.Meals[0].Date)
}
