package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/services"
)

func surveyValues() url.Values {
	return url.Values{
		"age": {"34"}, "gender": {"female"}, "height": {"168"}, "weight": {"70"}, "target_weight": {"64"},
		"fitness_goal": {"weight_loss"}, "time_preference": {"morning"},
		"exercise_types[]": {"cardio", "strength"}, "preferred_sports": {"running"},
		"allergies":          {"nuts"},
		"daily_calorie_goal": {"2000"}, "protein_goal": {"120"}, "carbs_goal": {"200"}, "fat_goal": {"70"},
		"water_goal": {"2.5"}, "sleep_hours": {"7.5"}, "stress_level": {"3"}, "meal_frequency": {"4"},
	}
}

func TestSurveyCreatesThenUpdatesProfile(t *testing.T) {
	f := newFixture(t)
	u, c := f.signup("alice@example.com", "alice")

	rec := f.postForm("/survey", surveyValues(), c)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get("Location"))
	require.Contains(t, f.mem.Profiles, u.ID)
	first := f.mem.Profiles[u.ID]
	assert.Equal(t, 34, first.Age)
	assert.Equal(t, []string{"cardio", "strength"}, first.ExerciseTypes.Strings())

	form := surveyValues()
	form.Set("age", "35")
	rec = f.postForm("/survey", form, c)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Len(t, f.mem.Profiles, 1)
	assert.Equal(t, 35, f.mem.Profiles[u.ID].Age)
	assert.Equal(t, first.ID, f.mem.Profiles[u.ID].ID)

	page := f.get("/profile", c)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "weight loss")

	survey := f.get("/survey", c)
	assert.Equal(t, http.StatusOK, survey.Code)
	assert.Contains(t, survey.Body.String(), `value="35"`)
}

func TestSurveyInvalidRerendersWithValues(t *testing.T) {
	f := newFixture(t)
	u, c := f.signup("alice@example.com", "alice")

	form := surveyValues()
	form.Set("age", "5")
	form.Set("gender", "robot")
	rec := f.postForm("/survey", form, c)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Must be between 13 and 120")
	assert.Contains(t, body, `value="5"`)
	assert.Contains(t, body, `value="168"`)
	assert.NotContains(t, f.mem.Profiles, u.ID)
}

func TestProfileWithoutSurveyRedirects(t *testing.T) {
	f := newFixture(t)
	_, c := f.signup("alice@example.com", "alice")

	rec := f.get("/profile", c)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/survey", rec.Header().Get("Location"))
}

func TestDashboardShowsProgress(t *testing.T) {
	f := newFixture(t)
	u, c := f.signup("alice@example.com", "alice")
	require.Equal(t, http.StatusSeeOther, f.postForm("/survey", surveyValues(), c).Code)
	_, err := f.meals.AddMeal(context.Background(), u.ID, services.MealInput{
		Date: f.now.Add(-time.Hour), MealType: "breakfast",
		Components: []services.ComponentInput{{FoodItem: "Oats", Category: "carb", Quantity: 80, Unit: "g", Calories: 300}},
	})
	require.NoError(t, err)

	rec := f.get("/dashboard", c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 meals logged: 300 kcal")
	assert.Contains(t, rec.Body.String(), "<td>1700</td>")
}

func TestMeReturnsAccountAndProfile(t *testing.T) {
	f := newFixture(t)
	_, c := f.signup("alice@example.com", "alice")

	me := decode[UserDTO](t, f.get("/api/me", c))
	assert.Equal(t, "alice", me.Username)
	assert.False(t, me.HasProfile)

	require.Equal(t, http.StatusSeeOther, f.postForm("/survey", surveyValues(), c).Code)
	me = decode[UserDTO](t, f.get("/api/me", c))
	assert.True(t, me.HasProfile)
	require.NotNil(t, me.Profile)
	assert.Equal(t, 2000, me.Profile.DailyCalorieGoal)
}
