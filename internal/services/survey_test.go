package services

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fittrack/internal/models"
	"fittrack/internal/store/storetest"
)

func validSurvey() url.Values {
	return url.Values{
		"age":                {"34"},
		"gender":             {"female"},
		"height":             {"168.5"},
		"weight":             {"70"},
		"target_weight":      {"64"},
		"fitness_goal":       {"weight_loss"},
		"time_preference":    {"Morning"},
		"daily_calorie_goal": {"1800"},
		"protein_goal":       {"120"},
		"carbs_goal":         {"180"},
		"fat_goal":           {"60"},
		"water_goal":         {"2.5"},
		"sleep_hours":        {"7.5"},
		"stress_level":       {"3"},
		"meal_frequency":     {"4"},
	}
}

func TestParseSurveyValid(t *testing.T) {
	form := validSurvey()
	form["exercise_types"] = []string{"cardio", "strength", "cardio", ""}
	form["allergies[]"] = []string{"nuts", "soy"}
	form.Set("preferred_sports", "running")
	form.Set("exercise_notes", "  bad knee on stairs ")

	p, err := ParseSurvey(form)
	require.NoError(t, err)
	assert.Equal(t, 34, p.Age)
	assert.Equal(t, 168.5, p.Height)
	assert.Equal(t, models.GenderFemale, p.Gender)
	assert.Equal(t, models.TimeMorning, p.TimePreference)
	assert.Equal(t, models.TagList[models.ExerciseType]{models.ExerciseCardio, models.ExerciseStrength}, p.ExerciseTypes)
	assert.Equal(t, models.TagList[models.Allergy]{"nuts", "soy"}, p.Allergies)
	assert.Equal(t, models.TagList[models.PreferredSport]{"running"}, p.PreferredSports)
	assert.NotNil(t, p.MedicalConditions)
	assert.Empty(t, p.MedicalConditions)
	require.NotNil(t, p.ExerciseNotes)
	assert.Equal(t, "bad knee on stairs", *p.ExerciseNotes)
	assert.Equal(t, 2.5, p.WaterGoal)
}

func TestParseSurveyFieldErrors(t *testing.T) {
	form := validSurvey()
	form.Set("age", "12")
	form.Set("stress_level", "2.5")
	form.Del("gender")
	form.Set("height", "tall")
	form["allergies"] = []string{"pollen"}

	_, err := ParseSurvey(form)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Must be between 13 and 120", verr.Fields["age"])
	assert.Equal(t, "Must be a whole number", verr.Fields["stress_level"])
	assert.Equal(t, "This field is required", verr.Fields["gender"])
	assert.Equal(t, "Must be a number", verr.Fields["height"])
	assert.Equal(t, `Invalid choice "pollen"`, verr.Fields["allergies"])
	assert.Len(t, verr.Fields, 5)
}

func TestParseSurveyBoundsAreInclusive(t *testing.T) {
	form := validSurvey()
	form.Set("age", "120")
	form.Set("water_goal", "1")
	form.Set("meal_frequency", "8")
	_, err := ParseSurvey(form)
	assert.NoError(t, err)
}

func TestProfileSubmitUpserts(t *testing.T) {
	mem := storetest.NewMemory()
	svc := NewProfileService(mem, zap.NewNop())
	ctx := context.Background()

	has, err := svc.HasProfile(ctx, 1)
	require.NoError(t, err)
	assert.False(t, has)

	first, err := svc.Submit(ctx, 1, validSurvey())
	require.NoError(t, err)

	form := validSurvey()
	form.Set("weight", "68")
	second, err := svc.Submit(ctx, 1, form)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Len(t, mem.Profiles, 1)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 68.0, got.Weight)

	bad := validSurvey()
	bad.Set("age", "500")
	_, err = svc.Submit(ctx, 1, bad)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	got, _ = svc.Get(ctx, 1)
	assert.Equal(t, 34, got.Age)
}
