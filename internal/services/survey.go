package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

const msgSurveyInvalid = "Please correct the highlighted fields"

type numberRange struct {
	min, max float64
	integer  bool
}

var surveyRanges = map[string]numberRange{
	"age":                {13, 120, true},
	"height":             {100, 250, false},
	"weight":             {30, 300, false},
	"target_weight":      {30, 300, false},
	"daily_calorie_goal": {1200, 8000, true},
	"protein_goal":       {0, 400, true},
	"carbs_goal":         {0, 600, true},
	"fat_goal":           {0, 200, true},
	"water_goal":         {1, 10, false},
	"sleep_hours":        {4, 12, false},
	"stress_level":       {1, 5, true},
	"meal_frequency":     {2, 8, true},
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNumber(form url.Values, field string, errs fieldErrors) float64 {
	r := surveyRanges[field]
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		errs.add(field, "This field is required")
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		errs.add(field, "Must be a number")
		return 0
	}
	if r.integer && v != math.Trunc(v) {
		errs.add(field, "Must be a whole number")
		return 0
	}
	if v < r.min || v > r.max {
		errs.add(field, fmt.Sprintf("Must be between %s and %s", formatBound(r.min), formatBound(r.max)))
		return 0
	}
	return v
}

// formList collects a multi-select from repeated keys, "key[]" keys, or a single bare value.
func formList(form url.Values, field string) []string {
	var out []string
	out = append(out, form[field]...)
	out = append(out, form[field+"[]"]...)
	return out
}

func parseTag[T ~string](form url.Values, field string, vocab models.Vocabulary[T], errs fieldErrors) T {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		errs.add(field, "This field is required")
		return ""
	}
	t, err := vocab.Parse(raw)
	if err != nil {
		errs.add(field, fmt.Sprintf("Invalid choice %q", raw))
		return ""
	}
	return t
}

func parseTagList[T ~string](form url.Values, field string, vocab models.Vocabulary[T], errs fieldErrors) models.TagList[T] {
	tags, err := vocab.ParseList(formList(form, field))
	if err != nil {
		var tagErr *models.TagError
		if errors.As(err, &tagErr) {
			errs.add(field, fmt.Sprintf("Invalid choice %q", tagErr.Value))
		} else {
			errs.add(field, err.Error())
		}
		return models.TagList[T]{}
	}
	return models.TagList[T](tags)
}

// ParseSurvey maps submitted survey form values onto a profile. Any problem fails the whole
// submission with a *ValidationError whose Fields name every offending input.
func ParseSurvey(form url.Values) (*models.UserProfile, error) {
	errs := fieldErrors{}
	p := &models.UserProfile{
		Age:          int(parseNumber(form, "age", errs)),
		Height:       parseNumber(form, "height", errs),
		Weight:       parseNumber(form, "weight", errs),
		TargetWeight: parseNumber(form, "target_weight", errs),

		Gender:         parseTag(form, "gender", models.Genders, errs),
		FitnessGoal:    parseTag(form, "fitness_goal", models.FitnessGoals, errs),
		TimePreference: parseTag(form, "time_preference", models.TimePreferences, errs),

		MedicalConditions: parseTagList(form, "medical_conditions", models.MedicalConditions, errs),
		Medications:       parseTagList(form, "medications", models.Medications, errs),
		Allergies:         parseTagList(form, "allergies", models.Allergies, errs),
		PastInjuries:      parseTagList(form, "past_injuries", models.PastInjuries, errs),
		ExerciseTypes:     parseTagList(form, "exercise_types", models.ExerciseTypes, errs),
		PreferredSports:   parseTagList(form, "preferred_sports", models.PreferredSports, errs),

		DailyCalorieGoal: int(parseNumber(form, "daily_calorie_goal", errs)),
		ProteinGoal:      int(parseNumber(form, "protein_goal", errs)),
		CarbsGoal:        int(parseNumber(form, "carbs_goal", errs)),
		FatGoal:          int(parseNumber(form, "fat_goal", errs)),
		WaterGoal:        parseNumber(form, "water_goal", errs),

		SleepHours:    parseNumber(form, "sleep_hours", errs),
		StressLevel:   int(parseNumber(form, "stress_level", errs)),
		MealFrequency: int(parseNumber(form, "meal_frequency", errs)),
	}
	if notes := strings.TrimSpace(form.Get("exercise_notes")); notes != "" {
		p.ExerciseNotes = &notes
	}
	if err := errs.err(msgSurveyInvalid); err != nil {
		return nil, err
	}
	return p, nil
}

type ProfileService struct {
	profiles ProfileStore
	logger   *zap.Logger
}

func NewProfileService(profiles ProfileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

// Get returns the user's profile or store.ErrNotFound when the survey was never submitted.
func (s *ProfileService) Get(ctx context.Context, userID int) (*models.UserProfile, error) {
	return s.profiles.ProfileByUserID(ctx, userID)
}

// Submit validates the survey form and creates or updates the user's profile.
func (s *ProfileService) Submit(ctx context.Context, userID int, form url.Values) (*models.UserProfile, error) {
	p, err := ParseSurvey(form)
	if err != nil {
		return nil, err
	}
	p.UserID = userID
	if err := s.profiles.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.logger.Info("profile saved", zap.Int("user_id", userID))
	return p, nil
}

// HasProfile reports whether the user completed the survey.
func (s *ProfileService) HasProfile(ctx context.Context, userID int) (bool, error) {
	_, err := s.profiles.ProfileByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
