package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"fittrack/internal/middleware"
	"fittrack/internal/models"
	"fittrack/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
	meals    *services.MealService
	render   *Renderer
	logger   *zap.Logger
}

func NewProfileHandler(profiles *services.ProfileService, meals *services.MealService, render *Renderer, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, meals: meals, render: render, logger: logger}
}

type surveyField struct {
	Name  string
	Label string
	Step  string
}

type surveyChoice struct {
	Name     string
	Label    string
	Options  []string
	Multiple bool
}

// surveyForm describes the survey inputs; the template renders it generically.
type surveyForm struct {
	Numbers []surveyField
	Choices []surveyChoice
}

func options[T ~string](v models.Vocabulary[T]) []string {
	values := v.Values()
	out := make([]string, len(values))
	for i, t := range values {
		out[i] = string(t)
	}
	return out
}

var surveyLayout = surveyForm{
	Numbers: []surveyField{
		{"age", "Age", "1"},
		{"height", "Height (cm)", "0.1"},
		{"weight", "Weight (kg)", "0.1"},
		{"target_weight", "Target weight (kg)", "0.1"},
		{"daily_calorie_goal", "Daily calories (kcal)", "1"},
		{"protein_goal", "Protein (g)", "1"},
		{"carbs_goal", "Carbs (g)", "1"},
		{"fat_goal", "Fat (g)", "1"},
		{"water_goal", "Water (l)", "0.1"},
		{"sleep_hours", "Sleep (hours)", "0.5"},
		{"stress_level", "Stress level (1-5)", "1"},
		{"meal_frequency", "Meals per day", "1"},
	},
	Choices: []surveyChoice{
		{Name: "gender", Label: "Gender", Options: options(models.Genders)},
		{Name: "fitness_goal", Label: "Fitness goal", Options: options(models.FitnessGoals)},
		{Name: "time_preference", Label: "Preferred workout time", Options: options(models.TimePreferences)},
		{Name: "exercise_types", Label: "Exercise types", Options: options(models.ExerciseTypes), Multiple: true},
		{Name: "preferred_sports", Label: "Sports", Options: options(models.PreferredSports), Multiple: true},
		{Name: "medical_conditions", Label: "Medical conditions", Options: options(models.MedicalConditions), Multiple: true},
		{Name: "medications", Label: "Medications", Options: options(models.Medications), Multiple: true},
		{Name: "allergies", Label: "Allergies", Options: options(models.Allergies), Multiple: true},
		{Name: "past_injuries", Label: "Past injuries", Options: options(models.PastInjuries), Multiple: true},
	},
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// profileValues turns a saved profile back into form values so the survey can be pre-filled.
func profileValues(p *models.UserProfile) url.Values {
	v := url.Values{}
	v.Set("age", strconv.Itoa(p.Age))
	v.Set("gender", string(p.Gender))
	v.Set("height", formatFloat(p.Height))
	v.Set("weight", formatFloat(p.Weight))
	v.Set("target_weight", formatFloat(p.TargetWeight))
	v.Set("fitness_goal", string(p.FitnessGoal))
	v.Set("time_preference", string(p.TimePreference))
	v.Set("daily_calorie_goal", strconv.Itoa(p.DailyCalorieGoal))
	v.Set("protein_goal", strconv.Itoa(p.ProteinGoal))
	v.Set("carbs_goal", strconv.Itoa(p.CarbsGoal))
	v.Set("fat_goal", strconv.Itoa(p.FatGoal))
	v.Set("water_goal", formatFloat(p.WaterGoal))
	v.Set("sleep_hours", formatFloat(p.SleepHours))
	v.Set("stress_level", strconv.Itoa(p.StressLevel))
	v.Set("meal_frequency", strconv.Itoa(p.MealFrequency))
	if p.ExerciseNotes != nil {
		v.Set("exercise_notes", *p.ExerciseNotes)
	}
	v["medical_conditions"] = p.MedicalConditions.Strings()
	v["medications"] = p.Medications.Strings()
	v["allergies"] = p.Allergies.Strings()
	v["past_injuries"] = p.PastInjuries.Strings()
	v["exercise_types"] = p.ExerciseTypes.Strings()
	v["preferred_sports"] = p.PreferredSports.Strings()
	return v
}

// loadProfile returns nil without error when the survey has not been submitted.
func (h *ProfileHandler) loadProfile(r *http.Request, userID int) (*models.UserProfile, error) {
	p, err := h.profiles.Get(r.Context(), userID)
	if errors.Is(err, services.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (h *ProfileHandler) SurveyPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	p, err := h.loadProfile(r, user.ID)
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	values := url.Values{}
	if p != nil {
		values = profileValues(p)
	}
	h.render.HTML(w, http.StatusOK, "survey", page{Title: "Health survey", User: user, Values: values, Data: surveyLayout})
}

func (h *ProfileHandler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	_, err := h.profiles.Submit(r.Context(), user.ID, r.PostForm)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		h.render.HTML(w, http.StatusUnprocessableEntity, "survey", page{
			Title: "Health survey", User: user, Error: verr.Message, Errors: verr.Fields,
			Values: r.PostForm, Data: surveyLayout,
		})
		return
	}
	if err != nil {
		h.logger.Error("submit survey", zap.Int("user_id", user.ID), zap.Error(err))
		h.render.HTML(w, http.StatusInternalServerError, "survey", page{
			Title: "Health survey", User: user, Error: "An error occurred while saving your profile.",
			Values: r.PostForm, Data: surveyLayout,
		})
		return
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *ProfileHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	p, err := h.loadProfile(r, user.ID)
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	if p == nil {
		http.Redirect(w, r, "/survey", http.StatusSeeOther)
		return
	}
	h.render.HTML(w, http.StatusOK, "profile", page{Title: "Your profile", User: user, Data: p})
}

func (h *ProfileHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	p, err := h.loadProfile(r, user.ID)
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	day, err := h.meals.TodayView(r.Context(), user.ID)
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	h.render.HTML(w, http.StatusOK, "dashboard", page{Title: "Dashboard", User: user, Data: services.BuildDashboard(day, p)})
}

// Me returns the signed-in account and profile as JSON.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	p, err := h.loadProfile(r, user.ID)
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ToUserDTO(*user, p))
}
