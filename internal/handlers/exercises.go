package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fittrack/internal/middleware"
	"fittrack/internal/services"
)

type ExerciseHandler struct {
	exercises *services.ExerciseService
	meals     *services.MealService
	logger    *zap.Logger
}

func NewExerciseHandler(exercises *services.ExerciseService, meals *services.MealService, logger *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises, meals: meals, logger: logger}
}

const exerciseNotFound = "Exercise not found"

type exerciseRequest struct {
	Datetime            string                            `json:"datetime"`
	ExerciseType        string                            `json:"exercise_type"`
	Duration            float64                           `json:"duration"`
	Intensity           string                            `json:"intensity"`
	TotalCaloriesBurned *int                              `json:"total_calories_burned"`
	Notes               *string                           `json:"notes"`
	Components          []services.ExerciseComponentInput `json:"components"`
}

// List returns the exercises of ?date=YYYY-MM-DD, defaulting to today.
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	logs, err := h.exercises.ExercisesOn(r.Context(), user.ID, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	out := make([]ExerciseDTO, len(logs))
	for i, e := range logs {
		out[i] = ToExerciseDTO(e, h.meals.Location())
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	at, err := h.meals.ParseDateTime(req.Datetime, "")
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	user := middleware.CurrentUser(r.Context())
	e, err := h.exercises.CreateExercise(r.Context(), user.ID, services.ExerciseInput{
		Date:                at,
		ExerciseType:        req.ExerciseType,
		Duration:            req.Duration,
		Intensity:           req.Intensity,
		TotalCaloriesBurned: req.TotalCaloriesBurned,
		Notes:               req.Notes,
		Components:          req.Components,
	})
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, ToExerciseDTO(*e, h.meals.Location()))
}

func (h *ExerciseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, exerciseNotFound)
		return
	}
	user := middleware.CurrentUser(r.Context())
	e, err := h.exercises.GetExercise(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, h.logger, err, exerciseNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ToExerciseDTO(*e, h.meals.Location()))
}

func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, exerciseNotFound)
		return
	}
	user := middleware.CurrentUser(r.Context())
	if err := h.exercises.DeleteExercise(r.Context(), user.ID, id); err != nil {
		writeError(w, h.logger, err, exerciseNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Exercise deleted successfully"})
}
