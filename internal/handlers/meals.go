package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fittrack/internal/middleware"
	"fittrack/internal/models"
	"fittrack/internal/services"
)

type MealHandler struct {
	meals     *services.MealService
	favorites *services.FavoriteService
	render    *Renderer
	logger    *zap.Logger
}

func NewMealHandler(meals *services.MealService, favorites *services.FavoriteService, render *Renderer, logger *zap.Logger) *MealHandler {
	return &MealHandler{meals: meals, favorites: favorites, render: render, logger: logger}
}

type mealTrackerData struct {
	*services.MonthView
	MealTypes      []models.MealType
	FoodCategories []models.FoodCategory
	Units          []models.Unit
	Favorites      []models.FavoriteMeal
}

func monthURL(year int, month int) string {
	return fmt.Sprintf("/meal-tracker/%d/%d", year, month)
}

// Tracker sends the user to the current month.
func (h *MealHandler) Tracker(w http.ResponseWriter, r *http.Request) {
	today := h.meals.Today()
	http.Redirect(w, r, monthURL(today.Year(), int(today.Month())), http.StatusSeeOther)
}

func (h *MealHandler) Month(w http.ResponseWriter, r *http.Request) {
	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	if yerr != nil || merr != nil {
		http.Error(w, "invalid year or month", http.StatusBadRequest)
		return
	}
	user := middleware.CurrentUser(r.Context())
	view, err := h.meals.ViewMonth(r.Context(), user.ID, year, month)
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	favorites, err := h.favorites.ListFavorites(r.Context(), user.ID)
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	h.render.HTML(w, http.StatusOK, "meal_tracker", page{
		Title: fmt.Sprintf("%s %d", view.Month, view.Year),
		User:  user,
		Data: mealTrackerData{
			MonthView:      view,
			MealTypes:      models.MealTypes.Values(),
			FoodCategories: models.FoodCategories.Values(),
			Units:          models.Units.Values(),
			Favorites:      favorites,
		},
	})
}

// Day returns the meals and totals of one day as JSON for the calendar pop-up.
func (h *MealHandler) Day(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	view, err := h.meals.ViewDay(r.Context(), user.ID, chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// addFromForm logs a meal from the calendar form. A chosen favorite supplies the
// components; otherwise they come from the components[i][field] inputs.
func (h *MealHandler) addFromForm(w http.ResponseWriter, r *http.Request) (*models.MealLog, error) {
	if err := parseForm(w, r); err != nil {
		return nil, &services.ValidationError{Message: "Invalid form"}
	}
	user := middleware.CurrentUser(r.Context())
	form := r.PostForm
	at, err := h.meals.ParseDateTime(form.Get("date"), form.Get("time"))
	if err != nil {
		return nil, err
	}
	notes := optionalText(form.Get("notes"))

	if fav := form.Get("favorite_meal"); fav != "" {
		favID, err := strconv.Atoi(fav)
		if err != nil {
			return nil, &services.ValidationError{Message: "Invalid favorite meal", Fields: map[string]string{"favorite_meal": "Must be a whole number"}}
		}
		return h.favorites.ApplyFavorite(r.Context(), user.ID, favID, at, notes)
	}

	components, err := componentForm(form)
	if err != nil {
		return nil, err
	}
	return h.meals.AddMeal(r.Context(), user.ID, services.MealInput{
		Date:       at,
		MealType:   form.Get("meal_type"),
		Notes:      notes,
		Components: components,
	})
}

func (h *MealHandler) AddMealForm(w http.ResponseWriter, r *http.Request) {
	m, err := h.addFromForm(w, r)
	if err != nil {
		pageError(w, h.logger, err, "Favorite meal not found")
		return
	}
	local := m.Date.In(h.meals.Location())
	http.Redirect(w, r, monthURL(local.Year(), int(local.Month())), http.StatusSeeOther)
}

type messageResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}

// Create accepts the same form encoding as the calendar page and answers with the new id.
func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	m, err := h.addFromForm(w, r)
	if err != nil {
		writeError(w, h.logger, err, "Favorite meal not found")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Meal added successfully", ID: m.ID})
}

func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Meal not found")
		return
	}
	user := middleware.CurrentUser(r.Context())
	m, err := h.meals.GetMeal(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, h.logger, err, "Meal not found")
		return
	}
	writeJSON(w, http.StatusOK, ToMealDTO(*m, h.meals.Location()))
}

type mealUpdateRequest struct {
	Datetime   string                    `json:"datetime"`
	MealType   string                    `json:"meal_type"`
	Notes      *string                   `json:"notes"`
	IsFavorite bool                      `json:"is_favorite"`
	Components []services.ComponentInput `json:"components"`
}

func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Meal not found")
		return
	}
	var req mealUpdateRequest
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
	_, err = h.meals.UpdateMeal(r.Context(), user.ID, id, services.MealInput{
		Date:       at,
		MealType:   req.MealType,
		Notes:      req.Notes,
		IsFavorite: req.IsFavorite,
		Components: req.Components,
	})
	if err != nil {
		writeError(w, h.logger, err, "Meal not found")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Meal updated successfully"})
}

// Delete serves both DELETE and the POST fallback used by plain forms.
func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Meal not found")
		return
	}
	user := middleware.CurrentUser(r.Context())
	if err := h.meals.DeleteMeal(r.Context(), user.ID, id); err != nil {
		writeError(w, h.logger, err, "Meal not found")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Meal deleted successfully"})
}
