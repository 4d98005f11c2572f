package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fittrack/internal/middleware"
	"fittrack/internal/services"
)

type FavoriteHandler struct {
	favorites *services.FavoriteService
	meals     *services.MealService
	logger    *zap.Logger
}

func NewFavoriteHandler(favorites *services.FavoriteService, meals *services.MealService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, meals: meals, logger: logger}
}

const favoriteNotFound = "Favorite meal not found"

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	favs, err := h.favorites.ListFavorites(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	out := make([]FavoriteDTO, len(favs))
	for i, f := range favs {
		out[i] = ToFavoriteDTO(f)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *FavoriteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.FavoriteInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	user := middleware.CurrentUser(r.Context())
	f, err := h.favorites.CreateFavorite(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Favorite meal added successfully", ID: f.ID})
}

func (h *FavoriteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, favoriteNotFound)
		return
	}
	user := middleware.CurrentUser(r.Context())
	f, err := h.favorites.GetFavorite(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, h.logger, err, favoriteNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ToFavoriteDTO(*f))
}

func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, favoriteNotFound)
		return
	}
	user := middleware.CurrentUser(r.Context())
	if err := h.favorites.DeleteFavorite(r.Context(), user.ID, id); err != nil {
		writeError(w, h.logger, err, favoriteNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Favorite meal deleted successfully"})
}

type applyFavoriteRequest struct {
	Datetime string  `json:"datetime"`
	Notes    *string `json:"notes"`
}

// Apply logs a new meal copied from the favorite at the requested time.
func (h *FavoriteHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, favoriteNotFound)
		return
	}
	var req applyFavoriteRequest
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
	m, err := h.favorites.ApplyFavorite(r.Context(), user.ID, id, at, req.Notes)
	if err != nil {
		writeError(w, h.logger, err, favoriteNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, ToMealDTO(*m, h.meals.Location()))
}
