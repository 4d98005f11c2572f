package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"fittrack/internal/middleware"
	"fittrack/internal/services"
)

type KnowledgeHandler struct {
	knowledge *services.KnowledgeService
	render    *Renderer
	logger    *zap.Logger
}

func NewKnowledgeHandler(knowledge *services.KnowledgeService, render *Renderer, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge, render: render, logger: logger}
}

func categoryURL(id int) string { return "/knowledge-base/" + strconv.Itoa(id) }

func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.knowledge.ListCategories(r.Context())
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	h.render.HTML(w, http.StatusOK, "knowledge_base", page{
		Title: "Knowledge base", User: middleware.CurrentUser(r.Context()), Data: categories,
	})
}

func (h *KnowledgeHandler) Category(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}
	h.renderCategory(w, r, id, http.StatusOK, page{})
}

func (h *KnowledgeHandler) renderCategory(w http.ResponseWriter, r *http.Request, id, status int, p page) {
	detail, err := h.knowledge.Category(r.Context(), id)
	if err != nil {
		pageError(w, h.logger, err, "Category not found")
		return
	}
	p.Title = detail.Category.Title
	p.User = middleware.CurrentUser(r.Context())
	p.Data = detail
	h.render.HTML(w, status, "knowledge_category", p)
}

func (h *KnowledgeHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	user := middleware.CurrentUser(r.Context())
	_, err := h.knowledge.AddComment(r.Context(), user.ID, id, r.PostForm.Get("content"))
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		h.renderCategory(w, r, id, http.StatusBadRequest, page{Error: verr.Message, Values: r.PostForm})
		return
	}
	if err != nil {
		pageError(w, h.logger, err, "Category not found")
		return
	}
	http.Redirect(w, r, categoryURL(id), http.StatusSeeOther)
}

func (h *KnowledgeHandler) LikeComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "Comment not found", http.StatusNotFound)
		return
	}
	c, err := h.knowledge.Comment(r.Context(), id)
	if err != nil {
		pageError(w, h.logger, err, "Comment not found")
		return
	}
	if _, err := h.knowledge.LikeComment(r.Context(), id); err != nil {
		pageError(w, h.logger, err, "Comment not found")
		return
	}
	http.Redirect(w, r, categoryURL(c.CategoryID), http.StatusSeeOther)
}

func (h *KnowledgeHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		http.Error(w, "Comment not found", http.StatusNotFound)
		return
	}
	user := middleware.CurrentUser(r.Context())
	categoryID, err := h.knowledge.DeleteComment(r.Context(), user.ID, id)
	if errors.Is(err, services.ErrForbidden) {
		http.Error(w, "Not authorized to delete this comment", http.StatusForbidden)
		return
	}
	if err != nil {
		pageError(w, h.logger, err, "Comment not found")
		return
	}
	http.Redirect(w, r, categoryURL(categoryID), http.StatusSeeOther)
}
