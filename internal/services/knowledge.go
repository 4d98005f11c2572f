package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fittrack/internal/models"
)

const maxCommentLength = 2000

type KnowledgeService struct {
	knowledge KnowledgeStore
	logger    *zap.Logger
}

func NewKnowledgeService(knowledge KnowledgeStore, logger *zap.Logger) *KnowledgeService {
	return &KnowledgeService{knowledge: knowledge, logger: logger}
}

type CategoryDetail struct {
	Category models.KnowledgeCategory
	Comments []models.CommentWithAuthor
}

func (s *KnowledgeService) ListCategories(ctx context.Context) ([]models.KnowledgeCategory, error) {
	return s.knowledge.ListCategories(ctx)
}

func (s *KnowledgeService) Category(ctx context.Context, id int) (*CategoryDetail, error) {
	c, err := s.knowledge.CategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.knowledge.CommentsForCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return &CategoryDetail{Category: *c, Comments: comments}, nil
}

func (s *KnowledgeService) AddComment(ctx context.Context, userID, categoryID int, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Message: "Comment cannot be empty", Fields: map[string]string{"content": "Comment cannot be empty"}}
	}
	if len([]rune(content)) > maxCommentLength {
		return nil, &ValidationError{Message: "Comment is too long", Fields: map[string]string{"content": "Comment is too long"}}
	}
	if _, err := s.knowledge.CategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	c := &models.Comment{CategoryID: categoryID, UserID: userID, Content: content}
	if err := s.knowledge.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (s *KnowledgeService) Comment(ctx context.Context, id int) (*models.Comment, error) {
	return s.knowledge.CommentByID(ctx, id)
}

// LikeComment adds one like. Likes are not deduplicated per user.
func (s *KnowledgeService) LikeComment(ctx context.Context, commentID int) (int, error) {
	return s.knowledge.LikeComment(ctx, commentID)
}

// DeleteComment removes a comment, returning the category it belonged to. Only the author may delete.
func (s *KnowledgeService) DeleteComment(ctx context.Context, userID, commentID int) (int, error) {
	c, err := s.knowledge.CommentByID(ctx, commentID)
	if err != nil {
		return 0, err
	}
	if c.UserID != userID {
		return 0, ErrForbidden
	}
	if err := s.knowledge.DeleteComment(ctx, commentID); err != nil {
		return 0, err
	}
	return c.CategoryID, nil
}
