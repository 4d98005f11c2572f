package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/models"
)

const (
	categoryColumns = `id, title, description, content, created_at, updated_at`
	commentColumns  = `c.id, c.category_id, c.user_id, c.content, COALESCE(c.likes, 0) AS likes, c.created_at, c.updated_at`
)

func (s *Store) ListCategories(ctx context.Context) ([]models.KnowledgeCategory, error) {
	out := []models.KnowledgeCategory{}
	if err := s.db.SelectContext(ctx, &out, `SELECT `+categoryColumns+` FROM knowledge_categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	return out, nil
}

func (s *Store) CategoryByID(ctx context.Context, id int) (*models.KnowledgeCategory, error) {
	var c models.KnowledgeCategory
	err := s.db.GetContext(ctx, &c, `SELECT `+categoryColumns+` FROM knowledge_categories WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CommentsForCategory returns the category's comments oldest first, each with its author's username.
func (s *Store) CommentsForCategory(ctx context.Context, categoryID int) ([]models.CommentWithAuthor, error) {
	out := []models.CommentWithAuthor{}
	err := s.db.SelectContext(ctx, &out, `SELECT `+commentColumns+`, u.username
	                                      FROM comments c JOIN users u ON u.id = c.user_id
	                                      WHERE c.category_id=$1
	                                      ORDER BY c.created_at, c.id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	return out, nil
}

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	err := s.db.QueryRowxContext(ctx, `INSERT INTO comments (category_id, user_id, content, likes)
	                                   VALUES ($1, $2, $3, 0) RETURNING id, likes, created_at, updated_at`,
		c.CategoryID, c.UserID, c.Content).Scan(&c.ID, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
	return mapError(err)
}

func (s *Store) CommentByID(ctx context.Context, id int) (*models.Comment, error) {
	var c models.Comment
	err := s.db.GetContext(ctx, &c, `SELECT `+commentColumns+` FROM comments c WHERE c.id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LikeComment increments the like counter in a single statement and returns the new count.
func (s *Store) LikeComment(ctx context.Context, id int) (int, error) {
	var likes int
	err := s.db.QueryRowxContext(ctx, `UPDATE comments SET likes = COALESCE(likes, 0) + 1 WHERE id=$1 RETURNING likes`, id).Scan(&likes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return likes, err
}

func (s *Store) DeleteComment(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
