package services

import (
	"context"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

// The interfaces below are satisfied by *store.Store and by the in-memory fake used in tests.

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id int) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByResetToken(ctx context.Context, token string) (*models.User, error)
	SetResetToken(ctx context.Context, userID int, token string, expires time.Time) error
	ConsumeResetToken(ctx context.Context, token, hashedPassword string, now time.Time) error
}

type ProfileStore interface {
	ProfileByUserID(ctx context.Context, userID int) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, p *models.UserProfile) error
}

type MealStore interface {
	MealsInPeriod(ctx context.Context, userID int, p store.Period) ([]models.MealLog, error)
	MealTimesInPeriod(ctx context.Context, userID int, p store.Period) ([]time.Time, error)
	MealByID(ctx context.Context, userID, id int) (*models.MealLog, error)
	CreateMeal(ctx context.Context, m *models.MealLog) error
	UpdateMeal(ctx context.Context, m *models.MealLog) error
	DeleteMeal(ctx context.Context, userID, id int) error
}

type FavoriteStore interface {
	CreateFavorite(ctx context.Context, f *models.FavoriteMeal) error
	FavoriteByID(ctx context.Context, userID, id int) (*models.FavoriteMeal, error)
	ListFavorites(ctx context.Context, userID int) ([]models.FavoriteMeal, error)
	DeleteFavorite(ctx context.Context, userID, id int) error
}

type KnowledgeStore interface {
	ListCategories(ctx context.Context) ([]models.KnowledgeCategory, error)
	CategoryByID(ctx context.Context, id int) (*models.KnowledgeCategory, error)
	CommentsForCategory(ctx context.Context, categoryID int) ([]models.CommentWithAuthor, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	CommentByID(ctx context.Context, id int) (*models.Comment, error)
	LikeComment(ctx context.Context, id int) (int, error)
	DeleteComment(ctx context.Context, id int) error
}

type ExerciseStore interface {
	CreateExercise(ctx context.Context, e *models.ExerciseLog) error
	ExercisesInPeriod(ctx context.Context, userID int, p store.Period) ([]models.ExerciseLog, error)
	ExerciseByID(ctx context.Context, userID, id int) (*models.ExerciseLog, error)
	DeleteExercise(ctx context.Context, userID, id int) error
}

type OverviewStore interface {
	Overview(ctx context.Context, weekStart time.Time) (store.Overview, error)
}

var (
	_ UserStore      = (*store.Store)(nil)
	_ ProfileStore   = (*store.Store)(nil)
	_ MealStore      = (*store.Store)(nil)
	_ FavoriteStore  = (*store.Store)(nil)
	_ KnowledgeStore = (*store.Store)(nil)
	_ ExerciseStore  = (*store.Store)(nil)
	_ OverviewStore  = (*store.Store)(nil)
)
