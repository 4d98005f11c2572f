package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/models"
)

const favoriteColumns = `id, user_id, name, meal_type, created_at`

func (s *Store) CreateFavorite(ctx context.Context, f *models.FavoriteMeal) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `INSERT INTO favorite_meals (user_id, name, meal_type)
		                                 VALUES ($1, $2, $3) RETURNING id, created_at`,
			f.UserID, f.Name, f.MealType).Scan(&f.ID, &f.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert favorite: %w", err)
		}
		for i := range f.Components {
			c := &f.Components[i]
			c.FavoriteMealID = f.ID
			c.Position = i
			err := tx.QueryRowxContext(ctx, `INSERT INTO favorite_meal_components (favorite_meal_id, position, `+componentColumns+`)
			                                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
				f.ID, i, c.FoodItem, c.Category, c.Quantity, c.Unit, c.Calories, c.Protein, c.Carbs, c.Fat).Scan(&c.ID)
			if err != nil {
				return fmt.Errorf("insert favorite component: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) FavoriteByID(ctx context.Context, userID, id int) (*models.FavoriteMeal, error) {
	var f models.FavoriteMeal
	err := s.db.GetContext(ctx, &f, `SELECT `+favoriteColumns+` FROM favorite_meals WHERE id=$1 AND user_id=$2`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	favs := []models.FavoriteMeal{f}
	if err := s.attachFavoriteComponents(ctx, favs); err != nil {
		return nil, err
	}
	return &favs[0], nil
}

func (s *Store) ListFavorites(ctx context.Context, userID int) ([]models.FavoriteMeal, error) {
	favs := []models.FavoriteMeal{}
	err := s.db.SelectContext(ctx, &favs, `SELECT `+favoriteColumns+` FROM favorite_meals WHERE user_id=$1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}
	if err := s.attachFavoriteComponents(ctx, favs); err != nil {
		return nil, err
	}
	return favs, nil
}

func (s *Store) DeleteFavorite(ctx context.Context, userID, id int) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var owner int
		err := tx.GetContext(ctx, &owner, `SELECT user_id FROM favorite_meals WHERE id=$1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != userID) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM favorite_meal_components WHERE favorite_meal_id=$1`, id); err != nil {
			return fmt.Errorf("delete favorite components: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM favorite_meals WHERE id=$1`, id); err != nil {
			return fmt.Errorf("delete favorite: %w", err)
		}
		return nil
	})
}

func (s *Store) attachFavoriteComponents(ctx context.Context, favs []models.FavoriteMeal) error {
	if len(favs) == 0 {
		return nil
	}
	ids := make([]int, len(favs))
	for i, f := range favs {
		ids[i] = f.ID
	}
	query, args, err := sqlx.In(`SELECT id, favorite_meal_id, position, `+componentColumns+`
	                             FROM favorite_meal_components WHERE favorite_meal_id IN (?) ORDER BY favorite_meal_id, position, id`, ids)
	if err != nil {
		return err
	}
	var comps []models.FavoriteMealComponent
	if err := s.db.SelectContext(ctx, &comps, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("select favorite components: %w", err)
	}
	byFav := make(map[int][]models.FavoriteMealComponent, len(favs))
	for _, c := range comps {
		byFav[c.FavoriteMealID] = append(byFav[c.FavoriteMealID], c)
	}
	for i := range favs {
		favs[i].Components = byFav[favs[i].ID]
		if favs[i].Components == nil {
			favs[i].Components = []models.FavoriteMealComponent{}
		}
	}
	return nil
}
