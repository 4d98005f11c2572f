package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/models"
)

const (
	mealColumns      = `id, user_id, date, meal_type, is_favorite, notes`
	componentColumns = `food_item, category, quantity, unit, calories, protein, carbs, fat`
)

// MealsInPeriod returns the user's meals inside p, oldest first, with components loaded.
func (s *Store) MealsInPeriod(ctx context.Context, userID int, p Period) ([]models.MealLog, error) {
	meals := []models.MealLog{}
	err := s.db.SelectContext(ctx, &meals,
		`SELECT `+mealColumns+` FROM meal_logs WHERE user_id=$1 AND `+p.clause("date", 2)+` ORDER BY date, id`,
		userID, p.Start, p.End)
	if err != nil {
		return nil, fmt.Errorf("select meals: %w", err)
	}
	if err := s.attachMealComponents(ctx, meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// MealTimesInPeriod returns the timestamp of every meal in p without loading components.
func (s *Store) MealTimesInPeriod(ctx context.Context, userID int, p Period) ([]time.Time, error) {
	var out []time.Time
	err := s.db.SelectContext(ctx, &out,
		`SELECT date FROM meal_logs WHERE user_id=$1 AND `+p.clause("date", 2)+` ORDER BY date`,
		userID, p.Start, p.End)
	if err != nil {
		return nil, fmt.Errorf("select meal dates: %w", err)
	}
	return out, nil
}

// MealByID loads one of the user's meals. Meals owned by someone else are reported as not found.
func (s *Store) MealByID(ctx context.Context, userID, id int) (*models.MealLog, error) {
	var m models.MealLog
	err := s.db.GetContext(ctx, &m, `SELECT `+mealColumns+` FROM meal_logs WHERE id=$1 AND user_id=$2`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	meals := []models.MealLog{m}
	if err := s.attachMealComponents(ctx, meals); err != nil {
		return nil, err
	}
	return &meals[0], nil
}

// CreateMeal inserts the meal and its components atomically, filling in generated ids.
func (s *Store) CreateMeal(ctx context.Context, m *models.MealLog) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `INSERT INTO meal_logs (user_id, date, meal_type, is_favorite, notes)
		                                 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			m.UserID, m.Date, m.MealType, m.IsFavorite, m.Notes).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("insert meal: %w", err)
		}
		return insertMealComponents(ctx, tx, m)
	})
}

// UpdateMeal rewrites the meal header and replaces all of its components.
func (s *Store) UpdateMeal(ctx context.Context, m *models.MealLog) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE meal_logs SET date=$1, meal_type=$2, is_favorite=$3, notes=$4
		                                 WHERE id=$5 AND user_id=$6`,
			m.Date, m.MealType, m.IsFavorite, m.Notes, m.ID, m.UserID)
		if err != nil {
			return fmt.Errorf("update meal: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM meal_components WHERE meal_log_id=$1`, m.ID); err != nil {
			return fmt.Errorf("clear meal components: %w", err)
		}
		return insertMealComponents(ctx, tx, m)
	})
}

// DeleteMeal removes the components first, then the meal itself.
func (s *Store) DeleteMeal(ctx context.Context, userID, id int) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var owner int
		err := tx.GetContext(ctx, &owner, `SELECT user_id FROM meal_logs WHERE id=$1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != userID) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM meal_components WHERE meal_log_id=$1`, id); err != nil {
			return fmt.Errorf("delete meal components: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM meal_logs WHERE id=$1`, id); err != nil {
			return fmt.Errorf("delete meal: %w", err)
		}
		return nil
	})
}

func insertMealComponents(ctx context.Context, tx *sqlx.Tx, m *models.MealLog) error {
	for i := range m.Components {
		c := &m.Components[i]
		c.MealLogID = m.ID
		c.Position = i
		err := tx.QueryRowxContext(ctx, `INSERT INTO meal_components (meal_log_id, position, `+componentColumns+`)
		                                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			m.ID, i, c.FoodItem, c.Category, c.Quantity, c.Unit, c.Calories, c.Protein, c.Carbs, c.Fat).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("insert meal component: %w", err)
		}
	}
	return nil
}

func (s *Store) attachMealComponents(ctx context.Context, meals []models.MealLog) error {
	if len(meals) == 0 {
		return nil
	}
	ids := make([]int, len(meals))
	for i, m := range meals {
		ids[i] = m.ID
	}
	query, args, err := sqlx.In(`SELECT id, meal_log_id, position, `+componentColumns+`
	                             FROM meal_components WHERE meal_log_id IN (?) ORDER BY meal_log_id, position, id`, ids)
	if err != nil {
		return err
	}
	var comps []models.MealComponent
	if err := s.db.SelectContext(ctx, &comps, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("select meal components: %w", err)
	}
	byMeal := make(map[int][]models.MealComponent, len(meals))
	for _, c := range comps {
		byMeal[c.MealLogID] = append(byMeal[c.MealLogID], c)
	}
	for i := range meals {
		meals[i].Components = byMeal[meals[i].ID]
		if meals[i].Components == nil {
			meals[i].Components = []models.MealComponent{}
		}
	}
	return nil
}
