package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/models"
)

const (
	exerciseColumns          = `id, user_id, date, exercise_type, duration, intensity, total_calories_burned, notes`
	exerciseComponentColumns = `exercise_name, category, sets, reps, weight, distance, calories_burned`
)

func (s *Store) CreateExercise(ctx context.Context, e *models.ExerciseLog) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `INSERT INTO exercise_logs (user_id, date, exercise_type, duration, intensity, total_calories_burned, notes)
		                                 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			e.UserID, e.Date, e.ExerciseType, e.Duration, e.Intensity, e.TotalCaloriesBurned, e.Notes).Scan(&e.ID)
		if err != nil {
			return fmt.Errorf("insert exercise: %w", err)
		}
		for i := range e.Components {
			c := &e.Components[i]
			c.ExerciseLogID = e.ID
			c.Position = i
			err := tx.QueryRowxContext(ctx, `INSERT INTO exercise_components (exercise_log_id, position, `+exerciseComponentColumns+`)
			                                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
				e.ID, i, c.ExerciseName, c.Category, c.Sets, c.Reps, c.Weight, c.Distance, c.CaloriesBurned).Scan(&c.ID)
			if err != nil {
				return fmt.Errorf("insert exercise component: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) ExercisesInPeriod(ctx context.Context, userID int, p Period) ([]models.ExerciseLog, error) {
	logs := []models.ExerciseLog{}
	err := s.db.SelectContext(ctx, &logs,
		`SELECT `+exerciseColumns+` FROM exercise_logs WHERE user_id=$1 AND `+p.clause("date", 2)+` ORDER BY date, id`,
		userID, p.Start, p.End)
	if err != nil {
		return nil, fmt.Errorf("select exercises: %w", err)
	}
	if err := s.attachExerciseComponents(ctx, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) ExerciseByID(ctx context.Context, userID, id int) (*models.ExerciseLog, error) {
	var e models.ExerciseLog
	err := s.db.GetContext(ctx, &e, `SELECT `+exerciseColumns+` FROM exercise_logs WHERE id=$1 AND user_id=$2`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	logs := []models.ExerciseLog{e}
	if err := s.attachExerciseComponents(ctx, logs); err != nil {
		return nil, err
	}
	return &logs[0], nil
}

func (s *Store) DeleteExercise(ctx context.Context, userID, id int) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var owner int
		err := tx.GetContext(ctx, &owner, `SELECT user_id FROM exercise_logs WHERE id=$1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != userID) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM exercise_components WHERE exercise_log_id=$1`, id); err != nil {
			return fmt.Errorf("delete exercise components: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM exercise_logs WHERE id=$1`, id); err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}
		return nil
	})
}

func (s *Store) attachExerciseComponents(ctx context.Context, logs []models.ExerciseLog) error {
	if len(logs) == 0 {
		return nil
	}
	ids := make([]int, len(logs))
	for i, e := range logs {
		ids[i] = e.ID
	}
	query, args, err := sqlx.In(`SELECT id, exercise_log_id, position, `+exerciseComponentColumns+`
	                             FROM exercise_components WHERE exercise_log_id IN (?) ORDER BY exercise_log_id, position, id`, ids)
	if err != nil {
		return err
	}
	var comps []models.ExerciseComponent
	if err := s.db.SelectContext(ctx, &comps, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("select exercise components: %w", err)
	}
	byLog := make(map[int][]models.ExerciseComponent, len(logs))
	for _, c := range comps {
		byLog[c.ExerciseLogID] = append(byLog[c.ExerciseLogID], c)
	}
	for i := range logs {
		logs[i].Components = byLog[logs[i].ID]
		if logs[i].Components == nil {
			logs[i].Components = []models.ExerciseComponent{}
		}
	}
	return nil
}
