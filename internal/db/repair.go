package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const legacyTagPattern = `'^[A-Za-z_]+\.'`

type tagColumn struct {
	table, column string
}

// Scalar tag columns that older clients wrote as '<enumname>.<VALUE>'.
var scalarTagColumns = []tagColumn{
	{"meal_logs", "meal_type"},
	{"meal_components", "category"},
	{"meal_components", "unit"},
	{"favorite_meals", "meal_type"},
	{"favorite_meal_components", "category"},
	{"favorite_meal_components", "unit"},
	{"exercise_logs", "exercise_type"},
	{"exercise_logs", "intensity"},
	{"exercise_components", "category"},
}

// JSONB tag arrays on user_profiles.
var listTagColumns = []string{
	"medical_conditions", "medications", "allergies", "past_injuries", "exercise_types", "preferred_sports",
}

func repairStatements() []string {
	stmts := make([]string, 0, len(scalarTagColumns)+len(listTagColumns))
	for _, c := range scalarTagColumns {
		stmts = append(stmts, fmt.Sprintf(
			`UPDATE %[1]s SET %[2]s = lower(regexp_replace(%[2]s, %[3]s, '')) WHERE %[2]s ~ %[3]s OR %[2]s <> lower(%[2]s)`,
			c.table, c.column, legacyTagPattern))
	}
	for _, col := range listTagColumns {
		stmts = append(stmts, fmt.Sprintf(
			`UPDATE user_profiles SET %[1]s = (
				SELECT COALESCE(jsonb_agg(lower(regexp_replace(e, %[2]s, ''))), '[]'::jsonb)
				FROM jsonb_array_elements_text(%[1]s) AS e
			) WHERE EXISTS (
				SELECT 1 FROM jsonb_array_elements_text(%[1]s) AS e WHERE e ~ %[2]s OR e <> lower(e)
			)`,
			col, legacyTagPattern))
	}
	return stmts
}

// RepairEnumTags rewrites legacy enum artifacts to bare lowercase tags in one transaction.
// Rows already in canonical form are untouched, so running it twice is a no-op.
func RepairEnumTags(ctx context.Context, db *sqlx.DB) (int64, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var total int64
	for _, stmt := range repairStatements() {
		res, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return 0, fmt.Errorf("repair enum tags: %w", err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}
