package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/crypto"
)

// EnsureSuperuser creates the initial administrator when no user holds email yet.
func EnsureSuperuser(ctx context.Context, db *sqlx.DB, email, password string) (bool, error) {
	var id int
	err := db.GetContext(ctx, &id, `SELECT id FROM users WHERE email=$1`, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("lookup superuser: %w", err)
	}

	hashed, err := crypto.HashPassword(password)
	if err != nil {
		return false, err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO users (email, username, hashed_password, is_active, is_superuser, is_verified)
	                              VALUES ($1, 'admin', $2, true, true, true)
	                              ON CONFLICT DO NOTHING`, email, hashed)
	if err != nil {
		return false, fmt.Errorf("create superuser: %w", err)
	}
	return true, nil
}

type seedCategory struct {
	Title, Description, Content string
}

var knowledgeCategories = []seedCategory{
	{
		Title:       "Weight Loss",
		Description: "Evidence-based strategies and tips for healthy, sustainable weight loss",
		Content: `<h2>Losing weight without losing momentum</h2>
<p>Fat loss comes from eating a little less energy than you spend, week after week. A deficit of roughly 500 kcal a day is a sensible starting point.</p>
<ul><li>Keep protein high to hold on to muscle</li><li>Fill half the plate with vegetables</li><li>Lift weights two or three times a week</li></ul>`,
	},
	{
		Title:       "Muscle Gain/Bulking",
		Description: "Guidelines for building muscle mass effectively and safely",
		Content: `<h2>Building muscle</h2>
<p>Muscle grows when training asks for more than last time and food supplies the material. A small surplus of 300 to 500 kcal keeps fat gain in check.</p>
<ul><li>Add load or reps over time</li><li>Spread protein across the day</li><li>Sleep enough to recover</li></ul>`,
	},
	{
		Title:       "General Health & Wellness",
		Description: "Comprehensive approach to maintaining overall health and wellness",
		Content: `<h2>Everyday health</h2>
<p>Regular movement, mostly whole foods and seven to nine hours of sleep cover most of what long-term health needs.</p>
<ul><li>Walk daily</li><li>Drink water through the day</li><li>Keep a consistent sleep schedule</li></ul>`,
	},
	{
		Title:       "Athletic Performance",
		Description: "Tips and strategies for improving sports and athletic performance",
		Content: `<h2>Performing at your best</h2>
<p>Fuel sessions with enough carbohydrate, plan hard and easy days, and treat recovery as part of training.</p>
<ul><li>Eat carbohydrate before long sessions</li><li>Rehydrate after training</li><li>Schedule deload weeks</li></ul>`,
	},
	{
		Title:       "Rehabilitation",
		Description: "Guidelines for safe recovery and return to activity after injury",
		Content: `<h2>Coming back from injury</h2>
<p>Return to activity in stages and let pain guide the pace. Work with a professional for anything beyond minor strains.</p>
<ul><li>Restore range of motion first</li><li>Rebuild strength gradually</li><li>Stop when pain sharpens</li></ul>`,
	},
}

// SeedKnowledgeCategories inserts the editorial categories when the table is empty.
func SeedKnowledgeCategories(ctx context.Context, db *sqlx.DB) (int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM knowledge_categories`); err != nil {
		return 0, fmt.Errorf("count knowledge categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	for _, c := range knowledgeCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO knowledge_categories (title, description, content) VALUES ($1, $2, $3)`,
			c.Title, c.Description, c.Content); err != nil {
			return 0, fmt.Errorf("seed knowledge category %q: %w", c.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(knowledgeCategories), nil
}
