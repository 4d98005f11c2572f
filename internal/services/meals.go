package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

const (
	DateLayout         = "2006-01-02"
	DateTimeLayout     = "2006-01-02T15:04"
	dayViewStampLayout = "2006-01-02 15:04:05"
)

// ComponentInput is one food line as submitted, before tag validation.
type ComponentInput struct {
	FoodItem string   `json:"food_item"`
	Category string   `json:"category"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Calories float64  `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

type MealInput struct {
	Date       time.Time
	MealType   string
	Notes      *string
	IsFavorite bool
	Components []ComponentInput
}

// MealTotals are the summed nutrients of a meal or a day. Unset macros count as zero.
type MealTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (t *MealTotals) add(o MealTotals) {
	t.Calories += o.Calories
	t.Protein += o.Protein
	t.Carbs += o.Carbs
	t.Fat += o.Fat
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func SumPortions(portions []models.FoodPortion) MealTotals {
	var t MealTotals
	for _, p := range portions {
		t.Calories += p.Calories
		t.Protein += orZero(p.Protein)
		t.Carbs += orZero(p.Carbs)
		t.Fat += orZero(p.Fat)
	}
	return t
}

func SumMeal(m models.MealLog) MealTotals {
	portions := make([]models.FoodPortion, len(m.Components))
	for i, c := range m.Components {
		portions[i] = c.FoodPortion
	}
	return SumPortions(portions)
}

// MealSummary is one row of the day view.
type MealSummary struct {
	ID            int             `json:"id"`
	MealType      models.MealType `json:"meal_type"`
	Date          string          `json:"date"`
	TotalCalories float64         `json:"total_calories"`
	TotalProtein  float64         `json:"total_protein"`
	TotalCarbs    float64         `json:"total_carbs"`
	TotalFat      float64         `json:"total_fat"`
}

type DayView struct {
	Date   string        `json:"-"`
	Meals  []MealSummary `json:"meals"`
	Totals MealTotals    `json:"totals"`
}

type MealService struct {
	meals  MealStore
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

func NewMealService(meals MealStore, loc *time.Location, logger *zap.Logger) *MealService {
	if loc == nil {
		loc = time.UTC
	}
	return &MealService{meals: meals, loc: loc, logger: logger, now: time.Now}
}

func (s *MealService) WithClock(now func() time.Time) *MealService {
	cp := *s
	cp.now = now
	return &cp
}

// Location is the zone calendar days are interpreted in.
func (s *MealService) Location() *time.Location { return s.loc }

// Today returns the current date in the service's zone.
func (s *MealService) Today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

// ParseDate parses YYYY-MM-DD as local midnight.
func (s *MealService) ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), s.loc)
	if err != nil {
		return time.Time{}, invalid(fmt.Sprintf("Invalid date format: %q, expected YYYY-MM-DD", value))
	}
	return t, nil
}

// ParseDateTime accepts either a single "YYYY-MM-DDTHH:MM" value or separate date and time fields.
func (s *MealService) ParseDateTime(date, clock string) (time.Time, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	value := date
	if clock != "" {
		value = date + "T" + clock
	}
	t, err := time.ParseInLocation(DateTimeLayout, value, s.loc)
	if err != nil {
		return time.Time{}, invalid(fmt.Sprintf("Invalid date/time: %q, expected YYYY-MM-DD HH:MM", value))
	}
	return t, nil
}

func dayPeriod(day time.Time) store.Period {
	return store.Period{Start: day, End: day.AddDate(0, 0, 1).Add(-time.Second), IncludeEnd: true}
}

// ViewDay lists the meals logged on date (YYYY-MM-DD) with per-meal and whole-day totals.
func (s *MealService) ViewDay(ctx context.Context, userID int, date string) (*DayView, error) {
	day, err := s.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.dayView(ctx, userID, day)
}

func (s *MealService) TodayView(ctx context.Context, userID int) (*DayView, error) {
	return s.dayView(ctx, userID, s.Today())
}

func (s *MealService) dayView(ctx context.Context, userID int, day time.Time) (*DayView, error) {
	meals, err := s.meals.MealsInPeriod(ctx, userID, dayPeriod(day))
	if err != nil {
		return nil, fmt.Errorf("load meals: %w", err)
	}
	view := &DayView{Date: day.Format(DateLayout), Meals: make([]MealSummary, 0, len(meals))}
	for _, m := range meals {
		t := SumMeal(m)
		view.Meals = append(view.Meals, MealSummary{
			ID:            m.ID,
			MealType:      m.MealType,
			Date:          m.Date.In(s.loc).Format(dayViewStampLayout),
			TotalCalories: t.Calories,
			TotalProtein:  t.Protein,
			TotalCarbs:    t.Carbs,
			TotalFat:      t.Fat,
		})
		view.Totals.add(t)
	}
	return view, nil
}

// MonthView is the calendar page model.
type MonthView struct {
	Year      int
	Month     time.Month
	Weeks     [][]CalendarCell
	Prev      MonthAnchor
	Next      MonthAnchor
	Today     string
	MealCount int
}

func (s *MealService) ViewMonth(ctx context.Context, userID, year, month int) (*MonthView, error) {
	if month < 1 || month > 12 {
		return nil, invalid(fmt.Sprintf("Invalid month %d", month))
	}
	if year < 1 || year > 9999 {
		return nil, invalid(fmt.Sprintf("Invalid year %d", year))
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	p := store.Period{Start: start, End: start.AddDate(0, 1, 0)}

	times, err := s.meals.MealTimesInPeriod(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("load meal dates: %w", err)
	}
	withMeals := make(map[string]bool, len(times))
	for _, t := range times {
		withMeals[t.In(s.loc).Format(DateLayout)] = true
	}

	prev, next := MonthAnchors(year, time.Month(month))
	return &MonthView{
		Year:      year,
		Month:     time.Month(month),
		Weeks:     BuildMonthGrid(year, time.Month(month), withMeals),
		Prev:      prev,
		Next:      next,
		Today:     s.Today().Format(DateLayout),
		MealCount: len(times),
	}, nil
}

// nonNegative rejects NaN and the infinities along with negatives; none of them can be
// stored or encoded as JSON.
func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func validateComponents(inputs []ComponentInput, errs fieldErrors) []models.FoodPortion {
	out := make([]models.FoodPortion, 0, len(inputs))
	for i, in := range inputs {
		key := func(f string) string { return fmt.Sprintf("components[%d][%s]", i, f) }
		p := models.FoodPortion{
			FoodItem: strings.TrimSpace(in.FoodItem),
			Quantity: in.Quantity,
			Calories: in.Calories,
			Protein:  in.Protein,
			Carbs:    in.Carbs,
			Fat:      in.Fat,
		}
		if p.FoodItem == "" {
			errs.add(key("food_item"), "Food item is required")
		}
		cat, err := models.FoodCategories.Parse(in.Category)
		if err != nil {
			errs.add(key("category"), err.Error())
		}
		p.Category = cat
		unit, err := models.Units.Parse(in.Unit)
		if err != nil {
			errs.add(key("unit"), err.Error())
		}
		p.Unit = unit
		if !nonNegative(in.Quantity) {
			errs.add(key("quantity"), "Must be a non-negative number")
		}
		if !nonNegative(in.Calories) {
			errs.add(key("calories"), "Must be a non-negative number")
		}
		for name, v := range map[string]*float64{"protein": in.Protein, "carbs": in.Carbs, "fat": in.Fat} {
			if v != nil && !nonNegative(*v) {
				errs.add(key(name), "Must be a non-negative number")
			}
		}
		out = append(out, p)
	}
	return out
}

// buildMeal validates every tag and number before anything is written.
func (s *MealService) buildMeal(userID int, in MealInput) (*models.MealLog, error) {
	errs := fieldErrors{}
	mt, err := models.MealTypes.Parse(in.MealType)
	if err != nil {
		errs.add("meal_type", err.Error())
	}
	if in.Date.IsZero() {
		errs.add("date", "Date is required")
	}
	portions := validateComponents(in.Components, errs)
	if err := errs.err("Invalid meal"); err != nil {
		return nil, err
	}

	m := &models.MealLog{
		UserID:     userID,
		Date:       in.Date,
		MealType:   mt,
		IsFavorite: in.IsFavorite,
		Notes:      in.Notes,
		Components: make([]models.MealComponent, len(portions)),
	}
	for i, p := range portions {
		m.Components[i] = models.MealComponent{FoodPortion: p}
	}
	return m, nil
}

func (s *MealService) AddMeal(ctx context.Context, userID int, in MealInput) (*models.MealLog, error) {
	m, err := s.buildMeal(userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.meals.CreateMeal(ctx, m); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	s.logger.Debug("meal added", zap.Int("user_id", userID), zap.Int("meal_id", m.ID), zap.Int("components", len(m.Components)))
	return m, nil
}

// UpdateMeal overwrites the meal and replaces all of its components.
func (s *MealService) UpdateMeal(ctx context.Context, userID, id int, in MealInput) (*models.MealLog, error) {
	m, err := s.buildMeal(userID, in)
	if err != nil {
		return nil, err
	}
	m.ID = id
	if err := s.meals.UpdateMeal(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, userID, id int) error {
	return s.meals.DeleteMeal(ctx, userID, id)
}

func (s *MealService) GetMeal(ctx context.Context, userID, id int) (*models.MealLog, error) {
	return s.meals.MealByID(ctx, userID, id)
}
