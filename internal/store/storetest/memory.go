// Package storetest provides an in-memory stand-in for store.Store.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

// Memory mirrors store.Store semantics closely enough for service and handler tests:
// ownership checks, not-found sentinels, unique email/username and copy-on-read.
type Memory struct {
	mu sync.Mutex

	nextID int

	Users      map[int]*models.User
	Profiles   map[int]*models.UserProfile
	Meals      map[int]*models.MealLog
	Favorites  map[int]*models.FavoriteMeal
	Categories map[int]*models.KnowledgeCategory
	Comments   map[int]*models.Comment
	Exercises  map[int]*models.ExerciseLog

	// Err, when set, is returned by every call.
	Err error
}

func NewMemory() *Memory {
	return &Memory{
		Users:      map[int]*models.User{},
		Profiles:   map[int]*models.UserProfile{},
		Meals:      map[int]*models.MealLog{},
		Favorites:  map[int]*models.FavoriteMeal{},
		Categories: map[int]*models.KnowledgeCategory{},
		Comments:   map[int]*models.Comment{},
		Exercises:  map[int]*models.ExerciseLog{},
	}
}

func (m *Memory) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Err
}

func (m *Memory) id() int {
	m.nextID++
	return m.nextID
}

func cloneMeal(src *models.MealLog) models.MealLog {
	out := *src
	out.Components = append([]models.MealComponent{}, src.Components...)
	return out
}

func cloneFavorite(src *models.FavoriteMeal) models.FavoriteMeal {
	out := *src
	out.Components = append([]models.FavoriteMealComponent{}, src.Components...)
	return out
}

func cloneExercise(src *models.ExerciseLog) models.ExerciseLog {
	out := *src
	out.Components = append([]models.ExerciseComponent{}, src.Components...)
	return out
}

// users

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.Users {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: users_email_key", store.ErrConflict)
		}
		if existing.Username == u.Username {
			return fmt.Errorf("%w: users_username_key", store.ErrConflict)
		}
	}
	u.ID = m.id()
	u.CreatedAt = time.Now()
	cp := *u
	m.Users[u.ID] = &cp
	return nil
}

func (m *Memory) findUser(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id int) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.ID == id })
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.Email == email })
}

func (m *Memory) UserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.Username == username })
}

func (m *Memory) UserByResetToken(_ context.Context, token string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.ResetToken != nil && *u.ResetToken == token })
}

func (m *Memory) SetResetToken(_ context.Context, userID int, token string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpires = &expires
	return nil
}

func (m *Memory) ConsumeResetToken(_ context.Context, token, hashedPassword string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenValid(now) {
			u.HashedPassword = hashedPassword
			u.ResetToken = nil
			u.ResetTokenExpires = nil
			return nil
		}
	}
	return store.ErrNotFound
}

// profiles

func (m *Memory) ProfileByUserID(_ context.Context, userID int) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) UpsertProfile(_ context.Context, p *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	now := time.Now()
	if existing, ok := m.Profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = m.id()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	cp := *p
	m.Profiles[p.UserID] = &cp
	return nil
}

// meals

func (m *Memory) MealsInPeriod(_ context.Context, userID int, p store.Period) ([]models.MealLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.MealLog{}
	for _, meal := range m.Meals {
		if meal.UserID == userID && p.Contains(meal.Date) {
			out = append(out, cloneMeal(meal))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (m *Memory) MealTimesInPeriod(ctx context.Context, userID int, p store.Period) ([]time.Time, error) {
	meals, err := m.MealsInPeriod(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(meals))
	for i, meal := range meals {
		out[i] = meal.Date
	}
	return out, nil
}

func (m *Memory) MealByID(_ context.Context, userID, id int) (*models.MealLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	meal, ok := m.Meals[id]
	if !ok || meal.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := cloneMeal(meal)
	return &cp, nil
}

func (m *Memory) storeMealComponents(meal *models.MealLog) {
	for i := range meal.Components {
		meal.Components[i].ID = m.id()
		meal.Components[i].MealLogID = meal.ID
		meal.Components[i].Position = i
	}
}

func (m *Memory) CreateMeal(_ context.Context, meal *models.MealLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	meal.ID = m.id()
	m.storeMealComponents(meal)
	cp := cloneMeal(meal)
	m.Meals[meal.ID] = &cp
	return nil
}

func (m *Memory) UpdateMeal(_ context.Context, meal *models.MealLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.Meals[meal.ID]
	if !ok || existing.UserID != meal.UserID {
		return store.ErrNotFound
	}
	m.storeMealComponents(meal)
	cp := cloneMeal(meal)
	m.Meals[meal.ID] = &cp
	return nil
}

func (m *Memory) DeleteMeal(_ context.Context, userID, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	meal, ok := m.Meals[id]
	if !ok || meal.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.Meals, id)
	return nil
}

// ComponentCount returns the number of stored meal components across all meals.
func (m *Memory) ComponentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, meal := range m.Meals {
		n += len(meal.Components)
	}
	return n
}

// favorites

func (m *Memory) CreateFavorite(_ context.Context, f *models.FavoriteMeal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	f.ID = m.id()
	f.CreatedAt = time.Now()
	for i := range f.Components {
		f.Components[i].ID = m.id()
		f.Components[i].FavoriteMealID = f.ID
		f.Components[i].Position = i
	}
	cp := cloneFavorite(f)
	m.Favorites[f.ID] = &cp
	return nil
}

func (m *Memory) FavoriteByID(_ context.Context, userID, id int) (*models.FavoriteMeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	f, ok := m.Favorites[id]
	if !ok || f.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := cloneFavorite(f)
	return &cp, nil
}

func (m *Memory) ListFavorites(_ context.Context, userID int) ([]models.FavoriteMeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.FavoriteMeal{}
	for _, f := range m.Favorites {
		if f.UserID == userID {
			out = append(out, cloneFavorite(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteFavorite(_ context.Context, userID, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	f, ok := m.Favorites[id]
	if !ok || f.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.Favorites, id)
	return nil
}

// knowledge

// AddCategory seeds a category and returns its id.
func (m *Memory) AddCategory(title string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	now := time.Now()
	m.Categories[id] = &models.KnowledgeCategory{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}
	return id
}

func (m *Memory) ListCategories(_ context.Context) ([]models.KnowledgeCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.KnowledgeCategory{}
	for _, c := range m.Categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CategoryByID(_ context.Context, id int) (*models.KnowledgeCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *Memory) CommentsForCategory(_ context.Context, categoryID int) ([]models.CommentWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.CommentWithAuthor{}
	for _, c := range m.Comments {
		if c.CategoryID != categoryID {
			continue
		}
		var username string
		if u, ok := m.Users[c.UserID]; ok {
			username = u.Username
		}
		out = append(out, models.CommentWithAuthor{Comment: *c, Username: username})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateComment(_ context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	c.ID = m.id()
	c.Likes = 0
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.Comments[c.ID] = &cp
	return nil
}

func (m *Memory) CommentByID(_ context.Context, id int) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *Memory) LikeComment(_ context.Context, id int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	c, ok := m.Comments[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	c.Likes++
	return c.Likes, nil
}

func (m *Memory) DeleteComment(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.Comments, id)
	return nil
}

// exercises

func (m *Memory) CreateExercise(_ context.Context, e *models.ExerciseLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	e.ID = m.id()
	for i := range e.Components {
		e.Components[i].ID = m.id()
		e.Components[i].ExerciseLogID = e.ID
		e.Components[i].Position = i
	}
	cp := cloneExercise(e)
	m.Exercises[e.ID] = &cp
	return nil
}

func (m *Memory) ExercisesInPeriod(_ context.Context, userID int, p store.Period) ([]models.ExerciseLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.ExerciseLog{}
	for _, e := range m.Exercises {
		if e.UserID == userID && p.Contains(e.Date) {
			out = append(out, cloneExercise(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) ExerciseByID(_ context.Context, userID, id int) (*models.ExerciseLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Exercises[id]
	if !ok || e.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := cloneExercise(e)
	return &cp, nil
}

func (m *Memory) DeleteExercise(_ context.Context, userID, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	e, ok := m.Exercises[id]
	if !ok || e.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.Exercises, id)
	return nil
}

// admin

func (m *Memory) Overview(_ context.Context, weekStart time.Time) (store.Overview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return store.Overview{}, m.Err
	}
	out := store.Overview{
		TotalUsers:      len(m.Users),
		TotalProfiles:   len(m.Profiles),
		TotalMeals:      len(m.Meals),
		TotalComments:   len(m.Comments),
		ExercisesLogged: len(m.Exercises),
	}
	for _, meal := range m.Meals {
		if !meal.Date.Before(weekStart) {
			out.MealsThisWeek++
		}
	}
	return out, nil
}
