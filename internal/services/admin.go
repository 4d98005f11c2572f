package services

import (
	"context"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

type AdminService struct {
	overview OverviewStore
	meals    *MealService
}

func NewAdminService(overview OverviewStore, meals *MealService) *AdminService {
	return &AdminService{overview: overview, meals: meals}
}

// Overview returns site-wide counters. Only superusers may call it.
func (s *AdminService) Overview(ctx context.Context, u *models.User) (store.Overview, error) {
	if u == nil || !u.IsSuperuser {
		return store.Overview{}, ErrForbidden
	}
	return s.overview.Overview(ctx, weekStart(s.meals.Today()))
}

// weekStart returns the Monday of today's week.
func weekStart(today time.Time) time.Time {
	return today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
}
