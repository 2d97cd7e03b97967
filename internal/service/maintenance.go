package service

import (
	"context"
	"fmt"
	"time"
)

type DailyCheckReport struct {
	MonthlyResets  int64
	StarDeductions int
}

type MaintenanceService struct {
	repo MaintenanceRepository
	now  func() time.Time
}

func NewMaintenanceService(repo MaintenanceRepository, now func() time.Time) *MaintenanceService {
	return &MaintenanceService{
		repo: repo,
		now:  now,
	}
}

// RunDailyCheck is the external scheduler's entry point. On the first
// of the month it zeroes every star balance and rank first; then any
// user still holding stars who completed nothing yesterday loses one
// star. Reset runs before decay, so a reset day never double-punishes.
func (s *MaintenanceService) RunDailyCheck(ctx context.Context) (*DailyCheckReport, error) {
	report := &DailyCheckReport{}
	now := s.now().UTC()

	if now.Day() == 1 {
		resets, err := s.repo.ResetAllProgress(ctx, BaseRank.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to run monthly reset: %w", err)
		}
		report.MonthlyResets = resets
	}

	yesterday := DayKeyOf(now.AddDate(0, 0, -1))
	candidates, err := s.repo.DecayCandidates(ctx, yesterday)
	if err != nil {
		return nil, fmt.Errorf("failed to get decay candidates: %w", err)
	}

	for _, userID := range candidates {
		stars, err := s.repo.DecrementStar(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to decay stars for user %s: %w", userID, err)
		}

		if err := s.repo.UpdateUserRank(ctx, userID, RankFor(stars).Name); err != nil {
			return nil, fmt.Errorf("failed to update rank for user %s: %w", userID, err)
		}

		report.StarDeductions++
	}

	return report, nil
}
