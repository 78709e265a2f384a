package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campaignkeeper/monitoring"
	"campaignkeeper/store"
)

// DashboardStats holds the instance-wide counters shown on the admin
// dashboard.
type DashboardStats struct {
	TotalUsers      int64  `json:"totalUsers"`
	TotalGames      int64  `json:"totalGames"`
	TotalCharacters int64  `json:"totalCharacters"`
	TotalItems      int64  `json:"totalItems"`
	CalculationTime string `json:"calculationTime"`
}

// StatsService computes dashboard statistics. Each count is independent, so
// the queries run concurrently.
type StatsService struct {
	store store.Store
}

func NewStatsService(s store.Store) *StatsService {
	return &StatsService{store: s}
}

// Dashboard runs every count in its own goroutine and also refreshes the
// total_users and total_games gauges.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Now()
	stats := &DashboardStats{}

	var wg sync.WaitGroup
	errChan := make(chan error, 4)

	count := func(dst *int64, name string, fn func() (int64, error)) {
		defer wg.Done()
		n, err := fn()
		if err != nil {
			errChan <- fmt.Errorf("%s count: %w", name, err)
			return
		}
		*dst = n
	}

	wg.Add(4)
	go count(&stats.TotalUsers, "users", s.store.CountUsers)
	go count(&stats.TotalGames, "games", s.store.CountGames)
	go count(&stats.TotalCharacters, "characters", s.store.CountCharacters)
	go count(&stats.TotalItems, "items", s.store.CountItems)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
		close(errChan)
	}()

	select {
	case <-done:
		for err := range errChan {
			if err != nil {
				return nil, err
			}
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("timeout calculating stats")
	}

	monitoring.TotalUsers.Set(float64(stats.TotalUsers))
	monitoring.TotalGames.Set(float64(stats.TotalGames))

	stats.CalculationTime = time.Since(start).String()
	return stats, nil
}
