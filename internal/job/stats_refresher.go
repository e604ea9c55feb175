// Package job provides background job schedulers.
package job

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"collection-search-service/internal/app/service"
	"collection-search-service/internal/domain"
	"collection-search-service/pkg/locker"
)

// StatsRefresher periodically recomputes per-index document counts and
// publishes them to the cache, with distributed locking so only one
// instance does the work per interval.
type StatsRefresher struct {
	exportService *service.ExportService
	cache         domain.Cache
	interval      time.Duration
	timeout       time.Duration
	ttl           time.Duration
	logger        *zap.Logger
	locker        locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// StatsConfig holds stats refresher configuration.
type StatsConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	TTL       time.Duration
	OnStartup bool
}

// statsSnapshot is the cached stats payload.
type statsSnapshot struct {
	Indices     []service.IndexStats `json:"indices"`
	Total       int                  `json:"total"`
	RefreshedAt string               `json:"timestamp"`
}

// NewStatsRefresher creates a new StatsRefresher.
func NewStatsRefresher(
	exportSvc *service.ExportService,
	cache domain.Cache,
	cfg StatsConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *StatsRefresher {
	return &StatsRefresher{
		exportService: exportSvc,
		cache:         cache,
		interval:      cfg.Interval,
		timeout:       cfg.Timeout,
		ttl:           cfg.TTL,
		logger:        logger,
		locker:        locker,
	}
}

// Start begins the background refresh job.
func (s *StatsRefresher) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting stats refresher",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the refresher.
func (s *StatsRefresher) Stop() {
	s.logger.Info("stopping stats refresher")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("stats refresher stopped")
}

func (s *StatsRefresher) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.refresh()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.refresh()
		}
	}
}

// refresh recomputes and publishes the stats snapshot under a distributed
// lock. The lock TTL equals the interval: a successful run holds it as a
// cooldown, a failed run releases it so another instance can retry.
func (s *StatsRefresher) refresh() {
	const lockKey = "stats:refresh:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is refreshing stats, skipping")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	stats, err := s.exportService.Stats(ctx)
	if err != nil {
		s.logger.Warn("stats refresh failed, lock released for retry", zap.Error(err))
		if relErr := s.locker.Release(s.ctx, lockKey); relErr != nil {
			s.logger.Error("failed to release lock after refresh error", zap.Error(relErr))
		}

		return
	}

	snapshot := statsSnapshot{
		Indices:     stats,
		RefreshedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, st := range stats {
		snapshot.Total += st.Count
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Error("marshaling stats snapshot failed", zap.Error(err))

		return
	}

	if err := s.cache.Set(ctx, service.StatsCacheKey, data, s.ttl); err != nil {
		s.logger.Warn("publishing stats snapshot failed", zap.Error(err))

		return
	}

	s.logger.Info("stats refreshed",
		zap.Int("total", snapshot.Total),
		zap.Duration("cooldown", s.interval),
	)
}
