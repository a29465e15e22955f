package jobs

import (
	"context"
	"gemscout/internal/providers"
	"gemscout/internal/services"
	"gemscout/internal/store"
	"gemscout/internal/structures"
	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
	"sync"
	"time"
)

const warmupTimeout = 10 * time.Minute

// Scheduler flushes the cache store periodically and optionally re-runs
// the default scans so their source queries stay cached.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	store   store.CacheStoreInterface
	service services.OpportunityServiceInterface
	cache   providers.CacheProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
	warming atomic.Bool
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	if interval := s.config.Persistence.SaveInterval; interval > 0 {
		s.cron.AddFunc(gron.Every(interval), func() {
			if err := s.Persist(); err != nil {
				return
			}
			s.logger.Debugf(providers.TypeApp, "Flushed cache store")
		})
	}

	if interval := s.config.Scan.WarmupInterval; interval > 0 {
		s.cron.AddFunc(gron.Every(interval), func() {
			s.Warmup()
		})
		s.logger.Infof(providers.TypeApp, "Warm-up scheduled every %s", interval)
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.store.Persist()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting cache store: %s", err)
		return err
	}
	return nil
}

// Warmup runs the gem finder and the low-rated scan with default options.
// It returns false without doing anything when a warm-up is already running.
func (s *Scheduler) Warmup() bool {
	if !s.warming.CompareAndSwap(false, true) {
		s.logger.Warnf(providers.TypeScan, "Warm-up still running, skipping")
		return false
	}
	defer s.warming.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()

	start := time.Now()
	gems := s.service.Gems(ctx, services.GemOptions{})
	lowRated := s.service.LowRated(ctx, services.LowRatedOptions{})
	s.logger.Infof(providers.TypeScan, "Warm-up done in %s: %d gems, %d low-rated", time.Since(start), len(gems), len(lowRated))

	// rendered responses predate the refreshed source data
	s.cache.Purge()
	return true
}

func NewScheduler(config *structures.Config, logger providers.Logger, cacheStore store.CacheStoreInterface, service services.OpportunityServiceInterface, cache providers.CacheProviderInterface) SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		store:   cacheStore,
		service: service,
		cache:   cache,
	}
}
