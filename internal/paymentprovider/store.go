package paymentprovider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/frahmantamala/worldsell/internal/core/events"
	"github.com/robfig/cron/v3"
)

const reloadTimeout = 30 * time.Second

type snapshot struct {
	catalog  *Catalog
	loadedAt time.Time
}

// Store publishes catalog snapshots. Readers never block; a reload swaps the
// pointer only after the new catalog loaded and validated.
type Store struct {
	loader  Loader
	logger  *slog.Logger
	events  events.Publisher
	current atomic.Pointer[snapshot]

	reloadMu sync.Mutex

	cronMu sync.Mutex
	cron   *cron.Cron
}

func NewStore(loader Loader, logger *slog.Logger) *Store {
	return &Store{
		loader: loader,
		logger: logger,
	}
}

// NewStaticStore wraps an already built catalog, for tools and tests.
func NewStaticStore(catalog *Catalog, logger *slog.Logger) *Store {
	s := NewStore(LoaderFunc(func(context.Context) (*Catalog, error) { return catalog, nil }), logger)
	s.current.Store(&snapshot{catalog: catalog, loadedAt: time.Now()})
	return s
}

// WithEvents makes the store publish reload outcomes. Call it before the first load.
func (s *Store) WithEvents(publisher events.Publisher) *Store {
	s.events = publisher
	return s
}

func (s *Store) Load(ctx context.Context) error {
	_, err := s.Reload(ctx)
	return err
}

// Current returns the published catalog, or nil before the first successful load.
func (s *Store) Current() *Catalog {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	return snap.catalog
}

func (s *Store) LoadedAt() time.Time {
	snap := s.current.Load()
	if snap == nil {
		return time.Time{}
	}
	return snap.loadedAt
}

func (s *Store) Reload(ctx context.Context) (*Catalog, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	previous := s.current.Load()

	catalog, err := s.loader.Load(ctx)
	if err == nil && catalog == nil {
		err = internal.ErrCatalogUnavailable
	}
	if err != nil {
		s.logger.Error("catalog reload failed, keeping previous snapshot",
			"error", err,
			"has_previous", previous != nil)
		s.publish(ctx, events.NewCatalogReloadFailed(err, previous != nil))
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	s.current.Store(&snapshot{catalog: catalog, loadedAt: time.Now()})

	countries, providers := catalog.Size()
	s.logger.Info("catalog loaded",
		"countries", countries,
		"providers", providers,
		"duration_ms", time.Since(start).Milliseconds())

	var before *Catalog
	if previous != nil {
		before = previous.catalog
	}
	added, removed := diffProviders(before, catalog)
	s.publish(ctx, events.NewCatalogReloaded(countries, providers, added, removed))

	return catalog, nil
}

func (s *Store) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish catalog event", "event_type", event.EventType(), "error", err)
	}
}

// diffProviders lists provider ids present only in next (added) or only in prev (removed).
func diffProviders(prev, next *Catalog) (added, removed []string) {
	prevIDs := make(map[string]struct{})
	if prev != nil {
		for _, p := range prev.providers {
			prevIDs[p.ID] = struct{}{}
		}
	}
	nextIDs := make(map[string]struct{}, len(next.providers))
	for _, p := range next.providers {
		nextIDs[p.ID] = struct{}{}
		if _, ok := prevIDs[p.ID]; !ok {
			added = append(added, p.ID)
		}
	}
	if prev != nil {
		for _, p := range prev.providers {
			if _, ok := nextIDs[p.ID]; !ok {
				removed = append(removed, p.ID)
			}
		}
	}
	return added, removed
}

// StartRefresh reloads the catalog on a cron schedule ("@every 10m", "0 */6 * * *").
// Only one schedule runs at a time; call StopRefresh before changing it.
func (s *Store) StartRefresh(schedule string) error {
	s.cronMu.Lock()
	defer s.cronMu.Unlock()
	if s.cron != nil {
		return errors.New("catalog refresh is already running")
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := internal.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		if _, err := s.Reload(ctx); err != nil {
			s.logger.Warn("scheduled catalog refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	s.cron = c
	c.Start()
	s.logger.Info("catalog refresh scheduled", "schedule", schedule)
	return nil
}

func (s *Store) StopRefresh() {
	s.cronMu.Lock()
	defer s.cronMu.Unlock()
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
}
