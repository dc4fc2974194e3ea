package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/graph"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/monitoring"
	"github.com/platformbuilds/studygraph/internal/repo"
	"github.com/platformbuilds/studygraph/internal/tracing"
	"github.com/platformbuilds/studygraph/pkg/cache"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// StudyServiceConfig holds the optional collaborators of StudyService.
type StudyServiceConfig struct {
	Layout        graph.Layout
	Cache         cache.ValkeyCache
	CacheTTL      time.Duration
	MaxImportRows int
	Notifier      Notifier
	Tracer        *tracing.Tracer
}

// StudyService owns the study collection. It is the single writer: every
// mutation runs under mu, recomputes ids against the current collection
// and is persisted before it becomes visible.
type StudyService struct {
	repo     repo.StudyRepo
	layout   graph.Layout
	cache    cache.ValkeyCache
	cacheTTL time.Duration
	maxRows  int
	notifier Notifier
	tracer   *tracing.Tracer
	logger   logger.Logger
	now      func() time.Time

	// instance scopes cache keys so two processes sharing a valkey never
	// read each other's graphs for the same version number.
	instance string

	mu      sync.RWMutex
	catalog *catalog.Catalog
	studies []models.Study
	version uint64
}

func NewStudyService(r repo.StudyRepo, cat *catalog.Catalog, cfg StudyServiceConfig, logger logger.Logger) *StudyService {
	if cfg.Layout == (graph.Layout{}) {
		cfg.Layout = graph.DefaultLayout()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNoopValkeyCache(cfg.CacheTTL, logger)
	}
	if cfg.Notifier == nil {
		cfg.Notifier = noopNotifier{}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = tracing.NewTracer()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	return &StudyService{
		repo:     r,
		layout:   cfg.Layout,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		maxRows:  cfg.MaxImportRows,
		notifier: cfg.Notifier,
		tracer:   cfg.Tracer,
		logger:   logger,
		now:      time.Now,
		instance: uuid.NewString(),
		catalog:  cat,
		studies:  []models.Study{},
	}
}

// Init loads the persisted collection. Content problems are absorbed by the
// repo; only backend failures are returned.
func (s *StudyService) Init(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "studies.load")
	start := time.Now()
	studies, err := s.repo.Load(ctx)
	monitoring.RecordStoreOperation("load", time.Since(start), err)
	tracing.End(span, err)
	if err != nil {
		return err
	}

	for i := range studies {
		studies[i].EnsureCollections()
	}

	s.mu.Lock()
	s.studies = studies
	s.version++
	cat := s.catalog
	s.mu.Unlock()

	monitoring.SetStudyCount(len(studies))
	s.logConflicts(cat)
	s.logger.Info("Studies loaded", "count", len(studies))
	return nil
}

// List returns a copy of the whole collection in stored order.
func (s *StudyService) List() []models.Study {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneStudies(s.studies)
}

// Get returns the first study with id.
func (s *StudyService) Get(id string) (models.Study, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.studies, id); i >= 0 {
		return s.studies[i].Clone(), nil
	}
	return models.Study{}, ErrStudyNotFound
}

func (s *StudyService) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Version increases on every change to the collection or the catalog.
func (s *StudyService) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SetCatalog swaps the catalog used by every later operation.
func (s *StudyService) SetCatalog(cat *catalog.Catalog) {
	if cat == nil {
		return
	}
	s.mu.Lock()
	s.catalog = cat
	s.version++
	version := s.version
	s.mu.Unlock()

	s.logConflicts(cat)
	s.notifier.Publish(ChangeEvent{Type: EventCatalog, IDs: []string{}, Version: version})
}

// Ready reports whether the backing store answers.
func (s *StudyService) Ready(ctx context.Context) error {
	_, err := s.repo.Load(ctx)
	return err
}

// commit persists next and publishes it. Callers hold mu.
func (s *StudyService) commit(ctx context.Context, next []models.Study, event string, ids []string) error {
	ctx, span := s.tracer.Start(ctx, "studies.save", "event", event)
	start := time.Now()
	err := s.repo.Save(ctx, next)
	monitoring.RecordStoreOperation("save", time.Since(start), err)
	tracing.End(span, err)
	if err != nil {
		return err
	}

	s.studies = next
	s.version++
	monitoring.SetStudyCount(len(next))
	s.notifier.Publish(ChangeEvent{Type: event, IDs: ids, Version: s.version})
	return nil
}

func (s *StudyService) logConflicts(cat *catalog.Catalog) {
	for _, c := range cat.Conflicts() {
		s.logger.Warn("Vertical mapped to more than one product",
			"vertical", c.Vertical, "previous", c.Previous, "winner", c.Winner)
	}
}

func (s *StudyService) builder(cat *catalog.Catalog) *graph.Builder {
	return graph.NewBuilder(cat, s.layout, s.logger)
}

func indexOf(studies []models.Study, id string) int {
	for i := range studies {
		if studies[i].ID == id {
			return i
		}
	}
	return -1
}
