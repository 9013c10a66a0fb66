package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/adminui-api/internal/models"
	appErrors "github.com/noah-isme/adminui-api/pkg/errors"
	"github.com/noah-isme/adminui-api/pkg/jobs"
)

const loadMembersJob = "load_members"

type memberSource interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Member, error)
}

type recordsSink interface {
	Broadcast(ctx context.Context, members []models.Member) error
}

// LoaderService performs the one-shot initial member fetch on a single-worker
// queue. A failed fetch is logged and never retried; sessions then stay empty.
type LoaderService struct {
	source  memberSource
	sink    recordsSink
	metrics *MetricsService
	logger  *zap.Logger
	queue   *jobs.Queue

	started atomic.Bool
	ready   atomic.Bool
	done    chan struct{}
	once    sync.Once
}

// NewLoaderService wires the loader to its source and the session service.
func NewLoaderService(source memberSource, sink recordsSink, metrics *MetricsService, logger *zap.Logger) *LoaderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &LoaderService{
		source:  source,
		sink:    sink,
		metrics: metrics,
		logger:  logger,
		done:    make(chan struct{}),
	}
	s.queue = jobs.NewQueue("member-loader", s.handle, jobs.QueueConfig{
		Workers:    1,
		BufferSize: 1,
		MaxRetries: 0,
		OnFailure:  s.fail,
		Logger:     logger,
	})
	return s
}

// Start enqueues the fetch. Later calls are no-ops.
func (s *LoaderService) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}
	s.queue.Start(ctx)
	return s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: loadMembersJob})
}

// Stop cancels an in-flight fetch and waits for the worker.
func (s *LoaderService) Stop() {
	s.queue.Stop()
}

// Ready reports whether the fetch has finished, successfully or not.
func (s *LoaderService) Ready() bool {
	return s.ready.Load()
}

// Done is closed once the fetch has finished.
func (s *LoaderService) Done() <-chan struct{} {
	return s.done
}

func (s *LoaderService) handle(ctx context.Context, job jobs.Job) error {
	start := time.Now()
	members, err := s.source.Fetch(ctx)
	s.metrics.ObserveSourceFetch(s.source.Name(), len(members), err, time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "initial member fetch failed")
	}

	if err := s.sink.Broadcast(ctx, members); err != nil {
		s.logger.Warn("records loaded dispatch incomplete", zap.Error(err))
	}
	s.logger.Info("members loaded",
		zap.String("source", s.source.Name()),
		zap.Int("members", len(members)),
		zap.Duration("took", time.Since(start)),
	)
	s.finish()
	return nil
}

func (s *LoaderService) fail(job jobs.Job, err error) {
	s.logger.Warn("members unavailable, tables stay empty", zap.String("source", s.source.Name()), zap.Error(err))
	s.finish()
}

func (s *LoaderService) finish() {
	s.once.Do(func() {
		s.ready.Store(true)
		close(s.done)
	})
}
