package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/adminui-api/internal/dto"
	"github.com/noah-isme/adminui-api/internal/models"
	"github.com/noah-isme/adminui-api/internal/table"
	appErrors "github.com/noah-isme/adminui-api/pkg/errors"
)

type sessionRepository interface {
	Get(ctx context.Context, id string) (table.Snapshot, error)
	Save(ctx context.Context, id string, snap table.Snapshot) error
	Delete(ctx context.Context, id string) error
	IDs(ctx context.Context) ([]string, error)
}

// SessionConfig tunes new table sessions.
type SessionConfig struct {
	PageSize int
}

// SessionService owns the table sessions. Every read or write of one session
// holds that session's lock, so intents apply one at a time in arrival order.
type SessionService struct {
	repo      sessionRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       SessionConfig

	locks  *keyedMutex
	seedMu sync.RWMutex
	seed   []models.Member
	newID  func() string
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, cfg SessionConfig) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = table.DefaultPageSize
	}
	return &SessionService{
		repo:      repo,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		locks:     newKeyedMutex(),
		newID:     uuid.NewString,
	}
}

// Create opens a session seeded with the loaded members. Before the loader
// finishes, or after it failed, the seed is empty. The seed stays read-locked
// until the session is stored, so a concurrent Broadcast either seeds it or
// finds it in the store.
func (s *SessionService) Create(ctx context.Context) (*models.SessionView, error) {
	id := s.newID()
	state := table.NewState(s.cfg.PageSize)

	s.seedMu.RLock()
	state.Load(s.seed)
	err := s.save(ctx, id, state)
	s.seedMu.RUnlock()
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSessionCreated()
	s.logger.Debug("table session created", zap.String("session_id", id), zap.Int("members", len(state.Members())))
	return &models.SessionView{SessionID: id, View: state.View()}, nil
}

// View derives the current view of a session.
func (s *SessionService) View(ctx context.Context, id string) (*models.TableView, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := state.View()
	return &view, nil
}

// Apply validates one renderer intent, applies it and returns the new view.
// actor is the authenticated subject, empty when auth is off.
func (s *SessionService) Apply(ctx context.Context, id string, req dto.IntentRequest, actor string) (*models.TableView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid intent payload")
	}
	intent, err := req.ToIntent()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	state.Apply(intent)
	if err := s.save(ctx, id, state); err != nil {
		return nil, err
	}

	s.metrics.RecordIntent(string(intent.Type))
	s.logger.Debug("intent applied",
		zap.String("session_id", id),
		zap.String("type", string(intent.Type)),
		zap.String("actor", actor),
	)
	view := state.View()
	return &view, nil
}

// End closes a session.
func (s *SessionService) End(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	start := time.Now()
	err := s.repo.Delete(ctx, id)
	s.metrics.ObserveSessionStore("delete", time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end session")
	}
	s.metrics.RecordSessionEnded()
	return nil
}

// Filtered returns the whole filtered view of a session, ignoring pagination,
// together with its search term.
func (s *SessionService) Filtered(ctx context.Context, id string) ([]models.Member, string, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return state.Filtered(), state.SearchTerm(), nil
}

// Broadcast makes members the seed for new sessions and dispatches a records
// loaded event to every live session. Sessions that vanish meanwhile are skipped.
func (s *SessionService) Broadcast(ctx context.Context, members []models.Member) error {
	s.seedMu.Lock()
	s.seed = append([]models.Member(nil), members...)
	ids, err := s.repo.IDs(ctx)
	s.seedMu.Unlock()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}

	var errs []error
	for _, id := range ids {
		if err := s.loadInto(ctx, id, members); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Seed returns a copy of the members new sessions start with.
func (s *SessionService) Seed() []models.Member {
	s.seedMu.RLock()
	defer s.seedMu.RUnlock()
	return append([]models.Member(nil), s.seed...)
}

func (s *SessionService) loadInto(ctx context.Context, id string, members []models.Member) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	state.Apply(table.Intent{Type: table.IntentRecordsLoaded, Members: members})
	if err := s.save(ctx, id, state); err != nil {
		return err
	}
	s.metrics.RecordIntent(string(table.IntentRecordsLoaded))
	return nil
}

func (s *SessionService) load(ctx context.Context, id string) (*table.State, error) {
	start := time.Now()
	snap, err := s.repo.Get(ctx, id)
	s.metrics.ObserveSessionStore("get", time.Since(start))
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionNotFound) {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return table.Restore(snap), nil
}

func (s *SessionService) save(ctx context.Context, id string, state *table.State) error {
	start := time.Now()
	err := s.repo.Save(ctx, id, state.Snapshot())
	s.metrics.ObserveSessionStore("save", time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session")
	}
	return nil
}

// keyedMutex hands out one mutex per key and forgets it once nobody holds or
// waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock blocks until key is free and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
