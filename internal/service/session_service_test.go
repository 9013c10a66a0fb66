package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/adminui-api/internal/dto"
	"github.com/noah-isme/adminui-api/internal/models"
	"github.com/noah-isme/adminui-api/internal/table"
	appErrors "github.com/noah-isme/adminui-api/pkg/errors"
)

type sessionRepoStub struct {
	mu       sync.Mutex
	sessions map[string]table.Snapshot
	saveErr  error
	idsErr   error
}

func newSessionRepoStub() *sessionRepoStub {
	return &sessionRepoStub{sessions: make(map[string]table.Snapshot)}
}

func (r *sessionRepoStub) Get(ctx context.Context, id string) (table.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap, ok := r.sessions[id]
	if !ok {
		return table.Snapshot{}, appErrors.ErrSessionNotFound
	}
	return snap, nil
}

func (r *sessionRepoStub) Save(ctx context.Context, id string, snap table.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions[id] = snap
	return nil
}

func (r *sessionRepoStub) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepoStub) IDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idsErr != nil {
		return nil, r.idsErr
	}
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

func sampleMembers(n int) []models.Member {
	members := make([]models.Member, n)
	for i := range members {
		members[i] = models.Member{
			ID:    i + 1,
			Name:  fmt.Sprintf("Member %d", i+1),
			Email: fmt.Sprintf("member%d@mailinator.com", i+1),
			Role:  "member",
		}
	}
	members[0].Role = "admin"
	return members
}

func newSessionServiceForTest(repo sessionRepository) *SessionService {
	return NewSessionService(repo, nil, NewMetricsService(), zap.NewNop(), SessionConfig{PageSize: 10})
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestSessionServiceCreateBeforeLoadIsEmpty(t *testing.T) {
	svc := newSessionServiceForTest(newSessionRepoStub())

	created, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, created.SessionID)
	assert.Empty(t, created.View.Rows)
	assert.Equal(t, 0, created.View.Pagination.PageCount)
	assert.Equal(t, 1, created.View.Pagination.CurrentPage)
	assert.True(t, created.View.Pagination.NextDisabled)
}

func TestSessionServiceBroadcastSeedsAndUpdatesSessions(t *testing.T) {
	ctx := context.Background()
	repo := newSessionRepoStub()
	svc := newSessionServiceForTest(repo)

	early, err := svc.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Broadcast(ctx, sampleMembers(25)))

	view, err := svc.View(ctx, early.SessionID)
	require.NoError(t, err)
	assert.Len(t, view.Rows, 10)
	assert.Equal(t, 3, view.Pagination.PageCount)
	assert.Equal(t, 25, view.Pagination.TotalCount)

	late, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, late.View.Pagination.TotalCount)
	assert.Len(t, svc.Seed(), 25)
}

// gatedSaveRepo holds the first Save until released.
type gatedSaveRepo struct {
	*sessionRepoStub
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (r *gatedSaveRepo) Save(ctx context.Context, id string, snap table.Snapshot) error {
	r.once.Do(func() {
		close(r.entered)
		<-r.release
	})
	return r.sessionRepoStub.Save(ctx, id, snap)
}

func TestSessionServiceCreateRacingBroadcastGetsMembers(t *testing.T) {
	ctx := context.Background()
	repo := &gatedSaveRepo{
		sessionRepoStub: newSessionRepoStub(),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	svc := newSessionServiceForTest(repo)

	created := make(chan *models.SessionView, 1)
	go func() {
		session, err := svc.Create(ctx)
		assert.NoError(t, err)
		created <- session
	}()
	<-repo.entered

	broadcast := make(chan error, 1)
	go func() {
		broadcast <- svc.Broadcast(ctx, []models.Member{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
	}()
	time.Sleep(20 * time.Millisecond)
	close(repo.release)

	require.NoError(t, <-broadcast)
	session := <-created
	require.NotNil(t, session)

	view, err := svc.View(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Pagination.TotalCount)
	assert.Len(t, svc.Seed(), 2)
}

func TestSessionServiceBroadcastListError(t *testing.T) {
	repo := newSessionRepoStub()
	repo.idsErr = errors.New("scan failed")
	svc := newSessionServiceForTest(repo)

	err := svc.Broadcast(context.Background(), sampleMembers(3))
	require.Error(t, err)
	assert.Len(t, svc.Seed(), 3, "seed is kept even when live sessions cannot be listed")
}

func TestSessionServiceApplyIntents(t *testing.T) {
	ctx := context.Background()
	svc := newSessionServiceForTest(newSessionRepoStub())
	require.NoError(t, svc.Broadcast(ctx, sampleMembers(25)))
	created, err := svc.Create(ctx)
	require.NoError(t, err)
	id := created.SessionID

	view, err := svc.Apply(ctx, id, dto.IntentRequest{Type: "page_changed", Nav: "last"}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Pagination.CurrentPage)
	assert.Len(t, view.Rows, 5)

	view, err = svc.Apply(ctx, id, dto.IntentRequest{Type: "search_term_changed", Term: strPtr("ADMIN")}, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Pagination.CurrentPage)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, 1, view.Rows[0].ID)

	view, err = svc.Apply(ctx, id, dto.IntentRequest{Type: "select_all_toggled", Checked: boolPtr(true)}, "")
	require.NoError(t, err)
	assert.True(t, view.SelectAllChecked)
	assert.Equal(t, []int{1}, view.SelectedIDs)
	assert.True(t, view.DeleteSelectedEnabled)

	view, err = svc.Apply(ctx, id, dto.IntentRequest{Type: "delete_selected_requested"}, "")
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
	assert.Empty(t, view.SelectedIDs)
	assert.Equal(t, 24, view.Pagination.TotalCount)

	view, err = svc.Apply(ctx, id, dto.IntentRequest{Type: "search_term_changed", Term: strPtr("")}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Rows[0].ID)

	view, err = svc.Apply(ctx, id, dto.IntentRequest{Type: "edit_requested", ID: intPtr(2)}, "")
	require.NoError(t, err)
	require.True(t, view.Edit.Open)
	assert.Equal(t, "Member 2", view.Edit.Draft.Name)

	_, err = svc.Apply(ctx, id, dto.IntentRequest{Type: "edit_field_changed", Field: "name", Value: strPtr("Renamed")}, "")
	require.NoError(t, err)
	view, err = svc.Apply(ctx, id, dto.IntentRequest{Type: "edit_confirmed"}, "")
	require.NoError(t, err)
	assert.False(t, view.Edit.Open)
	assert.Equal(t, "Renamed", view.Rows[0].Name)

	snapshot := svc.metrics.Snapshot()
	assert.Equal(t, uint64(8), snapshot.IntentsTotal)
	assert.Equal(t, uint64(2), snapshot.IntentsByType["search_term_changed"])
}

func TestSessionServiceApplyRejectsMalformedIntents(t *testing.T) {
	ctx := context.Background()
	svc := newSessionServiceForTest(newSessionRepoStub())
	created, err := svc.Create(ctx)
	require.NoError(t, err)

	cases := []dto.IntentRequest{
		{Type: "records_loaded"},
		{Type: "explode"},
		{Type: "row_checkbox_toggled", Checked: boolPtr(true)},
		{Type: "edit_field_changed", Field: "avatar", Value: strPtr("x")},
		{Type: "page_changed"},
		{Type: "page_changed", Page: intPtr(0)},
	}
	for _, req := range cases {
		_, err := svc.Apply(ctx, created.SessionID, req, "")
		require.Error(t, err, req.Type)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code, req.Type)
	}
}

func TestSessionServiceUnknownSession(t *testing.T) {
	ctx := context.Background()
	svc := newSessionServiceForTest(newSessionRepoStub())

	_, err := svc.View(ctx, "missing")
	assert.ErrorIs(t, err, appErrors.ErrSessionNotFound)

	_, err = svc.Apply(ctx, "missing", dto.IntentRequest{Type: "edit_confirmed"}, "")
	assert.ErrorIs(t, err, appErrors.ErrSessionNotFound)

	assert.ErrorIs(t, svc.End(ctx, "missing"), appErrors.ErrSessionNotFound)
}

func TestSessionServiceEnd(t *testing.T) {
	ctx := context.Background()
	svc := newSessionServiceForTest(newSessionRepoStub())
	created, err := svc.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.End(ctx, created.SessionID))
	_, err = svc.View(ctx, created.SessionID)
	assert.ErrorIs(t, err, appErrors.ErrSessionNotFound)
	assert.Equal(t, uint64(1), svc.metrics.Snapshot().SessionsEnded)
}

func TestSessionServiceStoreFailure(t *testing.T) {
	repo := newSessionRepoStub()
	repo.saveErr = errors.New("connection reset")
	svc := newSessionServiceForTest(repo)

	_, err := svc.Create(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestSessionServiceSerialisesIntentsPerSession(t *testing.T) {
	ctx := context.Background()
	svc := newSessionServiceForTest(newSessionRepoStub())
	require.NoError(t, svc.Broadcast(ctx, sampleMembers(50)))
	created, err := svc.Create(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for id := 1; id <= 50; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := svc.Apply(ctx, created.SessionID, dto.IntentRequest{Type: "row_checkbox_toggled", ID: intPtr(id), Checked: boolPtr(true)}, "")
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	view, err := svc.View(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Len(t, view.SelectedIDs, 50)
	assert.Empty(t, svc.locks.locks)
}

func TestSessionServiceFiltered(t *testing.T) {
	ctx := context.Background()
	svc := newSessionServiceForTest(newSessionRepoStub())
	require.NoError(t, svc.Broadcast(ctx, sampleMembers(25)))
	created, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, created.SessionID, dto.IntentRequest{Type: "search_term_changed", Term: strPtr("member1")}, "")
	require.NoError(t, err)

	members, term, err := svc.Filtered(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "member1", term)
	assert.Len(t, members, 11, "member1 and member10 through member19")
}
