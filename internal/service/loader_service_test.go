package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/adminui-api/internal/models"
)

type memberSourceStub struct {
	members []models.Member
	err     error
	mu      sync.Mutex
	calls   int
}

func (s *memberSourceStub) Name() string { return "stub" }

func (s *memberSourceStub) Fetch(ctx context.Context) ([]models.Member, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.members, s.err
}

func (s *memberSourceStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordsSinkStub struct {
	mu       sync.Mutex
	received [][]models.Member
}

func (s *recordsSinkStub) Broadcast(ctx context.Context, members []models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, members)
	return nil
}

func (s *recordsSinkStub) Received() [][]models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received
}

func waitDone(t *testing.T, loader *LoaderService) {
	t.Helper()
	select {
	case <-loader.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loader did not finish")
	}
}

func TestLoaderServiceDispatchesRecords(t *testing.T) {
	source := &memberSourceStub{members: sampleMembers(3)}
	sink := &recordsSinkStub{}
	metrics := NewMetricsService()
	loader := NewLoaderService(source, sink, metrics, zap.NewNop())
	defer loader.Stop()

	assert.False(t, loader.Ready())
	require.NoError(t, loader.Start(context.Background()))
	require.NoError(t, loader.Start(context.Background()))
	waitDone(t, loader)

	assert.True(t, loader.Ready())
	require.Len(t, sink.Received(), 1)
	assert.Equal(t, sampleMembers(3), sink.Received()[0])
	assert.Equal(t, 1, source.Calls())

	snap := metrics.Snapshot()
	assert.True(t, snap.SourceFetchOK)
	assert.Equal(t, 3, snap.SourceRecords)
}

func TestLoaderServiceFailureIsNotRetried(t *testing.T) {
	source := &memberSourceStub{err: errors.New("dns lookup failed")}
	sink := &recordsSinkStub{}
	loader := NewLoaderService(source, sink, NewMetricsService(), zap.NewNop())
	defer loader.Stop()

	require.NoError(t, loader.Start(context.Background()))
	waitDone(t, loader)

	assert.True(t, loader.Ready())
	assert.Empty(t, sink.Received())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, source.Calls())
}

func TestLoaderServiceFeedsSessions(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionServiceForTest(newSessionRepoStub())
	created, err := sessions.Create(ctx)
	require.NoError(t, err)

	loader := NewLoaderService(&memberSourceStub{members: sampleMembers(12)}, sessions, nil, nil)
	defer loader.Stop()
	require.NoError(t, loader.Start(ctx))
	waitDone(t, loader)

	view, err := sessions.View(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Pagination.PageCount)
	assert.Equal(t, 12, view.Pagination.TotalCount)
}
