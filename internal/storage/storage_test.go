package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "store.json"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendInvocation_KeepsNewest(t *testing.T) {
	s := newStorage(t)

	for i := 0; i < historyLimit+5; i++ {
		require.NoError(t, s.AppendInvocation("guild-1", InvocationRecord{
			Command:   "dex",
			Arguments: []string{"mew", "red"},
			Code:      string(rune('a' + i)),
			Datetime:  time.Now(),
		}))
	}
	require.NoError(t, s.AppendInvocation("guild-2", InvocationRecord{Command: "learn"}))

	h, err := s.History("guild-1")
	require.NoError(t, err)
	require.Len(t, h, historyLimit)
	assert.Equal(t, "f", h[0].Code)
	assert.Equal(t, []string{"mew", "red"}, h[0].Arguments)

	assert.ElementsMatch(t, []string{"guild-1", "guild-2"}, s.Scopes())
}

func TestHistory_UnknownScope(t *testing.T) {
	s := newStorage(t)
	h, err := s.History("nobody")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestPruneOlderThan(t *testing.T) {
	s := newStorage(t)
	now := time.Now()
	require.NoError(t, s.AppendInvocation("g", InvocationRecord{Command: "dex", Datetime: now.Add(-48 * time.Hour)}))
	require.NoError(t, s.AppendInvocation("g", InvocationRecord{Command: "loc", Datetime: now}))

	n, err := s.PruneOlderThan(now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	h, err := s.History("g")
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, "loc", h[0].Command)
}

func TestPruneOlderThan_DropsEmptyScopes(t *testing.T) {
	s := newStorage(t)
	now := time.Now()
	require.NoError(t, s.AppendInvocation("old", InvocationRecord{Command: "dex", Datetime: now.Add(-48 * time.Hour)}))
	require.NoError(t, s.AppendInvocation("old", InvocationRecord{Command: "learn", Datetime: now.Add(-47 * time.Hour)}))
	require.NoError(t, s.AppendInvocation("fresh", InvocationRecord{Command: "dex", Datetime: now}))

	n, err := s.PruneOlderThan(now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"fresh"}, s.Scopes())
	assert.Equal(t, 1, s.Stats().Keys)

	h, err := s.History("old")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestClear(t *testing.T) {
	s := newStorage(t)
	require.NoError(t, s.AppendInvocation("g", InvocationRecord{Command: "dex", Datetime: time.Now()}))
	require.NoError(t, s.AppendInvocation("h", InvocationRecord{Command: "dex", Datetime: time.Now()}))

	require.NoError(t, s.Clear("g"))
	require.NoError(t, s.Clear("never-used"))
	assert.Equal(t, []string{"h"}, s.Scopes())
}

func TestRunHistoryPruner_StopsWithContext(t *testing.T) {
	s := newStorage(t)
	require.NoError(t, s.AppendInvocation("g", InvocationRecord{Command: "dex", Datetime: time.Now().Add(-time.Hour)}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunHistoryPruner(ctx, s, time.Minute, 5*time.Millisecond, zerolog.Nop())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		h, _ := s.History("g")
		return len(h) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop")
	}
}
