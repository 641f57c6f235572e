package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futofind/futofind/internal/model"
)

type fakeSource struct {
	mu        sync.Mutex
	items     []model.Notification
	listErr   error
	markErr   error
	listCalls int
	markCalls int

	// started, when set, is signalled as a fetch begins; the fetch then
	// waits for gate to close.
	started chan struct{}
	gate    chan struct{}
	// duringMark runs while the mark-read call is in flight.
	duringMark func()
}

func (f *fakeSource) Notifications(context.Context) ([]model.Notification, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Notification(nil), f.items...), nil
}

func (f *fakeSource) MarkNotificationsRead(context.Context) error {
	if f.duringMark != nil {
		f.duringMark()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls++
	return f.markErr
}

func sample() []model.Notification {
	return []model.Notification{
		{ID: "n1", Message: "Your claim has been approved.", IsRead: false},
		{ID: "n2", Message: "Item reported", IsRead: true},
		{ID: "n3", Message: "Your claim has been rejected.", IsRead: false},
	}
}

func TestRefreshComputesUnread(t *testing.T) {
	src := &fakeSource{items: sample()}
	c := New(src)

	c.Refresh(context.Background())

	snap := c.Snapshot()
	assert.Len(t, snap.Notifications, 3)
	assert.Equal(t, 2, snap.Unread)
	assert.Equal(t, model.CountUnread(snap.Notifications), c.UnreadCount())
}

func TestRefreshFailureKeepsStaleCache(t *testing.T) {
	src := &fakeSource{items: sample()}
	c := New(src)
	c.Refresh(context.Background())

	src.listErr = errors.New("connection reset")
	src.items = nil
	c.Refresh(context.Background())

	assert.Len(t, c.Snapshot().Notifications, 3)
	assert.Equal(t, 2, c.UnreadCount())
}

func TestMarkAllRead(t *testing.T) {
	src := &fakeSource{items: sample()}
	c := New(src)
	c.Refresh(context.Background())

	require.NoError(t, c.MarkAllRead(context.Background()))
	assert.Equal(t, 1, src.markCalls)
	assert.Equal(t, 0, c.UnreadCount())
	for _, n := range c.Snapshot().Notifications {
		assert.True(t, n.IsRead, "notification %s still unread", n.ID)
	}

	// Nothing unread: no second backend call.
	require.NoError(t, c.MarkAllRead(context.Background()))
	assert.Equal(t, 1, src.markCalls)
}

func TestMarkAllReadEmptyCacheSkipsBackend(t *testing.T) {
	src := &fakeSource{}
	c := New(src)

	require.NoError(t, c.MarkAllRead(context.Background()))
	assert.Zero(t, src.markCalls)
}

func TestMarkAllReadFailureLeavesCache(t *testing.T) {
	src := &fakeSource{items: sample(), markErr: errors.New("500")}
	c := New(src)
	c.Refresh(context.Background())

	err := c.MarkAllRead(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, c.UnreadCount())
	assert.False(t, c.Snapshot().Notifications[0].IsRead)
}

func TestReset(t *testing.T) {
	c := New(&fakeSource{items: sample()})
	c.Refresh(context.Background())

	c.Reset()

	assert.Empty(t, c.Snapshot().Notifications)
	assert.Zero(t, c.UnreadCount())
}

func TestSnapshotIsCopy(t *testing.T) {
	c := New(&fakeSource{items: sample()})
	c.Refresh(context.Background())

	snap := c.Snapshot()
	snap.Notifications[0].IsRead = true

	assert.False(t, c.Snapshot().Notifications[0].IsRead)
}

func TestRefreshAfterResetIsDropped(t *testing.T) {
	src := &fakeSource{
		items:   sample(),
		started: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	c := New(src)

	done := make(chan struct{})
	go func() {
		c.Refresh(context.Background())
		close(done)
	}()

	<-src.started
	c.Reset()
	close(src.gate)
	<-done

	assert.Empty(t, c.Snapshot().Notifications)
	assert.Zero(t, c.UnreadCount())

	// A refresh started after the reset is stored as usual.
	src.started, src.gate = nil, nil
	c.Refresh(context.Background())
	assert.Equal(t, 2, c.UnreadCount())
}

func TestMarkAllReadKeepsNotificationsArrivingMeanwhile(t *testing.T) {
	src := &fakeSource{items: sample()}
	c := New(src)
	c.Refresh(context.Background())

	// The backend marks n1..n3 read, then n4 arrives before the call returns.
	afterMark := sample()
	for i := range afterMark {
		afterMark[i].IsRead = true
	}
	afterMark = append(afterMark, model.Notification{ID: "n4", Message: "New claim on your item"})
	src.duringMark = func() {
		src.mu.Lock()
		src.items = afterMark
		src.mu.Unlock()
		c.Refresh(context.Background())
	}

	require.NoError(t, c.MarkAllRead(context.Background()))

	snap := c.Snapshot()
	require.Len(t, snap.Notifications, 4)
	assert.Equal(t, 1, snap.Unread)
	assert.Equal(t, model.CountUnread(snap.Notifications), snap.Unread)
	for _, n := range snap.Notifications {
		assert.Equal(t, n.ID != "n4", n.IsRead, "notification %s", n.ID)
	}
}

func TestMarkAllReadAfterResetKeepsCacheEmpty(t *testing.T) {
	src := &fakeSource{items: sample()}
	c := New(src)
	c.Refresh(context.Background())
	src.duringMark = c.Reset

	require.NoError(t, c.MarkAllRead(context.Background()))
	assert.Empty(t, c.Snapshot().Notifications)
	assert.Zero(t, c.UnreadCount())
}
