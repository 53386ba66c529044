package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	renderer, err := view.NewRenderer("$")
	require.NoError(t, err)
	menu := service.NewMenuService(repository.NewInMemoryMenuRepository())
	return NewStore(ttl, NewFactory(menu, renderer))
}

func TestFactory_DrawsMenuAndEmptySummary(t *testing.T) {
	store := newTestStore(t, time.Hour)

	sess, err := store.Create(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 4, strings.Count(string(sess.Document.Content(view.MenuContainerID)), `class="pizza-card"`))
	assert.Contains(t, string(sess.Document.Content(view.OrderSummaryID)), "Your order will appear here...")
	assert.Equal(t, "$0.00", string(sess.Document.Content(view.TotalPriceID)))
}

func TestFactory_ManagerRendersIntoSessionDocument(t *testing.T) {
	store := newTestStore(t, time.Hour)
	sess, err := store.Create(context.Background())
	require.NoError(t, err)

	entry, err := repository.NewInMemoryMenuRepository().GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, sess.Manager.AddCatalogItem(*entry, 1, nil))

	assert.Contains(t, string(sess.Document.Content(view.OrderSummaryID)), "Margherita x1")
	assert.Equal(t, "$10.99", string(sess.Document.Content(view.TotalPriceID)))
}

func TestStore_GetOrCreate(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	first, created, err := store.GetOrCreate(ctx, "")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := store.GetOrCreate(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, first, again)

	other, created, err := store.GetOrCreate(ctx, "unknown-id")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, 2, store.Len())
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	a, err := store.Create(ctx)
	require.NoError(t, err)
	b, err := store.Create(ctx)
	require.NoError(t, err)

	entry, err := repository.NewInMemoryMenuRepository().GetByID(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, a.Manager.AddCatalogItem(*entry, 1, nil))

	assert.Len(t, a.Manager.Order().Items, 1)
	assert.Empty(t, b.Manager.Order().Items)
}

func TestStore_Expiry(t *testing.T) {
	store := newTestStore(t, time.Minute)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	sess, err := store.Create(context.Background())
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = store.Get(sess.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestStore_Sweep(t *testing.T) {
	store := newTestStore(t, time.Minute)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	stale, err := store.Create(ctx)
	require.NoError(t, err)
	now = now.Add(50 * time.Second)
	fresh, err := store.Create(ctx)
	require.NoError(t, err)

	now = now.Add(20 * time.Second)
	assert.Equal(t, 1, store.Sweep())

	_, err = store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	store := newTestStore(t, time.Nanosecond)
	ctx, cancel := context.WithCancel(context.Background())

	var once sync.Once
	swept := make(chan struct{})
	done := make(chan struct{})
	go func() {
		store.Run(ctx, time.Millisecond, func(int) { once.Do(func() { close(swept) }) })
		close(done)
	}()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestStore_CreateFactoryError(t *testing.T) {
	factoryErr := errors.New("boom")
	store := NewStore(time.Minute, func(ctx context.Context, id string) (*Session, error) {
		return nil, factoryErr
	})

	_, err := store.Create(context.Background())
	assert.ErrorIs(t, err, factoryErr)
	assert.Equal(t, 0, store.Len())
}

func TestSession_Notification(t *testing.T) {
	sess := &Session{}
	sess.Lock()
	defer sess.Unlock()

	assert.Nil(t, sess.TakeNotification())
	sess.Notify(view.NotificationInfo, "hello")

	n := sess.TakeNotification()
	require.NotNil(t, n)
	assert.Equal(t, "hello", n.Message)
	assert.Nil(t, sess.TakeNotification())
}
