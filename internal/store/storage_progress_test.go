package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-progress-tracker/internal/config"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/mock"
	"github.com/MKhiriev/go-progress-tracker/internal/store"
	"github.com/MKhiriev/go-progress-tracker/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	userID  = "user-1"
	genKey  = "progress:gen:user-1"
	listKey = "progress:list:user-1:0"
)

type storageDeps struct {
	repo       *mock.MockProgressRepository
	cache      *mock.MockCache
	classifier *mock.MockErrorClassificator
}

func newStorage(t *testing.T, withCache bool) (store.ProgressStorage, storageDeps) {
	ctrl := gomock.NewController(t)
	deps := storageDeps{
		repo:       mock.NewMockProgressRepository(ctrl),
		cache:      mock.NewMockCache(ctrl),
		classifier: mock.NewMockErrorClassificator(ctrl),
	}

	var c store.Cache
	if withCache {
		c = deps.cache
	}

	s := store.NewProgressStorage(deps.repo, c, config.Cache{TTL: time.Minute}, deps.classifier, logger.Nop())
	return s, deps
}

func sample() models.Progress {
	return models.Progress{
		ID:             "p-1",
		UserID:         userID,
		Platform:       "LeetCode",
		ProblemsSolved: 10,
		TotalProblems:  50,
		LastUpdated:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestProgressStorage_Upsert_InvalidatesCache(t *testing.T) {
	s, deps := newStorage(t, true)
	ctx := context.Background()

	gomock.InOrder(
		deps.repo.EXPECT().UpsertProgress(ctx, sample()).Return(sample(), nil),
		deps.cache.EXPECT().Incr(ctx, genKey).Return(int64(1), nil),
	)

	got, err := s.Upsert(ctx, sample())
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestProgressStorage_Upsert_ConflictRetriesAsUpdate(t *testing.T) {
	s, deps := newStorage(t, false)
	ctx := context.Background()

	updated := sample()
	updated.ID = "p-existing"

	gomock.InOrder(
		deps.repo.EXPECT().UpsertProgress(ctx, sample()).Return(models.Progress{}, store.ErrProgressConflict),
		deps.repo.EXPECT().UpdateProgress(ctx, sample()).Return(updated, nil),
	)

	got, err := s.Upsert(ctx, sample())
	require.NoError(t, err)
	assert.Equal(t, "p-existing", got.ID)
}

func TestProgressStorage_Upsert_TransientErrorIsNotRetried(t *testing.T) {
	s, deps := newStorage(t, true)
	ctx := context.Background()
	serialization := &pgconn.PgError{Code: pgerrcode.SerializationFailure}

	deps.repo.EXPECT().UpsertProgress(ctx, sample()).Return(models.Progress{}, serialization).Times(1)
	deps.classifier.EXPECT().Classify(serialization).Return(store.Retryable)
	// neither a second attempt nor a generation bump

	_, err := s.Upsert(ctx, sample())
	assert.ErrorIs(t, err, serialization)
}

func TestProgressStorage_Upsert_FailedUpdateAfterConflict(t *testing.T) {
	s, deps := newStorage(t, true)
	ctx := context.Background()
	boom := errors.New("boom")

	gomock.InOrder(
		deps.repo.EXPECT().UpsertProgress(ctx, sample()).Return(models.Progress{}, store.ErrProgressConflict),
		deps.repo.EXPECT().UpdateProgress(ctx, sample()).Return(models.Progress{}, boom),
		deps.classifier.EXPECT().Classify(boom).Return(store.NonRetryable),
	)

	_, err := s.Upsert(ctx, sample())
	assert.ErrorIs(t, err, boom)
}

func TestProgressStorage_Upsert_NonRetryableFails(t *testing.T) {
	s, deps := newStorage(t, true)
	ctx := context.Background()
	boom := errors.New("boom")

	deps.repo.EXPECT().UpsertProgress(ctx, sample()).Return(models.Progress{}, boom)
	deps.classifier.EXPECT().Classify(boom).Return(store.NonRetryable)

	_, err := s.Upsert(ctx, sample())
	assert.ErrorIs(t, err, boom)
}

func TestProgressStorage_List_CacheHit(t *testing.T) {
	s, deps := newStorage(t, true)
	ctx := context.Background()

	payload, err := json.Marshal([]models.Progress{sample()})
	require.NoError(t, err)
	gomock.InOrder(
		deps.cache.EXPECT().Get(ctx, genKey).Return([]byte("3"), nil),
		deps.cache.EXPECT().Get(ctx, "progress:list:user-1:3").Return(payload, nil),
	)

	list, err := s.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sample(), list[0])
}

func TestProgressStorage_List_CacheMissFillsCache(t *testing.T) {
	s, deps := newStorage(t, true)
	ctx := context.Background()

	expected := []models.Progress{sample()}
	payload, _ := json.Marshal(expected)

	gomock.InOrder(
		deps.cache.EXPECT().Get(ctx, genKey).Return(nil, nil),
		deps.cache.EXPECT().Get(ctx, listKey).Return(nil, nil),
		deps.repo.EXPECT().ListProgress(ctx, userID).Return(expected, nil),
		deps.cache.EXPECT().Set(ctx, listKey, payload, time.Minute).Return(nil),
	)

	list, err := s.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, expected, list)
}

func TestProgressStorage_List_CorruptEntryIsDropped(t *testing.T) {
	s, deps := newStorage(t, true)
	ctx := context.Background()

	gomock.InOrder(
		deps.cache.EXPECT().Get(ctx, genKey).Return(nil, nil),
		deps.cache.EXPECT().Get(ctx, listKey).Return([]byte("{not json"), nil),
		deps.cache.EXPECT().Delete(ctx, listKey).Return(nil),
		deps.repo.EXPECT().ListProgress(ctx, userID).Return([]models.Progress{}, nil),
		deps.cache.EXPECT().Set(ctx, listKey, []byte("[]"), time.Minute).Return(nil),
	)

	list, err := s.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProgressStorage_List_NoCache(t *testing.T) {
	s, deps := newStorage(t, false)
	ctx := context.Background()

	boom := errors.New("boom")
	deps.repo.EXPECT().ListProgress(ctx, userID).Return(nil, boom)
	deps.classifier.EXPECT().Classify(boom).Return(store.NonRetryable)

	_, err := s.List(ctx, userID)
	assert.ErrorIs(t, err, boom)
}

func TestProgressStorage_List_UnreadableGenerationBypassesCache(t *testing.T) {
	s, deps := newStorage(t, true)
	ctx := context.Background()

	expected := []models.Progress{sample()}
	gomock.InOrder(
		deps.cache.EXPECT().Get(ctx, genKey).Return([]byte("not-a-number"), nil),
		deps.repo.EXPECT().ListProgress(ctx, userID).Return(expected, nil),
	)

	list, err := s.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, expected, list)
}

// memoryCache is a Cache backed by a map, for interleaving tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(string(c.data[key]), 10, 64)
	n++
	c.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func TestProgressStorage_List_WriteDuringReadIsNotHidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockProgressRepository(ctrl)
	s := store.NewProgressStorage(repo, newMemoryCache(), config.Cache{TTL: time.Minute}, nil, logger.Nop())
	ctx := context.Background()

	gomock.InOrder(
		// the first read takes its snapshot, then an upsert commits before
		// the snapshot reaches the cache
		repo.EXPECT().ListProgress(ctx, userID).DoAndReturn(func(ctx context.Context, _ string) ([]models.Progress, error) {
			_, err := s.Upsert(ctx, sample())
			require.NoError(t, err)
			return []models.Progress{}, nil
		}),
		repo.EXPECT().UpsertProgress(ctx, sample()).Return(sample(), nil),
		repo.EXPECT().ListProgress(ctx, userID).Return([]models.Progress{sample()}, nil),
	)

	stale, err := s.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, stale)

	fresh, err := s.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []models.Progress{sample()}, fresh)

	// the fresh list is now served from the cache
	cached, err := s.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []models.Progress{sample()}, cached)
}

func TestProgressStorage_List_DeleteInvalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockProgressRepository(ctrl)
	s := store.NewProgressStorage(repo, newMemoryCache(), config.Cache{TTL: time.Minute}, nil, logger.Nop())
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().ListProgress(ctx, userID).Return([]models.Progress{sample()}, nil),
		repo.EXPECT().DeleteProgress(ctx, userID, "p-1").Return(nil),
		repo.EXPECT().ListProgress(ctx, userID).Return([]models.Progress{}, nil),
	)

	list, err := s.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, userID, "p-1"))

	list, err = s.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProgressStorage_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		s, deps := newStorage(t, true)
		ctx := context.Background()

		gomock.InOrder(
			deps.repo.EXPECT().DeleteProgress(ctx, userID, "p-1").Return(nil),
			deps.cache.EXPECT().Incr(ctx, genKey).Return(int64(0), errors.New("redis down")),
		)

		assert.NoError(t, s.Delete(ctx, userID, "p-1"))
	})

	t.Run("not found", func(t *testing.T) {
		s, deps := newStorage(t, true)
		ctx := context.Background()

		deps.repo.EXPECT().DeleteProgress(ctx, userID, "p-1").Return(store.ErrProgressNotFound)

		assert.ErrorIs(t, s.Delete(ctx, userID, "p-1"), store.ErrProgressNotFound)
	})
}
