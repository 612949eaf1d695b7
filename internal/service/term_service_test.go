package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/terms-api/internal/serializer"
	appErrors "github.com/noah-isme/terms-api/pkg/errors"
)

type mockTermRepo struct {
	current    string
	currentErr error
	list       *serializer.TermCollection
	listErr    error
	terms      map[string]*serializer.TermResource
	getErr     error

	listCalls    int
	getCalls     int
	currentCalls int
}

func (m *mockTermRepo) CurrentTermCode(ctx context.Context) (string, error) {
	m.currentCalls++
	return m.current, m.currentErr
}

func (m *mockTermRepo) GetTerms(ctx context.Context) (*serializer.TermCollection, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *mockTermRepo) GetTermByTermCode(ctx context.Context, termCode string) (*serializer.TermResource, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.terms[termCode], nil
}

type mockCacheRepo struct {
	items  map[string][]byte
	getErr error
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.items == nil {
		m.items = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}

func newTermService(repo *mockTermRepo, cache *CacheService, metrics *MetricsService) *TermService {
	return NewTermService(TermServiceParams{
		Repo:      repo,
		Cache:     cache,
		Metrics:   metrics,
		Validator: validator.New(),
		Logger:    zap.NewNop(),
		CacheTTL:  time.Minute,
	})
}

func TestTermServiceList(t *testing.T) {
	expected := &serializer.TermCollection{Data: []serializer.TermResource{{ID: "202101"}}}
	repo := &mockTermRepo{list: expected}
	svc := newTermService(repo, nil, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Same(t, expected, got)
}

func TestTermServiceListCardinalityFailure(t *testing.T) {
	metrics := NewMetricsService()
	repo := &mockTermRepo{listErr: appErrors.ErrMultipleResults}
	svc := newTermService(repo, nil, metrics)

	_, err := svc.List(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "MULTIPLE_RESULTS", appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.ErrorIs(t, err, appErrors.ErrMultipleResults)
	assert.Equal(t, uint64(1), metrics.Snapshot().LookupFailures)
}

func TestTermServiceListQueryFailure(t *testing.T) {
	queryErr := errors.New("connection reset")
	svc := newTermService(&mockTermRepo{listErr: queryErr}, nil, nil)

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
	assert.ErrorIs(t, err, queryErr)
}

func TestTermServiceGet(t *testing.T) {
	expected := &serializer.TermResource{ID: "202101", Type: "term"}
	repo := &mockTermRepo{terms: map[string]*serializer.TermResource{"202101": expected}}
	svc := newTermService(repo, nil, nil)

	got, err := svc.Get(context.Background(), TermCodeRequest{TermCode: "202101"})
	require.NoError(t, err)
	assert.Same(t, expected, got)
}

func TestTermServiceGetNotFound(t *testing.T) {
	svc := newTermService(&mockTermRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), TermCodeRequest{TermCode: "209901"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "term not found", appErr.Message)
}

func TestTermServiceGetInvalidCode(t *testing.T) {
	repo := &mockTermRepo{}
	svc := newTermService(repo, nil, nil)

	for _, code := range []string{"", "2021", "20210A", "2021011"} {
		_, err := svc.Get(context.Background(), TermCodeRequest{TermCode: code})
		require.Error(t, err, code)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code, code)
	}
	assert.Zero(t, repo.getCalls)
}

func TestTermServiceCurrent(t *testing.T) {
	svc := newTermService(&mockTermRepo{current: "202102"}, nil, nil)

	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "202102", got.TermCode)
}

func TestTermServiceCurrentMissingCode(t *testing.T) {
	svc := newTermService(&mockTermRepo{currentErr: appErrors.ErrMissingTermCode}, nil, nil)

	_, err := svc.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, "MISSING_FIELD", appErrors.FromError(err).Code)
	assert.Contains(t, err.Error(), "Result doesn't contain term code.")
}

func TestTermServiceUsesCache(t *testing.T) {
	metrics := NewMetricsService()
	cacheRepo := &mockCacheRepo{}
	cache := NewCacheService(cacheRepo, metrics, time.Minute, zap.NewNop(), true)
	repo := &mockTermRepo{
		list:  &serializer.TermCollection{Data: []serializer.TermResource{{ID: "202101"}}},
		terms: map[string]*serializer.TermResource{"202101": {ID: "202101"}},
	}
	svc := newTermService(repo, cache, metrics)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "202101", list.Data[0].ID)

		term, err := svc.Get(ctx, TermCodeRequest{TermCode: "202101"})
		require.NoError(t, err)
		assert.Equal(t, "202101", term.ID)
	}

	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 1, repo.getCalls)
	assert.Contains(t, cacheRepo.items, "list")
	assert.Contains(t, cacheRepo.items, "code:202101")

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(2), snapshot.CacheHits)
	assert.Equal(t, uint64(2), snapshot.CacheMisses)
}

func TestTermServiceSkipsCacheForNotFound(t *testing.T) {
	cacheRepo := &mockCacheRepo{}
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := newTermService(&mockTermRepo{}, cache, nil)

	_, err := svc.Get(context.Background(), TermCodeRequest{TermCode: "209901"})
	require.Error(t, err)
	assert.Empty(t, cacheRepo.items)
}

func TestTermServiceFallsThroughOnCacheFailure(t *testing.T) {
	cache := NewCacheService(&mockCacheRepo{getErr: errors.New("redis down")}, nil, time.Minute, zap.NewNop(), true)
	repo := &mockTermRepo{current: "202102"}
	svc := newTermService(repo, cache, nil)

	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "202102", got.TermCode)
	assert.Equal(t, 1, repo.currentCalls)
}
