package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablegate/internal/core/domain"
	"stablegate/pkg/apperror"
)

type fakeIdempotencyCache struct {
	getResult []byte
	getErr    error
	setErr    error
	setCalls  []string
}

func (f *fakeIdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	return f.getResult, f.getErr
}

func (f *fakeIdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.setCalls = append(f.setCalls, key)
	return f.setErr
}

type fakeIdempotencyRepo struct {
	getResult *domain.IdempotencyRecord
	getErr    error
	createErr error
	created   *domain.IdempotencyRecord
}

func (f *fakeIdempotencyRepo) Get(ctx context.Context, scope domain.IdempotencyScope, key string) (*domain.IdempotencyRecord, error) {
	return f.getResult, f.getErr
}

func (f *fakeIdempotencyRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.IdempotencyRecord) error {
	f.created = record
	return f.createErr
}

func TestIdempotencyGuard_Check_CacheHit(t *testing.T) {
	cache := &fakeIdempotencyCache{getResult: []byte(`{"fingerprint":"fp1","response":"eyJvayI6dHJ1ZX0="}`)}
	repo := &fakeIdempotencyRepo{}
	guard := newIdempotencyGuard(cache, repo, zerolog.Nop())

	resp, err := guard.check(context.Background(), domain.IdempotencyScopeCreateInvoice, "k1", "fp1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"ok":true}`), resp)
}

func TestIdempotencyGuard_Check_CacheHitFingerprintMismatch(t *testing.T) {
	cache := &fakeIdempotencyCache{getResult: []byte(`{"fingerprint":"fp-old","response":"eyJvayI6dHJ1ZX0="}`)}
	repo := &fakeIdempotencyRepo{}
	guard := newIdempotencyGuard(cache, repo, zerolog.Nop())

	_, err := guard.check(context.Background(), domain.IdempotencyScopeCreateInvoice, "k1", "fp-new")
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "IDM_002", appErr.Code)
}

func TestIdempotencyGuard_Check_CacheMissRepoMiss(t *testing.T) {
	cache := &fakeIdempotencyCache{getResult: nil}
	repo := &fakeIdempotencyRepo{getResult: nil}
	guard := newIdempotencyGuard(cache, repo, zerolog.Nop())

	resp, err := guard.check(context.Background(), domain.IdempotencyScopeCreateInvoice, "k1", "fp1")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestIdempotencyGuard_Check_RepoHitMatchingFingerprint(t *testing.T) {
	cache := &fakeIdempotencyCache{getResult: nil}
	repo := &fakeIdempotencyRepo{getResult: &domain.IdempotencyRecord{
		RequestFingerprint: "fp1",
		StoredResponse:     []byte(`{"cached":true}`),
	}}
	guard := newIdempotencyGuard(cache, repo, zerolog.Nop())

	resp, err := guard.check(context.Background(), domain.IdempotencyScopeCreateInvoice, "k1", "fp1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"cached":true}`), resp)
}

func TestIdempotencyGuard_Check_RepoHitFingerprintMismatch(t *testing.T) {
	cache := &fakeIdempotencyCache{getResult: nil}
	repo := &fakeIdempotencyRepo{getResult: &domain.IdempotencyRecord{
		RequestFingerprint: "fp-old",
		StoredResponse:     []byte(`{"cached":true}`),
	}}
	guard := newIdempotencyGuard(cache, repo, zerolog.Nop())

	_, err := guard.check(context.Background(), domain.IdempotencyScopeCreateInvoice, "k1", "fp-new")
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "IDM_002", appErr.Code)
}

func TestIdempotencyGuard_Check_RepoErrorWraps(t *testing.T) {
	cache := &fakeIdempotencyCache{getResult: nil}
	repo := &fakeIdempotencyRepo{getErr: errors.New("connection reset")}
	guard := newIdempotencyGuard(cache, repo, zerolog.Nop())

	_, err := guard.check(context.Background(), domain.IdempotencyScopeCreateInvoice, "k1", "fp1")
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestIdempotencyGuard_CacheAfterCommit_SwallowsSetError(t *testing.T) {
	cache := &fakeIdempotencyCache{setErr: errors.New("redis down")}
	repo := &fakeIdempotencyRepo{}
	guard := newIdempotencyGuard(cache, repo, zerolog.Nop())

	// Must not panic or propagate — a failed cache population only costs
	// a DB round trip on the next replay.
	guard.cacheAfterCommit(context.Background(), "k1", "fp1", []byte("resp"))
	assert.Equal(t, []string{"k1"}, cache.setCalls)
}
