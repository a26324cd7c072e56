// AngelaMos | 2026
// otp_test.go

package otp

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type fakeEntry struct {
	value     string
	expiresAt time.Time
}

type fakeStore struct {
	mu      sync.Mutex
	entries map[string]fakeEntry
	now     time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries: make(map[string]fakeEntry),
		now:     time.Now(),
	}
}

func (s *fakeStore) Save(
	_ context.Context,
	key, value string,
	ttl time.Duration,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = fakeEntry{value: value, expiresAt: s.now.Add(ttl)}
	return nil
}

func (s *fakeStore) ConsumeIfMatch(
	_ context.Context,
	key, value string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || s.now.After(entry.expiresAt) {
		delete(s.entries, key)
		return false, nil
	}
	if entry.value != value {
		return false, nil
	}
	delete(s.entries, key)
	return true, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return fmt.Errorf("delete otp: %w", core.ErrNotFound)
	}
	delete(s.entries, key)
	return nil
}

func (s *fakeStore) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func TestIssueGeneratesNumericCode(t *testing.T) {
	svc := NewService(newFakeStore(), 6, 10*time.Minute)

	code, err := svc.Issue(context.Background(), PurposeVerifyEmail, "a@b.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "non-digit %q in code", c)
	}
}

func TestVerifySucceedsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), 6, 10*time.Minute)

	code, err := svc.Issue(ctx, PurposeVerifyEmail, "a@b.com")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, PurposeVerifyEmail, "a@b.com", code))

	err = svc.Verify(ctx, PurposeVerifyEmail, "a@b.com", code)
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestConcurrentVerifyAcceptsCodeOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), 6, 10*time.Minute)

	code, err := svc.Issue(ctx, PurposeVerifyEmail, "a@b.com")
	require.NoError(t, err)

	const attempts = 8
	results := make(chan error, attempts)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(attempts)
	for range attempts {
		go func() {
			defer done.Done()
			start.Wait()
			results <- svc.Verify(ctx, PurposeVerifyEmail, "a@b.com", code)
		}()
	}
	start.Done()
	done.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrCodeInvalid)
		}
	}
	assert.Equal(t, 1, succeeded, "code must be consumed exactly once")
}

func TestVerifyFailsAfterExpiry(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, 6, 10*time.Minute)

	code, err := svc.Issue(ctx, PurposeResetPassword, "a@b.com")
	require.NoError(t, err)

	store.advance(11 * time.Minute)

	err = svc.Verify(ctx, PurposeResetPassword, "a@b.com", code)
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestVerifyWrongCodeDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), 6, 10*time.Minute)

	code, err := svc.Issue(ctx, PurposeVerifyEmail, "a@b.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	require.ErrorIs(
		t,
		svc.Verify(ctx, PurposeVerifyEmail, "a@b.com", wrong),
		ErrCodeInvalid,
	)

	// The real code still works after a failed guess.
	assert.NoError(t, svc.Verify(ctx, PurposeVerifyEmail, "a@b.com", code))
}

func TestVerifyMissingAndEmptyCode(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), 6, 10*time.Minute)

	assert.ErrorIs(
		t,
		svc.Verify(ctx, PurposeVerifyEmail, "none@b.com", "123456"),
		ErrCodeInvalid,
	)
	assert.ErrorIs(
		t,
		svc.Verify(ctx, PurposeVerifyEmail, "none@b.com", ""),
		ErrCodeInvalid,
	)
}

func TestReissueInvalidatesPreviousCode(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), 6, 10*time.Minute)

	first, err := svc.Issue(ctx, PurposeVerifyEmail, "a@b.com")
	require.NoError(t, err)

	second, err := svc.Issue(ctx, PurposeVerifyEmail, "a@b.com")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(
			t,
			svc.Verify(ctx, PurposeVerifyEmail, "a@b.com", first),
			ErrCodeInvalid,
		)
	}
	assert.NoError(t, svc.Verify(ctx, PurposeVerifyEmail, "a@b.com", second))
}

func TestPurposesAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), 6, 10*time.Minute)

	code, err := svc.Issue(ctx, PurposeVerifyEmail, "a@b.com")
	require.NoError(t, err)

	assert.ErrorIs(
		t,
		svc.Verify(ctx, PurposeResetPassword, "a@b.com", code),
		ErrCodeInvalid,
	)
}
