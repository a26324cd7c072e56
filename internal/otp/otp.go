// AngelaMos | 2026
// otp.go

// Package otp issues and verifies short-lived numeric codes used to
// prove control of an email address.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/carterperez-dev/invoicery/internal/core"
)

// ErrCodeInvalid is returned for every verification failure: missing,
// mismatched, and expired codes are deliberately indistinguishable.
var ErrCodeInvalid = errors.New("invalid or expired code")

type Purpose string

const (
	PurposeVerifyEmail   Purpose = "verify-email"
	PurposeResetPassword Purpose = "reset-password"
)

// Store persists a single code per (purpose, email) with a TTL.
// Expiry is the store's responsibility; the service never tracks time.
// ConsumeIfMatch deletes the stored value only when it equals the
// given one, atomically, so a code is accepted at most once even under
// concurrent verification.
type Store interface {
	Save(
		ctx context.Context,
		key, value string,
		ttl time.Duration,
	) error
	ConsumeIfMatch(ctx context.Context, key, value string) (bool, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	store  Store
	length int
	ttl    time.Duration
}

func NewService(store Store, length int, ttl time.Duration) *Service {
	if length <= 0 {
		length = 6
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Service{store: store, length: length, ttl: ttl}
}

// Issue generates a fresh numeric code and stores its hash, replacing
// any outstanding code for the same purpose and email.
func (s *Service) Issue(
	ctx context.Context,
	purpose Purpose,
	email string,
) (string, error) {
	code, err := generateCode(s.length)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	key := storageKey(purpose, email)
	if err := s.store.Save(ctx, key, core.HashToken(code), s.ttl); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}

	return code, nil
}

// Verify checks the code and consumes it on success. Compare-and-
// delete happens in one store round trip, so a matched code can never
// be accepted twice; a mismatch leaves the stored code untouched.
func (s *Service) Verify(
	ctx context.Context,
	purpose Purpose,
	email, code string,
) error {
	if code == "" {
		return ErrCodeInvalid
	}

	key := storageKey(purpose, email)

	matched, err := s.store.ConsumeIfMatch(ctx, key, core.HashToken(code))
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}

	if !matched {
		return ErrCodeInvalid
	}

	return nil
}

// Invalidate drops any outstanding code, used before issuing a resend.
func (s *Service) Invalidate(
	ctx context.Context,
	purpose Purpose,
	email string,
) error {
	if err := s.store.Delete(ctx, storageKey(purpose, email)); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("invalidate otp: %w", err)
	}
	return nil
}

func storageKey(purpose Purpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("read random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
