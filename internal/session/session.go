// Package session persists the dashboard's authentication state. The
// browser original kept the token in a cookie with a local-storage
// mirror; here a primary credentials file plays the cookie's role and a
// fallback file the mirror's: writes go to both, reads prefer the
// primary and fall back when it is missing or corrupt.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rental-dashboard-backend/internal/backend"
)

// DefaultTTL matches the 7-day cookie expiry of the original dashboard.
const DefaultTTL = 7 * 24 * time.Hour

type credentials struct {
	Token     string         `json:"token"`
	Admin     *backend.Admin `json:"admin"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// Store reads and writes the persisted session.
type Store struct {
	primaryPath  string
	fallbackPath string
	ttl          time.Duration
	now          func() time.Time
}

// NewStore creates a session store over the two given file paths.
func NewStore(primaryPath, fallbackPath string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		primaryPath:  primaryPath,
		fallbackPath: fallbackPath,
		ttl:          ttl,
		now:          time.Now,
	}
}

// SetSession persists the token and admin profile to both storage
// locations. Expiry comes from the token's own exp claim when it is a
// JWT, otherwise now+TTL.
func (s *Store) SetSession(token string, admin *backend.Admin) error {
	creds := credentials{
		Token:     token,
		Admin:     admin,
		ExpiresAt: s.expiry(token),
	}

	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := writeFile(s.primaryPath, raw); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	// The fallback mirror is best-effort; the primary write already
	// succeeded.
	if err := writeFile(s.fallbackPath, raw); err != nil {
		log.Printf("Warning: failed to mirror session to %s: %v", s.fallbackPath, err)
	}
	return nil
}

// Token returns the persisted bearer token. The second return is false
// when no unexpired session exists.
func (s *Store) Token() (string, bool) {
	creds, ok := s.load()
	if !ok || creds.Token == "" {
		return "", false
	}
	return creds.Token, true
}

// AdminProfile returns the persisted admin profile, or nil/false on
// missing or malformed data. It never fails loudly.
func (s *Store) AdminProfile() (*backend.Admin, bool) {
	creds, ok := s.load()
	if !ok || creds.Admin == nil {
		return nil, false
	}
	return creds.Admin, true
}

// IsAuthenticated reports whether an unexpired profile is resolvable.
// The route guard uses this to redirect visitors to the login screen.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.AdminProfile()
	return ok
}

// Clear removes both storage locations.
func (s *Store) Clear() error {
	var errs []error
	for _, path := range []string{s.primaryPath, s.fallbackPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to clear session: %v", errs)
	}
	return nil
}

// load reads the primary file first, then the fallback. Malformed or
// expired credentials read as absent.
func (s *Store) load() (*credentials, bool) {
	for _, path := range []string{s.primaryPath, s.fallbackPath} {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var creds credentials
		if err := json.Unmarshal(raw, &creds); err != nil {
			log.Printf("Warning: malformed session data in %s: %v", path, err)
			continue
		}
		if !creds.ExpiresAt.IsZero() && s.now().After(creds.ExpiresAt) {
			continue
		}
		return &creds, true
	}
	return nil, false
}

// expiry extracts the exp claim from a JWT without verifying it; the
// backend is the verifier, the client only needs to know when to stop
// sending the token.
func (s *Store) expiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return s.now().Add(s.ttl)
}

func writeFile(path string, raw []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, 0o600)
}
