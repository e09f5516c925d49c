// Package credstore manages the bearer credential used for API calls:
// a token file on disk, refreshed through the OAuth token endpoint when
// stale. Absence of a credential is reported before any request is made.
package credstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/skel-ai/go-responder/internal/apierr"
)

// Store supplies the bearer token for outgoing requests.
type Store interface {
	// BearerToken returns a usable access token, or
	// apierr.ErrMissingCredential when none is available.
	BearerToken() (string, error)
}

// Credentials are the tokens persisted in credentials.json.
type Credentials struct {
	IDToken      string `json:"id_token,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	AccountID    string `json:"account_id,omitempty"`
}

// CredentialFile is the full on-disk credential record.
type CredentialFile struct {
	Credentials Credentials `json:"credentials"`
	LastRefresh string      `json:"last_refresh,omitempty"`
}

// HomeDir returns the credential storage directory.
func HomeDir() string {
	if d := os.Getenv("RESPONDER_HOME"); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".responder")
}

// ReadCredentialFile loads credentials.json from the home directory.
func ReadCredentialFile() (*CredentialFile, error) {
	data, err := os.ReadFile(filepath.Join(HomeDir(), "credentials.json"))
	if err != nil {
		return nil, apierr.ErrMissingCredential
	}
	var cf CredentialFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, apierr.ErrMissingCredential
	}
	return &cf, nil
}

// WriteCredentialFile persists the credentials with 0600 permissions.
func WriteCredentialFile(cf *CredentialFile) error {
	dir := HomeDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("unable to create credential directory %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "credentials.json"), data, 0o600)
}

// FileStore is the file-backed Store with thread-safe refresh.
type FileStore struct {
	mu       sync.Mutex
	clientID string
	tokenURL string
}

// NewFileStore creates a file-backed credential store. An empty clientID
// disables refresh; the stored access token is used as-is.
func NewFileStore(clientID, tokenURL string) *FileStore {
	return &FileStore{clientID: clientID, tokenURL: tokenURL}
}

// BearerToken returns the stored access token, refreshing it first when it
// is missing or near expiry.
func (s *FileStore) BearerToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cf, err := ReadCredentialFile()
	if err != nil {
		return "", apierr.ErrMissingCredential
	}

	token := cf.Credentials.AccessToken
	refreshToken := cf.Credentials.RefreshToken

	if s.clientID != "" && refreshToken != "" && shouldRefresh(token, cf.LastRefresh) {
		refreshed, err := refreshTokens(refreshToken, s.clientID, s.tokenURL)
		if err != nil {
			slog.Error("token refresh failed", "error", err)
		} else {
			token = refreshed.AccessToken
			cf.Credentials.AccessToken = refreshed.AccessToken
			if refreshed.IDToken != "" {
				cf.Credentials.IDToken = refreshed.IDToken
			}
			if refreshed.RefreshToken != "" {
				cf.Credentials.RefreshToken = refreshed.RefreshToken
			}
			if refreshed.AccountID != "" {
				cf.Credentials.AccountID = refreshed.AccountID
			}
			cf.LastRefresh = time.Now().UTC().Format(time.RFC3339)
			if err := WriteCredentialFile(cf); err != nil {
				slog.Error("unable to persist refreshed credentials", "error", err)
			}
		}
	}

	if token == "" {
		return "", apierr.ErrMissingCredential
	}
	return token, nil
}

// shouldRefresh checks whether the access token is expired or close to it.
func shouldRefresh(accessToken, lastRefresh string) bool {
	if accessToken == "" {
		return true
	}

	claims, err := ParseJWTClaims(accessToken)
	if err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			return time.Until(time.Unix(int64(exp), 0)) <= 5*time.Minute
		}
	}

	if lastRefresh != "" {
		if t, err := time.Parse(time.RFC3339, lastRefresh); err == nil {
			return time.Since(t) >= 55*time.Minute
		}
	}

	return false
}

// StaticStore returns a fixed token, for tests and for API-key usage.
type StaticStore string

// BearerToken returns the fixed token or ErrMissingCredential when empty.
func (s StaticStore) BearerToken() (string, error) {
	if s == "" {
		return "", apierr.ErrMissingCredential
	}
	return string(s), nil
}
