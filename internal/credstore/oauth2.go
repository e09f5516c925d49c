package credstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
)

const (
	defaultIssuer = "https://auth.openai.com"

	// redirectURL matches the value registered for the OAuth application;
	// the authorization server validates it against the registered value.
	redirectURL = "http://localhost:1455/auth/callback"
)

// ErrRefreshFailed signals a token refresh response missing the new tokens.
var ErrRefreshFailed = errors.New("token refresh returned no usable tokens")

// Issuer returns the OAuth issuer URL from env or default.
func Issuer() string {
	if iss := os.Getenv("RESPONDER_OAUTH_ISSUER"); iss != "" {
		return iss
	}
	return defaultIssuer
}

// TokenURL returns the OAuth token endpoint.
func TokenURL() string {
	return Issuer() + "/oauth/token"
}

// NewOAuth2Config creates the oauth2.Config for the login flow.
//
// "offline_access" is requested to obtain a refresh token so the user does
// not need to re-authenticate after every session.
func NewOAuth2Config(clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Endpoint: oauth2.Endpoint{
			AuthURL:   Issuer() + "/oauth/authorize",
			TokenURL:  TokenURL(),
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes:      []string{"openid", "profile", "email", "offline_access"},
		RedirectURL: redirectURL,
	}
}

// tokenRefreshResponse is the JSON response from the token refresh endpoint.
type tokenRefreshResponse struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
}

// refreshTokens exchanges a refresh token for new tokens.
// NOTE: kept as manual HTTP because the token refresh endpoint expects an
// application/json body, not form-encoded.
func refreshTokens(refreshToken, clientID, tokenURL string) (*Credentials, error) {
	payload := map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
		"client_id":     clientID,
		"scope":         "openid profile email offline_access",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(tokenURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("refresh token request returned status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read refresh response: %w", err)
	}

	var data tokenRefreshResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, fmt.Errorf("unable to parse refresh response: %w", err)
	}

	if data.AccessToken == "" {
		return nil, ErrRefreshFailed
	}

	newRefresh := data.RefreshToken
	if newRefresh == "" {
		newRefresh = refreshToken
	}

	return &Credentials{
		AccessToken:  data.AccessToken,
		IDToken:      data.IDToken,
		RefreshToken: newRefresh,
		AccountID:    DeriveAccountID(data.IDToken),
	}, nil
}
