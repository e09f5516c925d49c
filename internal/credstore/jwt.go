package credstore

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// ErrInvalidJWT signals a token that does not have the three-segment form.
var ErrInvalidJWT = errors.New("invalid JWT format")

// ParseJWTClaims decodes the payload segment of a JWT without verifying the
// signature. The claims are read for expiry and display only, never trusted
// for authorization decisions.
func ParseJWTClaims(token string) (map[string]any, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidJWT
	}
	payload := parts[1]
	// Add base64url padding
	if m := len(payload) % 4; m != 0 {
		payload += strings.Repeat("=", 4-m)
	}
	data, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	var claims map[string]any
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// DeriveAccountID extracts the account identifier from an id_token's claims.
// Returns empty on any shape mismatch; the account id is informational.
func DeriveAccountID(idToken string) string {
	if idToken == "" {
		return ""
	}
	claims, err := ParseJWTClaims(idToken)
	if err != nil {
		return ""
	}
	authClaims, ok := claims["https://api.openai.com/auth"].(map[string]any)
	if !ok {
		return ""
	}
	aid, _ := authClaims["chatgpt_account_id"].(string)
	return aid
}
