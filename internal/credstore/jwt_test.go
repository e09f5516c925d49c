package credstore

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
)

func makeJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	b64 := base64.RawURLEncoding.EncodeToString
	return b64([]byte(`{"alg":"none"}`)) + "." + b64(payload) + ".sig"
}

func TestParseJWTClaims(t *testing.T) {
	token := makeJWT(t, map[string]any{"exp": float64(1735689600), "sub": "user_1"})

	claims, err := ParseJWTClaims(token)
	if err != nil {
		t.Fatalf("ParseJWTClaims: %v", err)
	}
	if claims["sub"] != "user_1" {
		t.Errorf("sub: got %v", claims["sub"])
	}
	if exp, ok := claims["exp"].(float64); !ok || exp != 1735689600 {
		t.Errorf("exp: got %v", claims["exp"])
	}
}

func TestParseJWTClaimsRejectsMalformed(t *testing.T) {
	for _, token := range []string{"", "onlyone", "a.b", "a.b.c.d"} {
		if _, err := ParseJWTClaims(token); !errors.Is(err, ErrInvalidJWT) {
			t.Errorf("ParseJWTClaims(%q): got %v, want ErrInvalidJWT", token, err)
		}
	}

	if _, err := ParseJWTClaims("head.!!!notbase64!!!.sig"); err == nil {
		t.Error("expected error for an undecodable payload segment")
	}
	badJSON := base64.RawURLEncoding.EncodeToString([]byte("{broken"))
	if _, err := ParseJWTClaims("head." + badJSON + ".sig"); err == nil {
		t.Error("expected error for a non-JSON payload")
	}
}

func TestDeriveAccountID(t *testing.T) {
	token := makeJWT(t, map[string]any{
		"https://api.openai.com/auth": map[string]any{"chatgpt_account_id": "acct_123"},
	})
	if got := DeriveAccountID(token); got != "acct_123" {
		t.Errorf("got %q, want acct_123", got)
	}

	for _, token := range []string{
		"",
		"not-a-jwt",
		makeJWT(t, map[string]any{"sub": "user_1"}),
	} {
		if got := DeriveAccountID(token); got != "" {
			t.Errorf("DeriveAccountID(%q): got %q, want empty", token, got)
		}
	}
}
