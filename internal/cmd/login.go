package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/skel-ai/go-responder/internal/credstore"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with OAuth and store the credentials",
	Long: `login prints the authorization URL, then waits for the redirect URL to
be pasted back. The exchanged tokens are written to the credential file.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	clientID := os.Getenv("RESPONDER_CLIENT_ID")
	if clientID == "" {
		return errors.New("no OAuth client id configured; set RESPONDER_CLIENT_ID")
	}

	oauthCfg := credstore.NewOAuth2Config(clientID)
	state := uuid.New().String()

	fmt.Fprintln(os.Stderr, "Open this URL in your browser and authorize access:")
	fmt.Fprintln(os.Stderr, oauthCfg.AuthCodeURL(state))
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Paste the full redirect URL here and press Enter:")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return errors.New("no redirect URL provided")
	}
	line := strings.TrimSpace(scanner.Text())
	if line == "" {
		return errors.New("no redirect URL provided")
	}

	parsed, err := url.Parse(line)
	if err != nil {
		return fmt.Errorf("failed to parse redirect URL: %w", err)
	}
	code := parsed.Query().Get("code")
	if code == "" {
		return errors.New("redirect URL did not contain an auth code")
	}
	if got := parsed.Query().Get("state"); got != "" && got != state {
		return errors.New("state mismatch; ignoring redirect URL for safety")
	}

	token, err := oauthCfg.Exchange(cmd.Context(), code)
	if err != nil {
		return fmt.Errorf("code exchange failed: %w", err)
	}

	cf := &credstore.CredentialFile{
		Credentials: credstore.Credentials{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
		},
	}
	if id, ok := token.Extra("id_token").(string); ok {
		cf.Credentials.IDToken = id
		cf.Credentials.AccountID = credstore.DeriveAccountID(id)
	}
	if err := credstore.WriteCredentialFile(cf); err != nil {
		return fmt.Errorf("unable to persist credentials: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Login successful; credentials saved.")
	return nil
}
