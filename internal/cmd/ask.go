package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skel-ai/go-responder/internal/analytics"
	"github.com/skel-ai/go-responder/internal/apierr"
	"github.com/skel-ai/go-responder/internal/assemble"
	"github.com/skel-ai/go-responder/internal/capability"
	"github.com/skel-ai/go-responder/internal/compose"
	"github.com/skel-ai/go-responder/internal/transport"
)

var (
	askNoStream   bool
	askFiles      []string
	askFileIDs    []string
	askImageURLs  []string
	askPreviousID string
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one conversation turn and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askNoStream, "no-stream", false, "wait for the full response instead of streaming")
	askCmd.Flags().StringSliceVar(&askFiles, "file", nil, "local file to attach inline")
	askCmd.Flags().StringSliceVar(&askFileIDs, "file-id", nil, "uploaded file id to reference")
	askCmd.Flags().StringSliceVar(&askImageURLs, "image-url", nil, "image URL to attach")
	askCmd.Flags().StringVar(&askPreviousID, "previous-response-id", "", "continue from a stored response")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in := compose.Input{
		UserText:           strings.Join(args, " "),
		AttachmentFileIDs:  askFileIDs,
		PreviousResponseID: askPreviousID,
		Stream:             !askNoStream,
	}
	for _, path := range askFiles {
		blob, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading attachment %s: %w", path, err)
		}
		in.FileBlobs = append(in.FileBlobs, blob)
		in.FileNames = append(in.FileNames, filepath.Base(path))
	}
	for _, url := range askImageURLs {
		in.Images = append(in.Images, compose.ImageInput{URL: url})
	}

	oracle := capability.NewStatic()
	composer := compose.New(oracle, assemble.New(oracle))
	payload := composer.Compose(cfg, in)

	sink := analytics.NewSink(cfg.AnalyticsLog)
	defer sink.Close()

	client := transport.NewClient(cfg.BaseURL, credentialStore(), sink, cfg.Verbose)

	if askNoStream {
		resp, err := client.Create(cmd.Context(), payload)
		if err != nil {
			return describeFailure(err)
		}
		fmt.Println(resp.OutputText())
		return nil
	}

	stream, err := client.CreateStream(cmd.Context(), payload)
	if err != nil {
		return describeFailure(err)
	}
	defer stream.Close()

	for evt := range stream.Events() {
		switch evt.Type {
		case "response.output_text.delta":
			if delta, ok := evt.Data["delta"].(string); ok {
				fmt.Print(delta)
			}
		case "response.completed":
			fmt.Println()
		case "response.failed":
			if msg := failureMessage(evt.Data); msg != "" {
				fmt.Fprintln(os.Stderr, "response failed:", msg)
			}
		}
	}
	return stream.Err()
}

// describeFailure maps the error taxonomy onto user guidance: credential
// setup, a retry countdown, or the failure message itself.
func describeFailure(err error) error {
	var rateLimited *apierr.RateLimitedError
	switch {
	case errors.Is(err, apierr.ErrMissingCredential):
		return errors.New("not signed in: set RESPONDER_API_KEY or run 'responder login'")
	case errors.As(err, &rateLimited):
		return fmt.Errorf("rate limited; try again in %d seconds", rateLimited.RetryAfter)
	default:
		return err
	}
}

func failureMessage(data map[string]any) string {
	resp, _ := data["response"].(map[string]any)
	if resp == nil {
		return ""
	}
	errObj, _ := resp["error"].(map[string]any)
	if errObj == nil {
		return ""
	}
	msg, _ := errObj["message"].(string)
	return msg
}
