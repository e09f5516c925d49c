package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skel-ai/go-responder/internal/analytics"
	"github.com/skel-ai/go-responder/internal/transport"
)

var responseCmd = &cobra.Command{
	Use:   "response",
	Short: "Inspect or manage stored responses",
}

var responseGetCmd = &cobra.Command{
	Use:   "get <response-id>",
	Short: "Fetch a stored response and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeSink, err := metadataClient()
		if err != nil {
			return err
		}
		defer closeSink()
		resp, err := client.GetResponse(cmd.Context(), args[0])
		if err != nil {
			return describeFailure(err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

var responseDeleteCmd = &cobra.Command{
	Use:   "delete <response-id>",
	Short: "Delete a stored response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeSink, err := metadataClient()
		if err != nil {
			return err
		}
		defer closeSink()
		if err := client.DeleteResponse(cmd.Context(), args[0]); err != nil {
			return describeFailure(err)
		}
		fmt.Println("deleted", args[0])
		return nil
	},
}

var responseCancelCmd = &cobra.Command{
	Use:   "cancel <response-id>",
	Short: "Cancel an in-flight background response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeSink, err := metadataClient()
		if err != nil {
			return err
		}
		defer closeSink()
		resp, err := client.CancelResponse(cmd.Context(), args[0])
		if err != nil {
			return describeFailure(err)
		}
		fmt.Println(resp.ID, "is now", resp.Status)
		return nil
	},
}

func init() {
	responseCmd.AddCommand(responseGetCmd, responseDeleteCmd, responseCancelCmd)
	rootCmd.AddCommand(responseCmd)
}

func metadataClient() (*transport.Client, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	sink := analytics.NewSink(cfg.AnalyticsLog)
	client := transport.NewClient(cfg.BaseURL, credentialStore(), sink, cfg.Verbose)
	return client, func() { sink.Close() }, nil
}
