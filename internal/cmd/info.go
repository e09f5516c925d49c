package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skel-ai/go-responder/internal/credstore"
	"github.com/skel-ai/go-responder/internal/ratelimit"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show credential status and the last observed rate limits",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	if os.Getenv("RESPONDER_API_KEY") != "" {
		fmt.Println("credentials: API key from RESPONDER_API_KEY")
	} else if _, err := credstore.ReadCredentialFile(); err == nil {
		fmt.Println("credentials: OAuth tokens in", credstore.HomeDir())
	} else {
		fmt.Println("credentials: none (set RESPONDER_API_KEY or run 'responder login')")
	}

	snapshot := ratelimit.LoadSnapshot()
	if snapshot == nil {
		fmt.Println("rate limits: no data recorded yet")
		return nil
	}
	fmt.Println("rate limits as of", snapshot.CapturedAt.Format("2006-01-02 15:04:05 MST"))
	printWindow("requests", snapshot.Requests)
	printWindow("tokens", snapshot.Tokens)
	return nil
}

func printWindow(name string, w *ratelimit.Window) {
	if w == nil {
		return
	}
	if w.Limit > 0 {
		fmt.Printf("  %s: %d of %d remaining", name, w.Remaining, w.Limit)
	} else {
		fmt.Printf("  %s: %d remaining", name, w.Remaining)
	}
	if w.Reset != "" {
		fmt.Printf(" (resets in %s)", w.Reset)
	}
	fmt.Println()
}
