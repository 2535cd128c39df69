package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/poller"
	"github.com/jonathan/resume-tailor/internal/types"
)

var (
	statusServerURL string
	statusWatch     bool
)

var statusCmd = &cobra.Command{
	Use:   "status <document-id>",
	Short: "Show processing status for a document",
	Long:  `Fetch the processing status of a document from a running server. With --watch, poll until a terminal state is reached.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusServerURL, "server", "http://localhost:8080", "Base URL of the running server")
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "Poll until processing completes or fails")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	documentID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid document ID %q", args[0])
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := poller.NewClient(statusServerURL)

	if !statusWatch {
		status, err := client.FetchStatus(ctx, documentID)
		if err != nil {
			return err
		}
		printStatus(status.Progress, status.Status)
		if status.ErrorMessage != nil && *status.ErrorMessage != "" {
			fmt.Printf("Error: %s\n", *status.ErrorMessage)
		}
		return nil
	}

	// Terminal callbacks fire after Done closes, so wait on a result channel
	// instead.
	result := make(chan error, 1)
	p := poller.New(client, documentID, poller.Callbacks{
		OnUpdate: printStatus,
		OnComplete: func() {
			fmt.Println("Processing completed")
			result <- nil
		},
		OnFailure: func(message string) {
			result <- fmt.Errorf("%s", message)
		},
	}, poller.Options{})

	p.Start(ctx)
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		p.Stop()
		return ctx.Err()
	}
}

func printStatus(progress int, status types.Status) {
	fmt.Printf("Status: %-10s progress: %d%%\n", status, progress)
}
