package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/cleanup"
)

var cleanupRetention time.Duration

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete stale files from the uploads directory",
	Long:  `Run a single cleanup sweep that removes uploaded and tailored files older than the retention period.`,
	RunE:  runCleanup,
}

func init() {
	cleanupCmd.Flags().DurationVar(&cleanupRetention, "retention", cleanup.DefaultRetention, "Delete files older than this duration")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(_ *cobra.Command, _ []string) error {
	sweeper := cleanup.NewSweeper(uploadsDir(), cleanupRetention, 0)
	deleted := sweeper.Sweep()
	fmt.Printf("Deleted %d file(s)\n", deleted)
	return nil
}
