package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/templates"
)

var seedTemplatesCmd = &cobra.Command{
	Use:   "seed-templates",
	Short: "Seed the default document templates",
	Long:  `Insert the built-in CV and cover letter templates for any document type that has none yet.`,
	RunE:  runSeedTemplates,
}

func init() {
	rootCmd.AddCommand(seedTemplatesCmd)
}

func runSeedTemplates(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	created, err := templates.Seed(ctx, store)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	if created == 0 {
		fmt.Println("Templates already seeded, nothing to do")
	} else {
		fmt.Printf("Seeded %d template(s)\n", created)
	}
	return nil
}
