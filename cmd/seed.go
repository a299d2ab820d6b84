/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"

	"github.com/mohamadacma/capflow-demo/internal/config"
	"github.com/mohamadacma/capflow-demo/internal/container"
	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo users",
	Long: `Insert the demo users (alice@lab as Tech, bob@qa as QA) when the
users table is empty. Runs migrations first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctr, err := container.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		n, err := ctr.SeedService().SeedDemoUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
