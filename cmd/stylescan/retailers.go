package main

import (
	"github.com/spf13/cobra"

	"github.com/vprudente/insta-fashion/internal/config"
	"github.com/vprudente/insta-fashion/internal/infrastructure/formatter"
)

func newRetailersCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "retailers",
		Short: "List the retailers shop links are built for",
		RunE: func(cmd *cobra.Command, args []string) error {
			// RETAILERS_FILE is the only setting needed here, so backend credentials are not checked
			retailers, err := config.Config{RetailersFile: config.RetailersFileFromEnv()}.Retailers()
			if err != nil {
				return err
			}
			return formatter.DisplayRetailers(cmd.OutOrStdout(), retailers, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")

	return cmd
}
