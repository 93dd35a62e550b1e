package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kochabx/crawlerweb/router"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := router.Routes.Validate(); err != nil {
				return err
			}
			printf(cmd, "%-16s %-12s %s\n", "PATH", "NAME", "VIEW")
			for _, r := range router.Routes {
				printf(cmd, "%-16s %-12s %s\n", r.Path, r.Name, r.View)
			}
			return nil
		},
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
