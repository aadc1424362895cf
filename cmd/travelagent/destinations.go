// Copyright (c) Microsoft. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/microsoft/ai-agents-sandbox/go/travel"
)

func destinationsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "destinations",
		Short: "List the destinations the agent picks from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			picker := travel.NewDestinationPicker(cfg.Destinations)
			for _, d := range picker.Destinations() {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}
