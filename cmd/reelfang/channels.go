package main

import (
	"fmt"

	"github.com/ramkansal/reelfang/internal/config"
	"github.com/spf13/cobra"
)

var channelsCmd = &cobra.Command{
	Use:   "channels [url]",
	Short: "List the relay channels, or the attempts made for an address",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Resolver(v)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			for i, c := range cfg.Channels {
				fmt.Printf("  %s %-12s %s\n", clr("dim", fmt.Sprintf("%2d.", i+1)), clr("cyan", c.Name), c.Template)
			}
			return nil
		}

		for _, variant := range cfg.Platform.Variants(args[0]) {
			fmt.Printf("  %s %s\n", clr("green", "●"), variant)
			for _, c := range cfg.Channels {
				fmt.Printf("      %s %s\n", clr("dim", "├─ "+c.Name+":"), c.Wrap(variant))
			}
		}
		return nil
	},
}
