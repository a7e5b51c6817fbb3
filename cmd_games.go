package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gamewarden/gamewarden/config"
)

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List configured games",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if len(cfg.Games) == 0 {
				dir, _ := config.Dir()
				fmt.Println("No games configured.")
				fmt.Printf("Add entries to %s/config.toml to get started.\n", dir)
				return nil
			}

			names := make([]string, 0, len(cfg.Games))
			for name := range cfg.Games {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Printf("Configured games: %d\n\n", len(names))
			for i, name := range names {
				g := cfg.Games[name]
				wrapper := g.Wrapper
				if wrapper == "" {
					wrapper = "native"
				}
				fmt.Printf("%3d  %s  (%s)\n", i+1, name, wrapper)
				fmt.Printf("     %s\n", strings.Join(g.Command, " "))
			}

			return nil
		},
	}
}
