package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gamewarden/gamewarden/proc"
)

func newReapCmd() *cobra.Command {
	var (
		processName string
		marker      string
	)

	cmd := &cobra.Command{
		Use:   "reap",
		Short: "Force-kill helper processes that escaped a previous session",
		Long: `Find processes matching the helper name whose parent's command line
contains the given marker and forcefully kill their children.

This is the same cleanup a supervised session runs on exit; use it when a
previous session leaked helpers behind a container wrapper.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ins := proc.SysInspector{}

			// Our own tree is never an escaped sibling.
			exclude := append(proc.Scanner{Ins: ins}.Scan(os.Getpid()), os.Getpid())
			proc.Reaper{Ins: ins}.ReapSiblings(processName, marker, exclude)
			return nil
		},
	}

	cmd.Flags().StringVar(&processName, "process", "reaper", "Helper executable name to match")
	cmd.Flags().StringVar(&marker, "marker", "pressure-vessel", "Substring of the parent's command line marking an escaped helper")

	return cmd
}
