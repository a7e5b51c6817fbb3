package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gamewarden/gamewarden/config"
	"github.com/gamewarden/gamewarden/launch"
	"github.com/gamewarden/gamewarden/logger"
	"github.com/gamewarden/gamewarden/session"
)

func newRunCmd() *cobra.Command {
	var (
		dryRun       bool
		noSessionLog bool
	)

	cmd := &cobra.Command{
		Use:   "run <game> [-- args...]",
		Short: "Launch a configured game under supervision",
		Long: `Launch a game from the config file by its name.

The game runs as a supervised child process: when it exits (or when the
supervisor receives a termination signal), every process it spawned is
terminated, including helpers that container wrappers re-parent outside
the session's process tree.

Any arguments after -- are passed to the game.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			var extraArgs []string
			if cmd.ArgsLenAtDash() > 0 {
				extraArgs = args[cmd.ArgsLenAtDash():]
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cmd.Root().PersistentFlags().Changed("log-level") {
				logger.SetLevel(cfg.LogLevel)
			}

			game, err := cfg.Game(name)
			if err != nil {
				return err
			}

			plan, err := launch.Build(game, extraArgs, nil)
			if err != nil {
				return fmt.Errorf("failed to resolve launch for %s: %w", name, err)
			}

			logger.Info("Launching game", "name", name, "command", strings.Join(plan.Argv, " "))

			if dryRun {
				fmt.Printf("command: %s\n", strings.Join(plan.Argv, " "))
				fmt.Printf("workdir: %s\n", plan.Workdir)
				keys := make([]string, 0, len(plan.Env))
				for k := range plan.Env {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Printf("env:     %s=%s\n", k, plan.Env[k])
				}
				return nil
			}

			sess, err := session.New(session.Config{
				Argv:            plan.Argv,
				Env:             plan.Env,
				Workdir:         plan.Workdir,
				SessionLog:      cfg.SessionLog && !noSessionLog,
				SessionLauncher: launch.UsesSessionLauncher(plan.Argv),
			})
			if err != nil {
				return err
			}

			code, err := sess.Run()
			if err != nil {
				return fmt.Errorf("session failed: %w", err)
			}
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the resolved command and environment without launching")
	cmd.Flags().BoolVar(&noSessionLog, "no-session-log", false, "Disable the session log file for this run")

	return cmd
}
