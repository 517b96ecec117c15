// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cybrota/bstree/bst"
)

// cfg is loaded once per invocation by the root command's pre-run hook.
var cfg = defaultConfig()

// keySource collects the --keys and --file flags shared by several commands.
type keySource struct {
	keys string
	file string
}

func (ks *keySource) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ks.keys, "keys", "", "initial keys, e.g. \"4,3,1 23\"")
	cmd.Flags().StringVar(&ks.file, "file", "", "read initial keys from a file")
	cmd.MarkFlagsMutuallyExclusive("keys", "file")
}

// load returns the requested keys, or fallback when neither flag is set.
func (ks *keySource) load(fallback []int) ([]int, error) {
	switch {
	case ks.keys != "":
		return parseKeys(strings.Fields(ks.keys))
	case ks.file != "":
		return LoadKeys(ks.file, cfg.Loader.ProgressThresholdBytes)
	}
	return fallback, nil
}

func newSession(ks *keySource, order bst.Order) (*Session, error) {
	keys, err := ks.load(nil)
	if err != nil {
		return nil, err
	}
	s := NewSession(order, Log)
	if len(keys) > 0 {
		inserted, dups := s.Load(keys)
		if dups > 0 {
			Log.Warnf("Skipped %d duplicate key(s), loaded %d", dups, inserted)
		}
	}
	return s, nil
}

func main() {
	asciiLogo := `
██████╗ ███████╗████████╗██████╗ ███████╗███████╗
██╔══██╗██╔════╝╚══██╔══╝██╔══██╗██╔════╝██╔════╝
██████╔╝███████╗   ██║   ██████╔╝█████╗  █████╗
██╔══██╗╚════██║   ██║   ██╔══██╗██╔══╝  ██╔══╝
██████╔╝███████║   ██║   ██║  ██║███████╗███████╗
╚═════╝ ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚══════╝╚══════╝
An ordered binary search tree of integer keys you can script, explore and watch [Version: %s%s%s]

Copyright @ Naren Yellavula

`

	if os.Getenv("NO_COLOR") != "" {
		DisableANSI()
	}
	asciiLogo = fmt.Sprintf(asciiLogo, Green, version, Reset)

	var (
		configPath string
		logLevel   string
	)

	var cmdDemo = &cobra.Command{
		Use:   "demo",
		Short: "Walk through lookup, traversals and deletion on the sample keys",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Demo builds a tree from the configured keys and shows every operation"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), cfg.Demo)
		},
	}

	var runKeys keySource
	var (
		runOrder  string
		keepGoing bool
	)
	var cmdRun = &cobra.Command{
		Use:   "run [script]",
		Short: "Execute tree commands from a script file or stdin",
		Long: fmt.Sprintf("%s\n%s", asciiLogo, `Run executes one command per line (see "bstree usage") and
prints the final traversal. Without a script file, commands are read from stdin.`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order := cfg.Order()
			if runOrder != "" {
				o, err := bst.ParseOrder(runOrder)
				if err != nil {
					return err
				}
				order = o
			}

			s, err := newSession(&runKeys, order)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			if err := s.RunScript(in, out, keepGoing); err != nil {
				return err
			}
			final, err := s.Exec("traverse")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, final)
			return nil
		},
	}
	runKeys.register(cmdRun)
	cmdRun.Flags().StringVar(&runOrder, "order", "", "traversal order for output: in, pre or post")
	cmdRun.Flags().BoolVar(&keepGoing, "keep-going", false, "report failed commands and continue")

	var replKeys keySource
	startRepl := func(cmd *cobra.Command, args []string) error {
		s, err := newSession(&replKeys, cfg.Order())
		if err != nil {
			return err
		}
		return runRepl(s)
	}

	var cmdRepl = &cobra.Command{
		Use:   "repl",
		Short: "Open the interactive prompt",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Repl opens a full-screen prompt for tree commands"),
		Args:  cobra.NoArgs,
		RunE:  startRepl,
	}
	replKeys.register(cmdRepl)

	var viewKeys keySource
	var cmdView = &cobra.Command{
		Use:   "view",
		Short: "Browse the tree structure in a full-screen viewer",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "View shows the tree built from --keys, --file or the configured demo keys"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := viewKeys.load(cfg.Demo.Keys)
			if err != nil {
				return err
			}
			tree := bst.New()
			if _, dups := InsertKeys(tree, keys); dups > 0 {
				Log.Warnf("Skipped %d duplicate key(s)", dups)
			}
			return runViewer(tree)
		},
	}
	viewKeys.register(cmdView)

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print bstree usage guide",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Usage displays the bstree CLI usage guide`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), getHelpMessage())
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show configuration, creating the default file if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return displaySettings(cmd.OutOrStdout(), configPath)
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print bstree version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:           "bstree",
		Version:       version,
		Long:          asciiLogo,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// settings creates a missing config file itself
			if cmd == cmdSettings || cmd == cmdVersion {
				return nil
			}
			loaded, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			level := cfg.Log.Level
			if cmd.Flags().Changed("log-level") {
				level = logLevel
			}
			if err := configureLogging(level, nil); err != nil {
				return fmt.Errorf("invalid log level %q: %w", level, err)
			}
			return nil
		},
		// Default to the prompt when no subcommand is provided
		RunE: startRepl,
	}
	replKeys.register(rootCmd)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.bstree.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(cmdDemo, cmdRun, cmdRepl, cmdView, cmdUsage, cmdSettings, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError:%s %v\n", Error, Reset, err)
		os.Exit(1)
	}
}
