// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the csrf-token CLI.
//
// With no subcommand it reads HTML from stdin and prints the value of every
// <input name="_csrf" value="..."> it finds, one per line, so a login can be
// replayed from a shell script:
//
//	token=$(curl -s -c jar https://host/login | csrf-token)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/csrf-token/internal/extract"
	"github.com/pdiddy/csrf-token/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd extracts tokens from stdin.
var rootCmd = &cobra.Command{
	Use:   "csrf-token",
	Short: "Print the CSRF token found in HTML read from stdin",
	Long: `csrf-token reads HTML from stdin line by line and prints the value of every
tag whose name attribute is _csrf, one token per line, in input order. Lines
without a token produce no output, and finding nothing is not an error.

The default greedy mode reproduces the classic regular expression
'.*<.*name="_csrf".*value="(.*)">.*' exactly, including its habit of
capturing from the last value=" on a line. Use --mode scan or --mode html for
a per-tag match.

Use the fetch subcommand to download a page and read the token from the
whole document instead.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./csrf-token.yaml or ~/.config/csrf-token/csrf-token.yaml)")
	pf.String("field", types.DefaultField, "value of the name attribute that marks the token")
	pf.String("format", string(types.FormatText), "output format: text, json, or yaml")
	pf.BoolP("verbose", "v", false, "print a summary to stderr")

	rootCmd.Flags().String("mode", string(types.ModeGreedy), "match mode: greedy, scan, or html")
	rootCmd.Flags().Int("max-line-bytes", types.DefaultMaxLineBytes, "longest accepted input line")

	bindRootConfig()
}

// bindRootConfig maps root flags onto viper keys, so each setting can also
// come from CSRF_TOKEN_<KEY> or the config file.
func bindRootConfig() {
	pf := rootCmd.PersistentFlags()
	viper.BindPFlag("field", pf.Lookup("field"))
	viper.BindPFlag("format", pf.Lookup("format"))
	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
	viper.BindPFlag("max_line_bytes", rootCmd.Flags().Lookup("max-line-bytes"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("csrf-token")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "csrf-token"))
		}
	}

	viper.SetEnvPrefix("CSRF_TOKEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// extractConfig assembles the extraction settings from flags, environment
// and config file.
func extractConfig() types.ExtractConfig {
	return types.ExtractConfig{
		Field:        viper.GetString("field"),
		Mode:         types.MatchMode(viper.GetString("mode")),
		Format:       types.OutputFormat(viper.GetString("format")),
		MaxLineBytes: viper.GetInt("max_line_bytes"),
	}.WithDefaults()
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractConfig()

	m, err := extract.NewMatcher(cfg.Mode, cfg.Field)
	if err != nil {
		return err
	}
	e, err := extract.NewEmitter(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	summary, err := extract.Run(cmd.Context(), cmd.InOrStdin(), m, e, cfg.MaxLineBytes)
	if viper.GetBool("verbose") {
		fmt.Fprintf(cmd.ErrOrStderr(), "lines=%d matched=%d\n", summary.Lines, summary.Matched)
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
