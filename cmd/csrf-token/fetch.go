// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/csrf-token/internal/extract"
	"github.com/pdiddy/csrf-token/internal/fetch"
	"github.com/pdiddy/csrf-token/internal/secrets"
	"github.com/pdiddy/csrf-token/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetries    = 3
	defaultSecretsDir = ".secrets/"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download a page and print its CSRF tokens",
	Long: `Fetch downloads an HTML page and prints the token of every
<input name="_csrf"> and <meta name="_csrf"> element, in document order.
The document is parsed as a whole, so tags split across lines are found.

Requests answered with 429 or 503 are retried. If the secrets directory holds
"username" and "password" files they are sent as HTTP basic auth.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.Duration("timeout", defaultTimeout, "HTTP request timeout")
	f.Int("retries", defaultRetries, "retries on 429 and 503 responses")
	f.String("selector", "", "CSS selector for token elements (default: input and meta tags named --field)")
	f.String("secrets-dir", defaultSecretsDir, "directory holding username and password files")
	f.String("user-agent", "", "User-Agent header (default csrf-token/<version>)")

	bindFetchConfig()
	rootCmd.AddCommand(fetchCmd)
}

func bindFetchConfig() {
	f := fetchCmd.Flags()
	viper.BindPFlag("fetch.timeout", f.Lookup("timeout"))
	viper.BindPFlag("fetch.max_retries", f.Lookup("retries"))
	viper.BindPFlag("fetch.selector", f.Lookup("selector"))
	viper.BindPFlag("fetch.secrets_dir", f.Lookup("secrets-dir"))
	viper.BindPFlag("fetch.user_agent", f.Lookup("user-agent"))
}

func fetchConfig() types.FetchConfig {
	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("fetch.timeout"),
			UserAgent: viper.GetString("fetch.user_agent"),
		},
		MaxRetries: viper.GetInt("fetch.max_retries"),
		SecretsDir: viper.GetString("fetch.secrets_dir"),
		Selector:   viper.GetString("fetch.selector"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "csrf-token/" + version
	}
	if cfg.SecretsDir == "" {
		cfg.SecretsDir = defaultSecretsDir
	}
	return cfg
}

func runFetch(cmd *cobra.Command, args []string) error {
	ecfg := extractConfig()
	cfg := fetchConfig()
	verbose := viper.GetBool("verbose")

	s, err := secrets.Load(cfg.SecretsDir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if user, pass, ok := secrets.Credentials(s); ok {
		cfg.Username, cfg.Password = user, pass
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Using basic auth as %s\n", user)
		}
	}

	e, err := extract.NewEmitter(ecfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	tokens, err := fetch.Fetch(cmd.Context(), client, cfg, ecfg.Field, args[0])
	if err != nil {
		e.Close()
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "fetched %s: %d token(s)\n", args[0], len(tokens))
	}

	for _, tok := range tokens {
		if err := e.Emit(types.Match{Token: tok}); err != nil {
			e.Close()
			return fmt.Errorf("writing token: %w", err)
		}
	}
	return e.Close()
}
