package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	addr       string
	modelPath  string
	mode       string
	locale     string
	logLevel   string
	logFormat  string
}

func newRootCmd(o *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "creditd",
		Short: "Credit approval inference server",
		Long: `creditd serves a pre-trained credit approval classifier over HTTP.

Without a subcommand it runs the server (same as "creditd serve").`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, o)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", "", "Config file (.yaml, .json or .toml)")
	pf.StringVar(&o.addr, "addr", "", "HTTP listen address (default 0.0.0.0:5000)")
	pf.StringVar(&o.modelPath, "model", "", "Model artifact path; relative paths resolve against the binary's directory")
	pf.StringVar(&o.mode, "mode", "", "Interface: api, form or both (default api)")
	pf.StringVar(&o.locale, "locale", "", "Locale for the percentage shown by the form (default es)")
	pf.StringVar(&o.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&o.logFormat, "log-format", "", "Log format: console|json")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd, o)
			},
		},
		newPredictCmd(o),
		newInspectCmd(o),
	)
	return root
}

func main() {
	if err := newRootCmd(&rootOptions{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "creditd:", err)
		os.Exit(1)
	}
}
