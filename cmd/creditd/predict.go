package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"creditd/internal/credit"
	"creditd/pkg/types"
)

func newPredictCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "predict [file|-]",
		Short: "Score one JSON application offline",
		Long: `Reads one JSON object with fields A1..A15 from a file, or stdin when the
argument is "-" or omitted, and prints the prediction as the API would.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o, os.LookupEnv)
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			var rec credit.Record
			if err := json.NewDecoder(in).Decode(&rec); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			res, err := svc.Predict(cmd.Context(), rec)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(res.Response())
		},
	}
}

type inspectOutput struct {
	Model  types.ModelInfo     `json:"model"`
	Fields []types.FieldSpec   `json:"fields"`
	Clamp  map[string]*float64 `json:"clamp"`
	Force  map[string]string   `json:"force"`
}

func newInspectCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print a summary of the model artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o, os.LookupEnv)
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}
			st := svc.Status()
			out := inspectOutput{Model: st.Model, Fields: svc.Fields(), Clamp: st.Clamp, Force: st.Force}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
