package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditd/internal/config"
	"creditd/pkg/types"
)

const sampleRecord = `{
	"A1": "a", "A2": 30, "A3": 4.0, "A4": "u", "A5": "g", "A6": "c", "A7": "v",
	"A8": 2.5, "A9": "t", "A10": "t", "A11": 1.0, "A12": "t", "A13": "g", "A14": 200, "A15": 1000
}`

func modelPath(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "..", "models", "credit_pipeline.json"))
	require.NoError(t, err)
	return p
}

func noEnv(string) (string, bool) { return "", false }

// parsed returns the root command with args parsed into o.
func parsed(t *testing.T, o *rootOptions, args ...string) *cobra.Command {
	t.Helper()
	root := newRootCmd(o)
	require.NoError(t, root.ParseFlags(args))
	return root
}

func TestLoadConfig_Defaults(t *testing.T) {
	o := &rootOptions{}
	cfg, err := loadConfig(parsed(t, o), o, noEnv)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAddr, cfg.Addr)
	assert.Equal(t, config.DefaultModelPath, cfg.ModelPath)
	assert.Equal(t, config.ModeAPI, cfg.Mode)
	assert.Equal(t, 7.5, *cfg.Clamp["A11"])
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "creditd.yaml")
	require.NoError(t, os.WriteFile(file, []byte("addr: \":7000\"\nmode: form\nlocale: fr\n"), 0o644))

	env := map[string]string{"CREDITD_MODE": "both", "CREDITD_LOCALE": "de"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	o := &rootOptions{}
	cmd := parsed(t, o, "--config", file, "--locale", "en")
	cfg, err := loadConfig(cmd, o, lookup)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr) // file
	assert.Equal(t, "both", cfg.Mode)  // env over file
	assert.Equal(t, "en", cfg.Locale)  // flag over env
}

func TestLoadConfig_Invalid(t *testing.T) {
	o := &rootOptions{}
	_, err := loadConfig(parsed(t, o, "--mode", "grpc"), o, noEnv)
	assert.Error(t, err)

	o = &rootOptions{}
	_, err = loadConfig(parsed(t, o, "--config", filepath.Join(t.TempDir(), "missing.yaml")), o, noEnv)
	assert.Error(t, err)
}

func TestPredictCommand_Stdin(t *testing.T) {
	root := newRootCmd(&rootOptions{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader(sampleRecord))
	root.SetArgs([]string{"predict", "--model", modelPath(t), "-"})
	require.NoError(t, root.Execute())

	var resp types.PredictResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 1, resp.PredictedClass)
	assert.InDelta(t, 0.8672, resp.ApprovalProbability, 0.0001)
}

func TestPredictCommand_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rec.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"A9": "f", "A14": ""}`), 0o644))

	root := newRootCmd(&rootOptions{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"predict", "--model", modelPath(t), file})
	require.NoError(t, root.Execute())

	var resp types.PredictResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Contains(t, []int{0, 1}, resp.PredictedClass)
	assert.GreaterOrEqual(t, resp.ApprovalProbability, 0.0)
	assert.LessOrEqual(t, resp.ApprovalProbability, 1.0)
}

func TestPredictCommand_BadRecord(t *testing.T) {
	root := newRootCmd(&rootOptions{})
	root.SetOut(&bytes.Buffer{})
	root.SetIn(strings.NewReader(`{"A2": "abc"}`))
	root.SetArgs([]string{"predict", "--model", modelPath(t)})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A2")
}

func TestMissingModelIsFatal(t *testing.T) {
	root := newRootCmd(&rootOptions{})
	root.SetOut(&bytes.Buffer{})
	root.SetIn(strings.NewReader(`{}`))
	root.SetArgs([]string{"predict", "--model", filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, root.Execute())
}

func TestInspectCommand(t *testing.T) {
	root := newRootCmd(&rootOptions{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"inspect", "--model", modelPath(t)})
	require.NoError(t, root.Execute())

	var got inspectOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "random_forest", got.Model.Estimator)
	assert.Equal(t, 3, got.Model.Trees)
	assert.Len(t, got.Fields, 15)
}
