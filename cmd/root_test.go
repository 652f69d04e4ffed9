package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = `"fixed acidity";"residual sugar";"density";"alcohol";"quality"`

// writeWineCSV writes a semicolon separated dataset shaped like the UCI files
func writeWineCSV(t *testing.T, path string, offset float64) {
	t.Helper()
	var b strings.Builder
	b.WriteString(header + "\n")
	for i := 0; i < 300; i++ {
		f := float64(i)
		sugar := 2 + float64(i%17)*0.3 + offset
		if i%50 == 7 {
			sugar = 45
		}
		alcohol := 10 + 1.5*math.Cos(f*0.7)
		density := 0.990 + 0.0004*sugar - 0.0008*(alcohol-10) + 0.0003*math.Sin(f*1.3)
		quality := math.Round(5 + 0.6*(alcohol-10) + 0.4*math.Sin(f*2.1))
		fmt.Fprintf(&b, "%.1f;%.2f;%.5f;%.2f;%g\n", 7+math.Sin(f), sugar, density, alcohol, quality)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
}

func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeWineCSV(t, filepath.Join(dir, "winequality-red.csv"), 0)
	writeWineCSV(t, filepath.Join(dir, "winequality-white.csv"), 1.5)
	return dir
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wineqa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the root command with the flags every test pins, so values
// left over from earlier runs of the shared command tree do not leak in
func run(t *testing.T, dataDir, config, format string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args,
		"--data-dir", dataDir,
		"--config", config,
		"--format", format,
		"--sample-size", "100",
		"--seed", "5310",
		"--log-level", "error",
	))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExploreCommand(t *testing.T) {
	dir := setupDataDir(t)
	out, err := run(t, dir, writeConfig(t, "seed: 5310\n"), "text", "explore")
	require.NoError(t, err)

	assert.Contains(t, out, "=== VARIABLE EXPLORATION: density ===")
	assert.Contains(t, out, "from Red wine density.")
	assert.Contains(t, out, "Red wine density 99% confidence interval: (")
	assert.Contains(t, out, "White wine: Proportion below 0.994 = ")
}

func TestMeansCommand_ConfidenceFlag(t *testing.T) {
	dir := setupDataDir(t)
	out, err := run(t, dir, writeConfig(t, "seed: 5310\n"), "json", "means", "--confidence", "0.9")
	require.NoError(t, err)

	var decoded struct {
		Means struct {
			Comparisons []struct {
				Variant string `json:"variant"`
				Welch   struct {
					Interval struct {
						Level float64 `json:"level"`
					} `json:"interval"`
				} `json:"welch"`
			} `json:"comparisons"`
		} `json:"means"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Means.Comparisons, 4)
	assert.Equal(t, "red", decoded.Means.Comparisons[0].Variant)
	assert.Equal(t, 0.9, decoded.Means.Comparisons[0].Welch.Interval.Level)
}

func TestAllCommand_ConfigFile(t *testing.T) {
	dir := setupDataDir(t)
	cfg := writeConfig(t, `correlate:
  pairing: rows
means:
  pairs:
    - [alcohol, quality]
regress:
  graphs-dir: ""
multiregress:
  models:
    - [alcohol]
`)
	out, err := run(t, dir, cfg, "json", "all")
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	for _, key := range []string{"explore", "means", "correlate", "regress", "multiregress"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, "rows", decoded["correlate"]["pairing"])
	// one configured pair or model per dataset
	assert.Len(t, decoded["means"]["comparisons"], 2)
	assert.Len(t, decoded["multiregress"]["models"], 2)
	// untouched lists keep their defaults
	assert.Len(t, decoded["correlate"]["pairs"], 4)
}

func TestStudyConfig_ListsReplaceDefaults(t *testing.T) {
	cfgFile = writeConfig(t, `means:
  pairs:
    - [alcohol, quality]
multiregress:
  models:
    - [alcohol]
explore:
  thresholds:
    red: 0.99
`)
	t.Cleanup(func() { cfgFile = "" })
	require.NoError(t, initConfig())

	cfg, err := studyConfig()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"alcohol", "quality"}}, cfg.MeanVariance.Pairs)
	assert.Equal(t, [][]string{{"alcohol"}}, cfg.MultipleRegression.Models)
	assert.Equal(t, [][]string{{"density", "residual sugar"}, {"density", "alcohol"}}, cfg.Correlation.Pairs)
	assert.Equal(t, []string{"density", "residual sugar", "alcohol"}, cfg.MultipleRegression.CleanColumns)
	assert.Equal(t, 0.99, cfg.Explore.Thresholds["red"])
	assert.Equal(t, 0.9940, cfg.Explore.Thresholds["white"])
	assert.Equal(t, "density", cfg.Explore.Column)
	assert.Equal(t, uint64(5310), cfg.Seed)
}

func TestRegressCommand_WritesPlots(t *testing.T) {
	dir := setupDataDir(t)
	graphs := t.TempDir()
	out, err := run(t, dir, writeConfig(t, "seed: 5310\n"), "text", "regress", "--graphs-dir", graphs)
	require.NoError(t, err)

	assert.Contains(t, out, "Adjusted R^2: ")
	for _, name := range []string{"red_ols.png", "red_residuals.png", "white_ols.png", "white_residuals.png"} {
		_, err := os.Stat(filepath.Join(graphs, "single_regression", name))
		assert.NoError(t, err, name)
	}
}

func TestMultiregressCommand_YAML(t *testing.T) {
	dir := setupDataDir(t)
	out, err := run(t, dir, writeConfig(t, "seed: 5310\n"), "yaml", "multiregress")
	require.NoError(t, err)
	assert.Contains(t, out, "multiregress:")
	assert.Contains(t, out, "adjRSquared:")
}

func TestDescribeCommand(t *testing.T) {
	dir := setupDataDir(t)
	out, err := run(t, dir, writeConfig(t, "seed: 5310\n"), "text", "describe", filepath.Join(dir, "winequality-red.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "=== DATA QUALITY SUMMARY ===")
	assert.Contains(t, out, "Total files processed: 1")
	assert.Contains(t, out, "residual sugar")

	out, err = run(t, dir, writeConfig(t, "seed: 5310\n"), "text", "describe", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Total files processed: 2")
}

func TestDescribeCommand_RejectsNonCSV(t *testing.T) {
	dir := setupDataDir(t)
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0644))
	_, err := run(t, dir, writeConfig(t, "seed: 5310\n"), "text", "describe", path)
	assert.ErrorContains(t, err, "must be a CSV file")
}

func TestScanCommand(t *testing.T) {
	dir := setupDataDir(t)
	out, err := run(t, dir, writeConfig(t, "seed: 5310\n"), "text", "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 CSV files")
	assert.Contains(t, out, "- Red: winequality-red.csv")
	assert.Contains(t, out, "- White: winequality-white.csv")
}

func TestCommand_Errors(t *testing.T) {
	dir := setupDataDir(t)
	cfg := writeConfig(t, "seed: 5310\n")

	_, err := run(t, dir, cfg, "xml", "explore")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, t.TempDir(), cfg, "text", "explore")
	assert.ErrorContains(t, err, "failed to discover datasets")

	_, err = run(t, dir, writeConfig(t, "correlate:\n  pairing: zip\n"), "text", "correlate")
	assert.ErrorContains(t, err, "unknown pairing")
}
