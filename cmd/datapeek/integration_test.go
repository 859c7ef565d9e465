package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd executes the root command with args and returns captured stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	require.NoError(t, w.Close())
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, execErr, "command %v failed, output: %s", args, out)
	return string(out)
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCLI_DescribeJSON(t *testing.T) {
	path := writeCSV(t, "age,city\n34,Berlin\n28,Paris\nna,Berlin\n")

	out := runCmd(t, "describe", path, "--output", "json")

	var rep struct {
		RunID   string `json:"run_id"`
		Command string `json:"command"`
		Result  struct {
			Rows   int               `json:"rows"`
			Schema map[string]string `json:"schema"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, "describe", rep.Command)
	assert.Equal(t, 3, rep.Result.Rows)
	assert.Equal(t, "numeric", rep.Result.Schema["age"])
	assert.Equal(t, "categorical", rep.Result.Schema["city"])
}

func TestCLI_FitRecoversLine(t *testing.T) {
	csv := "x,y\n"
	for i := 1; i <= 20; i++ {
		csv += strconv.Itoa(i) + "," + strconv.Itoa(2*i+1) + "\n"
	}
	path := writeCSV(t, csv)

	out := runCmd(t, "fit", path,
		"--target", "y", "--features", "x",
		"--test-fraction", "0", "--seed", "7", "--output", "json")

	var rep struct {
		Result struct {
			Intercept    float64   `json:"intercept"`
			Coefficients []float64 `json:"coefficients"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	require.Len(t, rep.Result.Coefficients, 1)
	assert.InDelta(t, 2.0, rep.Result.Coefficients[0], 1e-6)
	assert.InDelta(t, 1.0, rep.Result.Intercept, 1e-6)
}

func TestCLI_ClusterDeterministicWithSeed(t *testing.T) {
	csv := "x,y\n1,1\n1.2,0.9\n0.8,1.1\n9,9\n9.2,8.9\n8.8,9.1\n"
	path := writeCSV(t, csv)

	a := runCmd(t, "cluster", path, "--features", "x,y", "-k", "2", "--seed", "5", "--output", "json")
	b := runCmd(t, "cluster", path, "--features", "x,y", "-k", "2", "--seed", "5", "--output", "json")

	var ra, rb struct {
		Result struct {
			Centroids   [][]float64 `json:"centroids"`
			Assignments []int       `json:"assignments"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(a), &ra))
	require.NoError(t, json.Unmarshal([]byte(b), &rb))

	assert.Equal(t, ra.Result.Centroids, rb.Result.Centroids)
	assert.Equal(t, ra.Result.Assignments, rb.Result.Assignments)
}

func TestCLI_PCAProjectsRows(t *testing.T) {
	csv := "x,y\n1,10\n2,20\n3,31\n4,39\n5,52\n6,60\n"
	path := writeCSV(t, csv)

	out := runCmd(t, "pca", path, "--features", "x,y", "-k", "1", "--seed", "3", "--output", "json")

	var rep struct {
		Result struct {
			Components  [][]float64 `json:"components"`
			Projections [][]float64 `json:"projections"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	require.Len(t, rep.Result.Components, 1)
	assert.Len(t, rep.Result.Projections, 6)
}

func TestCLI_RejectsBadOutputFormat(t *testing.T) {
	path := writeCSV(t, "x\n1\n")

	rootCmd.SetArgs([]string{"describe", path, "--output", "toml"})
	err := rootCmd.Execute()

	require.Error(t, err)
	// Reset for later tests in this package.
	output = "yaml"
}
