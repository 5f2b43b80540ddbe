package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyConfig = `
id: tiny
learning_rate: 0.5
seed: 3
layers:
  - {kind: input, size: [2, 2, 1], activation: sigmoid}
  - {kind: neurons, units: 4, activation: sigmoid}
  - {kind: output, units: 2}
training:
  epochs: 2
search:
  lr_from: 0.1
  lr_to: 0.5
  lr_count: 2
  epochs_from: 1
  epochs_to: 1
  log: ""
`

const tinySamples = "label,a,b,c,d\n0,255,255,0,0\n1,0,0,255,255\n0,230,250,0,10\n1,5,0,255,240\n"

func setup(t *testing.T) (dir, cfg, data string) {
	t.Helper()
	dir = t.TempDir()
	cfg = filepath.Join(dir, "tiny.yaml")
	data = filepath.Join(dir, "tiny.csv")
	require.NoError(t, os.WriteFile(cfg, []byte(tinyConfig), 0o600))
	require.NoError(t, os.WriteFile(data, []byte(tinySamples), 0o600))
	return dir, cfg, data
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestVersionAndUsage(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "convnet "+version+"\n", out)

	out, err = runCLI(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Commands:")

	_, err = runCLI(t, "", "serve")
	assert.Error(t, err)
}

func TestDescribeDefault(t *testing.T) {
	out, err := runCLI(t, "", "describe", "-id", "default")
	require.NoError(t, err)
	assert.Contains(t, out, `network "default"`)
	assert.Contains(t, out, "FILTER: 24x24x8")
	assert.Contains(t, out, "weights 5x5x8 biases 8")
}

func TestTrainTestQuery(t *testing.T) {
	dir, cfg, data := setup(t)
	weights := filepath.Join(dir, "weights")

	out, err := runCLI(t, "", "train", "-config", cfg, "-data", data, "-store", weights)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(weights, "tiny.born"))

	out, err = runCLI(t, "", "test", "-config", cfg, "-data", data, "-store", weights)
	require.NoError(t, err)
	assert.Contains(t, out, "accuracy: ")
	assert.Contains(t, out, "(4 samples)")

	out, err = runCLI(t, "", "query", "-config", cfg, "-store", weights, "-line", "1,0,0,255,255")
	require.NoError(t, err)
	assert.Regexp(t, `^[01] \(expected 1\)\n$`, out)

	out, err = runCLI(t, "255,255,0,0\n\n0,0,255,255\n", "query", "-config", cfg, "-store", weights)
	require.NoError(t, err)
	assert.Regexp(t, `^[01]\n[01]\n$`, out)

	_, err = runCLI(t, "", "query", "-config", cfg, "-store", weights, "-line", "1,2")
	assert.Error(t, err)

	out, err = runCLI(t, "", "train", "-config", cfg, "-data", data, "-store", weights, "-resume", "-epochs", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "saved ")
}

func TestTrainErrors(t *testing.T) {
	dir, cfg, _ := setup(t)
	_, err := runCLI(t, "", "train", "-config", cfg, "-data", filepath.Join(dir, "missing.csv"), "-store", dir)
	assert.Error(t, err)

	_, err = runCLI(t, "", "train", "-config", cfg, "-store", dir, "-resume", "-data", filepath.Join(dir, "tiny.csv"))
	assert.Error(t, err, "nothing saved to resume from")

	_, err = runCLI(t, "", "train", "-config", cfg, "-lr", "-1")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	_, cfg, data := setup(t)
	out, err := runCLI(t, "", "search", "-config", cfg, "-data", data, "-test", data, "-top", "1", "-workers", "2")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "0 - lr: "), out)
	assert.Contains(t, out, "===")
}
