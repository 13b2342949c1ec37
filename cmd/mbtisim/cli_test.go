package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/database"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/factors"
	"github.com/ZanzyTHEbar/mbti-decision-sim/internal/simulation"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSimulateJSON(t *testing.T) {
	out, err := execute(t, "simulate", "--json")
	require.NoError(t, err)

	var report simulation.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, simulation.Run(factors.Default()), report)
}

func TestSimulateFlags(t *testing.T) {
	out, err := execute(t, "simulate", "--json", "--preset", "startup_pivot", "--time-pressure", "0.1")
	require.NoError(t, err)

	scenario, err := factors.Preset("startup_pivot")
	require.NoError(t, err)
	want := scenario.Inputs.With(factors.TimePressure, 0.1)

	var report simulation.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, want, report.Inputs)
}

func TestSimulateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"simulate", "--preset", "moonshot"}},
		{"out of range", []string{"simulate", "--data-quality", "1.5"}},
		{"unknown type", []string{"describe", "ABCD"}},
		{"describe needs a type", []string{"describe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSimulateSave(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "simulate", "--save", "--data-dir", dir, "--preset", "startup_pivot")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, database.FileName))
	assert.NoError(t, err)
}

func TestTextCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{"simulate", []string{"simulate"}, []string{"INTJ", "Majority:", "Implement with Oversight", "Public opinion:"}},
		{"public", []string{"public"}, []string{"Public opinion:", "Full Speed Ahead", "Delay or Disengage"}},
		{"team", []string{"team"}, []string{"ESTP", "Clarify"}},
		{"types", []string{"types"}, []string{"INTJ", "ESFP"}},
		{"describe", []string{"describe", "intj"}, []string{"INTJ", "Data Quality"}},
		{"presets", []string{"presets"}, []string{"startup_pivot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}
