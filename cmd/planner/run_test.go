package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OCAP2/planner/internal/objective"
	"github.com/OCAP2/planner/internal/storage"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const caucasus = `{
	"name": "Caucasus",
	"controlPoints": [
		{
			"name": "Kobuleti",
			"kind": "airfield",
			"side": "blue",
			"position": "0,0",
			"aircraft": {"F-16C": 12}
		},
		{
			"name": "Senaki",
			"kind": "airfield",
			"side": "red",
			"position": "40000,10000",
			"aircraft": {"MiG-29A": 24},
			"groundObjects": [
				{"name": "SA-11 Senaki", "role": "sam", "position": "38000,10000", "threatRangeNm": 19},
				{"name": "Senaki ammo", "role": "building", "category": "ammo", "position": "41000,10000"}
			]
		}
	],
	"connections": [["Kobuleti", "Senaki"]]
}`

const lostCause = `{
	"name": "Caucasus",
	"controlPoints": [
		{"name": "Senaki", "kind": "airfield", "side": "red", "position": "0,0"}
	]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runPlanner(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)
	viper.Reset()

	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestRun_PlanAndLatest(t *testing.T) {
	dir := t.TempDir()
	theaterPath := writeFile(t, dir, "caucasus.json", caucasus)
	common := []string{
		"--config-dir", dir,
		"--logs-dir=",
		"--storage", "sqlite",
		"--sqlite-path", filepath.Join(dir, "planner.db"),
	}

	out, err := runPlanner(t, append([]string{"-t", theaterPath}, common...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Objectives for blue in Caucasus")
	assert.Contains(t, out, "Threatening air defenses")
	assert.Contains(t, out, "SA-11 Senaki")
	assert.Contains(t, out, "Senaki ammo")
	assert.Contains(t, out, "OCA targets")
	assert.Contains(t, out, "aircraft=24")

	latest, err := runPlanner(t, append([]string{"latest", "-f", "yaml"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, latest, "theater: Caucasus")
	assert.Contains(t, latest, "farthest: Kobuleti")
	assert.Contains(t, latest, "name: SA-11 Senaki")
}

func TestRun_LatestWithoutStorage(t *testing.T) {
	dir := t.TempDir()
	_, err := runPlanner(t, "latest", "--config-dir", dir, "--logs-dir=")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRun_GameOver(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lost.json", lostCause)

	out, err := runPlanner(t, "-t", path, "--config-dir", dir, "--logs-dir=")
	assert.ErrorIs(t, err, objective.ErrNoFriendlyControlPoints)
	assert.Empty(t, out)
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	theaterPath := writeFile(t, dir, "caucasus.json", caucasus)
	writeFile(t, dir, "planner.cfg.json", `{
		"side": "red",
		"logsDir": "",
		"report": { "format": "yaml", "limit": 1 }
	}`)

	out, err := runPlanner(t, "--config-dir", dir, "-t", theaterPath)
	require.NoError(t, err)
	assert.Contains(t, out, "side: red")
	assert.Contains(t, out, "farthest: Senaki")
}

func TestRun_JSONLogs(t *testing.T) {
	dir := t.TempDir()
	logsDir := filepath.Join(dir, "logs")
	theaterPath := writeFile(t, dir, "caucasus.json", caucasus)

	_, err := runPlanner(t,
		"--config-dir", dir,
		"-t", theaterPath,
		"--logs-dir", logsDir,
		"--log-format", "json",
		"--log-level", "debug",
	)
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(logsDir, "planner.*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	content, err := os.ReadFile(files[0])
	require.NoError(t, err)

	var jsonLines int
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "{") && strings.Contains(line, `"message":"ranked candidates"`) {
			jsonLines++
		}
	}
	assert.Positive(t, jsonLines)
	assert.Contains(t, string(content), "Theater loaded")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	theaterPath := writeFile(t, dir, "caucasus.json", caucasus)

	tests := []struct {
		name string
		args []string
	}{
		{"bad side", []string{"-s", "green"}},
		{"bad format", []string{"-f", "xml"}},
		{"bad policy", []string{"--ewr-policy", "covered ? "}},
		{"missing theater", []string{"-t", filepath.Join(dir, "missing.json")}},
		{"unknown storage", []string{"--storage", "influx"}},
		{"unknown command", []string{"replan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config-dir", dir, "--logs-dir=", "-t", theaterPath}, tt.args...)
			_, err := runPlanner(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestRun_Help(t *testing.T) {
	_, err := runPlanner(t, "--help")
	assert.ErrorIs(t, err, pflag.ErrHelp)
}
