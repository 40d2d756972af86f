package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nvandessel/trustgrid/internal/config"
	"github.com/nvandessel/trustgrid/internal/grid"
)

// isolateHome sets HOME to a temp directory to avoid touching real ~/.trustgrid/
// and clears environment overrides.
func isolateHome(t *testing.T) string {
	t.Helper()
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	for _, v := range []string{"TRUSTGRID_SIZE", "TRUSTGRID_RULE", "TRUSTGRID_STEPS", "TRUSTGRID_LOG_LEVEL",
		"TRUSTGRID_SEED", "TRUSTGRID_WORKERS", "TRUSTGRID_FORCE_NORMAL", "TRUSTGRID_REVERSAL_PROBABILITY"} {
		t.Setenv(v, "")
	}
	return tmpHome
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	want := []string{"config", "grade", "mcp-server", "run", "version", "watch"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
	for _, flag := range []string{"json", "config"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "trustgrid version "+version) {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("parse JSON: %v", err)
	}
	if got["version"] != version {
		t.Errorf("version = %q, want %q", got["version"], version)
	}
	if got["go"] != runtime.Version() {
		t.Errorf("go = %q, want %q", got["go"], runtime.Version())
	}
	if want := runtime.GOOS + "/" + runtime.GOARCH; got["platform"] != want {
		t.Errorf("platform = %q, want %q", got["platform"], want)
	}
	if got["commit"] == "" || got["date"] == "" {
		t.Errorf("missing build metadata: %v", got)
	}
}

func TestRunCmd_Text(t *testing.T) {
	isolateHome(t)

	out, err := execute(t, "run", "--size", "3", "--force-normal", "--steps", "50")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "HHH\nHHH\nHHH\n") {
		t.Errorf("expected saturated 3x3 grid, got:\n%s", out)
	}
	if !strings.Contains(out, "fixed point") || !strings.Contains(out, "high=9") {
		t.Errorf("missing summary, got:\n%s", out)
	}
}

func TestRunCmd_StepCap(t *testing.T) {
	isolateHome(t)

	out, err := execute(t, "run", "--size", "3", "--force-normal", "--steps", "1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "lll\nlHl\nlll\n") {
		t.Errorf("unexpected first generation:\n%s", out)
	}
	if !strings.Contains(out, "step cap reached") {
		t.Errorf("missing step cap status:\n%s", out)
	}
}

func TestRunCmd_JSON(t *testing.T) {
	isolateHome(t)

	out, err := execute(t, "run", "--json", "--history", "--size", "5", "--force-normal",
		"--propagator", "0,0", "--propagator", "4,4", "--steps", "3", "--no-stop")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var got struct {
		RunID       string           `json:"run_id"`
		Size        int              `json:"size"`
		Generations int              `json:"generations"`
		FixedPoint  bool             `json:"fixed_point"`
		Counts      map[string]int   `json:"counts"`
		History     []map[string]any `json:"history"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("parse JSON: %v\n%s", err, out)
	}
	if got.RunID == "" || got.Size != 5 || got.Generations != 3 || got.FixedPoint {
		t.Errorf("unexpected summary: %+v", got)
	}
	if len(got.History) != 3 {
		t.Errorf("history has %d entries, want 3", len(got.History))
	}
}

func TestRunCmd_HTMLOutput(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "grid.html")

	out, err := execute(t, "run", "--size", "4", "--steps", "2", "--format", "html", "--output", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Wrote generation") {
		t.Errorf("output = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<table") {
		t.Error("HTML output missing grid table")
	}
}

func TestRunCmd_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad propagator", []string{"run", "--propagator", "x"}},
		{"propagator outside grid", []string{"run", "--size", "3", "--propagator", "9,9"}},
		{"bad rule", []string{"run", "--rule", "majority"}},
		{"bad format", []string{"run", "--format", "dot"}},
		{"too many steps", []string{"run", "--steps", "1000000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunCmd_ConfigFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "grid:\n  size: 3\n  force_normal: true\nsimulation:\n  steps: 1\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "lll\nlHl\nlll\n") {
		t.Errorf("config file not applied:\n%s", out)
	}
}

func TestRunCmd_WritesTraceAtDebug(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("TRUSTGRID_LOG_LEVEL", "debug")

	if _, err := execute(t, "run", "--size", "3", "--steps", "2"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".trustgrid", "logs", "generations.jsonl")); err != nil {
		t.Errorf("expected generation trace: %v", err)
	}
}

func TestGradeCmd(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"grade", "0"}, ": null"},
		{[]string{"grade", "2"}, ": low"},
		{[]string{"grade", "5"}, ": medium"},
		{[]string{"grade", "10"}, ": high"},
		{[]string{"grade", "10", "--reversed"}, ": low"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("grade: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if !strings.Contains(out, "LEVEL") {
				t.Errorf("output missing degree table:\n%s", out)
			}
		})
	}
}

func TestGradeCmd_JSON(t *testing.T) {
	isolateHome(t)

	out, err := execute(t, "grade", "--json", "5")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	var got struct {
		Level struct {
			Name string `json:"name"`
		} `json:"level"`
		Degrees []map[string]any `json:"degrees"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("parse JSON: %v", err)
	}
	if got.Level.Name != "medium" || len(got.Degrees) != 4 {
		t.Errorf("unexpected output: %+v", got)
	}
}

func TestGradeCmd_Invalid(t *testing.T) {
	isolateHome(t)
	for _, arg := range []string{"abc", "11", "-1"} {
		if _, err := execute(t, "grade", "--", arg); err == nil {
			t.Errorf("expected error for %q", arg)
		}
	}
}

func TestConfigCmd_SetGetList(t *testing.T) {
	home := isolateHome(t)

	if _, err := execute(t, "config", "set", "grid.size", "31"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := execute(t, "config", "set", "grid.rule", "score"); err != nil {
		t.Fatalf("config set: %v", err)
	}

	out, err := execute(t, "config", "get", "grid.size")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "grid.size = 31" {
		t.Errorf("config get = %q", out)
	}

	out, err = execute(t, "config", "list")
	if err != nil {
		t.Fatalf("config list: %v", err)
	}
	if !strings.Contains(out, "grid.rule:") || !strings.Contains(out, "score") {
		t.Errorf("config list missing rule:\n%s", out)
	}

	cfg, err := config.LoadFromFile(filepath.Join(home, ".trustgrid", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Grid.Size != 31 || cfg.Grid.Rule != "score" {
		t.Errorf("saved config = %+v", cfg.Grid)
	}
}

func TestConfigCmd_SetRejectsInvalid(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		key, value string
	}{
		{"grid.size", "abc"},
		{"grid.size", "0"},
		{"grid.rule", "majority"},
		{"grid.reversal_probability", "2"},
		{"simulation.interval", "soon"},
		{"no.such.key", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			if _, err := execute(t, "config", "set", tt.key, tt.value); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfigKeys_RoundTrip(t *testing.T) {
	cfg := config.Default()
	for _, key := range configKeys {
		if _, ok := getConfigValue(cfg, key); !ok {
			t.Errorf("getConfigValue(%q) not found", key)
		}
	}
}

func TestApplyScenarioFlags_Propagators(t *testing.T) {
	cmd := newRunCmd()
	if err := cmd.ParseFlags([]string{"--propagator", "1,2", "--propagator", "3,4", "--size", "9"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cfg := config.Default()
	if err := applyScenarioFlags(cmd, cfg); err != nil {
		t.Fatalf("applyScenarioFlags: %v", err)
	}
	want := []grid.Coord{{Row: 1, Col: 2}, {Row: 3, Col: 4}}
	if len(cfg.Simulation.Propagators) != 2 || cfg.Simulation.Propagators[0] != want[0] || cfg.Simulation.Propagators[1] != want[1] {
		t.Errorf("propagators = %v, want %v", cfg.Simulation.Propagators, want)
	}
	if cfg.Grid.Size != 9 {
		t.Errorf("size = %d, want 9", cfg.Grid.Size)
	}
}

func TestScenarioFromConfig_DefaultsToCentre(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Size = 7
	sc, err := scenarioFromConfig("test", cfg)
	if err != nil {
		t.Fatalf("scenarioFromConfig: %v", err)
	}
	if len(sc.Propagators) != 1 || sc.Propagators[0] != (grid.Coord{Row: 3, Col: 3}) {
		t.Errorf("propagators = %v, want centre", sc.Propagators)
	}
}
