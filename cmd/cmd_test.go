package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/papapumpkin/sysbrowse/internal/ansi"
)

// The tests in this file share rootCmd and the global viper instance, so
// none of them run in parallel.

type env struct {
	dir       string
	settings  string
	telemetry string
}

// setupEnv points the settings store and telemetry at a temp dir and
// selects the demo scene.
func setupEnv(t *testing.T, backend string) env {
	t.Helper()
	dir := t.TempDir()
	e := env{
		dir:       dir,
		settings:  filepath.Join(dir, "settings.toml"),
		telemetry: filepath.Join(dir, "events.jsonl"),
	}
	if backend == "sqlite" {
		e.settings = filepath.Join(dir, "settings.db")
	}
	viper.Set("settings.backend", backend)
	viper.Set("settings.path", e.settings)
	viper.Set("scene_path", "")
	viper.Set("telemetry_path", e.telemetry)
	return e
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs rootCmd with args and returns what it wrote.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func mustExecute(t *testing.T, args ...string) (string, string) {
	t.Helper()
	out, errOut, err := execute(t, args...)
	if err != nil {
		t.Fatalf("%v: %v\nstderr: %s", args, err, errOut)
	}
	return out, errOut
}

func TestCommands_Registered(t *testing.T) {
	want := []string{"list", "columns", "category", "game-only", "worlds", "tui"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q subcommand to be registered on rootCmd", name)
		}
	}
}

func TestList_Flags(t *testing.T) {
	for _, flag := range []string{"filter", "module", "columns", "hidden", "metrics"} {
		if listCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag %q on list command", flag)
		}
	}
	for _, flag := range []string{"config", "verbose", "world", "scene"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag %q on root command", flag)
		}
	}
}

func TestList_DemoScene(t *testing.T) {
	setupEnv(t, "toml")

	out, _ := mustExecute(t, "list", "--world", "PIE_Arena")
	for _, want := range []string{
		"world PIE_Arena (19 subsystem(s) in visible categories)",
		"Engine Subsystems (6)",
		"Player Subsystems (4)",
		"Enhanced Input Local Player Subsystem",
		"MODULE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestList_DefaultWorld(t *testing.T) {
	setupEnv(t, "toml")

	out, _ := mustExecute(t, "list", "--columns=false")
	if !strings.Contains(out, "world EditorWorld (13 subsystem(s)") {
		t.Errorf("expected the first scene world:\n%s", out)
	}
	if strings.Contains(out, "MODULE") {
		t.Errorf("--columns=false still rendered columns:\n%s", out)
	}
}

func TestList_FilterAndModule(t *testing.T) {
	setupEnv(t, "toml")

	out, _ := mustExecute(t, "list", "--filter", "editor", "--module", "unrealed")
	if !strings.Contains(out, "Asset Editor Subsystem") || !strings.Contains(out, "Editor Actor Subsystem") {
		t.Errorf("expected UnrealEd editor subsystems:\n%s", out)
	}
	for _, absent := range []string{"Import Subsystem", "Level Editor Subsystem", "UI Action Router"} {
		if strings.Contains(out, absent) {
			t.Errorf("%q should be filtered out:\n%s", absent, out)
		}
	}
	if !strings.Contains(out, "Engine Subsystems (2)") {
		t.Errorf("category header should count filtered subsystems:\n%s", out)
	}
	if !strings.Contains(out, "(13 subsystem(s) in visible categories)") {
		t.Errorf("summary should count unfiltered subsystems:\n%s", out)
	}
}

func TestList_UnknownWorld(t *testing.T) {
	setupEnv(t, "toml")

	_, _, err := execute(t, "list", "--world", "Nowhere")
	if err == nil || !strings.Contains(err.Error(), `unknown world "Nowhere"`) {
		t.Fatalf("err = %v, want unknown world", err)
	}
	if !strings.Contains(err.Error(), "EditorWorld, PIE_Arena") {
		t.Errorf("error should list the known worlds: %v", err)
	}
}

func TestList_Metrics(t *testing.T) {
	setupEnv(t, "toml")

	out, _ := mustExecute(t, "list", "--metrics", "--world", "PIE_Arena")
	for _, want := range []string{
		"sysbrowse_model_rebuilds_total 1",
		`sysbrowse_subsystems{category="player",world="PIE_Arena"} 4`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q:\n%s", want, out)
		}
	}
}

func TestList_SceneFile(t *testing.T) {
	e := setupEnv(t, "toml")
	scene := filepath.Join(e.dir, "scene.toml")
	const doc = `
name = "tiny"

[[engine]]
class = "UTimerSubsystem"
module = "Engine"

[[worlds]]
name = "Main"

  [[worlds.subsystems]]
  class = "UQuestSubsystem"
  module = "MyGame"
  game = true
`
	if err := os.WriteFile(scene, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.Set("scene_path", scene)

	out, _ := mustExecute(t, "list")
	for _, want := range []string{"world Main (2 subsystem(s)", "Timer Subsystem", "Quest Subsystem"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	viper.Set("scene_path", filepath.Join(e.dir, "missing.toml"))
	out, _ = mustExecute(t, "list")
	if !strings.Contains(out, "world EditorWorld") {
		t.Errorf("missing scene file should fall back to the demo scene:\n%s", out)
	}
}

func TestCategory_HidePersistsAndEmits(t *testing.T) {
	e := setupEnv(t, "toml")

	_, errOut := mustExecute(t, "category", "hide", "player")
	if !strings.Contains(errOut, "Player Subsystems is now hidden") {
		t.Errorf("stderr = %q", errOut)
	}

	out, _ := mustExecute(t, "list", "--world", "PIE_Arena", "--hidden")
	if !strings.Contains(out, "(15 subsystem(s) in visible categories)") {
		t.Errorf("hidden category still counted:\n%s", out)
	}
	if !strings.Contains(out, "hidden: Player Subsystems [player]") {
		t.Errorf("hidden categories not listed:\n%s", out)
	}

	_, errOut = mustExecute(t, "category", "show", "player")
	if !strings.Contains(errOut, "Player Subsystems is now visible") {
		t.Errorf("stderr = %q", errOut)
	}

	events, err := os.ReadFile(e.telemetry)
	if err != nil {
		t.Fatalf("reading telemetry: %v", err)
	}
	for _, want := range []string{`"kind":"category_hidden"`, `"kind":"category_shown"`, `"kind":"model_rebuilt"`, `"category":"player"`} {
		if !strings.Contains(string(events), want) {
			t.Errorf("telemetry missing %s:\n%s", want, events)
		}
	}
}

func TestCategory_Unknown(t *testing.T) {
	setupEnv(t, "toml")

	_, _, err := execute(t, "category", "hide", "nope")
	if err == nil || !strings.Contains(err.Error(), `unknown category "nope"`) {
		t.Fatalf("err = %v, want unknown category", err)
	}
}

func TestCategory_List(t *testing.T) {
	setupEnv(t, "toml")

	out, _ := mustExecute(t, "category")
	for _, want := range []string{"engine", "game_instance", "world", "player", "Game Instance Subsystems"} {
		if !strings.Contains(out, want) {
			t.Errorf("category list missing %q:\n%s", want, out)
		}
	}
}

func TestGameOnly(t *testing.T) {
	setupEnv(t, "toml")

	out, _ := mustExecute(t, "game-only")
	if strings.TrimSpace(out) != "game-only: off" {
		t.Errorf("initial state = %q", out)
	}

	_, errOut := mustExecute(t, "game-only", "on", "--world", "PIE_Arena")
	if !strings.Contains(errOut, "game-only on (7 subsystem(s) listed)") {
		t.Errorf("stderr = %q", errOut)
	}

	out, _ = mustExecute(t, "game-only")
	if strings.TrimSpace(out) != "game-only: on" {
		t.Errorf("state after on = %q", out)
	}

	if _, _, err := execute(t, "game-only", "maybe"); err == nil {
		t.Error("expected an error for an invalid argument")
	}
}

func TestColumns(t *testing.T) {
	setupEnv(t, "toml")

	out, _ := mustExecute(t, "columns")
	for _, want := range []string{"Module", "Class", "Path", "Owner"} {
		if !strings.Contains(out, want) {
			t.Errorf("columns missing %q:\n%s", want, out)
		}
	}

	_, errOut := mustExecute(t, "columns", "disable", "Path")
	if !strings.Contains(errOut, "column Path disabled") {
		t.Errorf("stderr = %q", errOut)
	}

	out, _ = mustExecute(t, "columns", "--active")
	if strings.Contains(out, "Path") {
		t.Errorf("disabled column listed as active:\n%s", out)
	}
	out, _ = mustExecute(t, "list")
	if strings.Contains(out, "PATH") {
		t.Errorf("disabled column rendered in list:\n%s", out)
	}

	if _, _, err := execute(t, "columns", "enable", "Bogus"); err == nil {
		t.Error("expected an error for an unknown column")
	}
}

func TestWorlds(t *testing.T) {
	setupEnv(t, "toml")

	out, _ := mustExecute(t, "worlds")
	if out != "▸ EditorWorld\n  PIE_Arena\n" {
		t.Errorf("worlds = %q", out)
	}

	out, _ = mustExecute(t, "worlds", "--world", "PIE_Arena")
	if out != "  EditorWorld\n▸ PIE_Arena\n" {
		t.Errorf("worlds --world PIE_Arena = %q", out)
	}
}

func TestSQLiteBackend(t *testing.T) {
	e := setupEnv(t, "sqlite")

	mustExecute(t, "category", "hide", "world")
	out, _ := mustExecute(t, "list", "--hidden")
	if !strings.Contains(out, "hidden: World Subsystems [world]") {
		t.Errorf("sqlite store did not persist visibility:\n%s", out)
	}
	if _, err := os.Stat(e.settings); err != nil {
		t.Errorf("expected database at %s: %v", e.settings, err)
	}
}

func TestRootDefault_FallsBackToList(t *testing.T) {
	if ansi.IsTerminal(os.Stdin) && ansi.IsTerminal(os.Stderr) {
		t.Skip("running on a terminal")
	}
	setupEnv(t, "toml")

	out, _ := mustExecute(t)
	if !strings.Contains(out, "world EditorWorld") {
		t.Errorf("root command should print the tree:\n%s", out)
	}
}

func TestTUI_RequiresTTY(t *testing.T) {
	if ansi.IsTerminal(os.Stderr) {
		t.Skip("running on a terminal")
	}
	setupEnv(t, "toml")

	_, _, err := execute(t, "tui")
	if err == nil || !strings.Contains(err.Error(), "requires a TTY") {
		t.Fatalf("err = %v, want TTY error", err)
	}
}
