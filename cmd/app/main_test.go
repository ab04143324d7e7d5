package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/starford/lifeos/internal"
)

// loadWith runs the root command with args and returns the config its
// action would start with.
func loadWith(t *testing.T, args ...string) (*internal.Config, error) {
	t.Helper()
	t.Setenv("APP_CONFIG_FILE", "")
	os.Unsetenv("APP_CONFIG_FILE")

	var (
		cfg *internal.Config
		err error
	)
	cmd := newCommand()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		cfg, err = loadConfig(c)
		return nil
	}
	if runErr := cmd.Run(context.Background(), append([]string{"lifeos"}, args...)); runErr != nil {
		t.Fatalf("run: %v", runErr)
	}
	return cfg, err
}

func writeConfig(t *testing.T, path string, port string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	body := "app:\n  http:\n    port: " + port + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_NoFileKeepsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadWith(t)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.HTTP.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.App.HTTP.Port)
	}
}

func TestLoadConfig_MissingNamedFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, filepath.Join(dir, defaultConfigFile), "9191")

	cfg, err := loadWith(t, "--config", filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.HTTP.Port != 9191 {
		t.Errorf("port = %d, want 9191 from %s", cfg.App.HTTP.Port, defaultConfigFile)
	}
}

func TestLoadConfig_NamedFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	named := filepath.Join(dir, "custom.yaml")
	writeConfig(t, named, "7070")

	cfg, err := loadWith(t, "--config", named)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.HTTP.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.App.HTTP.Port)
	}
}

func TestLoadConfig_MissingNamedFileWithoutFallback(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := loadWith(t, "--config", filepath.Join(dir, "absent.yaml")); err == nil {
		t.Fatal("expected error when neither the named nor the default file exists")
	}
}
