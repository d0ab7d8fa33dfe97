package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/shared"
	tu "github.com/desertthunder/folio/internal/testing"
	"github.com/urfave/cli/v3"
)

func mockSource() *tu.MockSource {
	return tu.NewMockSource(
		[]string{"fibers"},
		map[string][]models.Artwork{
			"fibers": {
				{ID: "woven-wall-hanging", Title: "Woven Wall Hanging", Image: "fibers/woven-wall-hanging.jpg"},
			},
		},
	)
}

func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "folio",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"folio"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			source := mockSource()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Source:     source,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.source != source {
				t.Error("expected source to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !strings.Contains(output.String(), `{"key":"value"}`) {
				t.Errorf("expected compact JSON, got %s", output.String())
			}
		})

		t.Run("fails on a broken writer", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected a write error")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s\n", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})
}

func TestSetupCommand(t *testing.T) {
	t.Run("creates a config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runCommand(t, runner, "setup", "-c", path); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		tu.AssertFileExists(t, path)

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "[portfolio]") {
			t.Errorf("config missing portfolio section, got: %s", content)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatal(err)
		}

		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		if err := runCommand(t, runner, "setup", "-c", path); err == nil {
			t.Error("expected an error for an existing config file")
		}
	})
}

func TestDiscoverCommand(t *testing.T) {
	t.Run("prints discovered categories", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Source: mockSource()})

		if err := runCommand(t, runner, "discover"); err != nil {
			t.Fatalf("discover failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "fibers") {
			t.Errorf("output missing category, got: %s", result)
		}
		if !strings.Contains(result, "Woven Wall Hanging") {
			t.Errorf("output missing artwork title, got: %s", result)
		}
	})

	t.Run("json output", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Source: mockSource()})

		if err := runCommand(t, runner, "discover", "--json"); err != nil {
			t.Fatalf("discover failed: %v", err)
		}

		if !strings.Contains(output.String(), `"name": "fibers"`) {
			t.Errorf("expected pretty JSON, got: %s", output.String())
		}
	})
}

func TestManifestCommands(t *testing.T) {
	writeAssetTree := func(t *testing.T) string {
		t.Helper()

		root := t.TempDir()
		fibers := filepath.Join(root, "fibers")
		if err := os.MkdirAll(fibers, 0755); err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{"woven-wall-hanging.jpg", "notes.txt"} {
			if err := os.WriteFile(filepath.Join(fibers, name), []byte("x"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		return root
	}

	t.Run("build scans an asset tree", func(t *testing.T) {
		root := writeAssetTree(t)
		outputPath := filepath.Join(t.TempDir(), "manifest.json")

		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		if err := runCommand(t, runner, "manifest", "build", "-o", outputPath, root); err != nil {
			t.Fatalf("manifest build failed: %v", err)
		}

		tu.AssertFileExists(t, outputPath)

		content := tu.MustReadFile(t, outputPath)
		if !strings.Contains(content, `"woven-wall-hanging"`) {
			t.Errorf("manifest missing artwork, got: %s", content)
		}
		if strings.Contains(content, "notes.txt") {
			t.Errorf("manifest must exclude ineligible files")
		}
	})

	t.Run("build requires a directory argument", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		if err := runCommand(t, runner, "manifest", "build"); err == nil {
			t.Error("expected an error without a directory argument")
		}
	})

	t.Run("show prints the embedded manifest", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runCommand(t, runner, "manifest", "show"); err != nil {
			t.Fatalf("manifest show failed: %v", err)
		}

		if !strings.Contains(output.String(), `"fibers"`) {
			t.Errorf("expected the embedded manifest, got: %s", output.String())
		}
	})
}
