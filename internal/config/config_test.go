package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shapestone/shape-sexp/pkg/sexp"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.Indent != "  " || cfg.Compact || cfg.MaxDepth != sexp.DefaultMaxDepth {
		t.Errorf("Default() = %+v", cfg)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr string
	}{
		{
			name:  "empty",
			input: "",
			want:  Default(),
		},
		{
			name:  "overrides",
			input: "indent: \"\\t\"\ncompact: true\nmax_depth: 50\nencoding: latin1\n",
			want: Config{
				Indent:        "\t",
				Compact:       true,
				MaxDepth:      50,
				MaxInputBytes: DefaultMaxInputBytes,
				Encoding:      "latin1",
			},
		},
		{
			name:    "unknown key",
			input:   "indnet: 4\n",
			wantErr: "field indnet not found",
		},
		{
			name:    "bad depth",
			input:   "max_depth: 0\n",
			wantErr: "max_depth must be positive",
		},
		{
			name:    "bad indent",
			input:   "indent: xx\n",
			wantErr: "indent must hold only spaces and tabs",
		},
		{
			name:    "bad limit",
			input:   "max_input_bytes: -1\n",
			wantErr: "max_input_bytes must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sexp.yaml")
	if err := os.WriteFile(path, []byte("compact: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Compact {
		t.Error("Compact = false, want true")
	}
	if pr := cfg.Printer(); !pr.Compact || pr.Indent != "  " {
		t.Errorf("Printer() = %+v", pr)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestParseOptions(t *testing.T) {
	cfg := Default()
	cfg.MaxDepth = 2

	_, err := sexp.ParseWithOptions([]byte("((()))"), cfg.ParseOptions()...)
	if err == nil {
		t.Fatal("expected depth error")
	}
	if pe, ok := err.(*sexp.ParseError); !ok || pe.Kind != sexp.TooDeep {
		t.Errorf("err = %v, want TooDeep", err)
	}
}

func TestHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := Config{HistoryFile: "~/.sexp_history"}
	if got := cfg.HistoryPath(); got != filepath.Join(home, ".sexp_history") {
		t.Errorf("HistoryPath() = %q", got)
	}
	cfg.HistoryFile = "/tmp/h"
	if got := cfg.HistoryPath(); got != "/tmp/h" {
		t.Errorf("HistoryPath() = %q", got)
	}
}
