package css

import (
	"os"
	"path/filepath"
	"testing"

	"tailwindcli/internal/config"
)

func TestEnsureSourceCSSCreatesDefault(t *testing.T) {
	cfg := config.Config{
		SrcCSS:           filepath.Join(t.TempDir(), "css", "source.css"),
		OverwriteDefault: true,
	}

	created, err := EnsureSourceCSS(cfg)
	if err != nil {
		t.Fatalf("EnsureSourceCSS: %v", err)
	}
	if !created {
		t.Fatal("expected file creation")
	}

	data, err := os.ReadFile(cfg.SrcCSS)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != DefaultSourceCSS {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestEnsureSourceCSSDaisyUIVariant(t *testing.T) {
	cfg := config.Config{
		SrcCSS:           filepath.Join(t.TempDir(), "source.css"),
		OverwriteDefault: true,
		UseDaisyUI:       true,
	}

	if _, err := EnsureSourceCSS(cfg); err != nil {
		t.Fatalf("EnsureSourceCSS: %v", err)
	}
	data, err := os.ReadFile(cfg.SrcCSS)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != DaisyUISourceCSS {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestEnsureSourceCSSRewritesDriftedDefault(t *testing.T) {
	cfg := config.Config{
		SrcCSS:           filepath.Join(t.TempDir(), "source.css"),
		OverwriteDefault: true,
	}
	if err := os.WriteFile(cfg.SrcCSS, []byte("/* edited */\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	created, err := EnsureSourceCSS(cfg)
	if err != nil {
		t.Fatalf("EnsureSourceCSS: %v", err)
	}
	if !created {
		t.Fatal("drifted default content should be rewritten")
	}

	// A second pass sees matching content and does nothing.
	created, err = EnsureSourceCSS(cfg)
	if err != nil {
		t.Fatalf("EnsureSourceCSS: %v", err)
	}
	if created {
		t.Fatal("matching content should not be rewritten")
	}
}

func TestEnsureSourceCSSPreservesCustomPath(t *testing.T) {
	cfg := config.Config{
		SrcCSS:           filepath.Join(t.TempDir(), "custom.css"),
		OverwriteDefault: false,
	}

	created, err := EnsureSourceCSS(cfg)
	if err != nil {
		t.Fatalf("EnsureSourceCSS: %v", err)
	}
	if !created {
		t.Fatal("custom path should be created when absent")
	}

	if err := os.WriteFile(cfg.SrcCSS, []byte("/* user content */\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	created, err = EnsureSourceCSS(cfg)
	if err != nil {
		t.Fatalf("EnsureSourceCSS: %v", err)
	}
	if created {
		t.Fatal("custom path must never be overwritten")
	}

	data, _ := os.ReadFile(cfg.SrcCSS)
	if string(data) != "/* user content */\n" {
		t.Fatalf("user content clobbered: %q", data)
	}
}

func TestEnsureSourceCSSNoopWithoutPath(t *testing.T) {
	created, err := EnsureSourceCSS(config.Config{})
	if err != nil {
		t.Fatalf("EnsureSourceCSS: %v", err)
	}
	if created {
		t.Fatal("no path configured, nothing to create")
	}
}
