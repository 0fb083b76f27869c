package config

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tailwindcli/internal/settings"
)

// roundTripFunc lets tests answer the latest-release lookup without a network.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func redirectClient(location string) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			header := http.Header{}
			if location != "" {
				header.Set("Location", location)
			}
			return &http.Response{
				StatusCode: http.StatusFound,
				Header:     header,
				Body:       io.NopCloser(strings.NewReader("")),
			}, nil
		}),
	}
}

func testResolver(client *http.Client) Resolver {
	return Resolver{HTTPClient: client, OS: "linux", Machine: "x86_64"}
}

func testSettings(version string) settings.Settings {
	s := settings.Default()
	s.Version = version
	s.StaticDirs = []string{"/p/assets"}
	return s
}

func TestResolveDefaultsForTailwind4(t *testing.T) {
	s := testSettings("4.0.0")
	cfg, err := testResolver(nil).Resolve(context.Background(), "/p", s)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if cfg.VersionStr != "4.0.0" {
		t.Fatalf("version: %s", cfg.VersionStr)
	}
	if cfg.DistCSS != "/p/assets/css/tailwind.css" {
		t.Fatalf("dist css: %s", cfg.DistCSS)
	}
	if cfg.SrcCSS != "/p/assets/css/source.css" {
		t.Fatalf("src css: %s", cfg.SrcCSS)
	}
	if !cfg.OverwriteDefault {
		t.Fatal("default src css should be marked overwritable")
	}
	if cfg.ConfigFile != "" {
		t.Fatalf("config file should be empty for 4.x, got %s", cfg.ConfigFile)
	}

	wantCmd := []string{cfg.CLIPath, "--output", cfg.DistCSS, "--minify", "--input", cfg.SrcCSS}
	assertArgv(t, cfg.BuildCmd(), wantCmd)

	wantWatch := []string{cfg.CLIPath, "--output", cfg.DistCSS, "--watch", "--input", cfg.SrcCSS}
	assertArgv(t, cfg.WatchCmd(), wantWatch)
}

func TestResolveDefaultsForTailwind3(t *testing.T) {
	s := testSettings("3.4.13")
	cfg, err := testResolver(nil).Resolve(context.Background(), "/p", s)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if cfg.SrcCSS != "" {
		t.Fatalf("src css should be absent for 3.x, got %s", cfg.SrcCSS)
	}
	if cfg.ConfigFile != filepath.Join("/p", "tailwind.config.js") {
		t.Fatalf("config file: %s", cfg.ConfigFile)
	}

	wantCmd := []string{cfg.CLIPath, "--output", cfg.DistCSS, "--minify", "--config", cfg.ConfigFile}
	assertArgv(t, cfg.BuildCmd(), wantCmd)
}

func TestResolveSrcCSSOptionalBelowFour(t *testing.T) {
	s := testSettings("3.4.13")
	src := "assets/css/source.css"
	s.SrcCSS = &src

	cfg, err := testResolver(nil).Resolve(context.Background(), "/p", s)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.SrcCSS == "" {
		t.Fatal("explicitly configured src css should be honored below 4.0.0")
	}
	if cfg.OverwriteDefault {
		t.Fatal("custom src css must never be marked overwritable")
	}
}

func TestResolveConfigFileRejectedForTailwind4(t *testing.T) {
	s := testSettings("4.0.0")
	legacy := "tailwind.config.js"
	s.ConfigFile = &legacy

	_, err := testResolver(nil).Resolve(context.Background(), "/p", s)
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *config.Error, got %v", err)
	}
	if cfgErr.Setting != "config_file" {
		t.Fatalf("unexpected setting: %s", cfgErr.Setting)
	}
}

func TestResolveRequiresStaticDirs(t *testing.T) {
	s := settings.Default()
	s.Version = "4.0.0"

	_, err := testResolver(nil).Resolve(context.Background(), "/p", s)
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *config.Error, got %v", err)
	}
	if cfgErr.Setting != "static_dirs" {
		t.Fatalf("unexpected setting: %s", cfgErr.Setting)
	}
}

func TestResolveRejectsExplicitlyEmptySettings(t *testing.T) {
	empty := ""

	cases := []struct {
		name  string
		apply func(*settings.Settings)
	}{
		{"asset_name", func(s *settings.Settings) { s.AssetName = &empty }},
		{"src_repo", func(s *settings.Settings) { s.SrcRepo = &empty }},
		{"dist_css", func(s *settings.Settings) { s.DistCSS = &empty }},
		{"src_css", func(s *settings.Settings) { s.SrcCSS = &empty }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testSettings("4.0.0")
			tc.apply(&s)

			_, err := testResolver(nil).Resolve(context.Background(), "/p", s)
			var cfgErr *Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *config.Error, got %v", err)
			}
			if cfgErr.Setting != tc.name {
				t.Fatalf("expected error for %s, got %s", tc.name, cfgErr.Setting)
			}
		})
	}

	t.Run("config_file", func(t *testing.T) {
		s := testSettings("3.4.13")
		s.ConfigFile = &empty

		_, err := testResolver(nil).Resolve(context.Background(), "/p", s)
		var cfgErr *Error
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected *config.Error, got %v", err)
		}
	})
}

func TestResolveLatestVersionFromRedirect(t *testing.T) {
	r := testResolver(redirectClient("https://github.com/tailwindlabs/tailwindcss/releases/tag/v4.0.10"))

	cfg, err := r.Resolve(context.Background(), "/p", testSettings("latest"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.VersionStr != "4.0.10" {
		t.Fatalf("expected 4.0.10, got %s", cfg.VersionStr)
	}
}

func TestResolveLatestFallsBackWithoutRedirect(t *testing.T) {
	notFound := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{},
				Body:       io.NopCloser(strings.NewReader("")),
			}, nil
		}),
	}

	cfg, err := testResolver(notFound).Resolve(context.Background(), "/p", testSettings("latest"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.VersionStr != FallbackVersion {
		t.Fatalf("expected fallback %s, got %s", FallbackVersion, cfg.VersionStr)
	}
}

func TestResolveLatestFallsBackWithoutLocationHeader(t *testing.T) {
	cfg, err := testResolver(redirectClient("")).Resolve(context.Background(), "/p", testSettings("latest"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.VersionStr != FallbackVersion {
		t.Fatalf("expected fallback %s, got %s", FallbackVersion, cfg.VersionStr)
	}
}

func TestResolveLatestFallsBackOnRequestError(t *testing.T) {
	failing := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}),
	}

	cfg, err := testResolver(failing).Resolve(context.Background(), "/p", testSettings("latest"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.VersionStr != FallbackVersion {
		t.Fatalf("expected fallback %s, got %s", FallbackVersion, cfg.VersionStr)
	}
}

func TestPlatformNormalization(t *testing.T) {
	cases := []struct {
		os, machine string
		platform    string
		arch        string
		wantExt     string
	}{
		{"linux", "x86_64", "linux", "x64", ""},
		{"linux", "amd64", "linux", "x64", ""},
		{"linux", "aarch64", "linux", "arm64", ""},
		{"linux", "riscv64", "linux", "riscv64", ""},
		{"darwin", "arm64", "macos", "arm64", ""},
		{"windows", "amd64", "windows", "x64", ".exe"},
	}

	for _, tc := range cases {
		r := Resolver{OS: tc.os, Machine: tc.machine}
		platform, arch, ext := r.normalizePlatform()
		if platform != tc.platform || arch != tc.arch || ext != tc.wantExt {
			t.Fatalf("%s/%s: got %s/%s/%q, want %s/%s/%q",
				tc.os, tc.machine, platform, arch, ext, tc.platform, tc.arch, tc.wantExt)
		}
	}
}

func TestDownloadURLAndCLIPathShape(t *testing.T) {
	cfg, err := testResolver(nil).Resolve(context.Background(), "/p", testSettings("4.0.0"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if !strings.HasSuffix(cfg.DownloadURL, "tailwindcss-linux-x64") {
		t.Fatalf("download url should end with asset-platform-arch: %s", cfg.DownloadURL)
	}
	if !strings.HasPrefix(cfg.DownloadURL,
		"https://github.com/tailwindlabs/tailwindcss/releases/download/v4.0.0/") {
		t.Fatalf("download url prefix: %s", cfg.DownloadURL)
	}

	base := filepath.Base(cfg.CLIPath)
	if base != "tailwindcss-linux-x64-4.0.0" {
		t.Fatalf("cli filename should embed platform, arch and version: %s", base)
	}
}

func TestResolveUsesExistingExecutableVerbatim(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "tailwindcss")
	writeExecutable(t, bin)

	s := testSettings("4.0.0")
	s.CLIPath = bin

	cfg, err := testResolver(nil).Resolve(context.Background(), "/p", s)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.CLIPath != bin {
		t.Fatalf("expected verbatim cli path %s, got %s", bin, cfg.CLIPath)
	}
}

func writeExecutable(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func assertArgv(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("argv length mismatch:\n got %v\nwant %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("argv mismatch at %d:\n got %v\nwant %v", i, got, want)
		}
	}
}
