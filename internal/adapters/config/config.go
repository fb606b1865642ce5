// Package config provides the configuration loader for regen.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Default tuning values. All of them are empirically chosen and exposed
// as configuration; none is load-bearing for correctness.
const (
	DefaultBuildDebounce = 100 * time.Millisecond
	DefaultGraphDebounce = 500 * time.Millisecond
	DefaultDedupeWindow  = 200 * time.Millisecond
	DefaultPollInterval  = time.Second
	DefaultBuildTimeout  = 120 * time.Second
	DefaultMaxDepth      = 64
)

// Settings is the resolved orchestrator configuration.
type Settings struct {
	Root       string   `yaml:"root"`        // project root, default cwd
	SourceDir  string   `yaml:"source_dir"`  // relative to root, default "src"
	RoutesDir  string   `yaml:"routes_dir"`  // relative to source dir, default "routes"
	OutDir     string   `yaml:"out_dir"`     // relative to root, default "dist"
	Extensions []string `yaml:"extensions"`  // default domain.DefaultRouteExtensions
	Aliases    []string `yaml:"aliases"`     // import prefixes resolving to the source root

	Watch WatchSettings `yaml:"watch"`
	Graph GraphSettings `yaml:"graph"`
	Build BuildSettings `yaml:"build"`

	Metrics MetricsSettings `yaml:"metrics"`
}

// WatchSettings tunes the change detector.
type WatchSettings struct {
	DedupeWindow time.Duration `yaml:"dedupe_window"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// GraphSettings tunes the dependency graph builder.
type GraphSettings struct {
	RefreshDebounce time.Duration `yaml:"refresh_debounce"`
	MaxDepth        int           `yaml:"max_depth"`
}

// BuildSettings describes the external build pipeline contract.
type BuildSettings struct {
	// Command is the route-scoped build invocation. The comma-joined
	// route list is appended as the final argument and exported as
	// REGEN_ROUTES.
	Command []string `yaml:"command"`

	// FullCommand is the unscoped precondition build, run once when the
	// client manifest is missing. Defaults to Command without the route
	// argument.
	FullCommand []string `yaml:"full_command"`

	// Manifest is the upstream client artifact checked before the first
	// route-scoped build, relative to the out dir.
	Manifest string `yaml:"manifest"`

	Debounce time.Duration `yaml:"debounce"`
	Timeout  time.Duration `yaml:"timeout"`

	// Env holds extra KEY=VALUE pairs exported to the child, on top of
	// the flags that disable watch mode and TLS in the child process.
	Env map[string]string `yaml:"env"`

	// SkipUnchanged enables the content-fingerprint early skip: a batch
	// whose source closure hashes identically to its last successful
	// build is not re-spawned.
	SkipUnchanged bool `yaml:"skip_unchanged"`
}

// MetricsSettings configures the optional Prometheus listener.
type MetricsSettings struct {
	// Addr is the listen address for /metrics, e.g. "127.0.0.1:9464".
	// Empty disables the listener.
	Addr string `yaml:"addr"`
}

// SourceRoot returns the absolute source root directory.
func (s *Settings) SourceRoot() string {
	return filepath.Join(s.Root, s.SourceDir)
}

// RoutesRoot returns the absolute routes root directory.
func (s *Settings) RoutesRoot() string {
	return filepath.Join(s.SourceRoot(), s.RoutesDir)
}

// OutRoot returns the absolute build output directory.
func (s *Settings) OutRoot() string {
	return filepath.Join(s.Root, s.OutDir)
}

// MarkerPath returns the absolute path of the generation marker file.
func (s *Settings) MarkerPath() string {
	return filepath.Join(s.OutRoot(), ".generation.json")
}

// ManifestPath returns the absolute path of the precondition artifact.
func (s *Settings) ManifestPath() string {
	return filepath.Join(s.OutRoot(), s.Build.Manifest)
}

// Load reads settings from the YAML file at path, applies defaults and
// environment overrides, and validates the result. A missing file is
// not an error: defaults alone are a valid zero-configuration setup.
func Load(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
		}
	case os.IsNotExist(err):
		// Zero-configuration operation.
	default:
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	s.applyDefaults()
	s.applyEnv()

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyDefaults() {
	if s.Root == "" {
		if cwd, err := os.Getwd(); err == nil {
			s.Root = cwd
		} else {
			s.Root = "."
		}
	}
	s.Root, _ = filepath.Abs(s.Root)

	if s.SourceDir == "" {
		s.SourceDir = "src"
	}
	if s.RoutesDir == "" {
		s.RoutesDir = "routes"
	}
	if s.OutDir == "" {
		s.OutDir = "dist"
	}
	if len(s.Extensions) == 0 {
		s.Extensions = domain.DefaultRouteExtensions
	}
	if len(s.Aliases) == 0 {
		s.Aliases = []string{"~/", "@/"}
	}

	if s.Watch.DedupeWindow <= 0 {
		s.Watch.DedupeWindow = DefaultDedupeWindow
	}
	if s.Watch.PollInterval <= 0 {
		s.Watch.PollInterval = DefaultPollInterval
	}
	if s.Graph.RefreshDebounce <= 0 {
		s.Graph.RefreshDebounce = DefaultGraphDebounce
	}
	if s.Graph.MaxDepth <= 0 {
		s.Graph.MaxDepth = DefaultMaxDepth
	}
	if s.Build.Debounce <= 0 {
		s.Build.Debounce = DefaultBuildDebounce
	}
	if s.Build.Timeout <= 0 {
		s.Build.Timeout = DefaultBuildTimeout
	}
	if s.Build.Manifest == "" {
		s.Build.Manifest = "manifest.json"
	}
	if len(s.Build.Command) == 0 {
		s.Build.Command = []string{"npm", "run", "build"}
	}
	if len(s.Build.FullCommand) == 0 {
		s.Build.FullCommand = s.Build.Command
	}
}

// applyEnv overrides timing and depth tunables from the environment.
func (s *Settings) applyEnv() {
	overrideDuration("REGEN_POLL_INTERVAL", &s.Watch.PollInterval)
	overrideDuration("REGEN_DEDUPE_WINDOW", &s.Watch.DedupeWindow)
	overrideDuration("REGEN_BUILD_DEBOUNCE", &s.Build.Debounce)
	overrideDuration("REGEN_GRAPH_DEBOUNCE", &s.Graph.RefreshDebounce)
	overrideDuration("REGEN_BUILD_TIMEOUT", &s.Build.Timeout)
	overrideInt("REGEN_MAX_DEPTH", &s.Graph.MaxDepth)

	if addr, ok := os.LookupEnv("REGEN_METRICS_ADDR"); ok {
		s.Metrics.Addr = addr
	}
}

func (s *Settings) validate() error {
	if !filepath.IsAbs(s.Root) {
		return zerr.With(zerr.New("project root must be absolute"), "root", s.Root)
	}
	if len(s.Build.Command) == 0 {
		return domain.ErrNoBuildCommand
	}
	return nil
}

func overrideDuration(key string, dst *time.Duration) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		*dst = d
	}
}

func overrideInt(key string, dst *int) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		*dst = n
	}
}
