package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/boom-router/boom/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "boom.json"

	// DefaultPort is the default bridge server port.
	DefaultPort = 7400

	// DefaultHost is the default bridge server host.
	DefaultHost = "localhost"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "boom"
)

// Provider kinds.
const (
	ProviderMemory = "memory"
	ProviderHash   = "hash"
)

// Config represents the complete boom.json configuration.
type Config struct {
	// Provider selects the location provider: "memory" or "hash".
	Provider string `json:"provider,omitempty"`

	// Path is the initial location of a memory provider, or the
	// server-side path of a hash provider.
	Path string `json:"path,omitempty"`

	// Base is the router base path.
	Base string `json:"base,omitempty"`

	// Record keeps a History Log (memory provider only).
	Record bool `json:"record,omitempty"`

	// Static disables navigation.
	Static bool `json:"static,omitempty"`

	// Server contains bridge server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains bridge server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled wraps the provider with the metrics middleware and serves
	// /metrics.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled wraps the provider with the tracing middleware.
	Enabled bool `json:"enabled,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from boom.json in the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No boom.json found in " + filepath.Dir(path))
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse boom.json: " + err.Error()).
			WithSuggestion("Check that boom.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E107").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E107").Wrap(err)
	}

	c.configPath = path
	return nil
}

// File returns the file the config was loaded from or saved to.
func (c *Config) File() string {
	return c.configPath
}

// applyDefaults fills in default values for missing fields.
func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderMemory
	}
	if c.Path == "" {
		c.Path = "/"
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderMemory, ProviderHash:
	default:
		return errors.New("E103").
			WithField("provider").
			WithDetailf("Got %q; the provider must be either \"memory\" or \"hash\".", c.Provider)
	}

	if !strings.HasPrefix(c.Path, "/") {
		return errors.New("E105").WithField("path")
	}
	if c.Base != "" && !strings.HasPrefix(c.Base, "/") {
		return errors.New("E105").WithField("base")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E104").WithField("server.port")
	}

	if !validNamespace(c.Metrics.Namespace) {
		return errors.New("E106").WithField("metrics.namespace")
	}

	return nil
}

func validNamespace(ns string) bool {
	if ns == "" {
		return false
	}
	for i, r := range ns {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Address returns the bridge server listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Exists reports whether boom.json exists in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the first directory holding
// a boom.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E101").
				WithDetail("No boom.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads boom.json from the working directory or the
// nearest parent that has one.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
