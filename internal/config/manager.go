package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. APIDOCS_SERVER_ADDRESS.
const EnvPrefix = "APIDOCS"

// Manager loads the configuration and reloads it when the file changes.
type Manager struct {
	v   *viper.Viper
	log logrus.FieldLogger

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads cfgFile, or config.yaml from the working directory or
// $HOME/.apidocs when cfgFile is empty. A missing default file is not an
// error; defaults and environment variables still apply.
func NewManager(cfgFile string, log logrus.FieldLogger) (*Manager, error) {
	m := &Manager{v: viper.New(), log: log}
	if err := m.initViper(cfgFile); err != nil {
		return nil, err
	}
	cfg, err := m.load()
	if err != nil {
		return nil, err
	}
	m.config = cfg
	return m, nil
}

func (m *Manager) initViper(cfgFile string) error {
	d := DefaultConfig()
	m.v.SetDefault("server.address", d.Server.Address)
	m.v.SetDefault("server.endpoint_prefix", d.Server.EndpointPrefix)
	m.v.SetDefault("server.rate_limit", d.Server.RateLimit)
	m.v.SetDefault("server.metrics", d.Server.Metrics)
	m.v.SetDefault("docs.xml_base_dir", d.Docs.XMLBaseDir)
	m.v.SetDefault("docs.xml_patterns", d.Docs.XMLPatterns)
	m.v.SetDefault("info.title", d.Info.Title)
	m.v.SetDefault("info.description", d.Info.Description)
	m.v.SetDefault("info.terms_of_service", d.Info.TermsOfService)
	m.v.SetDefault("info.contact_name", d.Info.ContactName)
	m.v.SetDefault("info.contact_email", d.Info.ContactEmail)
	m.v.SetDefault("info.contact_url", d.Info.ContactURL)
	m.v.SetDefault("info.license_format", d.Info.LicenseFormat)
	m.v.SetDefault("info.license_url", d.Info.LicenseURL)
	m.v.SetDefault("info.deprecation_notice", d.Info.DeprecationNotice)
	m.v.SetDefault("versions", []map[string]any{{"version": d.Versions[0].Version}})
	m.v.SetDefault("log.level", d.Log.Level)
	m.v.SetDefault("log.format", d.Log.Format)

	m.v.SetEnvPrefix(EnvPrefix)
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.v.AutomaticEnv()

	if cfgFile != "" {
		m.v.SetConfigFile(cfgFile)
	} else {
		m.v.SetConfigName("config")
		m.v.SetConfigType("yaml")
		m.v.AddConfigPath(".")
		m.v.AddConfigPath("$HOME/.apidocs")
	}

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func (m *Manager) load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// File returns the config file in use, or "" when running on defaults.
func (m *Manager) File() string {
	return m.v.ConfigFileUsed()
}

// OnChange registers fn to run after every successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// WatchConfig reloads the configuration when the file changes. An invalid
// file is logged and the previous configuration kept.
func (m *Manager) WatchConfig() {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		m.reload(e.Name)
	})
	m.v.WatchConfig()
}

func (m *Manager) reload(name string) {
	cfg, err := m.load()
	if err != nil {
		m.log.WithError(err).WithField("file", name).Error("config reload failed, keeping previous config")
		return
	}

	m.mu.Lock()
	m.config = cfg
	callbacks := slices.Clone(m.callbacks)
	m.mu.Unlock()

	m.log.WithField("file", name).Info("config reloaded")
	for _, fn := range callbacks {
		fn(cfg)
	}
}

// WriteDefault writes the default configuration to path as YAML.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# apidocs configuration\n# Every key can be overridden with APIDOCS_<SECTION>_<KEY>, e.g. APIDOCS_SERVER_ADDRESS.\n\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
