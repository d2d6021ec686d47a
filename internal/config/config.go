package config

import (
	"fmt"
	"strings"

	"github.com/Gobd/apidocs"
	"github.com/Gobd/apidocs/rules"
	"github.com/Gobd/apidocs/xmldoc"
	"github.com/samber/lo"
)

// Config is the documentation server configuration.
type Config struct {
	Server   ServerConfig        `json:"server" mapstructure:"server" yaml:"server"`
	Docs     DocsConfig          `json:"docs" mapstructure:"docs" yaml:"docs"`
	Info     apidocs.InfoOptions `json:"info" mapstructure:"info" yaml:"info"`
	Versions []VersionConfig     `json:"versions" mapstructure:"versions" yaml:"versions"`
	Log      LogConfig           `json:"log" mapstructure:"log" yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address string `json:"address" mapstructure:"address" yaml:"address"`
	// EndpointPrefix follows scheme://host in the advertised server URL.
	EndpointPrefix string `json:"endpoint_prefix" mapstructure:"endpoint_prefix" yaml:"endpoint_prefix"`
	// RateLimit is the number of requests per minute allowed per client IP; 0 disables limiting.
	RateLimit int  `json:"rate_limit" mapstructure:"rate_limit" yaml:"rate_limit"`
	Metrics   bool `json:"metrics" mapstructure:"metrics" yaml:"metrics"`
}

// DocsConfig configures discovery of XML comment files.
type DocsConfig struct {
	XMLBaseDir  string   `json:"xml_base_dir" mapstructure:"xml_base_dir" yaml:"xml_base_dir"`
	XMLPatterns []string `json:"xml_patterns" mapstructure:"xml_patterns" yaml:"xml_patterns"`
}

// VersionConfig declares one published API version.
type VersionConfig struct {
	Version    string `json:"version" mapstructure:"version" yaml:"version"`
	Deprecated bool   `json:"deprecated" mapstructure:"deprecated" yaml:"deprecated"`
	GroupName  string `json:"group_name" mapstructure:"group_name" yaml:"group_name"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level" yaml:"level"`
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
			Metrics: true,
		},
		Docs: DocsConfig{
			XMLPatterns: append([]string(nil), xmldoc.DefaultPatterns...),
		},
		Info: apidocs.DefaultInfoOptions(),
		Versions: []VersionConfig{
			{Version: "1.0"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func (c *Config) Rules() []*rules.FieldRules {
	return []*rules.FieldRules{
		rules.Field(&c.Server),
		rules.Field(&c.Docs),
		rules.Field(&c.Info),
		rules.Field(&c.Versions, rules.Required),
		rules.Field(&c.Log),
	}
}

func (s *ServerConfig) Rules() []*rules.FieldRules {
	return []*rules.FieldRules{
		rules.Field(&s.Address, rules.Required),
		rules.Field(&s.EndpointPrefix, rules.NewStringRule(isPathPrefix, "must start with / and not end with /")),
		rules.Field(&s.RateLimit, rules.Min(0)),
	}
}

func (d *DocsConfig) Rules() []*rules.FieldRules {
	return []*rules.FieldRules{
		rules.Field(&d.XMLPatterns, rules.Unique, rules.Each(rules.Required)),
	}
}

func (v *VersionConfig) Rules() []*rules.FieldRules {
	return []*rules.FieldRules{
		rules.Field(&v.Version, rules.Required, rules.NewStringRule(isVersion, "must be a version such as 1.0 or 2.1-beta")),
	}
}

func (l *LogConfig) Rules() []*rules.FieldRules {
	return []*rules.FieldRules{
		rules.Field(&l.Level, rules.In("trace", "debug", "info", "warn", "warning", "error")),
		rules.Field(&l.Format, rules.In("text", "json")),
	}
}

func isPathPrefix(s string) bool {
	return strings.HasPrefix(s, "/") && (len(s) == 1 || !strings.HasSuffix(s, "/"))
}

func isVersion(s string) bool {
	_, err := apidocs.ParseVersion(s)
	return err == nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return rules.Validate(c)
}

// Provider builds the version provider described by Versions.
func (c *Config) Provider() (*apidocs.StaticProvider, error) {
	descs := make([]apidocs.Description, 0, len(c.Versions))
	for _, vc := range c.Versions {
		v, err := apidocs.ParseVersion(vc.Version)
		if err != nil {
			return nil, err
		}
		d := apidocs.NewDescription(v, vc.Deprecated)
		d.GroupName = lo.CoalesceOrEmpty(vc.GroupName, d.GroupName)
		descs = append(descs, d)
	}
	p, err := apidocs.NewProvider(descs...)
	if err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}
	return p, nil
}
