package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override configuration.
const EnvPrefix = "APP_"

// Option configures Load.
type Option func(*loader)

type loader struct {
	dir string
}

// WithConfigDir reads the YAML files from dir instead of ./configs.
func WithConfigDir(dir string) Option {
	return func(l *loader) { l.dir = dir }
}

// Load builds the configuration for profile. Later layers win:
//
//	built-in defaults
//	{dir}/base.yaml
//	{dir}/{profile}.yaml
//	APP_* environment variables
//
// Environment names are matched against the keys already known, so
// APP_SYNC_DETECT_INTERVAL sets sync.detect_interval and
// APP_CLIENT_RETRY_MAX_ATTEMPTS sets client.retry.max_attempts. Unknown
// names fall back to one level per underscore. The result is validated
// before it is returned.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}

	l := loader{dir: "configs"}
	for _, opt := range opts {
		opt(&l)
	}

	k := koanf.New(".")
	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	for _, name := range []string{"base", profile} {
		path := filepath.Join(l.dir, name+".yaml")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyMapper(k.Keys()),
	}), nil); err != nil {
		return nil, fmt.Errorf("loading %s* environment: %w", EnvPrefix, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", profile, err)
	}
	return &cfg, nil
}

// envKeyMapper turns APP_LOG_MAX_SIZE_MB into log.max_size_mb for every
// key in known.
func envKeyMapper(known []string) func(string, string) (string, any) {
	byEnv := make(map[string]string, len(known))
	for _, key := range known {
		byEnv[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(name, value string) (string, any) {
		name = strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if key, ok := byEnv[name]; ok {
			return key, value
		}
		return strings.ReplaceAll(name, "_", "."), value
	}
}

// checkProfile rejects profile names that would escape the config dir.
func checkProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("profile %q must be a bare file name", profile)
	}
	return nil
}
