// Package config loads and validates the process configuration.
// Values come from a config.yaml file overlaid with environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres" validate:"required"`

	// Session holds the shared secret used to sign and verify the
	// session cookie. Issuer and verifier must see the same value, so it
	// is read here once and injected into both.
	Session SessionConfig `json:"session" yaml:"session"`

	Auth0 Auth0Config `json:"auth0" yaml:"auth0"`

	Strava StravaConfig `json:"strava" yaml:"strava"`
}

// SessionConfig configures the signed session credential.
type SessionConfig struct {
	Secret string `json:"secret" yaml:"secret" validate:"required"`
}

// Auth0Config configures the identity provider used for site-owner login.
type Auth0Config struct {
	Domain       string `json:"domain" yaml:"domain" validate:"required"`
	ClientID     string `json:"clientId" yaml:"clientId" validate:"required"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret" validate:"required"`
	// BaseURL is the public origin of this deployment, used to build
	// redirect and return URLs.
	BaseURL string `json:"baseUrl" yaml:"baseUrl" validate:"required,url"`
}

// StravaConfig configures the fitness-data provider.
type StravaConfig struct {
	ClientID     string `json:"clientId" yaml:"clientId" validate:"required"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret" validate:"required"`
	// PerPage bounds the activity listing page size. Defaults to 10.
	PerPage int `json:"perPage" yaml:"perPage"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

const defaultActivityPerPage = 10

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: AUTH0_CLIENTID -> auth0.clientId (not auth0.clientid)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the configuration and fails fast on missing required values.
// Every credential the auth core depends on must be present at startup;
// a deployment with a missing secret must not come up half-working.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Strava.PerPage <= 0 {
		cfg.Strava.PerPage = defaultActivityPerPage
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (string, map[string]any, bool) {
	if current == nil {
		return "", nil, false
	}

	for key, value := range current {
		if strings.EqualFold(key, segment) {
			next, _ := value.(map[string]any)

			return key, next, true
		}
	}

	return "", nil, false
}
