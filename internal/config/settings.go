package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
)

// EnvPrefix namespaces environment overrides, e.g. TOKENKIT_CSS_PREFIX.
const EnvPrefix = "TOKENKIT"

// Settings holds the tool configuration resolved from flags, environment,
// settings file and defaults, in that order of precedence.
type Settings struct {
	Tokens  string          `mapstructure:"tokens" validate:"required"`
	Theme   string          `mapstructure:"theme" validate:"omitempty,theme_name"`
	CSS     CSSSettings     `mapstructure:"css"`
	Resolve ResolveSettings `mapstructure:"resolve"`
	Log     LogSettings     `mapstructure:"log"`
}

// CSSSettings configures stylesheet generation.
type CSSSettings struct {
	Prefix       string `mapstructure:"prefix" validate:"omitempty,css_ident"`
	Selector     string `mapstructure:"selector" validate:"required,selector_format"`
	DefaultTheme string `mapstructure:"default_theme" validate:"omitempty,theme_name"`
}

// ResolveSettings maps onto tokens.Options.
type ResolveSettings struct {
	ScopedLookup bool `mapstructure:"scoped_lookup"`
	Strict       bool `mapstructure:"strict"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// ResolverOptions converts the resolve settings into resolver options.
func (s *Settings) ResolverOptions() tokens.Options {
	return tokens.Options{
		ScopedLookup: s.Resolve.ScopedLookup,
		Strict:       s.Resolve.Strict,
	}
}

// SettingsOptions controls where LoadSettings looks.
type SettingsOptions struct {
	// ConfigFile is an explicit settings file. It must exist when set.
	ConfigFile string
	// Flags are bound by name to settings keys (see FlagBindings).
	Flags *pflag.FlagSet
}

// FlagBindings maps settings keys to the CLI flags that override them.
var FlagBindings = map[string]string{
	"tokens":                "tokens",
	"theme":                 "theme",
	"css.prefix":            "prefix",
	"css.default_theme":     "default-theme",
	"resolve.scoped_lookup": "scoped-lookup",
	"resolve.strict":        "strict",
	"log.format":            "log-format",
}

// DefaultSettingsPath returns the user-level settings file location.
func DefaultSettingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tokenkit", "config.yaml"), nil
}

// LoadSettings resolves and validates settings.
func LoadSettings(opts SettingsOptions) (*Settings, error) {
	v := viper.New()

	v.SetDefault("tokens", "tokens.json")
	v.SetDefault("theme", "light")
	v.SetDefault("css.prefix", "")
	v.SetDefault("css.selector", tokens.DefaultSelectorFormat)
	v.SetDefault("css.default_theme", "light")
	v.SetDefault("resolve.scoped_lookup", false)
	v.SetDefault("resolve.strict", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range FlagBindings {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := readSettingsFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	settings.Tokens = ExpandHome(settings.Tokens)

	if err := ValidateSettings(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func readSettingsFile(v *viper.Viper, explicit string) error {
	path := explicit
	if path == "" {
		defaultPath, err := DefaultSettingsPath()
		if err != nil {
			return nil
		}
		path = defaultPath
	}

	v.SetConfigFile(ExpandHome(path))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if missing && explicit == "" {
			return nil
		}
		return fmt.Errorf("reading settings %s: %w", path, err)
	}
	return nil
}

// ValidateSettings checks settings against their validation rules.
func ValidateSettings(settings *Settings) error {
	if err := validatorInstance().Struct(settings); err != nil {
		return convertValidationError(err, "settings")
	}
	return nil
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
