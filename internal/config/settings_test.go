package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	tokenerrors "github.com/alexisbeaulieu97/tokenkit/pkg/errors"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	settings, err := LoadSettings(SettingsOptions{})
	require.NoError(t, err)

	require.Equal(t, "tokens.json", settings.Tokens)
	require.Equal(t, "light", settings.Theme)
	require.Equal(t, `[data-theme="%s"]`, settings.CSS.Selector)
	require.Equal(t, "info", settings.Log.Level)
	require.Equal(t, "console", settings.Log.Format)
	require.False(t, settings.ResolverOptions().Strict)
}

func TestLoadSettingsPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`tokens: design/tokens.yaml
theme: dark
css:
  prefix: ds-
resolve:
  strict: true
log:
  level: debug
`), 0o600))

	t.Setenv("TOKENKIT_THEME", "contrast")
	t.Setenv("TOKENKIT_CSS_PREFIX", "env-")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("prefix", "", "")
	flags.Bool("scoped-lookup", false, "")
	require.NoError(t, flags.Parse([]string{"--prefix", "flag-", "--scoped-lookup"}))

	settings, err := LoadSettings(SettingsOptions{ConfigFile: path, Flags: flags})
	require.NoError(t, err)

	require.Equal(t, "design/tokens.yaml", settings.Tokens, "file overrides default")
	require.Equal(t, "contrast", settings.Theme, "env overrides file")
	require.Equal(t, "flag-", settings.CSS.Prefix, "flag overrides env")
	require.True(t, settings.Resolve.Strict)
	require.True(t, settings.Resolve.ScopedLookup)
	require.Equal(t, "debug", settings.Log.Level)
}

func TestLoadSettingsMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := LoadSettings(SettingsOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading settings")
}

func TestLoadSettingsRejectsInvalidValues(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TOKENKIT_LOG_FORMAT", "xml")

	_, err := LoadSettings(SettingsOptions{})
	var validationErr *tokenerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "settings.log.format", validationErr.Field)
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	valid := func() *Settings {
		return &Settings{
			Tokens: "tokens.json",
			Theme:  "dark",
			CSS:    CSSSettings{Prefix: "ds-", Selector: `.theme-%s`},
			Log:    LogSettings{Level: "info", Format: "json"},
		}
	}

	cases := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{name: "valid", mutate: func(*Settings) {}},
		{name: "tokens required", mutate: func(s *Settings) { s.Tokens = "" }, field: "settings.tokens"},
		{name: "theme name", mutate: func(s *Settings) { s.Theme = "dark mode" }, field: "settings.theme"},
		{name: "prefix identifier", mutate: func(s *Settings) { s.CSS.Prefix = "1ds" }, field: "settings.css.prefix"},
		{name: "selector needs one placeholder", mutate: func(s *Settings) { s.CSS.Selector = ".dark" }, field: "settings.css.selector"},
		{name: "selector rejects extra verbs", mutate: func(s *Settings) { s.CSS.Selector = ".%s-%d" }, field: "settings.css.selector"},
		{name: "log level", mutate: func(s *Settings) { s.Log.Level = "loud" }, field: "settings.log.level"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			settings := valid()
			tc.mutate(settings)
			err := ValidateSettings(settings)
			if tc.field == "" {
				require.NoError(t, err)
				return
			}
			var validationErr *tokenerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, "tokens.json"), ExpandHome("~/tokens.json"))
	require.Equal(t, "tokens.json", ExpandHome("tokens.json"))
}
