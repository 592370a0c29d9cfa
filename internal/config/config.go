package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/errwrap/internal/errors"
	"codeberg.org/mutker/errwrap/internal/hresult"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel  = "warning"
	DefaultHistoryDB = "/var/lib/errwrap/history.db"
	DefaultEnvPrefix = "ERRWRAP"
	defaultConfig    = "/etc/errwrap.toml"
)

type Config struct {
	LogLevel        string
	FallbackHResult int32
	History         bool
	HistoryDB       string
	ShowHistory     int

	// Codes are --code literals, Errors are --error messages and Values
	// are the raw positional arguments. None is read from the config file.
	Codes  []string
	Errors []string
	Values []string
}

func (c *Config) GetLogLevel() string { return c.LogLevel }

func (c *Config) GetFallbackHResult() int32 { return c.FallbackHResult }

func (c *Config) IsHistoryEnabled() bool { return c.History }

func (c *Config) GetHistoryDBPath() string { return c.HistoryDB }

// Load reads configuration from the config file, environment and flags,
// in increasing order of precedence.
func Load(opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{
		envPrefix: DefaultEnvPrefix,
		args:      os.Args[1:],
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("fallback_hresult", hresult.Format(hresult.E_FAIL))
	v.SetDefault("history", false)
	v.SetDefault("history_db", DefaultHistoryDB)
	v.SetDefault("show_history", 0)

	fs := pflag.NewFlagSet("errwrap", pflag.ContinueOnError)
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.String("fallback-hresult", hresult.Format(hresult.E_FAIL), "Code used for errors that carry none")
	fs.Bool("history", false, "Record wrapped codes in the history database")
	fs.String("history-db", DefaultHistoryDB, "Path to the history database")
	fs.Int("show-history", 0, "Print the N most recent history entries")
	codes := fs.StringArray("code", nil, "Wrap a code literal, decimal or 0x hex (repeatable)")
	errs := fs.StringArray("error", nil, "Wrap an error with the given message (repeatable)")

	if err := fs.Parse(o.args); err != nil {
		return nil, errFactory.Wrap(errors.ErrParseFlags, err)
	}

	for flagName, key := range map[string]string{
		"log-level":        "log_level",
		"fallback-hresult": "fallback_hresult",
		"history":          "history",
		"history-db":       "history_db",
		"show-history":     "show_history",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, o); err != nil {
		return nil, err
	}

	fallback, ok := hresult.Parse(v.GetString("fallback_hresult"))
	if !ok {
		return nil, errFactory.WithData(errors.ErrInvalidHResult, v.GetString("fallback_hresult"))
	}

	cfg := &Config{
		LogLevel:        v.GetString("log_level"),
		FallbackHResult: fallback,
		History:         v.GetBool("history"),
		HistoryDB:       v.GetString("history_db"),
		ShowHistory:     v.GetInt("show_history"),
		Codes:           *codes,
		Errors:          *errs,
		Values:          fs.Args(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper, o *options) error {
	errFactory := errors.New()

	path := o.configPath
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	explicit := path != ""
	if !explicit {
		path = defaultConfig
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && !explicit {
			return nil
		}
		return errFactory.Wrap(errors.ErrReadConfig, err)
	}

	return nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if !hresult.Failed(c.FallbackHResult) {
		return errFactory.WithData(errors.ErrInvalidHResult, hresult.Format(c.FallbackHResult))
	}

	if c.History && c.HistoryDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "history enabled without history_db")
	}

	if c.ShowHistory < 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, c.ShowHistory)
	}

	return nil
}
