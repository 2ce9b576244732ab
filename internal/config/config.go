// Package config layers defaults, an optional config file, an optional .env
// file, EMAIL_SCRAPER_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yingtu35/email-scraper/internal/export"
	"github.com/yingtu35/email-scraper/internal/logger"
	"github.com/yingtu35/email-scraper/internal/webscraper"
)

const EnvPrefix = "EMAIL_SCRAPER"

// Keys double as flag names.
const (
	KeyInput             = "input"
	KeyWebsiteColumn     = "website-column"
	KeyOutput            = "output"
	KeyFormat            = "format"
	KeySummary           = "summary"
	KeyUserAgent         = "user-agent"
	KeyTimeout           = "timeout"
	KeyDelay             = "delay"
	KeySubpaths          = "subpaths"
	KeySkipTrailingDelay = "skip-trailing-delay"
	KeyLogLevel          = "log-level"
)

const (
	DefaultWebsiteColumn = "website"
	DefaultOutput        = "scraped_emails.csv"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Input             string
	WebsiteColumn     string
	Output            string
	Format            string // csv or json; empty infers from Output
	Summary           string // optional per-site summary CSV
	UserAgent         string
	Timeout           time.Duration
	Delay             time.Duration
	Subpaths          []string
	SkipTrailingDelay bool
	LogLevel          string
}

// RegisterFlags defines every configuration flag on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP(KeyInput, "i", "", "Path to the input CSV file containing website URLs")
	flags.StringP(KeyWebsiteColumn, "c", DefaultWebsiteColumn, "Name of the column in the CSV that holds the website URL")
	flags.StringP(KeyOutput, "o", DefaultOutput, "Filename for the output file")
	flags.String(KeyFormat, "", "Output format: csv or json (default: from the output extension)")
	flags.String(KeySummary, "", "Optional path for a per-website summary CSV")
	flags.String(KeyUserAgent, webscraper.DefaultUserAgent, "User-Agent header sent with every request")
	flags.Duration(KeyTimeout, webscraper.DefaultTimeout, "Timeout for a single request")
	flags.Duration(KeyDelay, webscraper.DefaultPolitenessDelay, "Pause after every request")
	flags.StringSlice(KeySubpaths, webscraper.DefaultSubpaths, "Subpaths tried on every website; an empty entry is the homepage")
	flags.Bool(KeySkipTrailingDelay, false, "Do not pause after the last subpath of a website")
	flags.String(KeyLogLevel, logger.DefaultLevel, "Log level: debug, info, warn or error")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyWebsiteColumn, DefaultWebsiteColumn)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyUserAgent, webscraper.DefaultUserAgent)
	v.SetDefault(KeyTimeout, webscraper.DefaultTimeout)
	v.SetDefault(KeyDelay, webscraper.DefaultPolitenessDelay)
	v.SetDefault(KeySubpaths, webscraper.DefaultSubpaths)
	v.SetDefault(KeyLogLevel, logger.DefaultLevel)
}

// Load resolves the configuration. configFile and envFile are optional; a
// missing envFile is ignored, a missing configFile is an error. flags may be nil.
func Load(v *viper.Viper, flags *pflag.FlagSet, configFile, envFile string) (Config, error) {
	setDefaults(v)

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("error binding flags: %w", err)
		}
	}

	cfg := Config{
		Input:             strings.TrimSpace(v.GetString(KeyInput)),
		WebsiteColumn:     v.GetString(KeyWebsiteColumn),
		Output:            strings.TrimSpace(v.GetString(KeyOutput)),
		Format:            strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		Summary:           strings.TrimSpace(v.GetString(KeySummary)),
		UserAgent:         v.GetString(KeyUserAgent),
		Timeout:           v.GetDuration(KeyTimeout),
		Delay:             v.GetDuration(KeyDelay),
		Subpaths:          stringList(v.Get(KeySubpaths)),
		SkipTrailingDelay: v.GetBool(KeySkipTrailingDelay),
		LogLevel:          v.GetString(KeyLogLevel),
	}
	return cfg, cfg.Validate()
}

// stringList accepts a list or a comma-separated string. Empty entries are
// kept since the empty subpath is the homepage.
func stringList(value any) []string {
	switch val := value.(type) {
	case nil:
		return nil
	case string:
		parts := strings.Split(val, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return cast.ToStringSlice(val)
	}
}

func (c Config) Validate() error {
	switch {
	case c.Input == "":
		return fmt.Errorf("%w: --%s is required", ErrInvalid, KeyInput)
	case strings.TrimSpace(c.WebsiteColumn) == "":
		return fmt.Errorf("%w: --%s must not be empty", ErrInvalid, KeyWebsiteColumn)
	case c.Output == "":
		return fmt.Errorf("%w: --%s must not be empty", ErrInvalid, KeyOutput)
	case c.Format != "" && c.Format != export.FormatCSV && c.Format != export.FormatJSON:
		return fmt.Errorf("%w: %w %q", ErrInvalid, export.ErrUnknownFormat, c.Format)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: --%s must be positive", ErrInvalid, KeyTimeout)
	case c.Delay < 0:
		return fmt.Errorf("%w: --%s must not be negative", ErrInvalid, KeyDelay)
	case len(c.Subpaths) == 0:
		return fmt.Errorf("%w: --%s must list at least one subpath", ErrInvalid, KeySubpaths)
	}
	return nil
}

// ScraperOptions converts the crawl settings for the webscraper package.
func (c Config) ScraperOptions() webscraper.ScraperOptions {
	return webscraper.ScraperOptions{
		Subpaths:          slices.Clone(c.Subpaths),
		UserAgent:         c.UserAgent,
		Timeout:           c.Timeout,
		PolitenessDelay:   c.Delay,
		SkipTrailingDelay: c.SkipTrailingDelay,
	}
}
