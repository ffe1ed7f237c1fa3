// Package config loads settings from defaults, an optional config file, a
// .env file, EVENTQR_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/arran4/event-barcodes/internal/domain"
	"github.com/arran4/event-barcodes/internal/encoder"
	"github.com/arran4/event-barcodes/internal/logging"
	"github.com/arran4/event-barcodes/internal/render"
)

// EnvPrefix is prepended to every environment variable, e.g. EVENTQR_APP_URL.
const EnvPrefix = "EVENTQR"

type Config struct {
	AppURL   string         `mapstructure:"app_url"`
	LogoDir  string         `mapstructure:"logo_dir"`
	Encoder  string         `mapstructure:"encoder"`
	Log      logging.Config `mapstructure:"log"`
	Sheet    SheetConfig    `mapstructure:"sheet"`
	Profiles ProfilesConfig `mapstructure:"profiles"`
}

type ProfilesConfig struct {
	Events   Profile `mapstructure:"events"`
	Students Profile `mapstructure:"students"`
}

// Profile holds the per-kind output settings.
type Profile struct {
	OutputDir     string        `mapstructure:"output_dir"`
	Level         string        `mapstructure:"level"`
	Size          int           `mapstructure:"size"`
	ModulePixels  int           `mapstructure:"module_pixels"`
	BorderModules int           `mapstructure:"border_modules"`
	RoundMarkers  bool          `mapstructure:"round_markers"`
	MarkerRadius  float64       `mapstructure:"marker_radius"`
	CornerRadius  float64       `mapstructure:"corner_radius"`
	LogoScale     float64       `mapstructure:"logo_scale"`
	DefaultLogo   string        `mapstructure:"default_logo"`
	Caption       CaptionConfig `mapstructure:"caption"`
}

type CaptionConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	Height            int     `mapstructure:"height"`
	FontSize          float64 `mapstructure:"font_size"`
	SecondaryFontSize float64 `mapstructure:"secondary_font_size"`
	Heavy             bool    `mapstructure:"heavy"`
}

type SheetConfig struct {
	Columns     int    `mapstructure:"columns"`
	RowsPerPage int    `mapstructure:"rows_per_page"`
	Title       string `mapstructure:"title"`
	Footer      bool   `mapstructure:"footer"`
}

// Options says where Load looks besides the defaults.
type Options struct {
	ConfigFile string         // optional; any format viper reads
	EnvFile    string         // optional; missing file is ignored
	Flags      *pflag.FlagSet // optional; only flags listed in FlagKeys are bound
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"app-url":    "app_url",
	"logo-dir":   "logo_dir",
	"encoder":    "encoder",
	"log-level":  "log.level",
	"log-format": "log.format",
	"title":      "sheet.title",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_url", "https://apexgne.vercel.app/")
	v.SetDefault("logo_dir", "logos")
	v.SetDefault("encoder", encoder.Default)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("sheet.columns", 4)
	v.SetDefault("sheet.rows_per_page", 5)
	v.SetDefault("sheet.title", "")
	v.SetDefault("sheet.footer", true)

	// Plain event codes.
	v.SetDefault("profiles.events.output_dir", "qr_codes")
	v.SetDefault("profiles.events.level", "L")
	v.SetDefault("profiles.events.size", 0)
	v.SetDefault("profiles.events.module_pixels", 10)
	v.SetDefault("profiles.events.border_modules", 4)
	v.SetDefault("profiles.events.round_markers", false)
	v.SetDefault("profiles.events.marker_radius", 0.3)
	v.SetDefault("profiles.events.corner_radius", 0)
	v.SetDefault("profiles.events.logo_scale", 0.22)
	v.SetDefault("profiles.events.default_logo", "")
	v.SetDefault("profiles.events.caption.enabled", false)
	v.SetDefault("profiles.events.caption.height", 80)
	v.SetDefault("profiles.events.caption.font_size", 28)
	v.SetDefault("profiles.events.caption.secondary_font_size", 20)
	v.SetDefault("profiles.events.caption.heavy", false)

	// Decorated student codes.
	v.SetDefault("profiles.students.output_dir", "student_qr_codes")
	v.SetDefault("profiles.students.level", "H")
	v.SetDefault("profiles.students.size", 1000)
	v.SetDefault("profiles.students.module_pixels", 10)
	v.SetDefault("profiles.students.border_modules", 4)
	v.SetDefault("profiles.students.round_markers", true)
	v.SetDefault("profiles.students.marker_radius", 0.3)
	v.SetDefault("profiles.students.corner_radius", 50)
	v.SetDefault("profiles.students.logo_scale", 0.22)
	v.SetDefault("profiles.students.default_logo", "")
	v.SetDefault("profiles.students.caption.enabled", true)
	v.SetDefault("profiles.students.caption.height", 120)
	v.SetDefault("profiles.students.caption.font_size", 48)
	v.SetDefault("profiles.students.caption.secondary_font_size", 32)
	v.SetDefault("profiles.students.caption.heavy", true)
}

// Load builds a validated Config.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, configError("load_env", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, configError("read", opts.ConfigFile, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, configError("bind_flag", "", err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configError("unmarshal", opts.ConfigFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every value a run depends on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.AppURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return configError("validate", "", fmt.Errorf("app_url %q must be an absolute URL", c.AppURL))
	}
	if _, err := encoder.New(c.Encoder); err != nil {
		return err
	}
	if c.Sheet.Columns < 1 || c.Sheet.RowsPerPage < 1 {
		return configError("validate", "", fmt.Errorf("sheet columns and rows_per_page must be positive"))
	}

	for _, kind := range domain.Kinds {
		p := c.Profile(kind)
		if strings.TrimSpace(p.OutputDir) == "" {
			return configError("validate", "", fmt.Errorf("profiles.%s.output_dir is required", kind))
		}
		if _, err := p.ErrorLevel(); err != nil {
			return fmt.Errorf("profiles.%s: %w", kind, err)
		}
		if err := p.Style().Validate(); err != nil {
			return fmt.Errorf("profiles.%s: %w", kind, err)
		}
	}
	return nil
}

// Profile returns the settings for kind.
func (c *Config) Profile(kind domain.Kind) Profile {
	if kind == domain.KindStudents {
		return c.Profiles.Students
	}
	return c.Profiles.Events
}

// SetProfile replaces the settings for kind.
func (c *Config) SetProfile(kind domain.Kind, p Profile) {
	if kind == domain.KindStudents {
		c.Profiles.Students = p
		return
	}
	c.Profiles.Events = p
}

// ErrorLevel parses the configured error correction level.
func (p Profile) ErrorLevel() (encoder.Level, error) {
	return encoder.ParseLevel(p.Level)
}

// Style converts the profile to a render style.
func (p Profile) Style() render.Style {
	return render.Style{
		Size:          p.Size,
		ModulePixels:  p.ModulePixels,
		BorderModules: p.BorderModules,
		RoundMarkers:  p.RoundMarkers,
		MarkerRadius:  p.MarkerRadius,
		CornerRadius:  p.CornerRadius,
		LogoScale:     p.LogoScale,
		Caption: render.CaptionStyle{
			Enabled:           p.Caption.Enabled,
			Height:            p.Caption.Height,
			FontSize:          p.Caption.FontSize,
			SecondaryFontSize: p.Caption.SecondaryFontSize,
			Heavy:             p.Caption.Heavy,
		},
	}
}

func configError(op, path string, err error) error {
	return &domain.OpError{
		Op:   "config." + op,
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}
