// Package config loads ankisocial settings from defaults, an optional YAML
// file, ANKISOCIAL_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/conorfennell/ankisocial/internal/score"
)

// EnvPrefix namespaces environment overrides, e.g. ANKISOCIAL_MASTODON_TOKEN.
const EnvPrefix = "ANKISOCIAL_"

// Score kinds.
const (
	KindReviews       = "reviews"
	KindCards         = "cards"
	KindMinutes       = "minutes"
	KindHours         = "hours"
	KindDays          = "days"
	KindCurrentStreak = "current_streak"
	KindBestStreak    = "best_streak"
)

// Config is the full runtime configuration.
type Config struct {
	// DB is the collection path. Empty means search the usual locations.
	DB string `koanf:"db"`
	// Marker is the last-run marker file. Empty means the default location.
	Marker   string          `koanf:"marker"`
	Days     int             `koanf:"days" validate:"min=1,max=365"`
	Verbose  bool            `koanf:"verbose"`
	Mastodon Mastodon        `koanf:"mastodon"`
	Scores   []ScoreSettings `koanf:"scores" validate:"required,min=1,dive"`
}

// Mastodon holds the optional posting credentials.
type Mastodon struct {
	URL   string `koanf:"url" validate:"omitempty,url"`
	Token string `koanf:"token"`
}

// Enabled reports whether both posting settings are present.
func (m Mastodon) Enabled() bool {
	return m.URL != "" && m.Token != ""
}

// ScoreSettings describes one score and its ladder.
type ScoreSettings struct {
	Name        string  `koanf:"name" validate:"required"`
	Kind        string  `koanf:"kind" validate:"required,oneof=reviews cards minutes hours days current_streak best_streak"`
	Description string  `koanf:"description" validate:"required,contains=%d"`
	Ladder      []int64 `koanf:"ladder" validate:"required,ascending"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Days: 15,
		Scores: []ScoreSettings{
			{
				Name:        "reviews",
				Kind:        KindReviews,
				Description: "reviewed %d cards",
				Ladder:      []int64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
			},
			{
				Name:        "cards",
				Kind:        KindCards,
				Description: "created %d cards",
				Ladder:      []int64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
			},
			{
				Name:        "hours",
				Kind:        KindHours,
				Description: "spent %d hours reviewing cards",
				Ladder:      []int64{1, 3, 10, 24, 50, 100, 250, 500, 1000},
			},
			{
				Name:        "streak",
				Kind:        KindCurrentStreak,
				Description: "%d-day streak",
				Ladder:      []int64{3, 7, 14, 30, 50, 75, 100, 125, 180, 250, 365, 500, 730, 1000},
			},
			{
				Name:        "best streak",
				Kind:        KindBestStreak,
				Description: "%d-day streak",
				Ladder:      []int64{3, 7, 14, 30, 50, 75, 100, 125, 180, 250, 365, 500, 730, 1000},
			},
		},
	}
}

// Flags returns the command-line flag set understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "Path to a YAML config file")
	fs.String("db", "", "Path to collection.anki2 (searched for when empty)")
	fs.String("marker", "", "Path to the last-run marker file")
	fs.Int("days", 15, "Number of days of daily review counts to print, today included")
	fs.BoolP("verbose", "v", false, "Enable debug logging")
	fs.String("mastodon.url", "", "Mastodon instance base URL")
	return fs
}

// Load builds the configuration. fs must already be parsed.
func Load(fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path, _ := fs.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load flags: %w", err)
	}

	cfg := Default()
	if k.Exists("scores") {
		// A configured list replaces the defaults instead of merging into them.
		cfg.Scores = nil
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps ANKISOCIAL_MASTODON_TOKEN to mastodon.token.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("ascending", func(fl validator.FieldLevel) bool {
		ladder, ok := fl.Field().Interface().([]int64)
		return ok && score.Ladder(ladder).Valid()
	})
	return v
}

// Validate checks cfg and reports every failing field.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
