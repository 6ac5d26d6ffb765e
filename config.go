package phoneinput

import (
	"fmt"
	"log/slog"
	"strings"
)

// LocalFallback selects the country assumed for numbers typed without a
// dial code.
type LocalFallback string

const (
	// LocalFallbackSelected uses the currently selected country, else the initial one.
	LocalFallbackSelected LocalFallback = "selected"
	// LocalFallbackInitial always uses the initial country.
	LocalFallbackInitial LocalFallback = "initial"
)

// ParseLocalFallback maps "selected" or "initial" to a LocalFallback.
// An empty string selects LocalFallbackSelected.
func ParseLocalFallback(value string) (LocalFallback, error) {
	switch LocalFallback(strings.ToLower(strings.TrimSpace(value))) {
	case "", LocalFallbackSelected:
		return LocalFallbackSelected, nil
	case LocalFallbackInitial:
		return LocalFallbackInitial, nil
	default:
		return "", fmt.Errorf("phoneinput: unknown local fallback %q", value)
	}
}

const defaultInitialCountry = "US"

// Config captures controller setup
type Config struct {
	InitialCountry   string
	InitialLocale    string
	Value            string
	DismissKeyboard  bool
	DismissPolicy    DismissPolicy
	Dismisser        Dismisser
	Directory        *Directory
	NumberingPlan    NumberingPlan
	NewFormatter     func() DisplayFormatter
	Listeners        []ChangeListener
	Logger           *slog.Logger
	LocalFallback    LocalFallback
	RegionRefinement bool

	formatterOptions []FormatterOption
	initial          CountryRecord
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		DismissKeyboard: true,
		DismissPolicy:   DismissOnTransition,
		LocalFallback:   LocalFallbackSelected,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Directory == nil {
		directory, err := DefaultDirectory()
		if err != nil {
			return nil, err
		}
		cfg.Directory = directory
	}

	if cfg.NumberingPlan == nil {
		cfg.NumberingPlan = LibPhoneNumberPlan{}
	}

	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}

	if cfg.NewFormatter == nil {
		formatterOptions := cfg.formatterOptions
		cfg.NewFormatter = func() DisplayFormatter {
			return NewAsYouTypeFormatter(formatterOptions...)
		}
	}

	if err := cfg.resolveInitialCountry(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithInitialCountry sets the country selected before any input. Defaults to US.
func WithInitialCountry(code string) Option {
	return func(c *Config) error {
		c.InitialCountry = code
		return nil
	}
}

// WithInitialLocale derives the initial country from a BCP 47 locale such as
// "en-GB" when no initial country is set.
func WithInitialLocale(locale string) Option {
	return func(c *Config) error {
		c.InitialLocale = locale
		return nil
	}
}

// WithValue sets text processed once when the controller is created.
func WithValue(value string) Option {
	return func(c *Config) error {
		c.Value = value
		return nil
	}
}

// WithDismissKeyboard toggles the dismiss side effect on valid input. Defaults to true.
func WithDismissKeyboard(enabled bool) Option {
	return func(c *Config) error {
		c.DismissKeyboard = enabled
		return nil
	}
}

// WithDismissPolicy chooses when the dismisser fires. Defaults to DismissOnTransition.
func WithDismissPolicy(policy DismissPolicy) Option {
	return func(c *Config) error {
		if policy != DismissOnTransition && policy != DismissOnEveryValid {
			return fmt.Errorf("phoneinput: unknown dismiss policy %q", policy)
		}
		c.DismissPolicy = policy
		return nil
	}
}

// WithDismisser sets the side effect run when valid input should close the keyboard.
func WithDismisser(dismisser Dismisser) Option {
	return func(c *Config) error {
		c.Dismisser = dismisser
		return nil
	}
}

// WithDirectory replaces the embedded default country directory.
func WithDirectory(directory *Directory) Option {
	return func(c *Config) error {
		c.Directory = directory
		return nil
	}
}

// WithNumberingPlan replaces the libphonenumber-backed validator.
func WithNumberingPlan(plan NumberingPlan) Option {
	return func(c *Config) error {
		c.NumberingPlan = plan
		return nil
	}
}

// WithFormatter sets the factory used to build a fresh formatter on every
// country change.
func WithFormatter(factory func() DisplayFormatter) Option {
	return func(c *Config) error {
		c.NewFormatter = factory
		return nil
	}
}

// WithFormatterOptions configures the default AsYouTypeFormatter. Ignored
// when WithFormatter supplies a factory.
func WithFormatterOptions(opts ...FormatterOption) Option {
	return func(c *Config) error {
		c.formatterOptions = append(c.formatterOptions, opts...)
		return nil
	}
}

// WithListeners registers change listeners, notified in order.
func WithListeners(listeners ...ChangeListener) Option {
	return func(c *Config) error {
		c.Listeners = append(c.Listeners, listeners...)
		return nil
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithLocalFallback chooses the country used for numbers typed without a dial code.
func WithLocalFallback(fallback LocalFallback) Option {
	return func(c *Config) error {
		if fallback != LocalFallbackSelected && fallback != LocalFallbackInitial {
			return fmt.Errorf("phoneinput: unknown local fallback %q", fallback)
		}
		c.LocalFallback = fallback
		return nil
	}
}

// WithRegionRefinement lets the numbering plan move an inferred country to
// another directory country sharing its dial code, e.g. "+1 604" to CA.
func WithRegionRefinement(enabled bool) Option {
	return func(c *Config) error {
		c.RegionRefinement = enabled
		return nil
	}
}

// Initial returns the resolved initial country record.
func (cfg *Config) Initial() CountryRecord {
	return cfg.initial
}

// BuildController creates a controller and processes the configured value.
func (cfg *Config) BuildController() (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("phoneinput: nil config")
	}
	return newController(cfg), nil
}

func (cfg *Config) resolveInitialCountry() error {
	code := strings.TrimSpace(cfg.InitialCountry)
	if code == "" {
		code = regionFromLocale(cfg.InitialLocale)
	}
	if code == "" {
		code = defaultInitialCountry
	}

	record, ok := cfg.Directory.ByCountryCode(code)
	if !ok {
		return fmt.Errorf("%w: initial country %q", ErrUnknownCountry, code)
	}

	cfg.InitialCountry = record.CountryCode
	cfg.initial = record
	return nil
}

func (cfg *Config) emitterOptions() []EmitterOption {
	opts := []EmitterOption{
		WithEmitterListeners(cfg.Listeners...),
		WithEmitterLogger(cfg.Logger),
	}
	if cfg.DismissKeyboard && cfg.Dismisser != nil {
		opts = append(opts, WithEmitterDismisser(cfg.Dismisser, cfg.DismissPolicy))
	}
	return opts
}
