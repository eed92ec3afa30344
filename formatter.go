package timefmt

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLocale is used when neither the call nor the formatter names one.
const DefaultLocale = "en"

// Config captures formatter setup.
type Config struct {
	Repository     *Repository
	DefaultLocale  string
	StaticLocales  []string
	Transliterator Transliterator
	Logger         *slog.Logger

	dataPath  string
	overrides map[string]string
}

// Option mutates Config during construction.
type Option func(*Config) error

// WithRepository supplies a prebuilt locale repository. File options are
// ignored when a repository is set.
func WithRepository(repo *Repository) Option {
	return func(c *Config) error {
		if repo == nil {
			return fmt.Errorf("timefmt: nil repository")
		}
		c.Repository = repo
		return nil
	}
}

// WithRepositoryFile merges a JSON, YAML or TOML repository file over the
// embedded locale data.
func WithRepositoryFile(path string) Option {
	return func(c *Config) error {
		c.dataPath = path
		return nil
	}
}

// WithLocaleOverride merges a single-locale data file over locale.
func WithLocaleOverride(locale, path string) Option {
	return func(c *Config) error {
		if locale == "" || path == "" {
			return nil
		}
		if c.overrides == nil {
			c.overrides = make(map[string]string)
		}
		c.overrides[locale] = path
		return nil
	}
}

func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = normalizeLocale(locale)
		return nil
	}
}

// WithStaticLocales limits the precompiled registry to locales.
func WithStaticLocales(locales ...string) Option {
	return func(c *Config) error {
		c.StaticLocales = normalizeLocales(append(c.StaticLocales, locales...))
		return nil
	}
}

func WithTransliterator(t Transliterator) Option {
	return func(c *Config) error {
		c.Transliterator = t
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// Formatter renders values with a locale repository and a precompiled
// registry. It is safe for concurrent use.
type Formatter struct {
	repo           *Repository
	registry       *Registry
	defaultLocale  string
	transliterator Transliterator
	logger         *slog.Logger
}

// New builds a formatter. Every static pattern is compiled here, so a
// defect in the locale data fails construction.
func New(opts ...Option) (*Formatter, error) {
	cfg := &Config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = DefaultLocale
	}
	if cfg.Transliterator == nil {
		cfg.Transliterator = NewXTextTransliterator()
	}

	if cfg.Repository == nil {
		loader := NewRepositoryLoader(cfg.dataPath)
		for locale, path := range cfg.overrides {
			loader.AddOverride(locale, path)
		}
		repo, err := loader.Load()
		if err != nil {
			return nil, err
		}
		cfg.Repository = repo
	}

	registry, err := BuildRegistry(cfg.Repository, cfg.StaticLocales...)
	if err != nil {
		return nil, fmt.Errorf("timefmt: build static registry: %w", err)
	}
	cfg.Logger.Debug("static registry built",
		slog.Int("sequences", registry.Len()),
		slog.Any("locales", registry.Locales()))

	return &Formatter{
		repo:           cfg.Repository,
		registry:       registry,
		defaultLocale:  cfg.DefaultLocale,
		transliterator: cfg.Transliterator,
		logger:         cfg.Logger,
	}, nil
}

// FormatOption adjusts a single format call.
type FormatOption func(*formatOptions)

type formatOptions struct {
	locale        string
	style         Style
	pattern       string
	numberSystem  string
	eraVariant    bool
	periodVariant bool
}

func WithLocale(locale string) FormatOption {
	return func(o *formatOptions) {
		o.locale = locale
	}
}

// WithStyle selects a named style (short, medium, long or full).
func WithStyle(style Style) FormatOption {
	return func(o *formatOptions) {
		o.style = style
	}
}

// WithPattern formats with an explicit pattern instead of a style.
func WithPattern(pattern string) FormatOption {
	return func(o *formatOptions) {
		o.pattern = pattern
	}
}

// WithFormat accepts either a style name or a literal pattern.
func WithFormat(spec string) FormatOption {
	if Style(spec).Valid() {
		return WithStyle(Style(spec))
	}
	return WithPattern(spec)
}

// WithNumberSystem transliterates digits into a CLDR numbering system
// such as "arab" or "deva".
func WithNumberSystem(numberSystem string) FormatOption {
	return func(o *formatOptions) {
		o.numberSystem = numberSystem
	}
}

func WithEraVariant() FormatOption {
	return func(o *formatOptions) {
		o.eraVariant = true
	}
}

func WithPeriodVariant() FormatOption {
	return func(o *formatOptions) {
		o.periodVariant = true
	}
}

func (f *Formatter) FormatTime(v Value, opts ...FormatOption) (string, error) {
	return f.Format(KindTime, v, opts...)
}

func (f *Formatter) FormatDate(v Value, opts ...FormatOption) (string, error) {
	return f.Format(KindDate, v, opts...)
}

func (f *Formatter) FormatDateTime(v Value, opts ...FormatOption) (string, error) {
	return f.Format(KindDateTime, v, opts...)
}

// Format validates v, compiles or looks up the pattern, executes it and
// transliterates the result.
func (f *Formatter) Format(kind Kind, v Value, opts ...FormatOption) (string, error) {
	options := formatOptions{style: StyleMedium}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.locale == "" {
		options.locale = f.defaultLocale
	}
	localeID := normalizeLocale(options.locale)

	if err := v.validate(kind.requiredFields()); err != nil {
		return "", err
	}

	locale, ok := f.repo.Resolve(localeID)
	if !ok {
		return "", &CompileError{Pattern: options.pattern, Locale: localeID, Reason: "no locale data", Err: ErrUnknownLocale}
	}

	seq, err := f.sequence(kind, locale, localeID, calendarFor(v, localeID), options)
	if err != nil {
		return "", err
	}

	text, err := Aggregate(seq.Execute(v, locale, ExecOptions{
		EraVariant:    options.eraVariant,
		PeriodVariant: options.periodVariant,
	}))
	if err != nil {
		f.logger.Debug("format failed",
			slog.String("pattern", seq.Pattern()),
			slog.String("locale", localeID),
			slog.String("error", err.Error()))
		return "", err
	}

	numberSystem := numberSystemFor(localeID, options.numberSystem)
	if isLatinNumberSystem(numberSystem) {
		return text, nil
	}
	return f.transliterator.Transliterate(text, localeID, numberSystem)
}

func (f *Formatter) sequence(kind Kind, locale *LocaleData, localeID, calendar string, options formatOptions) (Sequence, error) {
	spec := options.pattern
	if spec == "" {
		if !options.style.Valid() {
			_, err := stylePattern(locale, kind, options.style)
			return Sequence{}, err
		}
		spec = string(options.style)
	}

	if f.static(locale, localeID, calendar) {
		if seq, ok := f.registry.Lookup(kind, spec, locale.ID); ok {
			return seq, nil
		}
	}

	pattern := options.pattern
	if pattern == "" {
		p, err := stylePattern(locale, kind, options.style)
		if err != nil {
			return Sequence{}, err
		}
		pattern = p
	}

	seq, err := Compile(pattern, CompileContext{
		Locale:     locale,
		LocaleID:   localeID,
		Calendar:   calendar,
		HourCycles: f.repo.HourCycles(),
	})
	if err != nil {
		return Sequence{}, err
	}
	f.logger.Debug("compiled pattern",
		slog.String("pattern", pattern),
		slog.String("locale", localeID),
		slog.String("kind", kind.String()))
	return seq, nil
}

// static reports whether a request may use the precompiled registry:
// gregorian calendar, no hour cycle override and a locale that resolves to
// its own entry.
func (f *Formatter) static(locale *LocaleData, localeID, calendar string) bool {
	if (CompileContext{Calendar: calendar}).calendar() != calendarGregorian {
		return false
	}
	tag, err := language.Parse(localeID)
	if err != nil {
		return false
	}
	if _, ok := hourCycleOverride(tag); ok {
		return false
	}
	return localeWithoutExtensions(tag) == locale.ID
}

// calendarFor prefers the value's calendar over the locale's -u-ca- value.
func calendarFor(v Value, localeID string) string {
	if v.Calendar != "" {
		return v.Calendar
	}
	tag, err := language.Parse(localeID)
	if err != nil {
		return ""
	}
	return tag.TypeForKey("ca")
}

// HourCycle returns the preferred hour cycle for locale.
func (f *Formatter) HourCycle(locale string) HourCycle {
	return f.repo.HourCycles().Resolve(locale)
}

// Repository returns the locale data the formatter was built with.
func (f *Formatter) Repository() *Repository {
	return f.repo
}

var defaultFormatter = sync.OnceValue(func() *Formatter {
	f, err := New()
	if err != nil {
		panic(fmt.Sprintf("timefmt: default formatter: %v", err))
	}
	return f
})

// Default returns the shared formatter built from the embedded locale data.
func Default() *Formatter {
	return defaultFormatter()
}

func FormatTime(v Value, opts ...FormatOption) (string, error) {
	return Default().FormatTime(v, opts...)
}

func FormatDate(v Value, opts ...FormatOption) (string, error) {
	return Default().FormatDate(v, opts...)
}

func FormatDateTime(v Value, opts ...FormatOption) (string, error) {
	return Default().FormatDateTime(v, opts...)
}

// HourFormatFromLocale resolves the preferred hour cycle of locale with
// the embedded preference table.
func HourFormatFromLocale(locale string) HourCycle {
	return Default().HourCycle(locale)
}
