package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	timefmt "github.com/goliatone/go-timefmt"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	dataFile  string
	overrides []string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "timefmt",
		Short: "Render localized times and dates from CLDR patterns",
		Long: `timefmt formats times, dates and date-times with CLDR style
names (short, medium, long, full) or explicit patterns such as "h:mm a z".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dataFile, "data", "", "locale data file (json, yaml or toml) merged over the embedded data")
	cmd.PersistentFlags().StringArrayVar(&opts.overrides, "override", nil, "single locale data file as locale=path (repeatable)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(
		newFormatCmd(opts),
		newStylesCmd(opts),
		newHourCycleCmd(opts),
		newTokensCmd(),
	)
	return cmd
}

func (o *rootOptions) formatter(stderr io.Writer) (*timefmt.Formatter, error) {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	options := []timefmt.Option{timefmt.WithLogger(logger)}
	if o.dataFile != "" {
		options = append(options, timefmt.WithRepositoryFile(o.dataFile))
	}
	for _, override := range o.overrides {
		locale, path, found := strings.Cut(override, "=")
		if !found || locale == "" || path == "" {
			return nil, fmt.Errorf("invalid override %q (want locale=path)", override)
		}
		options = append(options, timefmt.WithLocaleOverride(locale, path))
	}
	return timefmt.New(options...)
}

type formatOptions struct {
	kind          string
	locale        string
	style         string
	pattern       string
	at            string
	numberSystem  string
	eraVariant    bool
	periodVariant bool
}

func newFormatCmd(root *rootOptions) *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format a timestamp",
		Example: `  timefmt format --locale fr --style long
  timefmt format --kind datetime --locale en --at 2024-03-09T07:35:13-08:00
  timefmt format --pattern "h:mm a zzzz" --at 2024-03-09T23:59:59Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter, err := root.formatter(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			kind, err := parseKind(opts.kind)
			if err != nil {
				return err
			}

			at := time.Now()
			if opts.at != "" {
				at, err = time.Parse(time.RFC3339Nano, opts.at)
				if err != nil {
					return fmt.Errorf("parse --at: %w", err)
				}
			}

			callOpts := []timefmt.FormatOption{
				timefmt.WithLocale(opts.locale),
				timefmt.WithNumberSystem(opts.numberSystem),
			}
			if opts.pattern != "" {
				callOpts = append(callOpts, timefmt.WithPattern(opts.pattern))
			} else {
				callOpts = append(callOpts, timefmt.WithStyle(timefmt.Style(opts.style)))
			}
			if opts.eraVariant {
				callOpts = append(callOpts, timefmt.WithEraVariant())
			}
			if opts.periodVariant {
				callOpts = append(callOpts, timefmt.WithPeriodVariant())
			}

			text, err := formatter.Format(kind, timefmt.FromTime(at), callOpts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "time", "what to format: time, date or datetime")
	cmd.Flags().StringVarP(&opts.locale, "locale", "l", timefmt.DefaultLocale, "BCP 47 locale, e.g. en-AU or en-u-hc-h23")
	cmd.Flags().StringVarP(&opts.style, "style", "s", string(timefmt.StyleMedium), "style: short, medium, long or full")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "explicit CLDR pattern (overrides --style)")
	cmd.Flags().StringVar(&opts.at, "at", "", "RFC 3339 timestamp (default now)")
	cmd.Flags().StringVar(&opts.numberSystem, "number-system", "", "CLDR numbering system, e.g. arab")
	cmd.Flags().BoolVar(&opts.eraVariant, "era-variant", false, "use alternate era names")
	cmd.Flags().BoolVar(&opts.periodVariant, "period-variant", false, "use alternate day period names")
	return cmd
}

func parseKind(value string) (timefmt.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "time", "":
		return timefmt.KindTime, nil
	case "date":
		return timefmt.KindDate, nil
	case "datetime", "date-time":
		return timefmt.KindDateTime, nil
	}
	return 0, fmt.Errorf("unknown kind %q (want time, date or datetime)", value)
}

func newStylesCmd(root *rootOptions) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the style patterns of a locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter, err := root.formatter(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			data, ok := formatter.Repository().Resolve(locale)
			if !ok {
				return fmt.Errorf("%w: %s", timefmt.ErrUnknownLocale, locale)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", data.ID)
			for _, section := range []struct {
				name     string
				patterns timefmt.StylePatterns
			}{
				{"time", data.TimeFormats},
				{"date", data.DateFormats},
				{"datetime", data.DateTimeFormats},
			} {
				for _, style := range timefmt.Styles {
					fmt.Fprintf(out, "  %-8s %-6s %s\n", section.name, style, section.patterns.Pattern(style))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", timefmt.DefaultLocale, "BCP 47 locale")
	return cmd
}

func newHourCycleCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hour-cycle LOCALE...",
		Short: "Show the preferred hour cycle of locales",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := root.formatter(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			for _, locale := range args {
				cycle := formatter.HourCycle(locale)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%c\n", locale, cycle, cycle.Symbol())
			}
			return nil
		},
	}
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens PATTERN",
		Short: "Show how a pattern is tokenized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := timefmt.Tokenize(args[0])
			if err != nil {
				return err
			}
			for _, token := range tokens {
				if token.IsLiteral() {
					fmt.Fprintf(cmd.OutOrStdout(), "literal\t%q\n", token.Literal)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%c\t%d\n", token.Symbol, token.Count)
			}
			return nil
		},
	}
}
