package timefmt

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

type registryKey struct {
	kind   Kind
	spec   string
	locale string
}

// Registry holds the sequences compiled ahead of time for every known
// (style-or-pattern, locale) pair. It is immutable once built and safe for
// concurrent use without locking.
type Registry struct {
	sequences map[registryKey]Sequence
	locales   []string
}

// BuildRegistry compiles every style of every kind for locales (all
// repository locales when none are given).
func BuildRegistry(repo *Repository, locales ...string) (*Registry, error) {
	if repo == nil {
		return nil, fmt.Errorf("timefmt: registry needs a locale repository")
	}

	targets := normalizeLocales(locales)
	if len(targets) == 0 {
		targets = repo.Locales()
	}

	compiled := make([]map[registryKey]Sequence, len(targets))

	var group errgroup.Group
	for i, id := range targets {
		group.Go(func() error {
			locale, ok := repo.Locale(id)
			if !ok {
				return &CompileError{Locale: id, Reason: "locale is not in the repository", Err: ErrUnknownLocale}
			}
			entries, err := compileLocale(repo, locale)
			if err != nil {
				return err
			}
			compiled[i] = entries
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	registry := &Registry{
		sequences: make(map[registryKey]Sequence),
		locales:   targets,
	}
	for _, entries := range compiled {
		for key, seq := range entries {
			registry.sequences[key] = seq
		}
	}
	return registry, nil
}

// MustBuildRegistry is BuildRegistry that panics: a pattern that fails to
// compile here is a defect in the locale data.
func MustBuildRegistry(repo *Repository, locales ...string) *Registry {
	registry, err := BuildRegistry(repo, locales...)
	if err != nil {
		panic(fmt.Sprintf("timefmt: build static registry: %v", err))
	}
	return registry
}

func compileLocale(repo *Repository, locale *LocaleData) (map[registryKey]Sequence, error) {
	entries := make(map[registryKey]Sequence, len(kinds)*len(Styles)*2)
	ctx := CompileContext{
		Locale:     locale,
		LocaleID:   locale.ID,
		HourCycles: repo.HourCycles(),
	}

	for _, kind := range kinds {
		if !hasPatterns(locale, kind) {
			continue
		}
		for _, style := range Styles {
			pattern, err := stylePattern(locale, kind, style)
			if err != nil {
				return nil, err
			}
			seq, err := Compile(pattern, ctx)
			if err != nil {
				return nil, err
			}
			entries[registryKey{kind: kind, spec: string(style), locale: locale.ID}] = seq
			entries[registryKey{kind: kind, spec: pattern, locale: locale.ID}] = seq
		}
	}
	return entries, nil
}

// hasPatterns reports whether locale defines any style of kind; partial
// locales (time-only overrides, for example) skip the kinds they lack.
func hasPatterns(locale *LocaleData, kind Kind) bool {
	switch kind {
	case KindTime:
		return !locale.TimeFormats.isZero()
	case KindDate:
		return !locale.DateFormats.isZero()
	default:
		return !locale.DateTimeFormats.isZero() && !locale.DateFormats.isZero() && !locale.TimeFormats.isZero()
	}
}

// Lookup returns the precompiled sequence for spec (a style name or an
// exact pattern) in locale.
func (r *Registry) Lookup(kind Kind, spec, locale string) (Sequence, bool) {
	if r == nil {
		return Sequence{}, false
	}
	seq, ok := r.sequences[registryKey{kind: kind, spec: spec, locale: normalizeLocale(locale)}]
	return seq, ok
}

// Locales returns the locales compiled into the registry.
func (r *Registry) Locales() []string {
	if r == nil {
		return nil
	}
	out := append([]string(nil), r.locales...)
	sort.Strings(out)
	return out
}

// Len reports the number of registered keys.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sequences)
}
