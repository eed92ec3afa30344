package timefmt

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Transliterator rewrites the ASCII digits of formatted text into a
// locale's number system.
type Transliterator interface {
	Transliterate(text, locale, numberSystem string) (string, error)
}

// TransliteratorFunc adapts a function to Transliterator.
type TransliteratorFunc func(text, locale, numberSystem string) (string, error)

func (fn TransliteratorFunc) Transliterate(text, locale, numberSystem string) (string, error) {
	if fn == nil {
		return text, nil
	}
	return fn(text, locale, numberSystem)
}

// knownNumberSystems lists the CLDR numeric systems with decimal digits.
var knownNumberSystems = map[string]struct{}{
	"arab": {}, "arabext": {}, "beng": {}, "deva": {}, "fullwide": {},
	"gujr": {}, "guru": {}, "hanidec": {}, "khmr": {}, "knda": {},
	"laoo": {}, "mlym": {}, "mymr": {}, "orya": {}, "tamldec": {},
	"telu": {}, "thai": {}, "tibt": {},
}

func isLatinNumberSystem(numberSystem string) bool {
	switch numberSystem {
	case "", "default", "latn":
		return true
	}
	return false
}

// XTextTransliterator derives native digits from golang.org/x/text number
// printers. Digit tables are built once per locale and number system.
type XTextTransliterator struct {
	mu     sync.RWMutex
	digits map[string][10]string
}

// NewXTextTransliterator creates the default transliterator.
func NewXTextTransliterator() *XTextTransliterator {
	return &XTextTransliterator{digits: make(map[string][10]string)}
}

func (t *XTextTransliterator) Transliterate(text, locale, numberSystem string) (string, error) {
	numberSystem = strings.ToLower(strings.TrimSpace(numberSystem))
	if isLatinNumberSystem(numberSystem) {
		return text, nil
	}
	if _, ok := knownNumberSystems[numberSystem]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNumberSystem, numberSystem)
	}

	table, err := t.table(locale, numberSystem)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteString(table[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func (t *XTextTransliterator) table(locale, numberSystem string) ([10]string, error) {
	key := locale + "/" + numberSystem

	t.mu.RLock()
	table, ok := t.digits[key]
	t.mu.RUnlock()
	if ok {
		return table, nil
	}

	base, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		base = language.Und
	}
	tag, err := base.SetTypeForKey("nu", numberSystem)
	if err != nil {
		return table, fmt.Errorf("%w: %q: %v", ErrUnknownNumberSystem, numberSystem, err)
	}

	printer := message.NewPrinter(tag)
	for d := 0; d < 10; d++ {
		rendered := printer.Sprintf("%v", number.Decimal(d))
		if utf8.RuneCountInString(rendered) != 1 {
			rendered = string(rune('0' + d))
		}
		table[d] = rendered
	}

	t.mu.Lock()
	if t.digits == nil {
		t.digits = make(map[string][10]string)
	}
	t.digits[key] = table
	t.mu.Unlock()

	return table, nil
}

// numberSystemFor picks the explicit number system, else the locale's -u-nu- value.
func numberSystemFor(locale, explicit string) string {
	if explicit != "" {
		return explicit
	}
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return ""
	}
	return tag.TypeForKey("nu")
}
