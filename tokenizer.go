package timefmt

import (
	"strings"
)

// patternAlphabet lists every letter that denotes a date/time field.
// Letters outside it are rejected; other characters are literal text.
const patternAlphabet = "GyYuUrQqMLlwWdDFgEecabBhHKkjJCmsSAzZOvVXx"

// Token is one run of a pattern. Literal tokens have Symbol == 0 and carry
// their text in Literal.
type Token struct {
	Symbol  rune
	Count   int
	Literal string
}

func (t Token) IsLiteral() bool {
	return t.Symbol == 0
}

func (t Token) String() string {
	if t.IsLiteral() {
		return t.Literal
	}
	return strings.Repeat(string(t.Symbol), t.Count)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Tokenize splits pattern into symbol runs and literal text.
func Tokenize(pattern string) ([]Token, error) {
	runes := []rune(pattern)
	tokens := make([]Token, 0, len(runes)/2+1)

	var literal strings.Builder
	flush := func() {
		if literal.Len() == 0 {
			return
		}
		tokens = append(tokens, Token{Literal: literal.String()})
		literal.Reset()
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				literal.WriteRune('\'')
				i += 2
				continue
			}
			end, err := scanQuoted(pattern, runes, i, &literal)
			if err != nil {
				return nil, err
			}
			i = end
		case isASCIILetter(r):
			if !strings.ContainsRune(patternAlphabet, r) {
				return nil, &TokenizeError{
					Pattern: pattern,
					Offset:  i,
					Reason:  "unrecognized symbol " + quoteRune(r),
				}
			}
			j := i + 1
			for j < len(runes) && runes[j] == r {
				j++
			}
			flush()
			tokens = append(tokens, Token{Symbol: r, Count: j - i})
			i = j
		default:
			literal.WriteRune(r)
			i++
		}
	}
	flush()

	return tokens, nil
}

// scanQuoted consumes a quoted section starting at the opening quote and
// returns the index just past the closing quote.
func scanQuoted(pattern string, runes []rune, start int, out *strings.Builder) (int, error) {
	for i := start + 1; i < len(runes); i++ {
		if runes[i] != '\'' {
			out.WriteRune(runes[i])
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '\'' {
			out.WriteRune('\'')
			i++
			continue
		}
		return i + 1, nil
	}
	return 0, &TokenizeError{Pattern: pattern, Offset: start, Reason: "unterminated quoted literal"}
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
