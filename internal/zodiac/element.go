package zodiac

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Element is one of the five phases. The constant order is the generative
// cycle Wood -> Fire -> Earth -> Metal -> Water -> Wood, so an Element's
// integer value is its cycle position.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

const cycleLen = 5

var elementNames = [cycleLen]string{"Wood", "Fire", "Earth", "Metal", "Water"}

// elementsByDigit maps the last decimal digit of an effective year to its
// element; each element spans two consecutive digits.
var elementsByDigit = [10]Element{
	Metal, Metal,
	Water, Water,
	Wood, Wood,
	Fire, Fire,
	Earth, Earth,
}

// ElementForYear returns the element of an effective year. Negative years
// use a mathematical modulo, so the digit is always 0-9.
func ElementForYear(effectiveYear int) Element {
	return elementsByDigit[mod(effectiveYear, 10)]
}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool {
	return e >= Wood && e <= Water
}

func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// MarshalText encodes the element by name.
func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid element %d", int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText decodes an element name.
func (e *Element) UnmarshalText(text []byte) error {
	parsed, err := ParseElement(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseElement looks an element up by name. Case and accents are ignored,
// so "Água", "agua" and "Water" all resolve to Water.
func ParseElement(name string) (Element, error) {
	key := canonical(name)
	for i, n := range elementNames {
		if strings.ToLower(n) == key {
			return Element(i), nil
		}
	}
	if e, ok := elementAliases[key]; ok {
		return e, nil
	}
	return 0, fmt.Errorf("unknown element %q", name)
}

var elementAliases = map[string]Element{
	"madeira": Wood,
	"fogo":    Fire,
	"terra":   Earth,
	"agua":    Water,
}

// CycleDistance is the shortest number of steps between two elements on
// the five-phase cycle: 0, 1 or 2.
func CycleDistance(a, b Element) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return min(d, cycleLen-d)
}

// canonical lower-cases s and strips combining marks after NFD
// decomposition, giving an ASCII-safe lookup key for Latin names.
func canonical(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
