package api

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

const singleDateSummary = "Add a second date to get a summary of the strengths, challenges and compatibility of both profiles."

// tierOpeners completes "The combination of X and Y shows ..." per tier.
var tierOpeners = map[zodiac.Tier]string{
	zodiac.TierHighPotential:    "a high potential for stable, long-term collaboration.",
	zodiac.TierStable:           "good conditions for cooperation with some adjustments of style.",
	zodiac.TierModerateFriction: "relevant differences that can be productive if talked through openly.",
	zodiac.TierFriction:         "considerable potential tension, calling for clear agreements and well-defined limits.",
}

// pairSummary describes a scored pair: a tier opener followed by what each
// animal tends to bring and where each may slip.
func pairSummary(a, b zodiac.Sign, c zodiac.Compatibility) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The combination of %s and %s shows %s", a.Animal, b.Animal, tierOpeners[c.Tier])
	fmt.Fprintf(&sb, " In general, %s tends to bring more %q while %s contributes %q.",
		a.Animal, strings.ToLower(a.Profile.Strength), b.Animal, strings.ToLower(b.Profile.Strength))
	fmt.Fprintf(&sb, " Points of attention: %s may slide into %q, and %s into %q.",
		a.Animal, strings.ToLower(a.Profile.Shadow), b.Animal, strings.ToLower(b.Profile.Shadow))
	return sb.String()
}

// celebrityMatch picks one of the sign's celebrities, stable for a date.
func celebrityMatch(s zodiac.Sign) string {
	names := s.Profile.Celebrities
	if len(names) == 0 {
		return ""
	}
	h := fnv.New32a()
	h.Write([]byte(s.Date))
	return names[h.Sum32()%uint32(len(names))]
}
