package api

import (
	"slices"
	"strings"
	"testing"

	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

func sign(date string, a zodiac.Animal, e zodiac.Element) zodiac.Sign {
	return zodiac.Sign{
		Date:    date,
		Animal:  a,
		Element: e,
		Profile: zodiac.DefaultCatalog().Lookup(a),
	}
}

func TestPairSummary(t *testing.T) {
	horse := sign("1990-05-15", zodiac.Horse, zodiac.Metal)
	pig := sign("1995-05-01", zodiac.Pig, zodiac.Wood)

	for _, tier := range []zodiac.Tier{
		zodiac.TierHighPotential,
		zodiac.TierStable,
		zodiac.TierModerateFriction,
		zodiac.TierFriction,
	} {
		got := pairSummary(horse, pig, zodiac.Compatibility{Tier: tier})

		if !strings.HasPrefix(got, "The combination of Horse and Pig shows "+tierOpeners[tier]) {
			t.Errorf("%s: summary %q does not open with the tier line", tier, got)
		}
		for _, part := range []string{
			strings.ToLower(horse.Profile.Strength),
			strings.ToLower(pig.Profile.Strength),
			strings.ToLower(horse.Profile.Shadow),
			strings.ToLower(pig.Profile.Shadow),
		} {
			if !strings.Contains(got, part) {
				t.Errorf("%s: summary %q missing %q", tier, got, part)
			}
		}
	}
}

func TestTierOpeners_CoverEveryTier(t *testing.T) {
	for score := zodiac.MinScore; score <= zodiac.MaxScore; score++ {
		if tierOpeners[zodiac.TierFor(score)] == "" {
			t.Errorf("no opener for tier %q (score %d)", zodiac.TierFor(score), score)
		}
	}
}

func TestCelebrityMatch(t *testing.T) {
	s := sign("1990-05-15", zodiac.Horse, zodiac.Metal)

	got := celebrityMatch(s)
	if !slices.Contains(s.Profile.Celebrities, got) {
		t.Errorf("celebrityMatch() = %q, not one of %v", got, s.Profile.Celebrities)
	}
	if again := celebrityMatch(s); again != got {
		t.Errorf("celebrityMatch() = %q then %q, want a stable pick", got, again)
	}

	s.Profile.Celebrities = nil
	if got := celebrityMatch(s); got != "" {
		t.Errorf("celebrityMatch() without celebrities = %q, want empty", got)
	}
}
