package zodiac

// Score bounds.
const (
	MinScore = 30
	MaxScore = 100

	triadBonus = 5
)

// harmonyTriads are the four traditional groups of mutually harmonious animals.
var harmonyTriads = [4][3]Animal{
	{Rat, Dragon, Monkey},
	{Ox, Snake, Rooster},
	{Tiger, Horse, Dog},
	{Rabbit, Goat, Pig},
}

// Tier buckets a score for display.
type Tier string

const (
	TierHighPotential    Tier = "high_potential"
	TierStable           Tier = "stable"
	TierModerateFriction Tier = "moderate_friction"
	TierFriction         Tier = "friction"
)

// TierFor returns the tier of score.
func TierFor(score int) Tier {
	switch {
	case score >= 86:
		return TierHighPotential
	case score >= 70:
		return TierStable
	case score >= 50:
		return TierModerateFriction
	default:
		return TierFriction
	}
}

// Compatibility is the scored relation between two Signs.
type Compatibility struct {
	Score           int  `json:"score"`
	Tier            Tier `json:"tier"`
	ElementDistance int  `json:"element_distance"`
	SharedTriad     bool `json:"shared_triad"`
}

// Score returns the synergy score of a and b, in [MinScore, MaxScore].
// Score(a, b) == Score(b, a) for every pair.
func Score(a, b Sign) int {
	return Compare(a, b).Score
}

// Compare scores a pair from element cycle distance and triad membership.
func Compare(a, b Sign) Compatibility {
	return compare(a.Animal, a.Element, b.Animal, b.Element)
}

func compare(animalA Animal, elemA Element, animalB Animal, elemB Element) Compatibility {
	c := Compatibility{ElementDistance: -1}

	base := 70
	if elemA.Valid() && elemB.Valid() {
		c.ElementDistance = CycleDistance(elemA, elemB)
		switch c.ElementDistance {
		case 0:
			base = 88
		case 1:
			base = 80
		case 2:
			base = 60
		}
	}

	if SameTriad(animalA, animalB) {
		c.SharedTriad = true
		base += triadBonus
	}

	c.Score = clamp(base, MinScore, MaxScore)
	c.Tier = TierFor(c.Score)
	return c
}

// SameTriad reports whether a and b belong to the same harmony triad.
func SameTriad(a, b Animal) bool {
	for _, triad := range harmonyTriads {
		if contains(triad, a) && contains(triad, b) {
			return true
		}
	}
	return false
}

func contains(triad [3]Animal, a Animal) bool {
	return triad[0] == a || triad[1] == a || triad[2] == a
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
