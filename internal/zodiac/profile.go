package zodiac

import "slices"

// Profile is the static description attached to an animal.
type Profile struct {
	Essence     string   `json:"essence"`
	Strength    string   `json:"strength"`
	Shadow      string   `json:"shadow"`
	Skills      string   `json:"skills"`
	Challenge   string   `json:"challenge"`
	Tip         string   `json:"tip"`
	Celebrities []string `json:"celebrities"`
}

// Catalog maps each animal to its profile. It is read-only after construction.
type Catalog struct {
	profiles map[Animal]Profile
}

// NewCatalog builds a catalog from profiles. The map is copied.
func NewCatalog(profiles map[Animal]Profile) *Catalog {
	own := make(map[Animal]Profile, len(profiles))
	for a, p := range profiles {
		own[a] = p.clone()
	}
	return &Catalog{profiles: own}
}

// DefaultCatalog returns the built-in twelve-animal catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultProfiles)
}

// Lookup returns the profile for a. A missing animal yields an empty
// profile with a non-nil Celebrities slice rather than an error.
func (c *Catalog) Lookup(a Animal) Profile {
	if p, ok := c.profiles[a]; ok {
		return p.clone()
	}
	return Profile{Celebrities: []string{}}
}

func (p Profile) clone() Profile {
	p.Celebrities = slices.Clone(p.Celebrities)
	if p.Celebrities == nil {
		p.Celebrities = []string{}
	}
	return p
}

var defaultProfiles = map[Animal]Profile{
	Rat: {
		Essence:     "A strategic mind geared to anticipating risks and opportunities.",
		Strength:    "Fast adaptation and a sharp reading of the surroundings.",
		Shadow:      "Anxiety, over-vigilance and trouble delegating.",
		Skills:      "Resource management, analysis, improvising under pressure.",
		Challenge:   "Trust more and control less.",
		Tip:         "Turn a recurring worry into a simple three-step plan.",
		Celebrities: []string{"Bruce Lee", "George Washington", "Shakespeare"},
	},
	Ox: {
		Essence:     "Stability, patience and steady progress.",
		Strength:    "Building structures that last.",
		Shadow:      "Rigidity, stubbornness and resistance to change.",
		Skills:      "Discipline, reliability, methodical execution.",
		Challenge:   "Bend without losing solidity.",
		Tip:         "Make one small step today on a project that needs discipline.",
		Celebrities: []string{"Barack Obama", "Margaret Thatcher", "Vincent van Gogh"},
	},
	Tiger: {
		Essence:     "Courage, intensity and the drive to lead.",
		Strength:    "Breaking through blockages and starting movement.",
		Shadow:      "Impulsiveness and needless confrontation.",
		Skills:      "Initiative, leadership, rallying energy.",
		Challenge:   "Channel strength without trampling others.",
		Tip:         "Before acting, name the real intention behind the impulse.",
		Celebrities: []string{"Marilyn Monroe", "Tom Cruise", "Lady Gaga"},
	},
	Rabbit: {
		Essence:     "Sensitivity, diplomacy and a search for harmony.",
		Strength:    "Creating safe spaces and balanced relationships.",
		Shadow:      "Avoiding conflict and self-sacrifice to keep the peace.",
		Skills:      "Mediation, emotional aesthetics, empathy.",
		Challenge:   "Set clear boundaries.",
		Tip:         "Set a gentle but firm limit in one relationship or situation.",
		Celebrities: []string{"Albert Einstein", "Michael Jordan", "Johnny Depp"},
	},
	Dragon: {
		Essence:     "Broad vision, ambition and a striking presence.",
		Strength:    "Inspiring and leading large movements.",
		Shadow:      "Arrogance, scattered focus and overconfidence.",
		Skills:      "Strategic vision, magnetism, expansive creativity.",
		Challenge:   "Look after the details that hold the vision up.",
		Tip:         "Review one critical detail of an ambitious plan.",
		Celebrities: []string{"Bruce Lee", "Vladimir Putin", "Reese Witherspoon"},
	},
	Snake: {
		Essence:     "Depth, intuition and analytical thinking.",
		Strength:    "Seeing hidden layers and connecting the dots.",
		Shadow:      "Isolation, over-calculation and distrust.",
		Skills:      "Strategy, investigation, emotional reading.",
		Challenge:   "Open up to dialogue before deciding.",
		Tip:         "Pick one intuition and test it with a concrete experiment.",
		Celebrities: []string{"Oprah Winfrey", "Pablo Picasso", "Daniel Radcliffe"},
	},
	Horse: {
		Essence:     "Freedom, movement and enthusiasm.",
		Strength:    "Moving forward when everyone else stalls.",
		Shadow:      "Scattered energy and running from commitments.",
		Skills:      "Exploration, energy, adaptability.",
		Challenge:   "Keep focus until the end.",
		Tip:         "Choose a single priority and carry it through.",
		Celebrities: []string{"Paul McCartney", "Jennifer Lawrence", "Theodore Roosevelt"},
	},
	Goat: {
		Essence:     "Imagination, sensitivity and creativity.",
		Strength:    "Turning chaos into beauty and meaning.",
		Shadow:      "Dramatizing and insecurity.",
		Skills:      "Creation, empathy, aesthetic expression.",
		Challenge:   "Take emotional responsibility.",
		Tip:         "Use creativity to solve a practical problem.",
		Celebrities: []string{"Bill Gates", "Nicole Kidman", "Frida Kahlo"},
	},
	Monkey: {
		Essence:     "Improvisation, humor and lateral intelligence.",
		Strength:    "Finding unexpected solutions.",
		Shadow:      "Scattered focus and subtle manipulation.",
		Skills:      "Innovation, mental hacking, creative problem solving.",
		Challenge:   "See processes through to the end.",
		Tip:         "Simplify a process you made too complex.",
		Celebrities: []string{"Leonardo da Vinci", "Tom Hanks", "Kylie Jenner"},
	},
	Rooster: {
		Essence:     "Precision, order and direct communication.",
		Strength:    "Organizing, structuring and clarifying.",
		Shadow:      "Perfectionism and excessive criticism.",
		Skills:      "Management, detail, discipline.",
		Challenge:   "Accept functional imperfection.",
		Tip:         "Choose 'good enough' over 'perfect and late'.",
		Celebrities: []string{"Britney Spears", "Eric Clapton", "Matthew McConaughey"},
	},
	Dog: {
		Essence:     "Loyalty, ethics and protection.",
		Strength:    "Building trust and safety.",
		Shadow:      "Taking on other people's responsibilities.",
		Skills:      "Fairness, support, consistency.",
		Challenge:   "Tell care apart from overload.",
		Tip:         "Hand back one responsibility that is not yours.",
		Celebrities: []string{"Michael Jackson", "Madonna", "Elvis Presley"},
	},
	Pig: {
		Essence:     "Comfort, pleasure and generosity.",
		Strength:    "Creating nurturing environments and trusting relationships.",
		Shadow:      "Indulgence and avoiding discomfort.",
		Skills:      "Hospitality, gentle diplomacy, emotional stability.",
		Challenge:   "Face the discomfort that is necessary.",
		Tip:         "Say no to something that drains your energy.",
		Celebrities: []string{"Ronald Reagan", "Amy Winehouse", "Stephen King"},
	},
}
