// Package zodiac resolves dates to positions in the sexagenary zodiac
// (an animal and an elemental phase) and scores the compatibility of two
// such positions.
package zodiac

import (
	"fmt"
	"strings"
)

// EpochYear is the effective year whose animal is Rat (index 0).
const EpochYear = 1900

// Animal is one of the twelve zodiac animals, in cycle order.
type Animal int

const (
	Rat Animal = iota
	Ox
	Tiger
	Rabbit
	Dragon
	Snake
	Horse
	Goat
	Monkey
	Rooster
	Dog
	Pig
)

var animalNames = [...]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
}

// Animals returns all animals in cycle order.
func Animals() []Animal {
	out := make([]Animal, len(animalNames))
	for i := range out {
		out[i] = Animal(i)
	}
	return out
}

// AnimalForYear returns the animal governing an effective year.
func AnimalForYear(effectiveYear int) Animal {
	return Animal(mod(effectiveYear-EpochYear, len(animalNames)))
}

// Valid reports whether a is one of the twelve animals.
func (a Animal) Valid() bool {
	return a >= Rat && a <= Pig
}

func (a Animal) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Animal(%d)", int(a))
	}
	return animalNames[a]
}

// MarshalText encodes the animal by name.
func (a Animal) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid animal %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an animal name.
func (a *Animal) UnmarshalText(text []byte) error {
	parsed, err := ParseAnimal(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAnimal looks an animal up by name, ignoring case and accents.
func ParseAnimal(name string) (Animal, error) {
	key := canonical(name)
	for i, n := range animalNames {
		if strings.ToLower(n) == key {
			return Animal(i), nil
		}
	}
	if a, ok := animalAliases[key]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown animal %q", name)
}

// Portuguese names as stored by the web calculator's history export.
var animalAliases = map[string]Animal{
	"rato":     Rat,
	"boi":      Ox,
	"tigre":    Tiger,
	"coelho":   Rabbit,
	"dragao":   Dragon,
	"serpente": Snake,
	"cavalo":   Horse,
	"cabra":    Goat,
	"macaco":   Monkey,
	"galo":     Rooster,
	"cao":      Dog,
	"porco":    Pig,
}

// mod is a mathematical modulo: the result is always in [0, m).
func mod(n, m int) int {
	return ((n % m) + m) % m
}
