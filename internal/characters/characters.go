// Package characters is a small demo of struct embedding and interfaces.
package characters

import "fmt"

// Introducer is anything that can introduce itself.
type Introducer interface {
	Introduce() string
}

// Character is the common base of heroes and villains.
type Character struct {
	Name     string
	Power    string
	Universe string
}

// Introduce returns the character's self-introduction.
func (c Character) Introduce() string {
	return fmt.Sprintf("I am %s from the %s universe. My power is %s.", c.Name, c.Universe, c.Power)
}

// UsePower describes the character using its power.
func (c Character) UsePower() string {
	return fmt.Sprintf("%s uses %s!", c.Name, c.Power)
}

// Superhero is a Character with a costume and a catchphrase.
type Superhero struct {
	Character
	CostumeColor string
	Catchphrase  string
}

func (s Superhero) SayCatchphrase() string {
	return fmt.Sprintf("%s says: '%s'", s.Name, s.Catchphrase)
}

func (s Superhero) Fly() string {
	return fmt.Sprintf("%s takes to the skies in a flash of %s!", s.Name, s.CostumeColor)
}

// Villain is a Character with an evil plan.
type Villain struct {
	Character
	EvilPlan string
}

func (v Villain) RevealPlan() string {
	return fmt.Sprintf("%s reveals their evil plan: %s", v.Name, v.EvilPlan)
}

func (v Villain) LaughEvil() string {
	return fmt.Sprintf("%s laughs maniacally: 'Mwahahaha!'", v.Name)
}

// Cast returns the demo hero and villain.
func Cast() (Superhero, Villain) {
	hero := Superhero{
		Character:    Character{Name: "SolarFlare", Power: "Light Manipulation", Universe: "NeoVerse"},
		CostumeColor: "gold",
		Catchphrase:  "Here comes the light!",
	}
	villain := Villain{
		Character: Character{Name: "ShadowHex", Power: "Dark Magic", Universe: "NeoVerse"},
		EvilPlan:  "Plunge the world into darkness.",
	}
	return hero, villain
}

// Script returns the lines of the demo in order.
func Script() []string {
	hero, villain := Cast()
	return []string{
		hero.Introduce(),
		hero.Fly(),
		hero.SayCatchphrase(),
		villain.Introduce(),
		villain.RevealPlan(),
		villain.LaughEvil(),
	}
}
