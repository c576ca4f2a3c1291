package poeforum

import (
	"poebuilds/lib/textutil"
)

// ClassTag maps a character class to the forum section holding its builds.
type ClassTag struct {
	Name    string
	ForumId string
	// not consulted by any crawl, kept for filtering threads by ascendancy.
	Subclasses []string
}

var classTable = []ClassTag{
	{Name: "Marauder", ForumId: "23", Subclasses: []string{"Juggernaut", "Chieftain", "Berserker"}},
	{Name: "Duelist", ForumId: "40", Subclasses: []string{"Slayer", "Gladiator", "Champion"}},
	{Name: "Ranger", ForumId: "24", Subclasses: []string{"Deadeye", "Raider", "Pathfinder"}},
	{Name: "Scion", ForumId: "436", Subclasses: []string{"Ascendant"}},
	{Name: "Shadow", ForumId: "303", Subclasses: []string{"Assassin", "Saboteur", "Trickster"}},
	{Name: "Templar", ForumId: "41", Subclasses: []string{"Inquisitor", "Hierophant", "Guardian"}},
	{Name: "Witch", ForumId: "22", Subclasses: []string{"Necromancer", "Occultist", "Elementalist"}},
}

// Classes returns a copy of the class table in its fixed order.
func Classes() []ClassTag {
	out := make([]ClassTag, len(classTable))
	for i, c := range classTable {
		c.Subclasses = append([]string(nil), c.Subclasses...)
		out[i] = c
	}
	return out
}

func ClassNames() []string {
	names := make([]string, len(classTable))
	for i, c := range classTable {
		names[i] = c.Name
	}
	return names
}

// LookupClass finds a class by name, ignoring case and whitespace.
func LookupClass(name string) (ClassTag, error) {
	normalized := textutil.NormalizeName(name)
	for _, c := range classTable {
		if textutil.NormalizeName(c.Name) == normalized {
			return c, nil
		}
	}
	return ClassTag{}, &UnknownClassError{
		Name:       name,
		Suggestion: textutil.ClosestMatch(name, ClassNames()),
	}
}
