package poeforum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassTable(t *testing.T) {
	require.Equal(t,
		[]string{"Marauder", "Duelist", "Ranger", "Scion", "Shadow", "Templar", "Witch"},
		ClassNames(),
	)

	forums := map[string]string{}
	for _, c := range Classes() {
		forums[c.Name] = c.ForumId
		require.NotEmpty(t, c.Subclasses, c.Name)
	}
	require.Equal(t, map[string]string{
		"Marauder": "23",
		"Duelist":  "40",
		"Ranger":   "24",
		"Scion":    "436",
		"Shadow":   "303",
		"Templar":  "41",
		"Witch":    "22",
	}, forums)
}

func TestClassesIsCopy(t *testing.T) {
	classes := Classes()
	classes[0].Subclasses[0] = "changed"
	classes[0].ForumId = "0"

	fresh := Classes()
	require.Equal(t, "Juggernaut", fresh[0].Subclasses[0])
	require.Equal(t, "23", fresh[0].ForumId)
}

func TestLookupClass(t *testing.T) {
	class, err := LookupClass(" witch ")
	require.NoError(t, err)
	require.Equal(t, "22", class.ForumId)

	class, err = LookupClass("SCION")
	require.NoError(t, err)
	require.Equal(t, "Scion", class.Name)

	_, err = LookupClass("Duelst")
	var unknown *UnknownClassError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "Duelist", unknown.Suggestion)
	require.Contains(t, err.Error(), `did you mean "Duelist"`)
}
