package mapping_test

import (
	"strings"
	"testing"

	"github.com/5w1tchy/course-library-api/internal/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authorDTO struct{}
type author struct{}
type courseDTO struct{}

func authorMapping() mapping.Mapping {
	return mapping.MustNew(map[string]mapping.Value{
		"id":           mapping.Fields("id"),
		"mainCategory": mapping.Fields("mainCategory"),
		"age":          mapping.Reverted("dateOfBirth"),
		"name":         mapping.Fields("firstName", "lastName"),
	})
}

func TestNew_RejectsEmptyDestinations(t *testing.T) {
	_, err := mapping.New(map[string]mapping.Value{"name": {}})
	var cfgErr *mapping.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	_, err = mapping.New(map[string]mapping.Value{"name": mapping.Fields("firstName", " ")})
	require.ErrorAs(t, err, &cfgErr)
}

func TestNew_RejectsCaseInsensitiveDuplicates(t *testing.T) {
	_, err := mapping.New(map[string]mapping.Value{
		"Name": mapping.Fields("firstName"),
		"name": mapping.Fields("lastName"),
	})
	var cfgErr *mapping.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLookup_IgnoresCase(t *testing.T) {
	m := authorMapping()

	v, ok := m.Lookup("NAME")
	require.True(t, ok)
	assert.Equal(t, []string{"firstName", "lastName"}, v.Destinations)
	assert.False(t, v.Revert)

	v, ok = m.Lookup("Age")
	require.True(t, ok)
	assert.True(t, v.Revert)

	_, ok = m.Lookup("height")
	assert.False(t, ok)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	m := authorMapping()
	v, _ := m.Lookup("name")
	v.Destinations[0] = "mutated"

	again, _ := m.Lookup("name")
	assert.Equal(t, "firstName", again.Destinations[0])
}

func TestValid(t *testing.T) {
	m := authorMapping()

	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"name", true},
		{"Name desc", true},
		{"name desc, AGE", true},
		{"mainCategory asc,id", true},
		{"name whatever", true},
		{"height", false},
		{"name,height desc", false},
		{"name,,age", false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, m.Valid(tc.in), "Valid(%q)", tc.in)
	}
}

func TestValid_AnyCasingOfKnownKeys(t *testing.T) {
	m := authorMapping()
	var parts []string
	for i, name := range m.Names() {
		switch i % 3 {
		case 0:
			parts = append(parts, strings.ToUpper(name))
		case 1:
			parts = append(parts, strings.ToLower(name)+" desc")
		default:
			parts = append(parts, name)
		}
	}
	assert.True(t, m.Valid(strings.Join(parts, ", ")))
}

func TestRegistry_Get(t *testing.T) {
	reg, err := mapping.NewRegistry(mapping.Register[authorDTO, author](authorMapping()))
	require.NoError(t, err)

	m, err := mapping.Get[authorDTO, author](reg)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())

	_, err = mapping.Get[courseDTO, author](reg)
	var cfgErr *mapping.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "courseDTO")
}

func TestRegistry_RejectsAmbiguousPair(t *testing.T) {
	_, err := mapping.NewRegistry(
		mapping.Register[authorDTO, author](authorMapping()),
		mapping.Register[authorDTO, author](authorMapping()),
	)
	var cfgErr *mapping.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestIsValid(t *testing.T) {
	reg, err := mapping.NewRegistry(mapping.Register[authorDTO, author](authorMapping()))
	require.NoError(t, err)

	ok, err := mapping.IsValid[authorDTO, author](reg, "name desc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mapping.IsValid[authorDTO, author](reg, "height")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = mapping.IsValid[courseDTO, author](reg, "")
	assert.Error(t, err)
}
