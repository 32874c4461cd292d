package dupscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/sponsorship-service/internal/models"
)

func person(id, first, last string) models.PersonRecord {
	return models.PersonRecord{ID: id, FirstName: first, LastName: last}
}

func TestDetect_ZeroOrOneRecord(t *testing.T) {
	assert.Empty(t, Detect(nil).Groups)
	assert.Equal(t, 0, Detect(nil).Total)

	r := Detect([]models.PersonRecord{person("1", "Jane", "Doe")})
	assert.Empty(t, r.Groups)
	assert.Equal(t, 1, r.Total)
}

func TestDetect_SinglePairIgnoresDistinctName(t *testing.T) {
	r := Detect([]models.PersonRecord{
		person("0", "a", "b"),
		person("1", "a", "b"),
		person("2", "c", "d"),
	})

	require.Len(t, r.Groups, 1)
	assert.Equal(t, "a b", r.Groups[0].Name)
	assert.Equal(t, "0", r.Groups[0].Original.ID)
	assert.Equal(t, "1", r.Groups[0].Duplicate.ID)
	assert.Equal(t, 3, r.Total)
}

func TestDetect_TriplesAnchorOnFirstSeen(t *testing.T) {
	r := Detect([]models.PersonRecord{
		person("0", "Jane", "Doe"),
		person("1", "Jane", "Doe"),
		person("2", "Jane", "Doe"),
	})

	require.Len(t, r.Groups, 2)
	assert.Equal(t, "0", r.Groups[0].Original.ID)
	assert.Equal(t, "1", r.Groups[0].Duplicate.ID)
	assert.Equal(t, "0", r.Groups[1].Original.ID)
	assert.Equal(t, "2", r.Groups[1].Duplicate.ID)
}

func TestDetect_EmptyNamesNeverGrouped(t *testing.T) {
	r := Detect([]models.PersonRecord{
		person("0", "", ""),
		person("1", "  ", ""),
		person("2", "", "\t"),
		person("3", "", ""),
	})

	assert.Empty(t, r.Groups)
	assert.Equal(t, 4, r.Total)
}

func TestDetect_CaseAndOuterWhitespace(t *testing.T) {
	r := Detect([]models.PersonRecord{
		person("0", "Jane", "Doe"),
		person("1", "jane", "doe"),
		person("2", "  jane", "doe  "),
		person("3", "jane ", "doe"),
	})

	require.Len(t, r.Groups, 2)
	assert.Equal(t, "1", r.Groups[0].Duplicate.ID)
	assert.Equal(t, "2", r.Groups[1].Duplicate.ID)
	for _, g := range r.Groups {
		assert.Equal(t, "jane doe", g.Name)
		assert.NotEqual(t, "3", g.Duplicate.ID)
	}
}

func TestDetect_GroupsInDiscoveryOrder(t *testing.T) {
	r := Detect([]models.PersonRecord{
		person("0", "x", "y"),
		person("1", "a", "b"),
		person("2", "a", "b"),
		person("3", "x", "y"),
	})

	require.Len(t, r.Groups, 2)
	assert.Equal(t, "a b", r.Groups[0].Name)
	assert.Equal(t, "x y", r.Groups[1].Name)
	assert.Equal(t, "0", r.Groups[1].Original.ID)
	assert.Equal(t, "3", r.Groups[1].Duplicate.ID)
}
