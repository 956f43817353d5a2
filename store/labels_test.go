package store

import (
	"testing"

	"closetapi/models"

	"github.com/stretchr/testify/assert"
)

func TestLabelLookupResolvesAliases(t *testing.T) {
	l := NewLabelLookup()

	assert.Equal(t, models.SeasonFall, l.Season("Autumn"))
	assert.Equal(t, models.SeasonFall, l.Season("가을"))
	assert.Equal(t, models.SeasonAllSeason, l.Season(" ALL_SEASONS "))
	assert.Equal(t, models.SeasonAllSeason, l.Season("사계절"))
	assert.Equal(t, models.SeasonSummer, l.Season("summer"))

	assert.Equal(t, models.MaterialPadded, l.Material("Padding"))
	assert.Equal(t, models.MaterialCotton, l.Material("면"))
	assert.Equal(t, models.MaterialPolyester, l.Material("poly"))

	assert.Equal(t, models.CategoryOuter, l.Category("아우터"))
	assert.Equal(t, models.CategoryTop, l.Category("TOP"))
}

func TestLabelLookupKeepsUnknownLabels(t *testing.T) {
	l := NewLabelLookup()
	assert.Equal(t, "wool", l.Material("Wool"))
	assert.Equal(t, "monsoon", l.Season("monsoon"))
	assert.Equal(t, "", l.Season(""))
}
