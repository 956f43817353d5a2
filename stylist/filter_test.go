package stylist

import (
	"testing"

	"closetapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func temp(t float64) *float64 {
	return &t
}

func TestAllSeasonAlwaysSuits(t *testing.T) {
	for _, tc := range []*float64{nil, temp(-20), temp(0), temp(10), temp(19.9), temp(20), temp(40)} {
		assert.True(t, SeasonSuits(models.SeasonAllSeason, tc))
	}
}

func TestSeasonBoundaries(t *testing.T) {
	cases := []struct {
		season string
		temp   float64
		want   bool
	}{
		{models.SeasonWinter, 9.9, true},
		{models.SeasonWinter, 10, false},
		{models.SeasonSpring, 9.9, false},
		{models.SeasonSpring, 10, true},
		{models.SeasonFall, 19.9, true},
		{models.SeasonFall, 20, false},
		{models.SeasonSummer, 19.9, false},
		{models.SeasonSummer, 20, true},
		{"monsoon", 20, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SeasonSuits(tc.season, temp(tc.temp)), "%s at %v", tc.season, tc.temp)
	}
}

func TestMaterialBoundaries(t *testing.T) {
	cases := []struct {
		material string
		temp     float64
		want     bool
	}{
		{models.MaterialKnit, 14.9, true},
		{models.MaterialPadded, 15, false},
		{models.MaterialDenim, 14.9, false},
		{models.MaterialDenim, 15, true},
		{models.MaterialPolyester, 24.9, true},
		{models.MaterialPolyester, 25, false},
		{models.MaterialLinen, 24.9, false},
		{models.MaterialLinen, 25, true},
		{models.MaterialCotton, 20, true},
		{models.MaterialCotton, 30, true},
		{models.MaterialCotton, 5, false},
		{"wool", 5, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MaterialSuits(tc.material, temp(tc.temp)), "%s at %v", tc.material, tc.temp)
	}
}

func TestMissingTemperatureDisablesTemperatureBranches(t *testing.T) {
	assert.False(t, SeasonSuits(models.SeasonSummer, nil))
	assert.False(t, MaterialSuits(models.MaterialCotton, nil))
}

func TestFilterKeepsGarmentWhenEitherPredicateHolds(t *testing.T) {
	garments := []models.Garment{
		{ID: "1", Season: models.SeasonWinter, Material: models.MaterialDenim},   // material only
		{ID: "2", Season: models.SeasonSpring, Material: "wool"},                  // season only
		{ID: "3", Season: models.SeasonWinter, Material: "wool"},                  // neither
		{ID: "4", Season: "", Material: models.MaterialPolyester},                 // missing season
		{ID: "5", Season: models.SeasonSpring, Material: ""},                      // missing material
		{ID: "6", Season: "", Material: ""},                                       // nothing
	}
	got := FilterByWeather(garments, models.Weather{Temp: temp(17), Condition: "cloudy"})

	ids := make([]string, 0, len(got))
	for _, g := range got {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"1", "2", "4", "5"}, ids)
}

func TestFilterSummerCottonOverWinterWool(t *testing.T) {
	garments := []models.Garment{
		{ID: "summer", Season: models.SeasonSummer, Material: models.MaterialCotton},
		{ID: "winter", Season: models.SeasonWinter, Material: "wool"},
	}
	got := FilterByWeather(garments, models.Weather{Temp: temp(22), Condition: "clear"})
	require.Len(t, got, 1)
	assert.Equal(t, "summer", got[0].ID)
}

func TestFilterWithoutTemperatureKeepsOnlyAllSeason(t *testing.T) {
	garments := []models.Garment{
		{ID: "a", Season: models.SeasonAllSeason, Material: models.MaterialCotton},
		{ID: "b", Season: models.SeasonSummer, Material: models.MaterialLinen},
	}
	got := FilterByWeather(garments, models.Weather{Condition: "rain"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Empty(t, FilterByWeather(nil, models.Weather{Temp: temp(10)}))
}
