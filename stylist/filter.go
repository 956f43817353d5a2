package stylist

import (
	"slices"

	"closetapi/models"
)

var (
	insulatingMaterials = []string{models.MaterialKnit, models.MaterialPadded, models.MaterialLeather, models.MaterialSuede}
	midweightMaterials  = []string{models.MaterialCotton, models.MaterialDenim, models.MaterialPolyester}
	breathableMaterials = []string{models.MaterialLinen, models.MaterialCotton}
)

// FilterByWeather keeps the garments whose season or material suits the
// weather. Input order is preserved. Without a temperature only all-season
// garments survive.
func FilterByWeather(garments []models.Garment, weather models.Weather) []models.Garment {
	suitable := make([]models.Garment, 0, len(garments))
	for _, g := range garments {
		if SeasonSuits(g.Season, weather.Temp) || MaterialSuits(g.Material, weather.Temp) {
			suitable = append(suitable, g)
		}
	}
	return suitable
}

func SeasonSuits(season string, temp *float64) bool {
	if season == models.SeasonAllSeason {
		return true
	}
	if temp == nil {
		return false
	}
	t := *temp
	switch {
	case t < 10:
		return season == models.SeasonWinter
	case t < 20:
		return season == models.SeasonSpring || season == models.SeasonFall
	default:
		return season == models.SeasonSummer
	}
}

func MaterialSuits(material string, temp *float64) bool {
	if material == "" || temp == nil {
		return false
	}
	t := *temp
	switch {
	case t < 15:
		return slices.Contains(insulatingMaterials, material)
	case t < 25:
		return slices.Contains(midweightMaterials, material)
	default:
		return slices.Contains(breathableMaterials, material)
	}
}
