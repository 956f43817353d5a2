package store

import (
	"strings"

	"closetapi/models"

	"golang.org/x/text/cases"
)

// LabelLookup resolves free-form labels to the canonical values the
// suitability filter understands. Unknown labels are returned folded but
// otherwise unchanged, so they never match anything.
type LabelLookup struct {
	seasons    map[string]string
	materials  map[string]string
	categories map[string]string
	folder     cases.Caser
}

func NewLabelLookup() *LabelLookup {
	l := &LabelLookup{
		seasons:    map[string]string{},
		materials:  map[string]string{},
		categories: map[string]string{},
		folder:     cases.Fold(),
	}
	l.add(l.seasons, models.SeasonSpring, "봄")
	l.add(l.seasons, models.SeasonSummer, "여름")
	l.add(l.seasons, models.SeasonFall, "autumn", "가을")
	l.add(l.seasons, models.SeasonWinter, "겨울")
	l.add(l.seasons, models.SeasonAllSeason, "all_season", "all_seasons", "all seasons", "allseason", "사계절")

	l.add(l.materials, models.MaterialCotton, "면")
	l.add(l.materials, models.MaterialKnit, "knitted", "니트")
	l.add(l.materials, models.MaterialDenim, "데님")
	l.add(l.materials, models.MaterialPolyester, "poly", "폴리")
	l.add(l.materials, models.MaterialLinen, "린넨")
	l.add(l.materials, models.MaterialPadded, "padding", "패딩")
	l.add(l.materials, models.MaterialSuede, "스웨이드")
	l.add(l.materials, models.MaterialLeather, "레더")

	l.add(l.categories, models.CategoryTop, "상의")
	l.add(l.categories, models.CategoryBottom, "하의")
	l.add(l.categories, models.CategoryShoes, "신발")
	l.add(l.categories, models.CategoryOuter, "outerwear", "아우터")
	return l
}

func (l *LabelLookup) add(table map[string]string, canonical string, aliases ...string) {
	table[l.key(canonical)] = canonical
	for _, a := range aliases {
		table[l.key(a)] = canonical
	}
}

func (l *LabelLookup) key(label string) string {
	return l.folder.String(strings.TrimSpace(label))
}

func (l *LabelLookup) resolve(table map[string]string, label string) string {
	k := l.key(label)
	if canonical, ok := table[k]; ok {
		return canonical
	}
	return k
}

func (l *LabelLookup) Season(label string) string   { return l.resolve(l.seasons, label) }
func (l *LabelLookup) Material(label string) string { return l.resolve(l.materials, label) }
func (l *LabelLookup) Category(label string) string { return l.resolve(l.categories, label) }
