package models

// Canonical season labels understood by the suitability filter.
const (
	SeasonSpring    = "spring"
	SeasonSummer    = "summer"
	SeasonFall      = "fall"
	SeasonWinter    = "winter"
	SeasonAllSeason = "all-season"
)

// Canonical material labels understood by the suitability filter.
const (
	MaterialCotton    = "cotton"
	MaterialKnit      = "knit"
	MaterialDenim     = "denim"
	MaterialPolyester = "polyester"
	MaterialLinen     = "linen"
	MaterialPadded    = "padded"
	MaterialSuede     = "suede"
	MaterialLeather   = "leather"
)

const (
	CategoryTop    = "top"
	CategoryBottom = "bottom"
	CategoryShoes  = "shoes"
	CategoryOuter  = "outer"
)

// Garment is the store-independent view of one wardrobe item. Season, Material
// and Category hold resolved labels.
type Garment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Style       string `json:"style"`
	Material    string `json:"material"`
	Season      string `json:"season"`
	ImageRef    string `json:"image_ref,omitempty"`
	LabelStatus string `json:"label_status,omitempty"`
}

// GarmentFields is a partial garment used for creates and updates. Nil
// pointers leave the stored value untouched.
type GarmentFields struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Type     *string `json:"type"`
	Color    *string `json:"color"`
	Style    *string `json:"style"`
	Material *string `json:"material"`
	Season   *string `json:"season"`
	ImageRef *string `json:"image_ref"`
}

func (f GarmentFields) IsEmpty() bool {
	return f.Name == nil && f.Category == nil && f.Type == nil && f.Color == nil &&
		f.Style == nil && f.Material == nil && f.Season == nil && f.ImageRef == nil
}
