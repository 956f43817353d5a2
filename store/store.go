// Package store persists garments. Implementations own the mapping between
// their schema and models.Garment so callers never see rows.
package store

import (
	"context"
	"fmt"

	"closetapi/models"
)

// GarmentStore is the persistence contract used by the HTTP surface and the
// workers. An empty owner means the whole closet. Missing ids are reported
// with models.ErrNotFound, malformed ids with *models.ValidationError.
type GarmentStore interface {
	ListAll(ctx context.Context, owner string) ([]models.Garment, error)
	Get(ctx context.Context, owner, id string) (*models.Garment, error)
	Create(ctx context.Context, owner string, id string, fields models.GarmentFields) (*models.Garment, error)
	Update(ctx context.Context, owner, id string, fields models.GarmentFields) (*models.Garment, error)
	Delete(ctx context.Context, owner, id string) error
	SetLabelStatus(ctx context.Context, id, status string, labelErr *string) error
	Count(ctx context.Context, owner string) (int64, error)
	Describe() string
}

var requiredFields = []string{"name", "type", "color", "style", "material", "season"}

// checkRequired mirrors the create contract: every descriptive label must be
// present and non-blank.
func checkRequired(fields models.GarmentFields) error {
	values := map[string]*string{
		"name":     fields.Name,
		"type":     fields.Type,
		"color":    fields.Color,
		"style":    fields.Style,
		"material": fields.Material,
		"season":   fields.Season,
	}
	for _, name := range requiredFields {
		if v := values[name]; v == nil || *v == "" {
			return models.NewValidationError(name, "is required")
		}
	}
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("garment %s: %w", id, models.ErrNotFound)
}

func conflict(id string) error {
	return fmt.Errorf("garment %s already exists: %w", id, models.ErrConflict)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// applyFields copies the non-nil fields onto a row. The id is never touched.
func applyFields(c *models.Cloth, fields models.GarmentFields) {
	if fields.Name != nil {
		c.Name = *fields.Name
	}
	if fields.Category != nil {
		c.Category = fields.Category
	}
	if fields.Type != nil {
		c.ClothType = *fields.Type
	}
	if fields.Color != nil {
		c.Color = *fields.Color
	}
	if fields.Style != nil {
		c.Style = *fields.Style
	}
	if fields.Material != nil {
		c.Material = *fields.Material
	}
	if fields.Season != nil {
		c.Season = *fields.Season
	}
	if fields.ImageRef != nil {
		c.ImageRef = fields.ImageRef
	}
}

func toGarment(labels *LabelLookup, c models.Cloth) models.Garment {
	g := models.Garment{
		ID:          models.FormatID(c.ID),
		Name:        c.Name,
		Type:        c.ClothType,
		Color:       c.Color,
		Style:       c.Style,
		Material:    labels.Material(c.Material),
		Season:      labels.Season(c.Season),
		ImageRef:    deref(c.ImageRef),
		LabelStatus: c.LabelStatus,
	}
	if c.Category != nil && *c.Category != "" {
		g.Category = labels.Category(*c.Category)
	}
	return g
}

var (
	_ GarmentStore = (*GormGarmentStore)(nil)
	_ GarmentStore = (*FileGarmentStore)(nil)
)
