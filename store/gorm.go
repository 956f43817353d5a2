package store

import (
	"context"
	"errors"

	"closetapi/models"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormGarmentStore keeps garments in the clothes table. Each call is its own
// unit of work.
type GormGarmentStore struct {
	db     *gorm.DB
	labels *LabelLookup
}

func NewGormGarmentStore(db *gorm.DB, labels *LabelLookup) *GormGarmentStore {
	return &GormGarmentStore{db: db, labels: labels}
}

func (s *GormGarmentStore) Describe() string {
	return "PostgreSQL: clothes table"
}

func (s *GormGarmentStore) scoped(ctx context.Context, owner string) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Cloth{})
	if owner != "" {
		q = q.Where("owner = ?", owner)
	}
	return q
}

func (s *GormGarmentStore) ListAll(ctx context.Context, owner string) ([]models.Garment, error) {
	var rows []models.Cloth
	if err := s.scoped(ctx, owner).Order("id").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list garments")
	}
	garments := make([]models.Garment, 0, len(rows))
	for _, row := range rows {
		garments = append(garments, toGarment(s.labels, row))
	}
	return garments, nil
}

func (s *GormGarmentStore) find(ctx context.Context, owner, id string) (*models.Cloth, error) {
	pk, err := models.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	var row models.Cloth
	err = s.scoped(ctx, owner).Where("id = ?", pk).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "get garment %s", id)
	}
	return &row, nil
}

func (s *GormGarmentStore) Get(ctx context.Context, owner, id string) (*models.Garment, error) {
	row, err := s.find(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	g := toGarment(s.labels, *row)
	return &g, nil
}

func (s *GormGarmentStore) Create(ctx context.Context, owner string, id string, fields models.GarmentFields) (*models.Garment, error) {
	if err := checkRequired(fields); err != nil {
		return nil, err
	}
	row := models.Cloth{Owner: owner, LabelStatus: models.LabelStatusIdle}
	if id != "" {
		pk, err := models.ParseID("id", id)
		if err != nil {
			return nil, err
		}
		row.ID = pk
	}
	applyFields(&row, fields)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if row.ID != 0 {
			var existing int64
			if err := tx.Model(&models.Cloth{}).Where("id = ?", row.ID).Count(&existing).Error; err != nil {
				return pkgerrors.Wrap(err, "check garment id")
			}
			if existing > 0 {
				return conflict(id)
			}
		}
		if err := tx.Create(&row).Error; err != nil {
			return pkgerrors.Wrap(err, "create garment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	g := toGarment(s.labels, row)
	return &g, nil
}

func (s *GormGarmentStore) Update(ctx context.Context, owner, id string, fields models.GarmentFields) (*models.Garment, error) {
	var updated models.Cloth
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := NewGormGarmentStore(tx, s.labels).find(ctx, owner, id)
		if err != nil {
			return err
		}
		applyFields(row, fields)
		if err := tx.Save(row).Error; err != nil {
			return pkgerrors.Wrapf(err, "update garment %s", id)
		}
		updated = *row
		return nil
	})
	if err != nil {
		return nil, err
	}
	g := toGarment(s.labels, updated)
	return &g, nil
}

func (s *GormGarmentStore) Delete(ctx context.Context, owner, id string) error {
	pk, err := models.ParseID("id", id)
	if err != nil {
		return err
	}
	q := s.db.WithContext(ctx).Where("id = ?", pk)
	if owner != "" {
		q = q.Where("owner = ?", owner)
	}
	result := q.Delete(&models.Cloth{})
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "delete garment %s", id)
	}
	if result.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}

func (s *GormGarmentStore) SetLabelStatus(ctx context.Context, id, status string, labelErr *string) error {
	pk, err := models.ParseID("id", id)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&models.Cloth{}).Where("id = ?", pk).Updates(map[string]interface{}{
		"label_status": status,
		"label_error":  labelErr,
	})
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "set label status of garment %s", id)
	}
	if result.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}

func (s *GormGarmentStore) Count(ctx context.Context, owner string) (int64, error) {
	var n int64
	if err := s.scoped(ctx, owner).Count(&n).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "count garments")
	}
	return n, nil
}
