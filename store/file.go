package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"closetapi/models"

	pkgerrors "github.com/pkg/errors"
)

type fileRecord struct {
	ID          uint      `json:"id"`
	Owner       string    `json:"owner,omitempty"`
	Name        string    `json:"name"`
	Category    *string   `json:"category,omitempty"`
	Type        string    `json:"type"`
	Color       string    `json:"color"`
	Style       string    `json:"style"`
	Material    string    `json:"material"`
	Season      string    `json:"season"`
	ImageRef    *string   `json:"image_ref,omitempty"`
	LabelStatus string    `json:"label_status,omitempty"`
	LabelError  *string   `json:"label_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type fileCloset struct {
	Clothes []fileRecord `json:"clothes"`
}

// FileGarmentStore keeps the closet in a single JSON document that is
// rewritten after every change.
type FileGarmentStore struct {
	mu     sync.Mutex
	path   string
	data   fileCloset
	labels *LabelLookup
}

// NewFileGarmentStore loads path. A missing file starts an empty closet, a
// corrupt one is an error so it never gets overwritten.
func NewFileGarmentStore(path string, labels *LabelLookup) (*FileGarmentStore, error) {
	s := &FileGarmentStore{path: path, labels: labels}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read closet file %s", path)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, pkgerrors.Wrapf(err, "decode closet file %s", path)
	}
	return s, nil
}

func (s *FileGarmentStore) Describe() string {
	return "JSON file: " + filepath.Base(s.path)
}

func (s *FileGarmentStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "encode closet")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return pkgerrors.Wrapf(err, "write closet file %s", tmp)
	}
	return pkgerrors.Wrap(os.Rename(tmp, s.path), "replace closet file")
}

func (s *FileGarmentStore) index(owner, id string) (int, error) {
	pk, err := models.ParseID("id", id)
	if err != nil {
		return -1, err
	}
	for i, r := range s.data.Clothes {
		if r.ID == pk && (owner == "" || r.Owner == owner) {
			return i, nil
		}
	}
	return -1, notFound(id)
}

func (s *FileGarmentStore) ListAll(ctx context.Context, owner string) ([]models.Garment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	garments := make([]models.Garment, 0, len(s.data.Clothes))
	for _, r := range s.data.Clothes {
		if owner != "" && r.Owner != owner {
			continue
		}
		garments = append(garments, toGarment(s.labels, r.toCloth()))
	}
	return garments, nil
}

func (s *FileGarmentStore) Get(ctx context.Context, owner, id string) (*models.Garment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(owner, id)
	if err != nil {
		return nil, err
	}
	g := toGarment(s.labels, s.data.Clothes[i].toCloth())
	return &g, nil
}

func (s *FileGarmentStore) Create(ctx context.Context, owner string, id string, fields models.GarmentFields) (*models.Garment, error) {
	if err := checkRequired(fields); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var next uint
	for _, r := range s.data.Clothes {
		if r.ID > next {
			next = r.ID
		}
	}
	next++
	if id != "" {
		pk, err := models.ParseID("id", id)
		if err != nil {
			return nil, err
		}
		for _, r := range s.data.Clothes {
			if r.ID == pk {
				return nil, conflict(id)
			}
		}
		next = pk
	}

	now := time.Now().UTC()
	c := models.Cloth{Owner: owner, LabelStatus: models.LabelStatusIdle}
	c.ID = next
	c.CreatedAt, c.UpdatedAt = now, now
	applyFields(&c, fields)

	s.data.Clothes = append(s.data.Clothes, recordFromCloth(c))
	if err := s.save(); err != nil {
		s.data.Clothes = s.data.Clothes[:len(s.data.Clothes)-1]
		return nil, err
	}
	g := toGarment(s.labels, c)
	return &g, nil
}

func (s *FileGarmentStore) Update(ctx context.Context, owner, id string, fields models.GarmentFields) (*models.Garment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(owner, id)
	if err != nil {
		return nil, err
	}
	previous := s.data.Clothes[i]
	c := previous.toCloth()
	applyFields(&c, fields)
	c.UpdatedAt = time.Now().UTC()
	s.data.Clothes[i] = recordFromCloth(c)
	if err := s.save(); err != nil {
		s.data.Clothes[i] = previous
		return nil, err
	}
	g := toGarment(s.labels, c)
	return &g, nil
}

func (s *FileGarmentStore) Delete(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(owner, id)
	if err != nil {
		return err
	}
	previous := s.data.Clothes
	remaining := make([]fileRecord, 0, len(previous)-1)
	remaining = append(remaining, previous[:i]...)
	remaining = append(remaining, previous[i+1:]...)
	s.data.Clothes = remaining
	if err := s.save(); err != nil {
		s.data.Clothes = previous
		return err
	}
	return nil
}

func (s *FileGarmentStore) SetLabelStatus(ctx context.Context, id, status string, labelErr *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index("", id)
	if err != nil {
		return err
	}
	previous := s.data.Clothes[i]
	s.data.Clothes[i].LabelStatus = status
	s.data.Clothes[i].LabelError = labelErr
	s.data.Clothes[i].UpdatedAt = time.Now().UTC()
	if err := s.save(); err != nil {
		s.data.Clothes[i] = previous
		return err
	}
	return nil
}

func (s *FileGarmentStore) Count(ctx context.Context, owner string) (int64, error) {
	garments, err := s.ListAll(ctx, owner)
	if err != nil {
		return 0, err
	}
	return int64(len(garments)), nil
}

func (r fileRecord) toCloth() models.Cloth {
	c := models.Cloth{
		Owner:       r.Owner,
		Name:        r.Name,
		Category:    r.Category,
		ClothType:   r.Type,
		Color:       r.Color,
		Style:       r.Style,
		Material:    r.Material,
		Season:      r.Season,
		ImageRef:    r.ImageRef,
		LabelStatus: r.LabelStatus,
		LabelError:  r.LabelError,
	}
	c.ID = r.ID
	c.CreatedAt = r.CreatedAt
	c.UpdatedAt = r.UpdatedAt
	return c
}

func recordFromCloth(c models.Cloth) fileRecord {
	return fileRecord{
		ID:          c.ID,
		Owner:       c.Owner,
		Name:        c.Name,
		Category:    c.Category,
		Type:        c.ClothType,
		Color:       c.Color,
		Style:       c.Style,
		Material:    c.Material,
		Season:      c.Season,
		ImageRef:    c.ImageRef,
		LabelStatus: c.LabelStatus,
		LabelError:  c.LabelError,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
