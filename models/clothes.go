package models

// Cloth is the persisted row behind a Garment. Labels are stored as entered;
// resolving them to canonical values is the store's job.
type Cloth struct {
	JsonModel
	Owner       string  `gorm:"index" json:"-"`
	Name        string  `gorm:"not null" json:"name"`
	Category    *string `json:"category"`
	ClothType   string  `gorm:"not null" json:"type"`
	Color       string  `gorm:"not null" json:"color"`
	Style       string  `gorm:"not null" json:"style"`
	Material    string  `gorm:"not null" json:"material"`
	Season      string  `gorm:"not null" json:"season"`
	ImageRef    *string `json:"image_ref"`
	LabelStatus string  `gorm:"default:idle" json:"label_status"` // idle, pending, completed, failed
	LabelError  *string `gorm:"type:text" json:"label_error"`
}

func (Cloth) TableName() string {
	return "clothes"
}

const (
	LabelStatusIdle      = "idle"
	LabelStatusPending   = "pending"
	LabelStatusCompleted = "completed"
	LabelStatusFailed    = "failed"
)
