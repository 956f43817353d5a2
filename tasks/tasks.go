package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"closetapi/models"
	"closetapi/services"
	"closetapi/store"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

const (
	TypeGarmentAutolabel = "garment:autolabel"
	QueueLabel           = "label"
)

// AutolabelDelay leaves the client time to PUT the photo to its presigned
// upload URL before the worker reads it.
const AutolabelDelay = 2 * time.Minute

type GarmentAutolabelPayload struct {
	GarmentID string `json:"garment_id"`
	Owner     string `json:"owner,omitempty"`
}

func NewGarmentAutolabelTask(garmentID, owner string) (*asynq.Task, error) {
	payload, err := json.Marshal(GarmentAutolabelPayload{GarmentID: garmentID, Owner: owner})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeGarmentAutolabel, payload), nil
}

// AutolabelOptions are the enqueue options for a labelling task: one
// attempt, delayed by AutolabelDelay.
func AutolabelOptions() []asynq.Option {
	return []asynq.Option{asynq.Queue(QueueLabel), asynq.MaxRetry(0), asynq.ProcessIn(AutolabelDelay)}
}

// AutolabelHandler reads a garment photo and fills the labels the owner
// left blank or marked "unknown".
type AutolabelHandler struct {
	Store   store.GarmentStore
	Storage services.AWSServiceProvider
	Tagger  services.GarmentTaggerProvider
	Log     zerolog.Logger
}

func (h *AutolabelHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload GarmentAutolabelPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", TypeGarmentAutolabel, err, asynq.SkipRetry)
	}
	log := h.Log.With().Str("task", TypeGarmentAutolabel).Str("garment_id", payload.GarmentID).Logger()

	garment, err := h.Store.Get(ctx, payload.Owner, payload.GarmentID)
	if errors.Is(err, models.ErrNotFound) {
		log.Warn().Msg("garment deleted before labelling")
		return nil
	}
	if err != nil {
		return err
	}

	if err := h.label(ctx, payload.Owner, garment); err != nil {
		log.Error().Err(err).Msg("autolabel failed")
		sentry.CaptureException(fmt.Errorf("[Garment: %s] autolabel: %w", garment.ID, err))
		message := err.Error()
		if statusErr := h.Store.SetLabelStatus(ctx, garment.ID, models.LabelStatusFailed, &message); statusErr != nil {
			log.Error().Err(statusErr).Msg("could not record label failure")
		}
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	log.Info().Msg("garment labelled")
	return h.Store.SetLabelStatus(ctx, garment.ID, models.LabelStatusCompleted, nil)
}

func (h *AutolabelHandler) label(ctx context.Context, owner string, garment *models.Garment) error {
	if garment.ImageRef == "" {
		return errors.New("garment has no image")
	}
	url, err := h.Storage.PresignRead(ctx, garment.ImageRef)
	if err != nil {
		return err
	}
	image, mimeType, err := services.ReadImageFromUrl(ctx, url)
	if err != nil {
		return err
	}
	tags, err := h.Tagger.TagGarment(ctx, image, mimeType)
	if err != nil {
		return err
	}

	fields := BlankFields(*garment, *tags)
	if fields.IsEmpty() {
		return nil
	}
	_, err = h.Store.Update(ctx, owner, garment.ID, fields)
	return err
}

func blank(label string) bool {
	label = strings.TrimSpace(label)
	return label == "" || strings.EqualFold(label, "unknown")
}

// BlankFields returns an update that sets every blank garment label the
// tags can supply. Labels the owner already chose are left alone.
func BlankFields(garment models.Garment, tags services.GarmentTags) models.GarmentFields {
	var fields models.GarmentFields
	pick := func(current, tagged string) *string {
		if blank(current) && !blank(tagged) {
			v := strings.TrimSpace(tagged)
			return &v
		}
		return nil
	}
	fields.Category = pick(garment.Category, tags.Category)
	fields.Type = pick(garment.Type, tags.Type)
	fields.Color = pick(garment.Color, tags.Color)
	fields.Style = pick(garment.Style, tags.Style)
	fields.Material = pick(garment.Material, tags.Material)
	fields.Season = pick(garment.Season, tags.Season)
	return fields
}
