package controllers

import (
	"context"
	"net/http"
	"path"

	"closetapi/metrics"
	"closetapi/models"
	"closetapi/services"
	"closetapi/store"
	"closetapi/tasks"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// TaskQueue is the part of *asynq.Client the handlers use.
type TaskQueue interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AddClothIn struct {
	ID        *models.ItemRef `json:"id"`
	Name      string          `json:"name" validate:"required,max=100"`
	Category  *string         `json:"category" validate:"omitempty,max=50"`
	Type      string          `json:"type" validate:"required,max=50"`
	Color     string          `json:"color" validate:"required,max=50"`
	Style     string          `json:"style" validate:"required,max=50"`
	Material  string          `json:"material" validate:"required,max=50"`
	Season    string          `json:"season" validate:"required,max=50"`
	FileName  *string         `json:"file_name" validate:"omitempty,max=200"`
	AutoLabel bool            `json:"auto_label"`
}

type UpdateClothIn struct {
	ID       *models.ItemRef `json:"id"`
	Name     *string         `json:"name" validate:"omitempty,max=100"`
	Category *string         `json:"category" validate:"omitempty,max=50"`
	Type     *string         `json:"type" validate:"omitempty,max=50"`
	Color    *string         `json:"color" validate:"omitempty,max=50"`
	Style    *string         `json:"style" validate:"omitempty,max=50"`
	Material *string         `json:"material" validate:"omitempty,max=50"`
	Season   *string         `json:"season" validate:"omitempty,max=50"`
}

// ClothResponse is a garment plus a short lived image link.
type ClothResponse struct {
	models.Garment
	ImageURL string `json:"image_url,omitempty"`
}

type WardrobeController struct {
	Store      store.GarmentStore
	AWSService services.AWSServiceProvider
	Queue      TaskQueue
	Metrics    *metrics.Registry
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.GET("", controller.ListClothes)
	g.GET("/:id", controller.GetCloth)
	g.POST("/add", controller.AddCloth)
	g.PUT("/update", controller.UpdateCloth)
	g.DELETE("/delete", controller.DeleteCloth)
}

func (controller *WardrobeController) ListClothes(c echo.Context) error {
	ctx := c.Request().Context()
	garments, err := controller.Store.ListAll(ctx, currentOwner(c))
	if err != nil {
		return err
	}
	clothes := make([]ClothResponse, 0, len(garments))
	for _, g := range garments {
		clothes = append(clothes, controller.clothResponse(ctx, g))
	}
	return success(c, http.StatusOK, echo.Map{
		"count":   len(clothes),
		"clothes": clothes,
	})
}

func (controller *WardrobeController) GetCloth(c echo.Context) error {
	ctx := c.Request().Context()
	garment, err := controller.Store.Get(ctx, currentOwner(c), c.Param("id"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"cloth": controller.clothResponse(ctx, *garment)})
}

func (controller *WardrobeController) AddCloth(c echo.Context) error {
	var req AddClothIn
	if err := c.Bind(&req); err != nil {
		return models.NewValidationError("", "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if req.AutoLabel && req.FileName == nil {
		return models.NewValidationError("file_name", "is required for auto_label")
	}
	if req.FileName != nil && controller.AWSService == nil {
		return models.NewValidationError("file_name", "image storage is not configured")
	}
	if req.AutoLabel && controller.Queue == nil {
		return models.NewValidationError("auto_label", "background labelling is not configured")
	}

	fields := models.GarmentFields{
		Name:     &req.Name,
		Category: req.Category,
		Type:     &req.Type,
		Color:    &req.Color,
		Style:    &req.Style,
		Material: &req.Material,
		Season:   &req.Season,
	}
	if req.FileName != nil {
		ref := "clothes/" + path.Base(*req.FileName)
		fields.ImageRef = &ref
	}
	var id string
	if req.ID != nil {
		id = string(*req.ID)
	}

	ctx := c.Request().Context()
	owner := currentOwner(c)
	garment, err := controller.Store.Create(ctx, owner, id, fields)
	if err != nil {
		return err
	}

	body := echo.Map{"message": "garment added"}
	if garment.ImageRef != "" {
		uploadURL, err := controller.AWSService.PresignUpload(ctx, garment.ImageRef)
		if err != nil {
			return err
		}
		body["file_upload_url"] = uploadURL
	}
	if req.AutoLabel {
		garment.LabelStatus = controller.enqueueAutolabel(ctx, owner, garment.ID)
	}
	body["cloth"] = ClothResponse{Garment: *garment}
	return success(c, http.StatusOK, body)
}

// enqueueAutolabel marks the garment pending and queues the labelling task.
// The returned status is what the garment ends up with.
func (controller *WardrobeController) enqueueAutolabel(ctx context.Context, owner, id string) string {
	log := zerolog.Ctx(ctx)
	status := models.LabelStatusPending
	task, err := tasks.NewGarmentAutolabelTask(id, owner)
	if err == nil {
		_, err = controller.Queue.EnqueueContext(ctx, task, tasks.AutolabelOptions()...)
	}
	var labelErr *string
	if err != nil {
		log.Error().Err(err).Str("garment_id", id).Msg("could not enqueue autolabel")
		status = models.LabelStatusFailed
		labelErr = services.StrPointer(err.Error())
	} else {
		controller.Metrics.Inc(ctx, metrics.AutolabelsEnqueued, nil, 1)
	}
	if err := controller.Store.SetLabelStatus(ctx, id, status, labelErr); err != nil {
		log.Error().Err(err).Str("garment_id", id).Msg("could not record label status")
	}
	return status
}

func (controller *WardrobeController) UpdateCloth(c echo.Context) error {
	var req UpdateClothIn
	if err := c.Bind(&req); err != nil {
		return models.NewValidationError("", "invalid request body")
	}
	if req.ID == nil || *req.ID == "" {
		return models.NewValidationError("id", "is required")
	}
	if _, err := models.ParseID("id", string(*req.ID)); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	garment, err := controller.Store.Update(ctx, currentOwner(c), string(*req.ID), models.GarmentFields{
		Name:     req.Name,
		Category: req.Category,
		Type:     req.Type,
		Color:    req.Color,
		Style:    req.Style,
		Material: req.Material,
		Season:   req.Season,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{
		"message": "garment updated: " + garment.ID,
		"cloth":   controller.clothResponse(ctx, *garment),
	})
}

func (controller *WardrobeController) DeleteCloth(c echo.Context) error {
	raw := c.QueryParam("cloth_id")
	if raw == "" {
		return models.NewValidationError("cloth_id", "is required")
	}
	if _, err := models.ParseID("cloth_id", raw); err != nil {
		return err
	}
	if err := controller.Store.Delete(c.Request().Context(), currentOwner(c), raw); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"message": "garment deleted: " + raw})
}

func (controller *WardrobeController) clothResponse(ctx context.Context, g models.Garment) ClothResponse {
	resp := ClothResponse{Garment: g}
	if g.ImageRef == "" || controller.AWSService == nil {
		return resp
	}
	url, err := controller.AWSService.PresignRead(ctx, g.ImageRef)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("garment_id", g.ID).Msg("could not presign image")
		return resp
	}
	resp.ImageURL = url
	return resp
}
