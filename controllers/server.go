package controllers

import (
	"embed"
	"html/template"
	"io"

	"closetapi/metrics"
	"closetapi/services"
	"closetapi/store"
	"closetapi/stylist"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type Template struct {
	templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

//go:embed templates
var embededFiles embed.FS

// Dependencies are the collaborators the HTTP surface needs. AWSService and
// Queue may be nil, which turns off garment images and auto labelling.
type Dependencies struct {
	Store      store.GarmentStore
	Stylist    *stylist.Stylist
	AWSService services.AWSServiceProvider
	Queue      TaskQueue
	Metrics    *metrics.Registry
	JWTSecret  string
	Log        zerolog.Logger
}

func SetupServer(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Renderer = &Template{
		templates: template.Must(template.ParseFS(embededFiles, "templates/*.html")),
	}
	e.Validator = NewCustomValidator(validator.New())
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(RequestLogger(deps.Log, deps.Metrics))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	health := HealthController{Store: deps.Store}
	e.GET("/", health.Home)

	api := e.Group("/api")
	api.GET("/health", health.Health)
	if deps.Metrics != nil {
		api.GET("/metrics", deps.Metrics.EchoHandlerText)
		api.GET("/metrics.json", deps.Metrics.EchoHandlerJSON)
	}

	scoped := api.Group("", OwnerMiddlewares(deps.JWTSecret)...)

	wardrobe := WardrobeController{
		Store:      deps.Store,
		AWSService: deps.AWSService,
		Queue:      deps.Queue,
		Metrics:    deps.Metrics,
	}
	wardrobe.WardrobeRoutes(scoped.Group("/clothes"))

	recommend := RecommendController{
		Store:   deps.Store,
		Stylist: deps.Stylist,
		Metrics: deps.Metrics,
	}
	recommend.RecommendRoutes(scoped)

	return e
}

func success(c echo.Context, status int, body echo.Map) error {
	if body == nil {
		body = echo.Map{}
	}
	body["success"] = true
	return c.JSON(status, body)
}
