package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"closetapi/metrics"
	"closetapi/store"
	"closetapi/stylist"
	"closetapi/test"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e       *echo.Echo
	store   store.GarmentStore
	client  *test.StubRecommendationClient
	metrics *metrics.Registry
}

type serverOption func(*Dependencies)

func withStorage(aws *test.AWSProviderMock, queue *test.QueueMock) serverOption {
	return func(d *Dependencies) {
		d.AWSService = aws
		if queue != nil {
			d.Queue = queue
		}
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	closet, err := store.NewFileGarmentStore(filepath.Join(t.TempDir(), "closet.json"), store.NewLabelLookup())
	require.NoError(t, err)
	client := &test.StubRecommendationClient{Reply: stubReply}
	reg := metrics.NewRegistry()
	deps := Dependencies{
		Store:     closet,
		Stylist:   stylist.New(client, zerolog.Nop()),
		Metrics:   reg,
		JWTSecret: test.JWTSecret,
		Log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return &testServer{e: SetupServer(deps), store: closet, client: client, metrics: reg}
}

func (s *testServer) do(req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func stringPtr(s string) *string {
	return &s
}

func whiteShirt() AddClothIn {
	return AddClothIn{
		Name:     "White shirt",
		Category: stringPtr("top"),
		Type:     "shirt",
		Color:    "white",
		Style:    "formal",
		Material: "cotton",
		Season:   "summer",
	}
}

func blueJeans() AddClothIn {
	return AddClothIn{
		Name:     "Blue jeans",
		Category: stringPtr("bottom"),
		Type:     "jeans",
		Color:    "blue",
		Style:    "casual",
		Material: "denim",
		Season:   "all_seasons",
	}
}

func woolSweater() AddClothIn {
	return AddClothIn{
		Name:     "Wool sweater",
		Type:     "sweater",
		Color:    "grey",
		Style:    "casual",
		Material: "knit",
		Season:   "winter",
	}
}

func (s *testServer) add(t *testing.T, in AddClothIn) string {
	rec, body := s.do(test.NewJSONRequest(http.MethodPost, "/api/clothes/add", in))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return body["cloth"].(map[string]interface{})["id"].(string)
}

const stubReply = `Sure! {"top": {"item_id": "1", "name": "White shirt", "reason": "light for a warm day"},
"bottom": {"item_id": 2, "name": "Blue jeans", "reason": "easy to match"},
"outer": {"item_id": null, "name": null, "reason": null},
"shoes": {"item_id": null, "name": null, "reason": null},
"concept": "smart casual", "tip": "roll up the sleeves", "color_harmony": "white and blue"} Enjoy.`
