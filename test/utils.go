package test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"closetapi/services"
	"closetapi/stylist"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hibiken/asynq"
)

const JWTSecret = "test-secret"

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func NewRawJSONRequest(method string, target string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(owner string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   owner,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(JWTSecret))
	if err != nil {
		panic(fmt.Sprintf("sign token for %s: %v", owner, err))
	}
	return t
}

func NewJSONAuthRequest(method string, target string, owner string, param interface{}) *http.Request {
	req := NewJSONRequest(method, target, param)
	req.Header.Add("Authorization", "Bearer "+GenerateUserToken(owner))
	return req
}

// AWSProviderMock presigns every key to MockUrl/<key>.
type AWSProviderMock struct {
	MockUrl string
	Err     error
}

func (m *AWSProviderMock) PresignUpload(ctx context.Context, key string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.MockUrl + "/upload/" + key, nil
}

func (m *AWSProviderMock) PresignRead(ctx context.Context, key string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.MockUrl + "/" + key, nil
}

// StubRecommendationClient answers every prompt with Reply or Err and keeps
// the prompts it saw.
type StubRecommendationClient struct {
	Reply string
	Err   error

	mu      sync.Mutex
	Prompts []string
}

func (s *StubRecommendationClient) Send(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.Prompts = append(s.Prompts, prompt)
	s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.Reply, nil
}

func (s *StubRecommendationClient) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}

func UpstreamFailure(message string) error {
	return stylist.NewServiceError("gemini", errors.New(message))
}

type TaggerMock struct {
	Tags *services.GarmentTags
	Err  error

	MimeType string
}

func (m *TaggerMock) TagGarment(ctx context.Context, image []byte, mimeType string) (*services.GarmentTags, error) {
	m.MimeType = mimeType
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tags, nil
}

// QueueMock records enqueued tasks instead of talking to redis.
type QueueMock struct {
	Err     error
	Tasks   []*asynq.Task
	Options [][]asynq.Option
}

func (q *QueueMock) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.Err != nil {
		return nil, q.Err
	}
	q.Tasks = append(q.Tasks, task)
	q.Options = append(q.Options, opts)
	return &asynq.TaskInfo{Type: task.Type(), Queue: "label"}, nil
}

// PNG is the smallest byte sequence http.DetectContentType reports as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// NewImageServer serves PNG for every path.
func NewImageServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(PNG)
	}))
}
