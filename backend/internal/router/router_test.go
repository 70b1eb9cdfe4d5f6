package router

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/mediameta/backend/internal/handler"
	"github.com/itchan-dev/mediameta/backend/internal/setup"
	"github.com/itchan-dev/mediameta/shared/attachment"
	"github.com/itchan-dev/mediameta/shared/config"
	"github.com/itchan-dev/mediameta/shared/domain"
	"github.com/stretchr/testify/assert"
)

// stubService answers with the real formatters and no storage
type stubService struct{}

func (stubService) Describe(a *domain.Attachment, locale domain.Locale) string {
	return attachment.FormatDescription(a, "No description.")
}

func (stubService) DescribeStored(ctx context.Context, id domain.AttachmentId, locale domain.Locale) (*domain.Attachment, string, error) {
	return &domain.Attachment{Id: id}, "No description.", nil
}

func (stubService) Layout(attachments domain.Attachments, minAspect, maxAspect float64) []float64 {
	return attachment.AspectRatios(attachments, minAspect, maxAspect)
}

func (stubService) MessageLayout(ctx context.Context, msgId domain.MsgId, minAspect, maxAspect float64) (domain.Attachments, []float64, error) {
	return domain.Attachments{}, []float64{}, nil
}

func (stubService) Save(ctx context.Context, a *domain.Attachment) (domain.AttachmentId, error) {
	return domain.AttachmentId{}, nil
}

func (stubService) Delete(ctx context.Context, id domain.AttachmentId) error { return nil }

func (stubService) Probe(data io.Reader) (*domain.MediaSize, error) { return &domain.MediaSize{}, nil }

type healthy struct{}

func (healthy) Ping(ctx context.Context) error { return nil }

func newTestRouter() http.Handler {
	cfg := &config.Config{Public: config.Public{
		MinAspect:      0.5,
		MaxAspect:      2.0,
		AllowedOrigins: []string{"http://localhost:8081"},
		WriteRate:      0.001,
		WriteBurst:     1,
		RateLimitTTL:   time.Hour,
	}}
	deps := &setup.Dependencies{
		Handler:      handler.New(stubService{}, cfg, healthy{}, []string{"en"}),
		Config:       cfg,
		WriteLimiter: setup.NewWriteLimiter(cfg.Public),
	}
	return New(deps)
}

func TestRouter(t *testing.T) {
	r := newTestRouter()

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	})

	t.Run("describe end to end", func(t *testing.T) {
		body := []byte(`{"attachment": {"description": "A cat", "meta": {"duration": 125.4}}}`)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/attachments/describe", bytes.NewReader(body)))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"description": "0:02:05 A cat", "alt_text": "0:02:05 A cat"}`, rr.Body.String())
	})

	t.Run("aspect ratios end to end", func(t *testing.T) {
		body := []byte(`{"attachments": [{"meta": {"small": {"width": 16, "height": 9}}}, {"meta": {"original": {"aspect": 3}}}, {}]}`)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/attachments/aspect_ratios", bytes.NewReader(body)))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"aspect_ratios": [1.7777777777777777, 2, 1.7778]}`, rr.Body.String())
	})

	t.Run("metrics exposed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "http_requests_total")
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/attachments/describe", nil)
		req.Header.Set("Origin", "http://localhost:8081")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, "http://localhost:8081", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("writes are rate limited per client", func(t *testing.T) {
		del := func() int {
			req := httptest.NewRequest(http.MethodDelete, "/v1/attachments/"+uuid.NewString(), nil)
			req.RemoteAddr = "198.51.100.7:4000"
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			return rr.Code
		}
		assert.Equal(t, http.StatusOK, del())
		assert.Equal(t, http.StatusTooManyRequests, del())

		// reads are not limited
		body := []byte(`{"attachments": []}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/attachments/aspect_ratios", bytes.NewReader(body))
		req.RemoteAddr = "198.51.100.7:4000"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/boards", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
