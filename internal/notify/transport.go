package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"golang.org/x/time/rate"

	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

var (
	ErrNoServer = errors.New("push server url not configured")
	ErrNon2xx   = errors.New("push server returned non-2xx status")
)

// Poster delivers one payload to the push gateway.
type Poster interface {
	Post(ctx context.Context, url string, payload any, image []byte) (int, error)
}

// HTTPTransport posts JSON, or multipart when an image is attached. Requests
// share a rate limiter so a burst of alerts cannot flood the gateway.
type HTTPTransport struct {
	client  *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewHTTPTransport builds a transport. perSecond <= 0 disables limiting.
func NewHTTPTransport(client *http.Client, timeout time.Duration, perSecond float64, log *logger.Logger) *HTTPTransport {
	if client == nil {
		client = &http.Client{}
	}
	if timeout > 0 {
		client.Timeout = timeout
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &HTTPTransport{client: client, limiter: rate.NewLimiter(limit, 1), log: log}
}

// Post returns the HTTP status. Transport failures report TransportErrorStatus.
func (t *HTTPTransport) Post(ctx context.Context, url string, payload any, image []byte) (int, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return models.TransportErrorStatus, fmt.Errorf("rate limit: %w", err)
	}

	body, contentType, err := encodeBody(payload, image)
	if err != nil {
		return models.TransportErrorStatus, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return models.TransportErrorStatus, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		t.log.Warnw("push_request_failed", "url", url, "error", err)
		return models.TransportErrorStatus, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		t.log.Infow("push_rejected", "url", url, "status", resp.StatusCode, "body", string(msg))
		return resp.StatusCode, fmt.Errorf("%w: %d", ErrNon2xx, resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	t.log.Debugw("push_accepted", "url", url, "status", resp.StatusCode)
	return resp.StatusCode, nil
}

func encodeBody(payload any, image []byte) (io.Reader, string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode payload: %w", err)
	}
	if len(image) == 0 {
		return bytes.NewReader(data), "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	imgHeader := make(textproto.MIMEHeader)
	imgHeader.Set("Content-Disposition", `form-data; name="image"; filename="image.jpg"`)
	imgHeader.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(imgHeader)
	if err != nil {
		return nil, "", fmt.Errorf("multipart image: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", fmt.Errorf("multipart image: %w", err)
	}

	jsonHeader := make(textproto.MIMEHeader)
	jsonHeader.Set("Content-Disposition", `form-data; name="json"`)
	jsonHeader.Set("Content-Type", "application/json")
	part, err = w.CreatePart(jsonHeader)
	if err != nil {
		return nil, "", fmt.Errorf("multipart json: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("multipart json: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("multipart close: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
