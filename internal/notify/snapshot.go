package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"print_notifier/internal/config"
)

// ErrNoSnapshotURL is returned when no camera is configured.
var ErrNoSnapshotURL = errors.New("camera snapshot url not configured")

// maxSnapshotBytes bounds a single camera frame.
const maxSnapshotBytes = 8 << 20

// Snapshotter fetches one camera frame.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]byte, error)
}

// HTTPSnapshotter fetches JPEG frames from an HTTP camera endpoint and keeps
// the last one for cache_ttl, so a progress and a completion alert a few
// seconds apart share a frame.
type HTTPSnapshotter struct {
	client   *http.Client
	settings func() config.CameraConfig
	cache    *cache.Cache
}

func NewHTTPSnapshotter(client *http.Client, settings func() config.CameraConfig) *HTTPSnapshotter {
	if client == nil {
		client = &http.Client{}
	}
	ttl := settings().CacheTTL.Std()
	return &HTTPSnapshotter{
		client:   client,
		settings: settings,
		cache:    cache.New(ttl, 2*ttl+time.Second),
	}
}

// Snapshot returns a cached frame or fetches a new one within camera.timeout.
func (s *HTTPSnapshotter) Snapshot(ctx context.Context) ([]byte, error) {
	cfg := s.settings()
	url := strings.TrimSpace(cfg.SnapshotURL)
	if url == "" {
		return nil, ErrNoSnapshotURL
	}
	if img, ok := s.cache.Get(url); ok {
		return img.([]byte), nil
	}

	if t := cfg.Timeout.Std(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapshot fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot fetch: status %d", resp.StatusCode)
	}
	img, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
	if err != nil {
		return nil, fmt.Errorf("snapshot read: %w", err)
	}
	if len(img) == 0 {
		return nil, errors.New("snapshot fetch: empty body")
	}

	if ttl := cfg.CacheTTL.Std(); ttl > 0 {
		s.cache.Set(url, img, ttl)
	}
	return img, nil
}
