package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

const pushURL = "https://push.test/v1/push_printer"

func newMockedTransport(t *testing.T) *HTTPTransport {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewHTTPTransport(client, time.Second, 0, logger.Nop())
}

func TestHTTPTransport_PostsJSON(t *testing.T) {
	tr := newMockedTransport(t)

	var got map[string]any
	httpmock.RegisterResponder(http.MethodPost, pushURL, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
			return nil, err
		}
		return httpmock.NewStringResponse(200, "ok"), nil
	})

	status, err := tr.Post(context.Background(), pushURL, alertPayload{
		Tokens: []string{"t"}, Title: "Prusa", Message: "hi", Sound: "default", PrinterName: "Prusa",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, "Prusa", got["printerName"])
	assert.Equal(t, false, got["useDev"])
	assert.NotContains(t, got, "category")
}

func TestHTTPTransport_MultipartWithImage(t *testing.T) {
	tr := newMockedTransport(t)

	httpmock.RegisterResponder(http.MethodPost, pushURL, func(req *http.Request) (*http.Response, error) {
		mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mediaType)

		r := multipart.NewReader(req.Body, params["boundary"])
		img, err := r.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "image", img.FormName())
		assert.Equal(t, "image.jpg", img.FileName())
		assert.Equal(t, "image/jpeg", img.Header.Get("Content-Type"))
		body, _ := io.ReadAll(img)
		assert.Equal(t, []byte{1, 2, 3}, body)

		js, err := r.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "json", js.FormName())
		raw, _ := io.ReadAll(js)
		assert.True(t, strings.Contains(string(raw), `"printerState":"Operational"`))
		return httpmock.NewStringResponse(201, ""), nil
	})

	status, err := tr.Post(context.Background(), pushURL, jobPayload{
		Tokens: []string{"t"}, PrinterState: "Operational", Silent: true,
	}, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 201, status)
}

func TestHTTPTransport_StatusClasses(t *testing.T) {
	cases := []struct {
		status  int
		wantErr bool
	}{
		{200, false},
		{204, false},
		{304, true},
		{410, true},
		{503, true},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			tr := newMockedTransport(t)
			httpmock.RegisterResponder(http.MethodPost, pushURL, httpmock.NewStringResponder(tc.status, ""))

			status, err := tr.Post(context.Background(), pushURL, mmuPayload{}, nil)
			assert.Equal(t, tc.status, status)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrNon2xx)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHTTPTransport_NetworkError(t *testing.T) {
	tr := newMockedTransport(t)
	httpmock.RegisterResponder(http.MethodPost, pushURL, httpmock.NewErrorResponder(errors.New("refused")))

	status, err := tr.Post(context.Background(), pushURL, mmuPayload{}, nil)
	assert.Equal(t, models.TransportErrorStatus, status)
	assert.Error(t, err)
}

func TestHTTPTransport_RateLimitHonoursContext(t *testing.T) {
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodPost, pushURL, httpmock.NewStringResponder(200, ""))

	tr := NewHTTPTransport(client, time.Second, 0.001, logger.Nop())
	_, err := tr.Post(context.Background(), pushURL, mmuPayload{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	status, err := tr.Post(ctx, pushURL, mmuPayload{}, nil)
	assert.Equal(t, models.TransportErrorStatus, status)
	assert.Error(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}
