package http

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/bodygen"
	"github.com/aretw0/bodygen/pkg/catalog"
	"github.com/aretw0/bodygen/pkg/domain"
)

func newEngine(t *testing.T, withCatalog bool) *bodygen.Engine {
	t.Helper()
	opts := []bodygen.Option{
		bodygen.WithBody("cbbe", []float32{0, 0, 0, 1, 1, 1}, &domain.TriFile{Morphs: []domain.MorphChannel{{
			Name:    "BigButt",
			Scale:   0.5,
			Entries: []domain.MorphEntry{{Index: 0, DX: 2, DY: 0, DZ: -4}},
		}}}),
	}
	if withCatalog {
		opts = append(opts, bodygen.WithCatalog(catalog.Build([]catalog.Source{{
			Gender: domain.GenderFemale,
			Descriptors: []domain.SliderDescriptor{
				{Name: "Butt", MorphKey: "BigButt", Minimum: -1, Maximum: 1, Interval: 0.01},
			},
		}}, []domain.SliderCategory{{
			CategoryName: "Butt",
			Entries:      []domain.CategoryEntry{{MorphKey: "BigButt", DisplayName: "Butt Size"}},
		}})))
	}
	eng, err := bodygen.New(opts...)
	require.NoError(t, err)
	return eng
}

func newHandler(t *testing.T, eng Engine, opts ...Option) (*Server, http.Handler) {
	t.Helper()
	srv, err := NewServer(eng, opts...)
	require.NoError(t, err)
	return srv, srv.Handler()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	_, h := newHandler(t, newEngine(t, false))

	w := do(h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(h, "GET", "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	info := decodeBody[map[string]string](t, w)
	assert.Equal(t, "bodygen-http", info["app"])
	assert.Equal(t, "1.0.0", info["api_version"])
}

func TestValidate(t *testing.T) {
	_, h := newHandler(t, newEngine(t, true))

	t.Run("Descriptor", func(t *testing.T) {
		w := do(h, "POST", "/validate", `{"name":"Curvy","descriptor":"BigButt@1.5,Tail@1"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		vp := decodeBody[domain.ValidatedPreset](t, w)
		assert.Equal(t, "Curvy", vp.Name)
		assert.False(t, vp.Valid)
		assert.Equal(t, "BigButt@1", vp.Descriptor)
		assert.Equal(t, domain.GenderFemale, vp.Gender)
		assert.Equal(t, []string{`Slider "Tail" is not supported. Removed.`}, vp.Errors)
		assert.Len(t, vp.Warnings, 1)
	})

	t.Run("Slider List", func(t *testing.T) {
		w := do(h, "POST", "/validate", `{"sliders":[{"name":"BigButt","value":0.25}]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		vp := decodeBody[domain.ValidatedPreset](t, w)
		assert.True(t, vp.Valid)
		assert.Equal(t, "BigButt@0.25", vp.Descriptor)
	})

	t.Run("Bad Descriptor", func(t *testing.T) {
		w := do(h, "POST", "/validate", `{"descriptor":"BigButt@lots"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody[ErrorResponse](t, w).Error, "BigButt@lots")
	})

	t.Run("Schema Rejects Missing Value", func(t *testing.T) {
		w := do(h, "POST", "/validate", `{"sliders":[{"name":"BigButt"}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestValidate_NoCatalog(t *testing.T) {
	_, h := newHandler(t, newEngine(t, false))

	w := do(h, "POST", "/validate", `{"descriptor":"BigButt@1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(h, "GET", "/sliders/female", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTemplates(t *testing.T) {
	_, h := newHandler(t, newEngine(t, false))

	w := do(h, "POST", "/templates/format", `{"text":"#morphs=pluginA.esm;pluginB.esm\nPreset1=BigButt@0.5\n"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decodeBody[map[string]string](t, w)
	assert.Equal(t, "#morphs=pluginA.esm;pluginB.esm\n\nPreset1=BigButt@0.5", out["templates"])
	assert.Equal(t, "pluginA.esm=Preset1\n\npluginB.esm=Preset1", out["morphs"])

	w = do(h, "POST", "/templates/format", `{"text":"Preset1=BigButt@0.5"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "no morphs setting found in templates.ini", decodeBody[ErrorResponse](t, w).Error)

	w = do(h, "POST", "/templates/validate", `{"text":"# header\n#morphs=\n"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeBody[ErrorResponse](t, w)
	assert.Equal(t, 2, resp.Line)
	assert.Equal(t, "morphs setting is empty in templates.ini:2", resp.Error)

	w = do(h, "POST", "/templates/validate", `{"text":"#morphs=a.esp"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true}`, w.Body.String())

	w = do(h, "POST", "/templates/validate", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSliders(t *testing.T) {
	_, h := newHandler(t, newEngine(t, true))

	w := do(h, "GET", "/sliders/female", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[SlidersResponse](t, w)
	assert.Equal(t, "female", resp.Gender)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Butt", resp.Categories[0].Name)
	require.Len(t, resp.Categories[0].Sliders, 1)
	assert.Equal(t, "Butt Size", resp.Categories[0].Sliders[0].DisplayName)

	w = do(h, "GET", "/sliders/male", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[SlidersResponse](t, w).Categories)

	w = do(h, "GET", "/sliders/robot", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreview(t *testing.T) {
	_, h := newHandler(t, newEngine(t, false))

	w := do(h, "GET", "/bodies", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["cbbe"]`, w.Body.String())

	w = do(h, "POST", "/preview/cbbe", `{"descriptor":"BigButt@1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[PreviewResponse](t, w)
	assert.Equal(t, 2, resp.Vertices)
	assert.Equal(t, []float32{1, 0, -2, 1, 1, 1}, resp.Positions)
	require.NotNil(t, resp.Bounds)
	assert.Equal(t, [3]float32{1, 0, -2}, resp.Bounds.Min)
	assert.Equal(t, [3]float32{1, 1, 1}, resp.Bounds.Max)

	w = do(h, "POST", "/preview/cbbe", `{"descriptor":"BigButt@1","recenter":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decodeBody[PreviewResponse](t, w)
	assert.Equal(t, []float32{0, -0.5, -1.5, 0, 0.5, 1.5}, resp.Positions)

	w = do(h, "POST", "/preview/unp", `{"descriptor":"BigButt@1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpecAndUnknownRoutes(t *testing.T) {
	_, h := newHandler(t, newEngine(t, false))

	w := do(h, "GET", "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/templates/format")

	w = do(h, "GET", "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, "OPTIONS", "/validate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, h := newHandler(t, newEngine(t, false), WithRegistry(reg))

	do(h, "GET", "/health", "")
	do(h, "GET", "/health", "")

	w := do(h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bodygen_http_requests_total{code="200",method="GET",route="/health"} 2`)
}

func TestEvents(t *testing.T) {
	srv, h := newHandler(t, newEngine(t, false))
	ts := httptest.NewServer(h)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	readUntil := func(want string) {
		t.Helper()
		for lines.Scan() {
			if lines.Text() == want {
				return
			}
		}
		t.Fatalf("stream ended before %q: %v", want, lines.Err())
	}

	readUntil("data: connected")
	require.Eventually(t, func() bool { return srv.Events().Len() == 1 }, time.Second, 10*time.Millisecond)

	srv.Notify("Sliders/CBBE.osp")
	readUntil("event: reload")
	readUntil("data: Sliders/CBBE.osp")
}

func TestEventHub(t *testing.T) {
	hub := NewEventHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ch, unsubscribe := hub.Subscribe()
	assert.Equal(t, 1, hub.Len())

	hub.Broadcast("a")
	assert.Equal(t, "a", <-ch)

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, hub.Len())
	_, open := <-ch
	assert.False(t, open)

	hub.Broadcast("b")
}

func TestListenAndServe_Shutdown(t *testing.T) {
	srv, err := NewServer(newEngine(t, false))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}
