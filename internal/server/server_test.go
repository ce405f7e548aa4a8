package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jorge-barreto/fater/internal/export"
	"github.com/jorge-barreto/fater/internal/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const src = `START:
A fork in the road.

left -> LEFT
right -> RIGHT
---
LEFT:
A dead end.

-> END
---
RIGHT:
A wall.

-> LEFT
---
`

const testIFID = "3F2504E0-4F89-11D3-9A0C-0305E82C3301"

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, err := story.Parse(src)
	require.NoError(t, err)
	cfg.Debug = true
	if cfg.Meta.IFID == "" {
		cfg.Meta.IFID = testIFID
	}
	return New(cfg, st)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := get(t, s.Handler(), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status   string `json:"status"`
		Sections int    `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 3, body.Sections)
}

func TestStoryDocument(t *testing.T) {
	s := newTestServer(t, Config{Meta: export.Meta{Name: "Fork"}})
	rec := get(t, s.Handler(), "/api/story")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc export.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Fork", doc.Name)
	assert.Equal(t, testIFID, doc.IFID)
	assert.Equal(t, "START", doc.Start)
	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "RIGHT", doc.Sections[2].ID)
	assert.Equal(t, story.LabelContinue, doc.Sections[2].Choices[0].Label)
}

func TestGeneratedIFIDIsStable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st, err := story.Parse(src)
	require.NoError(t, err)
	s := New(Config{Debug: true}, st)

	var first, second export.Document
	require.NoError(t, json.Unmarshal(get(t, s.Handler(), "/api/story").Body.Bytes(), &first))
	require.NoError(t, json.Unmarshal(get(t, s.Handler(), "/api/story").Body.Bytes(), &second))
	assert.NotEmpty(t, first.IFID)
	assert.Equal(t, first.IFID, second.IFID)
}

func TestSectionJSON(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := get(t, s.Handler(), "/api/sections/LEFT")
	require.Equal(t, http.StatusOK, rec.Code)
	var sec export.Section
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sec))
	assert.Equal(t, []string{"A dead end."}, sec.Description)
	require.Len(t, sec.Choices, 2)
	assert.Equal(t, "__MENU", sec.Choices[1].Goto)

	rec = get(t, s.Handler(), "/api/sections/__RESTART")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sec))
	assert.Equal(t, "START", sec.ID)

	for _, id := range []string{"NOWHERE", "__MENU", "END"} {
		assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/api/sections/"+id).Code, id)
	}
}

func TestFragment(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := get(t, s.Handler(), "/sections/start")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `data-fater-goto="LEFT"`)
	assert.Contains(t, rec.Body.String(), `data-fater-goto="RIGHT"`)
}

func TestPage(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<template id="fater-RIGHT">`)
	assert.Contains(t, body, "new WebSocket(")
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, Config{CORS: true})
	// httptest requests are addressed to example.com; an Origin on that host
	// is same-origin and gets no CORS headers
	crossOrigin := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://other.test")
		return req
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, crossOrigin())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	s = newTestServer(t, Config{})
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, crossOrigin())
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetStoryBroadcastsReload(t *testing.T) {
	s := newTestServer(t, Config{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + reloadPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.clientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	next, err := story.Parse("START:\nRewritten.\n\n-> END\n---\n")
	require.NoError(t, err)
	s.SetStory(next)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "reload", string(msg))
	assert.Equal(t, 1, s.Story().Len())

	conn.Close()
	require.Eventually(t, func() bool { return s.clientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestRunStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	s := newTestServer(t, Config{Addr: addr})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
