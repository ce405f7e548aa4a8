// Package server serves a story to the browser for play-testing. The page at /
// is the same standalone page the html export produces, with a websocket that
// reloads it whenever the story is swapped.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jorge-barreto/fater/internal/export"
	"github.com/jorge-barreto/fater/internal/log"
	"github.com/jorge-barreto/fater/internal/story"
)

const reloadPath = "/ws"

type Config struct {
	Addr  string
	CORS  bool
	Debug bool
	Meta  export.Meta
}

type Server struct {
	router *gin.Engine
	addr   string
	meta   export.Meta
	logger *slog.Logger

	mu    sync.RWMutex
	story *story.Story

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
	upgrader  websocket.Upgrader
}

// New builds a server for st. A missing IFID is generated once so every
// response carries the same one.
func New(cfg Config, st *story.Story) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Meta.IFID == "" {
		cfg.Meta.IFID = export.NewDocument(st, cfg.Meta).IFID
	}

	router := gin.New()
	s := &Server{
		router:  router,
		addr:    cfg.Addr,
		meta:    cfg.Meta,
		logger:  log.WithComponent("server"),
		story:   st,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	router.Use(gin.Recovery(), s.requestLog())
	if cfg.CORS {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
		}))
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/", s.page)
	s.router.GET("/sections/:id", s.fragment)
	s.router.GET(reloadPath, s.reload)

	api := s.router.Group("/api")
	api.GET("/health", s.health)
	api.GET("/story", s.document)
	api.GET("/sections/:id", s.section)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Story returns the story currently being served.
func (s *Server) Story() *story.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.story
}

// SetStory swaps the served story and tells connected pages to reload.
func (s *Server) SetStory(st *story.Story) {
	s.mu.Lock()
	s.story = st
	s.mu.Unlock()
	s.broadcast("reload")
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", "http://"+s.addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.closeClients()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sections": s.Story().Len(),
	})
}

func (s *Server) document(c *gin.Context) {
	c.JSON(http.StatusOK, export.NewDocument(s.Story(), s.meta))
}

// lookup resolves the :id parameter. __RESTART resolves to the start section.
func (s *Server) lookup(c *gin.Context) (*story.Section, bool) {
	id := strings.ToUpper(c.Param("id"))
	sec, ok := s.Story().Resolve(story.Identifier(id))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no section " + id})
	}
	return sec, ok
}

func (s *Server) section(c *gin.Context) {
	sec, ok := s.lookup(c)
	if !ok {
		return
	}
	doc := export.NewDocument(s.Story(), s.meta)
	for _, d := range doc.Sections {
		if d.ID == sec.ID().String() {
			c.JSON(http.StatusOK, d)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "no section " + sec.ID().String()})
}

func (s *Server) fragment(c *gin.Context) {
	sec, ok := s.lookup(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(sec.Render()))
}

func (s *Server) page(c *gin.Context) {
	st := s.Story()
	body, err := export.RenderPage(st, export.NewDocument(st, s.meta), export.PageOptions{LiveReload: reloadPath})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}
