// Package server exposes the invoice editor over HTTP. A browser front end
// creates an editing session, streams single field edits into it, reads the
// preview projection back, and downloads the finished PDF.
package server

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rezonia/invoice-editor/internal/editor"
	"github.com/rezonia/invoice-editor/internal/money"
	"github.com/rezonia/invoice-editor/internal/render"
	"github.com/rezonia/invoice-editor/internal/store"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
	store  store.Store
	log    zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*editor.Session
}

// NewServer creates a new API server. The store seeds and remembers the
// sender text across sessions; pass nil for a purely in-memory server.
func NewServer(config *Config, st store.Store, log zerolog.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if st == nil {
		st = store.NewMemory()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	s := &Server{
		config:   config,
		router:   router,
		store:    st,
		log:      log,
		sessions: make(map[string]*editor.Session),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/sessions", s.handleCreateSession)
		v1.GET("/sessions/:id", s.handleGetSession)
		v1.PUT("/sessions/:id/header", s.handleEditHeader)
		v1.POST("/sessions/:id/items", s.handleAddItem)
		v1.PUT("/sessions/:id/items/:index", s.handleEditItem)
		v1.DELETE("/sessions/:id/items/:index", s.handleRemoveItem)
		v1.GET("/sessions/:id/preview", s.handlePreview)
		v1.GET("/sessions/:id/export", s.handleExport)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	sess := editor.NewSession(s.store, s.log)
	id := sess.Invoice().ID

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	c.JSON(http.StatusCreated, stateOf(sess))
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateOf(sess))
}

func (s *Server) handleEditHeader(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	if err := sess.EditHeader(req.Field, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stateOf(sess))
}

func (s *Server) handleEditItem(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	index, ok := s.itemIndex(c)
	if !ok {
		return
	}

	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	if err := sess.EditItem(index, req.Field, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stateOf(sess))
}

func (s *Server) handleAddItem(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.AddItem()
	c.JSON(http.StatusOK, stateOf(sess))
}

func (s *Server) handleRemoveItem(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	index, ok := s.itemIndex(c)
	if !ok {
		return
	}

	// Removing the last remaining item is a silent no-op; the response
	// simply carries the unchanged single-item state.
	if err := sess.RemoveItem(index); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stateOf(sess))
}

func (s *Server) handlePreview(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, render.Preview(sess.Invoice()))
}

func (s *Server) handleExport(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	// Export works on a snapshot: edits arriving after this point do not
	// affect the generated document.
	inv := sess.Invoice()
	if !inv.IsExportable() {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "invoice is not ready to export: sender, recipient and at least one priced item are required",
		})
		return
	}

	data, err := render.ExportPDF(inv)
	if err != nil {
		s.log.Error().Err(err).Str("invoice", inv.ID).Msg("export failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "generating the invoice document failed", Details: err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=`+render.Filename(inv))
	c.Data(http.StatusOK, "application/pdf", data)
}

// session resolves the :id route param; writes a 404 and returns false when
// the session does not exist.
func (s *Server) session(c *gin.Context) (*editor.Session, bool) {
	id := c.Param("id")
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown session " + id})
		return nil, false
	}
	return sess, true
}

// itemIndex parses the :index route param; writes a 400 and returns false
// when it is not a number.
func (s *Server) itemIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item index", Details: err.Error()})
		return 0, false
	}
	return index, true
}

func stateOf(sess *editor.Session) StateResponse {
	inv := sess.Invoice()
	return StateResponse{
		Invoice:    inv,
		Exportable: inv.IsExportable(),
		Total:      money.FormatWithCurrency(inv.GrandTotal(), string(inv.Currency)),
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
