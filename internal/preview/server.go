// Package preview serves a drawing over HTTP and animates it in the
// browser by streaming its instructions over a websocket.
package preview

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/hexwalk/pkg/errors"
	"github.com/matzehuels/hexwalk/pkg/sink"
)

// Defaults for [Options].
const (
	DefaultAddr     = "127.0.0.1:8080"
	DefaultBatch    = 4
	DefaultInterval = 16 * time.Millisecond
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Options configures a [Server].
type Options struct {
	Addr string
	// Batch is the number of instructions per websocket message.
	Batch int
	// Interval is the delay between messages.
	Interval time.Duration
	Logger   *log.Logger
}

func (o *Options) setDefaults() {
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.Batch <= 0 {
		o.Batch = DefaultBatch
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Server serves one drawing at a time. The drawing can be swapped while
// clients are connected; running animations keep the drawing they started
// with.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader

	mu  sync.RWMutex
	doc sink.Document
}

// New creates a server for doc.
func New(doc sink.Document, opts Options) *Server {
	opts.setDefaults()
	return &Server{
		opts: opts,
		doc:  doc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
		},
	}
}

// SetDocument replaces the served drawing.
func (s *Server) SetDocument(doc sink.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}

// Document returns the served drawing.
func (s *Server) Document() sink.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Handler returns the HTTP routes of the preview.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/drawing.svg", s.handleSVG)
	r.Get("/drawing.json", s.handleJSON)
	r.Get("/ws", s.handleWS)
	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := errors.ValidateListenAddr(s.opts.Addr); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.opts.Logger.Info("preview listening", "url", "http://"+s.opts.Addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		<-done
		return nil
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "preview server")
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.opts.Logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}

type indexData struct {
	Width, Height float64 // millimetres
	ViewW, ViewH  float64 // drawing units
	Seed          uint64
	Total         int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc := s.Document()
	size := doc.Size()
	data := indexData{
		Width:  doc.Canvas.X,
		Height: doc.Canvas.Y,
		ViewW:  size.X,
		ViewH:  size.Y,
		Seed:   doc.Seed,
		Total:  len(doc.Instructions),
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	limit := -1
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(sink.RenderSVG(s.Document(), sink.WithLimit(limit)))
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	data, err := sink.RenderJSON(s.Document(), sink.WithStats())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
