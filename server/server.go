package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"seo_blog_writer/generator"
)

//go:embed web
var embeddedStatic embed.FS

// maxBodyBytes 限制请求体大小。
const maxBodyBytes = 1 << 20

// Generator is what the server needs from the generation core.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (generator.Result, error)
}

type Server struct {
	gen      Generator
	timeout  time.Duration
	logger   *log.Logger
	staticFS http.Handler
}

// Options tunes a Server. Zero values are valid.
type Options struct {
	// GenerateTimeout bounds one generation; 0 means no limit.
	GenerateTimeout time.Duration
	// Logger receives request logs; nil disables them.
	Logger *log.Logger
}

func New(gen Generator, opts Options) (*Server, error) {
	if gen == nil {
		return nil, errors.New("generator required")
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		gen:      gen,
		timeout:  opts.GenerateTimeout,
		logger:   opts.Logger,
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Get("/options", s.handleOptions)
	})
	r.Handle("/*", s.staticFS)
	return r
}

// --- Handlers ---

type errorResp struct {
	Error string `json:"error"`
}

type optionsResp struct {
	Tones            []generator.Tone `json:"tones"`
	DefaultTone      generator.Tone   `json:"defaultTone"`
	WordCounts       []int            `json:"wordCounts"`
	DefaultWordCount int              `json:"defaultWordCount"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generator.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: generator.UserMessage(err)})
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.gen.Generate(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, generator.ErrEmptyTopic) {
			status = http.StatusBadRequest
		}
		s.logf("[api] generate failed request_id=%s: %v", middleware.GetReqID(r.Context()), err)
		writeJSON(w, status, errorResp{Error: generator.UserMessage(err)})
		return
	}

	if result.ID != "" {
		w.Header().Set("X-Generation-ID", result.ID)
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResp{
		Tones:            generator.Tones,
		DefaultTone:      generator.DefaultTone,
		WordCounts:       generator.WordCountOptions,
		DefaultWordCount: generator.DefaultWordCount,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logf(format string, args ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logf("[http] %s %s status=%d bytes=%d duration=%s request_id=%s",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}
