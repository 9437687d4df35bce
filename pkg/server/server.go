package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/0x0FACED/fortune-sweep/pkg/config"
	"github.com/0x0FACED/fortune-sweep/pkg/logger"
	"github.com/0x0FACED/fortune-sweep/pkg/render"
	"github.com/0x0FACED/fortune-sweep/pkg/sites"
	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
	"github.com/0x0FACED/fortune-sweep/static"
)

const (
	sessionCookie = "fortune-session"
	maxSites      = 200
)

// session is one browser's sweep. Its log buffer holds the records of the
// last request only.
type session struct {
	mu        sync.Mutex
	sweep     *voronoi.Sweep
	log       *logger.ZapLogger
	circles   bool
	parabolas bool

	// lastUsed is guarded by Server.mu.
	lastUsed time.Time
}

type Server struct {
	cfg    config.Config
	log    *logger.ZapLogger
	router chi.Router
	now    func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	rng      *rand.Rand
}

func New(cfg config.Config, log *logger.ZapLogger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*session),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Get("/", s.handlePage)
	r.Post("/advance", s.handleAdvance)
	r.Post("/reset", s.handleReset)
	r.Get("/snapshot", s.handleSnapshot)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("[server] listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	interval := s.cfg.Server.SessionTTL / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			return err
		case <-ticker.C:
			s.evictIdle()
		case <-ctx.Done():
			return s.shutdown(srv)
		}
	}
}

func (s *Server) shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("[server] shutting down")
	return srv.Shutdown(ctx)
}

// evictIdle drops the sessions nobody used for longer than the session TTL.
// A non-positive TTL keeps every session.
func (s *Server) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdleLocked(s.now())
}

func (s *Server) evictIdleLocked(now time.Time) int {
	if s.cfg.Server.SessionTTL <= 0 {
		return 0
	}
	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.cfg.Server.SessionTTL {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.log.Info("[server] idle sessions evicted", zap.Int("evicted", evicted), zap.Int("sessions", len(s.sessions)))
	}
	return evicted
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("[server] request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request-id", middleware.GetReqID(r.Context())),
		)
	})
}

// session finds the caller's session by cookie, creating one if needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if sess, ok := s.sessions[id]; ok {
				sess.lastUsed = now
				return sess, nil
			}
		}
	}
	s.evictIdleLocked(now)

	sess := &session{
		log:       logger.NewWithOptions(logger.Options{Level: s.level()}),
		circles:   s.cfg.Render.ShowCircles,
		parabolas: s.cfg.Render.ShowParabolas,
		lastUsed:  now,
	}
	if err := sess.reset(s.cfg, s.cfg.Points()); err != nil {
		return nil, err
	}

	id := uuid.New()
	s.sessions[id] = sess
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.log.Info("[server] new session", zap.String("session", id.String()), zap.Int("sessions", len(s.sessions)))
	return sess, nil
}

func (s *Server) level() zapcore.Level {
	level, err := logger.ParseLevel(s.cfg.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func (sess *session) reset(cfg config.Config, points []voronoi.Point) error {
	sweep, err := voronoi.New(points, cfg.SweepOptions(sess.log)...)
	if err != nil {
		return err
	}
	sess.sweep = sweep
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.writePage(w, sess, http.StatusOK)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	delta := s.cfg.Sweep.Step
	if v := r.FormValue("delta"); v != "" {
		if delta, err = strconv.ParseFloat(v, 64); err != nil {
			http.Error(w, fmt.Sprintf("delta: %v", err), http.StatusBadRequest)
			return
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// the page form always posts its checkboxes
	if r.Form.Has("delta") {
		sess.circles = r.FormValue("circles") == "on"
		sess.parabolas = r.FormValue("parabolas") == "on"
	}

	status := http.StatusOK
	if err := sess.sweep.Advance(delta); err != nil {
		sess.log.Error("[server] advance failed", zap.Float64("delta", delta), zap.Error(err))
		status = http.StatusUnprocessableEntity
		if errors.Is(err, voronoi.ErrNegativeSweep) {
			status = http.StatusBadRequest
		}
	}
	s.writePage(w, sess, status)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	points, err := s.points(r.FormValue("layout"), r.FormValue("sites"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.reset(s.cfg, points); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess.log.Info("[server] sweep reset", zap.Int("sites", len(points)))
	s.writePage(w, sess, http.StatusOK)
}

func (s *Server) points(layout, count string) ([]voronoi.Point, error) {
	if layout == "" || layout == "default" {
		return s.cfg.Points(), nil
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 1 || n > maxSites {
		return nil, fmt.Errorf("sites: want a count in [1, %d], got %q", maxSites, count)
	}
	w, h := int(s.cfg.Render.XMax), int(s.cfg.Render.YMax)
	switch layout {
	case "random":
		s.mu.Lock()
		defer s.mu.Unlock()
		return sites.Random(s.rng, n, w, h)
	case "grid":
		return sites.Grid(n, w, h)
	}
	return nil, fmt.Errorf("unknown layout %q", layout)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sess.mu.Lock()
	snap := sess.sweep.Snapshot()
	sess.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.Error("[server] encode snapshot", zap.Error(err))
	}
}

func (s *Server) writePage(w http.ResponseWriter, sess *session, status int) {
	defer sess.log.ClearLogs()

	snap := sess.sweep.Snapshot()
	o := render.Options{
		Width:         s.cfg.Render.Width,
		Height:        s.cfg.Render.Height,
		XMax:          s.cfg.Render.XMax,
		YMax:          s.cfg.Render.YMax,
		ShowCircles:   sess.circles,
		ShowParabolas: sess.parabolas,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	fmt.Fprintln(w, static.Part1)
	fmt.Fprintf(w, static.Controls, snap.Sweep, s.cfg.Sweep.Step, checked(sess.circles), checked(sess.parabolas), len(snap.Sites))
	if err := render.Render(w, snap, o); err != nil {
		s.log.Error("[server] render", zap.Error(err))
	}
	fmt.Fprintln(w, static.Part2)
	fmt.Fprintln(w, sess.log.HTML())
	fmt.Fprintln(w, static.Part3)
}

func checked(on bool) string {
	if on {
		return "checked"
	}
	return ""
}
