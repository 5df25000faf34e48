package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"langtagger/internal/api"
	"langtagger/internal/config"
	"langtagger/internal/logging"
	"langtagger/internal/scan"
	"langtagger/internal/services"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 500
)

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil || d == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.API.Bind)
	if bind == "" {
		return nil, nil
	}

	srv := &apiServer{
		bind:   bind,
		logger: logger,
		daemon: d,
	}
	srv.server = &http.Server{
		Handler:           srv.routes(cfg.API.Token),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// No write timeout: wait=1 requests hold the response until the pass ends.
		IdleTimeout: 60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) routes(token string) http.Handler {
	mux := http.NewServeMux()
	handle := func(path string, h http.HandlerFunc) {
		mux.HandleFunc(path, requestIDMiddleware(authMiddleware(token, h)))
	}
	handle("/api/status", s.handleStatus)
	handle("/api/scan", s.handleScan)
	handle("/api/tags/remove", s.handleRemoveTags)
	handle("/api/non-media", s.handleNonMedia)
	handle("/api/runs", s.handleRuns)
	handle("/api/runs/", s.handleRun)
	return mux
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) address() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	payload := api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		Backend:      status.Backend,
		DatabasePath: status.DatabasePath,
		LockFilePath: status.LockFilePath,
		Dependencies: api.FromDependencies(status.Dependencies),
	}
	if status.Current != nil {
		payload.Current = api.FromCurrent(*status.Current)
	}
	if status.LastRun != nil {
		last := api.FromRunRecord(*status.LastRun)
		payload.LastRun = &last
	}
	if sched := status.Schedule; sched != nil {
		payload.Schedule = &api.Schedule{
			Expression:  sched.Expression,
			Scope:       string(sched.Scope),
			FullRefresh: sched.FullRefresh,
		}
		if !sched.Next.IsZero() {
			payload.Schedule.Next = sched.Next.UTC().Format(time.RFC3339)
		}
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	scope, err := scan.ParseScope(query.Get("scope"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.dispatch(w, r, Request{
		Operation:   OpScan,
		Scope:       scope,
		FullRefresh: queryBool(query.Get("full")),
		Trigger:     TriggerAPI,
	})
}

func (s *apiServer) handleRemoveTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.dispatch(w, r, Request{Operation: OpRemoveTags, Trigger: TriggerAPI})
}

func (s *apiServer) handleNonMedia(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.dispatch(w, r, Request{Operation: OpNonMedia, Trigger: TriggerAPI})
	case http.MethodDelete:
		s.dispatch(w, r, Request{Operation: OpRemoveNonMedia, Trigger: TriggerAPI})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// dispatch runs req inline when wait=1, otherwise launches it and replies 202.
func (s *apiServer) dispatch(w http.ResponseWriter, r *http.Request, req Request) {
	logger := logging.WithContext(r.Context(), s.log())
	if !queryBool(r.URL.Query().Get("wait")) {
		if err := s.daemon.Launch(req); err != nil {
			s.writeError(w, statusFor(err), err.Error())
			return
		}
		logger.Info("pass accepted", logging.String("operation", string(req.Operation)))
		s.writeJSON(w, http.StatusAccepted, api.AcceptedResponse{
			Accepted:  true,
			Operation: string(req.Operation),
			Scope:     string(req.Scope),
		})
		return
	}

	report, err := s.daemon.Execute(r.Context(), req)
	if err != nil && report.RunID == "" {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	s.writeJSON(w, status, api.RunResponse{Run: api.FromReport(report, req.Trigger)})
}

func (s *apiServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit := defaultRunLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(parsed, maxRunLimit)
	}
	runs, err := s.daemon.Runs(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.RunListResponse{Runs: api.FromRunRecords(runs)})
}

func (s *apiServer) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	run, err := s.daemon.Run(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	s.writeJSON(w, http.StatusOK, api.RunResponse{Run: api.FromRunRecord(*run)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrScanInProgress):
		return http.StatusConflict
	case errors.Is(err, services.ErrConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func queryBool(value string) bool {
	value = strings.TrimSpace(value)
	return value == "1" || strings.EqualFold(value, "true") || strings.EqualFold(value, "yes")
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String(logging.FieldComponent, "api-server"))
	}
	return logging.NewNop()
}
