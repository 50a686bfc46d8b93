// Package httpapi exposes the register over HTTP. Callers identify
// themselves with the X-Actor-Email header; every route checks the actor's
// permission before touching the register.
package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/ports"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

const actorHeader = "X-Actor-Email"

type Server struct {
	register *register.Service
	users    *users.Service
}

func NewServer(registerSvc *register.Service, usersSvc *users.Service) *Server {
	return &Server{
		register: registerSvc,
		users:    usersSvc,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/schema", s.handleSchema)

		r.Route("/systems", func(r chi.Router) {
			r.Get("/", s.handleListSystems)
			r.Post("/", s.handleCreateSystem)

			r.Route("/{systemID}", func(r chi.Router) {
				r.Get("/", s.handleGetAssessment)
				r.Put("/", s.handleSaveAssessment)
				r.Delete("/", s.handleDeleteSystem)
				r.Put("/status", s.handleChangeStatus)
				r.Put("/related-assessments", s.handleSetRelatedAssessment)
				r.Put("/scores", s.handleScoreDimension)
				r.Post("/mitigations", s.handleAddMitigation)
				r.Patch("/mitigations/{itemID}", s.handleUpdateMitigation)
				r.Delete("/mitigations/{itemID}", s.handleRemoveMitigation)
				r.Patch("/metadata", s.handleUpdateMetadata)
				r.Patch("/details", s.handleUpdateDetails)
				r.Patch("/approvals", s.handleUpdateApprovals)
				r.Patch("/monitoring", s.handleUpdateMonitoring)
				r.Patch("/links", s.handleUpdateLinks)
				r.Get("/report", s.handleReport)
				r.Get("/export", s.handleExport)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleAddUser)
			r.Patch("/{email}", s.handleUpdateUser)
			r.Delete("/{email}", s.handleDeleteUser)
		})
	})

	return r
}

// authorize resolves the actor header and checks one permission token.
func (s *Server) authorize(r *http.Request, permission string) (ports.User, error) {
	actor := strings.TrimSpace(r.Header.Get(actorHeader))
	return s.users.Authorize(r.Context(), actor, permission)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := logging.WithRequest(r.Context(), chimw.GetReqID(r.Context()))
		if actor := strings.TrimSpace(r.Header.Get(actorHeader)); actor != "" {
			ctx = logging.WithActor(ctx, actor)
		}

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		logging.Info(ctx, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
