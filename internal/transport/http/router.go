package http

import (
	"net/http"
	"time"

	"emotrack/internal/domain"
	obsmw "emotrack/internal/observability/middleware"
	"emotrack/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Auth        service.AuthService
	Tokens      service.TokenService
	Accounts    service.AccountService
	Students    service.ProfileService[domain.Student]
	Professors  service.ProfileService[domain.Professor]
	HealthStaff service.ProfileService[domain.HealthStaff]
	Courses     service.CourseService
	Emotions    service.EmotionService
}

type Options struct {
	CORSOrigins []string
}

func NewRouter(svc Services, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(obsmw.WithRequestAndTrace)
	r.Use(obsmw.Metrics)
	r.Use(httprate.LimitByIP(100, 1*time.Minute))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	authHandler := &AuthHandler{Auth: svc.Auth}
	accountHandler := &AccountHandler{Accounts: svc.Accounts}
	studentHandler := &ProfileHandler[domain.Student]{Profiles: svc.Students}
	professorHandler := &ProfileHandler[domain.Professor]{Profiles: svc.Professors}
	healthHandler := &ProfileHandler[domain.HealthStaff]{Profiles: svc.HealthStaff}
	courseHandler := &CourseHandler{Courses: svc.Courses}
	emotionHandler := &EmotionHandler{Emotions: svc.Emotions}
	meHandler := &MeHandler{Accounts: svc.Accounts, Courses: svc.Courses}

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())

		// Everything below requires a valid session token.
		r.Group(func(r chi.Router) {
			r.Use(Authenticator(svc.Tokens))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", meHandler.get)
				r.With(RequireRoles(domain.RoleStudent, domain.RoleProfessor)).
					Get("/courses", meHandler.courses)
				r.With(RequireRoles(domain.RoleStudent)).
					Get("/emotions", emotionHandler.listOwn)
				r.With(RequireRoles(domain.RoleStudent)).
					Post("/emotions", emotionHandler.createOwn)
			})

			r.With(RequireRoles(domain.RoleAdmin)).Mount("/accounts", accountHandler.Routes())

			r.Route("/students", func(r chi.Router) {
				r.With(RequireRoles(domain.RoleAdmin, domain.RoleHealth)).
					Get("/{id}/emotions", emotionHandler.listByStudent)
				r.With(RequireRoles(domain.RoleAdmin, domain.RoleHealth, domain.RoleProfessor)).
					Get("/{id}/courses", courseHandler.listByStudent)
				r.With(RequireRoles(domain.RoleAdmin)).Mount("/", studentHandler.Routes())
			})

			r.Route("/professors", func(r chi.Router) {
				r.Get("/{id}/courses", courseHandler.listByProfessor)
				r.With(RequireRoles(domain.RoleAdmin)).Mount("/", professorHandler.Routes())
			})

			r.With(RequireRoles(domain.RoleAdmin)).Mount("/health-staff", healthHandler.Routes())

			r.Mount("/courses", courseHandler.Routes())
		})
	})

	return r
}
