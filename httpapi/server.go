// Package httpapi exposes the staff directory over HTTP. Controllers stay
// thin: they bind and validate payloads, call into the domain packages, and
// translate rich errors into status codes in one place.
package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/difurigo/avant-api/auth"
	"github.com/difurigo/avant-api/recommend"
	"github.com/difurigo/avant-api/repository"
)

// Config is the slice of the process configuration the server needs.
type Config interface {
	GetContextKey() string
}

// Server owns the fiber app and the wiring between routes and the domain.
type Server struct {
	app        *fiber.App
	repos      repository.Manager
	auther     *auth.Authenticator
	tokens     auth.TokenValidator
	scorer     *recommend.Scorer
	contextKey string
	logger     auth.Logger
}

type ServerOption func(*Server) *Server

func WithServerLogger(logger auth.Logger) ServerOption {
	return func(s *Server) *Server {
		if logger != nil {
			s.logger = logger
		}
		return s
	}
}

// New assembles the app and registers every route. The returned server is
// ready for Listen or for in-process dispatch through App().Test.
func New(cfg Config, repos repository.Manager, auther *auth.Authenticator, tokens auth.TokenValidator, opts ...ServerOption) *Server {
	s := &Server{
		repos:      repos,
		auther:     auther,
		tokens:     tokens,
		scorer:     recommend.NewScorer(),
		contextKey: cfg.GetContextKey(),
		logger:     &defLogger{},
	}

	for _, opt := range opts {
		s = opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "avant-api",
		ErrorHandler: s.errorHandler,
	})

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	v1 := s.app.Group("/api/v1")

	autenticacao := v1.Group("/autenticacao")
	autenticacao.Post("/registrar-gerente", s.RegisterManager)
	autenticacao.Post("/login", s.Login)

	funcionarios := v1.Group("/funcionarios")
	funcionarios.Post("/", s.requireRole(auth.RoleManager), s.CreateEmployee)
	funcionarios.Get("/", s.requireRole(auth.RoleManager), s.ListEmployees)
	funcionarios.Get("/:id", s.requireAuth(), s.GetEmployee)
	funcionarios.Delete("/:id", s.requireRole(auth.RoleManager), s.DeleteEmployee)
	funcionarios.Put("/:id/plano-carreira", s.requireRole(auth.RoleEmployee), s.UpdateCareerPlan)

	equipes := v1.Group("/equipes")
	equipes.Post("/", s.requireRole(auth.RoleManager), s.CreateTeam)
	equipes.Get("/:id", s.requireRole(auth.RoleManager), s.GetTeam)

	v2 := s.app.Group("/api/v2")
	v2.Post("/funcionarios/recomendacao-plano", s.requireAuth(), s.RecommendPlan)
}

// App exposes the underlying fiber app, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving requests on addr.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) { d.print("[ERR]", msg, args) }
func (d defLogger) Warn(msg string, args ...any)  { d.print("[WRN]", msg, args) }
func (d defLogger) Info(msg string, args ...any)  { d.print("[INF]", msg, args) }
func (d defLogger) Debug(msg string, args ...any) { d.print("[DBG]", msg, args) }

func (defLogger) print(level, msg string, args []any) {
	i := 0
	for ; i+1 < len(args); i += 2 {
		msg += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	if i < len(args) {
		msg += fmt.Sprintf(" %v", args[i])
	}
	fmt.Println(level + " HTTP " + msg)
}
