package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/employee-api/internal/middleware"
)

// APIPrefix - корень версионированного API
const APIPrefix = "/api/v1"

// protectedPrefix - всё, что под ним, требует API-ключ
const protectedPrefix = "/api/"

// Router настраивает маршруты API
type Router struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	empHandler *EmployeeHandler
	apiKey     string
	limiter    *middleware.RateLimiter
}

// NewRouter создаёт новый роутер. limiter может быть nil, тогда лимит не применяется.
func NewRouter(empHandler *EmployeeHandler, apiKey string, limiter *middleware.RateLimiter, logger *slog.Logger) *Router {
	return &Router{
		mux:        http.NewServeMux(),
		logger:     logger,
		empHandler: empHandler,
		apiKey:     apiKey,
		limiter:    limiter,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc(APIPrefix+"/employees", r.employeesRouter)
	r.mux.HandleFunc(APIPrefix+"/employees/", r.employeesRouter)

	r.mux.HandleFunc(APIPrefix+"/health", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			r.empHandler.MethodNotAllowed(w, req)
			return
		}
		r.empHandler.Health(w, req)
	})

	// Всё остальное, включая корень, не обслуживается
	r.mux.HandleFunc("/", r.empHandler.NotFound)

	handler := middleware.APIKey(r.apiKey, protectedPrefix, r.empHandler.Unauthorized)(r.mux)
	if r.limiter != nil {
		handler = r.limiter.Middleware(r.empHandler.TooManyRequests)(handler)
	}
	handler = middleware.ContentType(handler)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// employeesRouter обрабатывает все запросы к /api/v1/employees
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, APIPrefix+"/employees")
	path = strings.Trim(path, "/")

	if path == "" {
		switch req.Method {
		case http.MethodGet:
			r.empHandler.List(w, req)
		case http.MethodPost:
			r.empHandler.Create(w, req)
		default:
			r.empHandler.MethodNotAllowed(w, req)
		}
		return
	}

	if strings.Contains(path, "/") {
		r.empHandler.NotFound(w, req)
		return
	}

	// /api/v1/employees/{id}
	switch req.Method {
	case http.MethodGet:
		r.empHandler.GetByID(w, req)
	case http.MethodPut:
		r.empHandler.Update(w, req)
	case http.MethodDelete:
		r.empHandler.Delete(w, req)
	default:
		r.empHandler.MethodNotAllowed(w, req)
	}
}
