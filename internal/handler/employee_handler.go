package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/employee-api/internal/domain"
	"github.com/employee-api/internal/dto"
	"github.com/employee-api/internal/middleware"
	"github.com/employee-api/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type EmployeeHandler struct {
	empService service.EmployeeService
	validator  *validator.Validate
	logger     *slog.Logger
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		empService: empService,
		validator:  newValidator(),
		logger:     logger,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank отсутствует среди стандартных правил
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseListQuery(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.validator.Struct(&query); err != nil {
		h.handleError(w, r, domain.Validation("validation error", err))
		return
	}

	views, err := h.empService.List(r.Context(), query.Page, query.PageSize)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, views)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	view, err := h.empService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	view, err := h.decodeView(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// id назначает хранилище, даже нулевой id во входных данных недопустим
	if view.ID != nil {
		h.handleError(w, r, domain.Validation("validation error", errors.New("id must not be set on create")))
		return
	}

	if err := h.validator.Struct(&view); err != nil {
		h.handleError(w, r, domain.Validation("validation error", err))
		return
	}

	saved, err := h.empService.Save(r.Context(), view)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, saved)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	view, err := h.decodeView(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// id из пути перекрывает id из тела
	view = view.WithID(id)
	if err := h.validator.Struct(&view); err != nil {
		h.handleError(w, r, domain.Validation("validation error", err))
		return
	}

	updated, err := h.empService.Update(r.Context(), view)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *EmployeeHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Unauthorized отвечает на запрос без верного API-ключа
func (h *EmployeeHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	h.handleError(w, r, domain.ErrInvalidAPIKey)
}

// TooManyRequests отвечает клиенту, превысившему лимит запросов
func (h *EmployeeHandler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusTooManyRequests, "too many requests", "")
}

func (h *EmployeeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusNotFound, "not found", "")
}

func (h *EmployeeHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusMethodNotAllowed, "method not allowed", "")
}

func (h *EmployeeHandler) decodeView(r *http.Request) (dto.EmployeeView, error) {
	var view dto.EmployeeView
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&view); err != nil {
		return view, domain.Validation("invalid request body", err)
	}
	return view, nil
}

func (h *EmployeeHandler) extractID(r *http.Request) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, APIPrefix+"/employees/")
	path = strings.TrimSuffix(path, "/")

	if path == "" || strings.Contains(path, "/") {
		return 0, domain.Validation("invalid employee id", errors.New("id is required"))
	}

	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		return 0, domain.Validation("invalid employee id", err)
	}

	param := dto.EmployeeIDParam{ID: id}
	if err := h.validator.Struct(&param); err != nil {
		return 0, domain.Validation("invalid employee id", err)
	}

	return id, nil
}

func (h *EmployeeHandler) parseListQuery(r *http.Request) (dto.ListEmployeesQuery, error) {
	query := dto.ListEmployeesQuery{
		Page:     dto.DefaultPage,
		PageSize: dto.DefaultPageSize,
	}

	values := r.URL.Query()
	for name, target := range map[string]*int{"page": &query.Page, "pageSize": &query.PageSize} {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return query, domain.Validation("invalid query parameter", fmt.Errorf("%s: %w", name, err))
		}
		*target = n
	}

	return query, nil
}

func (h *EmployeeHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		h.respondError(w, http.StatusBadRequest, messageOf(err), causeOf(err))
	case domain.KindNotFound:
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case domain.KindUnauthorized:
		h.respondError(w, http.StatusUnauthorized, "invalid api key", "")
	default:
		h.logger.Error("internal error",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func messageOf(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

func causeOf(err error) string {
	var de *domain.Error
	if errors.As(err, &de) && de.Cause != nil {
		return de.Cause.Error()
	}
	return ""
}

func (h *EmployeeHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *EmployeeHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
