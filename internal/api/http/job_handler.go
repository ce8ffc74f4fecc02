// internal/api/http/job_handler.go
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"jobboard/internal/domain"
	"jobboard/internal/metrics"
	"jobboard/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// phonePattern accepts an optional leading + followed by digits, spaces or
// dashes. Deliberately loose: listings carry phone numbers from many
// regions and the field is display-only.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}$`)

// JobHandler handles the /api/jobs HTTP surface.
type JobHandler struct {
	service  *usecase.JobService
	logger   *slog.Logger
	validate *validator.Validate
	tracer   trace.Tracer
}

// NewJobHandler creates a new JobHandler and initializes the validator.
func NewJobHandler(service *usecase.JobService, logger *slog.Logger) *JobHandler {
	validate := validator.New()

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &JobHandler{
		service:  service,
		logger:   logger.With("component", "job-handler"),
		validate: validate,
		tracer:   otel.Tracer("jobboard-api"),
	}
}

// A helper struct to capture the status code
type instrumentedResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *instrumentedResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// RegisterRoutes registers the job API routes on the http.ServeMux.
func (h *JobHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", h.handleHealth)

	baseHandler := http.HandlerFunc(h.handleJobs)

	instrumentedHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := routeLabel(r.URL.Path)

		ctx, span := h.tracer.Start(r.Context(), "HTTP "+r.Method+" "+path, trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		))
		defer span.End()

		r = r.WithContext(ctx)

		iw := &instrumentedResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		baseHandler.ServeHTTP(iw, r)

		metrics.HttpRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(iw.statusCode)).Inc()

		span.SetAttributes(attribute.Int("http.status_code", iw.statusCode))
		if iw.statusCode >= 500 {
			span.SetStatus(codes.Error, "Server Error")
		}
	})

	mux.Handle("/api/jobs", instrumentedHandler)
	mux.Handle("/api/jobs/", instrumentedHandler)
}

// routeLabel collapses concrete identifiers so metrics stay low-cardinality.
func routeLabel(path string) string {
	rest := strings.Trim(strings.TrimPrefix(path, "/api/jobs"), "/")
	switch {
	case rest == "":
		return "/api/jobs"
	case strings.HasSuffix(rest, "/view"):
		return "/api/jobs/{id}/view"
	default:
		return "/api/jobs/{id}"
	}
}

// handleJobs is a general dispatcher for the /api/jobs path.
func (h *JobHandler) handleJobs(w http.ResponseWriter, r *http.Request) {
	// e.g. /api/jobs/65ab.../view -> ["api", "jobs", "65ab...", "view"]
	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	if len(pathParts) < 2 || pathParts[0] != "api" || pathParts[1] != "jobs" {
		http.NotFound(w, r)
		return
	}

	var jobID, action string
	if len(pathParts) > 2 {
		jobID = pathParts[2]
	}
	if len(pathParts) > 3 {
		action = pathParts[3]
	}

	switch r.Method {
	case http.MethodGet:
		if jobID == "" && action == "" {
			h.handleListJobs(w, r)
		} else if jobID != "" && action == "" {
			h.handleGetJob(w, r, jobID)
		} else {
			http.NotFound(w, r)
		}
	case http.MethodPost:
		if jobID == "" && action == "" {
			h.handleCreateJob(w, r)
		} else if jobID != "" && action == "view" {
			h.handleRecordView(w, r, jobID)
		} else {
			http.NotFound(w, r)
		}
	case http.MethodPut, http.MethodPatch:
		if jobID != "" && action == "" {
			h.handleUpdateJob(w, r, jobID)
		} else {
			h.writeMessage(w, http.StatusBadRequest, "job id is required for update")
		}
	case http.MethodDelete:
		if jobID != "" && action == "" {
			h.handleDeleteJob(w, r, jobID)
		} else {
			h.writeMessage(w, http.StatusBadRequest, "job id is required for deletion")
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *JobHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleListJobs serves GET /api/jobs with page, limit and q parameters.
func (h *JobHandler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "handler.ListJobs")
	defer span.End()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	q := domain.ListQuery{
		Term:  r.URL.Query().Get("q"),
		Page:  page,
		Limit: limit,
	}

	result, err := h.service.List(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list jobs from service")
		h.logger.Error("error listing jobs", "error", err)
		h.writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// handleCreateJob serves POST /api/jobs.
func (h *JobHandler) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "handler.CreateJob")
	defer span.End()

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.SetStatus(codes.Error, "Failed to decode request body")
		span.RecordError(err)
		h.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.validateRequest(w, span, &req) {
		return
	}

	job, err := h.service.Create(ctx, req.ToDomainJob())
	if err != nil {
		h.writeServiceError(w, span, "error creating job", err)
		return
	}
	span.SetAttributes(attribute.String("job.id", job.ID))

	h.writeJSON(w, http.StatusCreated, job)
}

// handleGetJob serves GET /api/jobs/{id}.
func (h *JobHandler) handleGetJob(w http.ResponseWriter, r *http.Request, id string) {
	ctx, span := h.tracer.Start(r.Context(), "handler.GetJob")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	job, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(w, span, "error getting job", err)
		return
	}

	h.writeJSON(w, http.StatusOK, job)
}

// handleUpdateJob serves PUT/PATCH /api/jobs/{id}.
func (h *JobHandler) handleUpdateJob(w http.ResponseWriter, r *http.Request, id string) {
	ctx, span := h.tracer.Start(r.Context(), "handler.UpdateJob")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.SetStatus(codes.Error, "Failed to decode request body")
		span.RecordError(err)
		h.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		h.writeMessage(w, http.StatusBadRequest, "email required for update verification")
		return
	}
	if !h.validateRequest(w, span, &req) {
		return
	}

	job, err := h.service.Update(ctx, id, req.Email, req.ToChanges())
	if err != nil {
		h.writeServiceError(w, span, "error updating job", err)
		return
	}

	h.writeJSON(w, http.StatusOK, job)
}

// handleDeleteJob serves DELETE /api/jobs/{id}, verified by email.
func (h *JobHandler) handleDeleteJob(w http.ResponseWriter, r *http.Request, id string) {
	ctx, span := h.tracer.Start(r.Context(), "handler.DeleteJob")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	var req DeleteJobRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if strings.TrimSpace(req.Email) == "" {
		h.writeMessage(w, http.StatusBadRequest, "email required for delete verification")
		return
	}

	if err := h.service.Delete(ctx, id, req.Email); err != nil {
		h.writeServiceError(w, span, "error deleting job", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "job deleted successfully"})
}

// handleRecordView serves POST /api/jobs/{id}/view. Best-effort: the caller
// always gets 204.
func (h *JobHandler) handleRecordView(w http.ResponseWriter, r *http.Request, id string) {
	ctx, span := h.tracer.Start(r.Context(), "handler.RecordView")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	h.service.RecordView(ctx, id)
	w.WriteHeader(http.StatusNoContent)
}

// validateRequest runs struct validation and writes a 400 with per-field
// details on failure.
func (h *JobHandler) validateRequest(w http.ResponseWriter, span trace.Span, req any) bool {
	err := h.validate.Struct(req)
	if err == nil {
		return true
	}

	span.SetStatus(codes.Error, "Validation failed")
	span.RecordError(err)

	var validationErrors []string
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			validationErrors = append(validationErrors,
				"Field '"+fe.Field()+"' failed on the '"+fe.Tag()+"' tag.",
			)
		}
	}
	h.writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": "validation failed",
		"details": validationErrors,
	})
	return false
}

// writeServiceError maps domain errors onto HTTP statuses. Anything outside
// the taxonomy is a store failure: logged with its cause, surfaced as a
// generic 500.
func (h *JobHandler) writeServiceError(w http.ResponseWriter, span trace.Span, logMsg string, err error) {
	span.RecordError(err)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		span.SetStatus(codes.Error, "Validation failed")
		h.writeMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrJobNotFound):
		span.SetStatus(codes.Error, "Job not found")
		h.writeMessage(w, http.StatusNotFound, "job not found")
	case errors.Is(err, domain.ErrEmailMismatch):
		span.SetStatus(codes.Error, "Email verification failed")
		h.writeMessage(w, http.StatusUnauthorized, "email verification failed")
	default:
		span.SetStatus(codes.Error, "Internal error")
		h.logger.Error(logMsg, "error", err)
		h.writeMessage(w, http.StatusInternalServerError, "server error")
	}
}

func (h *JobHandler) writeMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"message": msg})
}

func (h *JobHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
