package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"skillfit/internal/ai"
	"skillfit/internal/errors"
	"skillfit/internal/gaps"
	"skillfit/internal/jdparser"
	"skillfit/internal/matching"
	"skillfit/internal/observability"
	"skillfit/internal/taxonomy"
	"skillfit/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// startSpan opens an API span annotated with the request id
func startSpan(ctx context.Context, om *observability.ObservabilityManager, name string) (context.Context, oteltrace.Span) {
	ctx, span := om.Tracer("skillfit.api").Start(ctx, name)
	if id := requestIDFromContext(ctx); id != "" {
		span.SetAttributes(attribute.String("request.id", id))
	}
	return ctx, span
}

// newParser builds a job parser, wiring in the assisted extractor when
// an AI provider is configured
func (s *Server) newParser() (*jdparser.Parser, error) {
	var extractor jdparser.Extractor
	if s.AppConfig.AI.Enabled {
		extractConfig := s.AppConfig.GetExtractConfig()
		aiService, err := ai.NewService(&extractConfig, "extract", s.Logger)
		if err != nil {
			return nil, err
		}
		extractor = aiService
	}
	return jdparser.New(taxonomy.Default(), extractor, s.Logger), nil
}

// newGenerator builds a gap question generator with the model drafter
// when an AI provider is configured
func (s *Server) newGenerator() (*gaps.Generator, error) {
	var drafter gaps.Drafter
	if s.AppConfig.AI.Enabled {
		gapConfig := s.AppConfig.GetGapQuestionConfig()
		aiService, err := ai.NewService(&gapConfig, "gap_question", s.Logger)
		if err != nil {
			return nil, err
		}
		drafter = aiService
	}
	return gaps.NewGenerator(drafter, s.Logger), nil
}

// resolveProfile returns the inlined profile, or loads it from the
// store by user id
func (s *Server) resolveProfile(ctx context.Context, profile *types.CareerData, userID string) (types.CareerData, int, error) {
	if profile != nil {
		return *profile, 0, nil
	}
	if userID == "" {
		return types.CareerData{}, http.StatusBadRequest, fmt.Errorf("profile or userId is required")
	}
	if s.Store == nil {
		return types.CareerData{}, http.StatusBadRequest, fmt.Errorf("userId reference requires a configured store")
	}
	career, err := s.Store.GetProfile(ctx, userID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeProfileNotFound {
			return types.CareerData{}, http.StatusNotFound, err
		}
		return types.CareerData{}, http.StatusServiceUnavailable, err
	}
	return career, 0, nil
}

// resolveJob returns the inlined parsed job, or loads the persisted
// form from the store by job id. The stored form is used verbatim.
func (s *Server) resolveJob(ctx context.Context, job *types.ParsedJobDescription, jobID string) (types.ParsedJobDescription, int, error) {
	if job != nil {
		return *job, 0, nil
	}
	if jobID == "" {
		return types.ParsedJobDescription{}, http.StatusBadRequest, fmt.Errorf("job or jobId is required")
	}
	if s.Store == nil {
		return types.ParsedJobDescription{}, http.StatusBadRequest, fmt.Errorf("jobId reference requires a configured store")
	}
	parsed, err := s.Store.GetJob(ctx, jobID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeJobNotFound {
			return types.ParsedJobDescription{}, http.StatusNotFound, err
		}
		return types.ParsedJobDescription{}, http.StatusServiceUnavailable, err
	}
	return parsed, 0, nil
}

// createParseJobHandler wraps the job parse handler with observability
func (s *Server) createParseJobHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), om, "api.parse_job")
		defer span.End()

		var req ParseJobRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.RawText) == "" {
			err := fmt.Errorf("missing job description text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "rawText field is required", http.StatusBadRequest)
			return
		}

		assisted := req.Assisted == nil || *req.Assisted
		span.SetAttributes(
			attribute.Int("request.job_length", len(req.RawText)),
			attribute.Bool("request.assisted", assisted),
			attribute.String("operation", "parse_job"),
		)

		parser, err := s.newParser()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var parsed types.ParsedJobDescription
		_ = metrics.TrackOperation(ctx, "parse_job", func(ctx context.Context) *observability.OperationResult {
			parsed = parser.Parse(ctx, req.RawText, assisted)
			return &observability.OperationResult{}
		}, om)

		response := ParseJobResponse{Job: parsed}
		if s.Store != nil && req.UserID != "" {
			jobID, err := s.Store.SaveJob(ctx, req.UserID, req.RawText, parsed)
			if err != nil {
				span.RecordError(err)
				metrics.RecordBusinessMetric(ctx, "job_parsed", false, om,
					attribute.String("error", err.Error()))
				writeErrorResponse(w, "Failed to persist job", err.Error(), http.StatusServiceUnavailable)
				return
			}
			response.JobID = jobID
		}

		metrics.RecordBusinessMetric(ctx, "job_parsed", true, om,
			attribute.Int("required_skills", len(parsed.RequiredSkills)),
			attribute.Int("preferred_skills", len(parsed.PreferredSkills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.required_skills", len(parsed.RequiredSkills)),
			attribute.Int("response.preferred_skills", len(parsed.PreferredSkills)),
		)

		writeJSONResponse(w, response)
	}
}

// createListJobsHandler lists the ids of jobs persisted for a user
func (s *Server) createListJobsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), om, "api.list_jobs")
		defer span.End()

		if r.Method != http.MethodGet {
			writeErrorResponse(w, "Method not allowed", "Only GET is supported", http.StatusMethodNotAllowed)
			return
		}
		if s.Store == nil {
			writeErrorResponse(w, "Store not configured", "Job listing requires a configured store", http.StatusBadRequest)
			return
		}

		userID := r.URL.Query().Get("userId")
		if userID == "" {
			writeErrorResponse(w, "Missing userId", "userId query parameter is required", http.StatusBadRequest)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				writeErrorResponse(w, "Invalid limit", "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		span.SetAttributes(attribute.String("operation", "list_jobs"))

		jobIDs, err := s.Store.ListJobs(ctx, userID, limit)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to list jobs", err.Error(), http.StatusServiceUnavailable)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.jobs", len(jobIDs)),
		)

		writeJSONResponse(w, map[string]any{"jobIds": jobIDs})
	}
}

// createCoverageHandler wraps the coverage handler with observability
func (s *Server) createCoverageHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), om, "api.coverage")
		defer span.End()

		var req CoverageRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		career, status, err := s.resolveProfile(ctx, req.Profile, req.UserID)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to resolve profile", err.Error(), status)
			return
		}
		job, status, err := s.resolveJob(ctx, req.Job, req.JobID)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to resolve job", err.Error(), status)
			return
		}

		span.SetAttributes(
			attribute.Int("request.profile_skills", len(career.Skills)),
			attribute.Int("request.required_skills", len(job.RequiredSkills)),
			attribute.String("operation", "coverage"),
		)

		engine := matching.NewEngine(taxonomy.Default())
		coverage := engine.GenerateCoverageMap(career, job)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "coverage_computed", true, om,
			attribute.Int("overall_score", coverage.OverallScore),
			attribute.Int("items", len(coverage.Items)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.overall_score", coverage.OverallScore),
		)

		writeJSONResponse(w, coverage)
	}
}

// createGapQuestionsHandler wraps the gap questions handler with observability
func (s *Server) createGapQuestionsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), om, "api.gap_questions")
		defer span.End()

		var req GapQuestionsRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		career, status, err := s.resolveProfile(ctx, req.Profile, req.UserID)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to resolve profile", err.Error(), status)
			return
		}
		job, status, err := s.resolveJob(ctx, req.Job, req.JobID)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to resolve job", err.Error(), status)
			return
		}

		assisted := (req.Assisted == nil || *req.Assisted) && s.AppConfig.AI.Enabled
		span.SetAttributes(
			attribute.Bool("request.assisted", assisted),
			attribute.String("operation", "gap_questions"),
		)

		generator, err := s.newGenerator()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		engine := matching.NewEngine(taxonomy.Default())
		coverage := engine.GenerateCoverageMap(career, job)

		metrics := om.GetMetrics()
		var analysis types.GapAnalysis
		_ = metrics.TrackOperation(ctx, "gap_questions", func(ctx context.Context) *observability.OperationResult {
			analysis = generator.Generate(ctx, coverage, career, assisted)
			return &observability.OperationResult{}
		}, om)

		metrics.RecordBusinessMetric(ctx, "gap_questions_generated", true, om,
			attribute.Int("questions", len(analysis.Questions)),
			attribute.Int("total_gaps", analysis.TotalGaps),
			attribute.Int("critical_gaps", analysis.CriticalGaps))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.questions", len(analysis.Questions)),
			attribute.Int("response.total_gaps", analysis.TotalGaps),
		)

		writeJSONResponse(w, analysis)
	}
}

// createGapResponsesHandler wraps the gap responses handler with observability
func (s *Server) createGapResponsesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), om, "api.gap_responses")
		defer span.End()

		var req GapResponsesRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if len(req.Responses) == 0 {
			err := fmt.Errorf("missing responses")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing responses", "responses field is required", http.StatusBadRequest)
			return
		}

		career, status, err := s.resolveProfile(ctx, req.Profile, req.UserID)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to resolve profile", err.Error(), status)
			return
		}

		span.SetAttributes(
			attribute.Int("request.responses", len(req.Responses)),
			attribute.String("operation", "gap_responses"),
		)

		updated := gaps.ApplyResponses(career, req.Responses)

		// Persist the updated profile when it lives in the store
		if s.Store != nil && req.UserID != "" {
			if err := s.Store.UpsertProfile(ctx, req.UserID, updated); err != nil {
				span.RecordError(err)
				writeErrorResponse(w, "Failed to persist profile", err.Error(), http.StatusServiceUnavailable)
				return
			}
		}

		response := GapResponsesResponse{Profile: updated}

		// Recompute coverage when the job is available
		if req.Job != nil || req.JobID != "" {
			job, status, err := s.resolveJob(ctx, req.Job, req.JobID)
			if err != nil {
				span.RecordError(err)
				writeErrorResponse(w, "Failed to resolve job", err.Error(), status)
				return
			}
			engine := matching.NewEngine(taxonomy.Default())
			coverage := engine.GenerateCoverageMap(updated, job)
			response.Coverage = &coverage
			span.SetAttributes(attribute.Int("response.overall_score", coverage.OverallScore))
		}

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "responses_applied", true, om,
			attribute.Int("responses", len(req.Responses)),
			attribute.Int("profile_skills", len(updated.Skills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.profile_skills", len(updated.Skills)),
		)

		writeJSONResponse(w, response)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeJSONResponse encodes a successful JSON response
func writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
