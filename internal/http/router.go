// Package http exposes the quote extraction API.
package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/events"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/extract"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/llm"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/models"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/observability"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/observability/metrics"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/service/batch"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/service/stt"
)

// maxAudioBytes caps the audio clip size accepted by the audio endpoint.
const maxAudioBytes = 10 * 1024 * 1024

// Server holds the handler dependencies.
type Server struct {
	transcriber stt.Transcriber
	publisher   *events.Publisher
	llmClient   *llm.Client
	llmPrompt   string
	batch       *batch.Processor
	metrics     *metrics.Metrics
}

// NewServer wires the API handlers. Transcriber and llmClient may be nil;
// the corresponding endpoints then report the feature as unavailable.
func NewServer(transcriber stt.Transcriber, publisher *events.Publisher, llmClient *llm.Client, llmPrompt string) *Server {
	return &Server{
		transcriber: transcriber,
		publisher:   publisher,
		llmClient:   llmClient,
		llmPrompt:   llmPrompt,
		batch:       batch.NewProcessor(0),
		metrics:     metrics.DefaultMetrics,
	}
}

// NewRouter constructs the HTTP router for the service.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(observability.Middleware(s.metrics))

	// Health endpoints
	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// API routes
	r.Route("/v1", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/extract/simple", s.handleExtractSimple)
		r.Post("/extract/batch", s.handleExtractBatch)
		r.Post("/extract/audio", s.handleExtractAudio)
		r.Post("/extract/llm", s.handleExtractLLM)
	})

	return r
}

type transcriptRequest struct {
	Transcript string `json:"transcript"`
}

type batchRequest struct {
	Transcripts []string `json:"transcripts"`
}

type simpleResponse struct {
	IndexName string `json:"index_name"`
	Price     string `json:"price"`
}

type audioResponse struct {
	Transcript string          `json:"transcript"`
	Confidence float64         `json:"confidence"`
	Record     *extract.Record `json:"record"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleExtract runs the full pipeline on a transcript and returns the
// detailed record. Misses are 422s and emit a failure event.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	start := time.Now()
	rec := extract.Detailed(req.Transcript)
	requestID := uuid.NewString()

	if rec == nil {
		s.metrics.RecordExtraction("transcript", "miss", time.Since(start).Seconds())
		s.publishFailure(r, requestID, "transcript", req.Transcript, "no_index")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "no index found in transcript"})
		return
	}

	s.metrics.RecordExtraction("transcript", "hit", time.Since(start).Seconds())
	s.recordFields(rec)
	s.publishQuote(r, requestID, "transcript", req.Transcript, rec)
	writeJSON(w, http.StatusOK, rec)
}

// handleExtractSimple returns only the index name and price.
func (s *Server) handleExtractSimple(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	start := time.Now()
	index, price, ok := extract.Simple(req.Transcript)
	if !ok {
		s.metrics.RecordExtraction("transcript", "miss", time.Since(start).Seconds())
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "no index found in transcript"})
		return
	}

	s.metrics.RecordExtraction("transcript", "hit", time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, simpleResponse{IndexName: index, Price: price})
}

// handleExtractBatch runs extraction over many transcripts concurrently.
func (s *Server) handleExtractBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(req.Transcripts) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "transcripts must not be empty"})
		return
	}

	results, err := s.batch.Process(r.Context(), req.Transcripts)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "batch processing failed"})
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// handleExtractAudio transcribes an audio clip and runs extraction on the
// result. The request body is the raw audio bytes.
func (s *Server) handleExtractAudio(w http.ResponseWriter, r *http.Request) {
	if s.transcriber == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "transcription is not configured"})
		return
	}

	audio, err := io.ReadAll(io.LimitReader(r.Body, maxAudioBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read audio body"})
		return
	}
	if len(audio) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "empty audio body"})
		return
	}
	if len(audio) > maxAudioBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "audio clip too large"})
		return
	}

	sttStart := time.Now()
	result, err := s.transcriber.Transcribe(r.Context(), audio)
	s.metrics.RecordSTT("configured", err, time.Since(sttStart).Seconds())
	if err != nil {
		if err == stt.ErrEmptyTranscript {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "no speech recognized"})
			return
		}
		log.Error().Err(err).Msg("Transcription failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "transcription failed"})
		return
	}

	start := time.Now()
	rec := extract.Detailed(result.Text)
	requestID := uuid.NewString()

	if rec == nil {
		s.metrics.RecordExtraction("audio", "miss", time.Since(start).Seconds())
		s.publishFailure(r, requestID, "audio", result.Text, "no_index")
	} else {
		s.metrics.RecordExtraction("audio", "hit", time.Since(start).Seconds())
		s.recordFields(rec)
		s.publishQuote(r, requestID, "audio", result.Text, rec)
	}

	writeJSON(w, http.StatusOK, audioResponse{
		Transcript: result.Text,
		Confidence: result.Confidence,
		Record:     rec,
	})
}

// handleExtractLLM runs the model extraction path on a transcript.
func (s *Server) handleExtractLLM(w http.ResponseWriter, r *http.Request) {
	if s.llmClient == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "model extraction is not configured"})
		return
	}

	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	start := time.Now()
	rec, err := s.llmClient.ExtractQuote(r.Context(), s.llmPrompt, req.Transcript)
	if err != nil {
		s.metrics.RecordExtraction("llm", "error", time.Since(start).Seconds())
		log.Warn().Err(err).Msg("Model extraction failed, falling back to pipeline")
		rec = extract.Detailed(req.Transcript)
	}

	requestID := uuid.NewString()
	if rec == nil {
		s.metrics.RecordExtraction("llm", "miss", time.Since(start).Seconds())
		s.publishFailure(r, requestID, "llm", req.Transcript, "no_index")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "no index found in transcript"})
		return
	}

	s.metrics.RecordExtraction("llm", "hit", time.Since(start).Seconds())
	s.publishQuote(r, requestID, "llm", req.Transcript, rec)
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) publishQuote(r *http.Request, requestID, source, transcript string, rec *extract.Record) {
	if s.publisher == nil {
		return
	}
	event := models.NewQuoteExtracted(requestID, source, transcript, time.Now().UnixMilli(), rec)
	if err := s.publisher.PublishQuote(r.Context(), requestID, event); err != nil {
		log.Error().Err(err).Str("requestId", requestID).Msg("Failed to publish quote event")
	}
}

func (s *Server) publishFailure(r *http.Request, requestID, source, transcript, reason string) {
	if s.publisher == nil {
		return
	}
	event := models.NewExtractionFailed(requestID, source, transcript, reason, time.Now().UnixMilli())
	if err := s.publisher.PublishFailure(r.Context(), requestID, event); err != nil {
		log.Error().Err(err).Str("requestId", requestID).Msg("Failed to publish failure event")
	}
}

func (s *Server) recordFields(rec *extract.Record) {
	if rec.MultiIndex {
		s.metrics.RecordMultiIndex()
	}
	for field, value := range map[string]string{
		"price":          rec.Price,
		"change":         rec.Change,
		"change_percent": rec.ChangePercent,
		"session":        rec.Session,
		"session_high":   rec.SessionHigh,
		"session_low":    rec.SessionLow,
	} {
		if value != "" {
			s.metrics.RecordField(field)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
