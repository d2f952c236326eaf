// Package http provides the HTTP server infrastructure.
// Framework/driver layer - outermost circle; it only translates between the
// wire and the usecases.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docuchat/docuchat-go/internal/domain/entities"
	"github.com/docuchat/docuchat-go/internal/domain/ports"
	"github.com/docuchat/docuchat-go/internal/domain/usecases"
)

const maxUploadBytes = 32 << 20

// Server is the HTTP server for the document chat API.
type Server struct {
	ingest    *usecases.IngestUseCase
	chat      *usecases.ChatUseCase
	registry  *usecases.DocumentRegistry
	extractor ports.TextExtractor
	addr      string
	logger    *zap.Logger
}

// NewServer creates a new HTTP server.
func NewServer(
	ingest *usecases.IngestUseCase,
	chat *usecases.ChatUseCase,
	registry *usecases.DocumentRegistry,
	extractor ports.TextExtractor,
	addr string,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		ingest:    ingest,
		chat:      chat,
		registry:  registry,
		extractor: extractor,
		addr:      addr,
		logger:    logger,
	}
}

// Handler builds the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload-pdf", s.handleUploadPDF)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/document-status", s.handleDocumentStatus)
	return corsMiddleware(s.loggingMiddleware(mux))
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:        s.addr,
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
		// No write timeout: chat responses stream for as long as the model
		// keeps producing.
	}

	s.logger.Info("server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// handleUploadPDF accepts a multipart PDF upload plus the caller's API key,
// extracts its text and runs the ingestion pipeline.
func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	apiKey := r.FormValue("api_key")
	if apiKey == "" {
		writeError(w, http.StatusBadRequest, "api_key is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	text, err := s.extractor.Extract(r.Context(), data)
	if err != nil {
		s.logger.Error("pdf extraction failed", zap.String("file", header.Filename), zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing PDF: %v", err))
		return
	}

	count, err := s.ingest.Ingest(r.Context(), header.Filename, text, apiKey)
	if err != nil {
		if errors.Is(err, usecases.ErrNoExtractedText) {
			writeError(w, http.StatusBadRequest, "No text could be extracted from the PDF")
			return
		}
		s.logger.Error("ingestion failed", zap.String("file", header.Filename), zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing PDF: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       fmt.Sprintf("PDF '%s' uploaded and indexed successfully", header.Filename),
		"chunks_count":  count,
		"document_name": header.Filename,
	})
}

type chatRequest struct {
	UserMessage string `json:"user_message"`
	Model       string `json:"model"`
	APIKey      string `json:"api_key"`
	UseRAG      *bool  `json:"use_rag"` // default true
}

// handleChat streams a completion as plain text fragments.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.UserMessage == "" {
		writeError(w, http.StatusBadRequest, "user_message is required")
		return
	}
	if req.APIKey == "" {
		writeError(w, http.StatusBadRequest, "api_key is required")
		return
	}

	useRAG := true
	if req.UseRAG != nil {
		useRAG = *req.UseRAG
	}

	turn := entities.ChatTurn{
		UserMessage: req.UserMessage,
		Model:       req.Model,
		UseRAG:      useRAG,
		APIKey:      req.APIKey,
	}

	// r.Context() is cancelled when the client disconnects, which stops the
	// stream producer and releases the upstream connection.
	fragments, err := s.chat.Converse(r.Context(), turn)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for fragment := range fragments {
		if _, err := io.WriteString(w, fragment); err != nil {
			return
		}
		flusher.Flush()
	}
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDocumentStatus reports the currently indexed document.
func (s *Server) handleDocumentStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Status())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
