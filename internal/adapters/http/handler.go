package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/concilio-labs/concilio/internal/app/orchestrator"
	"github.com/concilio-labs/concilio/internal/domain"
)

type Server struct {
	orch *orchestrator.Orchestrator
}

func NewServer(orch *orchestrator.Orchestrator) http.Handler {
	s := &Server{orch: orch}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /personas → discovery (GET)
	mux.HandleFunc("/personas", s.handlePersonas)

	// /invoke → run one turn (POST)
	mux.HandleFunc("/invoke", s.handleInvoke)

	return chainMiddlewares(mux, withRequestID, withCORS, withLogging)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type personaResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type listPersonasResponse struct {
	Personas []personaResponse `json:"personas"`
}

type invokeRequest struct {
	Persona   string `json:"persona"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type invokeResponse struct {
	Persona string `json:"persona"`
	Reply   string `json:"reply"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePersonas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	infos := s.orch.Personas()
	resp := listPersonasResponse{Personas: make([]personaResponse, 0, len(infos))}
	for _, info := range infos {
		resp.Personas = append(resp.Personas, personaResponse{
			ID:          string(info.ID),
			Description: info.Description,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		badRequest(w, "message is required")
		return
	}

	persona, err := domain.ParsePersona(req.Persona)
	if err != nil {
		writeError(w, err)
		return
	}

	reply, err := s.orch.Invoke(
		r.Context(),
		persona,
		domain.UserID(req.UserID),
		domain.SessionID(req.SessionID),
		req.Message,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, invokeResponse{
		Persona: string(persona),
		Reply:   reply,
	})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses: caller mistakes are
// 400, store/engine faults are 502 so the caller knows a retry may help.
func writeError(w http.ResponseWriter, err error) {
	var unknown *domain.UnknownPersonaError
	var missing *domain.MissingIdentityError
	var storeFault *domain.StoreFault
	var engineFault *domain.EngineFault

	switch {
	case errors.As(err, &unknown), errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &storeFault), errors.As(err, &engineFault):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
