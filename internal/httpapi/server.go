package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/ledger"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
	"go.uber.org/zap"
)

// Server exposes a Ledger over HTTP. Requests are serialised through one mutex, so
// events are applied in the order their requests acquire it.
type Server struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	logger *zap.Logger
}

func NewServer(l *ledger.Ledger, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{ledger: l, logger: logger}
}

type eventRequest struct {
	Type   string         `json:"type"`
	Client uint16         `json:"client"`
	TxID   uint32         `json:"tx"`
	Amount *models.Amount `json:"amount"`
}

type eventResponse struct {
	Applied bool             `json:"applied"`
	Code    models.ErrorCode `json:"code,omitempty"`
	Reason  string           `json:"reason,omitempty"`
}

// Handler returns the routes served by s.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("POST /events", s.applyEvent)
	mux.HandleFunc("GET /accounts", s.listAccounts)
	mux.HandleFunc("GET /accounts/balance", s.balance)
	return mux
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// applyEvent answers 202 for every well-formed body. A dropped event is reported in the
// response, not as an HTTP error, since dropping is a normal outcome.
func (s *Server) applyEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	evt := models.Event{
		Type:   models.EventType(req.Type),
		Client: req.Client,
		TxID:   req.TxID,
		Amount: req.Amount,
	}

	s.mu.Lock()
	err := s.ledger.Apply(evt)
	s.mu.Unlock()

	if err == nil {
		writeJSON(w, http.StatusAccepted, eventResponse{Applied: true})
		return
	}

	var de models.DomainError
	if !errors.As(err, &de) {
		s.logger.Error("apply event", zap.Error(err), zap.Uint32("tx", evt.TxID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Debug("event dropped",
		zap.String("type", req.Type),
		zap.Uint32("tx", evt.TxID),
		zap.Uint16("client", evt.Client),
		zap.String("code", string(de.Code)),
	)
	writeJSON(w, http.StatusAccepted, eventResponse{Code: de.Code, Reason: de.Message})
}

func (s *Server) listAccounts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	accounts := s.ledger.Snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("client")
	if raw == "" {
		http.Error(w, "client is a mandatory field", http.StatusBadRequest)
		return
	}
	client, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		http.Error(w, "client must be an integer between 0 and 65535", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	acc, ok := s.ledger.Account(uint16(client))
	s.mu.Unlock()

	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
