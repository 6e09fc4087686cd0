package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/creditlens/internal/assessment"
	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/pkg/logger"
)

const (
	// Ping/Pong settings
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second

	maxMessageBytes = maxBodyBytes
)

// Loan session message types
const (
	MessageReady     = "ready"
	MessageStructure = "structure"
	MessageError     = "error"
)

// LoanSessionStart is the first client message of a what-if session
type LoanSessionStart struct {
	Dataset contracts.Dataset     `json:"dataset"`
	Year    int                   `json:"year"`
	Bureau  *contracts.AECBReport `json:"bureau,omitempty"`
}

// LoanMessage is every server message of a what-if session
type LoanMessage struct {
	Type       string                   `json:"type"`
	Error      string                   `json:"error,omitempty"`
	Assessment *assessment.Assessment   `json:"assessment,omitempty"`
	Structure  *contracts.LoanStructure `json:"structure,omitempty"`
}

// LoanSocket serves the loan what-if websocket.
// Every parameter message re-derives the structure from scratch.
type LoanSocket struct {
	service  *assessment.Service
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewLoanSocket creates a new loan what-if websocket handler
func NewLoanSocket(service *assessment.Service, log *logger.Logger) *LoanSocket {
	return &LoanSocket{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		logger: log,
	}
}

// Serve upgrades the connection and runs the session
// GET /ws/loan
func (s *LoanSocket) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error
		s.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageBytes)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.pingLoop(ctx, conn)

	// 1. Session start: dataset + year
	var start LoanSessionStart
	if err := conn.ReadJSON(&start); err != nil {
		s.logger.WithError(err).Debug("Loan session closed before start")
		return
	}

	base, err := s.service.Assess(ctx, assessment.Request{
		Dataset: start.Dataset,
		Year:    start.Year,
		Bureau:  start.Bureau,
	})
	if err != nil {
		s.write(conn, LoanMessage{Type: MessageError, Error: err.Error()})
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid session start"),
			time.Now().Add(writeWait))
		return
	}
	if err := s.write(conn, LoanMessage{Type: MessageReady, Assessment: base}); err != nil {
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"run_id": base.RunID,
		"year":   start.Year,
	}).Debug("Loan session started")

	// 2. Parameter changes
	for {
		var params contracts.LoanParameters
		if err := conn.ReadJSON(&params); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.WithError(err).Warn("Loan session read failed")
			}
			return
		}

		structure, err := s.service.ProjectLoan(ctx, params, start.Dataset, start.Year)
		msg := LoanMessage{Type: MessageStructure, Structure: structure}
		if err != nil {
			msg = LoanMessage{Type: MessageError, Error: err.Error()}
		}
		if err := s.write(conn, msg); err != nil {
			return
		}
	}
}

func (s *LoanSocket) write(conn *websocket.Conn, msg LoanMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.WithError(err).Warn("Loan session write failed")
		return err
	}
	return nil
}

// pingLoop keeps the read deadline alive; WriteControl is safe alongside WriteJSON
func (s *LoanSocket) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
