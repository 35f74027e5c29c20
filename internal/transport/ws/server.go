// Package ws bridges editor sessions to the stage over a websocket: one
// HELLO/WELCOME handshake, then COMMANDs in and STATE frames out.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"spritelab.dev/internal/protocol"
	"spritelab.dev/internal/sim/stage"
)

type Server struct {
	stage *stage.Stage
	log   *log.Logger

	upgrader  websocket.Upgrader
	cmdSchema *jsonschema.Schema
}

func NewServer(st *stage.Stage, logger *log.Logger) (*Server, error) {
	// The authoring boundary: every COMMAND is checked against the wire
	// schema before anything reaches the engine.
	cmdSchema, err := protocol.CompileSchema("command.schema.json")
	if err != nil {
		return nil, err
	}
	return &Server{
		stage: st,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		cmdSchema: cmdSchema,
	}, nil
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID, out := s.handshake(conn)
		if sessionID == "" {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			s.handleMessage(sessionID, msg)
		}

		// Cleanup.
		s.stage.Unwatch() <- sessionID
	}
}

// handleMessage validates one inbound frame. Malformed authored data is
// logged and dropped here; it never reaches the engine.
func (s *Server) handleMessage(sessionID string, msg []byte) {
	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeCommand {
		return
	}

	var doc any
	if err := json.Unmarshal(msg, &doc); err != nil {
		s.dropCommand(sessionID, err)
		return
	}
	if err := s.cmdSchema.Validate(doc); err != nil {
		s.dropCommand(sessionID, err)
		return
	}

	var cmd protocol.CommandMsg
	if err := json.Unmarshal(msg, &cmd); err != nil {
		s.dropCommand(sessionID, err)
		return
	}
	if err := protocol.ValidateCommand(cmd); err != nil {
		s.dropCommand(sessionID, err)
		return
	}

	s.stage.Inbox() <- stage.CommandEnvelope{SessionID: sessionID, Cmd: cmd}
}

func (s *Server) dropCommand(sessionID string, err error) {
	s.stage.Counters().CommandsDropped.Add(1)
	s.log.Printf("dropped malformed command from %s: %v", sessionID, err)
}

func (s *Server) handshake(conn *websocket.Conn) (sessionID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return "", nil
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return "", nil
	}
	if hello.ClientName == "" {
		hello.ClientName = "editor"
	}

	maxQ := hello.Capabilities.MaxQueue
	if maxQ <= 0 {
		maxQ = 8
	}
	if maxQ > 64 {
		maxQ = 64
	}
	out = make(chan []byte, maxQ)

	respCh := make(chan stage.WatchResponse, 1)
	s.stage.Watch() <- stage.WatchRequest{ClientName: hello.ClientName, Out: out, Resp: respCh}
	resp := <-respCh

	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       resp.SessionID,
		StageParams:     resp.Params,
	}
	if err := writeJSON(conn, welcome); err != nil {
		s.stage.Unwatch() <- resp.SessionID
		return "", nil
	}

	return resp.SessionID, out
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
