package http

import (
	"encoding/json"
	"log"
	"net/http"

	"awareness-training-service/internal/app"
	"awareness-training-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler drives one quiz session per connection.
type WSHandler struct {
	service  *app.TrainingService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.TrainingService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	QuizID string `json:"quizId"`
}

type selectPayload struct {
	QuestionIndex int `json:"questionIndex"`
	OptionIndex   int `json:"optionIndex"`
}

type leaderboardPayload struct {
	Limit int `json:"limit"`
}

type openPayload struct {
	ProgramID string `json:"programId"`
}

type connectedPayload struct {
	UserID string `json:"userId"`
}

type resultPayload struct {
	Result      domain.SubmissionResult `json:"result"`
	SavedTo     app.Source              `json:"savedTo,omitempty"`
	SaveFailure string                  `json:"saveFailure,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the training use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	participant := app.Participant{
		UserID:     r.URL.Query().Get("userId"),
		Name:       r.URL.Query().Get("name"),
		Department: r.URL.Query().Get("department"),
	}
	if participant.UserID == "" {
		participant.UserID = app.AnonymousUserID()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	defer h.service.EndSession(participant.UserID)

	send := func(typ string, payload any) bool {
		if err := conn.WriteJSON(outboundMessage[any]{Type: typ, Payload: payload}); err != nil {
			log.Printf("ws write error: %v", err)
			return false
		}
		return true
	}
	sendErr := func(err error) bool {
		return send("error", errorPayload{Message: err.Error()})
	}

	if !send("connected", connectedPayload{UserID: participant.UserID}) {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}

		ok := true
		switch inbound.Type {
		case "start":
			var payload startPayload
			if len(inbound.Payload) > 0 {
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					ok = send("error", errorPayload{Message: "invalid start payload"})
					break
				}
			}
			session, err := h.service.StartQuiz(r.Context(), participant.UserID, payload.QuizID)
			if err != nil {
				ok = sendErr(err)
				break
			}
			ok = send("session", session.Snapshot())
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				ok = send("error", errorPayload{Message: "invalid select payload"})
				break
			}
			snap, err := h.service.SelectAnswer(participant.UserID, payload.QuestionIndex, payload.OptionIndex)
			if err != nil {
				ok = sendErr(err)
				break
			}
			ok = send("session", snap)
		case "next", "previous":
			move := h.service.Next
			if inbound.Type == "previous" {
				move = h.service.Previous
			}
			snap, err := move(participant.UserID)
			if err != nil {
				ok = sendErr(err)
				break
			}
			ok = send("session", snap)
		case "submit":
			result, receipt, err := h.service.SubmitQuiz(r.Context(), participant)
			if err != nil && !app.IsPersistenceFailure(err) {
				ok = sendErr(err)
				break
			}
			payload := resultPayload{Result: result, SavedTo: receipt.Source}
			if err != nil {
				payload.SaveFailure = err.Error()
			}
			ok = send("result", payload)
		case "leaderboard":
			var payload leaderboardPayload
			if len(inbound.Payload) > 0 {
				_ = json.Unmarshal(inbound.Payload, &payload)
			}
			ok = send("leaderboard", h.service.Leaderboard(r.Context(), payload.Limit))
		case "open":
			var payload openPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				ok = send("error", errorPayload{Message: "invalid open payload"})
				break
			}
			action, err := h.service.OpenProgram(r.Context(), payload.ProgramID)
			if err != nil {
				ok = sendErr(err)
				break
			}
			ok = send("program", action)
		default:
			ok = send("error", errorPayload{Message: "unsupported message type"})
		}
		if !ok {
			return
		}
	}
}
