package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	"kejayangu/internal/infrastructure/realtime"
	"kejayangu/internal/lib/sl"
	chat "kejayangu/internal/pkg/chat/application/domain"
	"kejayangu/internal/pkg/chat/application/usecase"
	"kejayangu/internal/pkg/chat/persistence/repository/adapter"
)

// ChatSocketController handles the realtime endpoint. Messages are sent over
// REST; the socket carries join/leave frames inbound and message-created
// events outbound. Auth runs in middleware before the upgrade, so a session
// only reaches Connected with a valid token.
type ChatSocketController struct {
	Router          *realtime.Router
	JoinUC          *usecase.JoinConversationUseCase
	Log             *slog.Logger
	SendBuffer      int
	MaxFrameLen     int64
	inflightTimeout time.Duration
}

func NewChatSocketController(pool *pgxpool.Pool, router *realtime.Router, lg *slog.Logger, sendBuffer int, maxFrameLen int64) *ChatSocketController {
	return &ChatSocketController{
		Router:          router,
		JoinUC:          usecase.NewJoinConversationUseCase(adapter.NewPgChatRepository(pool)),
		Log:             lg,
		SendBuffer:      sendBuffer,
		MaxFrameLen:     maxFrameLen,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Token auth gates the session; origin is not the trust boundary here.
		return true
	},
}

type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			respondMessage(c, http.StatusUnauthorized, "missing identity")
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response
			return
		}

		conn := realtime.NewConnection(userID, ws, ctl.SendBuffer)
		ctl.Router.Attach(conn)
		defer func() {
			ctl.Router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		maxFrame := ctl.MaxFrameLen
		if maxFrame <= 0 {
			maxFrame = 1 << 20
		}
		ws.SetReadLimit(maxFrame)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "join":
				ctl.handleJoin(c, conn, frame)
			case "leave":
				ctl.handleLeave(conn, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *ChatSocketController) handleJoin(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversationId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	err := ctl.JoinUC.Execute(ctx, usecase.JoinConversationInput{
		ConversationID: frame.ConversationID,
		UserID:         conn.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrNotParticipant):
			ctl.replyError(conn, "forbidden", "not a participant of this conversation")
		case errors.Is(err, usecase.ErrPersistence):
			if ctl.Log != nil {
				ctl.Log.With(sl.Err(err)).Error("socket join")
			}
			ctl.replyError(conn, "internal_error", "unexpected persistence error")
		default:
			ctl.replyError(conn, "bad_request", err.Error())
		}
		return
	}

	ctl.Router.Join(frame.ConversationID, conn)

	if payload, err := json.Marshal(ackFrame{Type: "joined", ConversationID: frame.ConversationID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleLeave(conn *realtime.Connection, frame inboundFrame) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversationId is required")
		return
	}
	ctl.Router.Leave(frame.ConversationID, conn)

	if payload, err := json.Marshal(ackFrame{Type: "left", ConversationID: frame.ConversationID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	if payload, err := json.Marshal(errorFrame{Type: "error", Code: code, Error: message}); err == nil {
		_ = conn.Send(payload)
	}
}
