package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "kejayangu/internal/infrastructure/cache/port"
	queueport "kejayangu/internal/infrastructure/queue/port"
	"kejayangu/internal/infrastructure/realtime"
	"kejayangu/internal/lib/sl"
	"kejayangu/internal/pkg/chat/application/task"
	"kejayangu/internal/pkg/chat/application/usecase"
	"kejayangu/internal/pkg/chat/persistence/repository/adapter"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
)

// SendMessageController persists the message and hands fan-out to the
// background queue. Durability comes from the store; if the queue is
// unavailable the event is pushed inline so connected peers still hear it.
type SendMessageController struct {
	UC     *usecase.SendMessageUseCase
	Repo   repository.ChatRepository
	Queue  queueport.Client // optional
	Cache  cacheport.Cache  // optional
	Router *realtime.Router // fallback when the queue is down
	Log    *slog.Logger
}

func NewSendMessageController(pool *pgxpool.Pool, queue queueport.Client, cache cacheport.Cache, router *realtime.Router, lg *slog.Logger) *SendMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &SendMessageController{
		UC:     usecase.NewSendMessageUseCase(repo),
		Repo:   repo,
		Queue:  queue,
		Cache:  cache,
		Router: router,
		Log:    lg,
	}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			respondMessage(c, http.StatusBadRequest, "chatId is required")
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondMessage(c, http.StatusBadRequest, err.Error())
			return
		}

		senderID := currentUserID(c)
		in := usecase.SendMessageInput{
			ConversationID: chatID,
			SenderID:       senderID,
			Body:           req.Content,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}

		h.notify(ctx, task.NotifyMessagePayload{
			ConversationID: msg.ConversationID,
			MessageID:      msg.ID,
			SenderID:       msg.SenderID,
			Body:           msg.Body,
			CreatedAt:      msg.CreatedAt,
		})

		respondData(c, http.StatusCreated, toMessageView(*msg))
	}
}

// notify enqueues the fan-out task; on queue trouble it degrades to an
// in-process broadcast. Delivery problems never reach the sender.
func (h *SendMessageController) notify(ctx context.Context, payload task.NotifyMessagePayload) {
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}

	if h.Queue != nil {
		opts := queueport.EnqueueOption{Queue: "chat", MaxRetry: 5}
		if _, err := h.Queue.Enqueue(ctx, queueport.Task{Type: task.NotifyMessageTaskType, Payload: b}, opts); err == nil {
			return
		} else if h.Log != nil {
			h.Log.With(sl.Err(err)).Warn("enqueue notify task; broadcasting inline")
		}
	}

	if h.Router != nil {
		event := task.MessageEvent{
			Type:           "message",
			ConversationID: payload.ConversationID,
			MessageID:      payload.MessageID,
			SenderID:       payload.SenderID,
			Body:           payload.Body,
			CreatedAt:      payload.CreatedAt,
		}
		if frame, err := json.Marshal(event); err == nil {
			h.Router.Broadcast(payload.ConversationID, frame, payload.SenderID)
		}
	}

	// the queued handler would have dropped these counters; the fallback
	// must too or the unread badge serves stale values until the TTL
	h.invalidateUnread(ctx, payload.ConversationID, payload.SenderID)
}

func (h *SendMessageController) invalidateUnread(ctx context.Context, conversationID, senderID string) {
	if h.Cache == nil || h.Repo == nil {
		return
	}
	participants, err := h.Repo.ListParticipants(ctx, conversationID)
	if err != nil {
		if h.Log != nil {
			h.Log.With(sl.Err(err)).Warn("inline notify: list participants")
		}
		return
	}
	for _, p := range participants {
		if p.UserID == senderID {
			continue
		}
		_, _ = h.Cache.Del(ctx, usecase.UnreadCountKey(p.UserID))
	}
}
