package task

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "kejayangu/internal/infrastructure/cache/port"
	qport "kejayangu/internal/infrastructure/queue/port"
	"kejayangu/internal/infrastructure/realtime"
	"kejayangu/internal/lib/sl"
	"kejayangu/internal/pkg/chat/application/usecase"
	repoAdapter "kejayangu/internal/pkg/chat/persistence/repository/adapter"
)

// NotifyMessageTaskType is the queue task name for fanning out a persisted message.
const NotifyMessageTaskType = "chat:notify_message"

// NotifyMessagePayload is the JSON payload transported via the queue. The
// message is already durable when this task runs; delivery failures here are
// never surfaced to the sender.
type NotifyMessagePayload struct {
	ConversationID string    `json:"conversationId"`
	MessageID      string    `json:"messageId"`
	SenderID       string    `json:"senderId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MessageEvent is the frame pushed to connected participants.
type MessageEvent struct {
	Type           string    `json:"type"`
	ConversationID string    `json:"conversationId"`
	MessageID      string    `json:"messageId"`
	SenderID       string    `json:"senderId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RegisterNotifyMessageTask binds the fan-out handler: push the new message
// to connected participants, advance delivered state, and drop stale unread
// counters. Each step is best-effort except participant lookup.
func RegisterNotifyMessageTask(srv qport.Server, pool *pgxpool.Pool, router *realtime.Router, cache cacheport.Cache, lg *slog.Logger) {
	srv.Register(NotifyMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p NotifyMessagePayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: retrying cannot help
			lg.With(sl.Err(err)).Error("notify task: bad payload")
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		repo := repoAdapter.NewPgChatRepository(pool)
		participants, err := repo.ListParticipants(ctx, p.ConversationID)
		if err != nil {
			// conversation may have been deleted since the send; retry once more via queue policy
			return err
		}

		event := MessageEvent{
			Type:           "message",
			ConversationID: p.ConversationID,
			MessageID:      p.MessageID,
			SenderID:       p.SenderID,
			Body:           p.Body,
			CreatedAt:      p.CreatedAt,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return nil
		}

		router.Broadcast(p.ConversationID, payload, p.SenderID)

		for _, member := range participants {
			if member.UserID == p.SenderID {
				continue
			}
			// recipients not joined to the room still get the event on their session
			reached := router.NotifyUser(member.UserID, payload)
			if reached {
				if err := repo.MarkDelivered(ctx, p.ConversationID, member.UserID); err != nil {
					lg.With(sl.Err(err)).Warn("notify task: mark delivered")
				}
			}
			if cache != nil {
				_, _ = cache.Del(ctx, usecase.UnreadCountKey(member.UserID))
			}
		}
		return nil
	})
}
