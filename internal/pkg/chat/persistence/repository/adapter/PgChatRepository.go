package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "kejayangu/internal/pkg/chat/application/domain"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) CreateOrGetConversation(ctx context.Context, c chat.Conversation, participants []chat.Participant) (*chat.Conversation, bool, error) {
	if r == nil || r.pool == nil {
		return nil, false, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	// Concurrent creators race on the pair_key unique constraint; the loser's
	// insert affects zero rows and falls through to the fetch below.
	var conv chat.Conversation
	err = tx.QueryRow(ctx, `
		INSERT INTO conversations (pair_key, property_id, created_at, updated_at)
		VALUES ($1, $2::uuid, $3, $3)
		ON CONFLICT (pair_key) DO NOTHING
		RETURNING id::text, pair_key, property_id::text, created_at, updated_at
	`, c.PairKey, c.PropertyID, c.CreatedAt).Scan(
		&conv.ID, &conv.PairKey, &conv.PropertyID, &conv.CreatedAt, &conv.UpdatedAt,
	)
	created := err == nil
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, `
			SELECT id::text, pair_key, property_id::text, created_at, updated_at
			FROM conversations WHERE pair_key = $1
		`, c.PairKey).Scan(&conv.ID, &conv.PairKey, &conv.PropertyID, &conv.CreatedAt, &conv.UpdatedAt)
	}
	if err != nil {
		return nil, false, err
	}

	if created {
		for _, p := range participants {
			if _, err := tx.Exec(ctx, `
				INSERT INTO conversation_participants (conversation_id, user_id, role)
				VALUES ($1::uuid, $2::uuid, $3)
				ON CONFLICT (conversation_id, user_id) DO NOTHING
			`, conv.ID, p.UserID, p.Role); err != nil {
				return nil, false, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return &conv, created, nil
}

func (r *PgChatRepository) GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var conv chat.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, pair_key, property_id::text, created_at, updated_at
		FROM conversations WHERE id = $1::uuid
	`, conversationID).Scan(&conv.ID, &conv.PairKey, &conv.PropertyID, &conv.CreatedAt, &conv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *PgChatRepository) ListConversations(ctx context.Context, userID string, limit, offset int) ([]repository.ConversationSummary, int, error) {
	if r == nil || r.pool == nil {
		return nil, 0, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM conversation_participants WHERE user_id = $1::uuid
	`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.pair_key, c.property_id::text, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM messages m
		        WHERE m.conversation_id = c.id AND m.sender_id <> $1::uuid AND m.status < 2) AS unread
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id AND cp.user_id = $1::uuid
		ORDER BY c.updated_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []repository.ConversationSummary
	for rows.Next() {
		var s repository.ConversationSummary
		if err := rows.Scan(
			&s.Conversation.ID, &s.Conversation.PairKey, &s.Conversation.PropertyID,
			&s.Conversation.CreatedAt, &s.Conversation.UpdatedAt, &s.UnreadCount,
		); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, s)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	for i := range summaries {
		participants, err := r.ListParticipants(ctx, summaries[i].Conversation.ID)
		if err != nil {
			return nil, 0, err
		}
		summaries[i].Participants = participants
	}
	return summaries, total, nil
}

func (r *PgChatRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	// Participants and messages go with it via ON DELETE CASCADE.
	ct, err := r.pool.Exec(ctx, `DELETE FROM conversations WHERE id = $1::uuid`, conversationID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *PgChatRepository) ListParticipants(ctx context.Context, conversationID string) ([]chat.Participant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT conversation_id::text, user_id::text, role
		FROM conversation_participants WHERE conversation_id = $1::uuid
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []chat.Participant
	for rows.Next() {
		var p chat.Participant
		if err := rows.Scan(&p.ConversationID, &p.UserID, &p.Role); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *PgChatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM conversation_participants
			WHERE conversation_id = $1::uuid AND user_id = $2::uuid
		)
	`, conversationID, userID).Scan(&ok)
	return ok, err
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	saved := m
	err = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, body, status, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		RETURNING id::text, created_at
	`, m.ConversationID, m.SenderID, m.Body, m.Status, m.CreatedAt).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE conversations SET updated_at = $2 WHERE id = $1::uuid
	`, m.ConversationID, saved.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PgChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, int, error) {
	if r == nil || r.pool == nil {
		return nil, 0, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages WHERE conversation_id = $1::uuid
	`, conversationID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, body, status, created_at
		FROM messages
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var msg chat.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body, &msg.Status, &msg.CreatedAt); err != nil {
			return nil, 0, err
		}
		msgs = append(msgs, msg)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return msgs, total, nil
}

func (r *PgChatRepository) GetMessage(ctx context.Context, messageID string) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var msg chat.Message
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, body, status, created_at
		FROM messages WHERE id = $1::uuid
	`, messageID).Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body, &msg.Status, &msg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *PgChatRepository) MarkMessageRead(ctx context.Context, messageID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	// status guard keeps the transition idempotent and forward-only
	ct, err := r.pool.Exec(ctx, `
		UPDATE messages SET status = 2 WHERE id = $1::uuid AND status < 2
	`, messageID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgChatRepository) MarkDelivered(ctx context.Context, conversationID, recipientID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE messages SET status = 1
		WHERE conversation_id = $1::uuid AND sender_id <> $2::uuid AND status = 0
	`, conversationID, recipientID)
	return err
}

func (r *PgChatRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgChatRepository: nil pool")
	}
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversation_participants cp
		  ON cp.conversation_id = m.conversation_id AND cp.user_id = $1::uuid
		WHERE m.sender_id <> $1::uuid AND m.status < 2
	`, userID).Scan(&count)
	return count, err
}
