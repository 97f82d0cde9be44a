package chat

// ParticipantRole tags each membership row instead of fixing roles into
// positional columns, so new roles don't require schema change.
type ParticipantRole int16

const (
	ParticipantRoleSeeker ParticipantRole = 0
	ParticipantRoleAgent  ParticipantRole = 1
)

// Participant captures conversation membership.
// Primary key: (ConversationID, UserID)
type Participant struct {
	ConversationID string          `db:"conversation_id"`
	UserID         string          `db:"user_id"`
	Role           ParticipantRole `db:"role"`
}
