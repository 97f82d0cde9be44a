package chat

import (
	"sort"
	"strings"
	"time"
)

// Conversation is a single thread between a property seeker and an agent,
// optionally anchored to one property. PairKey is the uniqueness anchor:
// at most one conversation exists per (unordered participant pair, property).
type Conversation struct {
	ID         string     `db:"id"`
	PairKey    string     `db:"pair_key"`
	PropertyID *string    `db:"property_id"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// PairKey derives the canonical dedup key for a participant pair and an
// optional property scope. Participant order does not matter.
func PairKey(userA, userB string, propertyID *string) string {
	ids := []string{userA, userB}
	sort.Strings(ids)
	scope := "-"
	if propertyID != nil && *propertyID != "" {
		scope = *propertyID
	}
	return strings.Join(ids, ":") + ":" + scope
}
