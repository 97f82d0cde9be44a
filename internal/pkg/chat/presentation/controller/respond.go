package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	chat "kejayangu/internal/pkg/chat/application/domain"
	"kejayangu/internal/pkg/chat/application/usecase"
)

// respondData writes the success envelope.
func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

// respondMessage writes the failure envelope: "fail" for client errors,
// "error" for server faults.
func respondMessage(c *gin.Context, code int, message string) {
	status := "fail"
	if code >= http.StatusInternalServerError {
		status = "error"
	}
	c.JSON(code, gin.H{"status": status, "message": message})
}

// respondUseCaseError maps domain and use-case errors onto the HTTP taxonomy.
func respondUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		respondMessage(c, http.StatusNotFound, err.Error())
	case errors.Is(err, chat.ErrNotParticipant), errors.Is(err, chat.ErrNotRecipient):
		respondMessage(c, http.StatusForbidden, err.Error())
	case errors.Is(err, usecase.ErrPersistence):
		respondMessage(c, http.StatusInternalServerError, "internal error")
	default:
		// validation: empty body, self-conversation, malformed input
		respondMessage(c, http.StatusBadRequest, err.Error())
	}
}

// currentUserID returns the authenticated user id placed by the middleware.
func currentUserID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}

type participantView struct {
	UserID string `json:"userId"`
	Role   int16  `json:"role"`
}

type conversationView struct {
	ID           string            `json:"id"`
	PropertyID   *string           `json:"propertyId,omitempty"`
	Participants []participantView `json:"participants,omitempty"`
	UnreadCount  *int              `json:"unreadCount,omitempty"`
	CreatedAt    string            `json:"createdAt"`
	UpdatedAt    string            `json:"updatedAt"`
}

type messageView struct {
	ID        string `json:"id"`
	ChatID    string `json:"chatId"`
	SenderID  string `json:"senderId"`
	Content   string `json:"content"`
	Status    int16  `json:"status"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

func toConversationView(conv chat.Conversation, participants []chat.Participant, unread *int) conversationView {
	view := conversationView{
		ID:          conv.ID,
		PropertyID:  conv.PropertyID,
		UnreadCount: unread,
		CreatedAt:   conv.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		UpdatedAt:   conv.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	for _, p := range participants {
		view.Participants = append(view.Participants, participantView{UserID: p.UserID, Role: int16(p.Role)})
	}
	return view
}

func toMessageView(m chat.Message) messageView {
	return messageView{
		ID:        m.ID,
		ChatID:    m.ConversationID,
		SenderID:  m.SenderID,
		Content:   m.Body,
		Status:    int16(m.Status),
		IsRead:    m.IsRead(),
		CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}
