package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	chat "kejayangu/internal/pkg/chat/application/domain"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
)

func conversationFixture() *chat.Conversation {
	return &chat.Conversation{ID: "conv-1", PairKey: chat.PairKey("seeker-1", "agent-1", nil)}
}

func participantsFixture() []chat.Participant {
	return []chat.Participant{
		{ConversationID: "conv-1", UserID: "seeker-1", Role: chat.ParticipantRoleSeeker},
		{ConversationID: "conv-1", UserID: "agent-1", Role: chat.ParticipantRoleAgent},
	}
}

func TestSendMessagePersistsValidated(t *testing.T) {
	repo := new(MockChatRepository)
	uc := NewSendMessageUseCase(repo)

	repo.On("GetConversation", mock.Anything, "conv-1").Return(conversationFixture(), nil)
	repo.On("ListParticipants", mock.Anything, "conv-1").Return(participantsFixture(), nil)
	repo.On("SaveMessage", mock.Anything, mock.MatchedBy(func(m chat.Message) bool {
		return m.Body == "hello" && m.Status == chat.MessageStatusSent && !m.CreatedAt.IsZero()
	})).Return(&chat.Message{ID: "m-1", ConversationID: "conv-1", SenderID: "seeker-1", Body: "hello"}, nil)

	saved, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "conv-1",
		SenderID:       "seeker-1",
		Body:           "  hello  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "m-1", saved.ID)
	repo.AssertExpectations(t)
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	repo := new(MockChatRepository)
	uc := NewSendMessageUseCase(repo)

	repo.On("GetConversation", mock.Anything, "conv-1").Return(conversationFixture(), nil)
	repo.On("ListParticipants", mock.Anything, "conv-1").Return(participantsFixture(), nil)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "conv-1",
		SenderID:       "stranger",
		Body:           "hello",
	})

	assert.ErrorIs(t, err, chat.ErrNotParticipant)
	repo.AssertNotCalled(t, "SaveMessage", mock.Anything, mock.Anything)
}

func TestSendMessageRejectsEmptyBody(t *testing.T) {
	repo := new(MockChatRepository)
	uc := NewSendMessageUseCase(repo)

	repo.On("GetConversation", mock.Anything, "conv-1").Return(conversationFixture(), nil)
	repo.On("ListParticipants", mock.Anything, "conv-1").Return(participantsFixture(), nil)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "conv-1",
		SenderID:       "seeker-1",
		Body:           "   ",
	})

	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
}

func TestSendMessageRejectsRegressedClock(t *testing.T) {
	repo := new(MockChatRepository)
	uc := NewSendMessageUseCase(repo)

	// Last activity sits ahead of the current clock; a new message would
	// break the conversation's forward-only ordering.
	conv := conversationFixture()
	conv.UpdatedAt = time.Now().UTC().Add(time.Hour)

	repo.On("GetConversation", mock.Anything, "conv-1").Return(conv, nil)
	repo.On("ListParticipants", mock.Anything, "conv-1").Return(participantsFixture(), nil)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "conv-1",
		SenderID:       "seeker-1",
		Body:           "hello",
	})

	assert.ErrorIs(t, err, chat.ErrBackdatedMessage)
	repo.AssertNotCalled(t, "SaveMessage", mock.Anything, mock.Anything)
}

func TestSendMessageUnknownConversation(t *testing.T) {
	repo := new(MockChatRepository)
	uc := NewSendMessageUseCase(repo)

	repo.On("GetConversation", mock.Anything, "conv-gone").Return(nil, repository.ErrNoRows)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "conv-gone",
		SenderID:       "seeker-1",
		Body:           "hello",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}
