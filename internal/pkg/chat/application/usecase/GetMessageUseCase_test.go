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

func TestGetMessagePageIsChronologicalWithinPage(t *testing.T) {
	repo := new(MockChatRepository)
	uc := NewGetMessageUseCase(repo)

	base := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	// Repository hands back newest-first.
	newestFirst := []chat.Message{
		{ID: "m-3", ConversationID: "conv-1", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "m-2", ConversationID: "conv-1", CreatedAt: base.Add(time.Minute)},
		{ID: "m-1", ConversationID: "conv-1", CreatedAt: base},
	}

	repo.On("GetConversation", mock.Anything, "conv-1").Return(conversationFixture(), nil)
	repo.On("IsParticipant", mock.Anything, "conv-1", "seeker-1").Return(true, nil)
	repo.On("GetMessagesByConversation", mock.Anything, "conv-1", 20, 0).Return(newestFirst, 3, nil)

	result, err := uc.Execute(context.Background(), GetMessageInput{
		ConversationID: "conv-1",
		RequesterID:    "seeker-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"m-1", "m-2", "m-3"}, []string{
		result.Messages[0].ID, result.Messages[1].ID, result.Messages[2].ID,
	})
	assert.Equal(t, 3, result.Pagination.Total)
	assert.Equal(t, 1, result.Pagination.TotalPages)
}

func TestGetMessagePagination(t *testing.T) {
	repo := new(MockChatRepository)
	uc := NewGetMessageUseCase(repo)

	repo.On("GetConversation", mock.Anything, "conv-1").Return(conversationFixture(), nil)
	repo.On("IsParticipant", mock.Anything, "conv-1", "seeker-1").Return(true, nil)
	repo.On("GetMessagesByConversation", mock.Anything, "conv-1", 10, 10).Return([]chat.Message{}, 35, nil)

	result, err := uc.Execute(context.Background(), GetMessageInput{
		ConversationID: "conv-1",
		RequesterID:    "seeker-1",
		Page:           2,
		Limit:          10,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
	repo.AssertExpectations(t)
}

func TestGetMessageForbiddenForNonParticipant(t *testing.T) {
	repo := new(MockChatRepository)
	uc := NewGetMessageUseCase(repo)

	repo.On("GetConversation", mock.Anything, "conv-1").Return(conversationFixture(), nil)
	repo.On("IsParticipant", mock.Anything, "conv-1", "stranger").Return(false, nil)

	_, err := uc.Execute(context.Background(), GetMessageInput{
		ConversationID: "conv-1",
		RequesterID:    "stranger",
	})

	assert.ErrorIs(t, err, chat.ErrNotParticipant)
	repo.AssertNotCalled(t, "GetMessagesByConversation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMessageUnknownConversation(t *testing.T) {
	repo := new(MockChatRepository)
	uc := NewGetMessageUseCase(repo)

	repo.On("GetConversation", mock.Anything, "conv-gone").Return(nil, repository.ErrNoRows)

	_, err := uc.Execute(context.Background(), GetMessageInput{
		ConversationID: "conv-gone",
		RequesterID:    "seeker-1",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}
