package controller

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	chat "kejayangu/internal/pkg/chat/application/domain"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
	proprepo "kejayangu/internal/pkg/property/persistence/repository/port"
	user "kejayangu/internal/pkg/user/application/domain"
)

type mockChatRepository struct {
	mock.Mock
}

func (m *mockChatRepository) CreateOrGetConversation(ctx context.Context, c chat.Conversation, participants []chat.Participant) (*chat.Conversation, bool, error) {
	args := m.Called(ctx, c, participants)
	conv, _ := args.Get(0).(*chat.Conversation)
	return conv, args.Bool(1), args.Error(2)
}

func (m *mockChatRepository) GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error) {
	args := m.Called(ctx, conversationID)
	conv, _ := args.Get(0).(*chat.Conversation)
	return conv, args.Error(1)
}

func (m *mockChatRepository) ListConversations(ctx context.Context, userID string, limit, offset int) ([]repository.ConversationSummary, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	summaries, _ := args.Get(0).([]repository.ConversationSummary)
	return summaries, args.Int(1), args.Error(2)
}

func (m *mockChatRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	return m.Called(ctx, conversationID).Error(0)
}

func (m *mockChatRepository) ListParticipants(ctx context.Context, conversationID string) ([]chat.Participant, error) {
	args := m.Called(ctx, conversationID)
	participants, _ := args.Get(0).([]chat.Participant)
	return participants, args.Error(1)
}

func (m *mockChatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockChatRepository) SaveMessage(ctx context.Context, msg chat.Message) (*chat.Message, error) {
	args := m.Called(ctx, msg)
	saved, _ := args.Get(0).(*chat.Message)
	return saved, args.Error(1)
}

func (m *mockChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, int, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	msgs, _ := args.Get(0).([]chat.Message)
	return msgs, args.Int(1), args.Error(2)
}

func (m *mockChatRepository) GetMessage(ctx context.Context, messageID string) (*chat.Message, error) {
	args := m.Called(ctx, messageID)
	msg, _ := args.Get(0).(*chat.Message)
	return msg, args.Error(1)
}

func (m *mockChatRepository) MarkMessageRead(ctx context.Context, messageID string) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *mockChatRepository) MarkDelivered(ctx context.Context, conversationID, recipientID string) error {
	return m.Called(ctx, conversationID, recipientID).Error(0)
}

func (m *mockChatRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u user.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type mockPropertyRepository struct {
	mock.Mock
}

func (m *mockPropertyRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id string) (*proprepo.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*proprepo.Property)
	return p, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Del(ctx context.Context, keys ...string) (int64, error) {
	args := m.Called(ctx, keys)
	return int64(args.Int(0)), args.Error(1)
}

func (m *mockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}
