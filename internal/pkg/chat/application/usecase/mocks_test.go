package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	chat "kejayangu/internal/pkg/chat/application/domain"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
	proprepo "kejayangu/internal/pkg/property/persistence/repository/port"
	user "kejayangu/internal/pkg/user/application/domain"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) CreateOrGetConversation(ctx context.Context, c chat.Conversation, participants []chat.Participant) (*chat.Conversation, bool, error) {
	args := m.Called(ctx, c, participants)
	conv, _ := args.Get(0).(*chat.Conversation)
	return conv, args.Bool(1), args.Error(2)
}

func (m *MockChatRepository) GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error) {
	args := m.Called(ctx, conversationID)
	conv, _ := args.Get(0).(*chat.Conversation)
	return conv, args.Error(1)
}

func (m *MockChatRepository) ListConversations(ctx context.Context, userID string, limit, offset int) ([]repository.ConversationSummary, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	summaries, _ := args.Get(0).([]repository.ConversationSummary)
	return summaries, args.Int(1), args.Error(2)
}

func (m *MockChatRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	return m.Called(ctx, conversationID).Error(0)
}

func (m *MockChatRepository) ListParticipants(ctx context.Context, conversationID string) ([]chat.Participant, error) {
	args := m.Called(ctx, conversationID)
	participants, _ := args.Get(0).([]chat.Participant)
	return participants, args.Error(1)
}

func (m *MockChatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChatRepository) SaveMessage(ctx context.Context, msg chat.Message) (*chat.Message, error) {
	args := m.Called(ctx, msg)
	saved, _ := args.Get(0).(*chat.Message)
	return saved, args.Error(1)
}

func (m *MockChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, int, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	msgs, _ := args.Get(0).([]chat.Message)
	return msgs, args.Int(1), args.Error(2)
}

func (m *MockChatRepository) GetMessage(ctx context.Context, messageID string) (*chat.Message, error) {
	args := m.Called(ctx, messageID)
	msg, _ := args.Get(0).(*chat.Message)
	return msg, args.Error(1)
}

func (m *MockChatRepository) MarkMessageRead(ctx context.Context, messageID string) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChatRepository) MarkDelivered(ctx context.Context, conversationID, recipientID string) error {
	return m.Called(ctx, conversationID, recipientID).Error(0)
}

func (m *MockChatRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u user.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id string) (*proprepo.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*proprepo.Property)
	return p, args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Del(ctx context.Context, keys ...string) (int64, error) {
	args := m.Called(ctx, keys)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCache) Close() error {
	return m.Called().Error(0)
}
