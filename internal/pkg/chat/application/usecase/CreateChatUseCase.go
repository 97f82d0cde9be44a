package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	chat "kejayangu/internal/pkg/chat/application/domain"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
	proprepo "kejayangu/internal/pkg/property/persistence/repository/port"
	userrepo "kejayangu/internal/pkg/user/persistence/repository/port"
)

// CreateChatInput carries the data to open (or return) a conversation between
// the requester and a counterparty, optionally scoped to one property.
type CreateChatInput struct {
	RequesterID    string
	CounterpartyID string
	PropertyID     *string
}

// CreateChatUseCase resolves the single canonical conversation for a
// participant pair: it returns the existing one untouched or creates a new
// one transactionally. Creation is idempotent; concurrent callers racing on
// the same pair converge on one row via the pair-key unique constraint.
type CreateChatUseCase struct {
	Repo       repository.ChatRepository
	Users      userrepo.UserRepository
	Properties proprepo.PropertyRepository
}

func NewCreateChatUseCase(repo repository.ChatRepository, users userrepo.UserRepository, properties proprepo.PropertyRepository) *CreateChatUseCase {
	return &CreateChatUseCase{Repo: repo, Users: users, Properties: properties}
}

// CreateChatResult reports the conversation and whether this call created it.
type CreateChatResult struct {
	Conversation *chat.Conversation
	Created      bool
}

func (uc *CreateChatUseCase) Execute(ctx context.Context, in CreateChatInput) (*CreateChatResult, error) {
	if in.RequesterID == "" || in.CounterpartyID == "" {
		return nil, fmt.Errorf("requesterId and counterpartyId are required")
	}
	if in.RequesterID == in.CounterpartyID {
		return nil, chat.ErrSelfConversation
	}

	counterparty, err := uc.Users.FindByID(ctx, in.CounterpartyID)
	if errors.Is(err, userrepo.ErrNoRows) {
		return nil, fmt.Errorf("%w: counterparty %s", ErrNotFound, in.CounterpartyID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if in.PropertyID != nil && *in.PropertyID != "" {
		ok, err := uc.Properties.Exists(ctx, *in.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: property %s", ErrNotFound, *in.PropertyID)
		}
	} else {
		in.PropertyID = nil
	}

	counterpartyRole := chat.ParticipantRoleSeeker
	if counterparty.CanReceiveInquiries() {
		counterpartyRole = chat.ParticipantRoleAgent
	}

	conv := chat.Conversation{
		PairKey:    chat.PairKey(in.RequesterID, in.CounterpartyID, in.PropertyID),
		PropertyID: in.PropertyID,
		CreatedAt:  time.Now().UTC(),
	}
	participants := []chat.Participant{
		{UserID: in.RequesterID, Role: chat.ParticipantRoleSeeker},
		{UserID: in.CounterpartyID, Role: counterpartyRole},
	}

	saved, created, err := uc.Repo.CreateOrGetConversation(ctx, conv, participants)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &CreateChatResult{Conversation: saved, Created: created}, nil
}
