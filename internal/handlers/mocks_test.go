package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/tandemly/tandemly/internal/models"
)

type mockUserService struct {
	CreateFunc             func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc         func(ctx context.Context, email string) (*models.User, error)
	CompleteOnboardingFunc func(ctx context.Context, userID uuid.UUID, params models.OnboardingParams) (*models.User, error)
	RecommendedUsersFunc   func(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error)
	SearchUsersFunc        func(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.PublicProfile, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) CompleteOnboarding(ctx context.Context, userID uuid.UUID, params models.OnboardingParams) (*models.User, error) {
	if m.CompleteOnboardingFunc != nil {
		return m.CompleteOnboardingFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *mockUserService) RecommendedUsers(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error) {
	if m.RecommendedUsersFunc != nil {
		return m.RecommendedUsersFunc(ctx, userID)
	}
	return []models.PublicProfile{}, nil
}

func (m *mockUserService) SearchUsers(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.PublicProfile, error) {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(ctx, currentUserID, query)
	}
	return []models.PublicProfile{}, nil
}

type mockAuthService struct {
	HashPasswordFunc    func(password string) (string, error)
	VerifyPasswordFunc  func(hash, password string) bool
	CreateSessionFunc   func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc func(ctx context.Context, token string) (*models.User, error)
	DeleteSessionFunc   func(ctx context.Context, token string) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return hash == "hashed_"+password
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, userID)
	}
	return "test_session_token", nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

type mockFriendService struct {
	SendRequestFunc           func(ctx context.Context, senderID, recipientID uuid.UUID) (*models.FriendRequest, error)
	AcceptRequestFunc         func(ctx context.Context, userID, requestID uuid.UUID) (*models.FriendRequest, error)
	DeclineRequestFunc        func(ctx context.Context, userID, requestID uuid.UUID) error
	DismissAcceptedFunc       func(ctx context.Context, userID, requestID uuid.UUID) error
	UnfriendFunc              func(ctx context.Context, userID, friendID uuid.UUID) error
	IsFriendFunc              func(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
	ListFriendsFunc           func(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error)
	ListIncomingPendingFunc   func(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error)
	ListOutgoingPendingFunc   func(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error)
	ListAcceptedInvolvingFunc func(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error)
}

func (m *mockFriendService) SendRequest(ctx context.Context, senderID, recipientID uuid.UUID) (*models.FriendRequest, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, senderID, recipientID)
	}
	return nil, nil
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*models.FriendRequest, error) {
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(ctx, userID, requestID)
	}
	return nil, nil
}

func (m *mockFriendService) DeclineRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	if m.DeclineRequestFunc != nil {
		return m.DeclineRequestFunc(ctx, userID, requestID)
	}
	return nil
}

func (m *mockFriendService) DismissAccepted(ctx context.Context, userID, requestID uuid.UUID) error {
	if m.DismissAcceptedFunc != nil {
		return m.DismissAcceptedFunc(ctx, userID, requestID)
	}
	return nil
}

func (m *mockFriendService) Unfriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if m.UnfriendFunc != nil {
		return m.UnfriendFunc(ctx, userID, friendID)
	}
	return nil
}

func (m *mockFriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	if m.IsFriendFunc != nil {
		return m.IsFriendFunc(ctx, userID, otherUserID)
	}
	return false, nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, userID)
	}
	return []models.PublicProfile{}, nil
}

func (m *mockFriendService) ListIncomingPending(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error) {
	if m.ListIncomingPendingFunc != nil {
		return m.ListIncomingPendingFunc(ctx, userID)
	}
	return []models.RequestWithProfile{}, nil
}

func (m *mockFriendService) ListOutgoingPending(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error) {
	if m.ListOutgoingPendingFunc != nil {
		return m.ListOutgoingPendingFunc(ctx, userID)
	}
	return []models.RequestWithProfile{}, nil
}

func (m *mockFriendService) ListAcceptedInvolving(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error) {
	if m.ListAcceptedInvolvingFunc != nil {
		return m.ListAcceptedInvolvingFunc(ctx, userID)
	}
	return []models.RequestWithProfile{}, nil
}

type mockChatService struct {
	GenerateTokenFunc    func(userID uuid.UUID) (string, error)
	NotifyFriendshipFunc func(userID, friendID uuid.UUID)
}

func (m *mockChatService) GenerateToken(userID uuid.UUID) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID)
	}
	return "chat_token", nil
}

func (m *mockChatService) NotifyFriendship(userID, friendID uuid.UUID) {
	if m.NotifyFriendshipFunc != nil {
		m.NotifyFriendshipFunc(userID, friendID)
	}
}
