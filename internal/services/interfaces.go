package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/tandemly/tandemly/internal/models"
)

// UserServiceInterface defines the contract for user directory operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CompleteOnboarding(ctx context.Context, userID uuid.UUID, params models.OnboardingParams) (*models.User, error)
	RecommendedUsers(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error)
	SearchUsers(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.PublicProfile, error)
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	CreateSession(ctx context.Context, userID uuid.UUID) (token string, err error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
}

// FriendServiceInterface defines the contract for the friend-request
// lifecycle and friend-set operations.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, senderID, recipientID uuid.UUID) (*models.FriendRequest, error)
	AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*models.FriendRequest, error)
	DeclineRequest(ctx context.Context, userID, requestID uuid.UUID) error
	DismissAccepted(ctx context.Context, userID, requestID uuid.UUID) error
	Unfriend(ctx context.Context, userID, friendID uuid.UUID) error
	IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error)
	ListIncomingPending(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error)
	ListOutgoingPending(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error)
	ListAcceptedInvolving(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error)
}

// ChatServiceInterface defines the contract toward the external chat
// provider.
type ChatServiceInterface interface {
	GenerateToken(userID uuid.UUID) (string, error)
	NotifyFriendship(userID, friendID uuid.UUID)
}
