package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
)

// FriendRequest is the single record representing a directed friendship
// proposal. A declined request is deleted, never marked; an accepted
// request stays behind as the "recently accepted" notification until the
// owner dismisses it. The friendship itself lives in the user_friends set.
type FriendRequest struct {
	ID          uuid.UUID           `json:"id"`
	SenderID    uuid.UUID           `json:"sender_id"`
	RecipientID uuid.UUID           `json:"recipient_id"`
	Status      FriendRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Involves reports whether the given user is a party to the request.
func (r *FriendRequest) Involves(userID uuid.UUID) bool {
	return r.SenderID == userID || r.RecipientID == userID
}

// RequestWithProfile pairs a request record with the counterparty's public
// profile for client display: the sender on incoming lists, the recipient
// on outgoing lists, whichever is "the other user" on accepted lists.
type RequestWithProfile struct {
	FriendRequest
	User PublicProfile `json:"user"`
}
