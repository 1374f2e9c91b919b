package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/tandemly/tandemly/internal/models"
	"github.com/tandemly/tandemly/internal/services"
)

type FriendHandler struct {
	friendService services.FriendServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

type SendRequestRequest struct {
	RecipientID string `json:"recipient_id"`
}

type SendRequestResponse struct {
	Request *models.FriendRequest `json:"request"`
}

type FriendListResponse struct {
	Friends []models.PublicProfile `json:"friends"`
}

// RequestsResponse carries both what the client renders as actionable
// requests (incoming pending) and what it renders as notifications
// (accepted records awaiting dismissal).
type RequestsResponse struct {
	Incoming []models.RequestWithProfile `json:"incoming"`
	Accepted []models.RequestWithProfile `json:"accepted"`
}

type OutgoingResponse struct {
	Outgoing []models.RequestWithProfile `json:"outgoing"`
}

type ConfirmationResponse struct {
	Message string `json:"message"`
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing friends: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Friends: friends})
}

func (h *FriendHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	incoming, err := h.friendService.ListIncomingPending(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing incoming requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	accepted, err := h.friendService.ListAcceptedInvolving(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing accepted requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, RequestsResponse{Incoming: incoming, Accepted: accepted})
}

func (h *FriendHandler) ListOutgoing(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	outgoing, err := h.friendService.ListOutgoingPending(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing outgoing requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, OutgoingResponse{Outgoing: outgoing})
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recipient ID")
		return
	}

	request, err := h.friendService.SendRequest(r.Context(), user.ID, recipientID)
	if errors.Is(err, services.ErrSelfRequest) {
		writeError(w, http.StatusBadRequest, "Cannot send friend request to yourself")
		return
	}
	if errors.Is(err, services.ErrRecipientNotFound) {
		writeError(w, http.StatusNotFound, "Recipient not found")
		return
	}
	if errors.Is(err, services.ErrAlreadyFriends) {
		writeError(w, http.StatusBadRequest, "You are already friends with this user")
		return
	}
	if errors.Is(err, services.ErrDuplicateRequest) {
		writeError(w, http.StatusConflict, "A friend request already exists between you and this user")
		return
	}
	if err != nil {
		log.Printf("Error sending friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, SendRequestResponse{Request: request})
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	_, err = h.friendService.AcceptRequest(r.Context(), user.ID, requestID)
	if errors.Is(err, services.ErrRequestNotFound) {
		writeError(w, http.StatusNotFound, "Friend request not found")
		return
	}
	if errors.Is(err, services.ErrNotRecipient) {
		writeError(w, http.StatusForbidden, "Only the recipient can accept this request")
		return
	}
	if errors.Is(err, services.ErrAlreadyAccepted) {
		writeError(w, http.StatusConflict, "Friend request already accepted")
		return
	}
	if errors.Is(err, services.ErrConflict) {
		writeError(w, http.StatusConflict, "Friend request changed, please refresh")
		return
	}
	if err != nil {
		log.Printf("Error accepting friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ConfirmationResponse{Message: "Friend request accepted"})
}

func (h *FriendHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	err = h.friendService.DeclineRequest(r.Context(), user.ID, requestID)
	if errors.Is(err, services.ErrRequestNotFound) {
		writeError(w, http.StatusNotFound, "Friend request not found")
		return
	}
	if errors.Is(err, services.ErrNotRecipient) {
		writeError(w, http.StatusForbidden, "Only the recipient can decline this request")
		return
	}
	if errors.Is(err, services.ErrConflict) {
		writeError(w, http.StatusConflict, "Friend request changed, please refresh")
		return
	}
	if err != nil {
		log.Printf("Error declining friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ConfirmationResponse{Message: "Friend request declined"})
}

func (h *FriendHandler) DismissAccepted(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	err = h.friendService.DismissAccepted(r.Context(), user.ID, requestID)
	if errors.Is(err, services.ErrRequestNotFound) {
		writeError(w, http.StatusNotFound, "Notification not found")
		return
	}
	if errors.Is(err, services.ErrNotParticipant) {
		writeError(w, http.StatusForbidden, "You are not a party to this request")
		return
	}
	if err != nil {
		log.Printf("Error dismissing notification: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ConfirmationResponse{Message: "Notification dismissed"})
}

func (h *FriendHandler) Unfriend(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	err = h.friendService.Unfriend(r.Context(), user.ID, friendID)
	if errors.Is(err, services.ErrNotFriends) {
		writeError(w, http.StatusNotFound, "You are not friends with this user")
		return
	}
	if err != nil {
		log.Printf("Error unfriending: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ConfirmationResponse{Message: "Friend removed"})
}
