package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/tandemly/tandemly/internal/services"
)

type ChatHandler struct {
	chatService services.ChatServiceInterface
}

func NewChatHandler(chatService services.ChatServiceInterface) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatTokenResponse struct {
	Token string `json:"token"`
}

// Token hands the client its provider token. Channel membership rules live
// on the provider side; this endpoint only proves the user's identity.
func (h *ChatHandler) Token(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	token, err := h.chatService.GenerateToken(user.ID)
	if errors.Is(err, services.ErrChatNotConfigured) {
		writeError(w, http.StatusServiceUnavailable, "Chat is not available")
		return
	}
	if err != nil {
		log.Printf("Error generating chat token: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ChatTokenResponse{Token: token})
}
