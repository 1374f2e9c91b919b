package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/tandemly/tandemly/internal/models"
	"github.com/tandemly/tandemly/internal/services"
)

type UserHandler struct {
	userService services.UserServiceInterface
}

func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

type UserListResponse struct {
	Users []models.PublicProfile `json:"users"`
}

// Recommended lists onboarded users the caller might want to practice
// with: everyone except themselves and their existing friends.
func (h *UserHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	users, err := h.userService.RecommendedUsers(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing recommended users: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserListResponse{Users: users})
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	query := r.URL.Query().Get("q")
	if len(strings.TrimSpace(query)) < 2 {
		writeJSON(w, http.StatusOK, UserListResponse{Users: []models.PublicProfile{}})
		return
	}

	users, err := h.userService.SearchUsers(r.Context(), user.ID, query)
	if err != nil {
		log.Printf("Error searching users: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserListResponse{Users: users})
}
