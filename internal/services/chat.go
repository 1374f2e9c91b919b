package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tandemly/tandemly/internal/logging"
)

var ErrChatNotConfigured = errors.New("chat provider is not configured")

// ChatService fronts the external chat/video provider. It mints the
// server-signed tokens the client uses to connect, and tells the provider
// when two users become friends so it can allow a channel between them.
// Notification is best-effort: the friendship is already committed by the
// time the provider hears about it, and a failed notify never unwinds it.
type ChatService struct {
	apiKey     string
	apiSecret  string
	webhookURL string
	httpClient *http.Client
	logger     *logging.Logger
}

func NewChatService(apiKey, apiSecret, webhookURL string, logger *logging.Logger) *ChatService {
	if logger == nil {
		logger = logging.Default
	}
	return &ChatService{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// GenerateToken mints the provider token for one user. The provider
// expects an HS256 JWT signed with the API secret carrying the user id.
func (s *ChatService) GenerateToken(userID uuid.UUID) (string, error) {
	if s.apiSecret == "" {
		return "", ErrChatNotConfigured
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(s.apiSecret))
	if err != nil {
		return "", fmt.Errorf("signing chat token: %w", err)
	}

	return signed, nil
}

// NotifyFriendship tells the provider that two users may now chat. Runs in
// its own goroutine with its own deadline so callers never block on it.
func (s *ChatService) NotifyFriendship(userID, friendID uuid.UUID) {
	if s.webhookURL == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.postFriendship(ctx, userID, friendID); err != nil {
			s.logger.Warn("Chat provider notify failed", map[string]interface{}{
				"error":     err.Error(),
				"user_id":   userID.String(),
				"friend_id": friendID.String(),
			})
		}
	}()
}

func (s *ChatService) postFriendship(ctx context.Context, userID, friendID uuid.UUID) error {
	payload, err := json.Marshal(map[string]string{
		"type":      "friendship.created",
		"user_id":   userID.String(),
		"friend_id": friendID.String(),
	})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return nil
}
