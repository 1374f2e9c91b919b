package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tandemly/tandemly/internal/models"
)

var (
	ErrSelfRequest       = errors.New("cannot send friend request to yourself")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrAlreadyFriends    = errors.New("already friends with this user")
	ErrDuplicateRequest  = errors.New("a friend request already exists between these users")
	ErrRequestNotFound   = errors.New("friend request not found")
	ErrNotRecipient      = errors.New("only the recipient can act on this request")
	ErrNotParticipant    = errors.New("not a party to this request")
	ErrAlreadyAccepted   = errors.New("friend request already accepted")
	ErrNotFriends        = errors.New("you are not friends with this user")
	ErrConflict          = errors.New("request changed concurrently")
)

const pgUniqueViolation = "23505"

// FriendService owns the friend-request lifecycle and the mutual friend
// set. Nothing else writes friend_requests or user_friends.
type FriendService struct {
	db       DBConn
	notifier FriendshipNotifier
}

// FriendshipNotifier is told, best-effort, when two users become friends.
// A nil notifier is valid and disables notification.
type FriendshipNotifier interface {
	NotifyFriendship(userID, friendID uuid.UUID)
}

func NewFriendService(db DBConn, notifier FriendshipNotifier) *FriendService {
	return &FriendService{db: db, notifier: notifier}
}

// SendRequest creates a pending request from sender to recipient after the
// self, existence, already-friends and duplicate guards. Two users sending
// to each other concurrently race on the pair unique index; the second
// insert loses and surfaces as ErrDuplicateRequest.
func (s *FriendService) SendRequest(ctx context.Context, senderID, recipientID uuid.UUID) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, ErrSelfRequest
	}

	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)",
		recipientID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking recipient: %w", err)
	}
	if !exists {
		return nil, ErrRecipientNotFound
	}

	areFriends, err := s.IsFriend(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if areFriends {
		return nil, ErrAlreadyFriends
	}

	// Check for a request in either direction before inserting. The unique
	// pair index backstops this check against concurrent senders.
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE (sender_id = $1 AND recipient_id = $2)
			   OR (sender_id = $2 AND recipient_id = $1)
		)`,
		senderID, recipientID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking existing request: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	request := &models.FriendRequest{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO friend_requests (sender_id, recipient_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id, sender_id, recipient_id, status, created_at, updated_at`,
		senderID, recipientID,
	).Scan(&request.ID, &request.SenderID, &request.RecipientID, &request.Status, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	return request, nil
}

// AcceptRequest flips the record to accepted and writes both sides of the
// friend set in one transaction. The status flip is a check-and-set; if a
// concurrent call got there first the transaction aborts.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*models.FriendRequest, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	request, err := getRequestByID(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}

	if request.RecipientID != userID {
		return nil, ErrNotRecipient
	}
	if request.Status != models.FriendRequestStatusPending {
		return nil, ErrAlreadyAccepted
	}

	tag, err := tx.Exec(ctx,
		`UPDATE friend_requests SET status = 'accepted', updated_at = now()
		 WHERE id = $1 AND status = 'pending'`,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("accepting friend request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrConflict
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO user_friends (user_id, friend_id)
		 VALUES ($1, $2), ($2, $1)
		 ON CONFLICT DO NOTHING`,
		request.SenderID, request.RecipientID,
	)
	if err != nil {
		return nil, fmt.Errorf("adding mutual friends: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing acceptance: %w", err)
	}

	request.Status = models.FriendRequestStatusAccepted

	if s.notifier != nil {
		s.notifier.NotifyFriendship(request.SenderID, request.RecipientID)
	}

	return request, nil
}

// DeclineRequest deletes a pending request. Declining leaves no trace: a
// later send between the same pair starts from scratch.
func (s *FriendService) DeclineRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	request, err := getRequestByID(ctx, s.db, requestID)
	if err != nil {
		return err
	}

	if request.RecipientID != userID {
		return ErrNotRecipient
	}
	if request.Status != models.FriendRequestStatusPending {
		// An accepted record is a notification, not a declinable request.
		return ErrRequestNotFound
	}

	tag, err := s.db.Exec(ctx,
		"DELETE FROM friend_requests WHERE id = $1 AND status = 'pending'",
		requestID,
	)
	if err != nil {
		return fmt.Errorf("declining friend request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	return nil
}

// DismissAccepted deletes an accepted record, i.e. the "X accepted your
// request" notification, without touching the friendship itself.
func (s *FriendService) DismissAccepted(ctx context.Context, userID, requestID uuid.UUID) error {
	request, err := getRequestByID(ctx, s.db, requestID)
	if err != nil {
		return err
	}

	if !request.Involves(userID) {
		return ErrNotParticipant
	}
	if request.Status != models.FriendRequestStatusAccepted {
		return ErrRequestNotFound
	}

	_, err = s.db.Exec(ctx,
		"DELETE FROM friend_requests WHERE id = $1",
		requestID,
	)
	if err != nil {
		return fmt.Errorf("dismissing notification: %w", err)
	}

	return nil
}

// Unfriend removes both sides of the friend set and any leftover accepted
// record between the pair, in one transaction. Friendship may outlive the
// request record (the other party can have dismissed it), so this keys on
// the friend set, not on a request id.
func (s *FriendService) Unfriend(ctx context.Context, userID, friendID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM user_friends
		 WHERE (user_id = $1 AND friend_id = $2)
		    OR (user_id = $2 AND friend_id = $1)`,
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("removing mutual friends: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFriends
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM friend_requests
		 WHERE ((sender_id = $1 AND recipient_id = $2)
		     OR (sender_id = $2 AND recipient_id = $1))
		   AND status = 'accepted'`,
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("removing accepted record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing unfriend: %w", err)
	}

	return nil
}

func (s *FriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	var isFriend bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM user_friends WHERE user_id = $1 AND friend_id = $2)",
		userID, otherUserID,
	).Scan(&isFriend)
	if err != nil {
		return false, fmt.Errorf("checking friendship: %w", err)
	}
	return isFriend, nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.full_name, u.profile_pic, u.native_language, u.learning_language
		 FROM user_friends uf
		 JOIN users u ON u.id = uf.friend_id
		 WHERE uf.user_id = $1
		 ORDER BY u.full_name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	var friends []models.PublicProfile
	for rows.Next() {
		var p models.PublicProfile
		if err := rows.Scan(&p.ID, &p.FullName, &p.ProfilePic, &p.NativeLanguage, &p.LearningLanguage); err != nil {
			return nil, fmt.Errorf("scanning friend: %w", err)
		}
		friends = append(friends, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}

	if friends == nil {
		friends = []models.PublicProfile{}
	}

	return friends, nil
}

// ListIncomingPending returns pending requests addressed to the user,
// newest first, with the sender's profile attached.
func (s *FriendService) ListIncomingPending(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error) {
	return s.listRequests(ctx,
		`SELECT r.id, r.sender_id, r.recipient_id, r.status, r.created_at, r.updated_at,
		        u.id, u.full_name, u.profile_pic, u.native_language, u.learning_language
		 FROM friend_requests r
		 JOIN users u ON u.id = r.sender_id
		 WHERE r.recipient_id = $1 AND r.status = 'pending'
		 ORDER BY r.created_at DESC`,
		userID,
	)
}

// ListOutgoingPending returns pending requests the user has sent, newest
// first, with the recipient's profile attached.
func (s *FriendService) ListOutgoingPending(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error) {
	return s.listRequests(ctx,
		`SELECT r.id, r.sender_id, r.recipient_id, r.status, r.created_at, r.updated_at,
		        u.id, u.full_name, u.profile_pic, u.native_language, u.learning_language
		 FROM friend_requests r
		 JOIN users u ON u.id = r.recipient_id
		 WHERE r.sender_id = $1 AND r.status = 'pending'
		 ORDER BY r.created_at DESC`,
		userID,
	)
}

// ListAcceptedInvolving returns accepted records the user is a party to,
// with the counterparty's profile attached. These double as "recently
// accepted" notifications and stay until dismissed.
func (s *FriendService) ListAcceptedInvolving(ctx context.Context, userID uuid.UUID) ([]models.RequestWithProfile, error) {
	return s.listRequests(ctx,
		`SELECT r.id, r.sender_id, r.recipient_id, r.status, r.created_at, r.updated_at,
		        u.id, u.full_name, u.profile_pic, u.native_language, u.learning_language
		 FROM friend_requests r
		 JOIN users u ON u.id = CASE WHEN r.sender_id = $1 THEN r.recipient_id ELSE r.sender_id END
		 WHERE (r.sender_id = $1 OR r.recipient_id = $1) AND r.status = 'accepted'
		 ORDER BY r.updated_at DESC`,
		userID,
	)
}

func (s *FriendService) listRequests(ctx context.Context, query string, userID uuid.UUID) ([]models.RequestWithProfile, error) {
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	var requests []models.RequestWithProfile
	for rows.Next() {
		var r models.RequestWithProfile
		if err := rows.Scan(
			&r.ID, &r.SenderID, &r.RecipientID, &r.Status, &r.CreatedAt, &r.UpdatedAt,
			&r.User.ID, &r.User.FullName, &r.User.ProfilePic, &r.User.NativeLanguage, &r.User.LearningLanguage,
		); err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	if requests == nil {
		requests = []models.RequestWithProfile{}
	}

	return requests, nil
}

// rowQuerier is satisfied by both DBConn and Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

func getRequestByID(ctx context.Context, q rowQuerier, requestID uuid.UUID) (*models.FriendRequest, error) {
	request := &models.FriendRequest{}
	err := q.QueryRow(ctx,
		`SELECT id, sender_id, recipient_id, status, created_at, updated_at
		 FROM friend_requests WHERE id = $1`,
		requestID,
	).Scan(&request.ID, &request.SenderID, &request.RecipientID, &request.Status, &request.CreatedAt, &request.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting friend request: %w", err)
	}
	return request, nil
}
