package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tandemly/tandemly/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAlreadyOnboarded   = errors.New("onboarding already completed")
)

const userColumns = `id, email, password_hash, full_name, bio, profile_pic,
	native_language, learning_language, location, is_onboarded, created_at, updated_at`

type UserService struct {
	db DBConn
}

func NewUserService(db DBConn) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", params.Email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	user := &models.User{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, full_name, profile_pic)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		params.Email, params.PasswordHash, params.FullName, params.ProfilePic,
	).Scan(scanUserDest(user)...)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1",
		id,
	).Scan(scanUserDest(user)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1",
		email,
	).Scan(scanUserDest(user)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return user, nil
}

// CompleteOnboarding fills the profile fields and flips is_onboarded.
// Onboarding runs once; a second call fails.
func (s *UserService) CompleteOnboarding(ctx context.Context, userID uuid.UUID, params models.OnboardingParams) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`UPDATE users
		 SET full_name = $2, bio = $3, native_language = $4, learning_language = $5,
		     location = $6, is_onboarded = true, updated_at = now()
		 WHERE id = $1 AND is_onboarded = false
		 RETURNING `+userColumns,
		userID, params.FullName, params.Bio, params.NativeLanguage, params.LearningLanguage, params.Location,
	).Scan(scanUserDest(user)...)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the user is gone or they already onboarded.
		if _, getErr := s.GetByID(ctx, userID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyOnboarded
	}
	if err != nil {
		return nil, fmt.Errorf("completing onboarding: %w", err)
	}

	return user, nil
}

// RecommendedUsers returns onboarded users the given user is not already
// friends with, for the discovery page.
func (s *UserService) RecommendedUsers(ctx context.Context, userID uuid.UUID) ([]models.PublicProfile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, full_name, profile_pic, native_language, learning_language
		 FROM users
		 WHERE id != $1
		   AND is_onboarded = true
		   AND NOT EXISTS (
		     SELECT 1 FROM user_friends
		     WHERE user_id = $1 AND friend_id = users.id
		   )
		 ORDER BY created_at DESC
		 LIMIT 50`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recommended users: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// SearchUsers finds onboarded users by name. Queries under two characters
// return nothing rather than the whole directory.
func (s *UserService) SearchUsers(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.PublicProfile, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []models.PublicProfile{}, nil
	}

	searchPattern := "%" + strings.ToLower(query) + "%"

	rows, err := s.db.Query(ctx,
		`SELECT id, full_name, profile_pic, native_language, learning_language
		 FROM users
		 WHERE id != $1
		   AND is_onboarded = true
		   AND LOWER(full_name) LIKE $2
		 ORDER BY full_name
		 LIMIT 20`,
		currentUserID, searchPattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func scanProfiles(rows Rows) ([]models.PublicProfile, error) {
	var results []models.PublicProfile
	for rows.Next() {
		var p models.PublicProfile
		if err := rows.Scan(&p.ID, &p.FullName, &p.ProfilePic, &p.NativeLanguage, &p.LearningLanguage); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading users: %w", err)
	}

	if results == nil {
		results = []models.PublicProfile{}
	}

	return results, nil
}

func scanUserDest(u *models.User) []any {
	return []any{
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Bio, &u.ProfilePic,
		&u.NativeLanguage, &u.LearningLanguage, &u.Location, &u.IsOnboarded,
		&u.CreatedAt, &u.UpdatedAt,
	}
}
