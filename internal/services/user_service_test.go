package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tandemly/tandemly/internal/models"
)

func userRowValues(id uuid.UUID, email, fullName string, onboarded bool) []any {
	now := time.Now()
	return []any{
		id, email, "hash", fullName, "", "pic.png",
		"english", "spanish", "", onboarded, now, now,
	}
}

func TestUserService_Create_EmailExists(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(true)
		},
	}

	svc := NewUserService(db)
	_, err := svc.Create(context.Background(), models.CreateUserParams{Email: "a@b.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUserService_Create_Success(t *testing.T) {
	userID := uuid.New()
	call := 0
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			call++
			if call == 1 {
				return rowFromValues(false)
			}
			return rowFromValues(userRowValues(userID, "a@b.com", "Alice", false)...)
		},
	}

	svc := NewUserService(db)
	user, err := svc.Create(context.Background(), models.CreateUserParams{
		Email:        "a@b.com",
		PasswordHash: "hash",
		FullName:     "Alice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != userID || user.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.IsOnboarded {
		t.Fatal("expected new user to not be onboarded")
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return noRow()
		},
	}

	svc := NewUserService(db)
	_, err := svc.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetByEmail_Success(t *testing.T) {
	userID := uuid.New()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(userRowValues(userID, "a@b.com", "Alice", true)...)
		},
	}

	svc := NewUserService(db)
	user, err := svc.GetByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != userID {
		t.Fatalf("expected user %v, got %v", userID, user.ID)
	}
}

func TestUserService_CompleteOnboarding_Success(t *testing.T) {
	userID := uuid.New()
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(userRowValues(userID, "a@b.com", "Alice", true)...)
		},
	}

	svc := NewUserService(db)
	user, err := svc.CompleteOnboarding(context.Background(), userID, models.OnboardingParams{
		FullName:         "Alice",
		NativeLanguage:   "english",
		LearningLanguage: "spanish",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsOnboarded {
		t.Fatal("expected onboarded user")
	}
}

func TestUserService_CompleteOnboarding_AlreadyOnboarded(t *testing.T) {
	userID := uuid.New()
	call := 0
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			call++
			if call == 1 {
				// Conditional update matched nothing.
				return noRow()
			}
			// The user exists, so the miss means a repeat onboarding.
			return rowFromValues(userRowValues(userID, "a@b.com", "Alice", true)...)
		},
	}

	svc := NewUserService(db)
	_, err := svc.CompleteOnboarding(context.Background(), userID, models.OnboardingParams{})
	if !errors.Is(err, ErrAlreadyOnboarded) {
		t.Fatalf("expected ErrAlreadyOnboarded, got %v", err)
	}
}

func TestUserService_CompleteOnboarding_UserGone(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return noRow()
		},
	}

	svc := NewUserService(db)
	_, err := svc.CompleteOnboarding(context.Background(), uuid.New(), models.OnboardingParams{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_RecommendedUsers_ExcludesFriendsInQuery(t *testing.T) {
	profileID := uuid.New()
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (Rows, error) {
			if !strings.Contains(sql, "NOT EXISTS") || !strings.Contains(sql, "user_friends") {
				t.Fatalf("expected friend exclusion in query: %s", sql)
			}
			return &fakeRows{rows: [][]any{profileRowValues(profileID, "Bob")}}, nil
		},
	}

	svc := NewUserService(db)
	profiles, err := svc.RecommendedUsers(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 || profiles[0].ID != profileID {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
}

func TestUserService_SearchUsers_ShortQuery(t *testing.T) {
	svc := NewUserService(&fakeDB{})
	results, err := svc.SearchUsers(context.Background(), uuid.New(), " a ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestUserService_SearchUsers_ReturnsRows(t *testing.T) {
	profileID := uuid.New()
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (Rows, error) {
			if len(args) != 2 || args[1] != "%al%" {
				t.Fatalf("expected lowercase pattern arg, got %v", args)
			}
			return &fakeRows{rows: [][]any{profileRowValues(profileID, "Alice")}}, nil
		},
	}

	svc := NewUserService(db)
	results, err := svc.SearchUsers(context.Background(), uuid.New(), "AL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].FullName != "Alice" {
		t.Fatalf("unexpected results: %+v", results)
	}
}
