package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/models"
)

type fakeUserRepo struct {
	users  []models.User
	nextID uint
}

func (f *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func userFixture(t *testing.T) (UserService, *fakeUserRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("sekret-parola"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{
		users: []models.User{{
			ID:           1,
			Username:     "aylin.kaya",
			Email:        "aylin@example.com",
			FirstName:    "Aylin",
			LastName:     "Kaya",
			PasswordHash: string(hash),
			Role:         "expert",
			IsActive:     true,
		}},
		nextID: 1,
	}

	tokens := auth.NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewUserService(repo, tokens, validate, testLogger()), repo
}

func TestUserServiceLogin(t *testing.T) {
	svc, _ := userFixture(t)

	pair, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "aylin.kaya",
		Password: "sekret-parola",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "aylin.kaya", pair.User.Username)
	require.Equal(t, "Aylin Kaya", pair.User.FullName)

	token, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "1", claims["sub"])
	require.Equal(t, "expert", claims["role"])
}

func TestUserServiceLoginRejectsBadCredentials(t *testing.T) {
	svc, repo := userFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "aylin.kaya",
		Password: "wrong",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "nobody",
		Password: "sekret-parola",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Deactivated accounts are indistinguishable from bad passwords.
	repo.users[0].IsActive = false
	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "aylin.kaya",
		Password: "sekret-parola",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceCreateRequiresAdmin(t *testing.T) {
	svc, repo := userFixture(t)

	payload := dto.UserCreateRequest{
		Username:  "mehmet.demir",
		Email:     "mehmet@example.com",
		FirstName: "Mehmet",
		LastName:  "Demir",
		Password:  "guclu-parola-1",
		Role:      "agent",
	}

	_, err := svc.Create(context.Background(), payload, auth.Actor{ID: 1, Role: auth.RoleExpert})
	require.ErrorIs(t, err, ErrForbidden)

	created, err := svc.Create(context.Background(), payload, auth.Actor{ID: 9, Role: auth.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, "mehmet.demir", created.Username)
	require.Equal(t, "agent", created.Role)
	require.True(t, created.IsActive)

	stored, err := repo.GetByUsername(context.Background(), "mehmet.demir")
	require.NoError(t, err)
	require.NotEqual(t, "guclu-parola-1", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("guclu-parola-1")))
}

func TestUserServiceGetScopesToSelf(t *testing.T) {
	svc, _ := userFixture(t)

	own, err := svc.Get(context.Background(), 1, auth.Actor{ID: 1, Role: auth.RoleExpert})
	require.NoError(t, err)
	require.Equal(t, "aylin.kaya", own.Username)

	_, err = svc.Get(context.Background(), 1, auth.Actor{ID: 2, Role: auth.RoleAgent})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(context.Background(), 99, auth.Actor{ID: 9, Role: auth.RoleAdmin})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceUpdate(t *testing.T) {
	svc, repo := userFixture(t)
	admin := auth.Actor{ID: 9, Role: auth.RoleAdmin}

	role := "agent"
	inactive := false
	updated, err := svc.Update(context.Background(), 1, dto.UserUpdateRequest{
		Role:     &role,
		IsActive: &inactive,
	}, admin)
	require.NoError(t, err)
	require.Equal(t, "agent", updated.Role)
	require.False(t, updated.IsActive)
	require.Equal(t, "aylin.kaya", updated.Username, "username is immutable")

	require.Equal(t, "agent", repo.users[0].Role)
}

func TestUserServiceChangePassword(t *testing.T) {
	svc, repo := userFixture(t)

	err := svc.ChangePassword(context.Background(), 1, dto.PasswordChangeRequest{
		CurrentPassword: "wrong",
		NewPassword:     "yepyeni-parola",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), 1, dto.PasswordChangeRequest{
		CurrentPassword: "sekret-parola",
		NewPassword:     "yepyeni-parola",
	})
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[0].PasswordHash), []byte("yepyeni-parola")))
}
