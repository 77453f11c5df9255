package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/models"
	"github.com/faikerkan/QuailtyHUB/internal/repository"
)

// ErrUserNotFound indicates an account could not be found.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials indicates a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService orchestrates account and authentication workflows.
type UserService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenPairResponse, error)
	List(ctx context.Context, actor auth.Actor) ([]dto.UserResponse, error)
	Get(ctx context.Context, id uint, actor auth.Actor) (dto.UserResponse, error)
	Create(ctx context.Context, payload dto.UserCreateRequest, actor auth.Actor) (dto.UserResponse, error)
	Update(ctx context.Context, id uint, payload dto.UserUpdateRequest, actor auth.Actor) (dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uint, payload dto.PasswordChangeRequest) error
}

type userService struct {
	users     repository.UserRepository
	tokens    auth.TokenIssuer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(users repository.UserRepository, tokens auth.TokenIssuer, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		tokens:    tokens,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenPairResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenPairResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(payload.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenPairResponse{}, ErrInvalidCredentials
		}
		return dto.TokenPairResponse{}, err
	}

	if !user.IsActive {
		return dto.TokenPairResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.TokenPairResponse{}, ErrInvalidCredentials
	}

	actor := ActorForUser(user)
	access, refresh, err := s.tokens.Issue(actor)
	if err != nil {
		return dto.TokenPairResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user logged in")

	return dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *userService) List(ctx context.Context, actor auth.Actor) ([]dto.UserResponse, error) {
	if !auth.Can(actor, auth.OpManageUsers, nil) {
		return nil, ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) Get(ctx context.Context, id uint, actor auth.Actor) (dto.UserResponse, error) {
	if id != actor.ID && !auth.Can(actor, auth.OpManageUsers, nil) {
		return dto.UserResponse{}, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Create(ctx context.Context, payload dto.UserCreateRequest, actor auth.Actor) (dto.UserResponse, error) {
	if !auth.Can(actor, auth.OpManageUsers, nil) {
		return dto.UserResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Username:     strings.TrimSpace(payload.Username),
		Email:        strings.TrimSpace(payload.Email),
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		PasswordHash: string(hash),
		Role:         payload.Role,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user created")

	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id uint, payload dto.UserUpdateRequest, actor auth.Actor) (dto.UserResponse, error) {
	if !auth.Can(actor, auth.OpManageUsers, nil) {
		return dto.UserResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if payload.Email != nil {
		user.Email = strings.TrimSpace(*payload.Email)
	}
	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.Role != nil {
		user.Role = *payload.Role
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, payload dto.PasswordChangeRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	return s.users.Update(ctx, &user)
}

// ActorForUser resolves a stored account into the policy actor used
// throughout the services.
func ActorForUser(user models.User) auth.Actor {
	role, _ := auth.ParseRole(user.Role)
	return auth.Actor{ID: user.ID, Role: role, Superuser: user.IsSuperuser}
}
