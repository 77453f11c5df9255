package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/models"
	"github.com/faikerkan/QuailtyHUB/internal/repository"
)

// ErrCallNotFound indicates a call record could not be found.
var ErrCallNotFound = errors.New("call not found")

// ErrCallQueueNotFound indicates the referenced call queue does not exist.
var ErrCallQueueNotFound = errors.New("call queue not found")

// ErrUnsupportedAudioType indicates the uploaded recording is not an accepted audio format.
var ErrUnsupportedAudioType = errors.New("unsupported audio file type")

// FileUploader stores an uploaded file and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// CallService orchestrates call record workflows.
type CallService interface {
	List(ctx context.Context, filter dto.CallFilter, actor auth.Actor) ([]dto.CallResponse, error)
	Get(ctx context.Context, id uint, actor auth.Actor) (dto.CallResponse, error)
	Upload(ctx context.Context, payload dto.CallUploadRequest, file *multipart.FileHeader, actor auth.Actor) (dto.CallResponse, error)
	ListQueues(ctx context.Context) ([]dto.CallQueueResponse, error)
	CreateQueue(ctx context.Context, payload dto.CallQueueRequest, actor auth.Actor) (dto.CallQueueResponse, error)
}

type callService struct {
	calls     repository.CallRepository
	users     repository.UserRepository
	validator *validator.Validate
	uploader  FileUploader
	logger    zerolog.Logger
}

// NewCallService constructs a CallService instance.
func NewCallService(calls repository.CallRepository, users repository.UserRepository, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) CallService {
	return &callService{
		calls:     calls,
		users:     users,
		validator: validate,
		uploader:  uploader,
		logger:    logger.With().Str("component", "call_service").Logger(),
	}
}

func (s *callService) List(ctx context.Context, filter dto.CallFilter, actor auth.Actor) ([]dto.CallResponse, error) {
	repoFilter := repository.CallFilter{
		AgentID:     filter.AgentID,
		CallQueueID: filter.CallQueueID,
	}

	// Agents only ever see their own calls, whatever they ask for.
	if !actor.Superuser && actor.Role == auth.RoleAgent {
		agentID := actor.ID
		repoFilter.AgentID = &agentID
	}

	calls, err := s.calls.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewCallResponseSlice(calls), nil
}

func (s *callService) Get(ctx context.Context, id uint, actor auth.Actor) (dto.CallResponse, error) {
	call, err := s.calls.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CallResponse{}, ErrCallNotFound
		}
		return dto.CallResponse{}, err
	}

	resource := auth.Resource{OwnerID: call.UploadedByID, AgentID: call.AgentID}
	if !auth.Can(actor, auth.OpReadCall, &resource) {
		return dto.CallResponse{}, ErrForbidden
	}

	return dto.NewCallResponse(call), nil
}

func (s *callService) Upload(ctx context.Context, payload dto.CallUploadRequest, file *multipart.FileHeader, actor auth.Actor) (dto.CallResponse, error) {
	if !auth.Can(actor, auth.OpUploadCall, nil) {
		return dto.CallResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CallResponse{}, err
	}

	if file == nil {
		return dto.CallResponse{}, fmt.Errorf("audio file is required")
	}

	agent, err := s.users.GetByID(ctx, payload.AgentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CallResponse{}, ErrUserNotFound
		}
		return dto.CallResponse{}, err
	}

	if _, err := s.calls.GetQueueByID(ctx, payload.CallQueueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CallResponse{}, ErrCallQueueNotFound
		}
		return dto.CallResponse{}, err
	}

	if err := validateAudioType(file); err != nil {
		return dto.CallResponse{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.CallResponse{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	audioURL, err := s.uploader.Upload(ctx, file.Filename, reader)
	if err != nil {
		return dto.CallResponse{}, fmt.Errorf("failed to store recording: %w", err)
	}

	call := models.CallRecord{
		UploadedByID: actor.ID,
		AgentID:      agent.ID,
		CallQueueID:  payload.CallQueueID,
		PhoneNumber:  payload.PhoneNumber,
		AudioURL:     audioURL,
		ExternalID:   payload.ExternalID,
		CallDate:     payload.CallDate,
	}

	if err := s.calls.Create(ctx, &call); err != nil {
		return dto.CallResponse{}, err
	}

	created, err := s.calls.GetByID(ctx, call.ID)
	if err != nil {
		return dto.CallResponse{}, err
	}

	s.logger.Info().Uint("call_id", created.ID).Uint("agent_id", agent.ID).Msg("call recording uploaded")

	return dto.NewCallResponse(created), nil
}

func (s *callService) ListQueues(ctx context.Context) ([]dto.CallQueueResponse, error) {
	queues, err := s.calls.ListQueues(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCallQueueResponseSlice(queues), nil
}

func (s *callService) CreateQueue(ctx context.Context, payload dto.CallQueueRequest, actor auth.Actor) (dto.CallQueueResponse, error) {
	if !auth.Can(actor, auth.OpManageUsers, nil) {
		return dto.CallQueueResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CallQueueResponse{}, err
	}

	queue := models.CallQueue{Name: payload.Name, Description: payload.Description}
	if err := s.calls.CreateQueue(ctx, &queue); err != nil {
		return dto.CallQueueResponse{}, err
	}

	return dto.NewCallQueueResponse(queue), nil
}

func validateAudioType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"audio/mpeg", "audio/wav", "audio/x-wav", "audio/mp4", "audio/x-m4a"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedAudioType, mime.String())
}
