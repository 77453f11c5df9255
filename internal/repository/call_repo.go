package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/models"
)

// CallFilter narrows call listings to one agent or one queue.
type CallFilter struct {
	AgentID     *uint
	CallQueueID *uint
}

// CallRepository defines data operations for call records and queues.
type CallRepository interface {
	List(ctx context.Context, filter CallFilter) ([]models.CallRecord, error)
	GetByID(ctx context.Context, id uint) (models.CallRecord, error)
	Create(ctx context.Context, call *models.CallRecord) error
	ListQueues(ctx context.Context) ([]models.CallQueue, error)
	GetQueueByID(ctx context.Context, id uint) (models.CallQueue, error)
	CreateQueue(ctx context.Context, queue *models.CallQueue) error
}

type callRepository struct {
	db *gorm.DB
}

// NewCallRepository instantiates the repository.
func NewCallRepository(db *gorm.DB) CallRepository {
	return &callRepository{db: db}
}

func (r *callRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.CallRecord{}).
		Preload("UploadedBy").
		Preload("Agent").
		Preload("CallQueue")
}

func (r *callRepository) List(ctx context.Context, filter CallFilter) ([]models.CallRecord, error) {
	query := r.baseQuery(ctx)

	if filter.AgentID != nil {
		query = query.Where("agent_id = ?", *filter.AgentID)
	}

	if filter.CallQueueID != nil {
		query = query.Where("call_queue_id = ?", *filter.CallQueueID)
	}

	var calls []models.CallRecord
	if err := query.Order("call_date DESC").Find(&calls).Error; err != nil {
		return nil, err
	}

	return calls, nil
}

func (r *callRepository) GetByID(ctx context.Context, id uint) (models.CallRecord, error) {
	var call models.CallRecord
	if err := r.baseQuery(ctx).First(&call, id).Error; err != nil {
		return models.CallRecord{}, err
	}
	return call, nil
}

func (r *callRepository) Create(ctx context.Context, call *models.CallRecord) error {
	return r.db.WithContext(ctx).Create(call).Error
}

func (r *callRepository) ListQueues(ctx context.Context) ([]models.CallQueue, error) {
	var queues []models.CallQueue
	if err := r.db.WithContext(ctx).Order("name").Find(&queues).Error; err != nil {
		return nil, err
	}
	return queues, nil
}

func (r *callRepository) GetQueueByID(ctx context.Context, id uint) (models.CallQueue, error) {
	var queue models.CallQueue
	if err := r.db.WithContext(ctx).First(&queue, id).Error; err != nil {
		return models.CallQueue{}, err
	}
	return queue, nil
}

func (r *callRepository) CreateQueue(ctx context.Context, queue *models.CallQueue) error {
	return r.db.WithContext(ctx).Create(queue).Error
}
