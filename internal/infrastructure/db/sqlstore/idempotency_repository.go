package sqlstore

import (
	"context"
	"errors"

	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
	"gorm.io/gorm"
)

type IdempotencyRepository struct {
	db *gorm.DB
}

func NewIdempotencyRepository(db *gorm.DB) repositories.IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) Create(ctx context.Context, record *entities.IdempotencyRecord) (*entities.IdempotencyRecord, error) {
	recordModel := IdempotencyRecordModel{
		Id:         record.Id,
		Key:        record.Key,
		Request:    record.Request,
		Response:   record.Response,
		StatusCode: record.StatusCode,
		CreatedAt:  record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&recordModel).Error; err != nil {
		return nil, translateError(err, "idempotency record", "key")
	}
	return r.FindByKey(ctx, record.Key)
}

func (r *IdempotencyRepository) FindByKey(ctx context.Context, key string) (*entities.IdempotencyRecord, error) {
	var recordModel IdempotencyRecordModel
	if err := r.db.WithContext(ctx).Where(&IdempotencyRecordModel{Key: key}).First(&recordModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entities.IdempotencyRecord{
		Id:         recordModel.Id,
		Key:        recordModel.Key,
		Request:    recordModel.Request,
		Response:   recordModel.Response,
		StatusCode: recordModel.StatusCode,
		CreatedAt:  recordModel.CreatedAt,
	}, nil
}

// Update stores the response of a reserved key.
func (r *IdempotencyRepository) Update(ctx context.Context, record *entities.IdempotencyRecord) error {
	return r.db.WithContext(ctx).
		Model(&IdempotencyRecordModel{}).
		Where(&IdempotencyRecordModel{Key: record.Key}).
		Updates(map[string]interface{}{
			"response":    record.Response,
			"status_code": record.StatusCode,
		}).Error
}

func (r *IdempotencyRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where(&IdempotencyRecordModel{Key: key}).
		Delete(&IdempotencyRecordModel{}).Error
}
