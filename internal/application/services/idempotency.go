package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blog-service/internal/application/interfaces"
	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
)

// idempotency replays results of create commands submitted with a client key.
// A nil repository disables it.
type idempotency struct {
	repo repositories.IdempotencyRepository
}

// reserve claims key for request before any work runs. When the key already
// holds a finished result for the same request, that result is decoded into
// result and reserve reports true. Reusing a key with a different request
// body, or while the first request is still running, is a conflict.
func (i idempotency) reserve(ctx context.Context, key string, request, result interface{}) (bool, error) {
	if i.repo == nil || key == "" {
		return false, nil
	}

	requestJSON, err := json.Marshal(request)
	if err != nil {
		return false, err
	}

	_, err = i.repo.Create(ctx, entities.NewIdempotencyRecord(key, string(requestJSON)))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, entities.ErrConflict) {
		return false, err
	}

	existingRecord, err := i.repo.FindByKey(ctx, key)
	if err != nil {
		return false, err
	}
	if existingRecord == nil || existingRecord.Request != string(requestJSON) || existingRecord.Pending() {
		return false, entities.NewConflictError("idempotency_record", "idempotency_key", key)
	}

	if err := json.Unmarshal([]byte(existingRecord.Response), result); err != nil {
		return false, err
	}
	return true, nil
}

// complete stores the result against a reserved key. Failures are logged only;
// the entity is already committed.
func (i idempotency) complete(ctx context.Context, key string, request, result interface{}) {
	if i.repo == nil || key == "" {
		return
	}

	requestJSON, err := json.Marshal(request)
	if err != nil {
		log.Printf("Failed to encode idempotent request: %v", err)
		return
	}
	responseJSON, err := json.Marshal(result)
	if err != nil {
		log.Printf("Failed to encode idempotent response: %v", err)
		return
	}

	record := entities.NewIdempotencyRecord(key, string(requestJSON))
	record.SetResponse(string(responseJSON), http.StatusCreated)
	if err := i.repo.Update(ctx, record); err != nil {
		log.Printf("Failed to store idempotency record: %v", err)
	}
}

// release frees a reserved key after the command failed, so it can be retried.
func (i idempotency) release(ctx context.Context, key string) {
	if i.repo == nil || key == "" {
		return
	}
	if err := i.repo.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Printf("Failed to release idempotency key %s: %v", key, err)
	}
}

func publish(ctx context.Context, publisher interfaces.EventPublisher, subject string, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, subject, payload); err != nil {
		log.Printf("Failed to publish %s: %v", subject, err)
	}
}
