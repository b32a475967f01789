package equipment

import (
	"context"

	"equiptrack/internal/domain"
)

// RecordStore is the select/insert/update capability over the equipment log.
type RecordStore interface {
	Select(ctx context.Context, f domain.Filter) ([]domain.EquipmentRecord, error)
	Insert(ctx context.Context, rec *domain.EquipmentRecord) error
	Update(ctx context.Context, id int64, patch domain.CheckOutPatch) (*domain.EquipmentRecord, error)
}

// AvailabilityPublisher receives the refreshed available list after each mutation.
type AvailabilityPublisher interface {
	PublishAvailable(records []domain.EquipmentRecord)
}

// Lifecycle is what a Session drives. Both the in-process Service and the
// HTTP client implement it.
type Lifecycle interface {
	ListAvailable(ctx context.Context) ([]domain.EquipmentRecord, error)
	CheckIn(ctx context.Context, req CheckInRequest) (*domain.EquipmentRecord, error)
	CheckOut(ctx context.Context, id string) (*CheckOutResult, error)
}
