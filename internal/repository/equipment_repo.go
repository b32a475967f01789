package repository

import (
	"context"
	"errors"
	"time"

	"equiptrack/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// EquipmentTable is the single logical table the tracker reads and writes.
const EquipmentTable = "equipment_log"

var (
	// ErrNotUpdated is returned when a conditional update matched no row.
	ErrNotUpdated = errors.New("no row matched the update condition")
	// ErrInvalidRecord is returned when the store rejects a row on a constraint.
	ErrInvalidRecord = errors.New("record violates a store constraint")
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

type EquipmentModel struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	EquipmentName string    `gorm:"column:equipment_name;not null"`
	RenterNumber  *string   `gorm:"column:renter_number"`
	Rate          float64   `gorm:"column:rate;not null;check:chk_equipment_log_rate,rate > 0"`
	Status        string    `gorm:"column:status;not null;index"`
	CheckedInAt   string    `gorm:"column:checked_in_at;not null"`
	CheckedOutAt  *string   `gorm:"column:checked_out_at"`
	Cost          *float64  `gorm:"column:cost"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (EquipmentModel) TableName() string { return EquipmentTable }

func toDomainEquipment(m EquipmentModel) domain.EquipmentRecord {
	var renter string
	if m.RenterNumber != nil {
		renter = *m.RenterNumber
	}

	return domain.EquipmentRecord{
		ID:            m.ID,
		EquipmentName: m.EquipmentName,
		RenterNumber:  renter,
		Rate:          m.Rate,
		Status:        domain.EquipmentStatus(m.Status),
		CheckedInAt:   m.CheckedInAt,
		CheckedOutAt:  m.CheckedOutAt,
		Cost:          m.Cost,
		CreatedAt:     m.CreatedAt,
	}
}

func toEquipmentModel(r *domain.EquipmentRecord) EquipmentModel {
	var renter *string
	if r.RenterNumber != "" {
		v := r.RenterNumber
		renter = &v
	}

	return EquipmentModel{
		ID:            r.ID,
		EquipmentName: r.EquipmentName,
		RenterNumber:  renter,
		Rate:          r.Rate,
		Status:        string(r.Status),
		CheckedInAt:   r.CheckedInAt,
		CheckedOutAt:  r.CheckedOutAt,
		Cost:          r.Cost,
		CreatedAt:     r.CreatedAt,
	}
}

// Select returns rows matching every non-zero field of f, oldest first.
func (r *EquipmentRepository) Select(ctx context.Context, f domain.Filter) ([]domain.EquipmentRecord, error) {
	q := r.db.WithContext(ctx).Model(&EquipmentModel{})
	if f.ID != 0 {
		q = q.Where("id = ?", f.ID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []EquipmentModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.EquipmentRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainEquipment(m))
	}
	return out, nil
}

func (r *EquipmentRepository) Insert(ctx context.Context, rec *domain.EquipmentRecord) error {
	m := toEquipmentModel(rec)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapStoreError(err)
	}
	*rec = toDomainEquipment(m)
	return nil
}

// Update applies the check-out patch only while the row is still checked in.
func (r *EquipmentRepository) Update(ctx context.Context, id int64, patch domain.CheckOutPatch) (*domain.EquipmentRecord, error) {
	var out *domain.EquipmentRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&EquipmentModel{}).
			Where("id = ? AND status = ?", id, string(domain.StatusCheckedIn)).
			Updates(map[string]any{
				"status":         string(domain.StatusCheckedOut),
				"checked_out_at": patch.CheckedOutAt,
				"cost":           patch.Cost,
			})
		if res.Error != nil {
			return mapStoreError(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotUpdated
		}

		var m EquipmentModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		rec := toDomainEquipment(m)
		out = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func mapStoreError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23514" || pgErr.Code == "23502") {
		return errors.Join(ErrInvalidRecord, err)
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return errors.Join(ErrInvalidRecord, err)
	}
	return err
}
