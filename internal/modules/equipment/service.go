package equipment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"equiptrack/internal/domain"
	"equiptrack/internal/metrics"
	"equiptrack/internal/modules/billing"
	"equiptrack/internal/repository"
)

type Service struct {
	store     RecordStore
	publisher AvailabilityPublisher
	now       func() time.Time
	loc       *time.Location
}

type Option func(*Service)

// WithClock replaces time.Now, used to pin "today" in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone calendar dates are taken in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithPublisher receives the available list after every successful mutation.
func WithPublisher(p AvailabilityPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(store RecordStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) ListAvailable(ctx context.Context) ([]domain.EquipmentRecord, error) {
	rows, err := s.store.Select(ctx, domain.Filter{Status: domain.StatusCheckedIn})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("select_available").Inc()
		return nil, fmt.Errorf("%w: list available: %v", ErrStore, err)
	}
	return rows, nil
}

// ListAll returns the whole log, including checked-out rentals.
func (s *Service) ListAll(ctx context.Context) ([]domain.EquipmentRecord, error) {
	rows, err := s.store.Select(ctx, domain.Filter{})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("select_all").Inc()
		return nil, fmt.Errorf("%w: list all: %v", ErrStore, err)
	}
	return rows, nil
}

func (s *Service) CheckIn(ctx context.Context, req CheckInRequest) (*domain.EquipmentRecord, error) {
	name := strings.TrimSpace(req.EquipmentName)
	if name == "" {
		return nil, ErrEmptyName
	}
	rate, err := ParseRate(string(req.Rate))
	if err != nil {
		return nil, err
	}

	rec := &domain.EquipmentRecord{
		EquipmentName: name,
		RenterNumber:  strings.TrimSpace(req.RenterNumber),
		Rate:          rate,
		Status:        domain.StatusCheckedIn,
		CheckedInAt:   s.today(),
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		metrics.StoreErrors.WithLabelValues("insert").Inc()
		log.Printf("equipment_check_in_failed name=%q error=%v", name, err)
		if errors.Is(err, repository.ErrInvalidRecord) {
			return nil, ErrInvalidRate
		}
		return nil, fmt.Errorf("%w: check in: %v", ErrStore, err)
	}

	metrics.CheckIns.Inc()
	log.Printf("equipment_checked_in id=%d name=%q rate=%.2f", rec.ID, rec.EquipmentName, rec.Rate)
	s.refresh(ctx)
	return rec, nil
}

func (s *Service) CheckOut(ctx context.Context, rawID string) (*CheckOutResult, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.Select(ctx, domain.Filter{ID: id, Limit: 1})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("select_one").Inc()
		log.Printf("equipment_fetch_failed id=%d error=%v", id, err)
		return nil, fmt.Errorf("%w: fetch %d: %v", ErrStore, id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	rec := rows[0]
	if !rec.IsCheckedIn() {
		return nil, ErrAlreadyCheckedOut
	}

	checkedIn, err := domain.ParseCalendarDate(rec.CheckedInAt, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: record %d has unreadable check-in date %q", ErrStore, id, rec.CheckedInAt)
	}
	now := s.now().In(s.loc)
	days, cost := billing.Calculate(checkedIn, now, rec.Rate)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		log.Printf("equipment_cost_overflow id=%d rate=%g days=%d", id, rec.Rate, days)
		return nil, ErrInvalidRate
	}

	updated, err := s.store.Update(ctx, id, domain.CheckOutPatch{
		CheckedOutAt: domain.CalendarDate(now, s.loc),
		Cost:         cost,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotUpdated) {
			return nil, ErrAlreadyCheckedOut
		}
		metrics.StoreErrors.WithLabelValues("update").Inc()
		log.Printf("equipment_check_out_failed id=%d error=%v", id, err)
		return nil, fmt.Errorf("%w: check out %d: %v", ErrStore, id, err)
	}

	metrics.CheckOuts.Inc()
	metrics.BilledRevenue.Add(cost)
	metrics.BilledDays.Observe(float64(days))
	log.Printf("equipment_checked_out id=%d days=%d cost=%.2f", id, days, cost)
	s.refresh(ctx)

	return &CheckOutResult{Record: *updated, DaysUsed: days, Cost: cost}, nil
}

func (s *Service) today() string {
	return domain.CalendarDate(s.now(), s.loc)
}

func (s *Service) refresh(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	rows, err := s.ListAvailable(ctx)
	if err != nil {
		log.Printf("availability_refresh_failed error=%v", err)
		return
	}
	s.publisher.PublishAvailable(rows)
}

// MaxRate bounds the daily rate so cost stays finite for any rental length.
const MaxRate = 1e9

// ParseRate accepts a positive decimal up to MaxRate.
func ParseRate(raw string) (float64, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 || rate > MaxRate {
		return 0, ErrInvalidRate
	}
	return rate, nil
}

func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrNoSelection
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
