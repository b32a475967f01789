package maintenance

import (
	"context"
	"strconv"
	"strings"

	"equiptrack/internal/domain"
)

// AvailableLister returns the records currently checked in.
type AvailableLister interface {
	ListAvailable(ctx context.Context) ([]domain.EquipmentRecord, error)
}

type Service struct {
	equipment AvailableLister
}

func NewService(equipment AvailableLister) *Service {
	return &Service{equipment: equipment}
}

// Compose resolves id among checked-in records and renders the message.
func (s *Service) Compose(ctx context.Context, id string, issue string) (string, error) {
	if strings.TrimSpace(issue) == "" {
		return "", ErrEmptyIssue
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return "", ErrInvalidSelection
	}

	rows, err := s.equipment.ListAvailable(ctx)
	if err != nil {
		return "", err
	}
	for _, r := range rows {
		if r.ID == parsed {
			return Generate(r, issue)
		}
	}
	return "", ErrInvalidSelection
}
