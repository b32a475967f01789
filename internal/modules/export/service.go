package export

import (
	"context"
	"io"
	"log"

	"equiptrack/internal/domain"
)

// LogLister returns the whole equipment log.
type LogLister interface {
	ListAll(ctx context.Context) ([]domain.EquipmentRecord, error)
}

type Service struct {
	equipment LogLister
}

func NewService(equipment LogLister) *Service {
	return &Service{equipment: equipment}
}

// Export writes the full log as a workbook and returns the number of rows.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.equipment.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := WriteWorkbook(w, domain.ExportColumns, FromEquipmentList(rows)); err != nil {
		log.Printf("export_failed rows=%d error=%v", len(rows), err)
		return 0, err
	}
	log.Printf("export_written rows=%d", len(rows))
	return len(rows), nil
}
