package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equiptrack/internal/domain"
	"equiptrack/internal/modules/equipment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type staticLog struct {
	rows []domain.EquipmentRecord
	err  error
}

func (l staticLog) ListAll(context.Context) ([]domain.EquipmentRecord, error) {
	return l.rows, l.err
}

func readSheet(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func sampleLog() []domain.EquipmentRecord {
	out, cost := "2024-01-04", 46.5
	return []domain.EquipmentRecord{
		{ID: 1, EquipmentName: "Saw", RenterNumber: "+1555", Rate: 15.5, Status: domain.StatusCheckedOut,
			CheckedInAt: "2024-01-01", CheckedOutAt: &out, Cost: &cost,
			CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 2, EquipmentName: "Drill", Rate: 10, Status: domain.StatusCheckedIn, CheckedInAt: "2024-01-02"},
	}
}

func TestWriteWorkbook_RowsInOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, domain.ExportColumns, FromEquipmentList(sampleLog())))

	rows := readSheet(t, buf.Bytes())

	require.Len(t, rows, 3)
	assert.Equal(t, domain.ExportColumns, rows[0])
	assert.Equal(t, []string{"1", "Saw", "+1555", "15.5", "checked_out", "2024-01-01", "2024-01-04", "46.5", "2024-01-01 09:00:00"}, rows[1])
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "Drill", rows[2][1])
	assert.Equal(t, "checked_in", rows[2][4])
}

func TestWriteWorkbook_EmptyLogWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, domain.ExportColumns, nil))

	rows := readSheet(t, buf.Bytes())

	require.Len(t, rows, 1)
	assert.Equal(t, domain.ExportColumns, rows[0])
}

func TestWriteWorkbook_ExtraFieldsAppendColumns(t *testing.T) {
	records := []Record{
		{{Name: "a", Value: 1}, {Name: "b", Value: "x"}},
		{{Name: "c", Value: "y"}, {Name: "a", Value: 2}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, []string{"a"}, records))

	rows := readSheet(t, buf.Bytes())

	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"1", "x"}, rows[1])
	assert.Equal(t, []string{"2", "", "y"}, rows[2])
}

func TestService_ExportStoreError(t *testing.T) {
	svc := NewService(staticLog{err: errors.New("offline")})

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), &buf)

	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Zero(t, buf.Len())
}

func TestHandler_Download(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(staticLog{rows: sampleLog()})).RegisterRoutes(r.Group("/api/v1"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/equipment/export", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf(`attachment; filename="%s"`, Filename), rr.Header().Get("Content-Disposition"))
	assert.Len(t, readSheet(t, rr.Body.Bytes()), 3)
}

func TestHandler_DownloadStoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	storeErr := fmt.Errorf("%w: list all: offline", equipment.ErrStore)
	NewHandler(NewService(staticLog{err: storeErr})).RegisterRoutes(r.Group("/api/v1"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/equipment/export", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
