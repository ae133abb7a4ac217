package appointment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hitoshi/medicare/internal/model"
)

// exportDoctor はミラーファイルに書き出す医師情報。
type exportDoctor struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Experience     int       `json:"experience"`
	AvailableTimes []string  `json:"availableTimes"`
	Image          string    `json:"image"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// exportRecord はミラーファイルに書き出す予約1件分。
type exportRecord struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Doctor     exportDoctor `json:"doctor"`
	Department string       `json:"department"`
	Date       string       `json:"date"`
	Time       string       `json:"time"`
	Message    string       `json:"message"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// FileExporter は予約一覧をJSONファイルにミラーする。
// 一時ファイルへ書き込んでからリネームするため、読み手が書きかけのファイルを見ることはない。
type FileExporter struct {
	path string
	mu   sync.Mutex
}

// NewFileExporter はFileExporterを生成する。
func NewFileExporter(path string) *FileExporter {
	return &FileExporter{path: path}
}

// Path は書き出し先のパスを返す。
func (e *FileExporter) Path() string {
	return e.path
}

// Write は予約一覧を整形済みJSONとして書き出す。
func (e *FileExporter) Write(appointments []model.AppointmentWithDoctor) error {
	records := make([]exportRecord, 0, len(appointments))
	for _, a := range appointments {
		times := a.Doctor.AvailableTimes
		if times == nil {
			times = []string{}
		}
		records = append(records, exportRecord{
			ID:    a.ID,
			Name:  a.Name,
			Email: a.Email,
			Phone: a.Phone,
			Doctor: exportDoctor{
				ID:             a.Doctor.ID,
				Name:           a.Doctor.Name,
				Specialization: a.Doctor.Specialization,
				Experience:     a.Doctor.Experience,
				AvailableTimes: times,
				Image:          a.Doctor.Image,
				CreatedAt:      a.Doctor.CreatedAt,
				UpdatedAt:      a.Doctor.UpdatedAt,
			},
			Department: a.Department,
			Date:       a.Date.Format(model.DateLayout),
			Time:       a.Time,
			Message:    a.Message,
			CreatedAt:  a.CreatedAt,
			UpdatedAt:  a.UpdatedAt,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode appointments: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(e.path), filepath.Base(e.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), e.path); err != nil {
		return fmt.Errorf("failed to replace export file: %w", err)
	}
	return nil
}
