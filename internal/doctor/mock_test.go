package doctor

import (
	"context"
	"regexp"

	"github.com/hitoshi/medicare/internal/model"
)

// memoryDoctorRepo はDoctorRepositoryのインメモリ実装。
// FindByNamePatternはPostgreSQLの~*と同じく大文字小文字を無視して評価する。
type memoryDoctorRepo struct {
	doctors []*model.Doctor

	findByIDCalls   int
	findByNameCalls int
	lastPattern     string
	createManyCalls int
	err             error
}

func (m *memoryDoctorRepo) FindByID(_ context.Context, id string) (*model.Doctor, error) {
	m.findByIDCalls++
	if m.err != nil {
		return nil, m.err
	}
	for _, d := range m.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memoryDoctorRepo) FindByNamePattern(_ context.Context, pattern string) (*model.Doctor, error) {
	m.findByNameCalls++
	m.lastPattern = pattern
	if m.err != nil {
		return nil, m.err
	}
	re := regexp.MustCompile("(?i)" + pattern)
	for _, d := range m.doctors {
		if re.MatchString(d.Name) {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memoryDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.doctors, nil
}

func (m *memoryDoctorRepo) Count(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.doctors), nil
}

func (m *memoryDoctorRepo) CreateMany(_ context.Context, doctors []*model.Doctor) error {
	m.createManyCalls++
	if m.err != nil {
		return m.err
	}
	m.doctors = append(m.doctors, doctors...)
	return nil
}
