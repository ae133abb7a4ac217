package doctor

import (
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/medicare/internal/model"
)

type seedEntry struct {
	name           string
	specialization string
	experience     int
	times          []string
}

var seedEntries = []seedEntry{
	{"Dr. Priya Sharma", "Dermatologist", 8, []string{"09:00", "10:00", "14:00"}},
	{"Dr. Raj Malhotra", "Cardiologist", 15, []string{"09:30", "11:00", "15:00"}},
	{"Dr. Neha Verma", "Neurologist", 12, []string{"10:00", "13:00", "16:00"}},
	{"Dr. Amit Singh", "Dentist", 9, []string{"09:00", "12:00", "14:00"}},
	{"Dr. Kavita Mehra", "Pediatrician", 7, []string{"10:00", "11:30", "15:30"}},
	{"Dr. Arjun Patel", "Orthopedic Surgeon", 20, []string{"09:00", "13:00", "16:00"}},
	{"Dr. Sneha Reddy", "Gynecologist", 11, []string{"10:00", "14:00", "16:30"}},
	{"Dr. Manish Kumar", "Physiotherapist", 6, []string{"09:00", "11:00", "15:00"}},
	{"Dr. Aditi Joshi", "Ophthalmologist", 10, []string{"09:30", "12:30", "14:30"}},
	{"Dr. Vikram Chauhan", "ENT Specialist", 13, []string{"10:00", "13:30", "16:00"}},
	{"Dr. Riya Das", "Psychiatrist", 9, []string{"11:00", "14:00", "17:00"}},
	{"Dr. Ankit Bansal", "Oncologist", 14, []string{"09:00", "12:00", "15:00"}},
}

// SeedDoctors は初期投入用の医師レコードを新しいIDで生成する。
// 一覧の表示順を保つため、作成日時を1ミリ秒ずつずらす。
func SeedDoctors(now time.Time) []*model.Doctor {
	doctors := make([]*model.Doctor, 0, len(seedEntries))
	for i, e := range seedEntries {
		ts := now.Add(time.Duration(i) * time.Millisecond)
		times := make([]string, len(e.times))
		copy(times, e.times)
		doctors = append(doctors, &model.Doctor{
			ID:             uuid.New().String(),
			Name:           e.name,
			Specialization: e.specialization,
			Experience:     e.experience,
			AvailableTimes: times,
			CreatedAt:      ts,
			UpdatedAt:      ts,
		})
	}
	return doctors
}
