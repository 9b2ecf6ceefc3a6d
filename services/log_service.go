package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dtan16/health-tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const listLimit = 30

var (
	ErrDateRequired = errors.New("date is required")
	ErrInvalidDate  = errors.New("invalid date")
	ErrLogExists    = errors.New("a log for this date already exists")
)

// LogInput is the decoded POST /api/logs body. Only Date is validated;
// numeric fields tolerate whatever the client sends.
type LogInput struct {
	Date       string        `json:"date"`
	Calories   LooseFloat    `json:"calories"`
	WaterMl    LooseFloat    `json:"waterMl"`
	SleepHours LooseFloat    `json:"sleepHours"`
	Carbs      LooseFloat    `json:"carbs"`
	Protein    LooseFloat    `json:"protein"`
	Fats       LooseFloat    `json:"fats"`
	Weight     OptionalFloat `json:"weight"`
	WeightUnit LooseString   `json:"weightUnit"`
}

type LogService struct {
	db *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// dayStart parses raw and truncates it to midnight of its calendar day, in
// the location the parser produced.
func dayStart(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ListLogs returns the 30 most recent entries, newest date first.
func (s *LogService) ListLogs() ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0, listLimit)
	if err := s.db.Order("date DESC").Limit(listLimit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	return logs, nil
}

// UpsertLog creates or fully replaces the entry for the input's calendar day.
// The write is a single INSERT ... ON CONFLICT (date) DO UPDATE, so the
// unique index arbitrates concurrent submissions for the same day.
func (s *LogService) UpsertLog(in LogInput) (*models.DailyLog, error) {
	if in.Date == "" {
		return nil, ErrDateRequired
	}
	day, err := dayStart(in.Date)
	if err != nil {
		return nil, err
	}

	entry := models.DailyLog{
		Date:       day,
		Calories:   float64(in.Calories),
		WaterMl:    float64(in.WaterMl),
		SleepHours: float64(in.SleepHours),
		Carbs:      float64(in.Carbs),
		Protein:    float64(in.Protein),
		Fats:       float64(in.Fats),
		Weight:     in.Weight.Ptr(),
		WeightUnit: normalizeUnit(string(in.WeightUnit)),
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"calories", "water_ml", "sleep_hours", "carbs", "protein", "fats",
			"weight", "weight_unit", "updated_at",
		}),
	}).Create(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLogExists
		}
		return nil, fmt.Errorf("saving log: %w", err)
	}

	// Dialects without RETURNING leave the ID zero on the update path.
	if entry.ID == 0 {
		if err := s.db.Where("date = ?", day).First(&entry).Error; err != nil {
			return nil, fmt.Errorf("reloading log: %w", err)
		}
	}
	return &entry, nil
}

func normalizeUnit(u string) *string {
	if u == "kg" || u == "lb" {
		return &u
	}
	return nil
}
