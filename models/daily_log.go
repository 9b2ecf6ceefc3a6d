package models

import "time"

// DailyLog is one day's health entry. Date is truncated to midnight before
// storage, so the unique index makes the calendar day the real key.
type DailyLog struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	Date       time.Time `json:"date" gorm:"uniqueIndex;not null"`
	Calories   float64   `json:"calories"`
	WaterMl    float64   `json:"waterMl"`
	SleepHours float64   `json:"sleepHours"`
	Carbs      float64   `json:"carbs"`
	Protein    float64   `json:"protein"`
	Fats       float64   `json:"fats"`
	Weight     *float64  `json:"weight"`
	WeightUnit *string   `json:"weightUnit"` // "kg" or "lb"
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
