package notification

import (
	"fmt"
	"time"
)

// AlertType classifies an alert.
type AlertType string

const (
	AlertLowStock     AlertType = "LOW_STOCK"
	AlertOutOfStock   AlertType = "OUT_OF_STOCK"
	AlertDailyReport  AlertType = "DAILY_REPORT"
	AlertWeeklyReport AlertType = "WEEKLY_REPORT"
	AlertReminder     AlertType = "REMINDER"
)

// Alert is a single notification produced by the checker. Delivery to a
// device is out of scope; alerts go to whatever Sender is plugged in.
type Alert struct {
	Type      AlertType `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings controls which alerts are produced and when. The catalogue
// itself knows nothing about thresholds; the comparison lives here.
type Settings struct {
	LowStockEnabled     bool `json:"lowStockEnabled"`
	LowStockThreshold   int  `json:"lowStockThreshold"`
	StockCheckHours     int  `json:"stockCheckHours"`
	DailyReportEnabled  bool `json:"dailyReportEnabled"`
	DailyReportHour     int  `json:"dailyReportHour"`
	DailyReportMinute   int  `json:"dailyReportMinute"`
	WeeklyReportEnabled bool `json:"weeklyReportEnabled"`
	WeeklyReportDay     int  `json:"weeklyReportDay"` // 0 = Sunday
	ReminderEnabled     bool `json:"reminderEnabled"`
}

// Validate checks the settings ranges.
func (s *Settings) Validate() error {
	if s.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must not be negative")
	}
	if s.StockCheckHours < 1 {
		return fmt.Errorf("stock check interval must be at least 1 hour")
	}
	if s.DailyReportHour < 0 || s.DailyReportHour > 23 {
		return fmt.Errorf("invalid daily report hour: %d", s.DailyReportHour)
	}
	if s.DailyReportMinute < 0 || s.DailyReportMinute > 59 {
		return fmt.Errorf("invalid daily report minute: %d", s.DailyReportMinute)
	}
	if s.WeeklyReportDay < 0 || s.WeeklyReportDay > 6 {
		return fmt.Errorf("invalid weekly report day: %d", s.WeeklyReportDay)
	}
	return nil
}
