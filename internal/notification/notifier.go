package notification

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"supermanager/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ProductSource is the slice of the catalogue the notifier needs. The
// threshold comparison happens here, not in the catalogue.
type ProductSource interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	GetStats(ctx context.Context) (*model.Stats, error)
}

// jobTimeout bounds each scheduled run.
const jobTimeout = 30 * time.Second

var reminderMessages = []string{
	"Have you checked the inventory today?",
	"Remember to update your stock levels!",
	"How about scanning a few products?",
	"Take a look at your statistics!",
	"SuperManager is waiting for you!",
}

// Notifier watches the catalogue and emits alerts on a schedule. Time
// comparisons against products happen at check time; nothing is cached
// between runs.
type Notifier struct {
	products ProductSource
	sender   Sender
	logger   zerolog.Logger

	mu       sync.RWMutex
	settings Settings

	cron *cron.Cron
}

// NewNotifier creates a notifier with the given initial settings.
func NewNotifier(products ProductSource, sender Sender, settings Settings, logger zerolog.Logger) *Notifier {
	return &Notifier{
		products: products,
		sender:   sender,
		settings: settings,
		logger:   logger.With().Str("component", "notifier").Logger(),
	}
}

// Start installs the cron entries and begins running them.
func (n *Notifier) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.scheduleLocked(); err != nil {
		return err
	}
	n.cron.Start()
	n.logger.Info().Msg("notification scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (n *Notifier) Stop() {
	n.mu.Lock()
	c := n.cron
	n.cron = nil
	n.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
		n.logger.Info().Msg("notification scheduler stopped")
	}
}

// Settings returns a copy of the current settings.
func (n *Notifier) Settings() Settings {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.settings
}

// UpdateSettings replaces the settings and rebuilds the schedule.
func (n *Notifier) UpdateSettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return model.WrapDomainError(model.ErrCodeValidation, "invalid notification settings", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.settings = settings
	wasRunning := n.cron != nil
	if wasRunning {
		<-n.cron.Stop().Done()
		n.cron = nil
		if err := n.scheduleLocked(); err != nil {
			return err
		}
		n.cron.Start()
	}

	n.logger.Info().
		Int("low_stock_threshold", settings.LowStockThreshold).
		Bool("low_stock_enabled", settings.LowStockEnabled).
		Bool("daily_report_enabled", settings.DailyReportEnabled).
		Msg("notification settings updated")
	return nil
}

// scheduleLocked builds a fresh cron from the current settings. The
// caller must hold the write lock.
func (n *Notifier) scheduleLocked() error {
	c := cron.New()
	s := n.settings

	if s.LowStockEnabled {
		spec := fmt.Sprintf("@every %dh", s.StockCheckHours)
		if _, err := c.AddFunc(spec, n.runJob("stock check", n.CheckStock)); err != nil {
			return fmt.Errorf("failed to schedule stock check: %w", err)
		}
	}

	if s.DailyReportEnabled {
		spec := fmt.Sprintf("%d %d * * *", s.DailyReportMinute, s.DailyReportHour)
		if _, err := c.AddFunc(spec, n.runJob("daily report", n.DailyReport)); err != nil {
			return fmt.Errorf("failed to schedule daily report: %w", err)
		}
	}

	if s.WeeklyReportEnabled {
		spec := fmt.Sprintf("0 10 * * %d", s.WeeklyReportDay)
		if _, err := c.AddFunc(spec, n.runJob("weekly report", n.WeeklyReport)); err != nil {
			return fmt.Errorf("failed to schedule weekly report: %w", err)
		}
	}

	if s.ReminderEnabled {
		if _, err := c.AddFunc("0 17 * * *", n.runJob("reminder", n.Reminder)); err != nil {
			return fmt.Errorf("failed to schedule reminder: %w", err)
		}
	}

	n.cron = c
	return nil
}

// runJob wraps a check into a cron-compatible func with a timeout.
func (n *Notifier) runJob(name string, job func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := job(ctx); err != nil {
			n.logger.Error().Err(err).Str("job", name).Msg("scheduled job failed")
		}
	}
}

// CheckStock emits one alert for products at or below the threshold
// (but still in stock) and one for products that are fully out of
// stock. Nothing is emitted when all levels are healthy.
func (n *Notifier) CheckStock(ctx context.Context) error {
	settings := n.Settings()
	if !settings.LowStockEnabled {
		return nil
	}

	products, err := n.products.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalogue: %w", err)
	}

	var low, out []model.Product
	for _, p := range products {
		switch {
		case p.Quantity == 0:
			out = append(out, p)
		case p.Quantity <= settings.LowStockThreshold:
			low = append(low, p)
		}
	}

	if len(low) > 0 {
		alert := Alert{
			Type:      AlertLowStock,
			Title:     "Low stock warning",
			Body:      fmt.Sprintf("%d products are running low. Check the inventory.", len(low)),
			CreatedAt: time.Now(),
		}
		if err := n.sender.Send(ctx, alert); err != nil {
			return fmt.Errorf("failed to send low stock alert: %w", err)
		}
	}

	if len(out) > 0 {
		alert := Alert{
			Type:      AlertOutOfStock,
			Title:     "Products out of stock",
			Body:      fmt.Sprintf("%d products are completely out of stock.", len(out)),
			CreatedAt: time.Now(),
		}
		if err := n.sender.Send(ctx, alert); err != nil {
			return fmt.Errorf("failed to send out of stock alert: %w", err)
		}
	}

	n.logger.Debug().Int("low", len(low)).Int("out", len(out)).Msg("stock check completed")
	return nil
}

// DailyReport summarises the catalogue: product count, total value and
// how many products sit at or below the threshold.
func (n *Notifier) DailyReport(ctx context.Context) error {
	settings := n.Settings()
	if !settings.DailyReportEnabled {
		return nil
	}

	body, err := n.reportBody(ctx, settings)
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, Alert{
		Type:      AlertDailyReport,
		Title:     "Daily report",
		Body:      body,
		CreatedAt: time.Now(),
	})
}

// WeeklyReport emits the same summary under the weekly heading.
func (n *Notifier) WeeklyReport(ctx context.Context) error {
	settings := n.Settings()
	if !settings.WeeklyReportEnabled {
		return nil
	}

	body, err := n.reportBody(ctx, settings)
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, Alert{
		Type:      AlertWeeklyReport,
		Title:     "Weekly report",
		Body:      body,
		CreatedAt: time.Now(),
	})
}

// Reminder nudges the user to open the app.
func (n *Notifier) Reminder(ctx context.Context) error {
	if !n.Settings().ReminderEnabled {
		return nil
	}

	return n.sender.Send(ctx, Alert{
		Type:      AlertReminder,
		Title:     "SuperManager reminder",
		Body:      reminderMessages[rand.Intn(len(reminderMessages))],
		CreatedAt: time.Now(),
	})
}

func (n *Notifier) reportBody(ctx context.Context, settings Settings) (string, error) {
	stats, err := n.products.GetStats(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read stats: %w", err)
	}

	products, err := n.products.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read catalogue: %w", err)
	}

	lowCount := 0
	for _, p := range products {
		if p.Quantity <= settings.LowStockThreshold {
			lowCount++
		}
	}

	return fmt.Sprintf("%d products, %.2f total value, %d low on stock",
		stats.TotalProducts, stats.TotalValue, lowCount), nil
}
