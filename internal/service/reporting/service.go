// Package reporting aggregates contracts into monthly buckets and pushes
// the result to the configured export targets.
package reporting

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"hallbook/internal/domain/models"
	"hallbook/internal/repository/sheets"
	"hallbook/pkg/clients/sms"
)

// monthNames are the Solar Hijri month labels used on event dates.
var monthNames = [...]string{
	"فروردین", "اردیبهشت", "خرداد",
	"تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر",
	"دی", "بهمن", "اسفند",
}

// ContractLister supplies the contracts to aggregate.
type ContractLister interface {
	All(ctx context.Context) ([]models.Contract, error)
}

// Service builds monthly reports and ships them out.
type Service struct {
	contracts ContractLister
	exporter  sheets.Exporter // nil when sheet export is not configured
	smsClient sms.Client      // nil when SMS is not configured
	managerTo string
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. Exporter and SMS
// client are optional.
func NewService(contracts ContractLister, exporter sheets.Exporter, smsClient sms.Client, managerTo string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		contracts: contracts,
		exporter:  exporter,
		smsClient: smsClient,
		managerTo: managerTo,
		logger:    logger,
	}
}

// AggregateByMonth groups contracts by (year, month) parsed from the event
// date string and sums the counts and both grand totals, ascending
// chronologically. Contracts with unparseable dates are skipped with a
// warning; they never fail the aggregation.
func AggregateByMonth(contracts []models.Contract, logger *zap.Logger) []models.MonthlyReport {
	if logger == nil {
		logger = zap.NewNop()
	}

	buckets := make(map[string]*models.MonthlyReport)
	for _, c := range contracts {
		year, month, ok := parseYearMonth(c.EventDate)
		if !ok {
			logger.Warn("skipping contract with unparseable event date",
				zap.String("id", c.ID.Hex()),
				zap.String("event_date", c.EventDate))
			continue
		}

		key := fmt.Sprintf("%d-%d", year, month)
		b, exists := buckets[key]
		if !exists {
			b = &models.MonthlyReport{
				Year:      year,
				Month:     month,
				MonthKey:  key,
				MonthName: fmt.Sprintf("%s %d", monthNames[month-1], year),
			}
			buckets[key] = b
		}
		b.ContractCount++
		b.CustomerTotal += c.CustomerCosts.TotalCost
		b.InternalTotal += c.InternalCosts.TotalCost
	}

	report := make([]models.MonthlyReport, 0, len(buckets))
	for _, b := range buckets {
		report = append(report, *b)
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].Year != report[j].Year {
			return report[i].Year < report[j].Year
		}
		return report[i].Month < report[j].Month
	})
	return report
}

// MonthlyReport loads all contracts and aggregates them.
func (s *Service) MonthlyReport(ctx context.Context) ([]models.MonthlyReport, error) {
	contracts, err := s.contracts.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load contracts: %w", err)
	}
	return AggregateByMonth(contracts, s.logger), nil
}

// ExportAndNotify rebuilds the monthly report, appends it to the sheet and
// texts a short summary to the manager. Targets that are not configured
// are skipped.
func (s *Service) ExportAndNotify(ctx context.Context) error {
	report, err := s.MonthlyReport(ctx)
	if err != nil {
		return err
	}

	if s.exporter != nil {
		if err := s.exporter.AppendReport(ctx, report); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		s.logger.Info("monthly report exported", zap.Int("months", len(report)))
	}

	if s.smsClient != nil && s.managerTo != "" {
		if err := s.smsClient.SendText(ctx, s.managerTo, summarize(report)); err != nil {
			return fmt.Errorf("notify manager: %w", err)
		}
		s.logger.Info("report summary sent", zap.String("to", s.managerTo))
	}

	return nil
}

// summarize renders the last few monthly buckets as a short SMS body.
func summarize(report []models.MonthlyReport) string {
	if len(report) == 0 {
		return "Monthly report: no contracts recorded yet."
	}
	if len(report) > 3 {
		report = report[len(report)-3:]
	}
	var b strings.Builder
	b.WriteString("Monthly report:")
	for _, r := range report {
		fmt.Fprintf(&b, " [%s: %d contracts, customer %.0f, internal %.0f]",
			r.MonthName, r.ContractCount, r.CustomerTotal, r.InternalTotal)
	}
	return b.String()
}

// parseYearMonth splits a calendar-agnostic "YYYY/MM/..." date string.
func parseYearMonth(date string) (year, month int, ok bool) {
	parts := strings.Split(date, "/")
	if len(parts) < 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || year <= 0 {
		return 0, 0, false
	}
	month, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
