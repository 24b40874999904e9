// Package numerator provides document auto-numbering
// (purchase and invoice numbers like "INV-2024-00001").
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"oilbook/internal/core/id"
)

// Querier is the minimal database surface the numerator needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuerierFunc resolves the querier for the current context. When the
// context carries an open transaction the allocation joins it, so the
// number is rolled back together with the document.
type QuerierFunc func(ctx context.Context) Querier

// Service allocates sequential document numbers per office via
// UPSERT ... RETURNING on doc_sequences. Sequential without gaps, as
// accounting documents require.
type Service struct {
	querier QuerierFunc
}

// New creates a numerator backed by the given querier resolver.
func New(querier QuerierFunc) *Service {
	return &Service{querier: querier}
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g. "INV", "PO")
	Prefix string

	// IncludeYear adds the year to the formatted number
	IncludeYear bool

	// PadWidth is the minimum digit width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month" or "never"
	ResetPeriod string
}

// DefaultConfig returns the standard yearly-reset configuration.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// Next generates the next document number for the office.
// Pattern: PREFIX-YEAR-XXXXX (e.g. INV-2024-00001).
func (s *Service) Next(ctx context.Context, officeID id.ID, cfg Config, period time.Time) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	key := buildKey(cfg, period)

	var num int64
	err := s.querier(ctx).QueryRow(ctx, `
        INSERT INTO doc_sequences (office_id, key, current_val)
        VALUES ($1, $2, 1)
        ON CONFLICT (office_id, key) DO UPDATE SET current_val = doc_sequences.current_val + 1
        RETURNING current_val
	`, officeID, key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number for %s: %w", key, err)
	}

	return formatNumber(cfg, period, num), nil
}

// SetNext overrides the counter (used when importing historical data).
func (s *Service) SetNext(ctx context.Context, officeID id.ID, cfg Config, period time.Time, value int64) error {
	key := buildKey(cfg, period)

	var result int64
	err := s.querier(ctx).QueryRow(ctx, `
        INSERT INTO doc_sequences (office_id, key, current_val)
        VALUES ($1, $2, $3)
        ON CONFLICT (office_id, key) DO UPDATE SET current_val = $3
        RETURNING current_val
	`, officeID, key, value).Scan(&result)
	return err
}

func buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

func formatNumber(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts the sequence part of a formatted number, the
// digits after the last dash. Returns -1 when there is none.
func ParseNumber(formatted string) int64 {
	i := strings.LastIndexByte(formatted, '-')
	if i < 0 || i == len(formatted)-1 {
		return -1
	}
	num, err := strconv.ParseInt(formatted[i+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
