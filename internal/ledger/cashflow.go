package ledger

import (
	"context"
	"fmt"
	"time"

	"kadai-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

const maxCashFlowPoints = 366

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Daily, Weekly, Monthly:
		return p, nil
	case "":
		return Daily, nil
	default:
		return "", fmt.Errorf("%w: period must be daily, weekly or monthly", ErrInvalidInput)
	}
}

func (p Period) defaultCount() int {
	switch p {
	case Weekly:
		return 8
	case Monthly:
		return 12
	default:
		return 7
	}
}

// start returns the beginning of the bucket holding t. Weeks start on Monday.
func (p Period) start(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch p {
	case Weekly:
		return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}

func (p Period) shift(t time.Time, n int) time.Time {
	switch p {
	case Weekly:
		return t.AddDate(0, 0, 7*n)
	case Monthly:
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}

type CashFlowQuery struct {
	Period Period
	Count  int // number of buckets ending with the current one; 0 means period default
	Now    time.Time
	Zone   *time.Location // zone the buckets are cut in; nil means UTC
}

type CashFlowPoint struct {
	Start     time.Time
	In        decimal.Decimal // sales
	Out       decimal.Decimal // purchases
	Net       decimal.Decimal
	Sales     int
	Purchases int
}

type CashFlow struct {
	Period Period
	From   time.Time // inclusive
	To     time.Time // exclusive
	Points []CashFlowPoint
	In     decimal.Decimal
	Out    decimal.Decimal
	Net    decimal.Decimal
}

// CashFlow sums sales (cash in) and purchases (cash out) per period for
// the last q.Count periods, oldest first. Empty periods are included.
func (s *Store) CashFlow(ctx context.Context, q CashFlowQuery) (CashFlow, error) {
	if q.Period == "" {
		q.Period = Daily
	}
	if q.Count <= 0 {
		q.Count = q.Period.defaultCount()
	}
	if q.Count > maxCashFlowPoints {
		return CashFlow{}, fmt.Errorf("%w: count must be at most %d", ErrInvalidInput, maxCashFlowPoints)
	}
	zone := q.Zone
	if zone == nil {
		zone = time.UTC
	}
	now := q.Now
	if now.IsZero() {
		now = s.now()
	}

	current := q.Period.start(now.In(zone))
	flow := CashFlow{
		Period: q.Period,
		From:   q.Period.shift(current, -(q.Count - 1)),
		To:     q.Period.shift(current, 1),
		Points: make([]CashFlowPoint, q.Count),
		In:     decimal.Zero,
		Out:    decimal.Zero,
	}

	index := make(map[int64]int, q.Count)
	for i := range flow.Points {
		start := q.Period.shift(flow.From, i)
		flow.Points[i] = CashFlowPoint{Start: start, In: decimal.Zero, Out: decimal.Zero}
		index[start.Unix()] = i
	}

	db := s.db.WithContext(ctx)

	var sales []models.Sale
	if err := inWindow(db, flow.From, flow.To).Find(&sales).Error; err != nil {
		return CashFlow{}, fmt.Errorf("load sales: %w", err)
	}
	for _, sa := range sales {
		if i, ok := index[q.Period.start(sa.Timestamp.In(zone)).Unix()]; ok {
			flow.Points[i].In = flow.Points[i].In.Add(sa.Amount)
			flow.Points[i].Sales++
		}
	}

	var purchases []models.Purchase
	if err := inWindow(db, flow.From, flow.To).Find(&purchases).Error; err != nil {
		return CashFlow{}, fmt.Errorf("load purchases: %w", err)
	}
	for _, pu := range purchases {
		if i, ok := index[q.Period.start(pu.Timestamp.In(zone)).Unix()]; ok {
			flow.Points[i].Out = flow.Points[i].Out.Add(pu.Amount)
			flow.Points[i].Purchases++
		}
	}

	for i := range flow.Points {
		pt := &flow.Points[i]
		pt.Net = pt.In.Sub(pt.Out)
		flow.In = flow.In.Add(pt.In)
		flow.Out = flow.Out.Add(pt.Out)
	}
	flow.Net = flow.In.Sub(flow.Out)
	return flow, nil
}

// inWindow limits ledger rows to [from, to). Timestamps are stored in UTC.
func inWindow(db *gorm.DB, from, to time.Time) *gorm.DB {
	col := clause.Column{Name: "timestamp"}
	return db.
		Select("id", "timestamp", "amount").
		Where(clause.Gte{Column: col, Value: from.UTC()}).
		Where(clause.Lt{Column: col, Value: to.UTC()})
}
