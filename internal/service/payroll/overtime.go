package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/attendance"
	"github.com/lianhui-erp/payroll-engine-go/internal/domain/payroll"
)

var minutesPerHour = decimal.NewFromInt(60)

// OvertimeClassifier buckets one employee's attendance for a period into
// tiered overtime hours. Swappable so a day-type-aware classifier can
// replace the default without touching the calculator.
type OvertimeClassifier interface {
	Classify(records []attendance.AttendanceRecord) payroll.OvertimeBuckets
}

// DailySplitClassifier applies the carried-over policy: the first two
// hours of each work day's overtime are tier-1, the remainder tier-2.
// The holiday bucket is never populated because attendance records carry
// no day-type marker; callers needing holiday premiums must classify
// those separately.
type DailySplitClassifier struct {
	tier1DailyCap decimal.Decimal
}

func NewDailySplitClassifier() DailySplitClassifier {
	return DailySplitClassifier{tier1DailyCap: decimal.NewFromInt(2)}
}

func (c DailySplitClassifier) Classify(records []attendance.AttendanceRecord) payroll.OvertimeBuckets {
	minutesByDay := make(map[string]int)
	for _, r := range records {
		minutesByDay[r.Date.Format("2006-01-02")] += r.OvertimeMinutes
	}

	buckets := payroll.OvertimeBuckets{
		Tier1Hours:   decimal.Zero,
		Tier2Hours:   decimal.Zero,
		HolidayHours: decimal.Zero,
	}
	for _, minutes := range minutesByDay {
		if minutes <= 0 {
			continue
		}
		hours := decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
		tier1 := decimal.Min(hours, c.tier1DailyCap)
		buckets.Tier1Hours = buckets.Tier1Hours.Add(tier1)
		buckets.Tier2Hours = buckets.Tier2Hours.Add(hours.Sub(tier1))
	}

	return buckets
}

// Aggregator converts raw attendance records into overtime buckets using
// the configured classification strategy.
type Aggregator struct {
	classifier OvertimeClassifier
}

func NewAggregator(classifier OvertimeClassifier) *Aggregator {
	if classifier == nil {
		classifier = NewDailySplitClassifier()
	}
	return &Aggregator{classifier: classifier}
}

func (a *Aggregator) Aggregate(records []attendance.AttendanceRecord) payroll.OvertimeBuckets {
	return a.classifier.Classify(records)
}
