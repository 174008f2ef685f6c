package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/attendance"
)

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func TestDailySplitClassifier_SplitsAtTwoHoursPerDay(t *testing.T) {
	classifier := NewDailySplitClassifier()

	records := []attendance.AttendanceRecord{
		{EmployeeID: "e1", Date: day(2026, time.March, 2), OvertimeMinutes: 180}, // 3h: 2 + 1
	}

	buckets := classifier.Classify(records)

	assert.True(t, buckets.Tier1Hours.Equal(decimal.NewFromInt(2)), "got %s", buckets.Tier1Hours)
	assert.True(t, buckets.Tier2Hours.Equal(decimal.NewFromInt(1)), "got %s", buckets.Tier2Hours)
	assert.True(t, buckets.HolidayHours.IsZero())
}

func TestDailySplitClassifier_UnderCapStaysTier1(t *testing.T) {
	classifier := NewDailySplitClassifier()

	records := []attendance.AttendanceRecord{
		{EmployeeID: "e1", Date: day(2026, time.March, 2), OvertimeMinutes: 90}, // 1.5h
	}

	buckets := classifier.Classify(records)

	assert.True(t, buckets.Tier1Hours.Equal(decimal.NewFromFloat(1.5)), "got %s", buckets.Tier1Hours)
	assert.True(t, buckets.Tier2Hours.IsZero())
}

func TestDailySplitClassifier_CapAppliesPerDayNotPerPeriod(t *testing.T) {
	classifier := NewDailySplitClassifier()

	// 3h on each of three days: tier1 accumulates 2h per day.
	records := []attendance.AttendanceRecord{
		{EmployeeID: "e1", Date: day(2026, time.March, 2), OvertimeMinutes: 180},
		{EmployeeID: "e1", Date: day(2026, time.March, 3), OvertimeMinutes: 180},
		{EmployeeID: "e1", Date: day(2026, time.March, 4), OvertimeMinutes: 180},
	}

	buckets := classifier.Classify(records)

	assert.True(t, buckets.Tier1Hours.Equal(decimal.NewFromInt(6)), "got %s", buckets.Tier1Hours)
	assert.True(t, buckets.Tier2Hours.Equal(decimal.NewFromInt(3)), "got %s", buckets.Tier2Hours)
}

func TestDailySplitClassifier_MergesMultipleRecordsSameDay(t *testing.T) {
	classifier := NewDailySplitClassifier()

	// Two punches on one day total 2.5h, split against a single daily cap.
	records := []attendance.AttendanceRecord{
		{EmployeeID: "e1", Date: day(2026, time.March, 2), OvertimeMinutes: 60},
		{EmployeeID: "e1", Date: day(2026, time.March, 2), OvertimeMinutes: 90},
	}

	buckets := classifier.Classify(records)

	assert.True(t, buckets.Tier1Hours.Equal(decimal.NewFromInt(2)), "got %s", buckets.Tier1Hours)
	assert.True(t, buckets.Tier2Hours.Equal(decimal.NewFromFloat(0.5)), "got %s", buckets.Tier2Hours)
}

func TestDailySplitClassifier_IgnoresZeroAndNegativeMinutes(t *testing.T) {
	classifier := NewDailySplitClassifier()

	records := []attendance.AttendanceRecord{
		{EmployeeID: "e1", Date: day(2026, time.March, 2), OvertimeMinutes: 0},
		{EmployeeID: "e1", Date: day(2026, time.March, 3), OvertimeMinutes: -30},
	}

	buckets := classifier.Classify(records)

	assert.True(t, buckets.Tier1Hours.IsZero())
	assert.True(t, buckets.Tier2Hours.IsZero())
}

func TestDailySplitClassifier_EmptyRecords(t *testing.T) {
	classifier := NewDailySplitClassifier()

	buckets := classifier.Classify(nil)

	assert.True(t, buckets.Tier1Hours.IsZero())
	assert.True(t, buckets.Tier2Hours.IsZero())
	assert.True(t, buckets.HolidayHours.IsZero())
}

func TestAggregator_DefaultsToDailySplit(t *testing.T) {
	agg := NewAggregator(nil)

	records := []attendance.AttendanceRecord{
		{EmployeeID: "e1", Date: day(2026, time.March, 2), OvertimeMinutes: 150},
	}

	buckets := agg.Aggregate(records)

	assert.True(t, buckets.Tier1Hours.Equal(decimal.NewFromInt(2)), "got %s", buckets.Tier1Hours)
	assert.True(t, buckets.Tier2Hours.Equal(decimal.NewFromFloat(0.5)), "got %s", buckets.Tier2Hours)
}
