package enums

import (
	"fmt"
	"strings"
)

// ReportPeriod is the width of one revenue bucket.
type ReportPeriod string

const (
	ReportPeriodDaily   ReportPeriod = "DAILY"
	ReportPeriodWeekly  ReportPeriod = "WEEKLY"
	ReportPeriodMonthly ReportPeriod = "MONTHLY"
	ReportPeriodYearly  ReportPeriod = "YEARLY"
)

var validReportPeriods = []ReportPeriod{
	ReportPeriodDaily,
	ReportPeriodWeekly,
	ReportPeriodMonthly,
	ReportPeriodYearly,
}

// String implements fmt.Stringer.
func (p ReportPeriod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ReportPeriod.
func (p ReportPeriod) IsValid() bool {
	for _, candidate := range validReportPeriods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseReportPeriod converts raw input such as "weekly" into a ReportPeriod.
func ParseReportPeriod(value string) (ReportPeriod, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validReportPeriods {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report period %q", value)
}
