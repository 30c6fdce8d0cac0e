package util

import (
	"fmt"
	"time"
)

// ValidateValue checks a monetary value in cents (non-negative; sign is
// carried by the transaction type, never by the value).
func ValidateValue(cents int64) error {
	if cents < 0 {
		return fmt.Errorf("value must not be negative, got %d", cents)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateMonth checks a calendar month number.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be 1-12, got %d", month)
	}
	return nil
}
