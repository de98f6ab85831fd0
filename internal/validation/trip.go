package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"triphive/internal/models"
)

var clockRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])[0-5][0-9]$`)

// ValidateDate checks that s is a well-formed calendar date.
func ValidateDate(s string) error {
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return nil
}

// ValidateTripRange checks both trip dates and their ordering.
func ValidateTripRange(startDate, endDate string) error {
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return fmt.Errorf("start date must be in YYYY-MM-DD format")
	}
	end, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return fmt.Errorf("end date must be in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return fmt.Errorf("end date cannot be before start date")
	}
	return nil
}

// ValidateClockTime checks a four-digit 12-hour clock string like "0900".
func ValidateClockTime(s string) error {
	if !clockRegex.MatchString(s) {
		return fmt.Errorf("time must be a four-digit 12-hour clock value like 0930")
	}
	return nil
}

// ValidateMeridiem checks an AM/PM designator, case-insensitively.
func ValidateMeridiem(m string) error {
	switch strings.ToLower(m) {
	case "am", "pm":
		return nil
	}
	return fmt.Errorf("meridiem must be AM or PM")
}
