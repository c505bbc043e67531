package resumes

import (
	"strconv"
	"strings"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatMonth renders a "YYYY-MM" date as "Jan 2024". Empty input yields "";
// input that is not a valid year-month is returned unchanged.
func FormatMonth(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	year, month, ok := strings.Cut(date, "-")
	if !ok || year == "" {
		return date
	}
	if len(month) > 2 {
		// Accept full dates such as 2024-03-15.
		month = month[:2]
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return date
	}
	return monthNames[m-1] + " " + year
}

// DateRange renders the period of an entry, e.g. "Jan 2020 - Present".
func DateRange(start, end string, current bool) string {
	from := FormatMonth(start)
	to := FormatMonth(end)
	if current {
		to = "Present"
	}
	switch {
	case from == "" && to == "":
		return ""
	case to == "":
		return from
	case from == "":
		return to
	default:
		return from + " - " + to
	}
}
