package shared

import "time"

const dateLayout = "2006-01-02"

// ParseDate accepts RFC3339 or plain YYYY-MM-DD. Empty input parses to the
// zero time without error.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(dateLayout, value)
}
