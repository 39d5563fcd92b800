package timezone

import "time"

const DefaultTimezone = "Europe/Rome"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate parses a "2006-01-02" date at midnight in the given timezone.
func ParseDate(tz string, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, Location(tz))
}

// ParseDateTime parses an "2006-01-02T15:04:05" local datetime in the given
// timezone. RFC3339 values with an explicit offset are accepted as-is.
func ParseDateTime(tz string, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(Location(tz)), nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, Location(tz))
}
