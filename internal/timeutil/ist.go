package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). Shops record and
// report sales in local business days, so date ranges are anchored here.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// StartOfDay returns 00:00:00 in IST for the given time.
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// EndOfDay returns the last instant of the day in IST for the given time.
func EndOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 23, 59, 59, 999999999, IST)
}

// DateLayout is the wire format for report date-range parameters.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value as an IST calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}
