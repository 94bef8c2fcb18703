package appointment

import (
	"fmt"
	"strings"
	"time"
)

// MaxMonthsAhead is how far in the future an appointment can be booked
const MaxMonthsAhead = 3

const (
	firstSlotHour = 9
	// exclusive
	lastSlotHour = 18
)

// TimeSlots returns bookable half-hour slots: 09:00, 09:30, ..., 17:30
func TimeSlots() []string {
	var res []string
	for hour := firstSlotHour; hour < lastSlotHour; hour++ {
		res = append(res, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
	}
	return res
}

// IsSlotAvailable always returns true: we don't check for conflicting
// appointments yet.
func IsSlotAvailable(slot string) bool {
	return true
}

func isTimeSlot(s string) bool {
	for _, slot := range TimeSlots() {
		if slot == s {
			return true
		}
	}
	return false
}

// ValidDate returns true if now < date < now + 3 months.
// Instants are compared as is. A date later today is accepted even though
// NewAppointment() will store it as today's midnight.
func ValidDate(date time.Time, now time.Time) bool {
	maxDate := now.AddDate(0, MaxMonthsAhead, 0)
	return date.After(now) && date.Before(maxDate)
}

// Validate checks required fields, then the date, then the time slot
func Validate(f Form, now time.Time) error {
	var missing []string
	if f.DoctorID == "" {
		missing = append(missing, "doctor")
	}
	if f.Time == "" {
		missing = append(missing, "time")
	}
	if f.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return &Error{Kind: KindMissingFields, Msg: "missing " + strings.Join(missing, ", ")}
	}
	if !ValidDate(f.Date, now) {
		msg := fmt.Sprintf("date %s is not between %s and %s", f.Date.Format(time.RFC3339), now.Format(time.RFC3339), now.AddDate(0, MaxMonthsAhead, 0).Format(time.RFC3339))
		return &Error{Kind: KindInvalidDate, Msg: msg}
	}
	if !isTimeSlot(f.Time) {
		return &Error{Kind: KindInvalidSlot, Msg: fmt.Sprintf("'%s' is not a time slot", f.Time)}
	}
	return nil
}
