// Package appointment persists scheduled appointments in a kvstore.Store
// and validates booking forms before they are saved.
//
// All appointments are stored as a single JSON array under one key.
// Every change reads the whole array, modifies it and writes it back.
// There is no locking between the read and the write: two writers racing
// each other lose one of the updates. This is fine for a single user on a
// single device.
package appointment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Label is how status is shown in the list. Anything not pending
// shows as confirmed.
func (s Status) Label() string {
	if s == StatusPending {
		return "Pending"
	}
	return "Confirmed"
}

type Appointment struct {
	ID       string `json:"id"`
	DoctorID string `json:"doctorId"`
	// midnight of the booked day
	Date time.Time `json:"date"`
	// one of TimeSlots()
	Time        string `json:"time"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// Form is what the user entered in the booking screen
type Form struct {
	DoctorID    string
	Date        time.Time
	Time        string
	Description string
}

// NewAppointment converts a validated form. Date is truncated to midnight
// in the location of f.Date. ID is assigned by Repository.Create.
func NewAppointment(f Form) Appointment {
	y, m, d := f.Date.Date()
	return Appointment{
		DoctorID:    f.DoctorID,
		Date:        time.Date(y, m, d, 0, 0, 0, 0, f.Date.Location()),
		Time:        f.Time,
		Description: f.Description,
		Status:      StatusPending,
	}
}

// ParseTimestamp parses a date picker value: unix time in milliseconds
func ParseTimestamp(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}, &Error{Kind: KindInvalidDate, Msg: fmt.Sprintf("invalid timestamp '%s'", raw), Err: err}
	}
	return time.UnixMilli(ms), nil
}

// Marshal encodes appointments as stored: a JSON array, never null
func Marshal(list []Appointment) ([]byte, error) {
	if list == nil {
		list = []Appointment{}
	}
	return json.Marshal(list)
}

// Unmarshal decodes the stored JSON array. JSON null decodes as empty.
func Unmarshal(d []byte) ([]Appointment, error) {
	var res []Appointment
	if err := json.Unmarshal(d, &res); err != nil {
		return nil, err
	}
	if res == nil {
		res = []Appointment{}
	}
	return res, nil
}
