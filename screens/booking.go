package screens

import (
	"context"
	"fmt"
	"time"

	"github.com/kjk/agenda/appointment"
	"github.com/kjk/agenda/catalog"
)

type SlotOption struct {
	Time      string
	Available bool
}

type BookingForm struct {
	Repo    *appointment.Repository
	Doctors *catalog.Catalog
	// time.Now if nil
	Now func() time.Time
}

func NewBookingForm(repo *appointment.Repository, doctors *catalog.Catalog) *BookingForm {
	return &BookingForm{
		Repo:    repo,
		Doctors: doctors,
		Now:     time.Now,
	}
}

func (b *BookingForm) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// Slots is built fresh on every call
func (b *BookingForm) Slots() []SlotOption {
	slots := appointment.TimeSlots()
	res := make([]SlotOption, len(slots))
	for i, s := range slots {
		res[i] = SlotOption{
			Time:      s,
			Available: appointment.IsSlotAvailable(s),
		}
	}
	return res
}

// Submit validates the form and saves a new pending appointment
func (b *BookingForm) Submit(ctx context.Context, f appointment.Form) (appointment.Appointment, error) {
	if err := appointment.Validate(f, b.now()); err != nil {
		return appointment.Appointment{}, err
	}
	if _, ok := b.Doctors.FindByID(f.DoctorID); !ok {
		return appointment.Appointment{}, &appointment.Error{
			Kind: appointment.KindUnknownDoctor,
			Msg:  fmt.Sprintf("no doctor with id '%s'", f.DoctorID),
		}
	}
	return b.Repo.Create(ctx, appointment.NewAppointment(f))
}
