package screens

import (
	"context"
	"time"

	"github.com/kjk/agenda/appointment"
	"github.com/kjk/agenda/catalog"
)

const (
	doctorNotFound    = "Doctor not found"
	specialtyNotFound = "Specialty not found"
	placeholderImage  = "https://via.placeholder.com/100"
)

// Card is one row of the appointment list
type Card struct {
	ID          string
	DoctorName  string
	Specialty   string
	ImageURL    string
	Date        string
	Time        string
	Description string
	Status      string
}

type Home struct {
	Repo    *appointment.Repository
	Doctors *catalog.Catalog

	Appointments []appointment.Appointment
}

func NewHome(repo *appointment.Repository, doctors *catalog.Catalog) *Home {
	return &Home{
		Repo:    repo,
		Doctors: doctors,
	}
}

// Load re-reads appointments. On failure we keep showing what we had.
func (h *Home) Load(ctx context.Context) error {
	list, err := h.Repo.Load(ctx)
	if err != nil {
		return err
	}
	h.Appointments = list
	return nil
}

// Delete removes an appointment and shows the remaining ones.
// If there was nothing to remove, we show the list as stored.
func (h *Home) Delete(ctx context.Context, id string) error {
	list, err := h.Repo.Delete(ctx, id)
	if list != nil {
		h.Appointments = list
	}
	return err
}

func (h *Home) IsEmpty() bool {
	return len(h.Appointments) == 0
}

// Cards joins appointments with the doctor catalog
func (h *Home) Cards() []Card {
	res := make([]Card, 0, len(h.Appointments))
	for _, a := range h.Appointments {
		c := Card{
			ID:          a.ID,
			DoctorName:  doctorNotFound,
			Specialty:   specialtyNotFound,
			ImageURL:    placeholderImage,
			Date:        a.Date.Format(time.DateOnly),
			Time:        a.Time,
			Description: a.Description,
			Status:      a.Status.Label(),
		}
		if d, ok := h.Doctors.FindByID(a.DoctorID); ok {
			c.DoctorName = d.Name
			c.Specialty = d.Specialty
			if d.ImageURL != "" {
				c.ImageURL = d.ImageURL
			}
		}
		res = append(res, c)
	}
	return res
}
