package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kjk/agenda/kvstore"
	"github.com/kjk/agenda/log"
)

// DefaultKey is the store key holding all appointments
const DefaultKey = "appointments"

type Repository struct {
	Store kvstore.Store
	// DefaultKey if empty
	Key string
	// generates ids for appointments created without one
	// uuid.NewString if nil
	NewID func() string
}

func NewRepository(store kvstore.Store) *Repository {
	return &Repository{
		Store: store,
		Key:   DefaultKey,
		NewID: uuid.NewString,
	}
}

func (r *Repository) key() string {
	if r.Key == "" {
		return DefaultKey
	}
	return r.Key
}

func (r *Repository) newID() string {
	if r.NewID == nil {
		return uuid.NewString()
	}
	return r.NewID()
}

// read returns stored == false if there's nothing stored or if what's
// stored isn't a valid appointment list. Only I/O failures are errors.
func (r *Repository) read(ctx context.Context) (list []Appointment, stored bool, err error) {
	key := r.key()
	raw, found, err := r.Store.Get(ctx, key)
	if err != nil {
		log.IfErrf(err, "reading '%s'", key)
		return nil, false, storageError("reading appointments", err)
	}
	if !found {
		return []Appointment{}, false, nil
	}
	list, err = Unmarshal([]byte(raw))
	if err != nil {
		log.Logf("ignoring malformed '%s' (%d bytes): %s\n", key, len(raw), err)
		return []Appointment{}, false, nil
	}
	return list, true, nil
}

func (r *Repository) write(ctx context.Context, list []Appointment) error {
	key := r.key()
	d, err := Marshal(list)
	if err != nil {
		return storageError("encoding appointments", err)
	}
	err = r.Store.Set(ctx, key, string(d))
	if log.IfErrf(err, "writing '%s'", key) {
		return storageError("saving appointments", err)
	}
	return nil
}

// Create appends a to the stored list. Empty ID and Status are set to
// a new id and StatusPending, any other status is rejected.
// Returns the appointment as stored. Malformed stored content is replaced.
func (r *Repository) Create(ctx context.Context, a Appointment) (Appointment, error) {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if !a.Status.Valid() {
		return Appointment{}, &Error{Kind: KindInvalidStatus, Msg: fmt.Sprintf("status '%s' is not pending or confirmed", a.Status)}
	}
	list, _, err := r.read(ctx)
	if err != nil {
		return Appointment{}, err
	}
	if a.ID == "" {
		a.ID = r.newID()
	}
	for _, existing := range list {
		if existing.ID == a.ID {
			return Appointment{}, &Error{Kind: KindDuplicateID, Msg: fmt.Sprintf("appointment '%s' already exists", a.ID)}
		}
	}
	if err = r.write(ctx, append(list, a)); err != nil {
		return Appointment{}, err
	}
	log.Event("appointment.created", "id", a.ID, "doctorId", a.DoctorID, "time", a.Time)
	return a, nil
}

// Load returns all appointments. Nothing stored or malformed content
// is an empty list. Only store failures are returned as errors.
func (r *Repository) Load(ctx context.Context) ([]Appointment, error) {
	list, _, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// List is like Load but returns an empty list on store failure
func (r *Repository) List(ctx context.Context) []Appointment {
	list, err := r.Load(ctx)
	if err != nil {
		return []Appointment{}
	}
	return list
}

func (r *Repository) Get(ctx context.Context, id string) (Appointment, bool) {
	for _, a := range r.List(ctx) {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}

// Delete removes all appointments with a given id and returns what's left.
// If nothing is stored, or no appointment has that id, it returns
// a KindNothingToRemove error along with the unchanged list.
func (r *Repository) Delete(ctx context.Context, id string) ([]Appointment, error) {
	list, stored, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	if !stored {
		return list, &Error{Kind: KindNothingToRemove, Msg: "no appointments stored"}
	}
	kept := make([]Appointment, 0, len(list))
	for _, a := range list {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(list) {
		return list, &Error{Kind: KindNothingToRemove, Msg: fmt.Sprintf("appointment '%s' not found", id)}
	}
	if err = r.write(ctx, kept); err != nil {
		return nil, err
	}
	log.Event("appointment.deleted", "id", id, "removed", len(list)-len(kept))
	return kept, nil
}

// Clear removes all appointments
func (r *Repository) Clear(ctx context.Context) error {
	key := r.key()
	err := r.Store.Remove(ctx, key)
	if log.IfErrf(err, "removing '%s'", key) {
		return storageError("clearing appointments", err)
	}
	log.Event("appointments.cleared")
	return nil
}
