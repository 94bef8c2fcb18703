package appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alecthomas/assert"
	"github.com/kjk/agenda/kvstore"
	"github.com/kjk/agenda/require"
)

var errDiskFull = errors.New("disk full")

// faultyStore fails the operations we tell it to
type faultyStore struct {
	*kvstore.MemStore
	failGet    bool
	failSet    bool
	failRemove bool
}

func (s *faultyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.failGet {
		return "", false, errDiskFull
	}
	return s.MemStore.Get(ctx, key)
}

func (s *faultyStore) Set(ctx context.Context, key string, value string) error {
	if s.failSet {
		return errDiskFull
	}
	return s.MemStore.Set(ctx, key, value)
}

func (s *faultyStore) Remove(ctx context.Context, key string) error {
	if s.failRemove {
		return errDiskFull
	}
	return s.MemStore.Remove(ctx, key)
}

func newTestRepo() (*Repository, *faultyStore) {
	store := &faultyStore{MemStore: kvstore.NewMemStore()}
	r := NewRepository(store)
	n := 0
	r.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return r, store
}

func testAppointment(id string, doctorID string) Appointment {
	return Appointment{
		ID:          id,
		DoctorID:    doctorID,
		Date:        time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		Time:        "09:30",
		Description: "check-up " + id,
		Status:      StatusPending,
	}
}

func mustCreate(t *testing.T, r *Repository, a Appointment) Appointment {
	got, err := r.Create(context.Background(), a)
	require.NoError(t, err)
	return got
}

func TestCreateThenList(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo()
	assert.Equal(t, []Appointment{}, r.List(ctx))

	a := testAppointment("a1", "1")
	got := mustCreate(t, r, a)
	assert.Equal(t, a, got)

	list := r.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, a, list[0])

	b := mustCreate(t, r, testAppointment("b2", "2"))
	assert.Equal(t, []Appointment{a, b}, r.List(ctx))
}

func TestCreateAssignsDefaults(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo()
	a := testAppointment("", "3")
	a.Status = ""
	got := mustCreate(t, r, a)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, StatusPending, got.Status)

	found, ok := r.Get(ctx, "id-1")
	assert.True(t, ok)
	assert.Equal(t, got, found)

	// confirmed status is kept as is
	a = testAppointment("c", "1")
	a.Status = StatusConfirmed
	assert.Equal(t, StatusConfirmed, mustCreate(t, r, a).Status)

	r2 := NewRepository(kvstore.NewMemStore())
	got = mustCreate(t, r2, testAppointment("", "1"))
	assert.Equal(t, 36, len(got.ID), "expected uuid, got '%s'", got.ID)
}

func TestCreateInvalidStatus(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo()
	a := testAppointment("x", "1")
	a.Status = "cancelled"
	_, err := r.Create(ctx, a)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStatus), "got %v", err)
	assert.Equal(t, KindInvalidStatus, KindOf(err))
	assert.Len(t, r.List(ctx), 0)
	_, ok := r.Get(ctx, "x")
	assert.False(t, ok)
}

func TestCreateDuplicateID(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo()
	a := mustCreate(t, r, testAppointment("a1", "1"))
	_, err := r.Create(ctx, testAppointment("a1", "2"))
	assert.True(t, errors.Is(err, ErrDuplicateID), "%v", err)
	assert.Equal(t, []Appointment{a}, r.List(ctx))

	// same content, different id is fine
	b := a
	b.ID = "a2"
	mustCreate(t, r, b)
	assert.Len(t, r.List(ctx), 2)
}

func TestDeleteNotStored(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepo()
	list, err := r.Delete(ctx, "a1")
	assert.Equal(t, KindNothingToRemove, KindOf(err))
	assert.Equal(t, []Appointment{}, list)
	// didn't create the key
	assert.Equal(t, 0, store.Len())
}

func TestDeleteMissingID(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo()
	a := mustCreate(t, r, testAppointment("a1", "1"))
	b := mustCreate(t, r, testAppointment("b2", "2"))

	list, err := r.Delete(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNothingToRemove), "%v", err)
	assert.Equal(t, []Appointment{a, b}, list)
	assert.Equal(t, []Appointment{a, b}, r.List(ctx))
}

func TestDeleteKeepsOrder(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo()
	var all []Appointment
	for i := 0; i < 5; i++ {
		all = append(all, mustCreate(t, r, testAppointment(fmt.Sprintf("a%d", i), "1")))
	}
	list, err := r.Delete(ctx, "a2")
	require.NoError(t, err)
	exp := []Appointment{all[0], all[1], all[3], all[4]}
	assert.Equal(t, exp, list)
	assert.Equal(t, exp, r.List(ctx))

	// deleting again is a no-op
	list, err = r.Delete(ctx, "a2")
	assert.Equal(t, KindNothingToRemove, KindOf(err))
	assert.Equal(t, exp, list)
}

func TestDeleteAllWithID(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepo()
	// duplicate ids can only come from outside, e.g. an older version
	dup := []Appointment{testAppointment("x", "1"), testAppointment("y", "2"), testAppointment("x", "3")}
	d, err := Marshal(dup)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, DefaultKey, string(d)))

	list, err := r.Delete(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []Appointment{dup[1]}, list)
}

func TestMalformedContent(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepo()
	for _, raw := range []string{"", "{", `{"id":"1"}`, `[{"id":1}]`} {
		require.NoError(t, store.Set(ctx, DefaultKey, raw))
		assert.Equal(t, []Appointment{}, r.List(ctx), "raw: %q", raw)
		list, err := r.Load(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []Appointment{}, list)
		_, err = r.Delete(ctx, "1")
		assert.Equal(t, KindNothingToRemove, KindOf(err), "raw: %q", raw)
	}

	// create replaces malformed content
	a := mustCreate(t, r, testAppointment("a1", "1"))
	assert.Equal(t, []Appointment{a}, r.List(ctx))

	require.NoError(t, store.Set(ctx, DefaultKey, "null"))
	assert.Equal(t, []Appointment{}, r.List(ctx))
}

func TestStorageFailures(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepo()
	a := mustCreate(t, r, testAppointment("a1", "1"))

	store.failSet = true
	_, err := r.Create(ctx, testAppointment("b2", "2"))
	assert.True(t, errors.Is(err, ErrStorage), "%v", err)
	assert.True(t, errors.Is(err, errDiskFull))
	_, err = r.Delete(ctx, "a1")
	assert.Equal(t, KindStorage, KindOf(err))
	store.failSet = false
	// nothing changed
	assert.Equal(t, []Appointment{a}, r.List(ctx))

	store.failGet = true
	assert.Equal(t, []Appointment{}, r.List(ctx))
	_, err = r.Load(ctx)
	assert.Equal(t, KindStorage, KindOf(err))
	// a failed read must not overwrite what's stored
	_, err = r.Create(ctx, testAppointment("b2", "2"))
	assert.Equal(t, KindStorage, KindOf(err))
	list, err := r.Delete(ctx, "a1")
	assert.Equal(t, KindStorage, KindOf(err))
	assert.Nil(t, list)
	_, ok := r.Get(ctx, "a1")
	assert.False(t, ok)
	store.failGet = false
	assert.Equal(t, []Appointment{a}, r.List(ctx))

	store.failRemove = true
	assert.Equal(t, KindStorage, KindOf(r.Clear(ctx)))
	assert.Equal(t, []Appointment{a}, r.List(ctx))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepo()
	mustCreate(t, r, testAppointment("a1", "1"))
	require.NoError(t, r.Clear(ctx))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, []Appointment{}, r.List(ctx))
	require.NoError(t, r.Clear(ctx))
}

func TestCustomKey(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepo()
	r.Key = "@consultas_agendadas"
	mustCreate(t, r, testAppointment("a1", "1"))
	_, found, err := store.Get(ctx, "@consultas_agendadas")
	require.NoError(t, err)
	assert.True(t, found)
	_, found, _ = store.Get(ctx, DefaultKey)
	assert.False(t, found)
}

// after any sequence of creates and deletes the stored JSON decodes
// to exactly the list we expect
func TestStoredRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepo()
	var exp []Appointment
	for i := 0; i < 20; i++ {
		if i%3 == 2 {
			id := exp[len(exp)/2].ID
			_, err := r.Delete(ctx, id)
			require.NoError(t, err)
			var kept []Appointment
			for _, a := range exp {
				if a.ID != id {
					kept = append(kept, a)
				}
			}
			exp = kept
		} else {
			a := testAppointment(fmt.Sprintf("a%d", i), fmt.Sprintf("%d", 1+i%3))
			a.Date = a.Date.AddDate(0, 0, i)
			a.Time = TimeSlots()[i%18]
			exp = append(exp, mustCreate(t, r, a))
		}
		raw, found, err := store.Get(ctx, DefaultKey)
		require.NoError(t, err)
		require.True(t, found)
		got, err := Unmarshal([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, exp, got, "step %d", i)

		d, err := Marshal(got)
		require.NoError(t, err)
		require.Equal(t, raw, string(d), "step %d", i)
	}
}

func TestStoredFormat(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRepo()
	mustCreate(t, r, testAppointment("a1", "2"))
	raw, _, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	exp := `[{"id":"a1","doctorId":"2","date":"2026-11-02T00:00:00Z","time":"09:30","description":"check-up a1","status":"pending"}]`
	assert.Equal(t, exp, raw)

	d, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(d))
}

func TestWithFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := &kvstore.FileStore{Dir: dir, Codec: kvstore.CodecZstd}
	require.NoError(t, kvstore.OpenFileStore(s))
	r := NewRepository(s)
	a := mustCreate(t, r, testAppointment("a1", "1"))

	s2 := &kvstore.FileStore{Dir: dir}
	require.NoError(t, kvstore.OpenFileStore(s2))
	assert.Equal(t, []Appointment{a}, NewRepository(s2).List(ctx))
}
