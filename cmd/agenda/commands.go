package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kjk/agenda/appointment"
	"github.com/kjk/agenda/catalog"
	"github.com/kjk/agenda/log"
	"github.com/kjk/agenda/screens"
	"github.com/kjk/agenda/siser"
	"github.com/tidwall/pretty"
)

var (
	errUsage    = errors.New("usage")
	errNoLogDir = errors.New("events need log_dir in config")
)

type app struct {
	repo    *appointment.Repository
	doctors *catalog.Catalog
	home    *screens.Home
	form    *screens.BookingForm
	out     io.Writer
}

func newApp(repo *appointment.Repository, doctors *catalog.Catalog, out io.Writer) *app {
	return &app{
		repo:    repo,
		doctors: doctors,
		home:    screens.NewHome(repo, doctors),
		form:    screens.NewBookingForm(repo, doctors),
		out:     out,
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "list":
		return a.list(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "delete":
		if len(args) != 1 {
			return errUsage
		}
		return a.delete(ctx, args[0])
	case "clear":
		return a.repo.Clear(ctx)
	case "slots":
		a.slots()
		return nil
	case "doctors":
		a.listDoctors()
		return nil
	case "events":
		return a.events(time.Now())
	}
	return errUsage
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asJSON := fs.Bool("json", false, "print as JSON")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := a.home.Load(ctx); err != nil {
		return err
	}
	if *asJSON {
		d, err := appointment.Marshal(a.home.Appointments)
		if err != nil {
			return err
		}
		a.printf("%s", pretty.Pretty(d))
		return nil
	}
	a.printCards()
	return nil
}

func (a *app) printCards() {
	if a.home.IsEmpty() {
		a.printf("No appointments scheduled\n")
		return
	}
	for _, c := range a.home.Cards() {
		a.printf("%s  %s %s  %s (%s)  [%s]\n", c.ID, c.Date, c.Time, c.DoctorName, c.Specialty, c.Status)
		if c.Description != "" {
			a.printf("    %s\n", c.Description)
		}
	}
}

// parseDate accepts YYYY-MM-DD (local midnight) or a date picker
// timestamp in milliseconds
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if strings.Trim(s, "0123456789") == "" {
		return appointment.ParseTimestamp(s)
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, &appointment.Error{Kind: appointment.KindInvalidDate, Msg: fmt.Sprintf("invalid date '%s'", s), Err: err}
	}
	return t, nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	doctorID := fs.String("doctor", "", "doctor id")
	date := fs.String("date", "", "YYYY-MM-DD or unix milliseconds")
	slot := fs.String("time", "", "HH:MM")
	desc := fs.String("desc", "", "description")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	d, err := parseDate(*date)
	if err != nil {
		return err
	}
	f := appointment.Form{
		DoctorID:    *doctorID,
		Date:        d,
		Time:        *slot,
		Description: *desc,
	}
	appt, err := a.form.Submit(ctx, f)
	if err != nil {
		return err
	}
	a.printf("Scheduled %s on %s at %s\n", appt.ID, appt.Date.Format(time.DateOnly), appt.Time)
	return nil
}

func (a *app) delete(ctx context.Context, id string) error {
	if err := a.home.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Removed %s\n", id)
	a.printCards()
	return nil
}

func (a *app) slots() {
	for _, s := range a.form.Slots() {
		if s.Available {
			a.printf("%s\n", s.Time)
		} else {
			a.printf("%s (taken)\n", s.Time)
		}
	}
}

func (a *app) listDoctors() {
	for _, d := range a.doctors.All() {
		a.printf("%s  %s, %s\n", d.ID, d.Name, d.Specialty)
	}
}

// events prints what was recorded in the events log on day
func (a *app) events(day time.Time) error {
	path := log.EventsPath(day)
	if path == "" {
		return errNoLogDir
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		a.printf("No events on %s\n", day.UTC().Format(time.DateOnly))
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	r := siser.NewReader(f)
	for r.ReadNext() {
		a.printf("%s  %s\n", r.Timestamp.Local().Format(time.TimeOnly), r.Name)
		data := strings.TrimSuffix(string(r.Data), "\n")
		if data == "" {
			continue
		}
		for _, line := range strings.Split(data, "\n") {
			a.printf("    %s\n", line)
		}
	}
	return r.Err()
}
