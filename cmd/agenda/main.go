package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/kjk/agenda/appointment"
	"github.com/kjk/agenda/catalog"
	"github.com/kjk/agenda/config"
	"github.com/kjk/agenda/log"
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, `usage: agenda [flags] <command>

commands:
  list [-json]            show scheduled appointments
  book -doctor ID -date DATE -time HH:MM -desc TEXT
                          schedule an appointment. DATE is YYYY-MM-DD or
                          a unix timestamp in milliseconds
  delete ID               remove an appointment
  clear                   remove all appointments
  slots                   show bookable times
  doctors                 show doctors
  events                  show today's events, needs log_dir

flags:
`)
	flag.PrintDefaults()
}

func main() {
	os.Exit(runMain())
}

func runMain() int {
	var (
		flgConfig  string
		flgDir     string
		flgCodec   string
		flgVerbose bool
	)
	flag.StringVar(&flgConfig, "config", "agenda.yaml", "path of config file")
	flag.StringVar(&flgDir, "dir", "", "data directory, overrides config")
	flag.StringVar(&flgCodec, "codec", "", "none, zstd or brotli, overrides config")
	flag.BoolVar(&flgVerbose, "v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	// stdout is for command output, e.g. list -json
	log.Console = os.Stderr

	cfg, err := config.Load(flgConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 1
	}
	if flgDir != "" {
		cfg.DataDir = flgDir
	}
	if flgCodec != "" {
		cfg.Codec = flgCodec
	}
	if flgVerbose {
		cfg.Verbose = true
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 1
	}

	if cfg.LogDir != "" {
		log.Init(&log.Config{Dir: cfg.LogDir})
		defer log.Close()
	}
	log.Verbose = cfg.Verbose
	log.Verbosef("config:\n%s", spew.Sdump(cfg))

	store, err := cfg.OpenStore()
	if log.IfErrf(err, "opening store in '%s'", cfg.DataDir) {
		return 1
	}
	repo := appointment.NewRepository(store)
	repo.Key = cfg.StorageKey

	a := newApp(repo, catalog.Default(), os.Stdout)
	err = a.run(context.Background(), flag.Args())
	if err == errUsage {
		flag.Usage()
		return 2
	}
	if err != nil {
		log.Verbosef("%s\n", err)
		if appointment.KindOf(err) == appointment.KindUnknown {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		} else {
			fmt.Fprintln(os.Stderr, appointment.Message(err))
		}
		return 1
	}
	return 0
}
