package main

import (
	"context"
	"fmt"
	"os"
	"time"

	pflag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"packtv/internal/config"
	"packtv/internal/logging"
	"packtv/internal/status"
	"packtv/internal/store"
	"packtv/internal/tui"
)

// Version is stamped by the release build.
var Version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			helpTopic(os.Args[2])
		} else {
			usage()
		}
	case "version", "-v", "--version":
		fmt.Println("packtv", Version)
		return
	case "init":
		cmdInit(os.Args[2:])
	case "run":
		cmdRun(os.Args[2:])
	case "doctor":
		cmdDoctor(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println(`packtv ` + Version + `
Packhouse shift KPIs on a terminal TV. Reads the SQLite database the
ingest jobs maintain and refreshes the display on an interval.
USAGE
  packtv <command> [options]
COMMANDS
  init         Scaffold packtv.yaml and the database schema (--demo seeds sample data)
  run          Start the dashboard (optionally with the status HTTP server)
  doctor       Check the config, database, and schema
  help         Show help (try: packtv help run)
  version      Print version
NOTES
  • Move the mouse to reveal the date controls; they retract after a few seconds idle.
  • Settings come from packtv.yaml, PACKTV_* environment variables, then flags.
`)
}

func helpTopic(name string) {
	switch name {
	case "run":
		fmt.Print(`USAGE
  packtv run [--config PATH] [--database PATH] [--refresh DUR] [--idle-delay DUR]
             [--sidebar-width N] [--status-addr ADDR] [--log-file PATH] [--timezone TZ]
DESCRIPTION
  Runs the TV dashboard full screen. The display refreshes from the
  database on the --refresh interval; r forces a refresh, d picks a
  calendar date, t returns to the live shift, y copies a text summary
  to the clipboard, q quits.
  With --status-addr the same snapshot is served over HTTP:
    /healthz   liveness probe
    /kpi.json  the latest snapshot as JSON
OPTIONS
  --config PATH          Config file (default: packtv.yaml)
  --database PATH        SQLite database written by the ingest jobs
  --refresh DUR          Refresh interval (default: 5m)
  --idle-delay DUR       Sidebar auto-hide delay (default: 3s)
  --sidebar-width N      Sidebar width in columns (default: 28)
  --status-addr ADDR     Status server address, e.g. :8050 (default: off)
  --log-file PATH        Append JSON logs to file (default: .packtv/packtv.log)
  --timezone TZ          IANA timezone for display times

`)
	case "init":
		fmt.Print(`USAGE
  packtv init [--config PATH] [--demo]
DESCRIPTION
  Writes a default packtv.yaml if none exists and creates the database
  schema. With --demo, seeds one sample shift so the dashboard has
  something to show.

`)
	default:
		usage()
	}
}

/* ---------- commands ---------- */

func cmdInit(args []string) {
	fs := pflag.NewFlagSet("init", pflag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultFile, "config file path")
	demo := fs.Bool("demo", false, "seed sample shift data")
	config.Flags(fs)
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath, fs)
	if err != nil {
		fatal(err)
	}
	if _, err := os.Stat(*cfgPath); os.IsNotExist(err) {
		if err := cfg.Save(*cfgPath); err != nil {
			fatal(err)
		}
		fmt.Println("Wrote", *cfgPath)
	} else {
		fmt.Println(*cfgPath, "already exists; not overwriting")
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		fatal(err)
	}
	defer st.Close()
	fmt.Println("Initialized database at", cfg.Database)

	if *demo {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := st.Seed(ctx); err != nil {
			fatal(err)
		}
		fmt.Println("Seeded sample shift data")
	}
}

func cmdRun(args []string) {
	fs := pflag.NewFlagSet("run", pflag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultFile, "config file path")
	config.Flags(fs)
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath, fs)
	if err != nil {
		fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	log, err := logging.Open(cfg.LogFile)
	if err != nil {
		fatal(err)
	}
	defer log.Sync()

	st, err := store.Open(cfg.Database)
	if err != nil {
		fatal(err)
	}
	defer st.Close()

	opts := tui.Options{
		Store:        st,
		Log:          log,
		Refresh:      cfg.Refresh,
		IdleDelay:    cfg.IdleDelay,
		SidebarWidth: cfg.SidebarWidth,
	}

	var sts *status.Server
	if cfg.StatusAddr != "" {
		sts = status.New(cfg.StatusAddr, log)
		opts.OnSnapshot = sts.SetSnapshot
		go func() {
			if err := sts.Serve(); err != nil {
				log.Error("status server", zap.Error(err))
			}
		}()
		log.Info("status server listening", zap.String("addr", cfg.StatusAddr))
	}

	log.Info("dashboard starting",
		zap.String("database", cfg.Database),
		zap.Duration("refresh", cfg.Refresh))
	runErr := tui.Run(opts)

	if sts != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = sts.Close(ctx)
	}
	if runErr != nil {
		fatal(runErr)
	}
}

func cmdDoctor(args []string) {
	fs := pflag.NewFlagSet("doctor", pflag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultFile, "config file path")
	config.Flags(fs)
	_ = fs.Parse(args)

	ok := true
	check := func(name string, err error) {
		if err != nil {
			fmt.Printf("  ✗ %s: %v\n", name, err)
			ok = false
		} else {
			fmt.Printf("  ✓ %s\n", name)
		}
	}

	fmt.Println("Checks:")
	cfg, err := config.Load(*cfgPath, fs)
	check("config loads", err)
	if err != nil {
		os.Exit(1)
	}
	check("config valid", cfg.Validate())

	st, err := store.Open(cfg.Database)
	check("database opens", err)
	if err != nil {
		os.Exit(1)
	}
	defer st.Close()

	tables, err := st.Tables()
	check("schema readable", err)
	have := map[string]bool{}
	for _, t := range tables {
		have[t] = true
	}
	for _, want := range []string{"shift_totals", "shift_buckets", "runs"} {
		if have[want] {
			fmt.Printf("  ✓ table %s present\n", want)
		} else {
			fmt.Printf("  ✗ table %s missing\n", want)
			ok = false
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	totals, err := st.CurrentShift(ctx)
	check("live shift queryable", err)
	if err == nil && totals == nil {
		fmt.Println("  • no shift is live right now (the ingest jobs set the flag)")
	}

	if ok {
		fmt.Println("All checks passed.")
	} else {
		fmt.Println("Problems detected. Fix the items marked ✗ and retry.")
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "packtv:", err)
	os.Exit(1)
}
