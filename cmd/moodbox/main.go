// Kiosk daemon: one knob, two displays, MQTT uplink.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"

	"github.com/moodbox/moodbox/internal/state"
	state_new "github.com/moodbox/moodbox/internal/state/new"
	"github.com/moodbox/moodbox/internal/tele"
	"github.com/moodbox/moodbox/internal/ui"
	"github.com/moodbox/moodbox/log2"
)

// set by -ldflags at build time
var BuildVersion string = "unknown"

func main() {
	flags := flag.NewFlagSet("moodbox", flag.ExitOnError)
	configPath := flags.String("config", "moodbox.hcl", "")
	onlyVersion := flags.Bool("version", false, "print build version and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *onlyVersion {
		fmt.Printf("moodbox %s\n", BuildVersion)
		return
	}

	logLevel := log2.Level(log2.LInfo)
	if os.Getenv("moodbox_log_debug") != "" {
		logLevel = log2.LDebug
	}
	log := log2.NewStderr(logLevel)
	log.SetFlags(log2.LServiceFlags)
	ctx, g := state_new.NewContext(log, tele.New())
	g.BuildVersion = BuildVersion
	log.Debugf("starting moodbox %s", BuildVersion)

	config := state.MustReadConfig(g.Log, state.NewOsFullReader(), *configPath)
	g.MustInit(ctx, config)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		g.Log.Infof("graceful stop")
		g.Stop()
	}()

	if sdnotify("READY=1") {
		g.Log.Debugf("systemd watching")
	}

	front := ui.NewUI(ctx)
	front.Loop(ctx)

	sdnotify("STOPPING=1")
	g.StopWait()
	g.Tele.State(tele.StateProblem)
	g.Tele.Close()
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdnotify: %v\n", err)
	}
	return ok
}
