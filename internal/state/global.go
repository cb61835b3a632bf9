package state

import (
	"context"
	"sync"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"

	"github.com/moodbox/moodbox/helpers"
	"github.com/moodbox/moodbox/internal/tele"
	"github.com/moodbox/moodbox/log2"
)

type Global struct {
	Alive        *alive.Alive
	BuildVersion string
	Config       *Config
	Hardware     hardware
	Log          *log2.Log
	Tele         tele.Teler

	stopOnce sync.Once
}

const ContextKey = "run/state-global"

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic("context[" + ContextKey + "]=nil")
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic("context[" + ContextKey + "] expected type *Global")
}

// Init finishes constructing the Global: validates config, starts
// telemetry, brings up hardware. Blocks until all parts are up.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg

	if err := g.checkOptions(); err != nil {
		return errors.Trace(err)
	}

	if g.BuildVersion == "unknown" {
		g.Error(errors.Errorf("build version is not set, please use ldflags -X main.BuildVersion"))
	}

	if err := g.Tele.Init(ctx, g.Log, g.Config.Tele); err != nil {
		return errors.Annotate(err, "tele init")
	}
	// After this point errors are duplicated to the operator side.
	g.Log.SetErrorFunc(g.Tele.Error)
	g.Tele.State(tele.StateBoot)

	errch := make(chan error, 8)
	wg := sync.WaitGroup{}
	wg.Add(3)
	go helpers.WrapErrChan(&wg, errch, g.initInput)
	go helpers.WrapErrChan(&wg, errch, g.initTextDisplay)
	go helpers.WrapErrChan(&wg, errch, g.initPanel)
	wg.Wait()
	close(errch)

	return helpers.FoldErrChan(errch)
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	if err := g.Init(ctx, cfg); err != nil {
		g.Fatal(err)
	}
}

// checkOptions rejects configs the selection UI cannot run on.
func (g *Global) checkOptions() error {
	ui := &g.Config.UI
	errs := make([]error, 0, 4)
	if len(ui.Names) == 0 {
		errs = append(errs, errors.NotValidf("config ui.names empty"))
	}
	if len(ui.Classes) == 0 {
		errs = append(errs, errors.NotValidf("config ui.classes empty"))
	}
	if len(ui.Moods) == 0 {
		errs = append(errs, errors.NotValidf("config ui.moods empty"))
	}
	// mood_messages pair 1:1 with moods by index
	if len(ui.MoodMessages) != len(ui.Moods) {
		errs = append(errs, errors.NotValidf("config ui.mood_messages len=%d must match ui.moods len=%d",
			len(ui.MoodMessages), len(ui.Moods)))
	}
	return helpers.FoldErrors(errs)
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Errorf("error stack=%s", errors.ErrorStack(err))
	}
}

func (g *Global) Fatal(err error, args ...interface{}) {
	if err != nil {
		g.Error(err, args...)
		g.StopWait()
		g.Tele.Close()
		g.Log.Fatalf("dying err=%s", errors.ErrorStack(err))
	}
}

func (g *Global) Stop() {
	g.Alive.Stop()
}

func (g *Global) StopWait() {
	g.Alive.Stop()
	g.Alive.Wait()
	g.stopOnce.Do(func() {
		if g.Hardware.Knob != nil {
			g.Hardware.Knob.Close()
		}
		if g.Hardware.Text != nil {
			g.Hardware.Text.Stop()
		}
	})
}
