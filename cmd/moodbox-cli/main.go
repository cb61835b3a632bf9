// Emulator REPL: drives the kiosk UI with scripted knob input on a dev
// machine, no GPIO or panel hardware required.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/moodbox/moodbox/helpers/cli"
	"github.com/moodbox/moodbox/internal/state"
	state_new "github.com/moodbox/moodbox/internal/state/new"
	"github.com/moodbox/moodbox/internal/tele"
	"github.com/moodbox/moodbox/internal/types"
	"github.com/moodbox/moodbox/internal/ui"
	"github.com/moodbox/moodbox/log2"
)

const usage = `commands:
  turn <delta>     rotate the knob, negative = counter-clockwise
  push             press the knob
  show             print both displays and the UI state
  log              print submissions recorded so far
  quit`

func main() {
	flags := flag.NewFlagSet("moodbox-cli", flag.ExitOnError)
	configPath := flags.String("config", "moodbox.hcl", "")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := log2.NewStderr(log2.LDebug)
	log.SetFlags(log2.LInteractiveFlags)
	ctx, g := state_new.NewContext(log, tele.NewMock())
	g.BuildVersion = "emulator"
	config := state.MustReadConfig(g.Log, state.NewOsFullReader(), *configPath)
	// emulator never touches hardware
	config.Hardware.Rotary.PinChip = ""
	config.Hardware.HD44780.Enable = false
	config.Hardware.Framebuffer.Enable = false
	g.MustInit(ctx, config)

	knob := g.Hardware.Knob.(*types.KnobMock)
	front := ui.NewUI(ctx)
	teleMock := g.Tele.(*tele.Mock)

	show := func() {
		st := g.Hardware.Text.State()
		fmt.Printf("state=%s\n[%s]\n[%s]\n", front.State(), st.L1, st.L2)
	}

	fmt.Println(usage)
	cli.MainLoop("moodbox-cli", func(line string) {
		words := strings.Fields(line)
		if len(words) == 0 {
			return
		}
		switch words[0] {
		case "turn":
			if len(words) != 2 {
				fmt.Println(usage)
				return
			}
			delta, err := strconv.Atoi(words[1])
			if err != nil {
				fmt.Println(err)
				return
			}
			knob.Turn(int32(delta))
			front.Tick()
			show()
		case "push":
			knob.Push()
			front.Tick()
			show()
		case "tick":
			front.Tick()
			show()
		case "show":
			show()
		case "log":
			for i, msg := range teleMock.SubmitLog() {
				fmt.Printf("-- %d --\n%s\n", i+1, msg)
			}
		case "quit", "exit":
			os.Exit(0)
		default:
			fmt.Println(usage)
		}
	}, completer)
}

func completer(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "turn "},
		{Text: "push"},
		{Text: "tick"},
		{Text: "show"},
		{Text: "log"},
		{Text: "quit"},
	}
	return prompt.FilterHasPrefix(suggests, d.CurrentLine(), false)
}
