// Manual smoke tool for the graphical panel: draws primitives, text
// and a QR code on the real framebuffer. Useful when bringing up a new
// device without running the whole kiosk.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/moodbox/moodbox/hardware/display"
)

func main() {
	dev := flag.String("dev", "/dev/fb1", "framebuffer device")
	delay := flag.Duration("delay", 2*time.Second, "pause between demos")
	flag.Parse()

	d, err := display.NewFb(*dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	size := d.Size()
	fmt.Printf("panel %dx%d\n", size.X, size.Y)

	check := func(err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	// primitives
	d.Fill(display.Black)
	d.Box(4, 4, size.X-8, size.Y-8, color.RGBA{0x20, 0x20, 0x60, 0xff})
	d.Disc(size.X/3, size.Y/2, size.Y/4, color.RGBA{0xff, 0xd7, 0x00, 0xff})
	d.Ring(2*size.X/3, size.Y/2, size.Y/4, 3, display.White)
	check(d.Flush())
	time.Sleep(*delay)

	// text
	d.Fill(display.Black)
	d.Text(4, 8, 2, "MOODBOX", display.White)
	d.Text(4, 32, 1, "0123456789:?!", color.RGBA{0x40, 0xe0, 0x40, 0xff})
	check(d.Flush())
	time.Sleep(*delay)

	// spinner, ~5 seconds
	for frame := 0; frame < 250; frame++ {
		phase := frame % 64
		if phase >= 32 {
			phase = 64 - phase
		}
		r := size.Y/4 + phase*size.Y/4/32
		d.Fill(display.Black)
		d.Ring(size.X/2, size.Y/2, r, 3, color.RGBA{0x30, 0x80, 0xc0, 0xff})
		check(d.Flush())
		time.Sleep(20 * time.Millisecond)
	}

	check(d.QR("https://github.com/moodbox/moodbox", true, qrcode.Medium))
	time.Sleep(*delay)
	check(d.Clear())
}
