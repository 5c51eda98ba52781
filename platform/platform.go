// Package platform implements the machine's external collaborators on SDL2:
// the window and renderer behind the Presenter interface, the audio device
// behind the Beeper interface and the keyboard-to-keypad mapping.
package platform

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/c8vm/c8vm/chip8"
)

const (
	windowWidth  = 1024
	windowHeight = 512
	windowTitle  = "CHIP-8"
)

/*
Key Mappings:
Keypad       Keyboard
+-+-+-+-+    +-+-+-+-+
|1|2|3|C|    |1|2|3|4|
+-+-+-+-+    +-+-+-+-+
|4|5|6|D|    |Q|W|E|R|
+-+-+-+-+ => +-+-+-+-+
|7|8|9|E|    |A|S|D|F|
+-+-+-+-+    +-+-+-+-+
|A|0|B|F|    |Z|X|C|V|
+-+-+-+-+    +-+-+-+-+

Y is an alias for Z so the layout also works on QWERTZ keyboards.
*/
var keyMap = map[sdl.Keycode]byte{
	sdl.K_x: 0x0,
	sdl.K_1: 0x1,
	sdl.K_2: 0x2,
	sdl.K_3: 0x3,
	sdl.K_q: 0x4,
	sdl.K_w: 0x5,
	sdl.K_e: 0x6,
	sdl.K_a: 0x7,
	sdl.K_s: 0x8,
	sdl.K_d: 0x9,
	sdl.K_z: 0xA,
	sdl.K_y: 0xA,
	sdl.K_c: 0xB,
	sdl.K_4: 0xC,
	sdl.K_r: 0xD,
	sdl.K_f: 0xE,
	sdl.K_v: 0xF,
}

// Platform owns the SDL window and renderer and tracks the held keypad keys.
// It implements chip8.Presenter by mirroring the lit pixels and redrawing
// them on Present; SDL scales the 64x32 logical frame to the window for us.
type Platform struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	lit  [chip8.DisplayHeight][chip8.DisplayWidth]bool
	keys [16]bool
}

// New initializes SDL and creates the window and renderer.
func New() (*Platform, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow(windowTitle,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		windowWidth, windowHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, err
	}
	if err := renderer.SetLogicalSize(chip8.DisplayWidth, chip8.DisplayHeight); err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, err
	}

	p := &Platform{
		window:   window,
		renderer: renderer,
	}
	if err := p.Present(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// Destroy releases the renderer, the window and SDL itself.
func (p *Platform) Destroy() {
	p.renderer.Destroy()
	p.window.Destroy()
	sdl.Quit()
}

// ProcessInput pumps pending SDL events, updating the held-key state, and
// reports whether the user asked to quit (window close or Escape).
func (p *Platform) ProcessInput() bool {
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			down := t.Type == sdl.KEYDOWN

			if t.Keysym.Sym == sdl.K_ESCAPE {
				if down {
					quit = true
				}
				continue
			}
			if key, ok := keyMap[t.Keysym.Sym]; ok {
				p.keys[key] = down
			}
		}
	}

	return quit
}

// Keys returns the current held-key snapshot for chip8.Machine.SetKeys.
func (p *Platform) Keys() [16]bool {
	return p.keys
}

// SetPixel implements chip8.Presenter.
func (p *Platform) SetPixel(x, y byte) error {
	p.lit[y][x] = true
	return nil
}

// ClearPixel implements chip8.Presenter.
func (p *Platform) ClearPixel(x, y byte) error {
	p.lit[y][x] = false
	return nil
}

// Clear implements chip8.Presenter.
func (p *Platform) Clear() error {
	p.lit = [chip8.DisplayHeight][chip8.DisplayWidth]bool{}
	return nil
}

// Present implements chip8.Presenter: repaint the background and every lit
// pixel, then flip the frame.
func (p *Platform) Present() error {
	if err := p.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := p.renderer.Clear(); err != nil {
		return err
	}
	if err := p.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
		return err
	}

	for y := range p.lit {
		for x, on := range p.lit[y] {
			if !on {
				continue
			}
			if err := p.renderer.DrawPoint(int32(x), int32(y)); err != nil {
				return err
			}
		}
	}

	p.renderer.Present()
	return nil
}
