package chip8

const (
	// DisplayWidth is the logical frame width in pixels.
	DisplayWidth = 64

	// DisplayHeight is the logical frame height in pixels.
	DisplayHeight = 32
)

// Presenter receives pixel and frame notifications from the display buffer.
// Implementations own the actual surface; the logical frame is fixed at
// 64x32 and coordinates are always in range. Errors propagate out of Tick to
// the driving loop.
type Presenter interface {
	SetPixel(x, y byte) error
	ClearPixel(x, y byte) error
	Clear() error
	Present() error
}

// Display is the 64x32 monochrome frame buffer. Each pixel is exactly lit or
// unlit. Only the clear and draw instructions mutate it.
type Display struct {
	pixels    [DisplayHeight][DisplayWidth]bool
	presenter Presenter
}

func newDisplay(presenter Presenter) *Display {
	return &Display{presenter: presenter}
}

// Pixel reports whether the pixel at (x, y) is lit.
func (d *Display) Pixel(x, y byte) bool {
	return d.pixels[y][x]
}

// Clear unlights every pixel and resets the presentation surface.
func (d *Display) Clear() error {
	d.pixels = [DisplayHeight][DisplayWidth]bool{}
	if err := d.presenter.Clear(); err != nil {
		return err
	}
	return d.presenter.Present()
}

// DrawSprite XORs an 8-pixel-wide, len(sprite)-pixel-tall sprite onto the
// buffer at (x, y): every 1 bit toggles the pixel under it. Rows and columns
// that fall outside the frame are clipped, not wrapped. It reports whether
// any lit pixel was unlit by the draw.
func (d *Display) DrawSprite(x, y byte, sprite []byte) (bool, error) {
	collision := false

	for row, bits := range sprite {
		py := y + byte(row)
		if py >= DisplayHeight {
			break
		}
		for bit := byte(0); bit < 8; bit++ {
			px := x + bit
			if px >= DisplayWidth {
				break
			}
			if bits&(0x80>>bit) == 0 {
				continue
			}

			if d.pixels[py][px] {
				collision = true
				d.pixels[py][px] = false
				if err := d.presenter.ClearPixel(px, py); err != nil {
					return collision, err
				}
			} else {
				d.pixels[py][px] = true
				if err := d.presenter.SetPixel(px, py); err != nil {
					return collision, err
				}
			}
		}
	}

	if err := d.presenter.Present(); err != nil {
		return collision, err
	}
	return collision, nil
}
