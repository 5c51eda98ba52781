package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisplayClear(t *testing.T) {
	presenter := &nullPresenter{}
	d := newDisplay(presenter)

	_, err := d.DrawSprite(10, 10, []byte{0xFF, 0xFF})
	assert.NoError(t, err)

	assert.NoError(t, d.Clear())

	for y := byte(0); y < DisplayHeight; y++ {
		for x := byte(0); x < DisplayWidth; x++ {
			assert.False(t, d.Pixel(x, y))
		}
	}
	assert.Equal(t, 1, presenter.clears)
}

func TestDrawSpriteTogglesAndCollides(t *testing.T) {
	d := newDisplay(&nullPresenter{})
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0} // the "0" glyph

	collision, err := d.DrawSprite(8, 4, sprite)
	assert.NoError(t, err)
	assert.False(t, collision)
	assert.True(t, d.Pixel(8, 4))
	assert.False(t, d.Pixel(12, 4)) // 0xF0 covers only the high nibble

	// The identical second draw XORs every touched pixel back off.
	collision, err = d.DrawSprite(8, 4, sprite)
	assert.NoError(t, err)
	assert.True(t, collision)

	for y := byte(0); y < DisplayHeight; y++ {
		for x := byte(0); x < DisplayWidth; x++ {
			assert.False(t, d.Pixel(x, y))
		}
	}
}

func TestDrawSpritePartialCollision(t *testing.T) {
	d := newDisplay(&nullPresenter{})

	_, err := d.DrawSprite(0, 0, []byte{0x80})
	assert.NoError(t, err)

	// One overlapping pixel is enough to report a collision; the
	// non-overlapping pixels still get lit.
	collision, err := d.DrawSprite(0, 0, []byte{0xC0})
	assert.NoError(t, err)
	assert.True(t, collision)
	assert.False(t, d.Pixel(0, 0))
	assert.True(t, d.Pixel(1, 0))
}

func TestDrawSpriteClipsAtEdges(t *testing.T) {
	presenter := &nullPresenter{}
	d := newDisplay(presenter)

	// Horizontal clip: only columns 62 and 63 are drawn, nothing wraps to
	// column 0.
	collision, err := d.DrawSprite(62, 0, []byte{0xFF})
	assert.NoError(t, err)
	assert.False(t, collision)
	assert.True(t, d.Pixel(62, 0))
	assert.True(t, d.Pixel(63, 0))
	assert.False(t, d.Pixel(0, 0))
	assert.Equal(t, 2, presenter.setPixels)

	// Vertical clip: rows past the bottom edge are skipped entirely.
	_, err = d.DrawSprite(0, 30, []byte{0x80, 0x80, 0x80, 0x80})
	assert.NoError(t, err)
	assert.True(t, d.Pixel(0, 30))
	assert.True(t, d.Pixel(0, 31))
	assert.False(t, d.Pixel(0, 0))
	assert.False(t, d.Pixel(0, 1))
}
