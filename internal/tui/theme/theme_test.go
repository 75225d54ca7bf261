package theme

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b uint8
	}{
		{"#cba6f7", 0xcb, 0xa6, 0xf7},
		{"1e1e2e", 0x1e, 0x1e, 0x2e},
		{"#fff", 0, 0, 0},
		{"#zzzzzz", 0, 0, 0},
		{"", 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			r, g, b := ParseHexColor(tc.in)
			assert.Equal(t, []uint8{tc.r, tc.g, tc.b}, []uint8{r, g, b})
		})
	}
}

func TestHexToColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xa6, G: 0xe3, B: 0xa1, A: 0xff}, HexToColor("#a6e3a1"))
}

func TestCurrent_DefaultsToMocha(t *testing.T) {
	th := Current()
	require.NotNil(t, th)
	assert.Equal(t, "catppuccin-mocha", th.Name)
	assert.Same(t, th.S(), th.S(), "styles must be built once")
}

func TestSetCurrent(t *testing.T) {
	prev := Current()
	t.Cleanup(func() { SetCurrent(prev) })

	custom := &Theme{Name: "custom", Primary: "#000000"}
	SetCurrent(custom)
	assert.Same(t, custom, Current())

	SetCurrent(nil)
	assert.Same(t, custom, Current())
}
