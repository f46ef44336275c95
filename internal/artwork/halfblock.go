package artwork

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HalfblockEncoder renders images as colored half-block glyphs. It is the
// fallback for terminals without a graphics protocol and keeps tests free of
// escape-sequence protocol details.
type HalfblockEncoder struct{}

var _ Encoder = HalfblockEncoder{}

// Encode samples the image down to one pixel per half cell and emits a
// width x height block of ▀ glyphs, upper half foreground, lower half
// background.
func (HalfblockEncoder) Encode(data []byte, width, height int) (string, error) {
	if width < 1 || height < 1 {
		return "", nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return "", fmt.Errorf("empty image")
	}

	sample := func(cx, cy int) lipgloss.Color {
		px := bounds.Min.X + cx*bounds.Dx()/width
		py := bounds.Min.Y + cy*bounds.Dy()/(height*2)
		r, g, b, _ := img.At(px, py).RGBA()
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			upper := sample(col, row*2)
			lower := sample(col, row*2+1)
			sb.WriteString(lipgloss.NewStyle().Foreground(upper).Background(lower).Render("▀"))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
