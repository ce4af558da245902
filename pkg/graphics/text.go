package graphics

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextMetrics holds the measured extent of a run of text.
type TextMetrics struct {
	Size Size
	// Baseline is the distance from the top of the text box to the baseline
	// of the first line.
	Baseline float64
	Lines    int
}

// TextMeasurer measures text with a single font face.
type TextMeasurer struct {
	mu   sync.Mutex
	face font.Face
}

var (
	defaultMeasurer     *TextMeasurer
	defaultMeasurerOnce sync.Once
)

// NewTextMeasurer creates a measurer for the given face.
// A nil face selects the bundled 7x13 bitmap face.
func NewTextMeasurer(face font.Face) *TextMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &TextMeasurer{face: face}
}

// DefaultTextMeasurer returns a shared measurer using the bundled face.
func DefaultTextMeasurer() *TextMeasurer {
	defaultMeasurerOnce.Do(func() {
		defaultMeasurer = NewTextMeasurer(nil)
	})
	return defaultMeasurer
}

// Measure returns the metrics of text. Lines are split on '\n' and the
// widest line determines the width.
func (m *TextMeasurer) Measure(text string) TextMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.face.Metrics()
	lineHeight := float64(metrics.Height.Ceil())
	lines := strings.Split(text, "\n")

	var width float64
	for _, line := range lines {
		if w := float64(font.MeasureString(m.face, line).Ceil()); w > width {
			width = w
		}
	}
	return TextMetrics{
		Size:     Size{Width: width, Height: lineHeight * float64(len(lines))},
		Baseline: float64(metrics.Ascent.Ceil()),
		Lines:    len(lines),
	}
}

// MeasureText measures text with the default measurer.
func MeasureText(text string) TextMetrics {
	return DefaultTextMeasurer().Measure(text)
}
