package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// defaultFontSize is the default font size in virtual units.
const defaultFontSize = 14.0

// lineHeightFactor is the line height as a multiple of the font size.
const lineHeightFactor = 1.2

// TextRendererInterface defines the interface for text rendering.
// This allows for mocking in tests.
type TextRendererInterface interface {
	DrawText(dst *ebiten.Image, textStr string, x, y float64, clr color.RGBA)
	MeasureText(textStr string) (width, height float64)
	LineHeight() float64
	SetFontSize(size float64)
	FontSize() float64
}

// TextRenderer handles text rendering using Ebiten's text package.
type TextRenderer struct {
	fontSource *text.GoTextFaceSource
	fontSize   float64
	mu         sync.RWMutex
}

// NewTextRenderer creates a new TextRenderer with the embedded Go Mono Bold font.
func NewTextRenderer() *TextRenderer {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	if err != nil {
		// The font is compiled in; failure means a broken build.
		panic("failed to load embedded font: " + err.Error())
	}

	return &TextRenderer{
		fontSource: fontSource,
		fontSize:   defaultFontSize,
	}
}

// SetFontSize sets the font size for text rendering. Non-positive sizes
// reset to the default.
func (tr *TextRenderer) SetFontSize(size float64) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if size <= 0 {
		size = defaultFontSize
	}
	tr.fontSize = size
}

// FontSize returns the current font size.
func (tr *TextRenderer) FontSize() float64 {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.fontSize
}

func (tr *TextRenderer) face() *text.GoTextFace {
	return &text.GoTextFace{Source: tr.fontSource, Size: tr.fontSize}
}

// DrawText renders text with its top-left corner at (x, y).
func (tr *TextRenderer) DrawText(dst *ebiten.Image, textStr string, x, y float64, clr color.RGBA) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = tr.fontSize * lineHeightFactor

	text.Draw(dst, textStr, tr.face(), op)
}

// MeasureText returns the width and height of the given text string.
func (tr *TextRenderer) MeasureText(textStr string) (width, height float64) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return text.Measure(textStr, tr.face(), tr.fontSize*lineHeightFactor)
}

// LineHeight returns the height of a single line of text.
func (tr *TextRenderer) LineHeight() float64 {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.fontSize * lineHeightFactor
}

// TextNode draws a list of HUD lines inside the content root.
type TextNode struct {
	renderer TextRendererInterface
	mu       sync.RWMutex
	lines    []TextLine
}

// NewTextNode creates an empty TextNode drawing with renderer.
func NewTextNode(renderer TextRendererInterface) *TextNode {
	return &TextNode{renderer: renderer}
}

// SetLines replaces the lines to draw.
func (tn *TextNode) SetLines(lines []TextLine) {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.lines = make([]TextLine, len(lines))
	copy(tn.lines, lines)
}

// AddLine appends a single line.
func (tn *TextNode) AddLine(line TextLine) {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.lines = append(tn.lines, line)
}

// ClearLines removes all lines.
func (tn *TextNode) ClearLines() {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.lines = tn.lines[:0]
}

// Lines returns a copy of the current lines.
func (tn *TextNode) Lines() []TextLine {
	tn.mu.RLock()
	defer tn.mu.RUnlock()
	out := make([]TextLine, len(tn.lines))
	copy(out, tn.lines)
	return out
}

// Draw implements Node.
func (tn *TextNode) Draw(dst *ebiten.Image) {
	tn.mu.RLock()
	defer tn.mu.RUnlock()
	for _, line := range tn.lines {
		tn.renderer.DrawText(dst, line.Text, line.X, line.Y, line.Color)
	}
}

// LayoutLines turns template strings into TextLines stacked from (x, y).
func LayoutLines(template []string, x, y, lineHeight float64, clr color.RGBA) []TextLine {
	lines := make([]TextLine, 0, len(template))
	for _, s := range template {
		lines = append(lines, TextLine{Text: s, X: x, Y: y, Color: clr})
		y += lineHeight
	}
	return lines
}

// StatsNode prints the applied scale and surface size in the bottom-left
// corner of the content root.
type StatsNode struct {
	renderer TextRendererInterface
	source   func() (aspect.Result, bool)
	color    color.RGBA
}

// NewStatsNode creates a StatsNode that reads results from source.
func NewStatsNode(renderer TextRendererInterface, source func() (aspect.Result, bool), clr color.RGBA) *StatsNode {
	return &StatsNode{renderer: renderer, source: source, color: clr}
}

// Text returns the line the node would draw, or "" if no result is applied yet.
func (sn *StatsNode) Text() string {
	r, ok := sn.source()
	if !ok {
		return ""
	}
	return fmt.Sprintf("scale %.3f  surface %s  virtual %s  %s-bound",
		r.Scale, r.Surface, r.Resolution, r.ConstrainingAxis())
}

// Draw implements Node.
func (sn *StatsNode) Draw(dst *ebiten.Image) {
	s := sn.Text()
	if s == "" {
		return
	}
	h := float64(dst.Bounds().Dy())
	sn.renderer.DrawText(dst, s, 4, h-sn.renderer.LineHeight()-4, sn.color)
}
