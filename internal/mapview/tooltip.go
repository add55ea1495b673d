package mapview

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/ziadkadry99/malabomap/internal/atlas"
)

// tooltipOffset is the gap between the cursor and the tooltip, in pixels.
const tooltipOffset = 15

// Pointer is the cursor position and the sizes needed to keep the tooltip
// on screen. TipWidth and TipHeight are the tooltip's last measured size.
type Pointer struct {
	X          float64
	Y          float64
	ViewWidth  float64
	ViewHeight float64
	TipWidth   float64
	TipHeight  float64
}

// Position places the tooltip below and to the right of the cursor,
// flipping to the other side on any axis where it would overflow the
// viewport. A zero viewport dimension disables flipping on that axis.
func Position(p Pointer) (left, top float64) {
	left = p.X + tooltipOffset
	if p.ViewWidth > 0 && p.X+p.TipWidth+tooltipOffset > p.ViewWidth {
		left = p.X - p.TipWidth - tooltipOffset
	}
	top = p.Y + tooltipOffset
	if p.ViewHeight > 0 && p.Y+p.TipHeight+tooltipOffset > p.ViewHeight {
		top = p.Y - p.TipHeight - tooltipOffset
	}
	return left, top
}

var tooltipTemplate = template.Must(template.New("tooltip").Parse(
	`<h3>{{.Name}}</h3><p><strong>Status:</strong> {{.Status}}</p>` +
		`{{if .Strategies}}<p><strong>Strategies:</strong> {{.Strategies}}</p>{{end}}`))

func (r *Renderer) tooltipContent(code string) template.HTML {
	c := r.ds.Countries[code]
	data := struct {
		Name       string
		Status     string
		Strategies string
	}{
		Name:       c.Name,
		Status:     r.ds.CategoryLabel(atlas.DetermineCategory(c)),
		Strategies: strings.Join(r.ds.TagLabels(c.Tags), ", "),
	}
	var buf bytes.Buffer
	// The template only formats strings, so Execute cannot fail.
	_ = tooltipTemplate.Execute(&buf, data)
	return template.HTML(buf.String())
}

func (r *Renderer) showTooltip(content template.HTML, p Pointer) {
	r.pointer = p
	left, top := Position(p)
	r.tooltip = Tooltip{Visible: true, Left: left, Top: top, Content: content}
}

// MeasureTooltip records the size the page measured for the visible
// tooltip and places it again, so it flips away from the viewport edge
// by its rendered size. It does nothing while the tooltip is hidden.
func (r *Renderer) MeasureTooltip(width, height float64) {
	if !r.tooltip.Visible {
		return
	}
	r.pointer.TipWidth, r.pointer.TipHeight = width, height
	r.tooltip.Left, r.tooltip.Top = Position(r.pointer)
}

func (r *Renderer) hideTooltip() {
	r.tooltip.Visible = false
}

// Tooltip returns the current tooltip state.
func (r *Renderer) Tooltip() Tooltip { return r.tooltip }
