package mapview

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

// ViewBox matches the source geography the path data was drawn in.
const ViewBox = "0 0 239.05701 217.31789"

// GeoViewBox is the lon/lat extent of ViewBox.
const GeoViewBox = "-25.360994 37.343521 59.838547 -34.833225"

var svgTemplate = template.Must(template.New("svg").Funcs(template.FuncMap{
	"join": func(tags []string) string { return strings.Join(tags, ",") },
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:svg="http://www.w3.org/2000/svg" xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:cc="http://creativecommons.org/ns#" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:mapsvg="http://mapsvg.com" mapsvg:geoViewBox="{{.GeoViewBox}}" viewBox="{{.ViewBox}}" preserveAspectRatio="xMidYMid meet" version="1.1" id="africa-map" class="africa-map" style="width:100%;height:100%">
<g class="map-group">
{{- range .Shapes}}
<path class="country-path{{if .Active}} active{{end}}" d="{{.D}}" data-country-code="{{.Code}}" data-category="{{.Category}}" data-tags="{{join .Tags}}" title="{{.Title}}" style="fill:{{.Fill}}"></path>
{{- end}}
</g>
</svg>`))

// RenderSVG writes the map document with one path per country in its
// current state.
func (r *Renderer) RenderSVG(w io.Writer) error {
	shapes := make([]Shape, len(r.shapes))
	for i, s := range r.shapes {
		shapes[i] = *s
	}
	data := struct {
		ViewBox    string
		GeoViewBox string
		Shapes     []Shape
	}{ViewBox, GeoViewBox, shapes}
	if err := svgTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering svg: %w", err)
	}
	return nil
}

// SVG returns RenderSVG's output for embedding in a page.
func (r *Renderer) SVG() (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.RenderSVG(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
