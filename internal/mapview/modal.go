package mapview

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ziadkadry99/malabomap/internal/atlas"
)

// KeyEscape is the key name browsers report for the Escape key.
const KeyEscape = "Escape"

type modalSubSection struct {
	Heading string
	Content template.HTML
	Link    string
}

type modalSection struct {
	Heading     string
	Content     template.HTML
	SubSections []modalSubSection
}

var modalTemplate = template.Must(template.New("modal").Parse(
	`{{range .}}<div class="country-modal-section"><h3>{{.Heading}}</h3>{{.Content}}` +
		`{{range .SubSections}}<div class="country-modal-subsection"><h4>{{.Heading}}</h4>{{.Content}}` +
		`{{if .Link}}<a href="{{.Link}}" target="_blank" rel="noopener noreferrer" class="more-info-link">More Information →</a>{{end}}` +
		`</div>{{end}}</div>{{end}}`))

// ModalBody renders the detail body for code. Sections with neither
// content nor sub-sections are left out.
func (r *Renderer) ModalBody(code string) (template.HTML, error) {
	c, ok := r.ds.Country(code)
	if !ok {
		return "", fmt.Errorf("modal %q: %w", code, ErrUnknownCountry)
	}
	return r.renderSections(c.Sections)
}

func (r *Renderer) renderSections(sections []atlas.Section) (template.HTML, error) {
	var view []modalSection
	for _, s := range sections {
		if s.Empty() {
			continue
		}
		content, err := r.markdown(s.Content)
		if err != nil {
			return "", fmt.Errorf("section %q: %w", s.Heading, err)
		}
		ms := modalSection{Heading: s.Heading, Content: content}
		for _, sub := range s.SubSections {
			subContent, err := r.markdown(sub.Content)
			if err != nil {
				return "", fmt.Errorf("sub-section %q: %w", sub.Heading, err)
			}
			ms.SubSections = append(ms.SubSections, modalSubSection{
				Heading: sub.Heading,
				Content: subContent,
				Link:    sub.Link,
			})
		}
		view = append(view, ms)
	}

	var buf bytes.Buffer
	if err := modalTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("rendering modal: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) markdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.opts.Markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// ShowModal fills the modal with the country's sections. The modal becomes
// active on the next frame so the CSS transition always fires.
func (r *Renderer) ShowModal(code string) error {
	c, ok := r.ds.Country(code)
	if !ok {
		return fmt.Errorf("show %q: %w", code, ErrUnknownCountry)
	}
	body, err := r.renderSections(c.Sections)
	if err != nil {
		return err
	}
	r.modal.Code = code
	r.modal.Title = c.Name
	r.modal.Body = body
	r.nextFrame(func() { r.modal.Active = true })
	return nil
}

// HideModal closes the modal and clears the active state on every list
// item and shape.
func (r *Renderer) HideModal() {
	r.modal.Active = false
	r.frames = nil
	r.selected = ""
	r.clearActiveItems()
	r.clearActiveShapes()
}

// KeyDown handles a key press. Escape closes the modal only when it is open.
func (r *Renderer) KeyDown(key string) {
	if key == KeyEscape && r.modal.Active {
		r.HideModal()
	}
}

// Modal returns the current modal state.
func (r *Renderer) Modal() Modal { return r.modal }
