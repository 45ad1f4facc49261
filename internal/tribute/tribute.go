package tribute

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/sirupsen/logrus"
)

//go:embed templates/tribute.html.tmpl
var templatesFS embed.FS

// Meta is the order metadata shown on the page.
type Meta struct {
	PetName string
	PetDate string
	Story   string
}

type Document struct {
	HTML []byte
}

type pageData struct {
	PetName    string
	PetDate    string
	Paragraphs []string
	Cover      template.URL
}

type Generator struct {
	tmpl *template.Template
}

func NewGenerator() (*Generator, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/tribute.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse tribute template: %w", err)
	}
	return &Generator{tmpl: tmpl}, nil
}

// Generate renders the tribute page. The first successful artifact is inlined as
// a data URI so the document has no external references.
func (g *Generator) Generate(meta Meta, artifacts []models.Artifact) (*Document, error) {
	successes := models.Successes(artifacts)
	if len(successes) == 0 {
		return nil, fmt.Errorf("tribute page needs a generated artwork")
	}

	data := pageData{
		PetName:    strings.TrimSpace(meta.PetName),
		PetDate:    strings.TrimSpace(meta.PetDate),
		Paragraphs: paragraphs(meta.Story),
		Cover:      dataURI(successes[0].Image),
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render tribute page: %w", err)
	}

	logrus.WithField("pet", data.PetName).Infof("tribute page generated: %d bytes", buf.Len())
	return &Document{HTML: buf.Bytes()}, nil
}

func dataURI(image []byte) template.URL {
	mime := http.DetectContentType(image)
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image))
}

func paragraphs(story string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(story, "\r\n", "\n"), "\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
