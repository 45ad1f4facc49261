package kit

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/mrmateussiilva/petstory/internal/imaging"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	marginMM     = 10.0
	insetSideMM  = 90.0
)

// Input is everything the kit is built from.
type Input struct {
	PetName       string
	PetDate       string
	Story         string
	OriginalPhoto []byte
	Artifacts     []models.Artifact
}

// Document is the rendered kit together with the plan it was rendered from.
type Document struct {
	Layout Layout
	PDF    []byte
}

type Builder struct {
	Clock func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{Clock: time.Now}
}

// Build plans and renders the kit as an A4 PDF. Every failure is an
// *models.AssemblyError.
func (b *Builder) Build(in Input) (*Document, error) {
	layout, err := PlanLayout(in.Artifacts, in.PetName)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	pdf.SetCreationDate(b.Clock())
	pdf.SetTitle("Kit Digital - "+in.PetName, true)
	pdf.SetAuthor("PetStory", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r := &renderer{pdf: pdf, tr: tr, in: in}
	for _, page := range layout.Pages {
		if err := r.render(page); err != nil {
			return nil, &models.AssemblyError{Reason: fmt.Sprintf("rendering %s page", page.Kind), Err: err}
		}
		if err := pdf.Error(); err != nil {
			return nil, &models.AssemblyError{Reason: fmt.Sprintf("rendering %s page", page.Kind), Err: err}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &models.AssemblyError{Reason: "writing pdf", Err: err}
	}

	logrus.WithField("pet", in.PetName).Infof("kit assembled: %d pages, %d bytes", pdf.PageCount(), buf.Len())
	return &Document{Layout: layout, PDF: buf.Bytes()}, nil
}

type renderer struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	in     Input
	images int
}

func (r *renderer) render(page Page) error {
	switch page.Kind {
	case PageCover:
		return r.cover(page)
	case PageBiography:
		return r.biography(page)
	case PageColoring:
		return r.coloring(page)
	case PageStickers:
		return r.stickers(page)
	default:
		return fmt.Errorf("unknown page kind %q", page.Kind)
	}
}

func (r *renderer) cover(page Page) error {
	r.pdf.AddPage()
	r.pdf.SetFont("Helvetica", "B", 28)
	r.pdf.SetY(18)
	r.pdf.CellFormat(0, 14, r.tr(SanitizeText(page.Title)), "", 1, "C", false, 0, "")
	return r.placeArtifact(page.Artifacts[0], marginMM, 40, pageWidthMM-2*marginMM, pageHeightMM-40-marginMM-6)
}

func (r *renderer) biography(page Page) error {
	r.pdf.AddPage()
	r.pdf.SetFont("Helvetica", "B", 24)
	r.pdf.SetY(18)
	r.pdf.CellFormat(0, 12, r.tr(SanitizeText(page.Title)), "", 1, "C", false, 0, "")

	if date := SanitizeText(r.in.PetDate); date != "" {
		r.pdf.SetFont("Helvetica", "I", 14)
		r.pdf.CellFormat(0, 8, r.tr(date), "", 1, "C", false, 0, "")
	}

	y := r.pdf.GetY() + 6
	if w, h, ok := r.placeInset(y); ok {
		r.pdf.SetLineWidth(0.8)
		r.pdf.Rect((pageWidthMM-w)/2-2, y-2, w+4, h+4, "D")
		y += h + 10
	}

	r.pdf.SetY(y)
	r.pdf.SetFont("Helvetica", "", 12)
	r.pdf.MultiCell(0, 6.5, r.tr(SanitizeText(r.in.Story)), "", "J", false)
	return nil
}

// placeInset draws the first original photo centered at y. A photo that cannot
// be decoded is left out.
func (r *renderer) placeInset(y float64) (float64, float64, bool) {
	if len(r.in.OriginalPhoto) == 0 {
		return 0, 0, false
	}
	data, err := imaging.Normalize(r.in.OriginalPhoto, 1200)
	if err != nil {
		logrus.Warnf("biography photo skipped: %v", err)
		return 0, 0, false
	}
	name := r.register(data)
	info := r.pdf.GetImageInfo(name)
	if info == nil {
		return 0, 0, false
	}
	w, h := fit(info.Width(), info.Height(), insetSideMM, insetSideMM)
	r.pdf.ImageOptions(name, (pageWidthMM-w)/2, y, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return w, h, true
}

func (r *renderer) coloring(page Page) error {
	r.pdf.AddPage()
	if err := r.placeArtifact(page.Artifacts[0], marginMM, marginMM, pageWidthMM-2*marginMM, pageHeightMM-2*marginMM-14); err != nil {
		return err
	}
	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.SetXY(marginMM, pageHeightMM-marginMM-10)
	r.pdf.CellFormat(0, 6, r.tr(fmt.Sprintf("%d", page.Number)), "", 0, "C", false, 0, "")
	return nil
}

func (r *renderer) stickers(page Page) error {
	cells := make([]image.Image, len(page.Artifacts))
	for i, idx := range page.Artifacts {
		img, _, err := imaging.Decode(r.in.Artifacts[idx].Image)
		if err != nil {
			return fmt.Errorf("sticker %d: %w", i+1, err)
		}
		cells[i] = img
	}

	sheet, err := ComposeStickerSheet(cells, r.in.PetName)
	if err != nil {
		return err
	}
	data, err := imaging.EncodePNG(sheet)
	if err != nil {
		return err
	}

	r.pdf.AddPage()
	r.pdf.SetFont("Helvetica", "B", 22)
	r.pdf.SetY(16)
	r.pdf.CellFormat(0, 12, r.tr(SanitizeText(page.Title)), "", 1, "C", false, 0, "")
	return r.placeImage(r.register(data), marginMM, 34, pageWidthMM-2*marginMM, pageHeightMM-34-marginMM-6)
}

func (r *renderer) placeArtifact(idx int, x, y, w, h float64) error {
	if idx < 0 || idx >= len(r.in.Artifacts) {
		return fmt.Errorf("artifact %d out of range", idx)
	}
	art := r.in.Artifacts[idx]
	if len(art.Image) == 0 {
		return fmt.Errorf("artifact %d has no image", idx)
	}
	return r.placeImage(r.register(art.Image), x, y, w, h)
}

// placeImage draws a registered image centered in the box, preserving its
// aspect ratio.
func (r *renderer) placeImage(name string, x, y, w, h float64) error {
	info := r.pdf.GetImageInfo(name)
	if info == nil {
		if err := r.pdf.Error(); err != nil {
			return err
		}
		return fmt.Errorf("image %s not registered", name)
	}
	iw, ih := fit(info.Width(), info.Height(), w, h)
	r.pdf.ImageOptions(name, x+(w-iw)/2, y+(h-ih)/2, iw, ih, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return r.pdf.Error()
}

func (r *renderer) register(data []byte) string {
	r.images++
	name := fmt.Sprintf("img%d", r.images)
	r.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
	return name
}

func fit(srcW, srcH, boxW, boxH float64) (float64, float64) {
	if srcW <= 0 || srcH <= 0 {
		return boxW, boxH
	}
	scale := boxW / srcW
	if s := boxH / srcH; s < scale {
		scale = s
	}
	return srcW * scale, srcH * scale
}
