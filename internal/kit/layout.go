package kit

import (
	"fmt"

	"github.com/mrmateussiilva/petstory/internal/models"
)

// StickerCells is the size of the 3x3 sticker grid.
const StickerCells = 9

type PageKind string

const (
	PageCover     PageKind = "cover"
	PageBiography PageKind = "biography"
	PageColoring  PageKind = "coloring"
	PageStickers  PageKind = "stickers"
)

// Page is one page of the kit. Artifacts holds positions in the artifact list
// given to PlanLayout.
type Page struct {
	Kind      PageKind
	Title     string
	Number    int
	Artifacts []int
}

type Layout struct {
	Pages []Page
}

func (l Layout) PagesOf(kind PageKind) []Page {
	var out []Page
	for _, p := range l.Pages {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// PlanLayout decides the page sequence for the kit.
//
// The cover uses the first successful artifact, the biography page follows, then
// one coloring page per success in input order, and finally the sticker grid,
// filled by cycling through the successes. With more than nine successes the
// grid takes the first nine.
func PlanLayout(artifacts []models.Artifact, petName string) (Layout, error) {
	var successes []int
	for i, a := range artifacts {
		if a.Succeeded() {
			successes = append(successes, i)
		}
	}
	if len(successes) == 0 {
		return Layout{}, &models.AssemblyError{Reason: "at least one generated art image is required"}
	}

	pages := make([]Page, 0, len(successes)+3)
	pages = append(pages,
		Page{Kind: PageCover, Title: fmt.Sprintf("A história de %s", petName), Artifacts: []int{successes[0]}},
		Page{Kind: PageBiography, Title: petName},
	)

	for n, idx := range successes {
		pages = append(pages, Page{
			Kind:      PageColoring,
			Title:     fmt.Sprintf("Página para colorir %d", n+1),
			Number:    n + 1,
			Artifacts: []int{idx},
		})
	}

	cells := make([]int, StickerCells)
	for i := range cells {
		cells[i] = successes[i%len(successes)]
	}
	pages = append(pages, Page{Kind: PageStickers, Title: fmt.Sprintf("Adesivos de %s", petName), Artifacts: cells})

	return Layout{Pages: pages}, nil
}
