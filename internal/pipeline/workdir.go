package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/mrmateussiilva/petstory/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxSlugLength     = 50
	orderDirLayout    = "20060102_150405"
	maxDirAttempts    = 1000
	emailSlugFallback = "cliente"
	petSlugFallback   = "pet"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	stripMarks   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

func slugify(s, fallback string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		folded = strings.ToLower(s)
	}
	slug := strings.Trim(nonSlugChars.ReplaceAllString(folded, "-"), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return fallback
	}
	return slug
}

// EmailSlug turns "Ana.Maria@example.com" into "ana-maria-example-com".
func EmailSlug(email string) string {
	return slugify(email, emailSlugFallback)
}

// PetSlug turns "Pão de Mel" into "pao-de-mel".
func PetSlug(name string) string {
	return slugify(name, petSlugFallback)
}

// CreateOrderDir creates <base>/<email-slug>/<pet-slug>_<timestamp>. When the
// directory already exists a -2, -3, ... suffix is appended, so two orders never
// share a directory.
func CreateOrderDir(base string, key models.OrderKey, at time.Time) (string, error) {
	parent := filepath.Join(base, EmailSlug(key.Email))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf("failed to create customer directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", PetSlug(key.PetName), at.Format(orderDirLayout))
	for attempt := 1; attempt <= maxDirAttempts; attempt++ {
		candidate := name
		if attempt > 1 {
			candidate = fmt.Sprintf("%s-%d", name, attempt)
		}
		dir := filepath.Join(parent, candidate)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to create order directory: %w", err)
		}
	}
	return "", fmt.Errorf("no free order directory for %s under %s", name, parent)
}
