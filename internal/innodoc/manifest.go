package innodoc

import (
	"errors"
	"fmt"
	"os"

	"github.com/innodoc/innoconv-mintmod/internal/yamlutil"
)

// Manifest is the course-level manifest.yml. Titles are keyed by language.
type Manifest struct {
	Languages []string          `yaml:"languages"`
	Title     map[string]string `yaml:"title"`
}

// UpdateManifest records a language and its course title in the manifest at
// path, creating the file when it does not exist yet.
func UpdateManifest(path, lang, title string) error {
	manifest := Manifest{Title: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// strict parsing: a corrupt manifest must be reported, not
		// silently rewritten
		if err := yamlutil.UnmarshalStrict(data, &manifest); err != nil {
			return fmt.Errorf("parsing manifest: %w", err)
		}
		if manifest.Title == nil {
			manifest.Title = make(map[string]string)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("reading manifest: %w", err)
	}

	hasLang := false
	for _, l := range manifest.Languages {
		if l == lang {
			hasLang = true
			break
		}
	}
	if !hasLang {
		manifest.Languages = append(manifest.Languages, lang)
	}
	manifest.Title[lang] = title

	out, err := yamlutil.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
