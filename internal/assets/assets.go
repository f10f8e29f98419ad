// Package assets holds embedded static files, currently the stylesheets
// for debug preview pages.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// DefaultStyleName is the stylesheet used for preview pages.
const DefaultStyleName = "preview"

// LoadStyle loads an embedded CSS style by name, without the .css
// extension.
func LoadStyle(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}
