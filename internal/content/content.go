// Package content loads page data that is fixed when the site is built, such
// as the related-links panel of the not-found page.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vilaca/docs-pages/internal/domain"
)

//go:embed home.yaml
var defaultHome []byte

// Home mirrors the home page data document.
type Home struct {
	NotFoundLinks domain.LinkPanel `yaml:"fourohfourlinks"`
}

// Load reads the home data from path, or the embedded default when path is empty.
func Load(path string) (*Home, error) {
	data := defaultHome
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read page data %s: %w", path, err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates a home data document.
func Parse(data []byte) (*Home, error) {
	var home Home
	if err := yaml.Unmarshal(data, &home); err != nil {
		return nil, fmt.Errorf("parse page data: %w", err)
	}

	if err := validator.New().Struct(home); err != nil {
		return nil, fmt.Errorf("invalid page data: %w", err)
	}

	return &home, nil
}
