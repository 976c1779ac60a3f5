package extractors

import (
	"github.com/custodia-labs/split-engine/internal/extractors/docx"
	"github.com/custodia-labs/split-engine/internal/extractors/plaintext"
	"github.com/custodia-labs/split-engine/internal/extractors/subtitle"
	"github.com/custodia-labs/split-engine/internal/logger"
)

// RegisterDefaults registers the built-in extractors, then marks every
// extension in disabled as unavailable.
func RegisterDefaults(r *Registry, disabled []string) {
	r.Register(plaintext.New())
	r.Register(docx.New())
	r.Register(subtitle.NewSRT())
	r.Register(subtitle.NewVTT())

	for _, ext := range disabled {
		logger.Info("Extractor for %s disabled by configuration", normalise(ext))
		r.MarkUnavailable(ext, "disabled by configuration")
	}
}

// NewDefaultRegistry builds a registry with the built-in extractors.
func NewDefaultRegistry(disabled []string) *Registry {
	r := NewRegistry()
	RegisterDefaults(r, disabled)
	return r
}
