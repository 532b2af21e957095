package models

import "time"

// SourceType identifies which connector backs a source.
type SourceType string

const (
	SourceTypeFilesystem SourceType = "filesystem"
	SourceTypeURL        SourceType = "url"
	SourceTypeIFinder    SourceType = "ifinder"
	SourceTypePage       SourceType = "page"
)

// SourceTypes lists every connector type the service knows about.
func SourceTypes() []SourceType {
	return []SourceType{SourceTypeFilesystem, SourceTypeURL, SourceTypeIFinder, SourceTypePage}
}

// Source is a content source the hub indexes. The Config blob is
// type-specific and validated against the schema registered for the type.
type Source struct {
	ID          string         `json:"id"`
	Type        SourceType     `json:"type"        validate:"required,oneof=filesystem url ifinder page"`
	Name        LocalizedText  `json:"name"        validate:"required"`
	Description LocalizedText  `json:"description,omitempty"`
	Config      map[string]any `json:"config"`
	Enabled     bool           `json:"enabled"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (s *Source) Validate() error {
	return s.Name.Validate()
}
