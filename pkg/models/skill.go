package models

import "time"

// Skill is an installable capability package. Skills arrive as zip
// packages containing a manifest.json plus assets; only the manifest
// metadata is modeled here.
type Skill struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"        validate:"required"`
	Description LocalizedText `json:"description,omitempty"`
	Version     string        `json:"version"     validate:"required"`
	Author      string        `json:"author,omitempty"`
	InstalledAt time.Time     `json:"installed_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// SkillManifest is the manifest.json carried inside a skill package.
type SkillManifest struct {
	ID          string        `json:"id"          validate:"required"`
	Name        LocalizedText `json:"name"        validate:"required"`
	Description LocalizedText `json:"description,omitempty"`
	Version     string        `json:"version"     validate:"required"`
	Author      string        `json:"author,omitempty"`
}
