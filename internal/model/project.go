package model

import "time"

// ProjectView is the normalized shape of one tracked project, as consumed by
// the public frontend. Every field is always populated with a legal default,
// so callers never branch on absence. This is a pure domain model with no
// store-specific dependencies or tags.
type ProjectView struct {
	ProjectID   string         `json:"projectId"`
	ProjectName string         `json:"projectName"`
	Description string         `json:"description"`
	ClientName  string         `json:"clientName"`
	Status      string         `json:"status"`
	Timeline    *string        `json:"timeline"` // ISO date the project started, if set
	Email       string         `json:"email"`
	Documents   []DocumentLink `json:"documents"`
}

// DocumentLink is one shared attachment on a project.
type DocumentLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TimelineEntry is one free-text project update with its timestamp.
type TimelineEntry struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ProjectStatus is the aggregate payload for GET /project/:publicId.
// The json keys match what the static frontend destructures.
type ProjectStatus struct {
	Project  ProjectView     `json:"projectData"`
	Stages   []string        `json:"workflowStages"`
	Timeline []TimelineEntry `json:"comments"`
}
