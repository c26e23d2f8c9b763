package models

import "time"

// Commit is one entry in the repository history handed to analyzers.
// Duplication detection works on the current snapshot only, but the shared
// analyzer contract passes the history to every analyzer uniformly.
type Commit struct {
	Hash      string    `json:"hash"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Files     []string  `json:"files,omitempty"`
}
