package domain

// SkippedFile records a source file whose extraction failed during refresh.
type SkippedFile struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// RefreshReport summarises a refresh of a source directory.
type RefreshReport struct {
	// Added lists files recorded by this refresh, in processing order.
	Added []string `json:"added" yaml:"added"`

	// Skipped lists files whose extraction failed. They stay unrecorded
	// and are retried by the next refresh.
	Skipped []SkippedFile `json:"skipped" yaml:"skipped"`

	// PagesAdded is the number of pages appended by this refresh.
	PagesAdded int `json:"pages_added" yaml:"pages_added"`
}

// Changed reports whether the refresh recorded anything new.
func (r *RefreshReport) Changed() bool {
	return len(r.Added) > 0
}

// IndexStatus describes the persisted index of a source directory.
type IndexStatus struct {
	RunID     string `json:"run_id" yaml:"run_id"`
	Directory string `json:"directory" yaml:"directory"`
	IndexPath string `json:"index_path" yaml:"index_path"`
	Backend   string `json:"backend" yaml:"backend"`
	Files     int    `json:"files" yaml:"files"`
	Pages     int    `json:"pages" yaml:"pages"`
}
