package domain

// Index is the persisted state of a source directory.
// Files holds the canonical paths of every processed source file in the
// order they were recorded. Pages holds every extracted page text in
// append order; a page's position is its identifier.
//
// A file yielding zero pages is still recorded, so there is no fixed
// relation between len(Files) and len(Pages).
type Index struct {
	Files []string
	Pages []string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Files: []string{},
		Pages: []string{},
	}
}

// HasFile reports whether path has already been recorded.
func (ix *Index) HasFile(path string) bool {
	for _, f := range ix.Files {
		if f == path {
			return true
		}
	}
	return false
}

// AddFile appends pages and then records path.
// It is a no-op returning false when path is already recorded.
func (ix *Index) AddFile(path string, pages []string) bool {
	if ix.HasFile(path) {
		return false
	}
	ix.Pages = append(ix.Pages, pages...)
	ix.Files = append(ix.Files, path)
	return true
}

// Truncate drops every file and page recorded after the first files files
// and pages pages. It undoes AddFile calls that could not be persisted.
func (ix *Index) Truncate(files, pages int) {
	if files < len(ix.Files) {
		ix.Files = ix.Files[:files]
	}
	if pages < len(ix.Pages) {
		ix.Pages = ix.Pages[:pages]
	}
}

// Clone returns a deep copy that shares no backing arrays with ix.
func (ix *Index) Clone() *Index {
	out := &Index{
		Files: make([]string, len(ix.Files)),
		Pages: make([]string, len(ix.Pages)),
	}
	copy(out.Files, ix.Files)
	copy(out.Pages, ix.Pages)
	return out
}

// PageCount returns the number of pages in the index.
func (ix *Index) PageCount() int {
	return len(ix.Pages)
}

// FileCount returns the number of recorded source files.
func (ix *Index) FileCount() int {
	return len(ix.Files)
}
