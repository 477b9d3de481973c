package ingest

// Document is a source file read into memory as ordered lines.
// Lines carry no trailing newline.
type Document struct {
	Path     string
	Encoding string
	Lines    []string
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}
