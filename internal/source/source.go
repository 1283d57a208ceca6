package source

import (
	"iter"
)

// Document is one candidate record file.
type Document struct {
	// Name is the display name, normally the file base name.
	Name string
	// Path is where the document was read from and where rewrites go.
	Path string
	// Data holds the file contents when Err is nil.
	Data []byte
	// Err reports a failure to read the document.
	Err error
}

// Source produces documents lazily.
type Source interface {
	// Documents yields every candidate document in enumeration order.
	Documents() iter.Seq[Document]
	// Count returns the number of candidate documents, or an error when the
	// source itself cannot be enumerated.
	Count() (int, error)
	// String describes the source for log lines.
	String() string
}

// Memory returns a source over fixed documents.
func Memory(docs ...Document) Source {
	return memorySource(docs)
}

type memorySource []Document

func (m memorySource) Documents() iter.Seq[Document] {
	return func(yield func(Document) bool) {
		for _, doc := range m {
			if !yield(doc) {
				return
			}
		}
	}
}

func (m memorySource) Count() (int, error) { return len(m), nil }

func (m memorySource) String() string { return "memory" }
