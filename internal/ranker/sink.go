package ranker

import (
	"cardmeta/internal/catalog"
	"cardmeta/internal/fileutil"
)

// Sink persists a ranked record.
type Sink interface {
	Write(entry *catalog.Entry, data []byte) error
}

// FileSink rewrites each record at its source path.
type FileSink struct{}

func (FileSink) Write(entry *catalog.Entry, data []byte) error {
	return fileutil.WriteFileAtomic(entry.Path, data, 0o644)
}
