package core

import (
	"encoding/base64"
	"fmt"
	"io"
)

// File is the capability contract for an uploaded file at the ingestion
// boundary: anything that can report a name and a size and be read into a
// byte sequence. multipart uploads, disk files and test fixtures all
// satisfy it without the engine knowing which runtime abstraction they
// came from.
type File interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// AttachmentEntry is one decoded upload. Content is the base64-encoded
// payload so it is transport-safe all the way to message composition.
// ContentType is empty when the source did not declare one. Filename is
// never empty. Entries are immutable once created.
type AttachmentEntry struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"contentType,omitempty"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// AttachmentIndex maps normalized keys to ordered buckets of attachment
// entries. Key collisions accumulate into the same bucket on purpose: it
// lets an operator batch-upload several files for the same person. Keys
// keep insertion order so reconciliation output is deterministic.
type AttachmentIndex struct {
	keys    []string
	buckets map[string][]AttachmentEntry
	total   int
}

// NewAttachmentIndex returns an empty index.
func NewAttachmentIndex() *AttachmentIndex {
	return &AttachmentIndex{buckets: make(map[string][]AttachmentEntry)}
}

// IngestResult reports one ingest call: how many entries were added and
// which filenames failed to decode.
type IngestResult struct {
	Added  int      `json:"added"`
	Failed []string `json:"failed,omitempty"`
}

// Ingest decodes each file into an AttachmentEntry and appends it to the
// bucket for the file's normalized base-name key. A decode failure or a
// filename that yields no key is collected into the result's Failed list
// and never aborts sibling files; partial success is the normal case, not
// an error state. contentTypes supplies the declared content type per
// filename and may be nil.
func (x *AttachmentIndex) Ingest(files []File, contentTypes map[string]string) IngestResult {
	var res IngestResult
	for _, f := range files {
		entry, err := decodeFile(f, contentTypes[f.Name()])
		if err != nil {
			res.Failed = append(res.Failed, f.Name())
			continue
		}
		key := attachmentKey(entry.Filename)
		if key == "" {
			res.Failed = append(res.Failed, f.Name())
			continue
		}
		x.add(key, entry)
		res.Added++
	}
	return res
}

// attachmentKey derives the index key for a filename: the normalized stem,
// or the normalized full filename when the stem is whitespace-only. A key
// is never the empty string for a non-blank filename, so a blank recipient
// name cell can never match an attachment.
func attachmentKey(filename string) string {
	key := Normalize(BaseName(filename))
	if key == "" {
		key = Normalize(filename)
	}
	return key
}

// Clear empties every bucket.
func (x *AttachmentIndex) Clear() {
	x.keys = nil
	x.buckets = make(map[string][]AttachmentEntry)
	x.total = 0
}

// Bucket returns the entries for a normalized key in upload order.
func (x *AttachmentIndex) Bucket(key string) []AttachmentEntry {
	return x.buckets[key]
}

// Keys returns the normalized keys in first-seen order.
func (x *AttachmentIndex) Keys() []string {
	return x.keys
}

// Total returns the number of entries across all buckets.
func (x *AttachmentIndex) Total() int {
	return x.total
}

func (x *AttachmentIndex) add(key string, entry AttachmentEntry) {
	if _, seen := x.buckets[key]; !seen {
		x.keys = append(x.keys, key)
	}
	x.buckets[key] = append(x.buckets[key], entry)
	x.total++
}

func decodeFile(f File, contentType string) (AttachmentEntry, error) {
	if f.Name() == "" {
		return AttachmentEntry{}, fmt.Errorf("decode upload: empty filename")
	}

	rc, err := f.Open()
	if err != nil {
		return AttachmentEntry{}, fmt.Errorf("decode upload %s: %w", f.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return AttachmentEntry{}, fmt.Errorf("decode upload %s: %w", f.Name(), err)
	}

	size := f.Size()
	if size <= 0 {
		size = int64(len(data))
	}

	return AttachmentEntry{
		Filename:    f.Name(),
		Content:     base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
		SizeBytes:   size,
	}, nil
}
