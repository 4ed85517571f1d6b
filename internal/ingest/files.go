package ingest

import (
	"io"
	"mime/multipart"

	"mailmerge/backend/internal/core"
)

// multipartFile adapts a *multipart.FileHeader to the engine's file
// capability contract.
type multipartFile struct {
	fh *multipart.FileHeader
}

func (f multipartFile) Name() string { return f.fh.Filename }
func (f multipartFile) Size() int64  { return f.fh.Size }

func (f multipartFile) Open() (io.ReadCloser, error) {
	return f.fh.Open()
}

// FromMultipart wraps uploaded file headers as engine files and collects
// their declared content types by filename. A missing Content-Type part
// header simply leaves the filename out of the map; the engine treats the
// type as undeclared.
func FromMultipart(headers []*multipart.FileHeader) ([]core.File, map[string]string) {
	files := make([]core.File, 0, len(headers))
	contentTypes := make(map[string]string, len(headers))

	for _, fh := range headers {
		files = append(files, multipartFile{fh: fh})
		if ct := fh.Header.Get("Content-Type"); ct != "" {
			contentTypes[fh.Filename] = ct
		}
	}

	return files, contentTypes
}
