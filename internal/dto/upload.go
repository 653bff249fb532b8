package dto

import "io"

// FileUpload is a file received from a multipart form.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}
