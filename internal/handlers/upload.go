package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
)

// readUpload loads an uploaded part fully into memory. The body size is
// already bounded by the server's BodyLimit.
func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return data, nil
}
