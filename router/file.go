// Copyright 2026 The Nino Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// File is an uploaded multipart file kept as an opaque blob in the decoded
// request body. It wraps multipart.FileHeader with a sanitized name.
//
//	file := c.FormFile("avatar")
//	if file == nil {
//	    return router.JSON(http.StatusBadRequest, router.H{"error": "avatar required"}), nil
//	}
//	if err := file.Save("./uploads/" + file.Name); err != nil {
//	    return nil, err
//	}
type File struct {
	// Name is the original filename with any directory components removed,
	// so it cannot be used for path traversal.
	Name string

	// Size is the file size in bytes.
	Size int64

	// ContentType is the MIME type declared by the client, defaulting to
	// application/octet-stream.
	ContentType string

	header *multipart.FileHeader
}

// newFile wraps a multipart.FileHeader, sanitizing the filename.
func newFile(fh *multipart.FileHeader) *File {
	name := filepath.Base(fh.Filename)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &File{Name: name, Size: fh.Size, ContentType: contentType, header: fh}
}

// Bytes reads the entire file into memory. Prefer Open for large files.
func (f *File) Bytes() ([]byte, error) {
	src, err := f.header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()
	return io.ReadAll(src)
}

// Open returns a reader over the file contents. The caller must close it.
func (f *File) Open() (io.ReadCloser, error) {
	src, err := f.header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	return src, nil
}

// Save writes the file to dst, creating parent directories as needed.
// The destination is cleaned, but callers should still confirm it lies
// within their intended upload directory.
func (f *File) Save(dst string) (err error) {
	dst = filepath.Clean(dst)

	src, err := f.header.Open()
	if err != nil {
		return fmt.Errorf("open uploaded file: %w", err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close uploaded file: %w", cerr)
		}
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create upload directory: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer func() {
		// Close can fail while flushing buffered data; the file may be
		// incomplete even though the copy succeeded.
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close destination file: %w", cerr)
		}
	}()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("write destination file: %w", err)
	}
	return nil
}

// Ext returns the file extension including the dot, or "".
func (f *File) Ext() string {
	return filepath.Ext(f.Name)
}
