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
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// staticCacheControl is the cache policy applied to file responses unless
// the caller sets its own Cache-Control header.
const staticCacheControl = "public, max-age=3600"

// mimeByExtension is the fixed extension → MIME table used for file
// responses and static serving. Extensions not listed fall back to the
// platform MIME database and finally to application/octet-stream.
var mimeByExtension = map[string]string{
	".html":  "text/html; charset=utf-8",
	".htm":   "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "text/javascript; charset=utf-8",
	".mjs":   "text/javascript; charset=utf-8",
	".json":  "application/json",
	".xml":   "application/xml",
	".txt":   "text/plain; charset=utf-8",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".pdf":   "application/pdf",
	".wasm":  "application/wasm",
	".map":   "application/json",
}

// contentTypeForFile resolves the content type for a file path from the
// fixed table, the platform database, then application/octet-stream.
func contentTypeForFile(path string) string {
	ext := filepath.Ext(path)
	if ct, ok := mimeByExtension[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// materialize writes an abstract response to the transport. Defaults (the
// Server marker, derived content types, cache headers) are applied first
// and caller-supplied headers always overwrite them.
//
// Encoding and file-open failures are returned before anything is written,
// so the shell can still send a clean error response. Copy failures after
// the header flush can only be logged.
func (r *Router) materialize(w http.ResponseWriter, res *Response) error {
	h := w.Header()
	h.Set("Server", r.serverHeader)

	switch res.kind {
	case bodyJSON:
		buf, err := json.Marshal(res.value)
		if err != nil {
			return fmt.Errorf("encode JSON response: %w", err)
		}
		h.Set("Content-Type", "application/json")
		applyHeaders(h, res.Header)
		w.WriteHeader(res.Status)
		_, err = w.Write(buf)
		return err

	case bodyYAML:
		buf, err := yaml.Marshal(res.value)
		if err != nil {
			return fmt.Errorf("encode YAML response: %w", err)
		}
		h.Set("Content-Type", "application/yaml")
		applyHeaders(h, res.Header)
		w.WriteHeader(res.Status)
		_, err = w.Write(buf)
		return err

	case bodyData:
		if res.contentType != "" {
			h.Set("Content-Type", res.contentType)
		}
		applyHeaders(h, res.Header)
		w.WriteHeader(res.Status)
		_, err := w.Write(res.data)
		return err

	case bodyFile:
		f, err := os.Open(res.filePath)
		if err != nil {
			return fmt.Errorf("open response file %q: %w", res.filePath, err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat response file %q: %w", res.filePath, err)
		}
		if info.IsDir() {
			return fmt.Errorf("open response file %q: %w", res.filePath, os.ErrNotExist)
		}

		h.Set("Content-Type", contentTypeForFile(res.filePath))
		h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
		h.Set("Cache-Control", staticCacheControl)
		applyHeaders(h, res.Header)
		w.WriteHeader(res.Status)
		if _, err := io.Copy(w, f); err != nil {
			r.logger.Warn("failed to stream file response", "path", res.filePath, "error", err)
		}
		return nil

	case bodyStream:
		if res.contentType != "" {
			h.Set("Content-Type", res.contentType)
		}
		applyHeaders(h, res.Header)
		w.WriteHeader(res.Status)
		if _, err := io.Copy(w, res.stream); err != nil {
			r.logger.Warn("failed to copy stream response", "error", err)
		}
		return nil

	default: // bodyNone
		applyHeaders(h, res.Header)
		w.WriteHeader(res.Status)
		return nil
	}
}

// applyHeaders copies caller-supplied headers over any defaults.
func applyHeaders(dst, src http.Header) {
	for key, values := range src {
		dst[http.CanonicalHeaderKey(key)] = values
	}
}
