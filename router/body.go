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
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"gopkg.in/yaml.v3"
)

// defaultMultipartMemory bounds how much of a multipart body is held in
// memory before spilling to temporary files. Same default as net/http.
const defaultMultipartMemory = 32 << 20

// decodeBody reads and decodes the request body into c.Body according to
// the Content-Type header. Decoding is attempted only for methods that
// conventionally carry a body; a malformed body or Content-Type never fails
// the request — the body is left nil (or falls back to raw text) and a
// diagnostic is logged. Handlers validate presence of required fields and
// answer with their own 400.
func decodeBody(c *Context, req *http.Request) {
	if !methodCarriesBody(c.Method) || req.Body == nil {
		return
	}

	contentType := c.Header("Content-Type")
	mediaType, mediaParams, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Missing or malformed Content-Type: fall back to raw text.
		mediaType = ""
	}

	// Multipart bodies are streamed by the multipart reader rather than
	// slurped into RawBody; file parts stay opaque.
	if mediaType == "multipart/form-data" {
		decodeMultipart(c, req, mediaParams["boundary"])
		return
	}

	raw, err := io.ReadAll(req.Body)
	if err != nil {
		c.Logger().Warn("failed to read request body", "path", c.Path, "error", err)
		return
	}
	c.RawBody = raw
	if len(raw) == 0 {
		return
	}

	switch mediaType {
	case "application/json":
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			c.Logger().Warn("malformed JSON body", "path", c.Path, "error", err)
			return
		}
		c.Body = v

	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			c.Logger().Warn("malformed form body", "path", c.Path, "error", err)
			return
		}
		form := make(map[string]any, len(values))
		for k, vs := range values {
			if len(vs) == 1 {
				form[k] = vs[0]
			} else {
				form[k] = vs
			}
		}
		c.Body = form

	case "application/yaml", "application/x-yaml", "text/yaml":
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			c.Logger().Warn("malformed YAML body", "path", c.Path, "error", err)
			return
		}
		c.Body = v

	default:
		c.Body = string(raw)
	}
}

// decodeMultipart parses a multipart/form-data body. Value fields land in
// the form map as strings (or []string for repeats); file fields are kept
// as *File blobs.
func decodeMultipart(c *Context, req *http.Request, boundary string) {
	if boundary == "" {
		c.Logger().Warn("multipart body without boundary", "path", c.Path)
		return
	}

	reader := multipart.NewReader(req.Body, boundary)
	form, err := reader.ReadForm(defaultMultipartMemory)
	if err != nil {
		c.Logger().Warn("malformed multipart body", "path", c.Path, "error", err)
		return
	}

	out := make(map[string]any, len(form.Value)+len(form.File))
	for k, vs := range form.Value {
		if len(vs) == 1 {
			out[k] = vs[0]
		} else {
			out[k] = vs
		}
	}
	for k, headers := range form.File {
		if len(headers) == 1 {
			out[k] = newFile(headers[0])
			continue
		}
		files := make([]*File, len(headers))
		for i, fh := range headers {
			files[i] = newFile(fh)
		}
		out[k] = files
	}
	c.Body = out
}

// methodCarriesBody reports whether a method conventionally carries a
// request body worth decoding.
func methodCarriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
