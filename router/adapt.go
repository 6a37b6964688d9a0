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
	"bytes"
	"net/http"
)

// WrapHTTPHandler adapts a standard http.Handler into a Handler. The
// wrapped handler writes into an in-memory buffer, which then becomes an
// abstract response, so it composes with middleware and keeps the
// single-write contract of the materializer. Use it for handlers from
// other ecosystems, like a Prometheus scrape endpoint; it buffers the
// whole body, so it is not for streaming handlers.
func WrapHTTPHandler(h http.Handler) Handler {
	return func(c *Context) (*Response, error) {
		rec := &bufferedWriter{header: http.Header{}, status: http.StatusOK}
		h.ServeHTTP(rec, c.Request)

		res := &Response{
			Status: rec.status,
			Header: rec.header,
			kind:   bodyData,
			data:   rec.body.Bytes(),
		}
		return res, nil
	}
}

// bufferedWriter is a minimal in-memory http.ResponseWriter.
type bufferedWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (w *bufferedWriter) Header() http.Header { return w.header }

func (w *bufferedWriter) WriteHeader(status int) { w.status = status }

func (w *bufferedWriter) Write(b []byte) (int, error) { return w.body.Write(b) }
