// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alan-mat/chatbridge/internal/chat"
	"github.com/google/uuid"
)

// maxHistoryField bounds the encoded history accepted from a form.
const maxHistoryField = 1 << 20

type requestIDKey struct{}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// encodeHistory serializes the turns into an opaque value for the
// hidden form field that carries history between actions.
func encodeHistory(h chat.History) string {
	if len(h) == 0 {
		return ""
	}

	b, err := json.Marshal(h)
	if err != nil {
		slog.Warn("failed to encode history", "err", err)
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func decodeHistory(s string) (chat.History, error) {
	if s == "" {
		return chat.History{}, nil
	}
	if len(s) > maxHistoryField {
		return nil, errHistoryTooLarge
	}

	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}

	var h chat.History
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, err
	}
	return h, nil
}

// historyFromRequest reads the history carried in the form. A
// malformed value is dropped rather than failing the action.
func historyFromRequest(r *http.Request) chat.History {
	h, err := decodeHistory(r.PostFormValue(historyField))
	if err != nil {
		slog.Warn("discarding malformed history", "id", requestID(r.Context()), "err", err)
		return chat.History{}
	}
	return h
}
