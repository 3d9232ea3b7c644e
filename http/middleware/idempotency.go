package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"io"
	"net/http"

	"github.com/felixge/httpsnoop"
)

const IdempotencyHeader = "Idempotency-Key"

// Idempotent returns an Adapter that replays the response to a POST request
// whenever the same "Idempotency-Key" header is sent again.
// GET, DELETE, PUT, & PATCH are idempotent by definition and pass through,
// as do POST requests without the header.
//
// If a previous request has not used that key,
// Idempotent claims it atomically and pairs all of the following values to the key:
//   - the URI and a hash of the body of the request
//   - the status code and body of the resulting response
//
// If that key has been used before (and has not expired),
// Idempotent falls into one of these scenarios:
//
//   - if a status code has not been set for that key,
//     Idempotent responds with 409 since the idempotent request is still processing
//     (a handler that panics releases its key)
//
//   - if the newly requested resource (the URI) does not match the original,
//     Idempotent responds with 422
//
//   - if the new request's body does not match the body of the original request's,
//     Idempotent responds with 422
//
//   - otherwise, Idempotent writes the status code and body recorded for the key
//
// If cache is nil, Idempotent uses a *MemoryCache.
//
// Idempotent implements the draft Idempotent HTTP Header Field specification:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(cache IdempotencyCache) Adapter {
	if cache == nil {
		cache = NewMemoryCache(0)
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if r.Method != http.MethodPost || key == "" {
				handler.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			sum := sha256.Sum256(body)
			uri := r.URL.RequestURI()

			rec := NewIdempotencyRecord(uri, sum[:])
			claimed, err := cache.SetNX(r.Context(), key, rec)
			if err != nil {
				// without a cache the request goes through unrecorded
				handler.ServeHTTP(w, r)
				return
			}

			if !claimed {
				prev, ok := cache.Get(r.Context(), key)
				switch {
				case !ok || prev.Status == 0:
					w.WriteHeader(http.StatusConflict)
				case prev.URI != uri || !bytes.Equal(prev.ReqHash, sum[:]):
					w.WriteHeader(http.StatusUnprocessableEntity)
				default:
					w.WriteHeader(prev.Status)
					w.Write(prev.Body)
				}

				return
			}

			defer func() {
				if p := recover(); p != nil {
					// a pending record left behind would answer 409 until it expires
					cache.Delete(context.WithoutCancel(r.Context()), key)
					panic(p)
				}
			}()

			handler.ServeHTTP(recordingWriter(w, r, cache, key, &rec), r)
			if rec.Status == 0 {
				// the handler wrote nothing, which net/http answers with 200
				rec.Status = http.StatusOK
				cache.Set(r.Context(), key, rec)
			}
		})
	}
}

// recordingWriter wraps w so the status code and body written to it
// are also saved in cache under key.
func recordingWriter(w http.ResponseWriter, r *http.Request, cache IdempotencyCache, key string, rec *IdempotencyRecord) http.ResponseWriter {
	return httpsnoop.Wrap(w, httpsnoop.Hooks{
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				next(code)
				if rec.Status == 0 {
					rec.Status = code
					cache.Set(r.Context(), key, *rec)
				}
			}
		},
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(b []byte) (int, error) {
				if rec.Status == 0 {
					rec.Status = http.StatusOK
				}

				n, err := next(b)
				rec.Body = append(rec.Body, b[:n]...)
				cache.Set(r.Context(), key, *rec)

				return n, err
			}
		},
	})
}
