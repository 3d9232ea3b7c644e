package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

// A LogRequestRecord is what LogRequest reports about a request and its response.
type LogRequestRecord struct {
	BodySize       int64         `json:"bodySize"`
	Duration       time.Duration `json:"duration"`
	Host           string        `json:"host"`
	ID             string        `json:"id,omitempty"`
	IPAddr         string        `json:"ipAddr,omitempty"`
	Method         string        `json:"method"`
	Path           string        `json:"path"`
	Protocol       string        `json:"protocol"`
	Referrer       string        `json:"referrer,omitempty"`
	ReqContentType string        `json:"reqContentType,omitempty"`
	Scheme         string        `json:"scheme,omitempty"`
	Status         int           `json:"status"`
	URI            string        `json:"uri"`
	UserAgent      string        `json:"userAgent,omitempty"`
}

func newLogRequestRecord(r *http.Request, m httpsnoop.Metrics) LogRequestRecord {
	uri := r.URL.Path
	q := r.URL.Query()
	switchback.Mask(q, "password")
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	rec := LogRequestRecord{
		BodySize:       m.Written,
		Duration:       m.Duration,
		Host:           r.Host,
		Method:         r.Method,
		Path:           r.URL.Path,
		Protocol:       r.Proto,
		Referrer:       r.Referer(),
		ReqContentType: r.Header.Get("Content-Type"),
		Scheme:         r.URL.Scheme,
		Status:         m.Code,
		URI:            uri,
		UserAgent:      r.UserAgent(),
	}

	rec.ID, _ = r.Context().Value(switchback.RequestIDKey).(string)
	rec.IPAddr, _ = r.Context().Value(switchback.IpAddrKey).(string)

	return rec
}

// LogRequest logs the request's method, requested URL, response status and duration
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
//   - password
//
// If logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(l logger.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)
			rec := newLogRequestRecord(r, m)

			msg := fmt.Sprintf("%s %s %d %s", rec.Method, rec.URI, rec.Status, rec.Duration)
			if rec.IPAddr != "" {
				msg = rec.IPAddr + " " + msg
			}

			l.Info(msg, &logger.LogContext{Data: map[string]any{"request": rec}})
		})
	}
}
