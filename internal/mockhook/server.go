// Package mockhook is a local stand-in for the automation platform's
// inbound hook. It records what arrives and answers like the real one,
// optionally slowly or with a chosen status.
package mockhook

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBody = 32 << 20

type Options struct {
	Delay     time.Duration // hold each /hook response this long
	Status    int           // status for /hook, 200 when zero
	RPM       int           // per-IP requests per minute, 0 disables
	Burst     int
	Responder string // response body, "Accepted" when empty
}

type Server struct {
	Logger *zap.Logger
	Store  *Store
	Opts   Options
}

func NewServer(l *zap.Logger, st *Store, opts Options) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	if opts.Status == 0 {
		opts.Status = http.StatusOK
	}
	if opts.Responder == "" {
		opts.Responder = "Accepted"
	}
	return &Server{Logger: l, Store: st, Opts: opts}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/deliveries", s.handleList)
	r.With(RateLimit(s.Opts.RPM, s.Opts.Burst)).Post("/hook", s.handleHook)

	return r
}

func (s *Server) handleHook(w http.ResponseWriter, r *http.Request) {
	d := Delivery{ID: uuid.NewString(), ReceivedAt: time.Now().UTC()}
	body := &countingReader{r: http.MaxBytesReader(w, r.Body, maxBody)}

	mt, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mt = r.Header.Get("Content-Type")
	}
	d.ContentType = mt

	switch {
	case mt == "application/json":
		inspectJSON(&d, body)
	case strings.HasPrefix(mt, "multipart/"):
		inspectMultipart(&d, body, params["boundary"])
	default:
		_, _ = io.Copy(io.Discard, body)
	}
	d.Bytes = body.n
	s.Store.Add(d)

	s.Logger.Info("hook_received",
		zap.String("id", d.ID),
		zap.String("content_type", d.ContentType),
		zap.Int64("bytes", d.Bytes),
		zap.Strings("fields", d.Fields),
		zap.String("error", d.Error),
	)

	if s.Opts.Delay > 0 {
		select {
		case <-time.After(s.Opts.Delay):
		case <-r.Context().Done():
			s.Logger.Info("hook_client_gone", zap.String("id", d.ID))
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(s.Opts.Status)
	_, _ = w.Write([]byte(s.Opts.Responder))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Store.List())
}

// inspectJSON accepts an array of objects or a single object.
func inspectJSON(d *Delivery, r io.Reader) {
	raw, err := io.ReadAll(r)
	if err != nil {
		d.Error = err.Error()
		return
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		var one map[string]json.RawMessage
		if err2 := json.Unmarshal(raw, &one); err2 != nil {
			d.Error = "invalid json: " + err.Error()
			return
		}
		items = append(items, one)
	}
	d.Records = len(items)
	if len(items) > 0 {
		d.Fields = sortedKeys(items[0])
	}
}

func inspectMultipart(d *Delivery, r io.Reader, boundary string) {
	if boundary == "" {
		d.Error = "multipart without boundary"
		_, _ = io.Copy(io.Discard, r)
		return
	}
	mr := multipart.NewReader(r, boundary)
	d.Files = map[string]int64{}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.Error = err.Error()
			_, _ = io.Copy(io.Discard, r)
			return
		}
		n, _ := io.Copy(io.Discard, part)
		if part.FileName() != "" {
			d.Files[part.FormName()] = n
		} else {
			d.Fields = append(d.Fields, part.FormName())
		}
		_ = part.Close()
	}
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
