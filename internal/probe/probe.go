package probe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"

	"github.com/hamed0406/hookprobe/internal/domain"
)

// Payload is a request body the Runner can deliver.
type Payload interface {
	Encode() (body []byte, contentType string, err error)
}

// JSONPayload is sent as a JSON array of objects, the shape the
// automation platform's hook expects from the web app.
type JSONPayload []domain.Fields

func (p JSONPayload) Encode() ([]byte, string, error) {
	if len(p) == 0 {
		return nil, "", errors.New("json payload has no records")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // keep URLs readable on the wire
	if err := enc.Encode(p); err != nil {
		return nil, "", fmt.Errorf("encode json payload: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), "application/json", nil
}

// MultipartPayload carries text fields plus exactly one file part.
type MultipartPayload struct {
	Fields domain.Fields
	File   domain.Attachment
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (p MultipartPayload) Encode() ([]byte, string, error) {
	if p.File.Field == "" {
		return nil, "", errors.New("multipart payload needs a file field name")
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range SortedKeys(p.Fields) {
		if err := w.WriteField(k, p.Fields[k]); err != nil {
			return nil, "", fmt.Errorf("write field %q: %w", k, err)
		}
	}

	filename := p.File.Filename
	if filename == "" {
		filename = p.File.Field
	}
	ct := p.File.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(p.File.Field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(p.File.Data); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// SortedKeys returns the keys of f in lexical order.
func SortedKeys(f domain.Fields) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
