package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hamed0406/hookprobe/internal/domain"
	"github.com/hamed0406/hookprobe/internal/probe"
)

// Printer renders probe cases and their outcomes for the operator.
type Printer struct {
	W io.Writer
	// MaxValue abbreviates longer payload values (data URIs) when > 0.
	MaxValue int
}

func New(w io.Writer) *Printer {
	return &Printer{W: w, MaxValue: 96}
}

func (p *Printer) Target(url string) {
	fmt.Fprintf(p.W, "Target: %s\n", url)
}

func (p *Printer) Case(c probe.Case) {
	fmt.Fprintf(p.W, "\n--- Testing: %s ---\n", c.Name)
	fmt.Fprintf(p.W, "Payload: %s\n", p.describe(c.Payload))
}

func (p *Printer) Skipped(name, reason string) {
	fmt.Fprintf(p.W, "\n--- Skipping: %s (%s) ---\n", name, reason)
}

func (p *Printer) Result(r domain.ProbeResult) {
	switch r.Outcome {
	case domain.OutcomeOK:
		fmt.Fprintf(p.W, "Result: Success (Status %d)\n", r.StatusCode)
		fmt.Fprintf(p.W, "Time: %.2fs\n", r.Elapsed.Seconds())
		fmt.Fprintf(p.W, "Response: %s\n", r.Body)
	case domain.OutcomeTimeout:
		fmt.Fprintf(p.W, "Result: TIMED OUT after %s\n", r.Timeout)
	default:
		fmt.Fprintf(p.W, "Result: ERROR - %s\n", r.Reason)
	}
}

func (p *Printer) DNS(s probe.DNSStatus) {
	fmt.Fprintf(p.W, "DNS: %s %s", s.Host, s.Class)
	if s.CNAME != "" {
		fmt.Fprintf(p.W, " cname=%s", s.CNAME)
	}
	if s.ResolverError != "" {
		fmt.Fprintf(p.W, " (%s)", s.ResolverError)
	}
	fmt.Fprintln(p.W)
}

// Summary prints one row per result.
func (p *Printer) Summary(results []domain.ProbeResult) {
	fmt.Fprintln(p.W, "\n=== Summary ===")
	tw := tabwriter.NewWriter(p.W, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CASE\tOUTCOME\tSTATUS\tTIME")
	for _, r := range results {
		status := "-"
		if r.Outcome == domain.OutcomeOK {
			status = fmt.Sprintf("%d", r.StatusCode)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2fs\n", r.Name, r.Outcome, status, r.Elapsed.Seconds())
	}
	_ = tw.Flush()
}

func (p *Printer) describe(pl probe.Payload) string {
	switch v := pl.(type) {
	case probe.JSONPayload:
		return p.describeJSON(v)
	case probe.MultipartPayload:
		var b bytes.Buffer
		b.WriteString("multipart/form-data")
		for _, k := range probe.SortedKeys(v.Fields) {
			fmt.Fprintf(&b, "\n  %s = %s", k, p.abbrev(v.Fields[k]))
		}
		fmt.Fprintf(&b, "\n  %s = %s (%s, %d bytes)", v.File.Field, v.File.Filename, v.File.ContentType, len(v.File.Data))
		return b.String()
	case nil:
		return "<none>"
	default:
		return fmt.Sprintf("%T", pl)
	}
}

func (p *Printer) describeJSON(v probe.JSONPayload) string {
	short := make([]domain.Fields, 0, len(v))
	for _, rec := range v {
		cp := make(domain.Fields, len(rec))
		for k, val := range rec {
			cp[k] = p.abbrev(val)
		}
		short = append(short, cp)
	}
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(short); err != nil {
		return fmt.Sprintf("<unprintable: %v>", err)
	}
	return string(bytes.TrimRight(b.Bytes(), "\n"))
}

func (p *Printer) abbrev(s string) string {
	if p.MaxValue <= 0 || len(s) <= p.MaxValue {
		return s
	}
	return fmt.Sprintf("%s... (%d chars)", s[:p.MaxValue], len(s))
}
