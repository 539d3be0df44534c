package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCookieRecord_DecodesExtensionExport(t *testing.T) {
	raw := `{"domain":".willhaben.at","expirationDate":1767225600.734,"hostOnly":false,
		"httpOnly":true,"name":"sid","path":"/iad","sameSite":"lax","secure":true,"session":false,"value":"abc"}`
	var c CookieRecord
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Name != "sid" || c.Domain != ".willhaben.at" || !c.HTTPOnly || !c.Secure || c.CookiePath() != "/iad" {
		t.Fatalf("unexpected record: %+v", c)
	}
	exp, ok := c.Expiry()
	if !ok || !exp.Equal(time.Unix(1767225600, 0)) {
		t.Fatalf("expiry = %v, %v", exp, ok)
	}
}

func TestCookieRecord_Defaults(t *testing.T) {
	c := CookieRecord{Name: "a", Value: "b", Domain: "x.at"}
	if c.CookiePath() != "/" {
		t.Fatalf("want default path /, got %q", c.CookiePath())
	}
	if _, ok := c.Expiry(); ok {
		t.Fatalf("session cookie should have no expiry")
	}
}

func TestProbeResult_LatencyMS(t *testing.T) {
	r := ProbeResult{Elapsed: 1500 * time.Microsecond}
	if got := r.LatencyMS(); got != 1.5 {
		t.Fatalf("latency = %v, want 1.5", got)
	}
}
