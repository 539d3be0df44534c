package mockhook

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit_AllowsThenBlocks(t *testing.T) {
	h := RateLimit(60, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("POST", "/hook", nil)
	req.RemoteAddr = "1.2.3.4:1234"

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("want 200 got %d", rr.Code)
		}
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != 429 {
		t.Fatalf("want 429 got %d", rr.Code)
	}

	other := httptest.NewRequest("POST", "/hook", nil)
	other.RemoteAddr = "5.6.7.8:1234"
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, other)
	if rr.Code != 200 {
		t.Fatalf("other client should have its own bucket, got %d", rr.Code)
	}
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	h := RateLimit(0, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("POST", "/hook", nil))
		if rr.Code != 200 {
			t.Fatalf("request %d: want 200 got %d", i, rr.Code)
		}
	}
}

func TestThrottle_BurstThenSpacing(t *testing.T) {
	th := newThrottle(60, 2)
	now := time.Unix(1_700_000_000, 0)

	for i := 0; i < 2; i++ {
		if wait := th.admit("a", now); wait != 0 {
			t.Fatalf("request %d within burst should pass, wait %v", i, wait)
		}
	}
	if wait := th.admit("a", now); wait != time.Second {
		t.Fatalf("third request should wait 1s, got %v", wait)
	}
	if wait := th.admit("a", now.Add(1100*time.Millisecond)); wait != 0 {
		t.Fatalf("request after a second should pass, wait %v", wait)
	}

	th.admit("b", now.Add(30*time.Minute))
	if _, ok := th.due["a"]; ok {
		t.Fatalf("idle client should be pruned")
	}
}

func TestRateLimit_TooManyRequestsBody(t *testing.T) {
	h := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("POST", "/hook", nil)
	req.RemoteAddr = "9.9.9.9:1"
	h.ServeHTTP(httptest.NewRecorder(), req)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != 429 || rr.Body.String() != "Too many requests" {
		t.Fatalf("want plain 429, got %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Retry-After") != "60" {
		t.Fatalf("Retry-After=%q", rr.Header().Get("Retry-After"))
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/hook", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := clientIP(r); got != "10.0.0.1" {
		t.Fatalf("clientIP=%q", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.9" {
		t.Fatalf("clientIP with XFF=%q", got)
	}
}
