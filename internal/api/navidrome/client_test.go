package navidrome

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/time/rate"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:4533", false},
		{"https://music.example.com/", false},
		{"localhost:4533", true},
		{"ftp://host", true},
		{"", true},
	}
	for _, tt := range tests {
		err := NewNavidromeClient(tt.url, "admin", "secret", nil).Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
	if NewNavidromeClient("http://x", "", "secret", nil).Enabled() {
		t.Error("client without a username should not be enabled")
	}
}

func TestGetSaltedPassword(t *testing.T) {
	// md5("sesame" + "c19b2d")
	if got := getSaltedPassword("sesame", "c19b2d"); got != "26719a1196d2a940705a59634eb18eab" {
		t.Errorf("getSaltedPassword = %s", got)
	}
}

// fakeServer answers ping, startScan and getScanStatus. The status reports a running
// scan for the first busyPolls requests.
func fakeServer(t *testing.T, busyPolls int32) (*httptest.Server, *int32) {
	var polls, started int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("u") != "admin" {
			http.Error(w, "no user", http.StatusUnauthorized)
			return
		}
		path := strings.TrimSuffix(r.URL.Path, ".view")
		switch {
		case strings.HasSuffix(path, "/ping"):
			if q.Get("f") == "json" {
				fmt.Fprint(w, `{"subsonic-response":{"status":"ok","version":"1.16.1"}}`)
				return
			}
			w.Header().Set("Content-Type", "text/xml")
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1"></subsonic-response>`)
		case strings.HasSuffix(path, "/startScan"):
			if q.Get("t") == "" || q.Get("s") == "" {
				fmt.Fprint(w, `{"subsonic-response":{"status":"failed","error":{"code":10,"message":"missing token"}}}`)
				return
			}
			atomic.AddInt32(&started, 1)
			fmt.Fprint(w, `{"subsonic-response":{"status":"ok","scanStatus":{"scanning":true,"count":0}}}`)
		case strings.HasSuffix(path, "/getScanStatus"):
			n := atomic.AddInt32(&polls, 1)
			scanning := n <= busyPolls
			fmt.Fprintf(w, `{"subsonic-response":{"status":"ok","scanStatus":{"scanning":%t,"count":%d}}}`, scanning, 40+n)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &started
}

func TestTriggerAndWaitForScan(t *testing.T) {
	srv, started := fakeServer(t, 2)
	client := NewNavidromeClient(srv.URL, "admin", "secret", srv.Client())

	if err := client.TriggerScan(context.Background()); err != nil {
		t.Fatalf("TriggerScan: %v", err)
	}
	if atomic.LoadInt32(started) != 1 {
		t.Errorf("startScan called %d times", atomic.LoadInt32(started))
	}

	count, err := client.WaitForScan(context.Background(), rate.NewLimiter(rate.Inf, 1))
	if err != nil {
		t.Fatalf("WaitForScan: %v", err)
	}
	if count != 43 {
		t.Errorf("count = %d, want 43 (third poll)", count)
	}
}

func TestWaitForScanCancelled(t *testing.T) {
	srv, _ := fakeServer(t, 1<<30)
	client := NewNavidromeClient(srv.URL, "admin", "secret", srv.Client())
	if err := client.Authenticate(); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.WaitForScan(ctx, rate.NewLimiter(rate.Every(1), 1)); err == nil {
		t.Error("expected an error once the context is cancelled")
	}
}

func TestCallReportsServerErrors(t *testing.T) {
	srv, _ := fakeServer(t, 0)
	client := NewNavidromeClient(srv.URL, "admin", "secret", srv.Client())
	if err := client.Authenticate(); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	client.Token = ""
	err := client.TriggerScan(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing token") {
		t.Errorf("expected the server error message, got %v", err)
	}
}
