package rollwiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, status int, wantCategory string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("save") != "true" {
			t.Errorf("save = %q, want true", q.Get("save"))
		}
		if q.Get("secret") != "s3cret" {
			t.Errorf("secret = %q, want s3cret", q.Get("secret"))
		}
		if wantCategory != "" && q.Get("category") != wantCategory {
			t.Errorf("category = %q, want %q", q.Get("category"), wantCategory)
		}
		w.WriteHeader(status)
	}))
}

func TestSubmitStatusMapping(t *testing.T) {
	cases := []struct {
		status  int
		want    Outcome
		wantErr bool
	}{
		{http.StatusOK, OutcomeNewSuccess, false},
		{http.StatusConflict, OutcomeAlreadyExists, false},
		{http.StatusNotFound, OutcomeNotFound, false},
		{http.StatusInternalServerError, OutcomeTransientError, true},
		{http.StatusForbidden, OutcomeTransientError, true},
	}

	for _, c := range cases {
		srv := newTestServer(t, c.status, "Sports")
		client := NewClient(srv.URL, "s3cret")
		got, err := client.Submit(context.Background(), "https://en.wikipedia.org/wiki/NBA", "Sports")
		srv.Close()

		if got != c.want {
			t.Fatalf("status %d: outcome = %v, want %v", c.status, got, c.want)
		}
		if (err != nil) != c.wantErr {
			t.Fatalf("status %d: err = %v, wantErr = %v", c.status, err, c.wantErr)
		}
	}
}

func TestSubmitNetworkErrorIsTransient(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, "")
	srv.Close() // 立即关掉，制造连接失败

	client := NewClient(srv.URL, "s3cret")
	got, err := client.Submit(context.Background(), "https://en.wikipedia.org/wiki/NBA", "Sports")
	if got != OutcomeTransientError || err == nil {
		t.Fatalf("got (%v, %v), want transient error with non-nil err", got, err)
	}
}

func TestOutcomeDurable(t *testing.T) {
	if !OutcomeNewSuccess.Durable() || !OutcomeAlreadyExists.Durable() {
		t.Fatalf("success outcomes must be durable")
	}
	if OutcomeNotFound.Durable() || OutcomeTransientError.Durable() {
		t.Fatalf("failure outcomes must not be durable")
	}
}
