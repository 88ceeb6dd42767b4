//go:build !integration

package pagemeta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
		ok   bool
	}{
		{"simple", "<html><head><title>喫茶ソワレ</title></head></html>", "喫茶ソワレ", true},
		{"attributes", `<TITLE lang="ja">Cafe Example</TITLE>`, "Cafe Example", true},
		{"whitespace", "<title>\n  Trimmed  \n</title>", "Trimmed", true},
		{"missing", "<html><body>no title</body></html>", "", false},
		{"unclosed", "<title>never ends", "", false},
		{"empty", "<title></title>", "", false},
	}

	for _, tc := range cases {
		got, ok := extractTitle(tc.html)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s: expected (%q, %v), got (%q, %v)", tc.name, tc.want, tc.ok, got, ok)
		}
	}
}

func TestFetchTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>テスト店舗</title></head></html>"))
	}))
	defer srv.Close()

	repo := NewRepository()

	title, err := repo.FetchTitle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "テスト店舗" {
		t.Errorf("expected テスト店舗, got %q", title)
	}
}

func TestFetchTitle_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	repo := NewRepository()

	if _, err := repo.FetchTitle(context.Background(), srv.URL); err == nil {
		t.Fatal("expected an error for 404 response")
	}
}
