package pagemeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes bounds how much of a page is read while looking for the
// title tag.
const maxBodyBytes = 64 * 1024

// Repository fetches page metadata for spot URLs.
type Repository struct {
	client *http.Client
}

func NewRepository() *Repository {
	return &Repository{
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// FetchTitle downloads the start of the page and extracts the contents of
// the first <title> tag.
func (r *Repository) FetchTitle(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "ashiato-bot/1.0")

	res, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("page returned status %v", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	title, ok := extractTitle(string(body))
	if !ok {
		return "", errors.New("no title tag found")
	}

	return title, nil
}

func extractTitle(html string) (string, bool) {
	lowered := strings.ToLower(html)

	start := strings.Index(lowered, "<title")
	if start == -1 {
		return "", false
	}

	open := strings.Index(lowered[start:], ">")
	if open == -1 {
		return "", false
	}
	start += open + 1

	end := strings.Index(lowered[start:], "</title>")
	if end == -1 {
		return "", false
	}

	title := strings.TrimSpace(html[start : start+end])
	if title == "" {
		return "", false
	}

	return title, true
}
