package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/index.html
var templates embed.FS

// PageConfig holds the values rendered into the generator page.
type PageConfig struct {
	MinLength     int
	MaxLength     int
	DefaultLength int
	// GenerateDelay is the minimum time the page waits before showing a result.
	GenerateDelay time.Duration
}

type pageData struct {
	MinLength       int
	MaxLength       int
	DefaultLength   int
	GenerateDelayMs int64
}

// NewHandler renders the generator page once and returns a handler serving it.
func NewHandler(cfg PageConfig) (http.Handler, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, pageData{
		MinLength:       cfg.MinLength,
		MaxLength:       cfg.MaxLength,
		DefaultLength:   cfg.DefaultLength,
		GenerateDelayMs: cfg.GenerateDelay.Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page template: %w", err)
	}
	page := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write(page)
	}), nil
}
