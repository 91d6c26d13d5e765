// Package pageview turns settled section results into the view models the
// public page templates render.
package pageview

import (
	"html/template"
	"strings"

	"github.com/dalemusser/strataministry/internal/app/system/htmlsanitize"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/domain/models"
)

// List is a decoded list section. A list with no items renders the
// section's placeholder.
type List[T any] struct {
	Items       []T
	State       sections.State
	Substituted bool
}

// Placeholder reports whether the template should show the empty-state
// placeholder instead of items.
func (l List[T]) Placeholder() bool { return len(l.Items) == 0 }

// Decode maps every record of a section through fn.
func Decode[T any](res sections.Result, fn func(models.Record) T) List[T] {
	items := make([]T, 0, len(res.Records))
	for _, rec := range res.Records {
		items = append(items, fn(rec))
	}
	return List[T]{Items: items, State: res.State}
}

// Banner returns the page banner, or the built-in default when the section
// has no active banner. A banner without a title takes the default title;
// one without an image keeps the empty URL so the template shows the
// placeholder visual.
func Banner(page string, res sections.Result) models.Banner {
	rec, ok := res.First()
	if !ok {
		return models.DefaultBanner(page)
	}
	b := models.BannerFromRecord(rec)
	if strings.TrimSpace(b.Title) == "" {
		b.Title = models.DefaultBanner(page).Title
	}
	return b
}

// Block is a content block ready for display. Body is sanitized markup.
type Block struct {
	models.ContentBlock
	Body template.HTML
}

// NewBlock prepares a content block for display.
func NewBlock(cb models.ContentBlock) Block {
	return Block{ContentBlock: cb, Body: htmlsanitize.PrepareForDisplay(cb.Description)}
}

// Blocks prepares every content block for display.
func Blocks(cbs []models.ContentBlock) []Block {
	out := make([]Block, 0, len(cbs))
	for _, cb := range cbs {
		out = append(out, NewBlock(cb))
	}
	return out
}

// Intro returns the single content block of a content section, if any.
func Intro(res sections.Result) (Block, bool) {
	rec, ok := res.First()
	if !ok {
		return Block{}, false
	}
	return NewBlock(models.ContentBlockFromRecord(rec)), true
}
