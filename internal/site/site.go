// Package site serves the public landing page and its read-only JSON feeds.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/ziadkadry99/studiofront/internal/cards"
	"github.com/ziadkadry99/studiofront/internal/carousel"
)

// Options configures the landing page.
type Options struct {
	Title     string
	IntroFile string // markdown; empty uses the built-in intro
	Carousel  carousel.Config
}

// pageData is what pageTemplate renders.
type pageData struct {
	Title        string
	Intro        template.HTML
	Strip        carousel.Strip
	OffsetPx     float64
	CardWidthPx  float64
	GapPx        float64
	TransitionMS int
}

// Site renders the landing page from the current card snapshot.
type Site struct {
	store    *cards.Store
	opts     Options
	renderer *carousel.Renderer
	tmpl     *template.Template
	intro    template.HTML
	log      *zap.Logger
}

// New parses the page template and renders the intro markdown once.
func New(store *cards.Store, opts Options, log *zap.Logger) (*Site, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = "Studio"
	}
	if opts.Carousel.Geometry == (carousel.Geometry{}) {
		opts.Carousel.Geometry = carousel.DefaultGeometry()
	}
	if opts.Carousel.Transition <= 0 {
		opts.Carousel.Transition = carousel.DefaultTransition
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	source := []byte(defaultIntro)
	if opts.IntroFile != "" {
		source, err = os.ReadFile(opts.IntroFile)
		if err != nil {
			return nil, fmt.Errorf("reading intro %s: %w", opts.IntroFile, err)
		}
	}
	intro, err := renderMarkdown(source)
	if err != nil {
		return nil, err
	}

	return &Site{
		store:    store,
		opts:     opts,
		renderer: carousel.NewRenderer(opts.Carousel.Geometry, opts.Carousel.Infinite),
		tmpl:     tmpl,
		intro:    intro,
		log:      log,
	}, nil
}

func renderMarkdown(src []byte) (template.HTML, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Typographer))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("rendering intro markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RegisterRoutes mounts the landing page and feeds onto the given router.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/api/cards", s.handleCards)
	r.Get("/api/gallery", s.handleGallery)
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	cs := s.store.Current()
	strip := s.renderer.Render(cs)
	state := carousel.State{TotalCount: len(cs), InfiniteMode: s.opts.Carousel.Infinite}
	pos := s.renderer.Reposition(state, carousel.DefaultContainerWidth)

	g := s.renderer.Geometry()
	data := pageData{
		Title:        s.opts.Title,
		Intro:        s.intro,
		Strip:        strip,
		OffsetPx:     pos.OffsetPx,
		CardWidthPx:  g.CardWidthPx,
		GapPx:        g.GapPx,
		TransitionMS: int(s.opts.Carousel.Transition.Milliseconds()),
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.log.Error("rendering landing page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Site) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Current())
}

func (s *Site) handleGallery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cards.Gallery(s.store.Current()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
