package front

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gamedex/internal/util"

	"github.com/leonelquinteros/gotext"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
	"golang.org/x/text/language"
)

// Views holds the parsed view templates and the translations they use.
type Views struct {
	templates map[string]*template.Template
	locales   *Locales
	sanitizer *bluemonday.Policy
}

// LoadViews parses every template under <resourcesDir>/templates/views.
func LoadViews(resourcesDir string, locales *Locales) (*Views, error) {
	v := &Views{
		templates: map[string]*template.Template{},
		locales:   locales,
		sanitizer: bluemonday.UGCPolicy(),
	}

	baseDir := filepath.Join(resourcesDir, "templates/views")
	err := filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}

		key, err := filepath.Rel(baseDir, path)
		if err != nil {
			return err
		}
		key = filepath.ToSlash(key)

		tpl, err := template.New(filepath.Base(path)).Funcs(v.FuncMap()).ParseFiles(path)
		if err != nil {
			return err
		}
		v.templates[key] = tpl

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to load views: %w", err)
	}

	return v, nil
}

// FuncMap holds the template helpers shared by views and layouts.
func (v *Views) FuncMap() template.FuncMap {
	tf := func(locale string, str string, args ...interface{}) string {
		return v.locales.Get(locale).Get(str, args...)
	}

	return template.FuncMap{
		"t": func(locale string, str string) string {
			return tf(locale, str)
		},
		"tf":       tf,
		"markdown": v.markdown,
		"datetime": util.Datetime,
	}
}

func (v *Views) markdown(str string) template.HTML {
	unsafe := blackfriday.Run([]byte(str))
	return template.HTML(v.sanitizer.SanitizeBytes(unsafe)) // nolint:gosec
}

type viewData struct {
	Locale string
	Page   Page
	Scope  *Scope
}

// Render writes the view of page.
func (v *Views) Render(w io.Writer, locale string, page Page) error {
	tpl, ok := v.templates[page.State.View]
	if !ok {
		return fmt.Errorf("no view %q", page.State.View)
	}

	return tpl.Execute(w, viewData{
		Locale: locale,
		Page:   page,
		Scope:  page.Scope,
	})
}

// RenderHTML renders page to a string safe to embed in a layout.
func (v *Views) RenderHTML(locale string, page Page) (template.HTML, error) {
	var buf bytes.Buffer
	if err := v.Render(&buf, locale, page); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil // nolint:gosec
}

// Locales are the gotext translations found in <resourcesDir>/locales/<lang>.
type Locales struct {
	byName   map[string]*gotext.Locale
	names    []string
	matcher  language.Matcher
	fallback string
}

const localeDomain = "default"

// LoadLocales loads every locale directory, fallback must be one of them.
func LoadLocales(resourcesDir string, fallback string) (*Locales, error) {
	dir := filepath.Join(resourcesDir, "locales")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	l := &Locales{
		byName:   map[string]*gotext.Locale{},
		fallback: fallback,
	}
	for _, v := range entries {
		if !v.IsDir() {
			continue
		}

		locale := gotext.NewLocale(dir, v.Name())
		locale.AddDomain(localeDomain)
		l.byName[v.Name()] = locale
		l.names = append(l.names, v.Name())
	}

	if _, ok := l.byName[fallback]; !ok {
		return nil, fmt.Errorf("default locale %q not found in %s", fallback, dir)
	}

	// The fallback goes first, the matcher returns it when nothing matches.
	sort.Slice(l.names, func(i, j int) bool {
		if l.names[i] == fallback || l.names[j] == fallback {
			return l.names[i] == fallback
		}
		return l.names[i] < l.names[j]
	})

	tags := make([]language.Tag, 0, len(l.names))
	for _, name := range l.names {
		tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			return nil, fmt.Errorf("invalid locale directory %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	l.matcher = language.NewMatcher(tags)

	return l, nil
}

// Get returns the named locale or the fallback.
func (l *Locales) Get(name string) *gotext.Locale {
	if locale, ok := l.byName[name]; ok {
		return locale
	}

	return l.byName[l.fallback]
}

// Names returns the available locales, fallback first.
func (l *Locales) Names() []string {
	return l.names
}

// Negotiate picks the best locale for an Accept-Language header value.
func (l *Locales) Negotiate(acceptLanguage string) string {
	_, idx := language.MatchStrings(l.matcher, acceptLanguage)
	if idx < 0 || idx >= len(l.names) {
		return l.fallback
	}

	return l.names[idx]
}
