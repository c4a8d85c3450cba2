package web

import (
	"crypto/sha512"
	"encoding/base64"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

func (s *Server) loadTemplates(baseDir string) (map[string]*template.Template, error) {
	layouts, err := filepath.Glob(filepath.Join(baseDir, "templates/layouts/*.html"))
	if err != nil {
		return nil, err
	}

	includes, err := filepath.Glob(filepath.Join(baseDir, "templates/includes/*.html"))
	if err != nil {
		return nil, err
	}

	ret := make(map[string]*template.Template, len(layouts))
	for _, layout := range layouts {
		tpl, err := template.New("").
			Funcs(s.getTemplateFuncMap(baseDir)).
			ParseFiles(append(includes, layout)...)
		if err != nil {
			return nil, err
		}

		key := strings.TrimPrefix(layout, filepath.Join(baseDir, "templates/layouts")+string(filepath.Separator))
		ret[key] = tpl
	}

	return ret, nil
}

func (s *Server) getTemplateFuncMap(baseDir string) template.FuncMap {
	funcs := s.views.FuncMap()
	funcs["assetURL"] = tplAssetURL
	funcs["assetIntegrity"] = tplAssetIntegrity(baseDir)

	return funcs
}

func tplAssetURL(name string) string {
	return "/_/" + name
}

func tplAssetIntegrity(baseDir string) func(name string) (string, error) {
	var mu sync.Mutex
	hashCache := map[string]string{}

	return func(name string) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if hash, ok := hashCache[name]; ok {
			return hash, nil
		}

		f, err := os.Open(filepath.Join(baseDir, "static", name))
		if err != nil {
			return "", err
		}
		defer f.Close() // nolint:gosec

		h := sha512.New()
		if _, err := io.Copy(h, f); err != nil {
			return "", err
		}

		hashCache[name] = "sha512-" + base64.StdEncoding.EncodeToString(h.Sum(nil))
		return hashCache[name], nil
	}
}
