package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind tells the loader how to fetch a source.
type Kind int

const (
	KindFile Kind = iota
	KindURL
)

// Preprocess rewrites document text before parsing.
type Preprocess func(string) string

// Source is one XML document to parse, either a local file or a remote URL.
type Source struct {
	Kind       Kind
	Location   string
	Category   string
	Tags       string
	Preprocess Preprocess
}

// File returns a local file source.
func File(path, category, tags string) Source {
	return Source{Kind: KindFile, Location: path, Category: category, Tags: tags}
}

// URL returns a remote source fetched with a single GET.
func URL(url, category, tags string) Source {
	return Source{Kind: KindURL, Location: url, Category: category, Tags: tags}
}

// WithPreprocess returns a copy of s that rewrites the text with fn.
func (s Source) WithPreprocess(fn Preprocess) Source {
	s.Preprocess = fn
	return s
}

func (s Source) String() string { return s.Location }

// ReplaceToken returns a Preprocess that substitutes token with text.
func ReplaceToken(token, text string) Preprocess {
	return func(s string) string {
		return strings.ReplaceAll(s, token, text)
	}
}

// Glob lists the *.xml files in dir in lexical order, skipping any whose
// stem is rejected by skip.
func Glob(dir string, skip func(stem string) bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		stem := strings.TrimSuffix(filepath.Base(m), filepath.Ext(m))
		if skip != nil && skip(stem) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
