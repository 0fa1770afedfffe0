package exporter

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const reportCSS = `body{font-family:sans-serif;margin:2em;background:#1e1e2e;color:#cdd6f4}
h2{border-bottom:1px solid #45475a;padding-bottom:.2em}
.gallery{display:flex;flex-wrap:wrap;gap:1em;list-style:none;padding:0}
.gallery li{width:160px;text-align:center;font-size:.8em;word-break:break-all}
.gallery img{max-width:160px;max-height:120px;display:block;margin:0 auto .3em}
.empty,.summary{color:#a6adc8}`

// Report is the data rendered into an export.
type Report struct {
	Title       string
	Categories  []string          // declaration order
	Labels      map[string]string // image name -> category
	Total       int               // images in the source directory
	GeneratedAt time.Time
}

// DefaultExportPath returns the default export file path inside outputDir.
func DefaultExportPath(outputDir string) string {
	return filepath.Join(outputDir, "index.html")
}

// ExportHTML renders the report as an HTML gallery page.
// Image links are relative to the output directory.
func ExportHTML(r Report) string {
	var b strings.Builder
	// strings.Builder never returns a write error
	_ = Render(&b, r)
	return b.String()
}

// Render writes the report to w.
func Render(w io.Writer, r Report) error {
	return html.Render(w, buildDocument(r))
}

// WriteFile renders the report to path on fs.
func WriteFile(fs afero.Fs, path string, r Report) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, []byte(ExportHTML(r)), 0644)
}

func buildDocument(r Report) *html.Node {
	title := r.Title
	if title == "" {
		title = "Labels"
	}

	byCategory := make(map[string][]string, len(r.Categories))
	for name, cat := range r.Labels {
		byCategory[cat] = append(byCategory[cat], name)
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), title))
	head.AppendChild(withText(element(atom.Style), reportCSS))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(withText(element(atom.H1), title))

	summary := fmt.Sprintf("%d of %d images classified", len(r.Labels), r.Total)
	if !r.GeneratedAt.IsZero() {
		summary += ", generated " + r.GeneratedAt.Format("2006-01-02 15:04")
	}
	body.AppendChild(withText(element(atom.P, attr("class", "summary")), summary))

	for _, cat := range r.Categories {
		images := byCategory[cat]
		sort.Strings(images)
		body.AppendChild(categorySection(cat, images))
	}

	return doc
}

func categorySection(category string, images []string) *html.Node {
	section := element(atom.Section, attr("id", "category-"+category))
	section.AppendChild(withText(element(atom.H2), fmt.Sprintf("%s (%d)", category, len(images))))

	if len(images) == 0 {
		section.AppendChild(withText(element(atom.P, attr("class", "empty")), "No images."))
		return section
	}

	list := element(atom.Ul, attr("class", "gallery"))
	for _, name := range images {
		href := url.PathEscape(category) + "/" + url.PathEscape(name)

		link := element(atom.A, attr("href", href))
		link.AppendChild(element(atom.Img,
			attr("src", href),
			attr("alt", name),
			attr("loading", "lazy"),
		))

		item := element(atom.Li)
		item.AppendChild(link)
		item.AppendChild(withText(element(atom.Span), name))
		list.AppendChild(item)
	}
	section.AppendChild(list)
	return section
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
