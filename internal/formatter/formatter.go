// package formatter turns presentation node trees into HTML pages and
// plain text, and writes static-site exports to disk
package formatter

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/folio/internal/models"
)

// HTMLOptions controls how node trees serialize to HTML.
type HTMLOptions struct {
	// AssetBase is prepended to image paths (e.g. "/assets").
	AssetBase string
	// LinkFor renders a menu target as an href. Defaults to "/<target>".
	LinkFor func(target string) string
}

func (o HTMLOptions) href(target string) string {
	if o.LinkFor != nil {
		return o.LinkFor(target)
	}
	return "/" + target
}

func (o HTMLOptions) imageSrc(path string) string {
	if o.AssetBase == "" {
		return "/" + strings.TrimPrefix(path, "/")
	}
	return strings.TrimSuffix(o.AssetBase, "/") + "/" + strings.TrimPrefix(path, "/")
}

// RenderHTML serializes a node tree into a complete HTML document with
// the given page title.
func RenderHTML(title string, node models.Node, opts HTMLOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\">\n")
	buf.WriteString(fmt.Sprintf("<title>%s</title>\n", template.HTMLEscapeString(title)))
	buf.WriteString("</head>\n<body>\n")
	buf.WriteString(fmt.Sprintf("<h1>%s</h1>\n", template.HTMLEscapeString(title)))

	if err := writeNodeHTML(&buf, node, opts); err != nil {
		return nil, err
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func writeNodeHTML(buf *bytes.Buffer, node models.Node, opts HTMLOptions) error {
	esc := template.HTMLEscapeString

	switch node.Kind {
	case models.GridNode:
		buf.WriteString("<section class=\"grid\">\n")
		for _, child := range node.Children {
			if err := writeNodeHTML(buf, child, opts); err != nil {
				return err
			}
		}
		buf.WriteString("</section>\n")
	case models.ArtworkGroupNode:
		buf.WriteString("<figure class=\"artwork\">\n")
		for _, child := range node.Children {
			if err := writeNodeHTML(buf, child, opts); err != nil {
				return err
			}
		}
		buf.WriteString("</figure>\n")
	case models.ImageNode:
		buf.WriteString(fmt.Sprintf("<img src=\"%s\" alt=\"%s\">\n", esc(opts.imageSrc(node.Path)), esc(node.Text)))
	case models.TitleNode:
		buf.WriteString(fmt.Sprintf("<figcaption class=\"title\">%s</figcaption>\n", esc(node.Text)))
	case models.YearNode:
		buf.WriteString(fmt.Sprintf("<p class=\"year\">%s</p>\n", esc(node.Text)))
	case models.PlaceholderNode:
		buf.WriteString(fmt.Sprintf("<div class=\"placeholder\">%s</div>\n", esc(node.Text)))
	case models.MenuNode:
		buf.WriteString("<nav class=\"menu\">\n<ul>\n")
		for _, child := range node.Children {
			if err := writeNodeHTML(buf, child, opts); err != nil {
				return err
			}
		}
		buf.WriteString("</ul>\n</nav>\n")
	case models.MenuItemNode:
		buf.WriteString(fmt.Sprintf("<li><a href=\"%s\">%s</a></li>\n", esc(opts.href(node.Target)), esc(node.Text)))
	default:
		return fmt.Errorf("unknown node kind: %v", node.Kind)
	}

	return nil
}

// RenderText serializes a node tree into indented plain text, one node
// per line.
func RenderText(node models.Node) []byte {
	var buf bytes.Buffer
	writeNodeText(&buf, node, 0)
	return buf.Bytes()
}

func writeNodeText(buf *bytes.Buffer, node models.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch node.Kind {
	case models.GridNode, models.ArtworkGroupNode, models.MenuNode:
		for _, child := range node.Children {
			writeNodeText(buf, child, depth)
		}
	case models.ImageNode:
		buf.WriteString(fmt.Sprintf("%s[%s]\n", indent, node.Path))
	case models.TitleNode:
		buf.WriteString(fmt.Sprintf("%s%s\n", indent, node.Text))
	case models.YearNode:
		buf.WriteString(fmt.Sprintf("%s  (%s)\n", indent, node.Text))
	case models.PlaceholderNode:
		buf.WriteString(fmt.Sprintf("%s(%s)\n", indent, node.Text))
	case models.MenuItemNode:
		buf.WriteString(fmt.Sprintf("%s* %s -> %s\n", indent, node.Text, node.Target))
	}
}

// Page couples a node tree with its output slug and heading for export.
type Page struct {
	// Slug is the output name; "" exports as index.html.
	Slug  string
	Title string
	Node  models.Node
}

func (p Page) filename() string {
	if p.Slug == "" {
		return "index.html"
	}
	return p.Slug + ".html"
}

// SiteExportResult contains the paths of files created by WriteSiteExport.
type SiteExportResult struct {
	Directory string
	Files     []string
}

// WriteSiteExport renders every page to HTML under outputDir.
//
// Defaults to "site" as the output directory. Menu links point at the
// exported page files so the result browses from the filesystem.
func WriteSiteExport(pages []Page, outputDir string, opts HTMLOptions) (*SiteExportResult, error) {
	if outputDir == "" {
		outputDir = "site"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if opts.LinkFor == nil {
		opts.LinkFor = func(target string) string { return target + ".html" }
	}

	result := &SiteExportResult{Directory: outputDir}

	for _, page := range pages {
		data, err := RenderHTML(page.Title, page.Node, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", page.filename(), err)
		}

		path := filepath.Join(outputDir, page.filename())
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}

		result.Files = append(result.Files, path)
	}

	return result, nil
}
