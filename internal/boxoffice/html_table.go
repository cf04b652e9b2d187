package boxoffice

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlTable is the text content of one <table>: header cells and data rows.
type htmlTable struct {
	headers []string
	rows    [][]string
}

func extractTables(r io.Reader) ([]htmlTable, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var tables []htmlTable
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, readTable(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return tables, nil
}

// readTable collects <th> text as headers and every <tr> holding <td> cells as
// a row. Nested tables are read separately by the caller's walk.
func readTable(table *html.Node) htmlTable {
	var out htmlTable
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n != table && n.Type == html.ElementNode && n.DataAtom == atom.Table {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				switch c.DataAtom {
				case atom.Th:
					out.headers = append(out.headers, nodeText(c))
				case atom.Td:
					cells = append(cells, nodeText(c))
				}
			}
			if len(cells) > 0 {
				out.rows = append(out.rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return out
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "\u00a0", "")
	return strings.ReplaceAll(h, " ", "")
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
