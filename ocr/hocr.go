package ocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/veridoc/veridoc/model"
)

// ParseHOCR reads an hOCR document and returns its word boxes and the page
// size. hOCR is the HTML-based output format Tesseract and other engines
// emit; accepting it lets a document be analyzed from a previous OCR run
// without the engine compiled in.
//
// Only the first ocr_page element is considered. Words without a parseable
// bbox are skipped; a missing x_wconf defaults to confidence 100, matching
// engines that omit it for certain recognitions.
func ParseHOCR(r io.Reader) ([]model.Word, model.PageSize, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, model.PageSize{}, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	var words []model.Word
	var page model.PageSize

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "ocr_page") && page.IsZero():
				if box, ok := parseBBox(attr(n, "title")); ok {
					page = model.PageSize{Width: box.Width, Height: box.Height}
				}
			case hasClass(n, "ocrx_word"):
				if word, ok := parseWord(n); ok {
					words = append(words, word)
				}
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	if len(words) == 0 {
		return nil, page, fmt.Errorf("hOCR document contains no words")
	}
	return words, page, nil
}

func parseWord(n *html.Node) (model.Word, bool) {
	title := attr(n, "title")
	box, ok := parseBBox(title)
	if !ok {
		return model.Word{}, false
	}

	word := model.Word{
		Text:       strings.TrimSpace(nodeText(n)),
		Confidence: parseWConf(title),
		BBox:       box,
	}
	if word.IsBlank() {
		return model.Word{}, false
	}
	return word, true
}

// parseBBox extracts "bbox x0 y0 x1 y1" from an hOCR title attribute.
func parseBBox(title string) (model.BBox, bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}

		coords := make([]int, 4)
		for i, field := range fields[1:] {
			v, err := strconv.Atoi(field)
			if err != nil {
				return model.BBox{}, false
			}
			coords[i] = v
		}

		return model.BBox{
			X:      coords[0],
			Y:      coords[1],
			Width:  coords[2] - coords[0],
			Height: coords[3] - coords[1],
		}, true
	}
	return model.BBox{}, false
}

// parseWConf extracts "x_wconf N" from an hOCR title attribute.
func parseWConf(title string) float64 {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) == 2 && fields[0] == "x_wconf" {
			if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
				return v
			}
		}
	}
	return 100
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}
