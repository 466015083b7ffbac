// Package render — PDF renderer.
// Lays out the processed fragment with gofpdf: headings (variable font
// sizes), paragraphs, <pre> code blocks, nested lists and simple tables.
// Images are not embedded.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/docpipe/core"
)

// PDFRenderer renders a processed fragment as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// pdfWriter carries the document and the cp1252 translator for core fonts.
type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// Render converts the fragment into PDF bytes.
func (r *PDFRenderer) Render(fragment string, meta core.DocMeta) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, w.tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}
	if meta.Path != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("Path: "+meta.Path), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	w.blocks(doc.Find("body").Children())

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (w *pdfWriter) blocks(sel *goquery.Selection) {
	sel.Each(func(_ int, el *goquery.Selection) {
		switch tag := goquery.NodeName(el); tag {
		case "style", "script":
		case "h1", "h2", "h3", "h4", "h5", "h6":
			w.heading(collapseSpace(el.Text()), int(tag[1]-'0'))
		case "p":
			w.paragraph(collapseSpace(el.Text()))
		case "pre":
			w.code(el.Text())
		case "ul", "ol":
			w.list(el, 0)
		case "table":
			w.table(el)
		default:
			if el.Children().Length() > 0 {
				w.blocks(el.Children())
			} else {
				w.paragraph(collapseSpace(el.Text()))
			}
		}
	})
}

// heading sets the font size based on heading level and writes text.
func (w *pdfWriter) heading(text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	w.pdf.Ln(4)
	w.pdf.SetFont("Helvetica", "B", size)
	w.pdf.MultiCell(0, size*0.6, w.tr(text), "", "L", false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) paragraph(text string) {
	if text == "" {
		w.pdf.Ln(3)
		return
	}
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.MultiCell(0, 5, w.tr(text), "", "L", false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) code(text string) {
	w.pdf.Ln(2)
	w.pdf.SetFont("Courier", "", 9)
	w.pdf.SetFillColor(245, 245, 245)
	for _, line := range strings.Split(text, "\n") {
		w.pdf.MultiCell(0, 4.5, w.tr(line), "", "L", true)
	}
	w.pdf.Ln(2)
}

func (w *pdfWriter) list(list *goquery.Selection, depth int) {
	ordered := goquery.NodeName(list) == "ol"
	indent := strings.Repeat("    ", depth)
	list.Children().Filter("li").Each(func(i int, li *goquery.Selection) {
		marker := "• "
		if ordered {
			marker = fmt.Sprintf("%d. ", i+1)
		}
		nested := li.ChildrenFiltered("ul, ol")
		own := li.Clone()
		own.ChildrenFiltered("ul, ol").Remove()
		text := collapseSpace(own.Text())
		w.pdf.SetFont("Helvetica", "", 10)
		w.pdf.MultiCell(0, 5, w.tr(indent+marker+text), "", "L", false)
		nested.Each(func(_ int, sub *goquery.Selection) {
			w.list(sub, depth+1)
		})
	})
	if depth == 0 {
		w.pdf.Ln(2)
	}
}

func (w *pdfWriter) table(table *goquery.Selection) {
	w.pdf.SetFont("Helvetica", "", 9)
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, collapseSpace(td.Text()))
		})
		w.pdf.MultiCell(0, 5, w.tr(strings.Join(cells, " | ")), "B", "L", false)
	})
	w.pdf.Ln(2)
}
