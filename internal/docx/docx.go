// Package docx renders report tables as minimal WordprocessingML (.docx)
// documents.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/report"
)

// ContentType is the MIME type of the produced documents.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extension is the filename suffix of the produced documents.
const Extension = ".docx"

const font = "Times New Roman"

// Page geometry in twentieths of a point.
const (
	a4Short       = 11906
	a4Long        = 16838
	landscapeW    = 16840
	landscapeH    = 11900
	portraitMar   = 1440
	landscapeMar  = 720
	headerRowH    = 400
	dataRowH      = 350
	titleSpacing  = 400
	headerSize    = 18 // half-points
	dataSize      = 16
	titleSize     = 28
	noDataSize    = 24
	headerShading = "D3D3D3"
)

// Renderer writes report tables into .docx packages. It holds no state and
// is safe for concurrent use.
type Renderer struct{}

// NewRenderer returns a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces a .docx document with a centred title followed by the
// table, or by the no-data paragraph when the table is empty.
func (r *Renderer) Render(t report.Table, title string, o report.Orientation) ([]byte, error) {
	var body bytes.Buffer
	writeTitle(&body, title)
	if t.Empty() {
		writeNoData(&body, t.NoData)
	} else {
		writeTable(&body, t)
	}
	writeSection(&body, o)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(body.String())},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := io.WriteString(w, p.content); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx archive: %w", err)
	}
	return buf.Bytes(), nil
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const relsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

func documentXML(body string) string {
	return xml.Header +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body +
		`</w:body></w:document>`
}

type runStyle struct {
	bold, italic bool
	size         int
}

func writeRun(b *bytes.Buffer, text string, s runStyle) {
	b.WriteString(`<w:r><w:rPr>`)
	fmt.Fprintf(b, `<w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:cs="%[1]s"/>`, font)
	if s.bold {
		b.WriteString(`<w:b/>`)
	}
	if s.italic {
		b.WriteString(`<w:i/>`)
	}
	fmt.Fprintf(b, `<w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">`, s.size)
	_ = xml.EscapeText(b, []byte(text))
	b.WriteString(`</w:t></w:r>`)
}

func writeParagraph(b *bytes.Buffer, text string, spacingAfter int, s runStyle) {
	fmt.Fprintf(b, `<w:p><w:pPr><w:spacing w:before="0" w:after="%d"/><w:jc w:val="center"/></w:pPr>`, spacingAfter)
	writeRun(b, text, s)
	b.WriteString(`</w:p>`)
}

func writeTitle(b *bytes.Buffer, title string) {
	writeParagraph(b, title, titleSpacing, runStyle{bold: true, size: titleSize})
}

func writeNoData(b *bytes.Buffer, text string) {
	writeParagraph(b, text, 0, runStyle{italic: true, size: noDataSize})
}

func writeTable(b *bytes.Buffer, t report.Table) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>`)
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(b, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="000000"/>`, edge)
	}
	b.WriteString(`</w:tblBorders></w:tblPr><w:tblGrid>`)
	for range t.Headers {
		b.WriteString(`<w:gridCol/>`)
	}
	b.WriteString(`</w:tblGrid>`)

	writeRow(b, t.Headers, headerRowH, true)
	for _, row := range t.Rows {
		writeRow(b, row, dataRowH, false)
	}
	b.WriteString(`</w:tbl>`)
}

func writeRow(b *bytes.Buffer, cells []string, height int, header bool) {
	fmt.Fprintf(b, `<w:tr><w:trPr><w:trHeight w:val="%d"/></w:trPr>`, height)
	for _, text := range cells {
		b.WriteString(`<w:tc><w:tcPr>`)
		if header {
			fmt.Fprintf(b, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, headerShading)
		}
		b.WriteString(`</w:tcPr>`)
		style := runStyle{size: dataSize}
		if header {
			style = runStyle{bold: true, size: headerSize}
		}
		// Word requires every cell to hold at least one paragraph.
		writeParagraph(b, text, 0, style)
		b.WriteString(`</w:tc>`)
	}
	b.WriteString(`</w:tr>`)
}

func writeSection(b *bytes.Buffer, o report.Orientation) {
	if o == report.Landscape {
		fmt.Fprintf(b, `<w:sectPr><w:pgSz w:w="%d" w:h="%d" w:orient="landscape"/>`, landscapeW, landscapeH)
		fmt.Fprintf(b, `<w:pgMar w:top="%[1]d" w:right="%[1]d" w:bottom="%[1]d" w:left="%[1]d" w:header="0" w:footer="0" w:gutter="0"/></w:sectPr>`, landscapeMar)
		return
	}
	fmt.Fprintf(b, `<w:sectPr><w:pgSz w:w="%d" w:h="%d"/>`, a4Short, a4Long)
	fmt.Fprintf(b, `<w:pgMar w:top="%[1]d" w:right="%[1]d" w:bottom="%[1]d" w:left="%[1]d" w:header="0" w:footer="0" w:gutter="0"/></w:sectPr>`, portraitMar)
}
