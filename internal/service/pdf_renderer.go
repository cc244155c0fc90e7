package service

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"course-timetable/backend/internal/model"
)

// ── PDF 课表渲染 ──────────────────────────────────────────
//
// 版式：Letter 横向
//   - 标题 "Timetable for {课程} (Sem {n})"，25pt 居中
//   - 可选 "Effective From: DD-MM-YYYY"，15pt 居中
//   - 可选 "Classroom: {教室}"
//   - 网格表：Time + 周一至周六，表头灰底白字，跨页时重复表头
//   - "Subjects & Faculty" 表：表头浅灰底，无科目时显示占位行
//
// 默认使用内置 Helvetica，只能输出 cp1252 字符；配置 UTF-8 TrueType
// 字体后按 UTF-8 输出，可显示非拉丁文字的课程、科目与教师名。
// ─────────────────────────────────────────────────────────────

const (
	pdfMargin     = 10.0
	pdfLineHeight = 5.0
	pdfCellPad    = 1.5
	pdfCoreFont   = "Helvetica"
	pdfUTF8Family = "TimetableUTF8"
)

// PDFFont UTF-8 TrueType 字体；常规与粗体共用同一字形
type PDFFont struct {
	TTF []byte
}

// LoadPDFFont 读取 TTF 字体文件
func LoadPDFFont(path string) (*PDFFont, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf font: %w", err)
	}
	if !isTrueType(b) {
		return nil, fmt.Errorf("read pdf font %s: not a TrueType font", path)
	}
	return &PDFFont{TTF: b}, nil
}

// isTrueType 检查 sfnt 版本头；OpenType CFF 与字体集合 fpdf 不支持
func isTrueType(b []byte) bool {
	return len(b) >= 4 && (bytes.Equal(b[:4], []byte{0, 1, 0, 0}) || string(b[:4]) == "true")
}

// pdfDoc 绑定字体族与文本编码的 fpdf 文档
type pdfDoc struct {
	*fpdf.Fpdf
	family string
	utf8   bool
	tr     func(string) string
}

func newPDFDoc(font *PDFFont) (*pdfDoc, error) {
	pdf := fpdf.New("L", "mm", "Letter", "")
	if font == nil {
		return &pdfDoc{Fpdf: pdf, family: pdfCoreFont, tr: pdf.UnicodeTranslatorFromDescriptor("")}, nil
	}
	if !isTrueType(font.TTF) {
		return nil, errors.New("render pdf: not a TrueType font")
	}
	for _, style := range []string{"", "B"} {
		pdf.AddUTF8FontFromBytes(pdfUTF8Family, style, font.TTF)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: load font: %w", err)
	}
	return &pdfDoc{Fpdf: pdf, family: pdfUTF8Family, utf8: true, tr: func(s string) string { return s }}, nil
}

// text 按当前字体编码转换
func (d *pdfDoc) text(s string) string { return d.tr(s) }

// split 按列宽折行
func (d *pdfDoc) split(s string, w float64) []string {
	if d.utf8 {
		return d.SplitText(s, w)
	}
	var out []string
	for _, l := range d.SplitLines([]byte(d.tr(s)), w) {
		out = append(out, string(l))
	}
	return out
}

func (d *pdfDoc) font(style string, size float64) {
	d.SetFont(d.family, style, size)
}

type rgb struct{ r, g, b int }

var (
	pdfGrey      = rgb{128, 128, 128}
	pdfLightGrey = rgb{211, 211, 211}
	pdfWhite     = rgb{255, 255, 255}
	pdfBlack     = rgb{0, 0, 0}
)

// pdfTable 一张带表头的表格
type pdfTable struct {
	widths     []float64
	header     []string
	headerFill rgb
	headerText rgb
	rows       [][]string
}

// RenderPDF 渲染课表 PDF；font 为 nil 时使用内置 Helvetica
func RenderPDF(t *CourseTimetable, font *PDFFont) ([]byte, error) {
	pdf, err := newPDFDoc(font)
	if err != nil {
		return nil, err
	}
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(t.Title(), true)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	usable := pageW - 2*pdfMargin

	pdf.font("B", 25)
	pdf.CellFormat(usable, 12, pdf.text(t.Title()), "", 1, "C", false, 0, "")

	if t.EffectiveDate != nil {
		pdf.font("", 15)
		pdf.CellFormat(usable, 8, pdf.text("Effective From: "+t.EffectiveDate.Format(displayDateLayout)), "", 1, "C", false, 0, "")
	}
	if t.Course.Classroom != nil && *t.Course.Classroom != "" {
		pdf.font("B", 13)
		pdf.CellFormat(usable, 8, pdf.text("Classroom: "+*t.Course.Classroom), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// 网格表
	timeW := 40.0
	dayW := (usable - timeW) / float64(len(model.Weekdays))
	grid := pdfTable{
		widths:     append([]float64{timeW}, repeatWidth(dayW, len(model.Weekdays))...),
		header:     gridHeader(),
		headerFill: pdfGrey,
		headerText: pdfWhite,
	}
	dense := t.Grid.Dense()
	for i, slot := range t.Grid.Slots {
		grid.rows = append(grid.rows, append([]string{SlotLabel(slot)}, dense[i]...))
	}
	drawPDFTable(pdf, grid)

	// 科目与教师表
	pdf.Ln(8)
	ensureSpace(pdf, 8+2*(pdfLineHeight+2*pdfCellPad))
	pdf.font("B", 13)
	pdf.CellFormat(usable, 8, "Subjects & Faculty", "", 1, "C", false, 0, "")

	sfW := usable / 2
	sf := pdfTable{
		widths:     []float64{sfW, sfW},
		header:     []string{"Subject", "Faculty"},
		headerFill: pdfLightGrey,
		headerText: pdfBlack,
	}
	for _, row := range t.Grid.SubjectFaculty {
		sf.rows = append(sf.rows, []string{row.Subject, row.Faculty})
	}
	if len(sf.rows) == 0 {
		sf.rows = [][]string{{"No subjects assigned yet", ""}}
	}
	drawPDFTable(pdf, sf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// gridHeader "Time" + 周一至周六
func gridHeader() []string {
	header := []string{"Time"}
	for _, d := range model.Weekdays {
		header = append(header, string(d))
	}
	return header
}

func repeatWidth(w float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = w
	}
	return out
}

// drawPDFTable 逐行绘制表格；放不下的行另起一页并重复表头
func drawPDFTable(pdf *pdfDoc, tbl pdfTable) {
	drawHeader := func() {
		pdf.font("B", 10)
		pdf.SetFillColor(tbl.headerFill.r, tbl.headerFill.g, tbl.headerFill.b)
		pdf.SetTextColor(tbl.headerText.r, tbl.headerText.g, tbl.headerText.b)
		drawPDFRow(pdf, tbl.widths, tbl.header, true)
		pdf.SetTextColor(0, 0, 0)
		pdf.font("", 9)
	}

	pdf.font("B", 10)
	ensureSpace(pdf, rowHeight(pdf, tbl.widths, tbl.header)+rowHeight(pdf, tbl.widths, firstRow(tbl)))
	drawHeader()

	for _, row := range tbl.rows {
		if !fits(pdf, rowHeight(pdf, tbl.widths, row)) {
			pdf.AddPage()
			drawHeader()
		}
		drawPDFRow(pdf, tbl.widths, row, false)
	}
}

func firstRow(tbl pdfTable) []string {
	if len(tbl.rows) == 0 {
		return tbl.header
	}
	return tbl.rows[0]
}

// drawPDFRow 绘制一行：每格带边框、内容水平垂直居中，支持多行文本
func drawPDFRow(pdf *pdfDoc, widths []float64, cells []string, fill bool) {
	h := rowHeight(pdf, widths, cells)
	x0, y0 := pdf.GetXY()

	x := x0
	for i, text := range cells {
		w := widths[i]
		style := "D"
		if fill {
			style = "FD"
		}
		pdf.Rect(x, y0, w, h, style)

		lines := cellLines(pdf, text, w)
		top := y0 + (h-float64(len(lines))*pdfLineHeight)/2
		for j, line := range lines {
			pdf.SetXY(x, top+float64(j)*pdfLineHeight)
			pdf.CellFormat(w, pdfLineHeight, line, "", 0, "C", false, 0, "")
		}
		x += w
	}
	pdf.SetXY(x0, y0+h)
}

func rowHeight(pdf *pdfDoc, widths []float64, cells []string) float64 {
	maxLines := 1
	for i, text := range cells {
		if n := len(cellLines(pdf, text, widths[i])); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*pdfLineHeight + 2*pdfCellPad
}

// cellLines 按换行符拆分，再按列宽折行；返回已编码的行
func cellLines(pdf *pdfDoc, text string, w float64) []string {
	var lines []string
	for _, part := range strings.Split(text, "\n") {
		wrapped := pdf.split(part, w-2*pdfCellPad)
		if len(wrapped) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapped...)
	}
	return lines
}

func fits(pdf *pdfDoc, h float64) bool {
	_, pageH := pdf.GetPageSize()
	return pdf.GetY()+h <= pageH-pdfMargin
}

func ensureSpace(pdf *pdfDoc, h float64) {
	if !fits(pdf, h) {
		pdf.AddPage()
	}
}
