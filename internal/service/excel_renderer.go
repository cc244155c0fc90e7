package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"course-timetable/backend/internal/model"
)

// ── Excel 课表渲染 ─────────────────────────────────────────
//
// 单个工作表 "Timetable"：
//   - 第 1 行表头 Time + 周一至周六（加粗、居中、#D3D3D3 底色、细边框）
//   - 每个时间段一行，单元格文本与 PDF / 页面一致
//   - 网格最后一行之后第 3 行起写 Subject / Faculty 表
//   - 列宽：A=20、B..G=30，随后 A、B 调整为 40
// ─────────────────────────────────────────────────────────────

const excelSheet = "Timetable"

// RenderExcel 渲染课表 xlsx
func RenderExcel(t *CourseTimetable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	lastCol := colName(len(model.Weekdays))
	if err := f.SetColWidth(excelSheet, "A", "A", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(excelSheet, "B", lastCol, 30); err != nil {
		return nil, err
	}

	// 网格
	writeRow := func(row int, values []string, style int) error {
		for i, v := range values {
			if err := f.SetCellValue(excelSheet, cell(colName(i), row), v); err != nil {
				return err
			}
		}
		return f.SetCellStyle(excelSheet, cell("A", row), cell(colName(len(values)-1), row), style)
	}

	if err := writeRow(1, gridHeader(), headerStyle); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	dense := t.Grid.Dense()
	row := 2
	for i, slot := range t.Grid.Slots {
		if err := writeRow(row, append([]string{SlotLabel(slot)}, dense[i]...), cellStyle); err != nil {
			return nil, fmt.Errorf("write grid row: %w", err)
		}
		row++
	}

	// 科目与教师
	row = row - 1 + 3
	if err := f.SetColWidth(excelSheet, "A", "B", 40); err != nil {
		return nil, err
	}
	if err := writeRow(row, []string{"Subject", "Faculty"}, headerStyle); err != nil {
		return nil, fmt.Errorf("write subject header: %w", err)
	}
	for _, sf := range t.Grid.SubjectFaculty {
		row++
		if err := writeRow(row, []string{sf.Subject, sf.Faculty}, cellStyle); err != nil {
			return nil, fmt.Errorf("write subject row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
