// Package analyzer 对整个工作簿执行一次供应商匹配分析：
// 第一个工作表为待匹配数据，第二个为匹配原表，结果写回同一工作簿。
package analyzer

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"supmatch/internal/matcher"
	"supmatch/internal/model"
)

var (
	// ErrCancelled 用户取消了分析，区别于数据错误，不落盘任何部分结果
	ErrCancelled = errors.New("分析已被用户取消")
	// ErrNoData 待匹配表中没有数据行
	ErrNoData = errors.New("待匹配表中没有数据需要匹配")
	// ErrMissingSheets 工作簿缺少待匹配表或匹配原表
	ErrMissingSheets = errors.New("工作簿中缺少必要的工作表")
)

// Options 分析选项
type Options struct {
	MatchedSheet   string // 匹配结果表名，默认"匹配到的数据"
	UnmatchedSheet string // 未找到结果表名，默认"未找到的数据"
	SupplierHeader string // 供应商列标题，默认"供应商"
}

// applyDefaults 补齐缺省选项
func (o *Options) applyDefaults() {
	if o.MatchedSheet == "" {
		o.MatchedSheet = "匹配到的数据"
	}
	if o.UnmatchedSheet == "" {
		o.UnmatchedSheet = "未找到的数据"
	}
	if o.SupplierHeader == "" {
		o.SupplierHeader = "供应商"
	}
}

// Analyze 在已打开的工作簿上执行完整分析
//
// 逐行处理待匹配表：标注源单元格颜色、把输出记录追加到结果表。
// cancel 每行检查一次，取消立即返回 ErrCancelled，工作簿不保存；
// progress 非空时每行回调一次 (已处理行数, 总行数)。
func Analyze(f *excelize.File, opts Options, cancel <-chan struct{}, progress func(done, total int)) (*model.AnalysisStats, error) {
	opts.applyDefaults()

	sheets := f.GetSheetList()
	if len(sheets) < 2 {
		return nil, ErrMissingSheets
	}
	candidateSheet := sheets[0]
	referenceSheet := sheets[1]

	candRows, err := f.GetRows(candidateSheet)
	if err != nil {
		return nil, fmt.Errorf("读取待匹配表失败: %w", err)
	}
	if len(candRows) <= 1 {
		return nil, ErrNoData
	}

	index, err := buildReferenceIndex(f, referenceSheet)
	if err != nil {
		return nil, err
	}

	out, err := newResultWriter(f, opts, candRows[0])
	if err != nil {
		return nil, err
	}

	styles := newStyleCache(f)
	classifier := matcher.NewClassifier(index)
	total := len(candRows) - 1
	matched := 0
	unmatched := 0

	for i, row := range candRows[1:] {
		select {
		case <-cancel:
			return nil, ErrCancelled
		default:
		}

		rowNo := i + 2
		dateText := cellAt(row, 0)
		customerText := cellAt(row, 1)
		productText := cellAt(row, 2)

		result := classifier.ClassifyRaw(dateText, customerText, productText)
		route := matcher.RouteResult(result)

		if err := styles.apply(candidateSheet, rowNo, route.Style); err != nil {
			return nil, fmt.Errorf("第 %d 行设置样式失败: %w", rowNo, err)
		}

		if err := out.write(route, dateText, customerText, productText); err != nil {
			return nil, fmt.Errorf("第 %d 行写入结果失败: %w", rowNo, err)
		}

		if route.Target == matcher.TargetMatched {
			matched++
		} else {
			unmatched++
		}

		if progress != nil {
			progress(i+1, total)
		}
	}

	rate := 0.0
	if total > 0 {
		rate = float64(matched) / float64(total) * 100
	}

	return &model.AnalysisStats{
		Total:     total,
		Matched:   matched,
		Unmatched: unmatched,
		Rate:      fmt.Sprintf("%.1f", rate),
	}, nil
}

// buildReferenceIndex 读取匹配原表并构建供应商查找索引
func buildReferenceIndex(f *excelize.File, sheet string) (matcher.SupplierIndex, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取匹配原表失败: %w", err)
	}

	refRows := make([]matcher.ReferenceRow, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // 标题行
		}
		refRows = append(refRows, matcher.ReferenceRow{
			DateText:     cellAt(row, 0),
			CustomerText: cellAt(row, 1),
			ProductText:  cellAt(row, 2),
			Supplier:     cellAt(row, 3),
		})
	}

	return matcher.BuildIndex(refRows), nil
}

// cellAt 取行内指定列的值，越界返回空串
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// styleCache 样式缓存：每种 CellStyle 只在工作簿里注册一次
type styleCache struct {
	f   *excelize.File
	ids map[model.CellStyle]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: make(map[model.CellStyle]int)}
}

// apply 将样式套到该行的三个源单元格 (A:C)
func (c *styleCache) apply(sheet string, rowNo int, style model.CellStyle) error {
	id, ok := c.ids[style]
	if !ok {
		var err error
		id, err = c.f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{style.FillColor},
			},
			Font: &excelize.Font{Color: style.FontColor},
		})
		if err != nil {
			return err
		}
		c.ids[style] = id
	}

	return c.f.SetCellStyle(sheet,
		fmt.Sprintf("A%d", rowNo), fmt.Sprintf("C%d", rowNo), id)
}

// resultWriter 管理两张结果表的初始化与追加写入
type resultWriter struct {
	f              *excelize.File
	matchedSheet   string
	unmatchedSheet string
	matchedNext    int
	unmatchedNext  int
}

// newResultWriter 初始化（或重建）两张结果表并写入标题行
func newResultWriter(f *excelize.File, opts Options, header []string) (*resultWriter, error) {
	w := &resultWriter{
		f:              f,
		matchedSheet:   opts.MatchedSheet,
		unmatchedSheet: opts.UnmatchedSheet,
		matchedNext:    2,
		unmatchedNext:  2,
	}

	for _, sheet := range []string{opts.MatchedSheet, opts.UnmatchedSheet} {
		if err := initResultSheet(f, sheet); err != nil {
			return nil, fmt.Errorf("初始化结果表 %s 失败: %w", sheet, err)
		}
		if err := writeHeaderRow(f, sheet, header, opts.SupplierHeader); err != nil {
			return nil, fmt.Errorf("写入结果表 %s 标题失败: %w", sheet, err)
		}
	}

	return w, nil
}

// initResultSheet 已存在则整表重建，保证不残留上次运行的数据
func initResultSheet(f *excelize.File, name string) error {
	if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
		if err := f.DeleteSheet(name); err != nil {
			return err
		}
	}
	_, err := f.NewSheet(name)
	return err
}

// writeHeaderRow 复制待匹配表标题行，并在第 4 列补上供应商列标题
func writeHeaderRow(f *excelize.File, sheet string, header []string, supplierHeader string) error {
	for i, v := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return f.SetCellValue(sheet, "D1", supplierHeader)
}

// write 按路由结果追加输出记录：每个供应商一条（原始三列 + 供应商）
func (w *resultWriter) write(route matcher.Route, dateText, customerText, productText string) error {
	sheet := w.matchedSheet
	next := &w.matchedNext
	if route.Target == matcher.TargetUnmatched {
		sheet = w.unmatchedSheet
		next = &w.unmatchedNext
	}

	for _, supplier := range route.Suppliers {
		record := []interface{}{dateText, customerText, productText, supplier}
		if err := w.f.SetSheetRow(sheet, fmt.Sprintf("A%d", *next), &record); err != nil {
			return err
		}
		*next++
	}
	return nil
}
