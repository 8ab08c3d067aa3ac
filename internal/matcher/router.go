package matcher

import "supmatch/internal/model"

// Target 结果去向：匹配表或未匹配表
type Target int

const (
	// TargetMatched 写入"匹配到的数据"表
	TargetMatched Target = iota
	// TargetUnmatched 写入"未找到的数据"表
	TargetUnmatched
)

// Route 一行数据的呈现决策
//
// Suppliers 中每个元素对应一条输出记录（原始三列 + 该供应商）；
// 未匹配路径恒为单个空串元素，即一条供应商留空的记录。
type Route struct {
	Style     model.CellStyle
	Target    Target
	Suppliers []string
}

// RouteResult 根据匹配结果决定样式、去向与输出记录
//
// 优先级：重复 > 范围全匹配 > 范围部分匹配 > 单条匹配 > 未匹配。
// 重复只覆盖显示颜色，去向与输出记录仍按底层匹配结果走：
// 范围全匹配按供应商名去重（同一供应商多个月份合并为一条），
// 单条匹配不去重（原表重复行产生重复输出行）。
func RouteResult(result *model.MatchResult) Route {
	route := Route{
		Style:  styleFor(result),
		Target: TargetUnmatched,
	}
	if result.Matched() {
		route.Target = TargetMatched
	}

	switch {
	case result.IsDateRange && result.IsAllMatch:
		route.Suppliers = uniqueSuppliers(result.MatchedSuppliers)
	case !result.IsDateRange && result.IsMatch:
		for _, m := range result.MatchedSuppliers {
			route.Suppliers = append(route.Suppliers, m.Supplier)
		}
	default:
		route.Suppliers = []string{""}
	}

	return route
}

// styleFor 按优先级选定单元格样式，重复最高
func styleFor(result *model.MatchResult) model.CellStyle {
	switch {
	case result.IsDuplicate:
		return model.StyleDuplicate
	case result.IsDateRange && result.IsAllMatch:
		return model.StyleRangeComplete
	case result.IsDateRange:
		return model.StyleRangePartial
	case result.IsMatch:
		return model.StyleMatched
	default:
		return model.StyleUnmatched
	}
}

// uniqueSuppliers 按首次出现顺序提取去重后的供应商名
func uniqueSuppliers(matches []model.SupplierMatch) []string {
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.Supplier]; ok {
			continue
		}
		seen[m.Supplier] = struct{}{}
		out = append(out, m.Supplier)
	}
	return out
}
