package matcher

import (
	"testing"

	"supmatch/internal/model"
)

func TestRouteResult_SingleMatch(t *testing.T) {
	result := &model.MatchResult{
		IsMatch: true,
		MatchedSuppliers: []model.SupplierMatch{
			{Month: "202403", Supplier: "SupA"},
			{Month: "202403", Supplier: "SupA"}, // 原表重复行
			{Month: "202403", Supplier: "SupB"},
		},
	}

	route := RouteResult(result)
	if route.Style != model.StyleMatched {
		t.Fatalf("Style=%+v, want 绿色", route.Style)
	}
	if route.Target != TargetMatched {
		t.Fatalf("Target=%v, want TargetMatched", route.Target)
	}
	// 单条匹配不去重
	if len(route.Suppliers) != 3 {
		t.Fatalf("Suppliers=%v, want 3 条", route.Suppliers)
	}
}

func TestRouteResult_Unmatched(t *testing.T) {
	route := RouteResult(&model.MatchResult{})
	if route.Style != model.StyleUnmatched {
		t.Fatalf("Style=%+v, want 红色", route.Style)
	}
	if route.Target != TargetUnmatched {
		t.Fatalf("Target=%v, want TargetUnmatched", route.Target)
	}
	// 未匹配仍输出一条供应商留空的记录
	if len(route.Suppliers) != 1 || route.Suppliers[0] != "" {
		t.Fatalf("Suppliers=%v, want [\"\"]", route.Suppliers)
	}
}

func TestRouteResult_RangeComplete_DedupesSuppliers(t *testing.T) {
	result := &model.MatchResult{
		IsDateRange: true,
		IsAllMatch:  true,
		MatchedSuppliers: []model.SupplierMatch{
			{Month: "202403", Supplier: "Sup1"},
			{Month: "202404", Supplier: "Sup2"},
			{Month: "202405", Supplier: "Sup1"}, // 同名供应商跨月合并
		},
	}

	route := RouteResult(result)
	if route.Style != model.StyleRangeComplete {
		t.Fatalf("Style=%+v, want 紫色", route.Style)
	}
	if route.Target != TargetMatched {
		t.Fatalf("Target=%v, want TargetMatched", route.Target)
	}
	if len(route.Suppliers) != 2 || route.Suppliers[0] != "Sup1" || route.Suppliers[1] != "Sup2" {
		t.Fatalf("Suppliers=%v, want [Sup1 Sup2]", route.Suppliers)
	}
}

func TestRouteResult_RangePartial(t *testing.T) {
	result := &model.MatchResult{
		IsDateRange: true,
		MatchedSuppliers: []model.SupplierMatch{
			{Month: "202403", Supplier: "SupCo"},
		},
	}

	route := RouteResult(result)
	if route.Style != model.StyleRangePartial {
		t.Fatalf("Style=%+v, want 棕色", route.Style)
	}
	if route.Target != TargetUnmatched {
		t.Fatalf("Target=%v, want TargetUnmatched", route.Target)
	}
	if len(route.Suppliers) != 1 || route.Suppliers[0] != "" {
		t.Fatalf("部分匹配应输出供应商留空的单条记录: %v", route.Suppliers)
	}
}

func TestRouteResult_DuplicateOverridesColorNotRouting(t *testing.T) {
	// 重复 + 底层未匹配：黄色，仍进未找到表
	dupUnmatched := RouteResult(&model.MatchResult{IsDuplicate: true})
	if dupUnmatched.Style != model.StyleDuplicate {
		t.Fatalf("Style=%+v, want 黄色", dupUnmatched.Style)
	}
	if dupUnmatched.Target != TargetUnmatched {
		t.Fatalf("Target=%v, want TargetUnmatched", dupUnmatched.Target)
	}

	// 重复 + 范围全匹配：黄色，但仍按匹配成功路由
	dupMatched := RouteResult(&model.MatchResult{
		IsDuplicate: true,
		IsDateRange: true,
		IsAllMatch:  true,
		MatchedSuppliers: []model.SupplierMatch{
			{Month: "202403", Supplier: "SupCo"},
		},
	})
	if dupMatched.Style != model.StyleDuplicate {
		t.Fatalf("Style=%+v, want 黄色", dupMatched.Style)
	}
	if dupMatched.Target != TargetMatched {
		t.Fatalf("Target=%v, want TargetMatched", dupMatched.Target)
	}
	if len(dupMatched.Suppliers) != 1 || dupMatched.Suppliers[0] != "SupCo" {
		t.Fatalf("Suppliers=%v", dupMatched.Suppliers)
	}
}

func TestStylePalette(t *testing.T) {
	// 颜色值与历史版本保持一致
	cases := []struct {
		style model.CellStyle
		fill  string
		font  string
	}{
		{model.StyleDuplicate, "FFFF00", "000000"},
		{model.StyleRangeComplete, "9370DB", "FFFFFF"},
		{model.StyleRangePartial, "8B4513", "FFFFFF"},
		{model.StyleMatched, "90EE90", "000000"},
		{model.StyleUnmatched, "FFB6C1", "000000"},
	}

	for _, c := range cases {
		if c.style.FillColor != c.fill || c.style.FontColor != c.font {
			t.Fatalf("style=%+v, want fill=%s font=%s", c.style, c.fill, c.font)
		}
	}
}
