package matcher

import (
	"testing"

	"supmatch/internal/model"
)

func TestBuildIndex_PreservesOrderAndDuplicates(t *testing.T) {
	index := BuildIndex([]ReferenceRow{
		{"202403", "Acme", "Widget", "SupA"},
		{"202403", "Acme", "Widget", "SupB"},
		{"202403", "Acme", "Widget", "SupA"}, // 重复行原样保留
	})

	key := model.Key{Date: "202403", Customer: "Acme", Product: "WIDGET"}
	suppliers := index[key]
	if len(suppliers) != 3 {
		t.Fatalf("suppliers=%v, want 3 条", suppliers)
	}
	if suppliers[0] != "SupA" || suppliers[1] != "SupB" || suppliers[2] != "SupA" {
		t.Fatalf("插入顺序被破坏: %v", suppliers)
	}
}

func TestBuildIndex_NormalizesFields(t *testing.T) {
	index := BuildIndex([]ReferenceRow{
		{"2024-03", "客户A（中国）", "widget", "SupCo"},
	})

	key := model.Key{Date: "202403", Customer: "客户A(中国)", Product: "WIDGET"}
	if got := index[key]; len(got) != 1 || got[0] != "SupCo" {
		t.Fatalf("标准化键未命中: %v", index)
	}
}

func TestClassify_SingleMatch(t *testing.T) {
	index := BuildIndex([]ReferenceRow{
		{"202403", "Acme", "Widget", "SupCo"},
	})
	c := NewClassifier(index)

	// 候选数据与原表经标准化后落到同一键
	result := c.ClassifyRaw("2024-03", "Acme", "WIDGET")
	if result.IsDuplicate || result.IsDateRange || !result.IsMatch {
		t.Fatalf("result=%+v, want 单条匹配", result)
	}
	if len(result.MatchedSuppliers) != 1 ||
		result.MatchedSuppliers[0] != (model.SupplierMatch{Month: "202403", Supplier: "SupCo"}) {
		t.Fatalf("MatchedSuppliers=%v", result.MatchedSuppliers)
	}
}

func TestClassify_ExactDuplicate(t *testing.T) {
	c := NewClassifier(BuildIndex(nil))

	first := c.ClassifyRaw("202403", "A", "X")
	if first.IsDuplicate {
		t.Fatalf("首行不应判重: %+v", first)
	}
	if first.IsMatch || first.IsDateRange {
		t.Fatalf("空原表不应匹配: %+v", first)
	}

	second := c.ClassifyRaw("202403", "A", "X")
	if !second.IsDuplicate {
		t.Fatalf("重复行未检出: %+v", second)
	}
	// 重复的单条数据不再查找，匹配列表为空
	if second.IsMatch || len(second.MatchedSuppliers) != 0 {
		t.Fatalf("重复行不应再匹配: %+v", second)
	}
}

func TestClassify_RangeThenSingleOverlap(t *testing.T) {
	c := NewClassifier(BuildIndex(nil))

	first := c.ClassifyRaw("2024年3-4月", "A", "X")
	if !first.IsDateRange || first.IsDuplicate {
		t.Fatalf("首行应为非重复范围: %+v", first)
	}

	// 202404 已被先前范围覆盖
	second := c.ClassifyRaw("202404", "A", "X")
	if !second.IsDuplicate {
		t.Fatalf("范围覆盖的单月未判重: %+v", second)
	}

	// 不同客户不受影响
	other := c.ClassifyRaw("202404", "B", "X")
	if other.IsDuplicate {
		t.Fatalf("不同客户误判重: %+v", other)
	}
}

func TestClassify_SingleThenRangeOverlap(t *testing.T) {
	c := NewClassifier(BuildIndex(nil))

	c.ClassifyRaw("202404", "A", "X")

	// 后到的范围与已处理的单月重叠
	second := c.Classify(model.MonthRange([]string{"202403", "202404"}), "A", "X")
	if !second.IsDateRange || !second.IsDuplicate {
		t.Fatalf("范围与单月重叠未判重: %+v", second)
	}
}

func TestClassify_RangeAllMatch(t *testing.T) {
	index := BuildIndex([]ReferenceRow{
		{"202403", "客户", "产品", "Sup1"},
		{"202404", "客户", "产品", "Sup2"},
		{"202405", "客户", "产品", "Sup1"},
	})
	c := NewClassifier(index)

	result := c.ClassifyRaw("2024年3月到5月", "客户", "产品")
	if !result.IsDateRange || !result.IsAllMatch {
		t.Fatalf("范围应全匹配: %+v", result)
	}

	want := []model.SupplierMatch{
		{Month: "202403", Supplier: "Sup1"},
		{Month: "202404", Supplier: "Sup2"},
		{Month: "202405", Supplier: "Sup1"},
	}
	if len(result.MatchedSuppliers) != len(want) {
		t.Fatalf("MatchedSuppliers=%v", result.MatchedSuppliers)
	}
	for i, m := range want {
		if result.MatchedSuppliers[i] != m {
			t.Fatalf("第 %d 条=%v, want %v", i, result.MatchedSuppliers[i], m)
		}
	}
}

func TestClassify_RangePartialMatch(t *testing.T) {
	// 原表只有 202403 和 202404，缺 202405
	index := BuildIndex([]ReferenceRow{
		{"202403", "客户", "产品", "SupCo"},
		{"202404", "客户", "产品", "SupCo"},
	})
	c := NewClassifier(index)

	result := c.ClassifyRaw("2024年3-5月", "客户", "产品")
	if !result.IsDateRange {
		t.Fatalf("应识别为范围: %+v", result)
	}
	if result.IsAllMatch {
		t.Fatalf("缺月份时不应全匹配: %+v", result)
	}
	// 已命中的月份仍被收集
	if len(result.MatchedSuppliers) != 2 {
		t.Fatalf("MatchedSuppliers=%v", result.MatchedSuppliers)
	}
}

func TestClassify_RangeNoMonthsMatched(t *testing.T) {
	c := NewClassifier(BuildIndex(nil))

	result := c.Classify(model.MonthRange([]string{"202403", "202404"}), "A", "X")
	if !result.IsDateRange || result.IsAllMatch || len(result.MatchedSuppliers) != 0 {
		t.Fatalf("空原表范围不应匹配: %+v", result)
	}
}

func TestClassify_RangeOverwritesPairRecord(t *testing.T) {
	c := NewClassifier(BuildIndex(nil))

	c.Classify(model.MonthRange([]string{"202401", "202402"}), "A", "X")
	// 覆盖同对的范围记录
	c.Classify(model.MonthRange([]string{"202405", "202406"}), "A", "X")

	// 旧范围的月份不再参与判重
	old := c.ClassifyRaw("202401", "A", "X")
	if old.IsDuplicate {
		t.Fatalf("被覆盖的范围月份仍判重: %+v", old)
	}

	fresh := c.ClassifyRaw("202405", "A", "X")
	if !fresh.IsDuplicate {
		t.Fatalf("现行范围月份未判重: %+v", fresh)
	}
}

func TestClassify_UnparsedDateActsAsOpaqueKey(t *testing.T) {
	index := BuildIndex([]ReferenceRow{
		{"未知", "A", "X", "SupCo"},
	})
	c := NewClassifier(index)

	// 双方同样无法解析时按字面值相等匹配
	result := c.ClassifyRaw("未知", "A", "X")
	if !result.IsMatch {
		t.Fatalf("未解析日期应按字面匹配: %+v", result)
	}

	again := c.ClassifyRaw("未知", "A", "X")
	if !again.IsDuplicate {
		t.Fatalf("未解析日期重复未检出: %+v", again)
	}
}
