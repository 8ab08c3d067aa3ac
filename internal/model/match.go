package model

import "strings"

// ColumnRole 数据列角色，决定标准化策略
type ColumnRole int

const (
	// RoleDate 日期列
	RoleDate ColumnRole = iota
	// RoleCustomer 客户名称列
	RoleCustomer
	// RoleProduct 产品名称列
	RoleProduct
)

// DateKey 标准化后的日期键
//
// 解析成功时 Months 为升序的 YYYYMM 月份列表（单月时长度为 1）；
// 未能解析时 Months 为空，Raw 保留清洗后的原始文本，整体当作单键参与比较。
type DateKey struct {
	Months []string
	Raw    string
}

// SingleMonth 构造单月日期键
func SingleMonth(month string) DateKey {
	return DateKey{Months: []string{month}}
}

// MonthRange 构造日期范围键
func MonthRange(months []string) DateKey {
	return DateKey{Months: months}
}

// UnparsedDate 构造未解析日期键，保留原始文本
func UnparsedDate(raw string) DateKey {
	return DateKey{Raw: raw}
}

// IsRange 是否为日期范围（跨多个月份）
func (k DateKey) IsRange() bool {
	return len(k.Months) > 1
}

// Token 规范化字符串形式，作为相等比较与查找的单位
// 范围键为逗号连接的月份列表，未解析键为原始文本
func (k DateKey) Token() string {
	if len(k.Months) > 0 {
		return strings.Join(k.Months, ",")
	}
	return k.Raw
}

// Key 规范化键三元组 (日期, 客户, 产品)，索引与去重的单位
type Key struct {
	Date     string
	Customer string
	Product  string
}

// PairKey (客户, 产品) 二元组，用于记录日期范围归属
type PairKey struct {
	Customer string
	Product  string
}

// SupplierMatch 单个匹配结果：月份 + 供应商
type SupplierMatch struct {
	Month    string `json:"month"`
	Supplier string `json:"supplier"`
}

// MatchResult 单行数据的匹配结果
type MatchResult struct {
	IsDuplicate bool `json:"isDuplicate"`
	IsDateRange bool `json:"isDateRange"`
	// IsAllMatch 仅在 IsDateRange 时有意义：范围内每个月份都有匹配
	IsAllMatch bool `json:"isAllMatch"`
	// IsMatch 仅在非范围时有意义：单键查找命中
	IsMatch bool `json:"isMatch"`
	// MatchedSuppliers 按索引插入顺序排列的 (月份, 供应商) 列表
	MatchedSuppliers []SupplierMatch `json:"matchedSuppliers"`
}

// Matched 该行是否按匹配成功路由（重复标记不影响路由）
func (r *MatchResult) Matched() bool {
	return r.IsMatch || (r.IsDateRange && r.IsAllMatch)
}
