// Package matcher 实现供应商匹配引擎：查找索引、逐行分类与结果路由。
package matcher

import (
	"supmatch/internal/model"
	"supmatch/internal/normalizer"
)

// ReferenceRow 匹配原表的一行：日期、客户、产品原文 + 供应商名称
type ReferenceRow struct {
	DateText     string
	CustomerText string
	ProductText  string
	Supplier     string
}

// SupplierIndex 规范化键到供应商列表的查找索引
// 供应商保持原表行序，重复条目原样保留，不在建索引阶段去重
type SupplierIndex map[model.Key][]string

// BuildIndex 从匹配原表行构建查找索引
//
// 每行的三个字段经标准化后构成键。原表默认填写单月日期；
// 若某行日期恰好解析为范围，则按其字面范围键存储，
// 单月查找永远不会命中它，属接受的行为。
func BuildIndex(rows []ReferenceRow) SupplierIndex {
	index := make(SupplierIndex, len(rows))

	for _, row := range rows {
		key := model.Key{
			Date:     normalizer.Normalize(row.DateText, model.RoleDate),
			Customer: normalizer.Normalize(row.CustomerText, model.RoleCustomer),
			Product:  normalizer.Normalize(row.ProductText, model.RoleProduct),
		}
		index[key] = append(index[key], row.Supplier)
	}

	return index
}
