// Package normalizer 将异构的日期/客户/产品文本归一为规范键。
// 所有函数均为全函数：任何输入都返回结果，不产生错误。
package normalizer

import (
	"strings"
	"unicode"

	"supmatch/internal/model"
)

// Normalize 按列角色标准化数据，返回规范化字符串
//
// 空输入直接返回空串；所有空白字符（含全角空格）先行剔除，
// 再按角色做各自的折叠处理。
func Normalize(value string, role model.ColumnRole) string {
	if value == "" {
		return ""
	}

	value = stripWhitespace(value)

	switch role {
	case model.RoleDate:
		return NormalizeDate(value).Token()
	case model.RoleCustomer:
		return normalizeCustomerName(value)
	case model.RoleProduct:
		return normalizeProductName(value)
	}

	return value
}

// stripWhitespace 移除所有 Unicode 空白字符（含全角空格 U+3000）
func stripWhitespace(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}

// punctFolder 全角标点折叠为半角，并去掉全角空格
var punctFolder = strings.NewReplacer(
	"（", "(",
	"）", ")",
	"：", ":",
	"，", ",",
	"“", `"`,
	"”", `"`,
	"　", "",
)

// normalizeCustomerName 标准化客户名称，大小写保持不变
func normalizeCustomerName(value string) string {
	return punctFolder.Replace(value)
}

// normalizeProductName 标准化产品名称
// 产品编码不区分大小写，折叠标点后整体转为大写
func normalizeProductName(value string) string {
	return strings.ToUpper(punctFolder.Replace(value))
}
