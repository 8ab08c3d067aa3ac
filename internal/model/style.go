package model

// CellStyle 单元格样式：填充色 + 字体色（十六进制 RGB，不含 #）
type CellStyle struct {
	FillColor string `json:"fillColor"`
	FontColor string `json:"fontColor"`
}

// 预定义样式，颜色值与历史版本保持一致，不可改动
var (
	// StyleDuplicate 重复数据（黄色）
	StyleDuplicate = CellStyle{FillColor: "FFFF00", FontColor: "000000"}
	// StyleRangeComplete 日期范围全部匹配（紫色）
	StyleRangeComplete = CellStyle{FillColor: "9370DB", FontColor: "FFFFFF"}
	// StyleRangePartial 日期范围部分匹配（棕色）
	StyleRangePartial = CellStyle{FillColor: "8B4513", FontColor: "FFFFFF"}
	// StyleMatched 单条匹配成功（绿色）
	StyleMatched = CellStyle{FillColor: "90EE90", FontColor: "000000"}
	// StyleUnmatched 未匹配（红色）
	StyleUnmatched = CellStyle{FillColor: "FFB6C1", FontColor: "000000"}
)
