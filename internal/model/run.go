package model

import "time"

// SheetInfo 工作表信息
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"`
}

// AnalysisStats 单次分析运行的汇总统计
type AnalysisStats struct {
	Total     int    `json:"total"`
	Matched   int    `json:"matched"`
	Unmatched int    `json:"unmatched"`
	// Rate 匹配率百分比，保留一位小数（如 "66.7"）
	Rate string `json:"rate"`
}

// AnalysisRun 一次已完成分析的历史记录
type AnalysisRun struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"fileName"`
	Total      int       `json:"total"`
	Matched    int       `json:"matched"`
	Unmatched  int       `json:"unmatched"`
	MatchRate  string    `json:"matchRate"`
	DurationMS int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}
