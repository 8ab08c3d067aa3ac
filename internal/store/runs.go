package store

import (
	"fmt"

	"supmatch/internal/model"
)

// InsertRun 记录一次已完成的分析运行，返回记录 ID
// 只有完整跑完并保存成功的运行才会入库，取消与失败不留痕
func (s *Store) InsertRun(run *model.AnalysisRun) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO analysis_runs (
			file_name, total, matched, unmatched, match_rate, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.FileName, run.Total, run.Matched, run.Unmatched,
		run.MatchRate, run.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	return id, nil
}

// ListRuns 按时间倒序返回最近的分析运行记录
func (s *Store) ListRuns(limit int) ([]*model.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, file_name, total, matched, unmatched, match_rate, duration_ms, created_at
		FROM analysis_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	result := make([]*model.AnalysisRun, 0)
	for rows.Next() {
		run := &model.AnalysisRun{}
		if err := rows.Scan(
			&run.ID, &run.FileName, &run.Total, &run.Matched,
			&run.Unmatched, &run.MatchRate, &run.DurationMS, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		result = append(result, run)
	}

	return result, rows.Err()
}

// CountRuns 运行记录总数
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM analysis_runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count analysis runs: %w", err)
	}
	return n, nil
}
