package analyzer

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"supmatch/internal/model"
)

// ProgressEvent 分析进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/progress/done/cancelled/error
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
}

// RunOptions 一次分析运行的选项
type RunOptions struct {
	FilePath string  // 待分析的工作簿路径，结果保存回原文件
	Analyze  Options // 结果表配置
}

// RunOutcome 运行结束时通过 done 事件携带的结果
type RunOutcome struct {
	Stats      *model.AnalysisStats `json:"stats"`
	DurationMS int64                `json:"durationMs"`
}

// Runner 分析运行器：后台执行分析并通过通道上报进度
type Runner struct{}

// NewRunner 创建运行器
func NewRunner() *Runner {
	return &Runner{}
}

// Run 启动分析，返回进度通道
//
// 成功时工作簿原地保存后发出 done 事件；取消或出错时发出
// cancelled/error 事件且不保存，调用方看到的是全有或全无。
func (r *Runner) Run(opts RunOptions, cancel <-chan struct{}) <-chan ProgressEvent {
	events := make(chan ProgressEvent, 100)

	go func() {
		defer close(events)
		r.run(opts, cancel, events)
	}()

	return events
}

func (r *Runner) run(opts RunOptions, cancel <-chan struct{}, events chan<- ProgressEvent) {
	start := time.Now()

	send := func(e ProgressEvent) {
		e.Timestamp = time.Now()
		events <- e
	}

	send(ProgressEvent{
		Type:    "start",
		Message: "开始分析",
		Data:    map[string]string{"filename": filepath.Base(opts.FilePath)},
	})

	f, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		send(ProgressEvent{
			Type:    "error",
			Message: fmt.Sprintf("打开文件失败: %v", err),
		})
		return
	}
	defer f.Close()

	// 进度按百分比去抖，避免大表刷屏
	lastPercent := -1
	progress := func(done, total int) {
		percent := done * 100 / total
		if percent == lastPercent {
			return
		}
		lastPercent = percent
		send(ProgressEvent{
			Type:    "progress",
			Message: "努力分析中....",
			Data:    map[string]int{"percent": percent, "done": done, "total": total},
		})
	}

	stats, err := Analyze(f, opts.Analyze, cancel, progress)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			send(ProgressEvent{Type: "cancelled", Message: "用户取消了操作"})
			return
		}
		send(ProgressEvent{
			Type:    "error",
			Message: fmt.Sprintf("分析失败: %v", err),
		})
		return
	}

	if err := f.Save(); err != nil {
		send(ProgressEvent{
			Type:    "error",
			Message: fmt.Sprintf("保存结果失败: %v", err),
		})
		return
	}

	send(ProgressEvent{
		Type:    "done",
		Message: "分析完成",
		Data: RunOutcome{
			Stats:      stats,
			DurationMS: time.Since(start).Milliseconds(),
		},
	})
}
