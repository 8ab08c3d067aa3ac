package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supmatch/internal/analyzer"
	"supmatch/internal/model"
)

// runRegistry 进行中的分析运行注册表，支撑按 ID 取消
type runRegistry struct {
	mu      sync.Mutex
	cancels map[string]chan struct{}
}

func newRunRegistry() *runRegistry {
	return &runRegistry{cancels: make(map[string]chan struct{})}
}

func (r *runRegistry) add(runID string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan struct{})
	r.cancels[runID] = ch
	return ch
}

func (r *runRegistry) cancel(runID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.cancels[runID]
	if !ok {
		return false
	}
	close(ch)
	delete(r.cancels, runID)
	return true
}

func (r *runRegistry) remove(runID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cancels, runID)
}

// AnalyzeRequest 分析请求
type AnalyzeRequest struct {
	FileID   string `json:"fileId" form:"fileId"`
	FileName string `json:"fileName" form:"fileName"`
}

// AnalyzeStream 执行匹配分析 (SSE 流式响应)
// POST /api/analyze/stream
//
// 首个事件携带 runId，可用于 /analyze/cancel；
// done 事件携带统计结果与结果工作簿的一次性下载地址。
func (h *Handler) AnalyzeStream(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBind(&req); err != nil || req.FileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少文件 ID"})
		return
	}

	filePath, err := h.uploadPath(req.FileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := os.Stat(filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "上传文件不存在，请重新上传"})
		return
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = req.FileID + ".xlsx"
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	send := func(event analyzer.ProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	runID := uuid.New().String()
	cancel := h.runs.add(runID)
	defer h.runs.remove(runID)

	send(analyzer.ProgressEvent{
		Type:      "run",
		Message:   "分析已启动",
		Data:      map[string]string{"runId": runID, "filename": fileName},
		Timestamp: time.Now(),
	})

	runner := analyzer.NewRunner()
	events := runner.Run(analyzer.RunOptions{
		FilePath: filePath,
		Analyze: analyzer.Options{
			MatchedSheet:   h.cfg.Match.MatchedSheet,
			UnmatchedSheet: h.cfg.Match.UnmatchedSheet,
			SupplierHeader: h.cfg.Match.SupplierHeader,
		},
	}, cancel)

	for event := range events {
		if event.Type == "done" {
			event = h.finishRun(event, fileName, filePath)
		}
		send(event)
	}
}

// finishRun 运行成功收尾：入库历史记录并附上下载地址
func (h *Handler) finishRun(event analyzer.ProgressEvent, fileName, filePath string) analyzer.ProgressEvent {
	outcome, ok := event.Data.(analyzer.RunOutcome)
	if !ok || outcome.Stats == nil {
		return event
	}

	runRecord := &model.AnalysisRun{
		FileName:   fileName,
		Total:      outcome.Stats.Total,
		Matched:    outcome.Stats.Matched,
		Unmatched:  outcome.Stats.Unmatched,
		MatchRate:  outcome.Stats.Rate,
		DurationMS: outcome.DurationMS,
	}
	if _, err := h.store.InsertRun(runRecord); err != nil {
		// 历史记录失败不影响分析结果本身
		event.Message = "分析完成（历史记录写入失败）"
	}

	token := h.downloads.put(filePath, fileName, 10*time.Minute)

	event.Data = map[string]any{
		"stats":       outcome.Stats,
		"durationMs":  outcome.DurationMS,
		"downloadUrl": "/api/analyze/download/" + token,
	}
	return event
}

// CancelAnalyze 取消进行中的分析
// POST /api/analyze/cancel
func (h *Handler) CancelAnalyze(c *gin.Context) {
	var req struct {
		RunID string `json:"runId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RunID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 runId"})
		return
	}

	if !h.runs.cancel(req.RunID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "分析不存在或已结束"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// DownloadResult 下载分析结果工作簿（一次性链接）
// GET /api/analyze/download/:token
func (h *Handler) DownloadResult(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "结果文件不存在"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, item.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
}
