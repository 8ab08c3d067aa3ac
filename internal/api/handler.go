package api

import (
	"github.com/gin-gonic/gin"

	"supmatch/internal/config"
	"supmatch/internal/store"
)

// Handler API 处理器
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	uploadDir string
	downloads *resultDownloadStore
	runs      *runRegistry
}

// NewHandler 创建 API 处理器
func NewHandler(store *store.Store, cfg *config.AppConfig, uploadDir string) *Handler {
	return &Handler{
		store:     store,
		cfg:       cfg,
		uploadDir: uploadDir,
		downloads: newResultDownloadStore(),
		runs:      newRunRegistry(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 工作簿上传与预览
	router.POST("/upload", h.Upload)

	// 匹配分析
	router.POST("/analyze/stream", h.AnalyzeStream)
	router.POST("/analyze/cancel", h.CancelAnalyze)
	router.GET("/analyze/download/:token", h.DownloadResult)

	// 标准化调试
	router.POST("/normalize", h.NormalizePreview)

	// 运行历史
	router.GET("/runs", h.ListRuns)
}
