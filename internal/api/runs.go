package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"supmatch/internal/model"
	"supmatch/internal/normalizer"
)

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	count, err := h.store.CountRuns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取运行记录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service":  "supmatch",
		"runCount": count,
	})
}

// ListRuns 运行历史
// GET /api/runs?limit=50
func (h *Handler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	runs, err := h.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取运行记录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// NormalizeRequest 标准化预览请求
type NormalizeRequest struct {
	Date     string `json:"date"`
	Customer string `json:"customer"`
	Product  string `json:"product"`
}

// NormalizePreview 预览一行数据标准化后的搜索键，用于排查匹配失败
// POST /api/normalize
func (h *Handler) NormalizePreview(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据"})
		return
	}

	date := normalizer.NormalizeDate(req.Date)

	c.JSON(http.StatusOK, gin.H{
		"dateKey":     date.Token(),
		"isDateRange": date.IsRange(),
		"months":      date.Months,
		"customerKey": normalizer.Normalize(req.Customer, model.RoleCustomer),
		"productKey":  normalizer.Normalize(req.Product, model.RoleProduct),
	})
}
