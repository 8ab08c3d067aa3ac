package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"supmatch/internal/model"
)

// Upload 上传待分析的工作簿
// POST /api/upload
//
// 文件以 uuid 命名保存到上传目录，返回文件 ID 与工作表清单，
// 供后续 /analyze/stream 按 ID 引用。
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	uploaded := files[0]
	if !strings.HasSuffix(strings.ToLower(uploaded.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "仅支持 .xlsx 工作簿"})
		return
	}

	fileID := uuid.New().String()
	savePath := filepath.Join(h.uploadDir, fileID+".xlsx")

	if err := c.SaveUploadedFile(uploaded, savePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}

	sheets, err := inspectWorkbook(savePath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("读取工作簿失败: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fileId":   fileID,
		"fileName": uploaded.Filename,
		"sheets":   sheets,
	})
}

// inspectWorkbook 打开工作簿并收集工作表信息
func inspectWorkbook(path string) ([]model.SheetInfo, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]model.SheetInfo, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		sheets = append(sheets, model.SheetInfo{
			Name:     name,
			RowCount: len(rows),
		})
	}

	return sheets, nil
}

// uploadPath 由文件 ID 得到上传文件路径，拒绝路径穿越
func (h *Handler) uploadPath(fileID string) (string, error) {
	if fileID == "" || fileID != filepath.Base(fileID) {
		return "", fmt.Errorf("无效的文件 ID")
	}
	return filepath.Join(h.uploadDir, fileID+".xlsx"), nil
}
