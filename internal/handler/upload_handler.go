package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/logger"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/storage"
	"github.com/gin-gonic/gin"
)

// 只允许图片入库
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type UploadHandler struct {
	store *storage.Store
}

func NewUploadHandler(store *storage.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload 接收 base64 载荷写入对象存储，返回稳定 URL。
// 前端上传图片拿到 URL 后，数据库只保存 URL
func (h *UploadHandler) Upload(c *gin.Context) {
	var body struct {
		File     string `json:"file"`
		Pathname string `json:"pathname"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.File == "" {
		Fail(c, http.StatusBadRequest, "缺少文件内容")
		return
	}

	data, contentType, err := decodeDataURI(body.File)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !allowedContentTypes[contentType] {
		Fail(c, http.StatusBadRequest, "仅允许上传图片")
		return
	}

	key := storage.ObjectKey("uploads", body.Pathname)
	url, err := h.store.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		logger.Error("Upload failed for %s: %v", key, err)
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

// DeleteBlob 按 URL 删除对象，仅允许本服务托管域名，防止误删外部资源
func (h *UploadHandler) DeleteBlob(c *gin.Context) {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.URL == "" {
		Fail(c, http.StatusBadRequest, "缺少 url")
		return
	}

	if !h.store.IsManagedURL(body.URL) {
		Fail(c, http.StatusBadRequest, "仅允许删除本服务托管的 URL")
		return
	}

	if err := h.store.DeleteByURL(c.Request.Context(), body.URL); err != nil {
		logger.Error("Blob delete failed for %s: %v", body.URL, err)
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, nil)
}

// decodeDataURI 解出 data-URI 或裸 base64 的字节流和声明的类型
func decodeDataURI(raw string) ([]byte, string, error) {
	contentType := ""
	payload := raw
	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ",")
		if idx < 0 {
			return nil, "", errDataURI
		}
		meta := raw[len("data:"):idx]
		payload = raw[idx+1:]
		if semi := strings.Index(meta, ";"); semi >= 0 {
			contentType = meta[:semi]
		} else {
			contentType = meta
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errDataURI
	}
	return data, contentType, nil
}
