package util

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// MaxImageSize 帖子主图的大小上限（10 MiB）
const MaxImageSize = 10 << 20

// 允许的帖子主图扩展名
var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".gif"}

// GenerateUniqueFilename 生成唯一的文件名
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	name := filepath.Base(originalFilename)
	name = name[:len(name)-len(ext)]

	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return name + "_" + timestamp + ext
}

// ValidateImage 校验帖子主图：大小和扩展名。校验在任何存储写入之前执行
func ValidateImage(file *multipart.FileHeader) error {
	if file.Size > MaxImageSize {
		return fmt.Errorf("image size exceeds the 10 MiB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported image format %q, accepted formats: jpg, jpeg, png, gif", ext)
}
