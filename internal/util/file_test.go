package util

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUniqueFilename(t *testing.T) {
	name := GenerateUniqueFilename("photo.png")
	assert.True(t, strings.HasPrefix(name, "photo_"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	// 两次生成的文件名不应相同
	other := GenerateUniqueFilename("photo.png")
	assert.NotEqual(t, name, other)
}

func TestValidateImage(t *testing.T) {
	valid := &multipart.FileHeader{Filename: "cat.png", Size: 1024}
	assert.NoError(t, ValidateImage(valid))

	// 扩展名大小写不敏感
	upper := &multipart.FileHeader{Filename: "cat.JPG", Size: 1024}
	assert.NoError(t, ValidateImage(upper))

	// 刚好 10 MiB 是允许的
	atLimit := &multipart.FileHeader{Filename: "cat.gif", Size: MaxImageSize}
	assert.NoError(t, ValidateImage(atLimit))
}

func TestValidateImageTooLarge(t *testing.T) {
	file := &multipart.FileHeader{Filename: "cat.png", Size: 11 << 20}
	err := ValidateImage(file)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "10 MiB")
}

func TestValidateImageUnsupportedFormat(t *testing.T) {
	file := &multipart.FileHeader{Filename: "cat.bmp", Size: 1024}
	err := ValidateImage(file)
	assert.Error(t, err)
	// 错误信息要列出允许的格式集合
	assert.Contains(t, err.Error(), "jpg, jpeg, png, gif")
	assert.Contains(t, err.Error(), ".bmp")
}
