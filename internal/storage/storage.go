package storage

import "mime/multipart"

// FileStorage 抽象媒体存储。本地存储返回相对路径，
// S3/GCS 返回完整的可访问URL
type FileStorage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}
