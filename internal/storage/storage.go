package storage

import "mime/multipart"

// Uploader 抽象文件存储后端，本地、S3 和 GCS 各自实现
type Uploader interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}
