package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store 对象存储封装。数据库只保存 URL，避免 Base64 撑大数据行
type Store struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// New 创建对象存储客户端并确保 bucket 存在
func New(cfg config.StorageConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化对象存储失败: %w", err)
	}

	base := strings.TrimSuffix(cfg.PublicBase, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	s := &Store{client: client, bucket: cfg.Bucket, publicBase: base}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("检查 bucket 失败: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建 bucket 失败: %w", err)
		}
	}

	return s, nil
}

// Upload 按 key 上传数据，返回稳定访问 URL
func (s *Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("上传对象失败: %w", err)
	}
	return s.URLFor(key), nil
}

// URLFor 由 key 拼出对外访问 URL
func (s *Store) URLFor(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, key)
}

// IsManagedURL 判断 URL 是否指向本服务托管的对象。
// data-URI 和外部资源一律不认，防止误删
func (s *Store) IsManagedURL(rawURL string) bool {
	if rawURL == "" || strings.HasPrefix(rawURL, "data:") {
		return false
	}
	return strings.HasPrefix(rawURL, s.publicBase+"/"+s.bucket+"/")
}

// DeleteByURL 按 URL 删除托管对象
func (s *Store) DeleteByURL(ctx context.Context, rawURL string) error {
	key, ok := s.keyFromURL(rawURL)
	if !ok {
		return fmt.Errorf("非托管对象 URL: %s", rawURL)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("删除对象失败: %w", err)
	}
	return nil
}

// ListObjects 遍历 bucket 内全部对象
func (s *Store) ListObjects(ctx context.Context) <-chan minio.ObjectInfo {
	return s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true})
}

// RemoveObject 按 key 删除对象
func (s *Store) RemoveObject(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *Store) keyFromURL(rawURL string) (string, bool) {
	prefix := s.publicBase + "/" + s.bucket + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

// ObjectKey 生成唯一对象 key：目录/毫秒时间戳-随机后缀-净化后的原始文件名
func ObjectKey(dir, filename string) string {
	var b [4]byte
	rand.Read(b[:])
	name := SanitizeName(filename)
	return path.Join(dir, fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), hex.EncodeToString(b[:]), name))
}

// SanitizeName 清理文件名中不适合做对象 key 的字符
func SanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	out := sb.String()
	if out == "" || out == "." {
		out = "file"
	}
	return out
}
