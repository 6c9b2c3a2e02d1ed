package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"naikkelas/config"
	"naikkelas/pkg/snowflake"
	"naikkelas/types"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// OssService 对话附件的 blob 存储，上传后返回公开 URL
type OssService struct {
	Client     *oss.Client
	BucketName string
	Endpoint   string
}

var _ IOssService = (*OssService)(nil)

type IOssService interface {
	UploadAttachment(ctx context.Context, userID string, header *multipart.FileHeader) (*types.UploadResp, error)
	PublicURL(objectKey string) string
}

func NewOssService(cfg *config.OssConfig) IOssService {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	return &OssService{
		Client:     oss.NewClient(ossCfg),
		BucketName: cfg.Bucket,
		Endpoint:   cfg.Endpoint,
	}
}

func (s *OssService) UploadAttachment(ctx context.Context, userID string, header *multipart.FileHeader) (*types.UploadResp, error) {
	const maxSize int64 = 10 << 20 // 10MB

	if header == nil {
		return nil, fmt.Errorf("missing file")
	}
	if header.Size <= 0 || header.Size > maxSize {
		return nil, fmt.Errorf("file size invalid")
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seeker, ok := f.(io.ReadSeeker)
	if !ok {
		return nil, fmt.Errorf("uploaded file is not seekable")
	}

	// MIME 校验（读取前 512 bytes）
	head := make([]byte, 512)
	n, _ := seeker.Read(head)
	contentType := http.DetectContentType(head[:n])
	allowedMime := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
	if !allowedMime[contentType] {
		return nil, fmt.Errorf("unsupported file type: %s", contentType)
	}
	_, _ = seeker.Seek(0, io.SeekStart)

	objectKey := fmt.Sprintf("attachment/%s/%s/%d",
		time.Now().Format("2006/01/02"),
		userID,
		snowflake.GenID(),
	)

	limited := io.LimitReader(seeker, maxSize+1)
	if _, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey),
		Body:   limited,
	}); err != nil {
		return nil, err
	}

	return &types.UploadResp{Url: s.PublicURL(objectKey)}, nil
}

func (s *OssService) PublicURL(objectKey string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, s.Endpoint, objectKey)
}
