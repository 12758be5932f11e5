package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"github.com/tanmald/plate-check-mvp/internal/utils"
)

var AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/heic"}

var (
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrStorageDisabled    = errors.New("photo storage is not configured")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, fileHeader *multipart.FileHeader, folder string, allowedTypes ...string) (string, error)
		UploadBytes(ctx context.Context, fileName string, data []byte, folder string, allowedTypes ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetObjectKeyFromLink(link string) string
		GetPublicLinkKey(objectKey string) string
	}

	objectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	awsS3 struct {
		client objectAPI
		bucket string
		region string
	}
)

// NewAwsS3 builds the bucket client from AWS_* config keys. Static keys are
// used when present, otherwise the default credential chain.
func NewAwsS3(ctx context.Context) (AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" || region == "" {
		return nil, ErrStorageDisabled
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key := utils.GetConfig("AWS_ACCESS_KEY"); key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newAwsS3(s3.NewFromConfig(cfg), bucket, region), nil
}

func newAwsS3(client objectAPI, bucket, region string) *awsS3 {
	return &awsS3{client: client, bucket: bucket, region: region}
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, fileHeader *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return a.UploadBytes(ctx, fileName, data, folder, allowedTypes...)
}

func (a *awsS3) UploadBytes(ctx context.Context, fileName string, data []byte, folder string, allowedTypes ...string) (string, error) {
	mtype := mimetype.Detect(data)
	if len(allowedTypes) > 0 && !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return "", ErrFileTypeNotAllowed
	}

	objectKey := fileName + mtype.Extension()
	if folder != "" {
		objectKey = folder + "/" + objectKey
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mtype.String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if u.Host != fmt.Sprintf("%s.s3.%s.amazonaws.com", a.bucket, a.region) {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
