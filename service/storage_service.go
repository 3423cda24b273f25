package service

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// StorageService uploads complaint media to an S3-compatible bucket
// (Supabase storage in the default deployment) and hands back the
// public URL that goes into the complaint's imageUrl.
type StorageService struct {
	client          *s3.S3
	bucket          string
	publicURLPrefix string
}

// NewStorageService builds the S3 client for the configured endpoint.
func NewStorageService(accessKey, secretKey, region, endpoint, bucket, publicURLPrefix string) (*StorageService, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(region),
		Endpoint:         aws.String(endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}
	return &StorageService{
		client:          s3.New(sess),
		bucket:          bucket,
		publicURLPrefix: publicURLPrefix,
	}, nil
}

// UploadFile stores the file under a random UUID name (original
// extension preserved) and returns its public URL.
func (s *StorageService) UploadFile(data []byte, originalName, contentType string) (string, error) {
	key := uuid.New().String() + filepath.Ext(originalName)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to storage: %w", err)
	}

	return s.publicURLPrefix + key, nil
}
