package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func ReadFile(bucket string, key string, ctx context.Context, outStream io.Writer) error {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}
	defer resp.Body.Close()

	_, err = io.Copy(outStream, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to copy object %s from bucket %s: %w", key, bucket, err)
	}

	return nil
}

func WriteFile(bucket string, key string, contentType string, ctx context.Context, body []byte) error {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s to bucket %s: %w", key, bucket, err)
	}

	return nil
}

// EvidenceStore keeps captured frames under a per-user, per-timestamp
// key and returns the URL stored on the clock event.
type EvidenceStore struct {
	Bucket  string
	BaseURL string
}

func NewEvidenceStore(bucket, baseURL string) *EvidenceStore {
	return &EvidenceStore{Bucket: bucket, BaseURL: baseURL}
}

// EvidenceKey is ponto/{uid}/{unix-millis}.jpg.
func EvidenceKey(userID string, capturedAt time.Time) string {
	return fmt.Sprintf("ponto/%s/%d.jpg", userID, capturedAt.UnixMilli())
}

func (s *EvidenceStore) SaveFrame(ctx context.Context, userID string, capturedAt time.Time, frame []byte) (string, error) {
	key := EvidenceKey(userID, capturedAt)
	if err := WriteFile(s.Bucket, key, "image/jpeg", ctx, frame); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.BaseURL, key), nil
}

// FetchReference downloads the stored reference image for comparison.
func (s *EvidenceStore) FetchReference(ctx context.Context, key string) ([]byte, error) {
	var buf bytes.Buffer
	if err := ReadFile(s.Bucket, key, ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
