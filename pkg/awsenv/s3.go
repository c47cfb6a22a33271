package awsenv

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client interface para Mock
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func NewS3(cfg aws.Config) *s3.Client {
	return s3.NewFromConfig(cfg)
}

// ReadObject baixa o conteúdo de uma URI s3://bucket/chave.
func ReadObject(ctx context.Context, client S3Client, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "s3" {
		return nil, fmt.Errorf("URL S3 inválida: %s", uri)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("URL S3 sem bucket ou chave: %s", uri)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao baixar do S3: %w", err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
