package awsenv

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockS3 struct {
	GetObjectFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func (m *MockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.GetObjectFunc(ctx, params, optFns...)
}

func TestReadObject(t *testing.T) {
	t.Run("Sucesso", func(t *testing.T) {
		client := &MockS3{
			GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				assert.Equal(t, "configs", aws.ToString(params.Bucket))
				assert.Equal(t, "cli/products.yaml", aws.ToString(params.Key))
				return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("table:\n  name: X\n"))}, nil
			},
		}

		data, err := ReadObject(context.Background(), client, "s3://configs/cli/products.yaml")
		require.NoError(t, err)
		assert.Equal(t, "table:\n  name: X\n", string(data))
	})

	t.Run("URI inválida", func(t *testing.T) {
		for _, uri := range []string{"http://configs/x.yaml", "s3://configs", "s3:///x.yaml"} {
			_, err := ReadObject(context.Background(), &MockS3{}, uri)
			assert.Error(t, err, uri)
		}
	})

	t.Run("Erro ao baixar", func(t *testing.T) {
		client := &MockS3{
			GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return nil, errors.New("NoSuchKey")
			},
		}

		_, err := ReadObject(context.Background(), client, "s3://configs/missing.yaml")
		assert.ErrorContains(t, err, "NoSuchKey")
	})
}
