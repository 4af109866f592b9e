package s3store

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

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
)

type stubAPI struct {
	put     *s3.PutObjectInput
	body    string
	deleted []string
	err     error
}

func (s *stubAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.put = params
	raw, _ := io.ReadAll(params.Body)
	s.body = string(raw)
	return &s3.PutObjectOutput{}, nil
}

func (s *stubAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	s.deleted = append(s.deleted, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, s.err
}

func (s *stubAPI) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, s.err
}

func TestPutUploadsAndReturnsURL(t *testing.T) {
	api := &stubAPI{}
	client := newWithAPI(api, config.StorageConfig{Bucket: "media", Region: "us-east-1"})

	url, err := client.Put(context.Background(), "products/a.png", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)

	assert.Equal(t, "https://media.s3.us-east-1.amazonaws.com/products/a.png", url)
	require.NotNil(t, api.put)
	assert.Equal(t, "media", aws.ToString(api.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(api.put.ContentType))
	assert.Equal(t, int64(9), aws.ToInt64(api.put.ContentLength))
	assert.Equal(t, "png-bytes", api.body)
}

func TestPublicURLUsesConfiguredBase(t *testing.T) {
	client := newWithAPI(&stubAPI{}, config.StorageConfig{Bucket: "media", PublicBaseURL: "https://cdn.example.com/"})
	assert.Equal(t, "https://cdn.example.com/products/x.webp", client.PublicURL("/products/x.webp"))
}

func TestPutPropagatesErrors(t *testing.T) {
	client := newWithAPI(&stubAPI{err: errors.New("access denied")}, config.StorageConfig{Bucket: "media"})

	_, err := client.Put(context.Background(), "k", "image/png", strings.NewReader("x"), 1)
	require.Error(t, err)

	_, err = client.Put(context.Background(), " ", "image/png", strings.NewReader("x"), 1)
	require.Error(t, err)
}

func TestDeleteSkipsEmptyKey(t *testing.T) {
	api := &stubAPI{}
	client := newWithAPI(api, config.StorageConfig{Bucket: "media"})

	require.NoError(t, client.Delete(context.Background(), ""))
	require.NoError(t, client.Delete(context.Background(), "products/a.png"))
	assert.Equal(t, []string{"products/a.png"}, api.deleted)
}

func TestNewClientRequiresBucket(t *testing.T) {
	_, err := NewClient(context.Background(), config.StorageConfig{}, nil)
	require.Error(t, err)
}
