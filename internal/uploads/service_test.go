package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type stubStore struct {
	key         string
	contentType string
	body        []byte
	size        int64
	err         error
}

func (s *stubStore) Put(_ context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	raw, _ := io.ReadAll(body)
	s.key, s.contentType, s.body, s.size = key, contentType, raw, size
	return "https://cdn.example.com/" + key, nil
}

func codeOf(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	return typed.Code()
}

func TestUploadStoresSniffedImage(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, config.StorageConfig{KeyPrefix: "/products/", MaxUploadMB: 1}, nil)

	res, err := svc.Upload(context.Background(), Input{FileName: "Válvula Bola.PNG", Body: bytes.NewReader(pngHeader)})
	require.NoError(t, err)

	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, int64(len(pngHeader)), res.Size)
	assert.Regexp(t, `^products/[0-9a-f-]{36}/válvula-bola\.png$`, res.Key)
	assert.Equal(t, "https://cdn.example.com/"+res.Key, res.URL)
	assert.Equal(t, res.Key, store.key)
	assert.Equal(t, "image/png", store.contentType)
	assert.Equal(t, pngHeader, store.body)
	assert.Equal(t, int64(len(pngHeader)), store.size)
}

func TestUploadIgnoresDeclaredExtension(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, config.StorageConfig{}, nil)

	res, err := svc.Upload(context.Background(), Input{FileName: "", Body: bytes.NewReader([]byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"))})
	require.NoError(t, err)

	assert.Equal(t, "image/gif", res.ContentType)
	assert.Regexp(t, `^[0-9a-f-]{36}/[0-9a-f-]{36}\.gif$`, res.Key)
}

func TestUploadRejectsNonImages(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, config.StorageConfig{}, nil)

	_, err := svc.Upload(context.Background(), Input{FileName: "foto.png", Body: strings.NewReader("definitely plain text")})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))
	assert.Empty(t, store.key)
}

func TestUploadEnforcesSizeCap(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, config.StorageConfig{MaxUploadMB: 1}, nil)
	require.Equal(t, int64(1<<20), svc.MaxBytes())

	oversized := append(append([]byte{}, pngHeader...), make([]byte, 1<<20)...)
	_, err := svc.Upload(context.Background(), Input{FileName: "big.png", Body: bytes.NewReader(oversized)})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))
	assert.Empty(t, store.key)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := NewService(&stubStore{}, config.StorageConfig{}, nil)
	_, err := svc.Upload(context.Background(), Input{FileName: "x.png", Body: bytes.NewReader(nil)})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))
}

func TestUploadWithoutStorageIsUnavailable(t *testing.T) {
	svc := NewService(nil, config.StorageConfig{}, nil)
	_, err := svc.Upload(context.Background(), Input{FileName: "x.png", Body: bytes.NewReader(pngHeader)})
	assert.Equal(t, pkgerrors.CodeDependency, codeOf(t, err))
}

func TestUploadWrapsStoreFailure(t *testing.T) {
	svc := NewService(&stubStore{err: errors.New("s3 down")}, config.StorageConfig{}, nil)
	_, err := svc.Upload(context.Background(), Input{FileName: "x.png", Body: bytes.NewReader(pngHeader)})
	assert.Equal(t, pkgerrors.CodeDependency, codeOf(t, err))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "passwd", sanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "foto.jpg", sanitizeFileName(`C:\fotos\Foto.JPG`))
	assert.Equal(t, "", sanitizeFileName("  "))
}
