package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

var allowedTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// ObjectStore persists an object and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// Service accepts product images and hands them to object storage.
type Service interface {
	Upload(ctx context.Context, input Input) (*Result, error)
	MaxBytes() int64
}

type Input struct {
	FileName string
	Body     io.Reader
}

type Result struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type service struct {
	store    ObjectStore
	prefix   string
	maxBytes int64
	logg     *logger.Logger
}

// NewService builds the upload service. A nil store yields a service that
// reports storage as unavailable.
func NewService(store ObjectStore, cfg config.StorageConfig, logg *logger.Logger) Service {
	return &service{
		store:    store,
		prefix:   strings.Trim(strings.TrimSpace(cfg.KeyPrefix), "/"),
		maxBytes: cfg.MaxUploadBytes(),
		logg:     logg,
	}
}

func (s *service) MaxBytes() int64 {
	return s.maxBytes
}

func (s *service) Upload(ctx context.Context, input Input) (*Result, error) {
	if s.store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "almacenamiento de archivos no configurado")
	}
	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "archivo requerido")
	}

	data, err := io.ReadAll(io.LimitReader(input.Body, s.maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "no se pudo leer el archivo")
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "archivo vacío")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("el archivo excede el máximo de %d MB", s.maxBytes>>20))
	}

	detected := mimetype.Detect(data)
	contentType, ok := allowed(detected)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tipo de archivo no permitido").
			WithDetails(map[string]any{"detected": detected.String(), "allowed": allowedTypes})
	}

	key := s.buildKey(uuid.New(), input.FileName, detected.Extension())
	url, err := s.store.Put(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload object")
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"key": key, "content_type": contentType, "size": len(data)})
		s.logg.Info(ctx, "upload.stored")
	}

	return &Result{Key: key, URL: url, ContentType: contentType, Size: int64(len(data))}, nil
}

func allowed(detected *mimetype.MIME) (string, bool) {
	for _, candidate := range allowedTypes {
		if detected.Is(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (s *service) buildKey(id uuid.UUID, fileName, ext string) string {
	name := sanitizeFileName(fileName)
	if name == "" {
		name = id.String() + ext
	} else if path.Ext(name) == "" {
		name += ext
	}
	key := id.String() + "/" + name
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.Trim(b.String(), "-_.")
}
