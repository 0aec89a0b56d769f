package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

const genericContentType = "application/octet-stream"

// FileUseCase reports metadata of uploaded files.
type FileUseCase struct{}

func NewFileUseCase() *FileUseCase {
	return &FileUseCase{}
}

// Analyse returns the metadata of an uploaded file. The declared content type
// is trusted unless it is missing or generic, in which case the type is
// detected from the leading bytes of content.
func (uc *FileUseCase) Analyse(
	_ context.Context,
	name, declaredType string,
	size int64,
	content io.Reader,
) (*entity.FileMetadata, error) {
	const op = "usecase.FileUseCase.Analyse"

	contentType := declaredType
	if contentType == "" || contentType == genericContentType {
		mtype, err := mimetype.DetectReader(content)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to detect content type: %w", op, err)
		}
		contentType = mtype.String()
	}

	return &entity.FileMetadata{
		Name: name,
		Type: contentType,
		Size: size,
	}, nil
}
