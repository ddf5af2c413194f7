package entity

import (
	"strings"

	"forsign-esign/internal/domain/apierror"
)

// FileReference identifies a document previously uploaded to ForSign.
type FileReference struct {
	ID   string `json:"fileId"`
	Name string `json:"fileName"`
}

// NewFileReference rejects an empty id; the name is used as the document description.
func NewFileReference(id, name string) (FileReference, error) {
	if strings.TrimSpace(id) == "" {
		return FileReference{}, apierror.Argumentf("file_id", "document ID cannot be empty")
	}
	return FileReference{ID: id, Name: name}, nil
}
