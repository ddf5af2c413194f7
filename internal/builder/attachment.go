package builder

import (
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
)

// Attachment asks a signer to provide a file (ID card, proof of address, ...)
// while signing.
type Attachment struct {
	name        string
	description string
	required    bool
	fileTypes   []entity.AttachmentFileType
	maxFiles    int
	inputs      []entity.InputAttachmentType
}

func NewAttachment(name, description string, required bool) (*Attachment, error) {
	if err := apierror.Validate("attachment_name", name, validation.Required.Error("attachment name cannot be empty")); err != nil {
		return nil, err
	}
	return &Attachment{
		name:        name,
		description: description,
		required:    required,
		maxFiles:    1,
	}, nil
}

func (a *Attachment) PermitFileType(t entity.AttachmentFileType) *Attachment {
	a.fileTypes = append(a.fileTypes, t)
	return a
}

func (a *Attachment) PermitInput(t entity.InputAttachmentType) *Attachment {
	a.inputs = append(a.inputs, t)
	return a
}

// SetMaxFilesAllowed defaults to 1.
func (a *Attachment) SetMaxFilesAllowed(n int) error {
	err := apierror.Validate("files_allowed", n,
		validation.Required.Error("must allow at least one file"),
		validation.Min(1).Error("must allow at least one file"),
	)
	if err != nil {
		return err
	}
	a.maxFiles = n
	return nil
}

// convert yields the wire DTO. The id stays 0 until the server assigns one.
func (a *Attachment) convert() entity.MemberAttachmentRequest {
	fileTypes := slices.Clone(a.fileTypes)
	if fileTypes == nil {
		fileTypes = []entity.AttachmentFileType{}
	}
	inputs := slices.Clone(a.inputs)
	if inputs == nil {
		inputs = []entity.InputAttachmentType{}
	}
	return entity.MemberAttachmentRequest{
		ID:              0,
		Name:            a.name,
		Description:     a.description,
		Required:        a.required,
		FileType:        fileTypes,
		FilesAllowed:    a.maxFiles,
		InputAttachment: inputs,
	}
}
