package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"forsign-esign/internal/builder"
	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
)

// translator turns gateway input into builder calls. File names missing from
// the input are looked up in the file-reference cache.
type translator struct {
	files repository.FileReferenceCache
	warn  builder.WarningFunc
}

func (t *translator) build(ctx context.Context, in *entity.CreateOperationInput) (*entity.OperationRequest, []string, error) {
	b := builder.NewOperationBuilder(in.Name).OnWarning(t.warn)

	language := entity.LanguagePortuguese
	if in.Language != "" {
		parsed, err := entity.ParseLanguage(in.Language)
		if err != nil {
			return nil, nil, &apierror.ArgumentError{Field: "language", Err: err}
		}
		language = parsed
	}
	b.SetLanguage(language).
		SetSignersOrderRequirement(in.Ordered).
		SetInPersonSigning(in.InPerson).
		SetMemberMovementWarning(in.MemberMovementWarning)

	if in.DisplayCover != nil {
		b.SetDisplayCover(*in.DisplayCover)
	}
	if in.OptionalMessage != "" {
		b.WithOptionalMessage(in.OptionalMessage)
	}
	if in.ExternalID != "" {
		b.WithExternalID(in.ExternalID)
	}
	if in.ExpirationDate != "" {
		expiration, err := parseDate("expiration_date", in.ExpirationDate)
		if err != nil {
			return nil, nil, err
		}
		b.SetExpirationDate(expiration)
	}
	if in.ManualFinish {
		b.SetManualFinish(true)
	}
	if in.OperationModelID != 0 {
		if err := b.WithOperationModelID(in.OperationModelID); err != nil {
			return nil, nil, err
		}
	}
	for _, group := range in.Groups {
		if err := b.AddGroup(group); err != nil {
			return nil, nil, err
		}
	}
	if in.RedirectURL != "" {
		if err := b.WithRedirectURL(in.RedirectURL); err != nil {
			return nil, nil, err
		}
	}

	keys := make([]string, 0, len(in.Metadata))
	for key := range in.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := b.AddMetadata(key, in.Metadata[key]); err != nil {
			return nil, nil, err
		}
	}

	for i := range in.Signers {
		signer, err := t.signer(ctx, &in.Signers[i])
		if err != nil {
			return nil, nil, fmt.Errorf("signer %d: %w", i+1, err)
		}
		b.AddSigner(signer)
	}

	req, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return req, b.Warnings(), nil
}

func (t *translator) signer(ctx context.Context, in *entity.SignerInput) (*builder.Signer, error) {
	s, err := builder.NewSigner(in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	s.SetPhone(in.Phone).
		SetDocument(in.Document).
		SetRole(in.Role).
		SetFormTitle(in.FormTitle).
		SetFormDescription(in.FormDescription)
	if in.Observer {
		s.AsObserver()
	}

	notification, err := notificationFor(in)
	if err != nil {
		return nil, err
	}
	s.SetNotification(notification)

	authentication, err := authenticationFor(in)
	if err != nil {
		return nil, err
	}
	s.SetDoubleAuthentication(authentication)

	if in.Signature != nil {
		info, err := signatureFor(in.Signature)
		if err != nil {
			return nil, err
		}
		s.SetSignatureType(info)
	}

	for _, p := range in.Signatures {
		pos, err := t.position(ctx, p)
		if err != nil {
			return nil, err
		}
		if err := s.AddSignaturePosition(pos); err != nil {
			return nil, err
		}
	}
	for _, p := range in.Rubrics {
		pos, err := t.position(ctx, p)
		if err != nil {
			return nil, err
		}
		if err := s.AddRubricPosition(pos); err != nil {
			return nil, err
		}
	}
	if in.Tag != nil {
		file, err := t.file(ctx, in.Tag.FileID, in.Tag.FileName)
		if err != nil {
			return nil, err
		}
		tag, err := builder.NewTagPosition(file, in.Tag.Pattern)
		if err != nil {
			return nil, err
		}
		if err := s.SetTagSignaturePosition(tag); err != nil {
			return nil, err
		}
	}

	for _, a := range in.Attachments {
		attachment, err := attachmentFor(a)
		if err != nil {
			return nil, err
		}
		s.RequestAttachment(attachment)
	}
	for _, f := range in.FormFields {
		field, err := t.formField(ctx, f)
		if err != nil {
			return nil, err
		}
		s.AddFormField(field)
	}
	return s, nil
}

func notificationFor(in *entity.SignerInput) (builder.Notification, error) {
	switch strings.ToLower(in.Notification) {
	case "", "email":
		if in.Email == "" {
			return builder.NoNotification(), nil
		}
		return builder.NotifyByEmail(in.Email)
	case "none":
		return builder.NoNotification(), nil
	}
	return builder.Notification{}, apierror.Argumentf("notification", "unsupported notification: %s", in.Notification)
}

func authenticationFor(in *entity.SignerInput) (builder.DoubleAuthentication, error) {
	if in.Authentication == "" || strings.EqualFold(in.Authentication, "none") {
		return builder.NoAuthentication(), nil
	}
	channel, err := entity.ParseAuthenticationChannel(in.Authentication)
	if err != nil {
		return builder.DoubleAuthentication{}, &apierror.ArgumentError{Field: "authentication", Err: err}
	}
	switch channel {
	case entity.AuthenticationChannelSMS:
		return builder.SMSAuthentication(in.Phone)
	case entity.AuthenticationChannelWhatsApp:
		return builder.WhatsAppAuthentication(in.Phone)
	default:
		return builder.EmailAuthentication(in.Email)
	}
}

func signatureFor(in *entity.SignatureInput) (builder.SignatureInfo, error) {
	signatureType, err := entity.ParseSignatureType(in.Type)
	if err != nil {
		return builder.SignatureInfo{}, &apierror.ArgumentError{Field: "signature_type", Err: err}
	}
	if signatureType == entity.SignatureTypeAutomaticStamp {
		return builder.AutomaticStamp(in.StampID)
	}
	printSignature := in.Print == nil || *in.Print
	return builder.DefaultSignature(signatureType, printSignature)
}

func attachmentFor(in entity.AttachmentInput) (*builder.Attachment, error) {
	a, err := builder.NewAttachment(in.Name, in.Description, in.Required)
	if err != nil {
		return nil, err
	}
	for _, ft := range in.FileTypes {
		a.PermitFileType(entity.AttachmentFileTypeFromExtension(ft))
	}
	for _, input := range in.Inputs {
		inputType, err := entity.ParseInputAttachmentType(input)
		if err != nil {
			return nil, &apierror.ArgumentError{Field: "attachment_input", Err: err}
		}
		a.PermitInput(inputType)
	}
	if in.FilesAllowed != 0 {
		if err := a.SetMaxFilesAllowed(in.FilesAllowed); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (t *translator) formField(ctx context.Context, in entity.FormFieldInput) (builder.FormField, error) {
	positions := make([]builder.FormFieldPosition, 0, len(in.Positions))
	for _, p := range in.Positions {
		file, err := t.file(ctx, p.FileID, p.FileName)
		if err != nil {
			return nil, err
		}
		pos, err := builder.NewFormFieldPosition(file, p.Page, p.X, p.Y)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}

	switch strings.ToLower(in.Type) {
	case "", "text":
		f, err := builder.NewTextFormField(in.Name)
		if err != nil {
			return nil, err
		}
		f.WithInstructions(in.Instructions).Required(in.Required)
		if in.MaxLength > 0 {
			f.WithMaxLength(in.MaxLength)
		}
		if in.Value != "" {
			f.WithValue(in.Value)
		}
		if in.Height > 0 && in.Width > 0 {
			f.WithSize(in.Height, in.Width)
		}
		for _, pos := range positions {
			f.OnPosition(pos)
		}
		return f, nil
	case "checkbox":
		f, err := builder.NewCheckboxFormField(in.Name)
		if err != nil {
			return nil, err
		}
		f.WithInstructions(in.Instructions).Required(in.Required).WithOptions(in.Options...)
		if in.Value != "" {
			f.WithValue(in.Value)
		}
		if in.Height > 0 && in.Width > 0 {
			f.WithSize(in.Height, in.Width)
		}
		for _, pos := range positions {
			f.OnPosition(pos)
		}
		return f, nil
	}
	return nil, apierror.Argumentf("form_field_type", "unsupported form field type: %s", in.Type)
}

func (t *translator) position(ctx context.Context, in entity.PositionInput) (builder.Position, error) {
	file, err := t.file(ctx, in.FileID, in.FileName)
	if err != nil {
		return builder.Position{}, err
	}
	pos, err := builder.NewPosition(file, in.Page, in.X, in.Y)
	if err != nil {
		return builder.Position{}, err
	}
	pos.Print = !in.NoPrint
	return pos, nil
}

// file resolves a document reference, preferring the cached upload name.
func (t *translator) file(ctx context.Context, id, name string) (entity.FileReference, error) {
	if name != "" || id == "" || t.files == nil {
		return entity.NewFileReference(id, name)
	}
	ref, ok, err := t.files.Get(ctx, id)
	if err != nil {
		return entity.FileReference{}, fmt.Errorf("failed to resolve document %s: %w", id, err)
	}
	if !ok {
		return entity.FileReference{}, apierror.Argumentf("file_name", "document %s was not uploaded through the gateway, file_name is required", id)
	}
	return ref, nil
}

// parseDate accepts any layout dateparse understands; zoneless input is UTC.
func parseDate(field, value string) (time.Time, error) {
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, &apierror.ArgumentError{Field: field, Err: err}
	}
	return t, nil
}
