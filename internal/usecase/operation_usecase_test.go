package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"forsign-esign/internal/builder"
	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/infrastructure/filecache"
)

func newOperationUsecase(t *testing.T) (*operationUsecase, *mockOperationRepository, *observer.ObservedLogs) {
	t.Helper()
	repo := &mockOperationRepository{}
	files := filecache.NewMemory(0)
	require.NoError(t, files.Set(context.Background(), entity.FileReference{ID: "doc-1", Name: "contract.pdf"}))

	core, logs := observer.New(zapcore.InfoLevel)
	u := NewOperationUsecase(repo, files, zap.New(core)).(*operationUsecase)
	return u, repo, logs
}

func fullInput() *entity.CreateOperationInput {
	cover := false
	return &entity.CreateOperationInput{
		Name:           "Service agreement",
		Language:       "EN-US",
		DisplayCover:   &cover,
		Ordered:        true,
		ExpirationDate: "2026-12-01 18:30:00",
		ManualFinish:   true,
		Groups:         []int{4},
		RedirectURL:    "http://example.com/done",
		Metadata:       map[string]string{"b": "2", "a": "1"},
		Signers: []entity.SignerInput{
			{
				Name:           "Jane Doe",
				Email:          "jane@example.com",
				Authentication: "sms",
				Phone:          "+5511999999999",
				Signatures:     []entity.PositionInput{{FileID: "doc-1", Page: 1, X: "70%", Y: "80%"}},
				Attachments: []entity.AttachmentInput{{
					Name:      "ID card",
					Required:  true,
					FileTypes: []string{".PDF"},
					Inputs:    []string{"upload_file"},
				}},
			},
			{
				Name:         "John Roe",
				Email:        "john@example.com",
				Notification: "none",
				Signature:    &entity.SignatureInput{Type: "automatic_stamp", StampID: "stamp-7"},
				Tag:          &entity.TagInput{FileID: "doc-2", FileName: "annex.pdf", Pattern: "{{john}}"},
			},
		},
	}
}

func TestOperationUsecase_Create(t *testing.T) {
	u, repo, logs := newOperationUsecase(t)

	var sent *entity.OperationRequest
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.OperationRequest")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*entity.OperationRequest) }).
		Return(&entity.OperationCreated{ID: 42, Name: "Service agreement"}, nil)

	result, err := u.Create(context.Background(), fullInput())
	require.NoError(t, err)
	repo.AssertExpectations(t)

	assert.Equal(t, int64(42), result.Operation.ID)
	assert.Equal(t, []string{"For security reasons, it is recommended to use HTTPS for redirect URLs."}, result.Warnings)
	assert.Equal(t, 1, logs.FilterMessage(result.Warnings[0]).Len())

	require.NotNil(t, sent)
	assert.Equal(t, entity.LanguageEnglish, sent.Language)
	assert.False(t, sent.DisplayCover)
	assert.True(t, sent.Order)
	assert.Equal(t, []int{4}, sent.Groups)
	assert.Equal(t, []entity.Metadata{
		{Key: builder.RedirectURLMetadataKey, Value: "http://example.com/done"},
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
	}, sent.Metadata)
	assert.Equal(t, []entity.OperationDocument{
		{ID: "doc-1", Description: "contract.pdf"},
		{ID: "doc-2", Description: "annex.pdf"},
	}, sent.Files)

	require.NotNil(t, sent.ExpirationDate)
	assert.Equal(t, time.Date(2026, 12, 1, 18, 30, 0, 0, time.UTC), sent.ExpirationDate.Time().UTC())
	require.NotNil(t, sent.ManualFinish)
	assert.True(t, sent.ManualFinish.HasManualFinish)

	require.Len(t, sent.Members, 2)
	jane, john := sent.Members[0], sent.Members[1]

	assert.Equal(t, 1, jane.OrderPosition)
	assert.Equal(t, entity.NotificationChannelEmail, jane.NotificationChannel)
	require.NotNil(t, jane.AuthenticationChannel)
	assert.Equal(t, entity.AuthenticationChannelSMS, *jane.AuthenticationChannel)
	assert.Equal(t, "+5511999999999", jane.Phone)
	require.Len(t, jane.Signatures, 1)
	assert.True(t, jane.Signatures[0].PrintSignature)
	require.Len(t, jane.Attachments, 1)
	assert.Equal(t, []entity.AttachmentFileType{entity.AttachmentFileTypePDF}, jane.Attachments[0].FileType)
	assert.Equal(t, []entity.InputAttachmentType{entity.InputAttachmentUploadFile}, jane.Attachments[0].InputAttachment)

	assert.Equal(t, 2, john.OrderPosition)
	assert.Equal(t, entity.NotificationChannelNone, john.NotificationChannel)
	assert.Equal(t, entity.SignatureTypeClick, john.SignatureType)
	assert.True(t, john.HasSignatureTag)
	require.NotNil(t, john.SignPositionTag)
	assert.Equal(t, "{{john}}", *john.SignPositionTag)
}

func TestOperationUsecase_CreateFormFields(t *testing.T) {
	u, repo, _ := newOperationUsecase(t)

	var sent *entity.OperationRequest
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*entity.OperationRequest) }).
		Return(&entity.OperationCreated{ID: 1}, nil)

	input := &entity.CreateOperationInput{
		Name: "Form",
		Signers: []entity.SignerInput{{
			Name: "Jane Doe",
			FormFields: []entity.FormFieldInput{
				{
					Name:      "Address",
					MaxLength: 120,
					Positions: []entity.PositionInput{{FileID: "doc-1", Page: 2, X: "10%", Y: "20%"}},
				},
				{
					Type:      "checkbox",
					Name:      "Agree",
					Options:   []string{"yes"},
					Value:     "yes",
					Height:    3,
					Width:     10,
					Positions: []entity.PositionInput{{FileID: "doc-1", Page: 2, X: "10%", Y: "40%"}},
				},
			},
		}},
	}

	_, err := u.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, entity.LanguagePortuguese, sent.Language, "language defaults to pt-br")
	assert.Equal(t, []entity.OperationDocument{{ID: "doc-1", Description: "contract.pdf"}}, sent.Files)
	require.Len(t, sent.Members, 1)
	fields := sent.Members[0].FormFields
	require.Len(t, fields, 2)
	assert.Equal(t, "Address", fields[0].Name)
	require.NotNil(t, fields[0].Max)
	assert.Equal(t, 120, *fields[0].Max)
	assert.Equal(t, "Agree", fields[1].Name)
	assert.Equal(t, "3.00%", fields[1].Positions[0].Height)
}

func TestOperationUsecase_CreateRejectsInput(t *testing.T) {
	tests := []struct {
		name  string
		input *entity.CreateOperationInput
	}{
		{name: "nil input", input: nil},
		{name: "unsupported language", input: &entity.CreateOperationInput{Name: "x", Language: "fr-fr"}},
		{name: "no signers", input: &entity.CreateOperationInput{Name: "x"}},
		{name: "missing name", input: &entity.CreateOperationInput{Signers: []entity.SignerInput{{Name: "Jane"}}}},
		{name: "unparseable expiration", input: &entity.CreateOperationInput{Name: "x", ExpirationDate: "soon"}},
		{name: "unknown document", input: &entity.CreateOperationInput{
			Name:    "x",
			Signers: []entity.SignerInput{{Name: "Jane", Signatures: []entity.PositionInput{{FileID: "missing", Page: 1}}}},
		}},
		{name: "stamp without id", input: &entity.CreateOperationInput{
			Name:    "x",
			Signers: []entity.SignerInput{{Name: "Jane", Signature: &entity.SignatureInput{Type: "automatic_stamp"}}},
		}},
		{name: "sms without phone", input: &entity.CreateOperationInput{
			Name:    "x",
			Signers: []entity.SignerInput{{Name: "Jane", Authentication: "sms"}},
		}},
		{name: "unknown form field type", input: &entity.CreateOperationInput{
			Name:    "x",
			Signers: []entity.SignerInput{{Name: "Jane", FormFields: []entity.FormFieldInput{{Type: "radio", Name: "f"}}}},
		}},
		{name: "bad redirect", input: &entity.CreateOperationInput{
			Name:        "x",
			RedirectURL: "ftp://example.com",
			Signers:     []entity.SignerInput{{Name: "Jane"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, repo, _ := newOperationUsecase(t)

			_, err := u.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, apierror.ErrInvalidArgument)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestOperationUsecase_CreatePropagatesAPIError(t *testing.T) {
	u, repo, _ := newOperationUsecase(t)
	apiErr := &apierror.APIError{StatusCode: 500, Message: "Internal server error."}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, apiErr)

	input := &entity.CreateOperationInput{Name: "x", Signers: []entity.SignerInput{{Name: "Jane"}}}
	_, err := u.Create(context.Background(), input)
	assert.Same(t, apiErr, err)
}

func TestOperationUsecase_SetAutomaticCompletion(t *testing.T) {
	u, repo, _ := newOperationUsecase(t)
	want := time.Date(2026, 11, 3, 15, 0, 0, 0, time.UTC)
	repo.On("SetAutomaticCompletion", mock.Anything, int64(5), want).
		Return(&entity.OperationStatus{Success: true}, nil)

	status, err := u.SetAutomaticCompletion(context.Background(), 5, "2026-11-03T15:00:00Z")
	require.NoError(t, err)
	assert.True(t, status.Success)
	repo.AssertExpectations(t)

	_, err = u.SetAutomaticCompletion(context.Background(), 5, "")
	assert.ErrorIs(t, err, apierror.ErrInvalidArgument)
	_, err = u.SetAutomaticCompletion(context.Background(), 5, "next tuesday")
	assert.ErrorIs(t, err, apierror.ErrInvalidArgument)
}

func TestOperationUsecase_Passthrough(t *testing.T) {
	u, repo, _ := newOperationUsecase(t)
	ctx := context.Background()
	status := &entity.OperationStatus{Success: true}
	failure := errors.New("boom")

	repo.On("Complete", ctx, int64(1)).Return(status, nil)
	repo.On("Cancel", ctx, int64(2), "duplicate").Return(status, nil)
	repo.On("SetManualCompletion", ctx, int64(3)).Return(nil, failure)
	repo.On("DownloadZip", ctx, int64(4)).Return(&entity.OperationZip{Name: "op.zip", Base64File: "UEsDBA=="}, nil)

	got, err := u.Complete(ctx, 1)
	require.NoError(t, err)
	assert.Same(t, status, got)

	got, err = u.Cancel(ctx, 2, "duplicate")
	require.NoError(t, err)
	assert.Same(t, status, got)

	_, err = u.SetManualCompletion(ctx, 3)
	assert.ErrorIs(t, err, failure)

	zip, err := u.DownloadZip(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, zip.Size())

	repo.AssertExpectations(t)
}
