package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forsign-esign/internal/config"
	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/infrastructure/filecache"
	"forsign-esign/internal/infrastructure/httpclient"
)

func newDocumentUsecase(concurrency int) (DocumentUsecase, *mockDocumentRepository, *filecache.Memory) {
	repo := &mockDocumentRepository{}
	files := filecache.NewMemory(0)
	cfg := &config.Config{Upload: config.UploadConfig{Concurrency: concurrency}}
	return NewDocumentUsecase(cfg, repo, files, zap.NewNop()), repo, files
}

func uploadOf(id, name string, pages int) *entity.DocumentUpload {
	return &entity.DocumentUpload{Data: entity.DocumentUploadData{ID: id, FileName: name, TotalPages: pages}}
}

func TestDocumentUsecase_Upload(t *testing.T) {
	u, repo, files := newDocumentUsecase(2)
	ctx := context.Background()

	var inFlight, peak atomic.Int32
	track := func(mock.Arguments) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
	}

	names := []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}
	for i, name := range names {
		repo.On("UploadContent", mock.Anything, name, []byte(name)).
			Run(track).
			Return(uploadOf("doc-"+name, name, i+1), nil)
	}

	input := make([]httpclient.FileUpload, 0, len(names))
	for _, name := range names {
		input = append(input, httpclient.FileUpload{Filename: name, Content: []byte(name)})
	}

	results, err := u.Upload(ctx, input)
	require.NoError(t, err)
	repo.AssertExpectations(t)

	require.Len(t, results, len(names))
	for i, name := range names {
		assert.Equal(t, name, results[i].FileName)
		assert.Equal(t, entity.FileReference{ID: "doc-" + name, Name: name}, results[i].Reference)
		assert.Equal(t, i+1, results[i].TotalPages)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))

	refs, err := u.ListReferences(ctx)
	require.NoError(t, err)
	assert.Len(t, refs, len(names))

	_, ok, err := files.Get(ctx, "doc-c.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, u.ClearReferences(ctx))
	refs, err = u.ListReferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestDocumentUsecase_UploadFailure(t *testing.T) {
	u, repo, _ := newDocumentUsecase(1)
	ctx := context.Background()

	rejected := &apierror.ArgumentError{Field: "file", Err: errors.New("only PDF files are supported")}
	repo.On("UploadContent", mock.Anything, "notes.txt", mock.Anything).Return(nil, rejected)
	repo.On("UploadContent", mock.Anything, "a.pdf", mock.Anything).Return(uploadOf("doc-a", "a.pdf", 1), nil).Maybe()

	_, err := u.Upload(ctx, []httpclient.FileUpload{
		{Filename: "notes.txt", Content: []byte("text")},
		{Filename: "a.pdf", Content: []byte("%PDF")},
	})
	assert.ErrorIs(t, err, apierror.ErrInvalidArgument)
}

func TestDocumentUsecase_UploadRequiresFiles(t *testing.T) {
	u, repo, _ := newDocumentUsecase(4)

	_, err := u.Upload(context.Background(), nil)
	assert.ErrorIs(t, err, apierror.ErrInvalidArgument)
	repo.AssertNotCalled(t, "UploadContent", mock.Anything, mock.Anything, mock.Anything)
}
