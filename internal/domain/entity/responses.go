package entity

import (
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// ========== ForSign API Response Structures ==========

// DocumentUpload is the body of POST /api/v2/document/upload.
type DocumentUpload struct {
	Data DocumentUploadData `json:"data"`
	Meta UploadMeta         `json:"meta"`
}

type DocumentUploadData struct {
	ID           string        `json:"id"`
	FileName     string        `json:"fileName"`
	TotalPages   int           `json:"totalPages"`
	ImagesDetail []ImageDetail `json:"imagesDetail"`
}

type ImageDetail struct {
	Page         int      `json:"page"`
	OriginalSize PageSize `json:"originalSize"`
}

type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type UploadMeta struct {
	Message string `json:"message"`
}

// FileReference returns the reference used to place positions on the uploaded document.
func (u *DocumentUpload) FileReference() FileReference {
	return FileReference{ID: u.Data.ID, Name: u.Data.FileName}
}

// PageSize returns the original size of a 1-based page.
func (u *DocumentUpload) PageSize(page int) (PageSize, bool) {
	for _, d := range u.Data.ImagesDetail {
		if d.Page == page {
			return d.OriginalSize, true
		}
	}
	return PageSize{}, false
}

// OperationCreated is the data.data object returned after creating an operation.
type OperationCreated struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Members   []OperationMember `json:"members"`
	Observers []OperationMember `json:"observers"`
}

type OperationMember struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	SignURL string `json:"signUrl,omitempty"`
}

func (o *OperationCreated) MemberByID(id int64) (OperationMember, bool) {
	return findMember(o.Members, func(m OperationMember) bool { return m.ID == id })
}

func (o *OperationCreated) MemberByName(name string) (OperationMember, bool) {
	return findMember(o.Members, func(m OperationMember) bool { return m.Name == name })
}

func (o *OperationCreated) ObserverByID(id int64) (OperationMember, bool) {
	return findMember(o.Observers, func(m OperationMember) bool { return m.ID == id })
}

func (o *OperationCreated) ObserverByName(name string) (OperationMember, bool) {
	return findMember(o.Observers, func(m OperationMember) bool { return m.Name == name })
}

// SigningURL returns the link the member opens to sign.
func (o *OperationCreated) SigningURL(memberID int64) (string, bool) {
	m, ok := o.MemberByID(memberID)
	if !ok || m.SignURL == "" {
		return "", false
	}
	return m.SignURL, true
}

func findMember(members []OperationMember, match func(OperationMember) bool) (OperationMember, bool) {
	for _, m := range members {
		if match(m) {
			return m, true
		}
	}
	return OperationMember{}, false
}

// OperationStatus is returned by complete, cancel and the completion mode endpoints.
type OperationStatus struct {
	Success    bool                `json:"success"`
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Data       OperationStatusData `json:"data"`
}

type OperationStatusData struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	CompletionDate string `json:"completionDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
	CompletionType string `json:"completionType,omitempty"` // "automatic" or "manual"
}

func (s *OperationStatus) IsAutomatic() bool {
	return s.Data.CompletionType == "automatic"
}

func (s *OperationStatus) IsManual() bool {
	return s.Data.CompletionType == "manual"
}

// CompletedAt parses completionDate in whatever layout the server used.
func (s *OperationStatus) CompletedAt() (time.Time, bool) {
	return parseServerDate(s.Data.CompletionDate)
}

// EndsAt parses endDate in whatever layout the server used.
func (s *OperationStatus) EndsAt() (time.Time, bool) {
	return parseServerDate(s.Data.EndDate)
}

func parseServerDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// OperationZip is the signed bundle of an operation.
type OperationZip struct {
	Name       string `json:"name"`
	Base64File string `json:"base64File"`
}

// Content decodes the archive bytes.
func (z *OperationZip) Content() ([]byte, error) {
	if z.Base64File == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(z.Base64File)
}

func (z *OperationZip) Size() int {
	return base64.StdEncoding.DecodedLen(len(z.Base64File)) - paddingLen(z.Base64File)
}

func (z *OperationZip) HumanReadableSize() string {
	return HumanReadableSize(z.Size())
}

// SaveToFile writes the decoded archive to path.
func (z *OperationZip) SaveToFile(path string) error {
	content, err := z.Content()
	if err != nil {
		return fmt.Errorf("failed to decode archive: %w", err)
	}
	if len(content) == 0 {
		return fmt.Errorf("archive %q is empty", z.Name)
	}
	return os.WriteFile(path, content, 0o644)
}

func paddingLen(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '='; i-- {
		n++
	}
	return n
}

// MemberAttachment is an attachment requested from a member, with what they sent.
type MemberAttachment struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	Required        bool                  `json:"required"`
	FileType        []string              `json:"fileType"`
	FilesAllowed    int                   `json:"filesAllowed"`
	InputAttachment []InputAttachmentType `json:"inputAttachment"`
	Files           []map[string]any      `json:"files"`
	Status          string                `json:"status"` // approved, rejected or pending
	RejectionReason *string               `json:"rejectionReason,omitempty"`
}

func (a *MemberAttachment) IsApproved() bool { return a.Status == "approved" }
func (a *MemberAttachment) IsRejected() bool { return a.Status == "rejected" }
func (a *MemberAttachment) IsPending() bool  { return a.Status == "pending" }

func (a *MemberAttachment) HasUploadedFiles() bool {
	return len(a.Files) > 0
}

// Allows reports whether the member may provide the attachment through input.
func (a *MemberAttachment) Allows(input InputAttachmentType) bool {
	for _, t := range a.InputAttachment {
		if t == input {
			return true
		}
	}
	return false
}

// RejectedAttachment is one item of a reject request.
type RejectedAttachment struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// AttachmentDownload is a single attachment file.
type AttachmentDownload struct {
	ContentType string `json:"contentType"`
	FileName    string `json:"fileName"`
	Content     []byte `json:"-"`
}

func (d *AttachmentDownload) Extension() string {
	ext := filepath.Ext(d.FileName)
	if len(ext) > 1 {
		return ext[1:]
	}
	return ""
}

func (d *AttachmentDownload) Size() int {
	return len(d.Content)
}

func (d *AttachmentDownload) HumanReadableSize() string {
	return HumanReadableSize(d.Size())
}

func (d *AttachmentDownload) Base64() string {
	return base64.StdEncoding.EncodeToString(d.Content)
}

// DataURI is usable directly as an img or iframe src.
func (d *AttachmentDownload) DataURI() string {
	contentType := d.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + d.Base64()
}

// HumanReadableSize renders a byte count with two decimals, e.g. "1.5 KB".
func HumanReadableSize(bytes int) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	if bytes <= 0 {
		return "0 B"
	}
	pow := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	pow = min(pow, len(units)-1)
	value := float64(bytes) / math.Pow(1024, float64(pow))
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64) + " " + units[pow]
}
