package entity

// ========== Gateway Request Structures ==========

// CreateOperationInput is the body of POST /api/v1/operations.
type CreateOperationInput struct {
	Name                  string            `json:"name"`
	Language              string            `json:"language"` // pt-br when empty
	DisplayCover          *bool             `json:"display_cover,omitempty"`
	Ordered               bool              `json:"ordered"`
	InPerson              bool              `json:"in_person"`
	MemberMovementWarning bool              `json:"member_movement_warning"`
	OptionalMessage       string            `json:"optional_message,omitempty"`
	ExternalID            string            `json:"external_id,omitempty"`
	ExpirationDate        string            `json:"expiration_date,omitempty"` // Any layout dateparse understands
	ManualFinish          bool              `json:"manual_finish"`
	OperationModelID      int               `json:"operation_model_id,omitempty"`
	Groups                []int             `json:"groups,omitempty"`
	RedirectURL           string            `json:"redirect_url,omitempty"`
	Metadata              map[string]string `json:"metadata,omitempty"`
	Signers               []SignerInput     `json:"signers"`
}

type SignerInput struct {
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Document        string `json:"document,omitempty"`
	Role            string `json:"role,omitempty"`
	FormTitle       string `json:"form_title,omitempty"`
	FormDescription string `json:"form_description,omitempty"`
	Observer        bool   `json:"observer"`

	// Notification is "email" (the default, sent to Email) or "none".
	Notification string `json:"notification,omitempty"`
	// Authentication is "email", "sms", "whatsapp" or empty for none.
	Authentication string          `json:"authentication,omitempty"`
	Signature      *SignatureInput `json:"signature,omitempty"`

	Signatures  []PositionInput   `json:"signatures,omitempty"`
	Rubrics     []PositionInput   `json:"rubrics,omitempty"`
	Tag         *TagInput         `json:"tag,omitempty"`
	Attachments []AttachmentInput `json:"attachments,omitempty"`
	FormFields  []FormFieldInput  `json:"form_fields,omitempty"`
}

type SignatureInput struct {
	Type    string `json:"type"`
	Print   *bool  `json:"print,omitempty"`    // Defaults to true
	StampID string `json:"stamp_id,omitempty"` // Required for automatic_stamp
}

// PositionInput references an uploaded document by id. FileName may be
// omitted when the document was uploaded through the gateway.
type PositionInput struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name,omitempty"`
	Page     int    `json:"page"`
	X        string `json:"x"`
	Y        string `json:"y"`
	NoPrint  bool   `json:"no_print,omitempty"`
}

type TagInput struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name,omitempty"`
	Pattern  string `json:"pattern"`
}

type AttachmentInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Required     bool     `json:"required"`
	FileTypes    []string `json:"file_types,omitempty"`
	Inputs       []string `json:"inputs,omitempty"`
	FilesAllowed int      `json:"files_allowed,omitempty"`
}

type FormFieldInput struct {
	Type         string          `json:"type"` // text or checkbox
	Name         string          `json:"name"`
	Instructions string          `json:"instructions,omitempty"`
	Required     bool            `json:"required"`
	MaxLength    int             `json:"max_length,omitempty"`
	Value        string          `json:"value,omitempty"`
	Options      []string        `json:"options,omitempty"`
	Height       float64         `json:"height,omitempty"`
	Width        float64         `json:"width,omitempty"`
	Positions    []PositionInput `json:"positions"`
}

// CreateOperationResult is returned by POST /api/v1/operations.
type CreateOperationResult struct {
	Operation *OperationCreated `json:"operation"`
	Warnings  []string          `json:"warnings,omitempty"`
}

type CancelOperationInput struct {
	Message string `json:"message"`
}

type AutomaticCompletionInput struct {
	EndDate string `json:"end_date"`
}

type ApproveAttachmentsInput struct {
	AttachmentIDs []int64 `json:"attachment_ids"`
}

type RejectAttachmentsInput struct {
	Attachments []RejectedAttachment `json:"attachments"`
}

// UploadedDocument is one result of a gateway batch upload.
type UploadedDocument struct {
	FileName   string          `json:"file_name"`
	Upload     *DocumentUpload `json:"upload"`
	Reference  FileReference   `json:"reference"`
	TotalPages int             `json:"total_pages"`
}
