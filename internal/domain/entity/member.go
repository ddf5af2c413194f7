package entity

import "slices"

// Member is the compiled wire representation of one operation participant.
type Member struct {
	Role                  string                    `json:"Role"`
	Name                  string                    `json:"Name"`
	Email                 string                    `json:"Email"`
	Observer              bool                      `json:"Observer"`
	OrderPosition         int                       `json:"OrderPosition"` // 1-based when ordered, else 0
	NotificationChannel   NotificationChannel       `json:"NotificationChannel"`
	AuthenticationChannel *AuthenticationChannel    `json:"AuthenticationChannel,omitempty"`
	SignatureType         SignatureType             `json:"SignatureType"`
	Attachments           []MemberAttachmentRequest `json:"Attachments"`
	FormFields            []FormField               `json:"FormFields"`
	Signatures            []SignaturePlacement      `json:"Signatures"`
	Rubrics               []SignaturePlacement      `json:"Rubrics"`
	HasSignatureTag       bool                      `json:"HasSignatureTag"`
	SignPositionTag       *string                   `json:"SignPositionTag"`
	FormTitle             string                    `json:"FormTitle"`
	FormDescription       string                    `json:"FormDescription"`
	Phone                 string                    `json:"Phone,omitempty"`
	Document              string                    `json:"Document,omitempty"`
}

// NewMember returns a member with the API defaults: email notification, draw signature.
func NewMember(name, email string) Member {
	return Member{
		Name:                name,
		Email:               email,
		NotificationChannel: NotificationChannelEmail,
		SignatureType:       SignatureTypeDraw,
		Attachments:         []MemberAttachmentRequest{},
		FormFields:          []FormField{},
		Signatures:          []SignaturePlacement{},
		Rubrics:             []SignaturePlacement{},
	}
}

// SignaturePlacement is one signature or rubric location on a document.
type SignaturePlacement struct {
	DocumentID     string         `json:"DocumentId"`
	PrintSignature bool           `json:"PrintSignature"`
	Positions      []PagePosition `json:"Positions"`
}

// PagePosition holds percentage coordinates. The misspelled keys are the API's.
type PagePosition struct {
	Page        int    `json:"Page"`
	CoordinateX string `json:"CoordenateX"`
	CoordinateY string `json:"CoordenateY"`
}

// MemberAttachmentRequest asks the member to provide a file while signing.
type MemberAttachmentRequest struct {
	ID              int                   `json:"Id"` // Always 0, assigned server side
	Name            string                `json:"Name"`
	Description     string                `json:"Description"`
	Required        bool                  `json:"Required"`
	FileType        []AttachmentFileType  `json:"FileType"`
	FilesAllowed    int                   `json:"FilesAllowed"`
	InputAttachment []InputAttachmentType `json:"InputAttachment"`
}

// FormField is one field entry bound to a single page position.
type FormField struct {
	Name        string               `json:"Name"`
	Description string               `json:"Description"`
	Required    bool                 `json:"Required"`
	Type        string               `json:"Type"`
	Variant     string               `json:"Variant,omitempty"`
	FieldType   string               `json:"FieldType"`
	Max         *int                 `json:"Max,omitempty"`
	Value       *string              `json:"Value"`
	DocumentID  string               `json:"DocumentId"`
	Positions   []FormFieldPlacement `json:"Positions"`
	Options     []FormFieldOption    `json:"Options,omitempty"`
}

type FormFieldPlacement struct {
	Page        int    `json:"Page"`
	CoordinateX string `json:"CoordenateX"`
	CoordinateY string `json:"CoordenateY"`
	Height      string `json:"Height"`
	Width       string `json:"Width"`
}

type FormFieldOption struct {
	Name        string `json:"Name"`
	CoordinateX string `json:"CoordenateX"`
	CoordinateY string `json:"CoordenateY"`
	Height      string `json:"Height"`
	Width       string `json:"Width"`
	Value       string `json:"Value"` // "X" when selected
}

// Clone returns a copy that shares no slices with m.
func (m Member) Clone() Member {
	out := m
	out.Attachments = make([]MemberAttachmentRequest, len(m.Attachments))
	for i, a := range m.Attachments {
		a.FileType = slices.Clone(a.FileType)
		a.InputAttachment = slices.Clone(a.InputAttachment)
		out.Attachments[i] = a
	}
	out.FormFields = make([]FormField, len(m.FormFields))
	for i, f := range m.FormFields {
		f.Positions = slices.Clone(f.Positions)
		f.Options = slices.Clone(f.Options)
		out.FormFields[i] = f
	}
	out.Signatures = clonePlacements(m.Signatures)
	out.Rubrics = clonePlacements(m.Rubrics)
	return out
}

func clonePlacements(in []SignaturePlacement) []SignaturePlacement {
	out := make([]SignaturePlacement, len(in))
	for i, p := range in {
		p.Positions = slices.Clone(p.Positions)
		out[i] = p
	}
	return out
}
