package builder

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
)

// Signer collects one participant's configuration. It is read once when
// passed to OperationBuilder.AddSigner; later changes do not affect the
// operation it was added to.
type Signer struct {
	name            string
	email           string
	phone           string
	document        string
	role            string
	formTitle       string
	formDescription string
	observer        bool

	notification   Notification
	authentication DoubleAuthentication
	signature      SignatureInfo

	signatures  []Position
	rubrics     []Position
	tag         *TagPosition
	attachments []*Attachment
	formFields  []FormField
}

func NewSigner(name, email string) (*Signer, error) {
	if err := apierror.Validate("signer_name", name, validation.Required.Error("signer name cannot be empty")); err != nil {
		return nil, err
	}
	return &Signer{name: name, email: email}, nil
}

func (s *Signer) SetEmail(email string) *Signer {
	s.email = email
	return s
}

func (s *Signer) SetPhone(phone string) *Signer {
	s.phone = phone
	return s
}

// SetDocument sets the signer's identity document number (CPF, passport, ...).
func (s *Signer) SetDocument(document string) *Signer {
	s.document = document
	return s
}

func (s *Signer) SetRole(role string) *Signer {
	s.role = role
	return s
}

func (s *Signer) SetFormTitle(title string) *Signer {
	s.formTitle = title
	return s
}

func (s *Signer) SetFormDescription(description string) *Signer {
	s.formDescription = description
	return s
}

// AsObserver makes the member follow the operation without signing.
func (s *Signer) AsObserver() *Signer {
	s.observer = true
	return s
}

func (s *Signer) SetNotification(n Notification) *Signer {
	s.notification = n
	return s
}

func (s *Signer) SetDoubleAuthentication(a DoubleAuthentication) *Signer {
	s.authentication = a
	return s
}

func (s *Signer) SetSignatureType(info SignatureInfo) *Signer {
	s.signature = info
	return s
}

// AddSignatureInPosition places a printed signature on page of file.
func (s *Signer) AddSignatureInPosition(file entity.FileReference, page int, x, y string) error {
	p, err := NewPosition(file, page, x, y)
	if err != nil {
		return err
	}
	s.signatures = append(s.signatures, p)
	return nil
}

// AddSignaturePosition adds a position built by the caller, e.g. with Print off.
func (s *Signer) AddSignaturePosition(p Position) error {
	if err := p.validate(); err != nil {
		return err
	}
	s.signatures = append(s.signatures, p)
	return nil
}

func (s *Signer) AddRubricInPosition(file entity.FileReference, page int, x, y string) error {
	p, err := NewPosition(file, page, x, y)
	if err != nil {
		return err
	}
	s.rubrics = append(s.rubrics, p)
	return nil
}

func (s *Signer) AddRubricPosition(p Position) error {
	if err := p.validate(); err != nil {
		return err
	}
	s.rubrics = append(s.rubrics, p)
	return nil
}

// SetTagSignaturePosition may be called once per signer.
func (s *Signer) SetTagSignaturePosition(t TagPosition) error {
	if s.tag != nil {
		return apierror.Argumentf("tag_position", "signer %q already has a tag position", s.name)
	}
	if err := t.validate(); err != nil {
		return err
	}
	s.tag = &t
	return nil
}

func (s *Signer) RequestAttachment(a *Attachment) *Signer {
	if a != nil {
		s.attachments = append(s.attachments, a)
	}
	return s
}

func (s *Signer) AddFormField(f FormField) *Signer {
	if f != nil {
		s.formFields = append(s.formFields, f)
	}
	return s
}

func (s *Signer) Name() string {
	return s.name
}

func (s *Signer) SignatureInfo() SignatureInfo {
	return s.signature
}
