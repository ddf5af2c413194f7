// Package builder assembles ForSign operation requests from signer
// configurations: channel resolution, position compilation, member
// compilation and the final operation payload.
package builder

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
)

// RedirectURLMetadataKey is the reserved metadata key holding the post-signing redirect.
const RedirectURLMetadataKey = "@module/redirect-url"

const insecureRedirectWarning = "For security reasons, it is recommended to use HTTPS for redirect URLs."

var (
	ErrMissingName     = errors.New("operation name is required")
	ErrNoMembers       = errors.New("at least one member is required")
	ErrMissingLanguage = errors.New("language is required")
	errNilSigner       = errors.New("signer cannot be nil")

	redirectScheme = regexp.MustCompile(`^https?://`)
)

// WarningFunc receives non-fatal diagnostics raised while building.
type WarningFunc func(message string)

// OperationBuilder is owned by one caller and produces one request per Build.
type OperationBuilder struct {
	req          entity.OperationRequest
	docs         *documentSet
	expiration   *time.Time
	manualFinish *bool
	onWarning    WarningFunc
	warnings     []string
	err          error
}

// NewOperationBuilder starts an operation named name. Language must be set
// explicitly before Build.
func NewOperationBuilder(name string) *OperationBuilder {
	return &OperationBuilder{
		req: entity.OperationRequest{
			Name:         name,
			DisplayCover: true,
			Members:      []entity.Member{},
			Groups:       []int{},
			Metadata:     []entity.Metadata{},
		},
		docs: newDocumentSet(),
	}
}

// OnWarning registers fn for non-fatal diagnostics such as a plain HTTP redirect URL.
func (b *OperationBuilder) OnWarning(fn WarningFunc) *OperationBuilder {
	b.onWarning = fn
	return b
}

// SetSignersOrderRequirement makes members sign one after the other, in the
// order they were added.
func (b *OperationBuilder) SetSignersOrderRequirement(ordered bool) *OperationBuilder {
	b.req.Order = ordered
	b.renumber()
	return b
}

func (b *OperationBuilder) SetExpirationDate(t time.Time) *OperationBuilder {
	b.expiration = &t
	return b
}

func (b *OperationBuilder) WithExternalID(id string) *OperationBuilder {
	b.req.ExternalID = &id
	return b
}

// SetInPersonSigning marks the operation as signed on premises.
func (b *OperationBuilder) SetInPersonSigning(inPerson bool) *OperationBuilder {
	b.req.OnPremises = inPerson
	return b
}

func (b *OperationBuilder) WithOptionalMessage(message string) *OperationBuilder {
	b.req.OptionalMessage = &message
	return b
}

func (b *OperationBuilder) SetLanguage(language entity.Language) *OperationBuilder {
	b.req.Language = language
	return b
}

func (b *OperationBuilder) SetDisplayCover(display bool) *OperationBuilder {
	b.req.DisplayCover = display
	return b
}

func (b *OperationBuilder) SetMemberMovementWarning(warn bool) *OperationBuilder {
	b.req.MemberMovementWarning = warn
	return b
}

// SetManualFinish requires an explicit completion call. The expiration date,
// when set, is carried as the manual finish date.
func (b *OperationBuilder) SetManualFinish(manual bool) *OperationBuilder {
	b.manualFinish = &manual
	return b
}

func (b *OperationBuilder) AddGroup(groupID int) error {
	if err := apierror.ValidateID("group_id", int64(groupID)); err != nil {
		return err
	}
	b.req.Groups = append(b.req.Groups, groupID)
	return nil
}

// WithOperationModelID creates the operation from a model defined in ForSign.
func (b *OperationBuilder) WithOperationModelID(modelID int) error {
	if err := apierror.ValidateID("operation_model_id", int64(modelID)); err != nil {
		return err
	}
	b.req.OperationModelID = &modelID
	return nil
}

// AddMetadata appends an entry. Duplicate keys are not rejected.
func (b *OperationBuilder) AddMetadata(key, value string) error {
	if err := apierror.Validate("metadata_key", key, validation.Required.Error("metadata key cannot be empty")); err != nil {
		return err
	}
	b.req.Metadata = append(b.req.Metadata, entity.Metadata{Key: key, Value: value})
	return nil
}

// WithRedirectURL stores url under RedirectURLMetadataKey. Plain http is
// accepted with a warning.
func (b *OperationBuilder) WithRedirectURL(url string) error {
	err := apierror.Validate("redirect_url", url,
		validation.Required.Error("redirect URL cannot be empty"),
		validation.Match(redirectScheme).Error("redirect URL must start with http:// or https://"),
	)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(url, "https://") {
		b.warn(insecureRedirectWarning)
	}
	return b.AddMetadata(RedirectURLMetadataKey, url)
}

// AddSigner compiles s into a member and registers its documents.
func (b *OperationBuilder) AddSigner(s *Signer) *OperationBuilder {
	if s == nil {
		if b.err == nil {
			b.err = &apierror.ArgumentError{Field: "signer", Err: errNilSigner}
		}
		return b
	}
	m := compileMember(s, b.docs)
	if b.req.Order {
		m.OrderPosition = len(b.req.Members) + 1
	}
	b.req.Members = append(b.req.Members, m)
	return b
}

// Warnings returns every diagnostic raised so far.
func (b *OperationBuilder) Warnings() []string {
	return append([]string(nil), b.warnings...)
}

// Build validates and returns a request that shares no state with the builder.
func (b *OperationBuilder) Build() (*entity.OperationRequest, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.req.Name == "" {
		return nil, &apierror.ArgumentError{Field: "name", Err: ErrMissingName}
	}
	if len(b.req.Members) == 0 {
		return nil, &apierror.ArgumentError{Field: "members", Err: ErrNoMembers}
	}
	if b.req.Language == "" {
		return nil, &apierror.ArgumentError{Field: "language", Err: ErrMissingLanguage}
	}

	out := b.req.Clone()
	out.Files = b.docs.list()
	if b.expiration != nil {
		out.ExpirationDate = entity.NewISOTime(*b.expiration)
	}
	if b.manualFinish != nil {
		out.ManualFinish = &entity.ManualFinish{HasManualFinish: *b.manualFinish}
		if b.expiration != nil {
			out.ManualFinish.Date = entity.NewISOTime(*b.expiration)
		}
	}
	return &out, nil
}

func (b *OperationBuilder) renumber() {
	for i := range b.req.Members {
		if b.req.Order {
			b.req.Members[i].OrderPosition = i + 1
		} else {
			b.req.Members[i].OrderPosition = 0
		}
	}
}

func (b *OperationBuilder) warn(message string) {
	b.warnings = append(b.warnings, message)
	if b.onWarning != nil {
		b.onWarning(message)
	}
}
