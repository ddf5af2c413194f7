package builder

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
)

// Position places a signature or rubric on a page. Coordinates are percentage
// strings such as "70%" and are not checked against the document geometry.
type Position struct {
	File  entity.FileReference
	Page  int // 1-based
	X     string
	Y     string
	Print bool
}

// NewPosition returns a printed position on page.
func NewPosition(file entity.FileReference, page int, x, y string) (Position, error) {
	p := Position{File: file, Page: page, X: x, Y: y, Print: true}
	if err := p.validate(); err != nil {
		return Position{}, err
	}
	return p, nil
}

func (p Position) validate() error {
	return validatePlacement(p.File, p.Page)
}

// TagPosition places the signature wherever Pattern (e.g. "{{signature}}")
// is found in the document.
type TagPosition struct {
	File    entity.FileReference
	Pattern string
}

func NewTagPosition(file entity.FileReference, pattern string) (TagPosition, error) {
	t := TagPosition{File: file, Pattern: pattern}
	if err := t.validate(); err != nil {
		return TagPosition{}, err
	}
	return t, nil
}

func (t TagPosition) validate() error {
	if err := validateFile(t.File); err != nil {
		return err
	}
	return apierror.Validate("tag_pattern", t.Pattern, validation.Required.Error("tag pattern cannot be empty"))
}

// FormFieldPosition anchors a form field on a page.
type FormFieldPosition struct {
	File entity.FileReference
	Page int
	X    string
	Y    string
}

func NewFormFieldPosition(file entity.FileReference, page int, x, y string) (FormFieldPosition, error) {
	if err := validatePlacement(file, page); err != nil {
		return FormFieldPosition{}, err
	}
	return FormFieldPosition{File: file, Page: page, X: x, Y: y}, nil
}

func validatePlacement(file entity.FileReference, page int) error {
	if err := validateFile(file); err != nil {
		return err
	}
	return apierror.Validate("page", page,
		validation.Required.Error("page number must be positive"),
		validation.Min(1).Error("page number must be positive"),
	)
}

func validateFile(file entity.FileReference) error {
	return apierror.Validate("file_id", file.ID, validation.Required.Error("document ID cannot be empty"))
}

// documentSet is the operation's document list, deduplicated by id in
// insertion order.
type documentSet struct {
	docs  []entity.OperationDocument
	index map[string]struct{}
}

func newDocumentSet() *documentSet {
	return &documentSet{
		docs:  []entity.OperationDocument{},
		index: make(map[string]struct{}),
	}
}

func (d *documentSet) register(ref entity.FileReference) {
	if _, ok := d.index[ref.ID]; ok {
		return
	}
	d.index[ref.ID] = struct{}{}
	d.docs = append(d.docs, entity.OperationDocument{ID: ref.ID, Description: ref.Name})
}

func (d *documentSet) list() []entity.OperationDocument {
	out := make([]entity.OperationDocument, len(d.docs))
	copy(out, d.docs)
	return out
}

// compilePosition registers the position's document and emits its placement.
// One position always yields exactly one page entry.
func compilePosition(p Position, docs *documentSet) entity.SignaturePlacement {
	docs.register(p.File)
	return entity.SignaturePlacement{
		DocumentID:     p.File.ID,
		PrintSignature: p.Print,
		Positions: []entity.PagePosition{{
			Page:        p.Page,
			CoordinateX: p.X,
			CoordinateY: p.Y,
		}},
	}
}

func compileTag(t TagPosition, docs *documentSet, m *entity.Member) {
	docs.register(t.File)
	pattern := t.Pattern
	m.HasSignatureTag = true
	m.SignPositionTag = &pattern
}
