package builder

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
)

const (
	defaultFieldHeight   = 2.48
	defaultFieldWidth    = 24.66
	defaultTextMaxLength = 500
	formFieldType        = "Others"
	checkboxMarker       = "X"
)

// FormField is a field a signer fills in. Each position the field is placed
// on compiles to its own wire entry.
type FormField interface {
	convert() []entity.FormField
	positions() []FormFieldPosition
}

type fieldBase struct {
	name         string
	instructions string
	required     bool
	value        *string
	height       float64
	width        float64
	placements   []FormFieldPosition
}

func newFieldBase(name string) (fieldBase, error) {
	if err := apierror.Validate("field_name", name, validation.Required.Error("field name cannot be empty")); err != nil {
		return fieldBase{}, err
	}
	return fieldBase{name: name, height: defaultFieldHeight, width: defaultFieldWidth}, nil
}

func (f *fieldBase) positions() []FormFieldPosition {
	return f.placements
}

func (f *fieldBase) placement(p FormFieldPosition) entity.FormFieldPlacement {
	return entity.FormFieldPlacement{
		Page:        p.Page,
		CoordinateX: p.X,
		CoordinateY: p.Y,
		Height:      percent(f.height),
		Width:       percent(f.width),
	}
}

// percent renders 2.48 as "2.48%".
func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// TextFormField is a free text input.
type TextFormField struct {
	fieldBase
	maxLength int
}

func NewTextFormField(name string) (*TextFormField, error) {
	base, err := newFieldBase(name)
	if err != nil {
		return nil, err
	}
	return &TextFormField{fieldBase: base, maxLength: defaultTextMaxLength}, nil
}

func (f *TextFormField) WithInstructions(instructions string) *TextFormField {
	f.instructions = instructions
	return f
}

func (f *TextFormField) Required(required bool) *TextFormField {
	f.required = required
	return f
}

func (f *TextFormField) WithMaxLength(n int) *TextFormField {
	f.maxLength = n
	return f
}

func (f *TextFormField) WithValue(value string) *TextFormField {
	f.value = &value
	return f
}

func (f *TextFormField) WithSize(height, width float64) *TextFormField {
	f.height, f.width = height, width
	return f
}

func (f *TextFormField) OnPosition(p FormFieldPosition) *TextFormField {
	f.placements = append(f.placements, p)
	return f
}

func (f *TextFormField) convert() []entity.FormField {
	out := make([]entity.FormField, 0, len(f.placements))
	for _, p := range f.placements {
		maxLength := f.maxLength
		out = append(out, entity.FormField{
			Name:        f.name,
			Description: f.instructions,
			Required:    f.required,
			Type:        formFieldType,
			FieldType:   "Text",
			Max:         &maxLength,
			Value:       f.value,
			DocumentID:  p.File.ID,
			Positions:   []entity.FormFieldPlacement{f.placement(p)},
		})
	}
	return out
}

// CheckboxFormField is a group of options; the option equal to the value is checked.
type CheckboxFormField struct {
	fieldBase
	options []string
}

func NewCheckboxFormField(name string) (*CheckboxFormField, error) {
	base, err := newFieldBase(name)
	if err != nil {
		return nil, err
	}
	return &CheckboxFormField{fieldBase: base}, nil
}

func (f *CheckboxFormField) WithInstructions(instructions string) *CheckboxFormField {
	f.instructions = instructions
	return f
}

func (f *CheckboxFormField) Required(required bool) *CheckboxFormField {
	f.required = required
	return f
}

func (f *CheckboxFormField) WithOptions(options ...string) *CheckboxFormField {
	f.options = append(f.options, options...)
	return f
}

func (f *CheckboxFormField) WithValue(value string) *CheckboxFormField {
	f.value = &value
	return f
}

func (f *CheckboxFormField) WithSize(height, width float64) *CheckboxFormField {
	f.height, f.width = height, width
	return f
}

func (f *CheckboxFormField) OnPosition(p FormFieldPosition) *CheckboxFormField {
	f.placements = append(f.placements, p)
	return f
}

func (f *CheckboxFormField) convert() []entity.FormField {
	out := make([]entity.FormField, 0, len(f.placements))
	for _, p := range f.placements {
		options := make([]entity.FormFieldOption, 0, len(f.options))
		for _, option := range f.options {
			checked := ""
			if f.value != nil && option == *f.value {
				checked = checkboxMarker
			}
			options = append(options, entity.FormFieldOption{
				Name:        option,
				CoordinateX: p.X,
				CoordinateY: p.Y,
				Height:      percent(f.height),
				Width:       percent(f.width),
				Value:       checked,
			})
		}
		out = append(out, entity.FormField{
			Name:        f.name,
			Description: f.instructions,
			Required:    f.required,
			Type:        formFieldType,
			Variant:     "Checkbox",
			FieldType:   "Select",
			Value:       f.value,
			DocumentID:  p.File.ID,
			Positions:   []entity.FormFieldPlacement{f.placement(p)},
			Options:     options,
		})
	}
	return out
}
