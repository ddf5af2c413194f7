package entity

import (
	"encoding/json"
	"slices"
	"time"
)

// ========== ForSign Operation Request Structures ==========

// OperationRequest is the payload of POST /api/v1/operation.
type OperationRequest struct {
	Name                  string              `json:"Name"`
	Language              Language            `json:"Language"`
	DisplayCover          bool                `json:"DisplayCover"`
	Files                 []OperationDocument `json:"Files"`   // Deduplicated by Id
	Members               []Member            `json:"Members"` // At least one
	Groups                []int               `json:"Groups"`
	Order                 bool                `json:"Order"` // Members sign in OrderPosition sequence
	MemberMovementWarning bool                `json:"MemberMovementWarning"`
	OnPremises            bool                `json:"OnPremises"` // In-person signing
	Metadata              []Metadata          `json:"Metadata"`
	OptionalMessage       *string             `json:"OptionalMessage,omitempty"`
	ExpirationDate        *ISOTime            `json:"ExpirationDate,omitempty"`
	ExternalID            *string             `json:"ExternalId,omitempty"`
	OperationModelID      *int                `json:"OperationModelId,omitempty"`
	ManualFinish          *ManualFinish       `json:"ManualFinish,omitempty"`
}

// OperationDocument references an uploaded document inside an operation.
type OperationDocument struct {
	ID          string `json:"Id"`
	Description string `json:"Description,omitempty"`
}

// Metadata is a free-form key/value entry attached to an operation.
type Metadata struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// ManualFinish switches the operation to manual completion.
type ManualFinish struct {
	HasManualFinish bool     `json:"HasManualFinish"`
	Date            *ISOTime `json:"Date,omitempty"`
}

// ISOTime serializes as ISO-8601 without fractional seconds.
type ISOTime time.Time

func NewISOTime(t time.Time) *ISOTime {
	v := ISOTime(t)
	return &v
}

func (t ISOTime) Time() time.Time {
	return time.Time(t)
}

func (t ISOTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339))
}

func (t *ISOTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*t = ISOTime(parsed)
	return nil
}

// Clone returns a copy that shares no slices with r.
func (r OperationRequest) Clone() OperationRequest {
	out := r
	out.Files = slices.Clone(r.Files)
	out.Groups = slices.Clone(r.Groups)
	out.Metadata = slices.Clone(r.Metadata)
	out.Members = make([]Member, len(r.Members))
	for i, m := range r.Members {
		out.Members[i] = m.Clone()
	}
	if r.ManualFinish != nil {
		mf := *r.ManualFinish
		out.ManualFinish = &mf
	}
	return out
}
