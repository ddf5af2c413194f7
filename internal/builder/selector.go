package builder

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
)

type notificationKind uint8

const (
	notifyNone notificationKind = iota
	notifyEmail
)

// Notification selects how the signing invitation reaches a signer.
// The zero value sends no notification.
type Notification struct {
	kind  notificationKind
	email string
}

// NotifyByEmail sends the invitation to email.
func NotifyByEmail(email string) (Notification, error) {
	if err := apierror.Validate("notification_email", email, validation.Required.Error("email cannot be empty")); err != nil {
		return Notification{}, err
	}
	return Notification{kind: notifyEmail, email: email}, nil
}

// NoNotification leaves delivery of the signing link to the caller.
func NoNotification() Notification {
	return Notification{}
}

// Email returns the destination address for email notifications.
func (n Notification) Email() (string, bool) {
	return n.email, n.kind == notifyEmail
}

type authKind uint8

const (
	authNone authKind = iota
	authEmail
	authSMS
	authWhatsApp
)

// DoubleAuthentication selects the second identity check a signer passes
// before signing. The zero value disables it.
type DoubleAuthentication struct {
	kind    authKind
	contact string
}

func EmailAuthentication(email string) (DoubleAuthentication, error) {
	if err := apierror.Validate("authentication_email", email, validation.Required.Error("email cannot be empty")); err != nil {
		return DoubleAuthentication{}, err
	}
	return DoubleAuthentication{kind: authEmail, contact: email}, nil
}

func SMSAuthentication(phone string) (DoubleAuthentication, error) {
	if err := apierror.Validate("authentication_phone", phone, validation.Required.Error("phone number cannot be empty")); err != nil {
		return DoubleAuthentication{}, err
	}
	return DoubleAuthentication{kind: authSMS, contact: phone}, nil
}

func WhatsAppAuthentication(phone string) (DoubleAuthentication, error) {
	if err := apierror.Validate("authentication_phone", phone, validation.Required.Error("phone number cannot be empty")); err != nil {
		return DoubleAuthentication{}, err
	}
	return DoubleAuthentication{kind: authWhatsApp, contact: phone}, nil
}

func NoAuthentication() DoubleAuthentication {
	return DoubleAuthentication{}
}

type signatureKind uint8

const (
	signatureUnset signatureKind = iota
	signatureDefault
	signatureAutomaticStamp
)

// SignatureInfo selects the signature a signer applies. The zero value keeps
// the member default (Draw).
type SignatureInfo struct {
	kind          signatureKind
	signatureType entity.SignatureType
	print         bool
	stampID       string
}

// DefaultSignature asks the signer for a signature of type t.
func DefaultSignature(t entity.SignatureType, print bool) (SignatureInfo, error) {
	err := apierror.Validate("signature_type", int(t),
		validation.Min(int(entity.SignatureTypeClick)),
		validation.Max(int(entity.SignatureTypeCertificate)),
	)
	if err != nil {
		return SignatureInfo{}, err
	}
	return SignatureInfo{kind: signatureDefault, signatureType: t, print: print}, nil
}

// AutomaticStamp applies the stamp identified by stampID without signer interaction.
func AutomaticStamp(stampID string) (SignatureInfo, error) {
	if err := apierror.Validate("stamp_id", stampID, validation.Required.Error("stamp ID cannot be empty")); err != nil {
		return SignatureInfo{}, err
	}
	return SignatureInfo{kind: signatureAutomaticStamp, signatureType: entity.SignatureTypeStamp, print: true, stampID: stampID}, nil
}

// StampID is only set for AutomaticStamp. It is not sent to the API.
func (s SignatureInfo) StampID() string {
	return s.stampID
}

func (s SignatureInfo) IsAutomaticStamp() bool {
	return s.kind == signatureAutomaticStamp
}

func (s SignatureInfo) PrintSignature() bool {
	return s.kind == signatureUnset || s.print
}
