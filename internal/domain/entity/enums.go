package entity

import (
	"fmt"
	"strings"
)

// NotificationChannel is how ForSign delivers the signing invitation to a member.
type NotificationChannel int

const (
	NotificationChannelEmail    NotificationChannel = 0
	NotificationChannelSMS      NotificationChannel = 1
	NotificationChannelWhatsApp NotificationChannel = 2
	NotificationChannelNone     NotificationChannel = 3
)

func (c NotificationChannel) String() string {
	switch c {
	case NotificationChannelEmail:
		return "Email"
	case NotificationChannelSMS:
		return "SMS"
	case NotificationChannelWhatsApp:
		return "WhatsApp"
	case NotificationChannelNone:
		return "None"
	default:
		return fmt.Sprintf("NotificationChannel(%d)", int(c))
	}
}

// ParseNotificationChannel accepts the channel name in any case.
func ParseNotificationChannel(s string) (NotificationChannel, error) {
	switch strings.ToLower(s) {
	case "email":
		return NotificationChannelEmail, nil
	case "sms":
		return NotificationChannelSMS, nil
	case "whatsapp":
		return NotificationChannelWhatsApp, nil
	case "none":
		return NotificationChannelNone, nil
	}
	return 0, fmt.Errorf("unsupported notification channel: %s", s)
}

// AuthenticationChannel is the double authentication channel of a member.
type AuthenticationChannel int

const (
	AuthenticationChannelEmail    AuthenticationChannel = 0
	AuthenticationChannelSMS      AuthenticationChannel = 1
	AuthenticationChannelWhatsApp AuthenticationChannel = 2
)

func (c AuthenticationChannel) String() string {
	switch c {
	case AuthenticationChannelEmail:
		return "Email"
	case AuthenticationChannelSMS:
		return "SMS"
	case AuthenticationChannelWhatsApp:
		return "WhatsApp"
	default:
		return fmt.Sprintf("AuthenticationChannel(%d)", int(c))
	}
}

// ParseAuthenticationChannel accepts the channel name in any case.
func ParseAuthenticationChannel(s string) (AuthenticationChannel, error) {
	switch strings.ToLower(s) {
	case "email":
		return AuthenticationChannelEmail, nil
	case "sms":
		return AuthenticationChannelSMS, nil
	case "whatsapp":
		return AuthenticationChannelWhatsApp, nil
	}
	return 0, fmt.Errorf("unsupported authentication channel: %s", s)
}

// SignatureType is the kind of signature a member applies.
type SignatureType int

const (
	SignatureTypeClick          SignatureType = 0
	SignatureTypeDraw           SignatureType = 1
	SignatureTypeText           SignatureType = 2
	SignatureTypeStamp          SignatureType = 3
	SignatureTypeUserChoice     SignatureType = 4
	SignatureTypeAutomaticStamp SignatureType = 5
	SignatureTypeRubric         SignatureType = 6
	SignatureTypeCertificate    SignatureType = 7
)

func (t SignatureType) String() string {
	switch t {
	case SignatureTypeClick:
		return "Click"
	case SignatureTypeDraw:
		return "Draw"
	case SignatureTypeText:
		return "Text"
	case SignatureTypeStamp:
		return "Stamp"
	case SignatureTypeUserChoice:
		return "User Choice"
	case SignatureTypeAutomaticStamp:
		return "Automatic Stamp"
	case SignatureTypeRubric:
		return "Rubric"
	case SignatureTypeCertificate:
		return "Certificate"
	default:
		return fmt.Sprintf("SignatureType(%d)", int(t))
	}
}

// ParseSignatureType accepts names like "draw", "user choice", "automatic_stamp".
func ParseSignatureType(s string) (SignatureType, error) {
	switch strings.ToLower(s) {
	case "click":
		return SignatureTypeClick, nil
	case "draw":
		return SignatureTypeDraw, nil
	case "text":
		return SignatureTypeText, nil
	case "stamp":
		return SignatureTypeStamp, nil
	case "userchoice", "user choice", "user_choice":
		return SignatureTypeUserChoice, nil
	case "automaticstamp", "automatic stamp", "automatic_stamp":
		return SignatureTypeAutomaticStamp, nil
	case "rubric":
		return SignatureTypeRubric, nil
	case "certificate":
		return SignatureTypeCertificate, nil
	}
	return 0, fmt.Errorf("unsupported signature type: %s", s)
}

// Language is the operation language code sent to ForSign.
type Language string

const (
	LanguagePortuguese Language = "pt-br"
	LanguageEnglish    Language = "en-us"
	LanguageSpanish    Language = "es-es"
)

// ParseLanguage accepts the language code in any case.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(s)); l {
	case LanguagePortuguese, LanguageEnglish, LanguageSpanish:
		return l, nil
	}
	return "", fmt.Errorf("unsupported language: %s", s)
}

// InputAttachmentType is how a member may provide an attachment.
type InputAttachmentType int

const (
	InputAttachmentCameraSideBack  InputAttachmentType = 1
	InputAttachmentCameraSideFront InputAttachmentType = 2
	InputAttachmentUploadFile      InputAttachmentType = 4
)

func (t InputAttachmentType) String() string {
	switch t {
	case InputAttachmentCameraSideBack:
		return "Camera Side Back"
	case InputAttachmentCameraSideFront:
		return "Camera Side Front"
	case InputAttachmentUploadFile:
		return "Upload File"
	default:
		return fmt.Sprintf("InputAttachmentType(%d)", int(t))
	}
}

// ParseInputAttachmentType accepts names like "upload_file" or "camera side front".
func ParseInputAttachmentType(s string) (InputAttachmentType, error) {
	switch strings.NewReplacer("_", "", " ", "", "-", "").Replace(strings.ToLower(s)) {
	case "camerasideback":
		return InputAttachmentCameraSideBack, nil
	case "camerasidefront":
		return InputAttachmentCameraSideFront, nil
	case "uploadfile":
		return InputAttachmentUploadFile, nil
	}
	return 0, fmt.Errorf("unsupported input attachment type: %s", s)
}

// AttachmentFileType is a file extension accepted for a member attachment.
type AttachmentFileType string

const (
	AttachmentFileTypePDF  AttachmentFileType = "pdf"
	AttachmentFileTypePNG  AttachmentFileType = "png"
	AttachmentFileTypeJPG  AttachmentFileType = "jpg"
	AttachmentFileTypeJPEG AttachmentFileType = "jpeg"
	AttachmentFileTypeTIFF AttachmentFileType = "tiff"
	AttachmentFileTypeTIF  AttachmentFileType = "tif"
)

// AttachmentFileTypeFromExtension lowercases ext and strips a leading dot.
func AttachmentFileTypeFromExtension(ext string) AttachmentFileType {
	return AttachmentFileType(strings.TrimPrefix(strings.ToLower(ext), "."))
}

// AttachmentFileTypeFromMIME maps a MIME type back to its canonical extension.
func AttachmentFileTypeFromMIME(mime string) (AttachmentFileType, error) {
	switch mime {
	case "application/pdf":
		return AttachmentFileTypePDF, nil
	case "image/png":
		return AttachmentFileTypePNG, nil
	case "image/jpeg":
		return AttachmentFileTypeJPEG, nil
	case "image/tiff":
		return AttachmentFileTypeTIFF, nil
	}
	return "", fmt.Errorf("unsupported MIME type: %s", mime)
}

// MIMEType returns the MIME type for the extension, application/octet-stream if unknown.
func (t AttachmentFileType) MIMEType() string {
	switch t {
	case AttachmentFileTypePDF:
		return "application/pdf"
	case AttachmentFileTypePNG:
		return "image/png"
	case AttachmentFileTypeJPG, AttachmentFileTypeJPEG:
		return "image/jpeg"
	case AttachmentFileTypeTIFF, AttachmentFileTypeTIF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
