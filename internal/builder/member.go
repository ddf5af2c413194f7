package builder

import "forsign-esign/internal/domain/entity"

// compileMember turns a signer into its wire member and registers every
// document it references in docs. OrderPosition is left to the caller.
func compileMember(s *Signer, docs *documentSet) entity.Member {
	m := entity.NewMember(s.name, s.email)
	m.Role = s.role
	m.FormTitle = s.formTitle
	m.FormDescription = s.formDescription
	m.Phone = s.phone
	m.Document = s.document
	m.Observer = s.observer

	switch s.signature.kind {
	case signatureDefault:
		m.SignatureType = s.signature.signatureType
	case signatureAutomaticStamp:
		// Automatic stamps are click signatures server side. The stamp id is
		// not forwarded until the API documents where it belongs.
		m.SignatureType = entity.SignatureTypeClick
	case signatureUnset:
	}

	resolveChannels(s.notification, s.authentication, &m)

	for _, a := range s.attachments {
		m.Attachments = append(m.Attachments, a.convert())
	}

	for _, f := range s.formFields {
		for _, p := range f.positions() {
			docs.register(p.File)
		}
		m.FormFields = append(m.FormFields, f.convert()...)
	}

	for _, p := range s.signatures {
		m.Signatures = append(m.Signatures, compilePosition(p, docs))
	}
	for _, p := range s.rubrics {
		m.Rubrics = append(m.Rubrics, compilePosition(p, docs))
	}
	if s.tag != nil {
		compileTag(*s.tag, docs, &m)
	}

	return m
}
