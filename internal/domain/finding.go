package domain

import "time"

// CaseType classifies an infraction as administrative or criminal.
type CaseType string

const (
	CaseAdministrative CaseType = "administrative"
	CaseCriminal       CaseType = "criminal"
)

// Document is an attached supporting file reference.
type Document struct {
	Name       string    `json:"name"`
	Reference  string    `json:"reference"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Finding is a raw observation recorded by intake before any formal
// accusation exists. Conversion is one-way: once AccusationID is set the
// finding is frozen and must never be edited again.
type Finding struct {
	ID              string     `json:"id"`
	ReferenceNumber string     `json:"reference_number"`
	Category        string     `json:"category"`
	CaseTypeHint    CaseType   `json:"case_type_hint"`
	PartyIdentity   string     `json:"party_identity"`
	PartyName       string     `json:"party_name"`
	EstimatedBase   int64      `json:"estimated_base"`
	Currency        string     `json:"currency"`
	Description     string     `json:"description"`
	Documents       []Document `json:"documents,omitempty"`
	AccusationID    string     `json:"accusation_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Converted reports whether an accusation was already created from this
// finding.
func (f *Finding) Converted() bool {
	return f.AccusationID != ""
}
