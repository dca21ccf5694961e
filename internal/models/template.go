package models

import "time"

type Template struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	Name                string    `json:"name"`
	AllowCategoryChange bool      `json:"allowCategoryChange"`
	CategoryID          string    `json:"categoryId"`
	TypeID              string    `json:"typeId"`
	LanguageID          string    `json:"languageId"`
	HeaderID            *string   `json:"headerId"`
	BodyMessage         string    `json:"bodyMessage"`
	FooterID            *string   `json:"footerId"`
	Status              string    `json:"status"`
	RecordStatus        string    `json:"recordStatus"`
	CreationDate        time.Time `json:"creationDate"`
}

// TemplateWithLookups is the table projection: lookup names joined in.
type TemplateWithLookups struct {
	Template
	Category string `json:"category"`
	Type     string `json:"type"`
	Language string `json:"language"`
}

// TemplateDetail is a single template with its attached parts.
type TemplateDetail struct {
	Template
	Header  *TemplateHeader  `json:"header,omitempty"`
	Footer  *TemplateFooter  `json:"footer,omitempty"`
	Buttons []TemplateButton `json:"buttons"`
}

type TemplateHeader struct {
	ID     string  `json:"id"`
	Text   *string `json:"text,omitempty"`
	TypeID string  `json:"typeId"`
}

type TemplateFooter struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type TemplateButton struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	URL         *string `json:"url,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	TypeID      string  `json:"typeId"`
	TemplateID  *string `json:"templateId,omitempty"`
}

// TemplateParts are the sub-rows written together with a template. A nil
// Header or Footer detaches it; Buttons nil leaves buttons untouched on
// update.
type TemplateParts struct {
	Header  *TemplateHeader
	Footer  *TemplateFooter
	Buttons []TemplateButton
}

// TemplateUpdate replaces the editable template fields.
type TemplateUpdate struct {
	Name                string
	AllowCategoryChange bool
	CategoryID          string
	TypeID              string
	LanguageID          string
	BodyMessage         string
}

// Message has the shape of a template. It is declared in the schema but no
// operation reads or writes it yet.
type Message Template
