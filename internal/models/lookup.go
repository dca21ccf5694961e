package models

// LookupKind names one of the shared reference tables used by templates.
type LookupKind string

const (
	LookupCategory   LookupKind = "category"
	LookupType       LookupKind = "type"
	LookupLanguage   LookupKind = "language"
	LookupHeaderType LookupKind = "header_type"
	LookupButtonType LookupKind = "button_type"
)

var LookupKinds = []LookupKind{LookupCategory, LookupType, LookupLanguage, LookupHeaderType, LookupButtonType}

type Lookup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LookupOption is the select-box projection returned by the API.
type LookupOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
