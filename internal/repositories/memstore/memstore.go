// Package memstore keeps every entity in process memory. It mirrors the
// postgres repositories row for row and backs STORE_DRIVER=memory and the
// service tests.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/reachdesk/backend/internal/models"
)

// DefaultLookups matches migrations/0002_seed_lookups.up.sql.
var DefaultLookups = map[models.LookupKind][]models.Lookup{
	models.LookupCategory: {
		{ID: "marketing", Name: "Marketing"},
		{ID: "utility", Name: "Utility"},
		{ID: "authentication", Name: "Authentication"},
	},
	models.LookupType: {
		{ID: "standard", Name: "Standard"},
		{ID: "media", Name: "Media"},
		{ID: "interactive", Name: "Interactive"},
	},
	models.LookupLanguage: {
		{ID: "en", Name: "English"},
		{ID: "ar", Name: "Arabic"},
		{ID: "fr", Name: "French"},
		{ID: "es", Name: "Spanish"},
	},
	models.LookupHeaderType: {
		{ID: "text", Name: "Text"},
		{ID: "image", Name: "Image"},
		{ID: "video", Name: "Video"},
		{ID: "document", Name: "Document"},
	},
	models.LookupButtonType: {
		{ID: "1", Name: "Quick reply"},
		{ID: "2", Name: "Visit website"},
		{ID: "3", Name: "Call phone number"},
	},
}

// Store holds all tables behind one lock so cross-table checks (list ->
// campaign owner) see a consistent snapshot.
type Store struct {
	mu sync.RWMutex

	contacts  map[string]models.Contact
	campaigns map[string]models.Campaign
	lists     map[string]models.List
	templates map[string]models.Template
	headers   map[string]models.TemplateHeader
	footers   map[string]models.TemplateFooter
	buttons   map[string]models.TemplateButton
	lookups   map[models.LookupKind][]models.Lookup
	audit     []models.AuditLog

	last time.Time
}

func New() *Store {
	lookups := make(map[models.LookupKind][]models.Lookup, len(DefaultLookups))
	for kind, rows := range DefaultLookups {
		lookups[kind] = append([]models.Lookup(nil), rows...)
	}
	return &Store{
		contacts:  map[string]models.Contact{},
		campaigns: map[string]models.Campaign{},
		lists:     map[string]models.List{},
		templates: map[string]models.Template{},
		headers:   map[string]models.TemplateHeader{},
		footers:   map[string]models.TemplateFooter{},
		buttons:   map[string]models.TemplateButton{},
		lookups:   lookups,
	}
}

func (s *Store) Campaigns() *CampaignStore { return &CampaignStore{s: s} }
func (s *Store) Lists() *ListStore         { return &ListStore{s: s} }
func (s *Store) Templates() *TemplateStore { return &TemplateStore{s: s} }
func (s *Store) Contacts() *ContactStore   { return &ContactStore{s: s} }
func (s *Store) Lookups() *LookupStore     { return &LookupStore{s: s} }
func (s *Store) Audit() *AuditStore        { return &AuditStore{s: s} }

// now returns a strictly increasing timestamp. Callers hold s.mu.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func newestFirst[T any](rows []T, created func(T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		return created(rows[i]).After(created(rows[j]))
	})
}


// setIf copies *v into dst when v is set.
func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
