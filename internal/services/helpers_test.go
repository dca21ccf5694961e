package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/events"
	"github.com/reachdesk/backend/internal/models"
	"github.com/reachdesk/backend/internal/repositories/memstore"
	"go.uber.org/zap"
)

const (
	userA = "user-a"
	userB = "user-b"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type failingAudit struct{}

func (failingAudit) Log(context.Context, models.AuditLog) error {
	return errors.New("audit down")
}

func (failingAudit) GetByEntity(context.Context, string, string, int, int) ([]models.AuditLog, error) {
	return nil, errors.New("audit down")
}

type testEnv struct {
	store     *memstore.Store
	publisher *recordingPublisher
	campaigns *CampaignService
	lists     *ListService
	templates *TemplateService
	contacts  *ContactService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	pub := &recordingPublisher{}
	log := zap.NewNop()
	audit := store.Audit()
	return &testEnv{
		store:     store,
		publisher: pub,
		campaigns: NewCampaignService(store.Campaigns(), audit, pub, log),
		lists:     NewListService(store.Lists(), audit, pub, log),
		templates: NewTemplateService(store.Templates(), store.Lookups(), audit, pub, log),
		contacts:  NewContactService(store.Contacts(), audit, pub, log),
	}
}

func (e *testEnv) campaign(t *testing.T, userID, name string) *models.Campaign {
	t.Helper()
	c := &models.Campaign{Name: name}
	if err := e.campaigns.Create(context.Background(), userID, c); err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return c
}

func (e *testEnv) list(t *testing.T, userID, campaignID, name string) *models.List {
	t.Helper()
	l := &models.List{Name: name, CampaignID: campaignID}
	if err := e.lists.Create(context.Background(), userID, l); err != nil {
		t.Fatalf("create list: %v", err)
	}
	return l
}

func basicTemplate(name string) TemplateInput {
	return TemplateInput{
		Name:        name,
		CategoryID:  "marketing",
		TypeID:      "standard",
		LanguageID:  "en",
		BodyMessage: "Hello {{1}}",
	}
}

func (e *testEnv) template(t *testing.T, userID string, in TemplateInput) *models.Template {
	t.Helper()
	tpl, err := e.templates.Create(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	return tpl
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
