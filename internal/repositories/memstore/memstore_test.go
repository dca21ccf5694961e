package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

func TestNowIsStrictlyIncreasing(t *testing.T) {
	s := New()
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.now()
	for i := 0; i < 1000; i++ {
		next := s.now()
		if !next.After(prev) {
			t.Fatalf("now() went from %v to %v", prev, next)
		}
		prev = next
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	campaigns := s.Campaigns()

	c := &models.Campaign{ID: "c1", UserID: "u1", Name: "original", Status: models.CampaignStatusRunning, RecordStatus: models.RecordStatusCreated}
	if err := campaigns.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := campaigns.Get(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.Name = "mutated"

	again, _ := campaigns.Get(ctx, "u1", "c1")
	if again.Name != "original" {
		t.Errorf("stored row changed through a returned pointer: %q", again.Name)
	}
}

func TestListsFollowCampaignOwner(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.Campaigns().Create(ctx, &models.Campaign{ID: "c1", UserID: "u1", RecordStatus: models.RecordStatusCreated})

	list := &models.List{ID: "l1", Name: "L", CampaignID: "c1", Status: models.ListStatusRunning, RecordStatus: models.RecordStatusCreated}
	if err := s.Lists().Create(ctx, "u2", list); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("create under foreign campaign: err = %v, want ErrNotFound", err)
	}
	if err := s.Lists().Create(ctx, "u1", list); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Lists().Get(ctx, "u2", "l1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign Get: err = %v, want ErrNotFound", err)
	}

	// Deleting the campaign does not cascade.
	if _, err := s.Campaigns().Apply(ctx, "u1", "c1", models.TransitionDelete.Resolve(models.CampaignStatusStopped)); err != nil {
		t.Fatalf("delete campaign: %v", err)
	}
	if _, err := s.Lists().Get(ctx, "u1", "l1"); err != nil {
		t.Errorf("list of deleted campaign: %v", err)
	}
}

func TestLookupOrdering(t *testing.T) {
	ctx := context.Background()
	s := New()

	tests := []struct {
		kind  models.LookupKind
		first string
	}{
		{models.LookupCategory, "authentication"},
		{models.LookupLanguage, "ar"},
		{models.LookupButtonType, "1"},
	}
	for _, tt := range tests {
		rows, err := s.Lookups().List(ctx, tt.kind)
		if err != nil {
			t.Fatalf("List(%s): %v", tt.kind, err)
		}
		if len(rows) == 0 || rows[0].ID != tt.first {
			t.Errorf("List(%s) first = %+v, want %s", tt.kind, rows, tt.first)
		}
	}

	if _, err := s.Lookups().List(ctx, models.LookupKind("colors")); err == nil {
		t.Error("unknown kind: expected error")
	}
}

func TestRemovedLookupHidesTemplate(t *testing.T) {
	ctx := context.Background()
	s := New()
	templates := s.Templates()

	tpl := &models.Template{
		ID: "t1", UserID: "u1", Name: "T",
		CategoryID: "utility", TypeID: "standard", LanguageID: "en",
		Status: models.TemplateStatusRunning, RecordStatus: models.RecordStatusCreated,
	}
	if err := templates.Create(ctx, tpl, models.TemplateParts{}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	rows, _ := templates.List(ctx, "u1", models.RecordStatusCreated)
	if len(rows) != 1 || rows[0].Category != "Utility" {
		t.Fatalf("List = %+v", rows)
	}

	if err := s.Lookups().Remove(models.LookupCategory, "utility"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	rows, _ = templates.List(ctx, "u1", models.RecordStatusCreated)
	if len(rows) != 0 {
		t.Errorf("template with dangling category still listed: %+v", rows)
	}
}

func TestAuditNewestFirstWithPaging(t *testing.T) {
	ctx := context.Background()
	audit := New().Audit()

	for _, action := range []string{"campaign_created", "campaign_stop", "campaign_archive"} {
		if err := audit.Log(ctx, models.AuditLog{EntityType: models.EntityCampaign, EntityID: "c1", Action: action}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
	if err := audit.Log(ctx, models.AuditLog{EntityType: models.EntityCampaign, EntityID: "c2", Action: "campaign_created"}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	all, _ := audit.GetByEntity(ctx, models.EntityCampaign, "c1", 0, 0)
	if len(all) != 3 || all[0].Action != "campaign_archive" || all[2].Action != "campaign_created" {
		t.Fatalf("unexpected history: %+v", all)
	}

	page, _ := audit.GetByEntity(ctx, models.EntityCampaign, "c1", 1, 1)
	if len(page) != 1 || page[0].Action != "campaign_stop" {
		t.Errorf("page (1,1) = %+v", page)
	}

	past, _ := audit.GetByEntity(ctx, models.EntityCampaign, "c1", 10, 5)
	if len(past) != 0 {
		t.Errorf("offset past end returned %d rows", len(past))
	}

	none, _ := audit.GetByEntity(ctx, models.EntityList, "c1", 10, 0)
	if len(none) != 0 {
		t.Errorf("other entity type leaked %d rows", len(none))
	}
}
