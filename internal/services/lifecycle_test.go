package services

import (
	"context"
	"errors"
	"testing"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/events"
	"github.com/reachdesk/backend/internal/models"
	"github.com/reachdesk/backend/internal/repositories/memstore"
	"go.uber.org/zap"
)

type entityCase struct {
	name     string
	initial  string
	stopped  string
	create   func(t *testing.T, e *testEnv, userID string) string
	state    func(e *testEnv, userID, id string) (recordStatus, status string, err error)
	engine   func(e *testEnv) *Lifecycle
	archived func(e *testEnv, userID string) ([]string, error)
}

func entityCases() []entityCase {
	ctx := context.Background()
	return []entityCase{
		{
			name:    "campaign",
			initial: models.CampaignStatusRunning,
			stopped: models.CampaignStatusStopped,
			create: func(t *testing.T, e *testEnv, userID string) string {
				return e.campaign(t, userID, "Spring sale").ID
			},
			state: func(e *testEnv, userID, id string) (string, string, error) {
				c, err := e.campaigns.Get(ctx, userID, id)
				if err != nil {
					return "", "", err
				}
				return c.RecordStatus, c.Status, nil
			},
			engine: func(e *testEnv) *Lifecycle { return e.campaigns.Lifecycle },
			archived: func(e *testEnv, userID string) ([]string, error) {
				rows, err := e.campaigns.ListArchived(ctx, userID)
				ids := []string{}
				for _, r := range rows {
					ids = append(ids, r.ID)
				}
				return ids, err
			},
		},
		{
			name:    "list",
			initial: models.ListStatusRunning,
			stopped: models.ListStatusStopped,
			create: func(t *testing.T, e *testEnv, userID string) string {
				c := e.campaign(t, userID, "Parent")
				return e.list(t, userID, c.ID, "VIP customers").ID
			},
			state: func(e *testEnv, userID, id string) (string, string, error) {
				l, err := e.lists.Get(ctx, userID, id)
				if err != nil {
					return "", "", err
				}
				return l.RecordStatus, l.Status, nil
			},
			engine: func(e *testEnv) *Lifecycle { return e.lists.Lifecycle },
			archived: func(e *testEnv, userID string) ([]string, error) {
				rows, err := e.lists.ListArchived(ctx, userID, nil)
				ids := []string{}
				for _, r := range rows {
					ids = append(ids, r.ID)
				}
				return ids, err
			},
		},
		{
			name:    "template",
			initial: models.TemplateStatusRunning,
			stopped: models.TemplateStatusStopped,
			create: func(t *testing.T, e *testEnv, userID string) string {
				return e.template(t, userID, basicTemplate("Welcome")).ID
			},
			state: func(e *testEnv, userID, id string) (string, string, error) {
				tpl, err := e.templates.Get(ctx, userID, id)
				if err != nil {
					return "", "", err
				}
				return tpl.RecordStatus, tpl.Status, nil
			},
			engine: func(e *testEnv) *Lifecycle { return e.templates.Lifecycle },
			archived: func(e *testEnv, userID string) ([]string, error) {
				rows, err := e.templates.ListArchived(ctx, userID)
				ids := []string{}
				for _, r := range rows {
					ids = append(ids, r.ID)
				}
				return ids, err
			},
		},
	}
}

func TestArchiveSetsArchivedAndStopped(t *testing.T) {
	for _, tc := range entityCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			e := newTestEnv(t)
			id := tc.create(t, e, userA)

			rs, st, err := tc.state(e, userA, id)
			if err != nil {
				t.Fatalf("state: %v", err)
			}
			if rs != models.RecordStatusCreated || st != tc.initial {
				t.Fatalf("initial = (%s, %s), want (created, %s)", rs, st, tc.initial)
			}

			got, err := tc.engine(e).Archive(ctx, userA, id)
			if err != nil {
				t.Fatalf("archive: %v", err)
			}
			if got != id {
				t.Errorf("archive returned %q, want %q", got, id)
			}

			rs, st, _ = tc.state(e, userA, id)
			if rs != models.RecordStatusArchived || st != tc.stopped {
				t.Errorf("after archive = (%s, %s), want (archived, %s)", rs, st, tc.stopped)
			}

			ids, err := tc.archived(e, userA)
			if err != nil {
				t.Fatalf("list archived: %v", err)
			}
			if len(ids) != 1 || ids[0] != id {
				t.Errorf("archived ids = %v, want [%s]", ids, id)
			}
		})
	}
}

func TestArchiveByOtherUserIsNotFound(t *testing.T) {
	for _, tc := range entityCases() {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv(t)
			id := tc.create(t, e, userA)

			_, err := tc.engine(e).Archive(context.Background(), userB, id)
			assertNotFound(t, err)

			rs, st, _ := tc.state(e, userA, id)
			if rs != models.RecordStatusCreated || st != tc.initial {
				t.Errorf("row changed to (%s, %s)", rs, st)
			}
		})
	}
}

func TestRestoreKeepsStatus(t *testing.T) {
	for _, tc := range entityCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			e := newTestEnv(t)
			id := tc.create(t, e, userA)
			lc := tc.engine(e)

			if _, err := lc.Archive(ctx, userA, id); err != nil {
				t.Fatalf("archive: %v", err)
			}
			if _, err := lc.Restore(ctx, userA, id); err != nil {
				t.Fatalf("restore: %v", err)
			}

			rs, st, _ := tc.state(e, userA, id)
			if rs != models.RecordStatusCreated {
				t.Errorf("record status = %s, want created", rs)
			}
			if st != tc.stopped {
				t.Errorf("status = %s, want %s (restore must not resume)", st, tc.stopped)
			}
		})
	}
}

func TestStopLeavesRecordStatus(t *testing.T) {
	for _, tc := range entityCases() {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv(t)
			id := tc.create(t, e, userA)

			if _, err := tc.engine(e).Stop(context.Background(), userA, id); err != nil {
				t.Fatalf("stop: %v", err)
			}
			rs, st, _ := tc.state(e, userA, id)
			if rs != models.RecordStatusCreated || st != tc.stopped {
				t.Errorf("after stop = (%s, %s), want (created, %s)", rs, st, tc.stopped)
			}
		})
	}
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	for _, tc := range entityCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			e := newTestEnv(t)
			id := tc.create(t, e, userA)
			lc := tc.engine(e)

			if _, err := lc.Delete(ctx, userA, id); err != nil {
				t.Fatalf("first delete: %v", err)
			}
			_, err := lc.Delete(ctx, userA, id)
			assertNotFound(t, err)

			_, _, err = tc.state(e, userA, id)
			assertNotFound(t, err)
		})
	}
}

func TestInvalidTransitionsAreNotFound(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		setup []models.Transition
		op    models.Transition
	}{
		{"archive archived", []models.Transition{models.TransitionArchive}, models.TransitionArchive},
		{"restore created", nil, models.TransitionRestore},
		{"restore deleted", []models.Transition{models.TransitionDelete}, models.TransitionRestore},
		{"stop deleted", []models.Transition{models.TransitionDelete}, models.TransitionStop},
		{"archive deleted", []models.Transition{models.TransitionDelete}, models.TransitionArchive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			id := e.campaign(t, userA, "c").ID
			lc := e.campaigns.Lifecycle
			for _, tr := range tt.setup {
				if _, err := lc.apply(ctx, userA, id, tr); err != nil {
					t.Fatalf("setup %s: %v", tr.Action, err)
				}
			}
			_, err := lc.apply(ctx, userA, id, tt.op)
			assertNotFound(t, err)
		})
	}
}

func TestDeleteFromArchived(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	id := e.campaign(t, userA, "c").ID

	if _, err := e.campaigns.Archive(ctx, userA, id); err != nil {
		t.Fatal(err)
	}
	if _, err := e.campaigns.Delete(ctx, userA, id); err != nil {
		t.Fatalf("delete archived: %v", err)
	}
	archived, _ := e.campaigns.ListArchived(ctx, userA)
	if len(archived) != 0 {
		t.Errorf("deleted campaign still archived: %v", archived)
	}
}

func TestBulkDeleteOnlyOwned(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	a1 := e.campaign(t, userA, "a1").ID
	a2 := e.campaign(t, userA, "a2").ID
	b1 := e.campaign(t, userB, "b1").ID

	affected, err := e.campaigns.BulkDelete(ctx, userA, []string{a1, b1, "missing", a2, a1})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if len(affected) != 2 || affected[0] != a1 || affected[1] != a2 {
		t.Errorf("affected = %v, want [%s %s]", affected, a1, a2)
	}

	if _, err := e.campaigns.Get(ctx, userB, b1); err != nil {
		t.Errorf("foreign campaign touched: %v", err)
	}
}

func TestBulkDeleteEmpty(t *testing.T) {
	e := newTestEnv(t)
	affected, err := e.templates.BulkDelete(context.Background(), userA, nil)
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if affected == nil || len(affected) != 0 {
		t.Errorf("affected = %#v, want empty slice", affected)
	}
	if e.publisher.count() != 0 {
		t.Errorf("published %d events for an empty delete", e.publisher.count())
	}
}

func TestLifecycleGuards(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	if _, err := e.campaigns.Archive(ctx, "", "x"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("empty user: got %v", err)
	}
	if _, err := e.campaigns.Archive(ctx, userA, ""); !errors.Is(err, apperr.ErrMissingParameter) {
		t.Errorf("empty id: got %v", err)
	}
	if _, err := e.lists.BulkDelete(ctx, "", []string{"x"}); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("bulk empty user: got %v", err)
	}
}

func TestTransitionPublishesAndAudits(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	id := e.campaign(t, userA, "c").ID

	if _, err := e.campaigns.Archive(ctx, userA, id); err != nil {
		t.Fatal(err)
	}
	if e.publisher.count() != 1 {
		t.Fatalf("events = %d, want 1", e.publisher.count())
	}
	ev := e.publisher.events[0]
	if ev.Type != events.EventLifecycleChanged || ev.Payload["action"] != "archive" || ev.Payload["entity"] != "campaign" {
		t.Errorf("unexpected event %+v", ev)
	}

	logs, err := e.store.Audit().GetByEntity(ctx, models.EntityCampaign, id, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 || logs[0].Action != "campaign_archive" || logs[1].Action != "campaign_created" {
		t.Errorf("audit = %+v", logs)
	}
}

func TestSideEffectFailuresDoNotFailRequest(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	pub := &recordingPublisher{err: errors.New("redis down")}
	svc := NewCampaignService(store.Campaigns(), failingAudit{}, pub, zap.NewNop())

	c := &models.Campaign{Name: "c"}
	if err := svc.Create(ctx, userA, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Archive(ctx, userA, c.ID); err != nil {
		t.Fatalf("archive with failing side effects: %v", err)
	}
	if pub.count() != 1 {
		t.Errorf("publish attempts = %d, want 1", pub.count())
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	for _, tc := range entityCases() {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv(t)
			id := tc.create(t, e, userA)
			engine := tc.engine(e)

			if _, err := engine.Archive(ctx, userA, id); err != nil {
				t.Fatal(err)
			}
			if _, err := engine.Restore(ctx, userA, id); err != nil {
				t.Fatal(err)
			}

			logs, err := engine.History(ctx, userA, id, 0, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(logs) < 2 || logs[0].Action != tc.name+"_restore" || logs[1].Action != tc.name+"_archive" {
				t.Fatalf("history = %+v", logs)
			}
			for _, l := range logs {
				if l.EntityID != id || l.EntityType != tc.name {
					t.Errorf("foreign row in history: %+v", l)
				}
			}

			page, err := engine.History(ctx, userA, id, 1, 1)
			if err != nil {
				t.Fatal(err)
			}
			if len(page) != 1 || page[0].Action != tc.name+"_archive" {
				t.Errorf("page = %+v", page)
			}

			_, err = engine.History(ctx, userB, id, 0, 0)
			assertNotFound(t, err)

			if _, err := engine.Delete(ctx, userA, id); err != nil {
				t.Fatal(err)
			}
			_, err = engine.History(ctx, userA, id, 0, 0)
			assertNotFound(t, err)
		})
	}
}

func TestHistoryGuards(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	if _, err := e.campaigns.History(ctx, "", "x", 0, 0); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("empty user: got %v", err)
	}
	if _, err := e.campaigns.History(ctx, userA, "", 0, 0); !errors.Is(err, apperr.ErrMissingParameter) {
		t.Errorf("empty id: got %v", err)
	}

	store := memstore.New()
	svc := NewCampaignService(store.Campaigns(), failingAudit{}, nil, zap.NewNop())
	c := &models.Campaign{Name: "c"}
	if err := svc.Create(ctx, userA, c); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.History(ctx, userA, c.ID, 0, 0); err == nil {
		t.Error("failing audit store: expected error")
	}
}
