package services

import (
	"context"
	"testing"

	"github.com/reachdesk/backend/internal/apperr"
	"github.com/reachdesk/backend/internal/models"
)

func TestCreateTemplateWithoutParts(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	tpl := e.template(t, userA, basicTemplate("plain"))
	if tpl.HeaderID != nil || tpl.FooterID != nil {
		t.Fatalf("header/footer = %v/%v, want nil", tpl.HeaderID, tpl.FooterID)
	}
	if tpl.Status != models.TemplateStatusRunning || tpl.RecordStatus != models.RecordStatusCreated {
		t.Errorf("defaults = (%s, %s)", tpl.Status, tpl.RecordStatus)
	}

	got, err := e.templates.Get(ctx, userA, tpl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.HeaderID != nil || got.FooterID != nil || got.Header != nil || got.Footer != nil {
		t.Errorf("stored detail = %+v", got)
	}
}

func TestCreateTemplateWithParts(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	in := basicTemplate("rich")
	in.Header = true
	in.HeaderText = strPtr("Hi there")
	in.HeaderTypeID = "text"
	in.Footer = true
	in.FooterText = "Reply STOP to opt out"
	in.Buttons = []ButtonInput{
		{Text: "Shop", URL: strPtr("https://example.com"), TypeID: "2"},
		{Text: "Call", PhoneNumber: strPtr("+15550100000"), TypeID: "3"},
	}
	tpl := e.template(t, userA, in)

	got, err := e.templates.Get(ctx, userA, tpl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Header == nil || got.HeaderID == nil || got.Header.ID != *got.HeaderID || got.Header.TypeID != "text" {
		t.Errorf("header = %+v", got.Header)
	}
	if got.Footer == nil || got.Footer.Text != "Reply STOP to opt out" {
		t.Errorf("footer = %+v", got.Footer)
	}
	if len(got.Buttons) != 2 {
		t.Fatalf("buttons = %+v", got.Buttons)
	}
	for _, b := range got.Buttons {
		if b.TemplateID == nil || *b.TemplateID != tpl.ID {
			t.Errorf("button %s not attached", b.ID)
		}
	}
}

func TestTemplateValidation(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	tests := []struct {
		name   string
		modify func(in *TemplateInput)
		field  string
	}{
		{"missing name", func(in *TemplateInput) { in.Name = " " }, "name"},
		{"missing body", func(in *TemplateInput) { in.BodyMessage = "" }, "bodyMessage"},
		{"header without type", func(in *TemplateInput) { in.Header = true }, "headerTypeId"},
		{"footer without text", func(in *TemplateInput) { in.Footer = true }, "footerText"},
		{"unknown category", func(in *TemplateInput) { in.CategoryID = "nope" }, "categoryId"},
		{"unknown language", func(in *TemplateInput) { in.LanguageID = "xx" }, "languageId"},
		{"unknown header type", func(in *TemplateInput) {
			in.Header = true
			in.HeaderTypeID = "gif"
		}, "headerTypeId"},
		{"unknown button type", func(in *TemplateInput) { in.Buttons = []ButtonInput{{Text: "b", TypeID: "9"}} }, "buttons[0].typeId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := basicTemplate("t")
			tt.modify(&in)
			_, err := e.templates.Create(ctx, userA, in)
			if !apperr.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			verr := err.(*apperr.ValidationError)
			found := false
			for _, f := range verr.Fields {
				if f == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("fields = %v, want %s", verr.Fields, tt.field)
			}
		})
	}

	all, _ := e.templates.ListActive(ctx, userA)
	if len(all) != 0 {
		t.Errorf("invalid templates were stored: %d", len(all))
	}
}

func TestUpdateTemplateParts(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	tplStore := e.store.Templates()

	in := basicTemplate("t")
	in.Header = true
	in.HeaderTypeID = "text"
	in.HeaderText = strPtr("v1")
	in.Footer = true
	in.FooterText = "f1"
	in.Buttons = []ButtonInput{{Text: "a", TypeID: "1"}, {Text: "b", TypeID: "1"}}
	tpl := e.template(t, userA, in)
	headerID := *tpl.HeaderID

	// editing the header keeps the same row
	in.HeaderText = strPtr("v2")
	in.Buttons = nil
	updated, err := e.templates.Update(ctx, userA, tpl.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.HeaderID == nil || *updated.HeaderID != headerID {
		t.Errorf("header id changed: %v -> %v", headerID, updated.HeaderID)
	}
	got, _ := e.templates.Get(ctx, userA, tpl.ID)
	if got.Header == nil || got.Header.Text == nil || *got.Header.Text != "v2" {
		t.Errorf("header = %+v", got.Header)
	}
	if len(got.Buttons) != 2 {
		t.Errorf("nil buttons should keep existing, got %d", len(got.Buttons))
	}

	// detaching leaves orphans
	headers, footers := tplStore.HeaderCount(), tplStore.FooterCount()
	in.Header = false
	in.Footer = false
	in.Buttons = []ButtonInput{{Text: "only", TypeID: "1"}}
	updated, err = e.templates.Update(ctx, userA, tpl.ID, in)
	if err != nil {
		t.Fatalf("detach: %v", err)
	}
	if updated.HeaderID != nil || updated.FooterID != nil {
		t.Errorf("header/footer not cleared: %v/%v", updated.HeaderID, updated.FooterID)
	}
	if tplStore.HeaderCount() != headers || tplStore.FooterCount() != footers {
		t.Error("detached header/footer rows were removed")
	}
	got, _ = e.templates.Get(ctx, userA, tpl.ID)
	if len(got.Buttons) != 1 || got.Buttons[0].Text != "only" {
		t.Errorf("buttons = %+v", got.Buttons)
	}

	// re-attaching creates a fresh header
	in.Header = true
	updated, err = e.templates.Update(ctx, userA, tpl.ID, in)
	if err != nil {
		t.Fatalf("reattach: %v", err)
	}
	if updated.HeaderID == nil || *updated.HeaderID == headerID {
		t.Errorf("reattached header id = %v", updated.HeaderID)
	}
}

func TestUpdateTemplateTouchesOnlyItsOwnHeader(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	in := basicTemplate("first")
	in.Header = true
	in.HeaderTypeID = "text"
	in.HeaderText = strPtr("first header")
	first := e.template(t, userA, in)

	in.Name = "second"
	in.HeaderText = strPtr("second header")
	second := e.template(t, userA, in)

	in.HeaderText = strPtr("edited")
	if _, err := e.templates.Update(ctx, userA, second.ID, in); err != nil {
		t.Fatal(err)
	}

	got, _ := e.templates.Get(ctx, userA, first.ID)
	if got.Header == nil || *got.Header.Text != "first header" {
		t.Errorf("first header = %+v", got.Header)
	}
}

func TestUpdateTemplateOwnership(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	tpl := e.template(t, userA, basicTemplate("t"))

	_, err := e.templates.Update(ctx, userB, tpl.ID, basicTemplate("stolen"))
	assertNotFound(t, err)

	if _, err := e.templates.Delete(ctx, userA, tpl.ID); err != nil {
		t.Fatal(err)
	}
	_, err = e.templates.Update(ctx, userA, tpl.ID, basicTemplate("deleted"))
	assertNotFound(t, err)
}

func TestTemplateReadsSkipUnresolvedLookups(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	kept := e.template(t, userA, basicTemplate("kept"))
	in := basicTemplate("orphaned")
	in.LanguageID = "fr"
	orphaned := e.template(t, userA, in)

	if err := e.store.Lookups().Remove(models.LookupLanguage, "fr"); err != nil {
		t.Fatal(err)
	}

	all, err := e.templates.ListActive(ctx, userA)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].ID != kept.ID {
		t.Fatalf("templates = %+v", all)
	}
	if all[0].Category != "Marketing" || all[0].Language != "English" || all[0].Type != "Standard" {
		t.Errorf("lookup names = %s/%s/%s", all[0].Category, all[0].Type, all[0].Language)
	}

	_, err = e.templates.Get(ctx, userA, orphaned.ID)
	assertNotFound(t, err)
}
