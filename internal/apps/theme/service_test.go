package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/testutil"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *testutil.FakeStore) {
	t.Helper()
	db := testutil.NewDB(t, &Theme{})
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := testutil.NewFakeStore()
	return NewService(db, testutil.NewPipeline(t, store)), db, store
}

func activeIDs(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var themes []Theme
	if err := db.Where("is_active = ?", true).Find(&themes).Error; err != nil {
		t.Fatalf("find active: %v", err)
	}
	ids := make([]string, len(themes))
	for i, th := range themes {
		ids[i] = th.ID.String()
	}
	return ids
}

func str(s string) *string { return &s }
func yes() *bool { b := true; return &b }
func no() *bool { b := false; return &b }

func TestGetActiveCreatesDefault(t *testing.T) {
	svc, db, _ := newTestService(t)

	got, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if got.Name != DefaultName || !got.IsActive || !got.IsDefault {
		t.Errorf("theme = %+v, want an active default theme", got)
	}
	if got.Colors.Data().Primary != "#8b5cf6" {
		t.Errorf("primary = %q, want default palette", got.Colors.Data().Primary)
	}

	again, err := svc.GetActive(context.Background())
	if err != nil || again.ID != got.ID {
		t.Errorf("second GetActive = %v, %v; want the same theme", again, err)
	}
	var n int64
	db.Model(&Theme{}).Count(&n)
	if n != 1 {
		t.Errorf("themes = %d, want 1", n)
	}
}

func TestGetActiveFallsBackToDefault(t *testing.T) {
	svc, db, _ := newTestService(t)
	def := newTheme(DefaultName)
	def.IsDefault = true
	if err := db.Create(def).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if got.ID != def.ID {
		t.Errorf("got %s, want the inactive default theme %s", got.ID, def.ID)
	}
}

func TestSingleActiveTheme(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	var last *Theme
	for _, name := range []string{"Dusk", "Dawn", "Noon"} {
		th, err := svc.Create(ctx, &ThemeInput{Name: str(name), IsActive: yes()}, nil)
		if err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
		ids := activeIDs(t, db)
		if len(ids) != 1 || ids[0] != th.ID.String() {
			t.Fatalf("after creating %s active = %v, want only %s", name, ids, th.ID)
		}
		last = th
	}

	inactive, err := svc.Create(ctx, &ThemeInput{Name: str("Draft")}, nil)
	if err != nil {
		t.Fatalf("Create Draft: %v", err)
	}
	if ids := activeIDs(t, db); len(ids) != 1 || ids[0] != last.ID.String() {
		t.Errorf("inactive create changed the active theme: %v", ids)
	}

	if _, err := svc.Activate(ctx, inactive.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if ids := activeIDs(t, db); len(ids) != 1 || ids[0] != inactive.ID.String() {
		t.Errorf("after Activate active = %v, want %s", ids, inactive.ID)
	}

	if _, err := svc.Update(ctx, last.ID, &ThemeInput{IsActive: yes()}, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if ids := activeIDs(t, db); len(ids) != 1 || ids[0] != last.ID.String() {
		t.Errorf("after Update active = %v, want %s", ids, last.ID)
	}
}

func TestActiveThemeCannotBeCleared(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	th, err := svc.Create(ctx, &ThemeInput{Name: str("Only"), IsActive: yes()}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(ctx, th.ID, &ThemeInput{IsActive: no()}, nil)
	var ve *content.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if ids := activeIDs(t, db); len(ids) != 1 {
		t.Errorf("active themes = %v, want exactly one", ids)
	}
}

func TestUpdateActive(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.UpdateActive(ctx, &ThemeInput{Colors: &ColorsInput{Primary: str("#000000")}}, nil)
	if err != nil {
		t.Fatalf("UpdateActive: %v", err)
	}
	if created.Name != CustomName || !created.IsActive {
		t.Errorf("theme = %+v, want an active custom theme", created)
	}
	colors := created.Colors.Data()
	if colors.Primary != "#000000" || colors.Secondary != DefaultColors.Secondary {
		t.Errorf("colors = %+v, want primary patched and the rest defaulted", colors)
	}

	patched, err := svc.UpdateActive(ctx, &ThemeInput{ScrollAnimation: str("instant")}, nil)
	if err != nil {
		t.Fatalf("second UpdateActive: %v", err)
	}
	if patched.ID != created.ID || patched.Colors.Data().Primary != "#000000" || patched.ScrollAnimation != "instant" {
		t.Errorf("patched = %+v, want the same theme with both changes", patched)
	}
}

func TestFaviconReplacement(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()
	first, err := svc.Create(ctx, &ThemeInput{Name: str("Icon")}, testutil.FileHeaders(t,
		testutil.File{Field: "favicon", Name: "a.png", Content: testutil.PNG}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.FaviconCloudinaryID == "" || first.FaviconURL == "" {
		t.Fatalf("favicon not stored: %+v", first)
	}

	second, err := svc.Update(ctx, first.ID, &ThemeInput{}, testutil.FileHeaders(t,
		testutil.File{Field: "favicon", Name: "b.png", Content: testutil.PNG}))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if second.FaviconCloudinaryID == first.FaviconCloudinaryID {
		t.Error("favicon not replaced")
	}
	if deleted := store.Deleted(); len(deleted) != 1 || deleted[0] != first.FaviconCloudinaryID {
		t.Errorf("deletes = %v, want the old favicon", deleted)
	}
}

func TestReset(t *testing.T) {
	svc, db, store := newTestService(t)
	ctx := context.Background()

	def, err := svc.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	custom, err := svc.Create(ctx, &ThemeInput{Name: str("Loud"), IsActive: yes()}, testutil.FileHeaders(t,
		testutil.File{Field: "favicon", Name: "f.png", Content: testutil.PNG}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, &ThemeInput{Name: str("Quiet")}, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got.ID != def.ID || !got.IsActive {
		t.Errorf("reset returned %+v, want the default theme active", got)
	}

	var remaining []Theme
	db.Find(&remaining)
	if len(remaining) != 1 || remaining[0].ID != def.ID {
		t.Errorf("remaining = %d themes, want only the default", len(remaining))
	}
	if deleted := store.Deleted(); len(deleted) != 1 || deleted[0] != custom.FaviconCloudinaryID {
		t.Errorf("deletes = %v, want the custom theme favicon", deleted)
	}
}

func TestResetCreatesDefault(t *testing.T) {
	svc, db, _ := newTestService(t)
	if _, err := svc.Create(context.Background(), &ThemeInput{Name: str("Loud"), IsActive: yes()}, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Reset(context.Background())
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got.Name != DefaultName || !got.IsDefault || !got.IsActive {
		t.Errorf("reset = %+v, want a new active default", got)
	}
	if ids := activeIDs(t, db); len(ids) != 1 {
		t.Errorf("active = %v, want one", ids)
	}
}

func TestSecondActiveRowRejectedByIndex(t *testing.T) {
	_, db, _ := newTestService(t)

	a := newTheme("a")
	a.IsActive = true
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("first: %v", err)
	}
	b := newTheme("b")
	b.IsActive = true
	if err := db.Create(b).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("second active insert err = %v, want ErrDuplicatedKey", err)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, _, store := newTestService(t)

	_, err := svc.Create(context.Background(), &ThemeInput{Name: str("  ")}, testutil.FileHeaders(t,
		testutil.File{Field: "favicon", Name: "f.png", Content: testutil.PNG}))
	var ve *content.ValidationError
	if !errors.As(err, &ve) || ve.Fields[0].Field != "name" {
		t.Fatalf("err = %v, want name validation error", err)
	}
	if store.PutCount() != 0 {
		t.Error("favicon uploaded for an invalid theme")
	}
}
