package content_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/testutil"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type note struct {
	content.Ordered
	Title  string                      `json:"title"`
	Tags   datatypes.JSONSlice[string] `json:"tags"`
	Images datatypes.JSONSlice[string] `json:"images"`
}

type noteInput struct {
	Title *string  `json:"title" form:"title" validate:"required,min=1,max=20"`
	Tags  []string `json:"tags" form:"tags"`
	Order *int     `json:"order" form:"order"`
}

var noteKind = content.Kind{Singular: "note", Plural: "notes", Label: "Note", Folder: "test/notes"}

func noteDefinition() *content.Definition[note, noteInput] {
	apply := func(in *noteInput, n *note) []string {
		content.Set(&n.Title, content.Trim(in.Title))
		content.Set(&n.SortOrder, in.Order)
		if in.Tags != nil {
			n.Tags = in.Tags
		}
		return nil
	}
	return &content.Definition[note, noteInput]{
		Kind: noteKind,
		Build: func(in *noteInput, n *note) {
			n.Tags, n.Images = []string{}, []string{}
			apply(in, n)
		},
		Apply:  apply,
		Assets: func(n *note) []string { return n.Images },
		Attachments: []content.Attachment[note]{{
			Field:    "images",
			Multiple: true,
			Attach: func(n *note, uploaded []*assets.Asset) []string {
				for _, a := range uploaded {
					n.Images = append(n.Images, a.RemoteID)
				}
				return nil
			},
		}},
	}
}

type fixture struct {
	db    *gorm.DB
	store *testutil.FakeStore
	svc   *content.Service[note, noteInput]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t, &note{})
	store := testutil.NewFakeStore()
	return &fixture{
		db:    db,
		store: store,
		svc:   content.NewService(db, testutil.NewPipeline(t, store), noteDefinition()),
	}
}

func ptr[T any](v T) *T { return &v }

func pngs(t *testing.T, field string, names ...string) content.Files {
	t.Helper()
	files := make([]testutil.File, len(names))
	for i, name := range names {
		files[i] = testutil.File{Field: field, Name: name, Content: testutil.PNG}
	}
	return content.Files{field: testutil.FileHeaders(t, files...)}
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&note{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestListOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, seed := range []struct {
		title string
		order int
	}{{"a", 1}, {"b", 0}, {"c", 2}, {"d", 1}} {
		if _, err := f.svc.Create(ctx, &noteInput{Title: ptr(seed.title), Order: ptr(seed.order)}, nil); err != nil {
			t.Fatalf("create %s: %v", seed.title, err)
		}
	}

	items, err := f.svc.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	// Ascending order key; the newer of the two order-1 notes comes first.
	want := []string{"b", "d", "a", "c"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, n := range items {
		if n.Title != want[i] {
			t.Errorf("items[%d] = %s, want %s", i, n.Title, want[i])
		}
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name      string
		in        *noteInput
		files     func(t *testing.T) content.Files
		failPutOn int
		wantErr   error
		wantPuts  int
		wantRows  int64
	}{
		{
			name:     "with images",
			in:       &noteInput{Title: ptr("hello")},
			files:    func(t *testing.T) content.Files { return pngs(t, "images", "a.png", "b.png") },
			wantPuts: 2,
			wantRows: 1,
		},
		{
			name:     "without files",
			in:       &noteInput{Title: ptr("plain")},
			wantRows: 1,
		},
		{
			name: "unsupported extension is rejected before any upload",
			in:   &noteInput{Title: ptr("x")},
			files: func(t *testing.T) content.Files {
				return content.Files{"images": testutil.FileHeaders(t,
					testutil.File{Field: "images", Name: "ok.png", Content: testutil.PNG},
					testutil.File{Field: "images", Name: "notes.txt", Content: []byte("hello")},
				)}
			},
			wantErr: assets.ErrUnsupportedFileType,
		},
		{
			name: "image extension with non-image content is rejected",
			in:   &noteInput{Title: ptr("x")},
			files: func(t *testing.T) content.Files {
				return content.Files{"images": testutil.FileHeaders(t,
					testutil.File{Field: "images", Name: "fake.png", Content: []byte("plain text")},
				)}
			},
			wantErr: assets.ErrUnsupportedFileType,
		},
		{
			name:      "partial upload failure keeps nothing",
			in:        &noteInput{Title: ptr("x")},
			files:     func(t *testing.T) content.Files { return pngs(t, "images", "a.png", "b.png", "c.png") },
			failPutOn: 2,
			wantErr:   assets.ErrUpstream,
			wantPuts:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.FailPutOn = tt.failPutOn

			var files content.Files
			if tt.files != nil {
				files = tt.files(t)
			}
			n, err := f.svc.Create(context.Background(), tt.in, files)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Create: %v", err)
			} else if len(n.Images) != tt.wantPuts {
				t.Errorf("embedded %d images, want %d", len(n.Images), tt.wantPuts)
			}

			if got := f.store.PutCount(); got != tt.wantPuts {
				t.Errorf("puts = %d, want %d", got, tt.wantPuts)
			}
			if got := f.count(t); got != tt.wantRows {
				t.Errorf("rows = %d, want %d", got, tt.wantRows)
			}
			if tt.wantErr != nil && len(f.store.Live) != 0 {
				t.Errorf("orphaned remote assets: %v", f.store.Live)
			}
		})
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &noteInput{}, pngs(t, "images", "a.png"))

	var ve *content.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "title" {
		t.Errorf("fields = %+v, want title", ve.Fields)
	}
	if f.store.PutCount() != 0 {
		t.Error("invalid input reached the remote store")
	}
}

func TestCreateDiscardsUploadsWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	if err := f.db.Migrator().DropTable(&note{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := f.svc.Create(context.Background(), &noteInput{Title: ptr("x")}, pngs(t, "images", "a.png"))
	if err == nil {
		t.Fatal("expected insert failure")
	}
	if f.store.PutCount() != 1 || f.store.DeleteCount() != 1 {
		t.Errorf("puts=%d deletes=%d, want the upload released", f.store.PutCount(), f.store.DeleteCount())
	}
	if len(f.store.Live) != 0 {
		t.Errorf("orphaned remote assets: %v", f.store.Live)
	}
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &noteInput{Title: ptr("first"), Tags: []string{"go"}}, pngs(t, "images", "a.png"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := f.svc.Update(ctx, created.ID, &noteInput{Order: ptr(5)}, pngs(t, "images", "b.png"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "first" || len(updated.Tags) != 1 {
		t.Errorf("unsent fields changed: %+v", updated)
	}
	if updated.SortOrder != 5 {
		t.Errorf("order = %d, want 5", updated.SortOrder)
	}
	if len(updated.Images) != 2 {
		t.Errorf("images = %v, want the new upload appended", updated.Images)
	}

	_, err = f.svc.Update(ctx, created.ID, &noteInput{Title: ptr("")}, nil)
	var ve *content.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("empty title: err = %v, want ValidationError", err)
	}
}

func TestDelete(t *testing.T) {
	t.Run("releases every asset then removes the document", func(t *testing.T) {
		f := newFixture(t)
		n, err := f.svc.Create(context.Background(), &noteInput{Title: ptr("x")}, pngs(t, "images", "a.png", "b.png", "c.png"))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}

		if err := f.svc.Delete(context.Background(), n.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if got := f.store.DeleteCount(); got != 3 {
			t.Errorf("deletes = %d, want 3", got)
		}
		if f.count(t) != 0 {
			t.Error("document still present")
		}
	})

	t.Run("already missing remote asset does not block the delete", func(t *testing.T) {
		f := newFixture(t)
		n := &note{Title: "x", Images: []string{"gone"}}
		if err := f.db.Create(n).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}

		if err := f.svc.Delete(context.Background(), n.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if f.count(t) != 0 {
			t.Error("document still present")
		}
	})

	t.Run("failed release keeps the document", func(t *testing.T) {
		f := newFixture(t)
		f.store.Seed("kept")
		n := &note{Title: "x", Images: []string{"kept"}}
		if err := f.db.Create(n).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
		f.store.FailDelete = errors.New("store down")

		err := f.svc.Delete(context.Background(), n.ID)
		if !errors.Is(err, assets.ErrUpstream) {
			t.Fatalf("err = %v, want ErrUpstream", err)
		}
		if f.count(t) != 1 {
			t.Error("document removed although its asset was not released")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Get(context.Background(), uuid.New())
		if !errors.Is(err, content.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		if err.Error() != "Note not found" {
			t.Errorf("message = %q", err.Error())
		}
	})
}
