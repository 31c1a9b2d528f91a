package projects

import (
	"context"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/testutil"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*content.Service[Project, ProjectInput], *gorm.DB, *testutil.FakeStore) {
	t.Helper()
	db := testutil.NewDB(t, &Project{})
	store := testutil.NewFakeStore()
	return content.NewService(db, testutil.NewPipeline(t, store), Definition()), db, store
}

func ptr[T any](v T) *T { return &v }

func images(t *testing.T, names ...string) content.Files {
	t.Helper()
	files := make([]testutil.File, len(names))
	for i, name := range names {
		files[i] = testutil.File{Field: "images", Name: name, Content: testutil.PNG}
	}
	return content.Files{"images": testutil.FileHeaders(t, files...)}
}

func input(title string) *ProjectInput {
	return &ProjectInput{
		Title:        ptr(title),
		Description:  ptr("A project"),
		Technologies: []string{"Go"},
	}
}

func TestCreateDefaults(t *testing.T) {
	svc, _, _ := newService(t)

	p, err := svc.Create(context.Background(), input("Plain"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != StatusCompleted || p.Featured || p.SortOrder != 0 {
		t.Errorf("defaults = status %q featured %v order %d", p.Status, p.Featured, p.SortOrder)
	}
	if p.Images == nil || len(p.Images) != 0 {
		t.Errorf("images = %#v, want empty", p.Images)
	}
}

func TestCreateParsesDates(t *testing.T) {
	svc, _, _ := newService(t)
	in := input("Dated")
	in.StartDate = ptr("2023-01-15")

	p, err := svc.Create(context.Background(), in, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.StartDate == nil || p.StartDate.Format("2006-01-02") != "2023-01-15" || p.EndDate != nil {
		t.Errorf("dates = %v, %v", p.StartDate, p.EndDate)
	}
}

func TestCreateRequiresTechnologies(t *testing.T) {
	svc, _, _ := newService(t)
	in := input("Bare")
	in.Technologies = nil

	_, err := svc.Create(context.Background(), in, nil)
	ve, ok := err.(*content.ValidationError)
	if !ok || ve.Fields[0].Field != "technologies" {
		t.Fatalf("err = %v, want technologies validation error", err)
	}
}

func TestUpdateRemovesImages(t *testing.T) {
	svc, _, store := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, input("Shots"), images(t, "a.png", "b.png", "c.png"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ids := append([]string(nil), p.ImagesCloudinaryIDs...)
	urls := append([]string(nil), p.Images...)
	if len(ids) != 3 {
		t.Fatalf("ids = %v, want 3", ids)
	}

	got, err := svc.Update(ctx, p.ID, &ProjectInput{RemoveImageIDs: []string{ids[1], "not-attached"}}, images(t, "d.png"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(got.ImagesCloudinaryIDs) != 3 || got.ImagesCloudinaryIDs[0] != ids[0] || got.ImagesCloudinaryIDs[1] != ids[2] {
		t.Errorf("ids = %v, want %s, %s then the new upload", got.ImagesCloudinaryIDs, ids[0], ids[2])
	}
	if got.Images[0] != urls[0] || got.Images[1] != urls[2] {
		t.Errorf("urls = %v, want urls kept in step with ids", got.Images)
	}
	if deleted := store.Deleted(); !reflect.DeepEqual(deleted, []string{ids[1]}) {
		t.Errorf("deletes = %v, want only %s", deleted, ids[1])
	}
}

func TestDeleteReleasesImages(t *testing.T) {
	svc, db, store := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, input("Gone"), images(t, "a.png", "b.png"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.DeleteCount() != 2 || len(store.Live) != 0 {
		t.Errorf("deletes = %v, live = %d", store.Deleted(), len(store.Live))
	}
	var n int64
	db.Model(&Project{}).Count(&n)
	if n != 0 {
		t.Errorf("projects = %d, want 0", n)
	}
}

func TestListFilters(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	seed := []struct {
		title, category, status string
		featured bool
	}{
		{"alpha", "web", StatusCompleted, true},
		{"beta", "web", StatusPlanned, false},
		{"gamma", "cli", StatusInProgress, true},
	}
	for _, s := range seed {
		in := input(s.title)
		in.Category, in.Status, in.Featured = ptr(s.category), ptr(s.status), ptr(s.featured)
		if _, err := svc.Create(ctx, in, nil); err != nil {
			t.Fatalf("Create %s: %v", s.title, err)
		}
	}

	app := fiber.New()
	content.NewHandler(svc).Register(app.Group("/projects"), func(c *fiber.Ctx) error { return c.Next() })

	tests := []struct {
		query  string
		status int
		count  int
	}{
		{"", fiber.StatusOK, 3},
		{"?featured=true", fiber.StatusOK, 2},
		{"?featured=false", fiber.StatusOK, 1},
		{"?category=web", fiber.StatusOK, 2},
		{"?status=planned", fiber.StatusOK, 1},
		{"?category=web&featured=true", fiber.StatusOK, 1},
		{"?status=archived", fiber.StatusBadRequest, 0},
		{"?featured=maybe", fiber.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/projects"+tt.query, nil), -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			var body struct {
				Count int `json:"count"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.StatusCode != tt.status || body.Count != tt.count {
				t.Errorf("status %d count %d, want %d and %d", resp.StatusCode, body.Count, tt.status, tt.count)
			}
		})
	}
}
