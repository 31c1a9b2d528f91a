package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/blog"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/gallery"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/interests"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/music"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/notices"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/projects"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// galleryWindow is how far back the monthly gallery series reaches.
const galleryWindow = 6

type Overview struct {
	ProjectsCount    int64 `json:"projectsCount"`
	GalleryCount     int64 `json:"galleryCount"`
	MusicCount       int64 `json:"musicCount"`
	InterestsCount   int64 `json:"interestsCount"`
	BlogCount        int64 `json:"blogCount"`
	NoticesCount     int64 `json:"noticesCount"`
	FeaturedProjects int64 `json:"featuredProjects"`
}

type TechCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type Analytics struct {
	ProjectsByTech []TechCount  `json:"projectsByTech"`
	GalleryByMonth []MonthCount `json:"galleryByMonth"`
}

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// WithClock replaces the clock used for the gallery window.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{}
	db := s.db.WithContext(ctx)

	counts := []struct {
		dst   *int64
		model any
		where []any
	}{
		{&out.ProjectsCount, &projects.Project{}, nil},
		{&out.GalleryCount, &gallery.Image{}, nil},
		{&out.MusicCount, &music.Track{}, nil},
		{&out.InterestsCount, &interests.Interest{}, nil},
		{&out.BlogCount, &blog.Post{}, nil},
		{&out.NoticesCount, &notices.Notice{}, nil},
		{&out.FeaturedProjects, &projects.Project{}, []any{"featured = ?", true}},
	}

	g, _ := errgroup.WithContext(ctx)
	for _, c := range counts {
		g.Go(func() error {
			q := db.Model(c.model)
			if c.where != nil {
				q = q.Where(c.where[0], c.where[1:]...)
			}
			return q.Count(c.dst).Error
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count content: %w", err)
	}
	return out, nil
}

func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	db := s.db.WithContext(ctx)

	var techLists []datatypes.JSONSlice[string]
	if err := db.Model(&projects.Project{}).Pluck("technologies", &techLists).Error; err != nil {
		return nil, fmt.Errorf("failed to load project technologies: %w", err)
	}

	since := s.now().UTC().AddDate(0, -galleryWindow, 0)
	var uploaded []time.Time
	err := db.Model(&gallery.Image{}).Where("created_at >= ?", since).Pluck("created_at", &uploaded).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery history: %w", err)
	}

	return &Analytics{
		ProjectsByTech: countTechnologies(techLists),
		GalleryByMonth: countMonths(uploaded),
	}, nil
}

// countTechnologies orders by count, then name.
func countTechnologies(lists []datatypes.JSONSlice[string]) []TechCount {
	counts := map[string]int{}
	for _, list := range lists {
		for _, tech := range list {
			counts[tech]++
		}
	}

	out := make([]TechCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, TechCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func countMonths(times []time.Time) []MonthCount {
	counts := map[string]int{}
	for _, t := range times {
		counts[t.UTC().Format("2006-01")]++
	}

	out := make([]MonthCount, 0, len(counts))
	for month, n := range counts {
		out = append(out, MonthCount{Month: month, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
