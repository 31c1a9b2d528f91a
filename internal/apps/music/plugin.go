package music

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/gofiber/fiber/v2"
)

var Kind = content.Kind{
	Singular: "music",
	Plural:   "music",
	Label:    "Music",
	Folder:   "portfolio/music",
}

type Track struct {
	content.Ordered
	Title             string `gorm:"size:200" json:"title"`
	Artist            string `gorm:"size:200" json:"artist"`
	Album             string `gorm:"size:200" json:"album"`
	CoverURL          string `gorm:"column:cover_url" json:"coverUrl"`
	CoverCloudinaryID string `gorm:"column:cover_cloudinary_id" json:"coverCloudinaryId"`
	AudioURL          string `gorm:"column:audio_url" json:"audioUrl"`
	SpotifyURL        string `gorm:"column:spotify_url" json:"spotifyUrl"`
	Duration          *int   `json:"duration"`
	Genre             string `gorm:"size:100" json:"genre"`
	ReleaseYear       *int   `json:"releaseYear"`
}

func (Track) TableName() string { return "music_tracks" }

type TrackInput struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,max=200"`
	Artist      *string `json:"artist" form:"artist" validate:"omitempty,max=200"`
	Album       *string `json:"album" form:"album" validate:"omitempty,max=200"`
	CoverURL    *string `json:"coverUrl" form:"coverUrl" validate:"omitempty,url"`
	AudioURL    *string `json:"audioUrl" form:"audioUrl" validate:"omitempty,url"`
	SpotifyURL  *string `json:"spotifyUrl" form:"spotifyUrl" validate:"omitempty,url"`
	Duration    *int    `json:"duration" form:"duration" validate:"omitempty,gte=0"`
	Genre       *string `json:"genre" form:"genre" validate:"omitempty,max=100"`
	ReleaseYear *int    `json:"releaseYear" form:"releaseYear" validate:"omitempty,gte=1900,yearmax=1"`
	Order       *int    `json:"order" form:"order"`
}

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "music" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Track{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := content.NewService(deps.DB, deps.Assets, Definition())
	content.NewHandler(svc).Register(router, deps.Admin)
}

func Definition() *content.Definition[Track, TrackInput] {
	return &content.Definition[Track, TrackInput]{
		Kind:  Kind,
		Build: func(in *TrackInput, t *Track) { apply(in, t) },
		Apply: apply,
		Assets: func(t *Track) []string {
			return []string{t.CoverCloudinaryID}
		},
		Attachments: []content.Attachment[Track]{{
			Field: "cover",
			Attach: func(t *Track, uploaded []*assets.Asset) []string {
				previous := t.CoverCloudinaryID
				t.CoverURL, t.CoverCloudinaryID = uploaded[0].URL, uploaded[0].RemoteID
				if previous == "" {
					return nil
				}
				return []string{previous}
			},
		}},
	}
}

func apply(in *TrackInput, t *Track) []string {
	content.Set(&t.Title, content.Trim(in.Title))
	content.Set(&t.Artist, content.Trim(in.Artist))
	content.Set(&t.Album, content.Trim(in.Album))
	content.Set(&t.AudioURL, in.AudioURL)
	content.Set(&t.SpotifyURL, content.Trim(in.SpotifyURL))
	content.Set(&t.Genre, content.Trim(in.Genre))
	content.Set(&t.SortOrder, in.Order)
	if in.Duration != nil {
		t.Duration = in.Duration
	}
	if in.ReleaseYear != nil {
		t.ReleaseYear = in.ReleaseYear
	}

	// A hand-entered cover url detaches an uploaded cover.
	if in.CoverURL != nil && *in.CoverURL != t.CoverURL {
		t.CoverURL = *in.CoverURL
		if previous := t.CoverCloudinaryID; previous != "" {
			t.CoverCloudinaryID = ""
			return []string{previous}
		}
	}
	return nil
}
