// Package all lists every content plugin the server mounts.
package all

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/blog"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/gallery"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/interests"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/music"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/notices"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/profile"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/projects"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/settings"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/stats"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/theme"
)

func Plugins() []apps.Plugin {
	return []apps.Plugin{
		projects.New(),
		gallery.New(),
		music.New(),
		interests.New(),
		blog.New(),
		notices.New(),
		profile.New(),
		settings.New(),
		theme.New(),
		stats.New(),
	}
}
