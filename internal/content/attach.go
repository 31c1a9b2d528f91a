package content

import (
	"context"
	"mime/multipart"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
)

// Files are multipart file headers keyed by form field.
type Files map[string][]*multipart.FileHeader

// checkAttachments runs every local file check before any upload starts.
func checkAttachments[M any](p *assets.Pipeline, atts []Attachment[M], files Files, creating bool) error {
	var all []*multipart.FileHeader
	for _, att := range atts {
		fhs := files[att.Field]
		if creating && att.Required && len(fhs) == 0 {
			return Invalid(att.Field, "Please upload an image")
		}
		if !att.Multiple && len(fhs) > 1 {
			return Invalid(att.Field, "Only one file is allowed")
		}
		all = append(all, fhs...)
	}
	if len(all) == 0 {
		return nil
	}
	return p.CheckAll(all)
}

// uploads holds one batch per attachment, in attachment order.
type uploads struct {
	batches [][]*assets.Asset
	all     []*assets.Asset
}

func uploadAttachments[M any](ctx context.Context, p *assets.Pipeline, atts []Attachment[M], folder string, files Files) (*uploads, error) {
	u := &uploads{batches: make([][]*assets.Asset, len(atts))}
	for i, att := range atts {
		fhs := files[att.Field]
		if len(fhs) == 0 {
			continue
		}
		batch, err := p.UploadMany(ctx, fhs, folder)
		if err != nil {
			p.Discard(context.WithoutCancel(ctx), u.all...)
			return nil, err
		}
		u.batches[i] = batch
		u.all = append(u.all, batch...)
	}
	return u, nil
}

// embedUploads hands each batch to its attachment and collects replaced ids.
func embedUploads[M any](m *M, atts []Attachment[M], u *uploads) []string {
	var replaced []string
	for i, att := range atts {
		if len(u.batches[i]) > 0 {
			replaced = append(replaced, att.Attach(m, u.batches[i])...)
		}
	}
	return replaced
}
