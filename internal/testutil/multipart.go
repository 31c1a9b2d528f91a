package testutil

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/textproto"
	"testing"
)

// PNG is the smallest byte sequence content sniffing recognises as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type File struct {
	Field   string
	Name    string
	Content []byte
}

// Form is a multipart request body.
type Form struct {
	Body        *bytes.Buffer
	ContentType string
}

// NewForm encodes fields (repeated keys allowed) and files as multipart/form-data.
func NewForm(t testing.TB, fields [][2]string, files ...File) Form {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Name+`"`)
		h.Set("Content-Type", "application/octet-stream")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return Form{Body: buf, ContentType: w.FormDataContentType()}
}

// FileHeaders parses files back into the headers a handler would receive.
func FileHeaders(t testing.TB, files ...File) []*multipart.FileHeader {
	t.Helper()

	form := NewForm(t, nil, files...)
	_, params, err := mime.ParseMediaType(form.ContentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	mf, err := multipart.NewReader(form.Body, params["boundary"]).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { mf.RemoveAll() })

	var out []*multipart.FileHeader
	for _, f := range files {
		for _, fh := range mf.File[f.Field] {
			if fh.Filename == f.Name {
				out = append(out, fh)
			}
		}
	}
	return out
}
