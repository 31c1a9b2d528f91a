package content

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

// FormDecoder is implemented by inputs that carry fields the form binder
// cannot express, such as JSON-encoded lists inside multipart bodies.
type FormDecoder interface {
	DecodeForm(values map[string][]string) error
}

// Decode binds a JSON or multipart body onto in and returns any uploaded
// files. An empty body leaves in untouched.
func Decode(c *fiber.Ctx, in any) (Files, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid multipart body")
		}
		foldArrayKeys(form.Value)
		foldArrayKeys(form.File)

		// BodyParser reads the same cached form, now with folded keys.
		if err := c.BodyParser(in); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if fd, ok := in.(FormDecoder); ok {
			if err := fd.DecodeForm(form.Value); err != nil {
				return nil, err
			}
		}
		return Files(form.File), nil
	}

	if len(c.Body()) == 0 {
		return nil, nil
	}
	if err := c.BodyParser(in); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil, nil
}

// foldArrayKeys merges "technologies[]" into "technologies".
func foldArrayKeys[V any](m map[string][]V) {
	for k, v := range m {
		base, ok := strings.CutSuffix(k, "[]")
		if !ok {
			continue
		}
		m[base] = append(m[base], v...)
		delete(m, k)
	}
}

// DecodeJSONFields unmarshals multipart values that carry JSON documents into
// the matching targets. Absent keys leave their target untouched.
func DecodeJSONFields(values map[string][]string, targets map[string]any) error {
	for key, target := range targets {
		raw := values[key]
		if len(raw) == 0 || strings.TrimSpace(raw[0]) == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw[0]), target); err != nil {
			return Invalid(key, key+" must be valid JSON")
		}
	}
	return nil
}
