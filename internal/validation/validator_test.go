package validation

import (
	"reflect"
	"testing"
)

type nestedColors struct {
	Primary *string `json:"primary" validate:"omitempty,hexcolor"`
}

type sampleInput struct {
	Title  *string       `json:"title" validate:"required,min=2,max=20"`
	Email  *string       `json:"email" validate:"omitempty,email"`
	Tags   []string      `json:"tags" validate:"omitempty,max=3"`
	Year   *int          `json:"year" validate:"omitempty,gte=1900,yearmax=1"`
	Date   *string       `json:"date" validate:"omitempty,date"`
	Colors *nestedColors `json:"colors"`
}

func ptr[T any](v T) *T { return &v }

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  sampleInput
		fields []string
	}{
		{"valid", sampleInput{Title: ptr("Portfolio")}, nil},
		{"missing title", sampleInput{}, []string{"title"}},
		{"short title", sampleInput{Title: ptr("a")}, []string{"title"}},
		{"bad email", sampleInput{Title: ptr("ok ok"), Email: ptr("nope")}, []string{"email"}},
		{"too many tags", sampleInput{Title: ptr("ok ok"), Tags: []string{"a", "b", "c", "d"}}, []string{"tags"}},
		{"future year", sampleInput{Title: ptr("ok ok"), Year: ptr(3000)}, []string{"year"}},
		{"bad date", sampleInput{Title: ptr("ok ok"), Date: ptr("31/01/2024")}, []string{"date"}},
		{"nested color", sampleInput{Title: ptr("ok ok"), Colors: &nestedColors{Primary: ptr("purple")}}, []string{"colors.primary"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Struct(&tt.input)
			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
				if e.Message == "" {
					t.Errorf("empty message for %s", e.Field)
				}
			}
			if !reflect.DeepEqual(got, tt.fields) {
				t.Errorf("Struct() fields = %v, want %v", got, tt.fields)
			}
		})
	}
}

func TestPartialSkipsAbsentFields(t *testing.T) {
	// Title is required on create but absent from this patch.
	patch := sampleInput{Email: ptr("admin@example.com")}
	if errs := Partial(&patch); len(errs) != 0 {
		t.Fatalf("Partial() = %v, want no errors", errs)
	}

	patch = sampleInput{Title: ptr("x")}
	errs := Partial(&patch)
	if len(errs) != 1 || errs[0].Field != "title" {
		t.Fatalf("Partial() = %v, want one title error", errs)
	}

	patch = sampleInput{Colors: &nestedColors{Primary: ptr("#zzzzzz")}}
	errs = Partial(&patch)
	if len(errs) != 1 || errs[0].Field != "colors.primary" {
		t.Fatalf("Partial() nested = %v, want colors.primary", errs)
	}
}

func TestPresentFields(t *testing.T) {
	in := sampleInput{Title: ptr("t"), Colors: &nestedColors{Primary: ptr("#fff")}}
	got := PresentFields(&in)
	want := []string{"Title", "Colors", "Colors.Primary"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PresentFields() = %v, want %v", got, want)
	}
	if PresentFields((*sampleInput)(nil)) != nil {
		t.Error("PresentFields(nil) should be nil")
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-01-31", "2024-01-31T10:00:00Z", "2024-01-31T10:00:00+02:00"} {
		if _, err := ParseDate(s); err != nil {
			t.Errorf("ParseDate(%q) error: %v", s, err)
		}
	}
	if _, err := ParseDate("January 2024"); err == nil {
		t.Error("ParseDate should reject free text")
	}
}
