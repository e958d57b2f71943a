package serp

import (
	"errors"
	"testing"
)

func TestQueryBuilder_Build(t *testing.T) {
	tests := []struct {
		name    string
		builder QueryBuilder
		wantErr []error
	}{
		{
			name:    "minimal query",
			builder: NewQuery("rust programming"),
		},
		{
			name: "fully configured query",
			builder: NewQuery("rust programming").
				Language("en").
				Country("us").
				Domain("google.com").
				Limit(10).
				Offset(20).
				Device(DeviceDesktop).
				SafeSearch(SafeSearchActive),
		},
		{
			name:    "limit lower bound",
			builder: NewQuery("test").Limit(1),
		},
		{
			name:    "limit upper bound",
			builder: NewQuery("test").Limit(100),
		},
		{
			name:    "empty term",
			builder: NewQuery(""),
			wantErr: []error{ErrEmptyTerm},
		},
		{
			name:    "whitespace term",
			builder: NewQuery("   "),
			wantErr: []error{ErrEmptyTerm},
		},
		{
			name:    "limit zero",
			builder: NewQuery("test").Limit(0),
			wantErr: []error{ErrLimitOutOfRange},
		},
		{
			name:    "limit too large",
			builder: NewQuery("test").Limit(101),
			wantErr: []error{ErrLimitOutOfRange},
		},
		{
			name:    "negative offset",
			builder: NewQuery("test").Offset(-1),
			wantErr: []error{ErrNegativeOffset},
		},
		{
			name:    "invalid device",
			builder: NewQuery("test").Device("toaster"),
			wantErr: []error{ErrInvalidDevice},
		},
		{
			name:    "invalid safe search",
			builder: NewQuery("test").SafeSearch("strict"),
			wantErr: []error{ErrInvalidSafeSearch},
		},
		{
			name:    "conflicting search types",
			builder: NewQuery("test").Images().News(),
			wantErr: []error{ErrConflictingSearchTypes},
		},
		{
			name:    "repeated search type is harmless",
			builder: NewQuery("test").Images().Images(),
		},
		{
			name:    "all violations reported at once",
			builder: NewQuery("").Limit(500).Offset(-5),
			wantErr: []error{ErrEmptyTerm, ErrLimitOutOfRange, ErrNegativeOffset},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()

			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Build() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Build() expected error, got nil")
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Build() error = %T, want *ValidationError", err)
			}
			if got, want := len(validationErr.Violations), len(tt.wantErr); got != want {
				t.Errorf("Build() reported %d violations, want %d: %v", got, want, err)
			}
			for _, sentinel := range tt.wantErr {
				if !errors.Is(err, sentinel) {
					t.Errorf("Build() error should match %v, got %v", sentinel, err)
				}
			}
		})
	}
}

func TestQueryBuilder_Branching(t *testing.T) {
	base := NewQuery("golang").Language("en")

	images := base.Images().Limit(50)
	news := base.News().Country("uk")

	imgQuery, err := images.Build()
	if err != nil {
		t.Fatalf("images Build() error: %v", err)
	}
	newsQuery, err := news.Build()
	if err != nil {
		t.Fatalf("news Build() error: %v", err)
	}

	if imgQuery.SearchType() != SearchTypeImages {
		t.Errorf("images branch search type = %q, want %q", imgQuery.SearchType(), SearchTypeImages)
	}
	if newsQuery.SearchType() != SearchTypeNews {
		t.Errorf("news branch search type = %q, want %q", newsQuery.SearchType(), SearchTypeNews)
	}
	if newsQuery.Limit() != 0 {
		t.Errorf("news branch inherited limit %d from images branch", newsQuery.Limit())
	}
	if imgQuery.Country() != "" {
		t.Errorf("images branch inherited country %q from news branch", imgQuery.Country())
	}
}

func TestQueryBuilder_Local(t *testing.T) {
	query, err := NewQuery("coffee shops").Local("Austin, Texas").Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if query.SearchType() != SearchTypeLocal {
		t.Errorf("search type = %q, want %q", query.SearchType(), SearchTypeLocal)
	}
	if query.Location() != "Austin, Texas" {
		t.Errorf("location = %q, want %q", query.Location(), "Austin, Texas")
	}
}

func TestQuery_Values(t *testing.T) {
	query, err := NewQuery("rust tutorials").
		Language("en").
		Country("us").
		Domain("google.co.uk").
		Limit(20).
		Offset(40).
		Device(DeviceMobile).
		SafeSearch(SafeSearchOff).
		Videos().
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	values := query.Values()
	want := map[string]string{
		"q":             "rust tutorials",
		"hl":            "en",
		"gl":            "us",
		"google_domain": "google.co.uk",
		"num":           "20",
		"start":         "40",
		"device":        "mobile",
		"safe":          "off",
		"tbm":           "vid",
	}
	for key, val := range want {
		if got := values.Get(key); got != val {
			t.Errorf("Values()[%q] = %q, want %q", key, got, val)
		}
	}
	if values.Has("location") {
		t.Errorf("Values() should not contain location, got %q", values.Get("location"))
	}
	if values.Has("api_key") {
		t.Error("Values() must not carry the credential")
	}
}

func TestQuery_ValuesOmitsDefaults(t *testing.T) {
	query, err := NewQuery("test").Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	values := query.Values()
	if len(values) != 1 || values.Get("q") != "test" {
		t.Errorf("Values() = %v, want only q=test", values)
	}
}

func TestSearchType_IsValid(t *testing.T) {
	tests := []struct {
		searchType SearchType
		want       bool
	}{
		{SearchTypeWeb, true},
		{SearchTypeImages, true},
		{SearchTypeVideos, true},
		{SearchTypeNews, true},
		{SearchTypeShopping, true},
		{SearchTypeLocal, true},
		{"maps", false},
	}

	for _, tt := range tests {
		if got := tt.searchType.IsValid(); got != tt.want {
			t.Errorf("SearchType(%q).IsValid() = %v, want %v", tt.searchType, got, tt.want)
		}
	}
}
