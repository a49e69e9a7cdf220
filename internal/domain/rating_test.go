package domain

import "testing"

func intPtr(v int) *int { return &v }

func TestBandForBoundary(t *testing.T) {
	tests := []struct {
		score int
		want  Band
	}{
		{100, BandFavorable},
		{72, BandFavorable},
		{60, BandFavorable},
		{59, BandUnfavorable},
		{1, BandUnfavorable},
	}
	for _, tt := range tests {
		if got := BandFor(tt.score, DefaultFavorableThreshold); got != tt.want {
			t.Errorf("BandFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestUsableScore(t *testing.T) {
	tests := []struct {
		name   string
		review *Review
		score  int
		ok     bool
	}{
		{"nil review", nil, 0, false},
		{"absent score", &Review{}, 0, false},
		{"zero score", &Review{CriticsScore: intPtr(0)}, 0, false},
		{"negative score", &Review{CriticsScore: intPtr(-1)}, 0, false},
		{"positive score", &Review{CriticsScore: intPtr(72)}, 72, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := tt.review.UsableScore()
			if score != tt.score || ok != tt.ok {
				t.Fatalf("UsableScore() = (%d, %v), want (%d, %v)", score, ok, tt.score, tt.ok)
			}
		})
	}
}

func TestFormatRating(t *testing.T) {
	available := Entry{State: RatingAvailable, Review: &Review{CriticsScore: intPtr(59)}}
	if got, want := FormatRating(available, 60), "Critics score: 59% (unfavorable)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := FormatRating(Entry{State: RatingUnavailable}, 60); got != NoRatingText {
		t.Fatalf("got %q, want %q", got, NoRatingText)
	}
	if got := FormatRating(Entry{State: RatingPending}, 60); got != "" {
		t.Fatalf("pending entry rendered %q", got)
	}
}

func TestTitleKey(t *testing.T) {
	if got := (Title{ID: "70117293", Title: "Batman", Year: 1989}).Key(); got != "70117293" {
		t.Fatalf("id key = %q", got)
	}
	if got := (Title{Title: "Spider-Man: Homecoming", Year: 2017}).Key(); got != "2017/spider-man-homecoming" {
		t.Fatalf("composite key = %q", got)
	}
}
