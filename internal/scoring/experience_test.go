package scoring

import "testing"

func TestParseYears(t *testing.T) {
	cases := []struct {
		text  string
		want  float64
		found bool
	}{
		{text: "5+ years of experience with Go", want: 5, found: true},
		{text: "3-5 years building APIs", want: 3, found: true},
		{text: "3 to 5 years building APIs", want: 3, found: true},
		{text: "at least 7 years in backend roles", want: 7, found: true},
		{text: "a minimum of 4 yrs in support", want: 4, found: true},
		{text: "Experience: 6", want: 6, found: true},
		{text: "2-4 years of Go and 6+ years overall", want: 6, found: true},
		{text: "company founded 50 years ago", found: false},
		{text: "no figures here", found: false},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, ok := ParseYears(tc.text)
			if ok != tc.found {
				t.Fatalf("expected found=%v, got %v", tc.found, ok)
			}
			if ok && got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMatchExperience(t *testing.T) {
	cases := []struct {
		name     string
		years    float64
		resume   string
		jd       string
		want     float64
		wantReq  bool
		wantUsed float64
	}{
		{name: "meets requirement", years: 10, jd: "5+ years required", want: 100, wantReq: true, wantUsed: 10},
		{name: "below requirement floors at 20", years: 2, jd: "10 years of experience", want: 20, wantReq: true, wantUsed: 2},
		{name: "linear below requirement", years: 5, jd: "10 years of experience", want: 50, wantReq: true, wantUsed: 5},
		{name: "no requirement", years: 1, jd: "Go developer", want: 100, wantUsed: 1},
		{name: "detects years from resume", resume: "7 years of experience shipping APIs", jd: "5+ years", want: 100, wantReq: true, wantUsed: 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := MatchExperience(tc.years, tc.resume, tc.jd)
			if res.Score != tc.want {
				t.Fatalf("expected score %v, got %v", tc.want, res.Score)
			}
			if res.HasRequirement != tc.wantReq {
				t.Fatalf("expected requirement=%v, got %v", tc.wantReq, res.HasRequirement)
			}
			if res.Years != tc.wantUsed {
				t.Fatalf("expected years %v, got %v", tc.wantUsed, res.Years)
			}
		})
	}
}

func TestParseRequiredYears(t *testing.T) {
	cases := []struct {
		text  string
		want  float64
		found bool
	}{
		{text: "Founded 30 years ago, we need 3+ years", want: 3, found: true},
		{text: "Serving clients for 25 years. Minimum 4 years of Go.", want: 4, found: true},
		{text: "A 10 year roadmap; 5+ years of experience required", want: 5, found: true},
		{text: "Team of 12 engineers, 6 years", want: 6, found: true},
		{text: "Founded 30 years ago", found: false},
		{text: "Go developer", found: false},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, ok := ParseRequiredYears(tc.text)
			if ok != tc.found {
				t.Fatalf("expected found=%v, got %v", tc.found, ok)
			}
			if ok && got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMatchExperienceIgnoresCompanyAge(t *testing.T) {
	res := MatchExperience(1, "", "Founded 30 years ago, we need 3+ years")
	if res.Required != 3 || !res.HasRequirement {
		t.Fatalf("expected requirement of 3 years, got %v (found=%v)", res.Required, res.HasRequirement)
	}
	if want := 100.0 / 3; res.Score != want {
		t.Fatalf("expected score %v, got %v", want, res.Score)
	}
}
