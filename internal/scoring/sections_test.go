package scoring

import (
	"reflect"
	"testing"
)

func TestCheckSectionsComplete(t *testing.T) {
	text := `Jane Doe
jane@example.com

## Professional Summary
Backend engineer focused on payments.

WORK EXPERIENCE
Acme Corp, 2019 - present

Education:
BSc Computer Science

Technical Skills
Go, SQL, Kubernetes
`
	res := CheckSections(text)
	if res.Score != 100 {
		t.Fatalf("expected 100, got %v (missing %v)", res.Score, res.Missing)
	}
	if len(res.Missing) != 0 {
		t.Fatalf("expected nothing missing, got %v", res.Missing)
	}
}

func TestCheckSectionsMissing(t *testing.T) {
	text := "Experience\nBuilt things for a long time, with care.\nI have education in many fields, mostly online.\n"
	res := CheckSections(text)

	want := []Section{SectionContact, SectionSummary, SectionEducation, SectionSkills}
	if !reflect.DeepEqual(res.Missing, want) {
		t.Fatalf("expected %v, got %v", want, res.Missing)
	}
	if res.Score != 20 {
		t.Fatalf("expected 20, got %v", res.Score)
	}
}

func TestCheckSectionsContactFromHeader(t *testing.T) {
	res := CheckSections("John Smith\n(555) 123-4567\n")
	if !reflect.DeepEqual(res.Found, []Section{SectionContact}) {
		t.Fatalf("expected contact from phone number, got %v", res.Found)
	}
}
