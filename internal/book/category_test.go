package book

import (
	"testing"
	"time"
)

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"국내도서>컴퓨터/모바일>프로그래밍 개발/방법론", "컴퓨터/모바일"},
		{"국내도서>소설/시/희곡", "소설/시/희곡"},
		{"국내도서", ""},
		{"", ""},
		{"국내도서> 에세이 >한국에세이", "에세이"},
	}
	for _, tt := range tests {
		if got := CategoryLabel(tt.path); got != tt.want {
			t.Errorf("CategoryLabel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMapCategory_Table(t *testing.T) {
	for _, key := range CategoryKeys() {
		want := categoryLabels[key]
		if got := MapCategory(key); got != want {
			t.Errorf("MapCategory(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestMapCategory_Unknown(t *testing.T) {
	for _, label := range []string{"", "없는분류", "Computing>", "국내도서"} {
		if got := MapCategory(label); got != UnknownCategory {
			t.Errorf("MapCategory(%q) = %q, want %q", label, got, UnknownCategory)
		}
	}
}

func TestMapCategory_Idempotent(t *testing.T) {
	inputs := append(CategoryKeys(), "", "없는분류")
	for _, in := range inputs {
		once := MapCategory(in)
		if twice := MapCategory(once); twice != once {
			t.Errorf("MapCategory(MapCategory(%q)) = %q, want %q", in, twice, once)
		}
	}
}

// Destination labels are accepted as keys, so foreign-book paths that
// already carry one keep it instead of falling back to Unknown.
func TestMapCategory_DestinationLabelPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"외국도서>History>Europe", "History"},
		{"외국도서>Computing>Programming", "Computing"},
		{"외국도서>Unknown>Misc", UnknownCategory},
		{"외국도서>history>Europe", UnknownCategory},
		{"국내도서>역사>서양사", "History"},
	}
	for _, tt := range tests {
		if got := MapCategory(CategoryLabel(tt.path)); got != tt.want {
			t.Errorf("MapCategory(CategoryLabel(%q)) = %q, want %q", tt.path, got, tt.want)
		}
		b := Normalize(Candidate{Title: "t", CategoryName: tt.path}, time.Now())
		if b.Category != tt.want {
			t.Errorf("Normalize(%q).Category = %q, want %q", tt.path, b.Category, tt.want)
		}
	}
}
