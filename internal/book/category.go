package book

import "strings"

// UnknownCategory is the label for categories outside the mapping table.
const UnknownCategory = "Unknown"

// categoryPathSep separates levels in the provider's category path.
const categoryPathSep = ">"

// categoryLabels maps the provider's top-level category (the segment after
// the store root, e.g. "국내도서>소설/시/희곡>...") to the workspace label.
var categoryLabels = map[string]string{
	"가정/요리/뷰티":  "Home & Cooking",
	"요리/살림":     "Home & Cooking",
	"건강/취미/레저":  "Health & Hobby",
	"건강/취미":     "Health & Hobby",
	"경제경영":      "Business",
	"고전":        "Classics",
	"과학":        "Science",
	"대학교재/전문서적": "Textbook",
	"만화":        "Comics",
	"사회과학":      "Social Science",
	"소설/시/희곡":   "Literature",
	"장르소설":      "Genre Fiction",
	"에세이":       "Essay",
	"수험서/자격증":   "Exam Prep",
	"고등학교참고서":   "Exam Prep",
	"중학교참고서":    "Exam Prep",
	"초등학교참고서":   "Exam Prep",
	"어린이":       "Children",
	"유아":        "Picture Book",
	"좋은부모":      "Parenting",
	"청소년":       "Young Adult",
	"여행":        "Travel",
	"역사":        "History",
	"예술/대중문화":   "Arts",
	"외국어":       "Language",
	"인문학":       "Humanities",
	"자기계발":      "Self-Help",
	"잡지":        "Magazine",
	"종교/역학":     "Religion",
	"컴퓨터/모바일":   "Computing",
	"전집/중고전집":   "Collections",
	"달력/기타":     "Etc",
}

// destinationLabels holds every mapped label so MapCategory is idempotent.
var destinationLabels = func() map[string]struct{} {
	m := make(map[string]struct{}, len(categoryLabels))
	for _, v := range categoryLabels {
		m[v] = struct{}{}
	}
	m[UnknownCategory] = struct{}{}
	return m
}()

// CategoryLabel returns the first sub-level segment of a category path,
// or "" when the path has no sub-level.
func CategoryLabel(path string) string {
	parts := strings.Split(path, categoryPathSep)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// MapCategory maps a provider category label to the workspace label.
// Labels outside the table map to UnknownCategory.
func MapCategory(label string) string {
	label = strings.TrimSpace(label)
	if v, ok := categoryLabels[label]; ok {
		return v
	}
	if _, ok := destinationLabels[label]; ok {
		return label
	}
	return UnknownCategory
}

// CategoryKeys returns the provider labels known to MapCategory.
func CategoryKeys() []string {
	keys := make([]string, 0, len(categoryLabels))
	for k := range categoryLabels {
		keys = append(keys, k)
	}
	return keys
}
