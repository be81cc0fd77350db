package question

import (
	"sort"
	"strconv"
	"strings"
)

// CompareQuestionIDs orders ids such as "2", "11.2" and "11.10" numerically
// part by part. Non-numeric parts fall back to string comparison.
func CompareQuestionIDs(a, b string) int {
	pa := strings.Split(strings.TrimSpace(a), ".")
	pb := strings.Split(strings.TrimSpace(b), ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := compareNumeric(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	default:
		return 0
	}
}

// CompareTableIDs orders table codes like "T2" before "T10".
func CompareTableIDs(a, b string) int {
	na, okA := trailingNumber(a)
	nb, okB := trailingNumber(b)
	if okA && okB && na != nb {
		if na < nb {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// SortByQuestionID sorts questions by table then by question id.
func SortByQuestionID(items []Question) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := CompareTableIDs(items[i].TableID, items[j].TableID); c != 0 {
			return c < 0
		}
		return CompareQuestionIDs(items[i].QuestionID, items[j].QuestionID) < 0
	})
}

func compareNumeric(a, b string) int {
	na, errA := strconv.Atoi(strings.TrimSpace(a))
	nb, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

func trailingNumber(v string) (int, bool) {
	v = strings.TrimSpace(v)
	start := len(v)
	for start > 0 && v[start-1] >= '0' && v[start-1] <= '9' {
		start--
	}
	if start == len(v) {
		return 0, false
	}
	n, err := strconv.Atoi(v[start:])
	if err != nil {
		return 0, false
	}
	return n, true
}
