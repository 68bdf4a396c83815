package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeGenre 는 장르 이름을 색인 키로 정규화한다. (NFKC, case fold, 공백 제거)
// 사용자 입력("action")과 카탈로그 표기("Action")를 같은 키로 매칭시키기 위함.
func NormalizeGenre(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return cases.Fold().String(norm.NFKC.String(trimmed))
}
