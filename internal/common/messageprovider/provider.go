// Package messageprovider 는 YAML로 정의된 사용자 노출 메시지 카탈로그를 제공한다.
// 점(.)으로 구분된 키와 {placeholder} 치환을 지원한다.
package messageprovider

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider 는 메시지 키를 템플릿 문자열로 해석하는 조회기다.
type Provider struct {
	root map[string]any
}

// Param 는 템플릿 치환 파라미터다.
type Param struct {
	Key   string
	Value any
}

// NewFromYAML 는 YAML 내용으로부터 Provider를 생성한다.
func NewFromYAML(yamlContent string) (*Provider, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(yamlContent), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal yaml failed: %w", err)
	}

	if raw == nil {
		return &Provider{root: make(map[string]any)}, nil
	}

	root, ok := normalizeYAMLValue(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected yaml root type: %T", raw)
	}

	return &Provider{root: root}, nil
}

// Get 는 키에 해당하는 메시지를 찾아 파라미터를 치환해 반환한다.
// 키가 없으면 키 자체를 반환한다. (누락 키 추적 용이)
func (p *Provider) Get(key string, params ...Param) string {
	if p == nil {
		return key
	}
	if strings.TrimSpace(key) == "" {
		return key
	}

	value, ok := resolveDottedKey(p.root, key)
	if !ok {
		return key
	}

	template, ok := value.(string)
	if !ok {
		return fmt.Sprint(value)
	}

	out := template
	for _, param := range params {
		out = strings.ReplaceAll(out, "{"+param.Key+"}", fmt.Sprint(param.Value))
	}
	return out
}

// resolveDottedKey 는 "a.b.c" 형태의 키를 중첩 맵에서 탐색한다.
func resolveDottedKey(root map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	var current any = root
	for _, part := range parts {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// normalizeYAMLValue 는 yaml.Unmarshal 결과의 map[any]any를 map[string]any로 정규화한다.
func normalizeYAMLValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = normalizeYAMLValue(v)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = normalizeYAMLValue(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalizeYAMLValue(v)
		}
		return out
	default:
		return value
	}
}
