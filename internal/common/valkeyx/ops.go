package valkeyx

import (
	"context"

	"github.com/valkey-io/valkey-go"
)

// SetString: 문자열 값을 저장한다. (TTL 없음, 영구 보존)
func SetString(ctx context.Context, client valkey.Client, key string, value string) error {
	cmd := client.B().Set().Key(key).Value(value).Build()
	return client.Do(ctx, cmd).Error()
}

// GetBytes: 키의 값을 바이트 슬라이스로 조회한다.
// 키가 존재하지 않으면 (nil, false, nil)을 반환한다.
func GetBytes(ctx context.Context, client valkey.Client, key string) ([]byte, bool, error) {
	cmd := client.B().Get().Key(key).Build()
	raw, err := client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if IsNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

// GetString: 키의 값을 문자열로 조회한다.
// 키가 존재하지 않으면 ("", false, nil)을 반환한다.
func GetString(ctx context.Context, client valkey.Client, key string) (string, bool, error) {
	cmd := client.B().Get().Key(key).Build()
	value, err := client.Do(ctx, cmd).ToString()
	if err != nil {
		if IsNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// DeleteKeys: 주어진 키들을 삭제한다.
func DeleteKeys(ctx context.Context, client valkey.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	cmd := client.B().Del().Key(keys...).Build()
	return client.Do(ctx, cmd).Error()
}

// Exists: 키가 존재하는지 확인한다.
func Exists(ctx context.Context, client valkey.Client, key string) (bool, error) {
	cmd := client.B().Exists().Key(key).Build()
	n, err := client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Incr: 키의 정수 값을 1 증가시키고 증가된 값을 반환한다. (사용자 ID 발급 등)
func Incr(ctx context.Context, client valkey.Client, key string) (int64, error) {
	cmd := client.B().Incr().Key(key).Build()
	return client.Do(ctx, cmd).AsInt64()
}
