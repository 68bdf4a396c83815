// Package testhelper 는 테스트 전용 헬퍼를 제공한다.
package testhelper

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/valkey-io/valkey-go"
)

// NewTestValkeyClient: miniredis 인스턴스를 띄우고 연결된 Valkey 클라이언트를 생성합니다.
// 정리(cleanup)는 t.Cleanup으로 자동 등록됩니다.
func NewTestValkeyClient(t *testing.T) valkey.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	// miniredis는 RESP3 client-side caching을 지원하지 않으므로 비활성화
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{mr.Addr()},
		DisableCache:      true,
		ForceSingleClient: true,
	})
	if err != nil {
		t.Fatalf("valkey client create failed: %v", err)
	}
	t.Cleanup(client.Close)

	return client
}
