package catalog

import "sync/atomic"

// Holder 는 현재 카탈로그 스냅샷을 원자적으로 보관한다.
// 리로드는 전체 스냅샷 교체로만 이루어지며, 읽는 쪽은 항상
// 이전 스냅샷 또는 새 스냅샷 중 하나의 온전한 모습만 본다.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder 는 빈 Holder를 생성한다.
func NewHolder() *Holder {
	return &Holder{}
}

// Swap 는 현재 스냅샷을 새 스냅샷으로 교체한다.
func (h *Holder) Swap(snapshot *Snapshot) {
	h.current.Store(snapshot)
}

// Current 는 현재 스냅샷을 반환한다. 아직 로드 전이면 ok=false.
func (h *Holder) Current() (*Snapshot, bool) {
	s := h.current.Load()
	return s, s != nil
}
