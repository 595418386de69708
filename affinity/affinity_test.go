package affinity

import "testing"

func TestPinUnpin(t *testing.T) {
	if err := Pin(0); err != nil {
		Unpin()
		t.Skipf("pinning unavailable here: %v", err)
	}
	Unpin()
}
