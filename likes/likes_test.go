package likes

import "testing"

func TestToggleTwiceRestoresCounter(t *testing.T) {
	counter := int64(7)

	liked, delta := applyToggle(false)
	counter += delta
	if !liked || counter != 8 {
		t.Fatalf("after first toggle: liked=%v counter=%d, want true 8", liked, counter)
	}

	liked, delta = applyToggle(liked)
	counter += delta
	if liked || counter != 7 {
		t.Fatalf("after second toggle: liked=%v counter=%d, want false 7", liked, counter)
	}
}

func TestToggleFromZeroCanGoNegative(t *testing.T) {
	// A marker left behind by a failed increment still decrements on
	// unlike; the stored counter is not floored.
	counter := int64(0)

	_, delta := applyToggle(true)
	counter += delta
	if counter != -1 {
		t.Fatalf("counter = %d, want -1", counter)
	}
}
