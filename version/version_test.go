package version

import "testing"

func TestIsRelease(t *testing.T) {
	previous := BOT_VERSION
	defer func() {
		BOT_VERSION = previous
	}()

	BOT_VERSION = "DEV_SNAPSHOT"
	if IsRelease() {
		t.Fatalf("version.IsRelease() reported a dev snapshot as release")
	}

	BOT_VERSION = "0.5.2-4-g205bbb8"
	if !IsRelease() {
		t.Fatalf("version.IsRelease() did not report a tagged build as release")
	}
}
