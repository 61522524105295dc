package photo

import (
	"strings"
	"testing"
	"time"
)

func TestSanitizeBase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vacation photo!!.jpg", "vacation_photo__"},
		{"portrait.png", "portrait"},
		{"archive.tar.gz", "archive.tar"},
		{"dir/sub/face.webp", "face"},
		{"ümlaut.png", "_mlaut"},
		{"!!!.gif", "___"},
		{"😀.jpg", "__"},
		{"me 😀 you.png", "me____you"},
		{"no-extension", "no-extension"},
		{".jpg", ".jpg"},
		{"", "photo"},
		{"/", "photo"},
		{strings.Repeat("a", 60) + ".jpeg", strings.Repeat("a", 40)},
	}

	for _, tt := range tests {
		if got := SanitizeBase(tt.in); got != tt.want {
			t.Errorf("SanitizeBase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArtifactName(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	if got, want := ArtifactName("vacation photo!!.jpg", at), "vacation_photo__-1700000000123.png"; got != want {
		t.Fatalf("ArtifactName = %q, want %q", got, want)
	}

	if ArtifactName("a.png", at) != ArtifactName("a.jpg", at) {
		t.Fatal("same base in the same millisecond must produce the same name")
	}

	if ArtifactName("a.png", at) == ArtifactName("a.png", at.Add(time.Millisecond)) {
		t.Fatal("different milliseconds must produce different names")
	}
}
