package trailer

import "testing"

func TestVideoID(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   string
		wantOK bool
	}{
		{
			name:   "watch url",
			rawURL: "https://www.youtube.com/watch?v=abc123XYZ_0",
			want:   "abc123XYZ_0",
			wantOK: true,
		},
		{
			name:   "watch url with extra params",
			rawURL: "https://www.youtube.com/watch?v=abc123XYZ_0&t=42s",
			want:   "abc123XYZ_0",
			wantOK: true,
		},
		{
			name:   "short url",
			rawURL: "https://youtu.be/abc123XYZ_0",
			want:   "abc123XYZ_0",
			wantOK: true,
		},
		{
			name:   "short url with query",
			rawURL: "https://youtu.be/abc123XYZ_0?si=share",
			want:   "abc123XYZ_0",
			wantOK: true,
		},
		{
			name:   "fragment trimmed",
			rawURL: "https://www.youtube.com/watch?v=abc123XYZ_0#t=10",
			want:   "abc123XYZ_0",
			wantOK: true,
		},
		{
			name:   "empty url",
			rawURL: "",
			wantOK: false,
		},
		{
			name:   "non-youtube url",
			rawURL: "https://vimeo.com/123456",
			wantOK: false,
		},
		{
			name:   "watch url with empty id",
			rawURL: "https://www.youtube.com/watch?v=",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VideoID(tt.rawURL)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("VideoID(%q) = (%q, %v), want (%q, %v)",
					tt.rawURL, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEmbedURL(t *testing.T) {
	got, ok := EmbedURL("https://youtu.be/abc123XYZ_0")
	if !ok || got != "https://www.youtube.com/embed/abc123XYZ_0" {
		t.Errorf("EmbedURL = (%q, %v)", got, ok)
	}
	if _, ok := EmbedURL("not a url"); ok {
		t.Error("unrecognized url should report ok=false")
	}
}
