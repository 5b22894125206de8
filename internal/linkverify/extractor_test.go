package linkverify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinksFromReader(t *testing.T) {
	page := `<html><head><link rel="stylesheet" href="../style.css"></head>
<body>
<a href="../blog/hello.html">Hello <em>there</em></a>
<a href="https://elsewhere.example/x" class="external">out</a>
<a href="https://origin.example/t/9">old</a>
<img src="pic.png" alt="A picture">
<a>no href</a>
</body></html>`

	links, err := ExtractLinksFromReader(strings.NewReader(page), "https://origin.example")
	require.NoError(t, err)
	require.Len(t, links, 5)

	require.Equal(t, "link", links[0].Tag)
	require.Equal(t, "stylesheet", links[0].Text)
	require.True(t, links[0].IsInternal)

	require.Equal(t, "a", links[1].Tag)
	require.Equal(t, "Hellothere", links[1].Text)
	require.True(t, links[1].IsInternal)

	require.False(t, links[2].IsInternal)
	require.True(t, links[3].IsInternal)

	require.Equal(t, "img", links[4].Tag)
	require.Equal(t, "src", links[4].Attribute)
	require.Equal(t, "A picture", links[4].Text)
}

func TestExtractLinksFromReader_InvalidBase(t *testing.T) {
	_, err := ExtractLinksFromReader(strings.NewReader("<p>x</p>"), "http://[::1")
	require.Error(t, err)
}

func TestShouldVerifyLink(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", false},
		{"#top", false},
		{"mailto:a@b.example", false},
		{"TEL:123", false},
		{"javascript:void(0)", false},
		{"data:image/png;base64,AAAA", false},
		{"../blog/a.html", true},
		{"https://origin.example/x", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			require.Equal(t, tt.want, ShouldVerifyLink(&Link{URL: tt.url}))
		})
	}
}
