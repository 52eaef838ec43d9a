package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tbl := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tags stripped",
			in:   "<strong>Oyun</strong> <em>indir</em>",
			want: "Oyun indir",
		},
		{
			name: "block separators become whitespace",
			in:   "<p>first line<br>second line</p><p>next paragraph</p>",
			want: "first line second line next paragraph",
		},
		{
			name: "entities decoded",
			in:   "Tom Clancy&#8217;s &quot;Division&quot; &#8211; G&amp;G",
			want: "Tom Clancy’s \"Division\" – G&G",
		},
		{
			name: "pseudo markers survive",
			in:   "<p><strong>&lt;&lt;&lt; Alternatif: Link1 &gt;&gt;&gt;</strong></p>",
			want: "<<< Alternatif: Link1 >>>",
		},
		{
			name: "whitespace collapsed and trimmed",
			in:   "  a \t b\n\n c  ",
			want: "a b c",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"<p>G&#8211;Force<br>&lt;&lt;&lt; Link1 &gt;&gt;&gt;</p>",
		"plain text already",
		"<div><span>nested</span> tags</div>",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input: %q", in)
	}
}
