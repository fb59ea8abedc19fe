package ersdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taxdocs/ersdoc"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "strips query parameters",
			url:  "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000?utm_source=x",
			want: "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000",
		},
		{
			name: "strips navigational fragment",
			url:  "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000#content",
			want: "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000",
		},
		{
			name: "preserves content-bearing fragment",
			url:  "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000#IDHISTORY",
			want: "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000#IDHISTORY",
		},
		{
			name: "already canonical",
			url:  "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm20000",
			want: "https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm20000",
		},
		{
			name: "unparseable input returned unchanged",
			url:  "https://gov.uk/%zz",
			want: "https://gov.uk/%zz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ersdoc.Normalize(tt.url))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://x/y?b=2&a=1",
		"https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000#top",
		"https://www.gov.uk/hmrc-internal-manuals/employment-related-securities/ersm110000#IDHISTORY",
		"not a url at all",
	}

	for _, url := range urls {
		once := ersdoc.Normalize(url)
		assert.Equal(t, once, ersdoc.Normalize(once), "normalize must be idempotent for %q", url)
	}
}

func TestNormalize_StableUnderQueryPermutation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ersdoc.Normalize("https://x/y"), ersdoc.Normalize("https://x/y?b=2&a=1"))
	assert.Equal(t, ersdoc.Normalize("https://x/y?a=1&b=2"), ersdoc.Normalize("https://x/y?b=2&a=1"))
}
