package webscraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmails(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single", "Contact: jane@firm.com", []string{"jane@firm.com"}},
		{"duplicates collapse", "jane@firm.com or jane@firm.com", []string{"jane@firm.com"}},
		{"case sensitive", "Jane@Firm.com jane@firm.com", []string{"Jane@Firm.com", "jane@firm.com"}},
		{"plus and dots", "first.last+news@mail.firm.co.uk", []string{"first.last+news@mail.firm.co.uk"}},
		{"no tld", "user@localhost", []string{}},
		{"none", "no addresses here", []string{}},
		{"trailing dot is kept", "write to info@firm.org.", []string{"info@firm.org."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SortedEmails(ExtractEmails(tt.text)))
		})
	}
}

func TestExtractEmailsIsPure(t *testing.T) {
	text := "a@b.com, c@d.org and a@b.com again"
	first := ExtractEmails(text)
	second := ExtractEmails(text)
	assert.True(t, first.Equal(second))
}

func TestFormatEmails(t *testing.T) {
	assert.Equal(t, "", FormatEmails(NewEmailSet()))
	assert.Equal(t, "", FormatEmails(nil))
	assert.Equal(t, "a@x.com, b@x.com, z@x.com", FormatEmails(NewEmailSet("z@x.com", "a@x.com", "b@x.com")))
}
