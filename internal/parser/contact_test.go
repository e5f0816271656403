package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContactInfo(t *testing.T) {
	p := NewResumeParser()
	text := `John Doe
john.doe@example.com
(555) 123-4567
linkedin.com/in/johndoe
github.com/johndoe
https://johndoe.dev`

	contact := p.ExtractContactInfo(text)

	assert.Equal(t, "john.doe@example.com", contact.Email)
	assert.Equal(t, "(555) 123-4567", contact.Phone)
	assert.Contains(t, contact.LinkedIn, "linkedin.com/in/johndoe")
	assert.Contains(t, contact.GitHub, "github.com/johndoe")
	assert.Equal(t, "https://johndoe.dev", contact.Website)
}

func TestExtractContactInfoInternationalPhone(t *testing.T) {
	p := NewResumeParser()

	contact := p.ExtractContactInfo("Reach me at +1 555 123 4567 anytime")
	assert.NotEmpty(t, contact.Phone)
}

func TestExtractContactInfoWebsiteExcludesProfiles(t *testing.T) {
	p := NewResumeParser()
	text := "https://www.linkedin.com/in/janedoe and https://github.com/janedoe"

	contact := p.ExtractContactInfo(text)

	// linkedin/github 链接不应被当作个人网站
	assert.Empty(t, contact.Website)
	assert.NotEmpty(t, contact.LinkedIn)
	assert.NotEmpty(t, contact.GitHub)
}

func TestExtractContactInfoEmpty(t *testing.T) {
	p := NewResumeParser()

	contact := p.ExtractContactInfo("no contact details in this text")

	assert.Empty(t, contact.Email)
	assert.Empty(t, contact.Phone)
	assert.Empty(t, contact.LinkedIn)
	assert.Empty(t, contact.GitHub)
	assert.Empty(t, contact.Website)
}
