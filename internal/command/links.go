package command

import "fyne.io/fyne/v2"

const (
	authorEmailURL = "mailto:paul@pksoftware.net?subject=Mini SQL Query Feedback"
	websiteURL     = "https://github.com/shhac/minisql"
)

// NewEmailAuthorCommand opens a feedback email to the author.
func NewEmailAuthorCommand(opener URLOpener) *ShowURLCommand {
	return mustShowURL(opener, "Email the Author", authorEmailURL, EmailIcon)
}

// NewWebsiteCommand opens the project page in the browser.
func NewWebsiteCommand(opener URLOpener) *ShowURLCommand {
	return mustShowURL(opener, "Visit the Website", websiteURL, WebIcon)
}

// mustShowURL is for the compiled-in URLs above, which always parse.
func mustShowURL(opener URLOpener, label, rawURL string, icon fyne.Resource) *ShowURLCommand {
	cmd, err := NewShowURLCommand(opener, label, rawURL, icon)
	if err != nil {
		panic(err)
	}
	return cmd
}
