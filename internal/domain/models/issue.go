package models

import "fmt"

// IssueDescriptor is the bug report read from the input file. It is parsed
// once and never mutated.
type IssueDescriptor struct {
	URL      string   `json:"url"`
	Browser  string   `json:"browser"`
	OS       string   `json:"os"`
	Body     string   `json:"body"`
	Title    string   `json:"title"`
	Labels   []string `json:"labels"`
	Comments []string `json:"comments"`
}

// IssueBody renders the markdown body posted to the tracker. The line order
// (URL, browser, OS, then the free text) is a fixed contract.
func (d IssueDescriptor) IssueBody() string {
	return fmt.Sprintf(`
**URL**: %s
**Browser / Version**: %s
**Operating System**: %s

%s`, d.URL, d.Browser, d.OS, d.Body)
}

// Issue is the tracker-side object created for a descriptor.
type Issue struct {
	Number int
	URL    string
}

// Comment is a tracker-side comment created on an issue.
type Comment struct {
	URL string
}
