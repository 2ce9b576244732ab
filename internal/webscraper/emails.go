package webscraper

import (
	"regexp"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var emailRegex = regexp.MustCompile(emailPattern)

// EmailSet is a case-sensitive set of addresses. Crawls are sequential, so
// the thread-unsafe variant is used throughout.
type EmailSet = mapset.Set[string]

func NewEmailSet(emails ...string) EmailSet {
	return mapset.NewThreadUnsafeSet(emails...)
}

// ExtractEmails returns every distinct substring of text matching the address pattern.
func ExtractEmails(text string) EmailSet {
	return NewEmailSet(emailRegex.FindAllString(text, -1)...)
}

// SortedEmails returns the members of set in lexicographic order.
func SortedEmails(set EmailSet) []string {
	if set == nil {
		return []string{}
	}
	emails := set.ToSlice()
	slices.Sort(emails)
	return emails
}

// FormatEmails renders set as a sorted ", "-joined list; empty sets render as "".
func FormatEmails(set EmailSet) string {
	return strings.Join(SortedEmails(set), ", ")
}
