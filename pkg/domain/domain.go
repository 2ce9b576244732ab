package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrBlankWebsite = errors.New("blank website")
	ErrNoHost       = errors.New("website has no host")
)

const defaultScheme = "http://"

// HasScheme reports whether u already starts with http:// or https://
func HasScheme(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// BaseOrigin normalizes a website identifier into scheme://host[:port].
// A missing scheme defaults to http. Path, query, fragment and userinfo are dropped.
func BaseOrigin(website string) (string, error) {
	website = strings.TrimSpace(website)
	if website == "" {
		return "", ErrBlankWebsite
	}
	if !HasScheme(website) {
		website = defaultScheme + website
	}

	parsedUrl, err := url.Parse(website)
	if err != nil {
		return "", fmt.Errorf("error parsing URL: %w", err)
	}
	if parsedUrl.Host == "" {
		return "", ErrNoHost
	}
	return parsedUrl.Scheme + "://" + parsedUrl.Host, nil
}

// Resolve joins a subpath onto a base origin.
// The empty subpath is the homepage and returns base unchanged.
func Resolve(base, subpath string) (string, error) {
	if subpath == "" {
		return base, nil
	}
	baseUrl, err := url.Parse(base + "/")
	if err != nil {
		return "", fmt.Errorf("error parsing URL: %w", err)
	}
	ref, err := url.Parse(subpath)
	if err != nil {
		return "", fmt.Errorf("error parsing subpath: %w", err)
	}
	return baseUrl.ResolveReference(ref).String(), nil
}
