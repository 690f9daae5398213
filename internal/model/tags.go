package model

import "strings"

// TagSeparator joins tags in their stored form.
const TagSeparator = ","

// NormalizeTags cleans raw user input into the stored tag form:
// split on commas, trim each element, rejoin with commas.
// Empty elements are kept, so "a,,b" stays "a,,b".
func NormalizeTags(raw string) string {
	parts := strings.Split(raw, TagSeparator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, TagSeparator)
}

// ParseTags splits a stored tag string into its tags.
// An empty string yields no tags.
func ParseTags(stored string) []string {
	if stored == "" {
		return []string{}
	}
	return strings.Split(stored, TagSeparator)
}

// JoinTags trims each tag and joins them into the stored form.
func JoinTags(tags []string) string {
	trimmed := make([]string, len(tags))
	for i, t := range tags {
		trimmed[i] = strings.TrimSpace(t)
	}
	return strings.Join(trimmed, TagSeparator)
}

// SplitTagInput turns comma-separated user input into a tag slice.
// Blank input yields no tags.
func SplitTagInput(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return ParseTags(NormalizeTags(raw))
}
