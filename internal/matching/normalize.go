package matching

import "strings"

// Author is a commit author string split into comparable parts
type Author struct {
	// DisplayName is the normalized text before the first '<'.
	DisplayName string
	// Email is the normalized text between '<' and '>', empty when absent.
	Email string
	// Username is the local part of Email.
	Username string
}

// Normalize lower-cases s, trims it and collapses internal whitespace runs
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// FirstToken returns the first whitespace-delimited token of s
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ParseAuthor splits a raw "Display Name <email@domain>" string. The text before the first '<'
// is always the name; an unclosed <... part carries no email.
func ParseAuthor(raw string) Author {
	open := strings.Index(raw, "<")
	if open < 0 {
		return Author{DisplayName: Normalize(raw)}
	}

	rest := raw[open+1:]
	end := strings.Index(rest, ">")
	if end < 0 {
		return Author{DisplayName: Normalize(raw[:open])}
	}

	author := Author{
		DisplayName: Normalize(raw[:open]),
		Email:       Normalize(rest[:end]),
	}
	author.Username = author.Email
	if at := strings.Index(author.Email, "@"); at >= 0 {
		author.Username = author.Email[:at]
	}
	return author
}

// DisplayLabel returns the author's name as written, for surfacing unmatched authors
func DisplayLabel(raw string) string {
	name := raw
	if open := strings.Index(raw, "<"); open >= 0 {
		name = raw[:open]
	}
	label := strings.Join(strings.Fields(name), " ")
	if label == "" {
		label = strings.Join(strings.Fields(raw), " ")
	}
	if label == "" {
		return "Unknown"
	}
	return label
}

// handle is the account-like identifier of an author: the email local part, or the
// display name without spaces when the author carries no email
func (a Author) handle() string {
	if a.Email != "" {
		return a.Username
	}
	return strings.ReplaceAll(a.DisplayName, " ", "")
}
