// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxPostContentLen bounds post bodies.
	MaxPostContentLen = 5000
	// MaxCommentContentLen bounds comment bodies.
	MaxCommentContentLen = 2000
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// PostContent trims and validates a post body, returning the normalized form.
func PostContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", fmt.Errorf("content is required")
	}
	if len(content) > MaxPostContentLen {
		return "", fmt.Errorf("content too long (max %d characters)", MaxPostContentLen)
	}
	return content, nil
}

// CommentContent trims and validates a comment body, returning the normalized form.
func CommentContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", fmt.Errorf("content is required")
	}
	if len(content) > MaxCommentContentLen {
		return "", fmt.Errorf("comment too long (max %d characters)", MaxCommentContentLen)
	}
	return content, nil
}

// Username checks the letters/digits/underscore shape used for profile names.
func Username(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username must be 3-30 characters of letters, digits or underscores")
	}
	return nil
}
