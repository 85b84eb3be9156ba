// Package submission defines the campaign submission model and its validation rules.
package submission

import "time"

// Content tag vocabulary. Submissions must carry at least one of these.
const (
	TagVideo        = "Video (more than 1 min)"
	TagShort        = "Short"
	TagArticle      = "Twitter article"
	TagThread       = "Thread"
	TagPost         = "Post"
	TagReplyComment = "Reply/Comment"
)

// Tags returns the fixed content tag vocabulary.
func Tags() []string {
	return []string{TagVideo, TagShort, TagArticle, TagThread, TagPost, TagReplyComment}
}

// IsKnownTag reports whether tag belongs to the fixed vocabulary.
func IsKnownTag(tag string) bool {
	switch tag {
	case TagVideo, TagShort, TagArticle, TagThread, TagPost, TagReplyComment:
		return true
	}
	return false
}

// Submission is one user-authored campaign entry. Submissions are
// append-only; they are never mutated after creation.
type Submission struct {
	ID             string    `json:"id"`
	SubmitterName  string    `json:"name"`
	WalletAddress  string    `json:"wallet"`
	Link           string    `json:"link"`
	ContentTags    []string  `json:"contentTags"`
	SubmitterEmail string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Candidate is a submission being validated, before identity and
// timestamps are attached.
type Candidate struct {
	SubmitterName string
	WalletAddress string
	Link          string
	ContentTags   []string
}
