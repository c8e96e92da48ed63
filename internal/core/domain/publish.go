package domain

// Identity is a commit author/committer identity.
type Identity struct {
	Name  string
	Email string
}

// String renders the identity in "Name <email>" form.
func (i Identity) String() string {
	return i.Name + " <" + i.Email + ">"
}

// PullRequest describes the pull request opened for a lock upgrade.
type PullRequest struct {
	// Head is the branch carrying the changes.
	Head string

	// Base is the branch the pull request targets.
	Base string

	Title string
	Body  string
}
