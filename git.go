package codegraph

import (
	git "github.com/go-git/go-git/v5"
)

// commitHash returns the HEAD commit of the repository containing root, or
// nil when the root is not under version control.
func commitHash(root string) *string {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}
	head, err := repo.Head()
	if err != nil {
		return nil
	}
	hash := head.Hash().String()
	return &hash
}
