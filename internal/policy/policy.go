// Package policy decides what an actor may do with blog entities.
package policy

import "yatube/internal/models"

// CanEdit reports whether the actor is the author of the post.
func CanEdit(actor *models.Actor, post *models.Post) bool {
	if !actor.IsAuthenticated() || post == nil {
		return false
	}
	return actor.UserID == post.AuthorID
}

func CanCreate(actor *models.Actor) bool {
	return actor.IsAuthenticated()
}

func CanComment(actor *models.Actor) bool {
	return actor.IsAuthenticated()
}

func CanFollow(actor *models.Actor) bool {
	return actor.IsAuthenticated()
}
