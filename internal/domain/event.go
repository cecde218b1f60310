package domain

import (
	"github.com/google/uuid"
)

type EventKind string

const (
	EventCommentCreated   EventKind = "CommentCreated"
	EventProjectApproved  EventKind = "ProjectApproved"
	EventProjectRejected  EventKind = "ProjectRejected"
	EventProjectSubmitted EventKind = "ProjectSubmitted"
	EventReactionAdded    EventKind = "ReactionAdded"
)

// EventKinds lists every DomainEvent variant.
var EventKinds = []EventKind{
	EventCommentCreated,
	EventProjectApproved,
	EventProjectRejected,
	EventProjectSubmitted,
	EventReactionAdded,
}

// DomainEvent is a closed set of variants: only the types in this file
// implement it. Variants are passed by value and never mutated after
// construction.
type DomainEvent interface {
	Kind() EventKind
	// Recipient is the user the resulting notification is addressed to.
	Recipient() uuid.UUID
	sealed()
}

type CommentCreated struct {
	ProjectID     uuid.UUID
	CommentID     uuid.UUID
	OwnerID       uuid.UUID
	OwnerRole     UserRole
	CommentText   string
	CommenterName string
}

type ProjectApproved struct {
	ProjectID    uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	ApproverName string
}

type ProjectRejected struct {
	ProjectID    uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	RejectorName string
	Reason       string
}

type ProjectSubmitted struct {
	ProjectID    uuid.UUID
	ApproverID   uuid.UUID
	OwnerName    string
	Title        string
	ApproverName string
	// SelfApproved is set when an admin published their own project.
	SelfApproved bool
}

type ReactionAdded struct {
	ProjectID   uuid.UUID
	OwnerID     uuid.UUID
	ReactionID  uuid.UUID
	Title       string
	ReactorName string
}

func (CommentCreated) Kind() EventKind   { return EventCommentCreated }
func (ProjectApproved) Kind() EventKind  { return EventProjectApproved }
func (ProjectRejected) Kind() EventKind  { return EventProjectRejected }
func (ProjectSubmitted) Kind() EventKind { return EventProjectSubmitted }
func (ReactionAdded) Kind() EventKind    { return EventReactionAdded }

func (e CommentCreated) Recipient() uuid.UUID   { return e.OwnerID }
func (e ProjectApproved) Recipient() uuid.UUID  { return e.OwnerID }
func (e ProjectRejected) Recipient() uuid.UUID  { return e.OwnerID }
func (e ProjectSubmitted) Recipient() uuid.UUID { return e.ApproverID }
func (e ReactionAdded) Recipient() uuid.UUID    { return e.OwnerID }

func (CommentCreated) sealed()   {}
func (ProjectApproved) sealed()  {}
func (ProjectRejected) sealed()  {}
func (ProjectSubmitted) sealed() {}
func (ReactionAdded) sealed()    {}
