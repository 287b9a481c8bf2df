package models

import "time"

// Checklist is the top-level shareable entity. The author is immutable after
// creation; IsPublic is toggleable by the owner and grants read-only access to
// anyone while set.
type Checklist struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Title     string    `json:"title" dynamodbav:"title"`
	Author    string    `json:"author" dynamodbav:"author"`
	IsPublic  bool      `json:"isPublic" dynamodbav:"isPublic"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Section groups items within a checklist. ChecklistID is a back-reference
// only; ownership is always resolved through the parent checklist.
type Section struct {
	ID          string    `json:"id" dynamodbav:"id"`
	ChecklistID string    `json:"checklistId" dynamodbav:"checklistId"`
	Title       string    `json:"title" dynamodbav:"title"`
	Position    int       `json:"position" dynamodbav:"position"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Item is a single checkable entry. Same back-reference pattern as Section,
// one level deeper: authorization walks item -> section -> checklist.
type Item struct {
	ID        string    `json:"id" dynamodbav:"id"`
	SectionID string    `json:"sectionId" dynamodbav:"sectionId"`
	Title     string    `json:"title" dynamodbav:"title"`
	Done      bool      `json:"done" dynamodbav:"done"`
	Position  int       `json:"position" dynamodbav:"position"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}
