// Package models defines the client-side domain types: chat messages with a
// closed body union, pending-operation drafts, expenses and filters.
package models

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// BodyKind discriminates the message body union.
type BodyKind string

const (
	BodyText         BodyKind = "text"
	BodyImage        BodyKind = "image"
	BodyConfirmation BodyKind = "confirmation"
	BodyQueryResult  BodyKind = "query_result"
)

// Body is the closed set of message payloads. A message carries exactly one
// body and its kind never changes after creation.
type Body interface {
	Kind() BodyKind
}

// Message is one chat turn. The ID is assigned by the backend; outgoing
// messages carry a client-local placeholder until the server acknowledges.
type Message struct {
	ID        string
	Sender    Sender
	Timestamp string
	Body      Body
}

// TextBody is a plain text turn.
type TextBody struct {
	Text string
}

func (TextBody) Kind() BodyKind { return BodyText }

// ImageBody references an uploaded image.
type ImageBody struct {
	URL string
}

func (ImageBody) Kind() BodyKind { return BodyImage }

// ConfirmationBody is a bot turn proposing a pending expense operation.
// Draft is the read-only historical snapshot; the editable working copy
// lives in the conversation engine's pending context.
type ConfirmationBody struct {
	Text        string
	RequestType RequestType
	Draft       Draft
}

func (ConfirmationBody) Kind() BodyKind { return BodyConfirmation }

// QueryResultBody carries one page of a filtered expense search. The filter
// that produced it is retained so further pages reuse the same parameters.
type QueryResultBody struct {
	Text         string
	Items        []Expense
	Page         int
	TotalPages   int
	TotalRecords int
	Filter       ExpenseFilter
}

func (QueryResultBody) Kind() BodyKind { return BodyQueryResult }
