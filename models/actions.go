package models

// Wire types for the Solana Actions protocol. Field names and shapes follow
// the published actions spec so any blink client can consume the responses.

// ActionGetResponse is the Discover (metadata) payload.
type ActionGetResponse struct {
	Title       string       `json:"title"`
	Icon        string       `json:"icon"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Label       string       `json:"label"`
	Links       *ActionLinks `json:"links,omitempty"`
}

// ActionLinks wraps the selectable follow-up actions of a metadata payload.
type ActionLinks struct {
	Actions []LinkedAction `json:"actions"`
}

// LinkedAction describes one selectable action with its parameter schema.
type LinkedAction struct {
	Type       string            `json:"type"`
	Label      string            `json:"label"`
	Href       string            `json:"href"`
	Parameters []ActionParameter `json:"parameters,omitempty"`
}

// ActionParameter is one field of a discovery schema. Free-text parameters
// leave Type and Options empty; selectable ones set Type to "radio" or
// "select" and list Options.
type ActionParameter struct {
	Name     string                  `json:"name"`
	Label    string                  `json:"label"`
	Type     string                  `json:"type,omitempty"`
	Required bool                    `json:"required"`
	Options  []ActionParameterOption `json:"options,omitempty"`
}

// ActionParameterOption is one choice of a selectable parameter.
type ActionParameterOption struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected,omitempty"`
}

// ActionPostRequest is the body every POST phase receives. Signature is only
// present on next-action (confirm) calls, after the client has broadcast.
type ActionPostRequest struct {
	Account   string `json:"account"`
	Signature string `json:"signature,omitempty"`
}

// ActionPostResponse is the Propose payload: a base64 unsigned transaction
// plus an optional next-action link that carries all continuation state.
type ActionPostResponse struct {
	Type        string           `json:"type"`
	Transaction string           `json:"transaction"`
	Message     string           `json:"message,omitempty"`
	Links       *PostActionLinks `json:"links,omitempty"`
}

// PostActionLinks holds the follow-up link of a transaction proposal.
type PostActionLinks struct {
	Next *NextActionLink `json:"next,omitempty"`
}

// NextActionLink points at the endpoint that resumes the protocol once the
// proposed transaction is signed and broadcast.
type NextActionLink struct {
	Type string `json:"type"`
	Href string `json:"href"`
}

// CompletedAction is the terminal Confirm payload.
type CompletedAction struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ActionError is the protocol error shape. Every failure, typed or not, is
// normalized into this with a 400-class status.
type ActionError struct {
	Message string `json:"message"`
}
