package domain

import "errors"

var ErrInvalidEvent = errors.New("invalid ringing event")

// RingingEvent is emitted by the PBX proxy when an extension starts ringing.
type RingingEvent struct {
	Channel          string          `json:"channel"`
	DialingExtension string          `json:"dialingExten"`
	CallerIdentity   *CallerIdentity `json:"callerIdentity"`
}

type CallerIdentity struct {
	CallerNum         string             `json:"callerNum"`
	CallerName        string             `json:"callerName"`
	NumCalled         string             `json:"numCalled"`
	PhonebookContacts *PhonebookContacts `json:"pbContacts,omitempty"`
}

// PhonebookContacts are the address book matches the PBX proxy attached to
// the caller number.
type PhonebookContacts struct {
	Centralized []Contact `json:"centralized,omitempty"`
	Internal    []Contact `json:"nethcti,omitempty"`
}

type ContactType string

const (
	ContactPrivate ContactType = "private"
	ContactPublic  ContactType = "public"
)

type Contact struct {
	OwnerID string      `json:"owner_id,omitempty"`
	Type    ContactType `json:"type,omitempty"`
	Name    string      `json:"name,omitempty"`
	Company string      `json:"company,omitempty"`
	Number  string      `json:"number,omitempty"`
}

// Validate rejects events that cannot be dispatched.
func (e RingingEvent) Validate() error {
	switch {
	case e.Channel == "":
		return errors.Join(ErrInvalidEvent, errors.New("missing channel"))
	case e.DialingExtension == "":
		return errors.Join(ErrInvalidEvent, errors.New("missing dialing extension"))
	case e.CallerIdentity == nil:
		return errors.Join(ErrInvalidEvent, errors.New("missing caller identity"))
	case e.CallerIdentity.CallerNum == "":
		return errors.Join(ErrInvalidEvent, errors.New("missing caller number"))
	}
	return nil
}

// NotificationID is used by clients to replace an existing popup for the same call.
func (e RingingEvent) NotificationID() string {
	return e.CallerIdentity.NumCalled + "<-" + e.CallerIdentity.CallerNum
}
