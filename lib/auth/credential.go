package auth

import (
	"time"

	"github.com/gravitational/trace"
)

const (
	// kindPersonalToken marks an instance-wide personal access token
	kindPersonalToken = "PAT"

	// kindProjectAPIKey marks a key scoped to a single project
	kindProjectAPIKey = "PAK"
)

// NoProject is the project id sentinel meaning "not scoped to any project".
const NoProject int64 = -1

// ProjectRef identifies the project a key belongs to.
type ProjectRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Credential is a stored secret for one remote instance. It is a closed
// union: the only implementations are PersonalToken and ProjectAPIKey.
type Credential interface {
	// APIKey returns the secret sent in the x-api-key header
	APIKey() string

	// ExpiresAt returns the expiry as epoch milliseconds, 0 meaning never
	ExpiresAt() int64

	// replaces reports whether saving the receiver must evict other
	replaces(other Credential) bool
}

// PersonalToken is valid for any project on its instance.
type PersonalToken struct {
	Key      string
	Username string
	Expires  int64
}

func (t PersonalToken) APIKey() string   { return t.Key }
func (t PersonalToken) ExpiresAt() int64 { return t.Expires }

// A new PAT evicts any PAT stored for the same instance.
func (t PersonalToken) replaces(other Credential) bool {
	_, ok := other.(PersonalToken)
	return ok
}

// ProjectAPIKey is valid for exactly one project on its instance.
type ProjectAPIKey struct {
	Key      string
	Username string
	Project  ProjectRef
	Expires  int64
}

func (k ProjectAPIKey) APIKey() string   { return k.Key }
func (k ProjectAPIKey) ExpiresAt() int64 { return k.Expires }

// A new PAK evicts only the PAK stored for the same project.
func (k ProjectAPIKey) replaces(other Credential) bool {
	o, ok := other.(ProjectAPIKey)
	return ok && o.Project.ID == k.Project.ID
}

// expired reports whether cred is past its expiry at the given moment.
func expired(cred Credential, now time.Time) bool {
	expires := cred.ExpiresAt()
	return expires != 0 && expires < now.UnixMilli()
}

// credentialRecord is the persisted form of a Credential.
type credentialRecord struct {
	Type     string      `json:"type"`
	Key      string      `json:"key"`
	Username string      `json:"username"`
	Project  *ProjectRef `json:"project,omitempty"`
	Expires  int64       `json:"expires"`
}

func encodeCredential(cred Credential) (credentialRecord, error) {
	switch c := cred.(type) {
	case PersonalToken:
		return credentialRecord{
			Type:     kindPersonalToken,
			Key:      c.Key,
			Username: c.Username,
			Expires:  c.Expires,
		}, nil
	case ProjectAPIKey:
		project := c.Project
		return credentialRecord{
			Type:     kindProjectAPIKey,
			Key:      c.Key,
			Username: c.Username,
			Project:  &project,
			Expires:  c.Expires,
		}, nil
	default:
		return credentialRecord{}, trace.BadParameter("unsupported credential type %T", cred)
	}
}

func (r credentialRecord) decode() (Credential, error) {
	switch r.Type {
	case kindPersonalToken:
		return PersonalToken{
			Key:      r.Key,
			Username: r.Username,
			Expires:  r.Expires,
		}, nil
	case kindProjectAPIKey:
		if r.Project == nil {
			return nil, trace.BadParameter("project api key record has no project")
		}
		return ProjectAPIKey{
			Key:      r.Key,
			Username: r.Username,
			Project:  *r.Project,
			Expires:  r.Expires,
		}, nil
	default:
		return nil, trace.BadParameter("unknown credential type %q", r.Type)
	}
}
