package auth

import (
	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"

	"github.com/phraselab/phraselab-cli/lib/logger"
)

// Resolver is the policy layer on top of a Store: it owns credential
// selection priority, identity-based replacement on save, and expiry
// pruning. The store underneath holds no policy at all.
type Resolver struct {
	store Store
	clock clockwork.Clock
}

// NewResolver returns a resolver over the given store using the real clock.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store, clock: clockwork.NewRealClock()}
}

// NewResolverWithClock is used by tests to control expiry.
func NewResolverWithClock(store Store, clock clockwork.Clock) *Resolver {
	return &Resolver{store: store, clock: clock}
}

// SaveCredential stores cred for the given instance, silently evicting the
// previous credential of the same identity: the stored PAT for a PAT, the
// stored PAK of the same project for a PAK.
func (r *Resolver) SaveCredential(instance string, cred Credential) error {
	host, err := NormalizeHost(instance)
	if err != nil {
		return trace.Wrap(err)
	}

	doc, err := r.store.Load()
	if err != nil {
		return trace.Wrap(err)
	}

	kept := make([]Credential, 0, len(doc[host])+1)
	for _, existing := range doc[host] {
		if cred.replaces(existing) {
			continue
		}
		kept = append(kept, existing)
	}
	doc[host] = append(kept, cred)

	return trace.Wrap(r.store.Save(doc))
}

// ResolveKey returns the API key to use against the given instance and
// project. A valid PAT always wins, whatever the requested project; with no
// PAT, the PAK matching projectID is used. A miss is a trace.NotFound, not
// a failure: callers decide whether to prompt for a login.
//
// Expired credentials encountered on the way are pruned and the pruned
// document is written back, so the expiry of a stored secret is durable
// after the first resolution that observes it.
func (r *Resolver) ResolveKey(instance string, projectID int64) (string, error) {
	host, err := NormalizeHost(instance)
	if err != nil {
		return "", trace.Wrap(err)
	}

	doc, err := r.store.Load()
	if err != nil {
		return "", trace.Wrap(err)
	}

	now := r.clock.Now()
	valid := make([]Credential, 0, len(doc[host]))
	for _, cred := range doc[host] {
		if expired(cred, now) {
			continue
		}
		valid = append(valid, cred)
	}

	if len(valid) != len(doc[host]) {
		if len(valid) > 0 {
			doc[host] = valid
		} else {
			delete(doc, host)
		}
		// Resolution must not fail because the prune write-back did:
		// the caller still gets a usable key
		if err := r.store.Save(doc); err != nil {
			logger.Standard().WithError(err).Warn("Failed to prune expired credentials")
		}
	}

	for _, cred := range valid {
		if token, ok := cred.(PersonalToken); ok {
			return token.Key, nil
		}
	}
	if projectID != NoProject {
		for _, cred := range valid {
			if key, ok := cred.(ProjectAPIKey); ok && key.Project.ID == projectID {
				return key.Key, nil
			}
		}
	}

	return "", trace.NotFound("no stored credential for %v (project %v)", host, projectID)
}

// RemoveCredentials drops everything stored for the instance.
func (r *Resolver) RemoveCredentials(instance string) error {
	host, err := NormalizeHost(instance)
	if err != nil {
		return trace.Wrap(err)
	}

	doc, err := r.store.Load()
	if err != nil {
		return trace.Wrap(err)
	}
	if _, ok := doc[host]; !ok {
		return nil
	}
	delete(doc, host)

	return trace.Wrap(r.store.Save(doc))
}

// RemoveProjectCredential drops only the PAK stored for the given project,
// leaving the PAT and other projects' keys in place.
func (r *Resolver) RemoveProjectCredential(instance string, projectID int64) error {
	host, err := NormalizeHost(instance)
	if err != nil {
		return trace.Wrap(err)
	}

	doc, err := r.store.Load()
	if err != nil {
		return trace.Wrap(err)
	}

	kept := make([]Credential, 0, len(doc[host]))
	for _, cred := range doc[host] {
		if key, ok := cred.(ProjectAPIKey); ok && key.Project.ID == projectID {
			continue
		}
		kept = append(kept, cred)
	}
	if len(kept) == len(doc[host]) {
		return nil
	}
	if len(kept) > 0 {
		doc[host] = kept
	} else {
		delete(doc, host)
	}

	return trace.Wrap(r.store.Save(doc))
}
