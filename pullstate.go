package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gravitational/trace"
	"github.com/peterbourgon/diskv/v3"
)

const (
	// stateCacheSizeMaxBytes max memory cache for the state store
	stateCacheSizeMaxBytes = 1024

	// lastPullPrefix is the last pull time key prefix
	lastPullPrefix = "last_pull"
)

// PullState remembers when translations were last pulled from each
// instance and project.
type PullState struct {
	// dv is a diskv instance
	dv *diskv.Diskv
}

// NewPullState creates the state repository under the given directory.
func NewPullState(dir string) (*PullState, error) {
	// Simplest transform function: put all the data files into the base dir.
	flatTransform := func(s string) []string { return []string{} }

	dv := diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    flatTransform,
		CacheSizeMax: stateCacheSizeMaxBytes,
	})

	return &PullState{dv: dv}, nil
}

// LastPull returns the recorded pull time, nil when none was recorded yet.
func (s *PullState) LastPull(host string, projectID int64) (*time.Time, error) {
	key := pullKey(host, projectID)
	if !s.dv.Has(key) {
		return nil, nil
	}

	b, err := s.dv.Read(key)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	t, err := time.Parse(time.RFC3339, string(b))
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &t, nil
}

// SetLastPull records the pull time.
func (s *PullState) SetLastPull(host string, projectID int64, t time.Time) error {
	value := t.Truncate(time.Second).Format(time.RFC3339)
	return trace.Wrap(s.dv.Write(pullKey(host, projectID), []byte(value)))
}

func pullKey(host string, projectID int64) string {
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.NewReplacer(":", "_", "/", "_").Replace(host)
	return fmt.Sprintf("%v_%v_%v", lastPullPrefix, host, projectID)
}
