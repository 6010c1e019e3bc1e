package filtering

import "github.com/spigell/profile-matcher/internal/matching"

// Subject is anything that can be matched against a profile.
type Subject interface {
	SubjectID() string
}

// Entry is a pool member and, once scored, its result.
type Entry struct {
	Subject Subject
	Result  *matching.Result
}

// Pool is an ordered set of subjects. Every operation keeps the pool order.
type Pool struct {
	Items []*Entry
}

// NewPool wraps the subjects in pool order.
func NewPool[S Subject](subjects []S) *Pool {
	p := &Pool{Items: make([]*Entry, 0, len(subjects))}
	for _, s := range subjects {
		p.Items = append(p.Items, &Entry{Subject: s})
	}
	return p
}

func (p *Pool) Len() int {
	return len(p.Items)
}

// IDs returns the subject IDs in pool order.
func (p *Pool) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, e := range p.Items {
		ids = append(ids, e.Subject.SubjectID())
	}
	return ids
}

// Keep drops every entry for which keep returns false and returns the dropped IDs.
func (p *Pool) Keep(keep func(*Entry) bool) []string {
	var dropped []string
	kept := p.Items[:0]
	for _, e := range p.Items {
		if keep(e) {
			kept = append(kept, e)
			continue
		}
		dropped = append(dropped, e.Subject.SubjectID())
	}
	clear(p.Items[len(kept):])
	p.Items = kept
	return dropped
}

// Exclude drops the entries whose subject ID is listed in targets.
func (p *Pool) Exclude(targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}

	return p.Keep(func(e *Entry) bool {
		_, found := set[e.Subject.SubjectID()]
		return !found
	})
}
