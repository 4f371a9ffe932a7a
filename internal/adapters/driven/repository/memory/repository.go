// Package memory provides an in-process target repository.
//
// It applies deltas with the same semantics as a SPARQL update sent to the
// repository: the remove-set is one conjunctive DELETE WHERE and the
// insert-set is INSERT DATA with fresh blank nodes per request. It backs dry
// runs and tests.
package memory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
)

// ResourceKind is the type of a stored resource.
type ResourceKind string

const (
	KindContainer ResourceKind = "container"
	KindBinary    ResourceKind = "binary"
	KindRedirect  ResourceKind = "redirect"
)

// Version is an immutable snapshot of a resource.
type Version struct {
	Label   string
	Triples []domain.Triple
	Content []byte
}

// ResourceState is a copy of a stored resource.
type ResourceState struct {
	Path        string
	Kind        ResourceKind
	MIMEType    string
	RedirectURL string
	Content     []byte
	Triples     []domain.Triple
	Versions    []Version
}

// Operation is one call recorded by the repository.
type Operation struct {
	Method string
	Path   string
}

// Ensure Repository implements the interface.
var _ driven.TargetRepository = (*Repository)(nil)

// Repository is an in-memory implementation of driven.TargetRepository.
type Repository struct {
	mu        sync.RWMutex
	resources map[string]*ResourceState
	ops       []Operation
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		resources: make(map[string]*ResourceState),
	}
}

// CreateObject creates a container resource at path.
func (r *Repository) CreateObject(_ context.Context, path string) (driven.ObjectResource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[path]; ok {
		return nil, fmt.Errorf("create %s: %w", path, domain.ErrAlreadyExists)
	}
	r.resources[path] = &ResourceState{Path: path, Kind: KindContainer}
	r.record("PUT", path)
	return &objectHandle{handle{repo: r, path: path}}, nil
}

// CreateDatastream creates a binary resource at path holding content.
func (r *Repository) CreateDatastream(_ context.Context, path string, content domain.Content) (driven.DatastreamResource, error) {
	body, err := readContent(content)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[path]; ok {
		return nil, fmt.Errorf("create %s: %w", path, domain.ErrAlreadyExists)
	}
	r.resources[path] = &ResourceState{Path: path, Kind: KindBinary, MIMEType: content.MIMEType, Content: body}
	r.record("PUT", path)
	return &datastreamHandle{handle{repo: r, path: path}}, nil
}

// CreateOrUpdateRedirectDatastream creates or replaces a redirect at path.
func (r *Repository) CreateOrUpdateRedirectDatastream(_ context.Context, path, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resources[path]
	if !ok {
		res = &ResourceState{Path: path}
		r.resources[path] = res
	}
	res.Kind = KindRedirect
	res.RedirectURL = url
	res.Content = nil
	r.record("PUT", path)
	return nil
}

// Resource returns a copy of the resource at path.
func (r *Repository) Resource(path string) (*ResourceState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[path]
	if !ok {
		return nil, fmt.Errorf("resource %s: %w", path, domain.ErrNotFound)
	}
	return res.clone(), nil
}

// Paths returns the paths of all resources in lexical order.
func (r *Repository) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.resources))
	for p := range r.resources {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Operations returns every call recorded so far in order.
func (r *Repository) Operations() []Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Operation(nil), r.ops...)
}

// record appends an operation. Callers hold the write lock.
func (r *Repository) record(method, path string) {
	r.ops = append(r.ops, Operation{Method: method, Path: path})
}

// lookup returns the live resource at path. Callers hold the lock.
func (r *Repository) lookup(path string) (*ResourceState, error) {
	res, ok := r.resources[path]
	if !ok {
		return nil, fmt.Errorf("resource %s: %w", path, domain.ErrNotFound)
	}
	return res, nil
}

func (s *ResourceState) clone() *ResourceState {
	c := *s
	c.Content = append([]byte(nil), s.Content...)
	c.Triples = append([]domain.Triple(nil), s.Triples...)
	c.Versions = make([]Version, len(s.Versions))
	for i, v := range s.Versions {
		c.Versions[i] = Version{
			Label:   v.Label,
			Triples: append([]domain.Triple(nil), v.Triples...),
			Content: append([]byte(nil), v.Content...),
		}
	}
	return &c
}

func readContent(content domain.Content) ([]byte, error) {
	if content.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(content.Body)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return body, nil
}

// handle is the state shared by object and datastream handles.
type handle struct {
	repo *Repository
	path string
}

// Path returns the resource path.
func (h *handle) Path() string { return h.path }

// UpdateProperties applies delta to the resource's triples.
func (h *handle) UpdateProperties(_ context.Context, delta *domain.Delta) error {
	h.repo.mu.Lock()
	defer h.repo.mu.Unlock()
	res, err := h.repo.lookup(h.path)
	if err != nil {
		return err
	}

	res.Triples = deleteWhere(res.Triples, delta.Removes())
	res.Triples = insertData(res.Triples, delta.Inserts())
	h.repo.record("PATCH", h.path)
	return nil
}

// objectHandle is a container in the repository.
type objectHandle struct {
	handle
}

var _ driven.ObjectResource = (*objectHandle)(nil)

// CreateVersionSnapshot captures the resource's current state under label.
// Labels are unique per resource.
func (o *objectHandle) CreateVersionSnapshot(_ context.Context, label string) error {
	o.repo.mu.Lock()
	defer o.repo.mu.Unlock()
	res, err := o.repo.lookup(o.path)
	if err != nil {
		return err
	}
	for _, v := range res.Versions {
		if v.Label == label {
			return fmt.Errorf("version %s of %s: %w", label, o.path, domain.ErrAlreadyExists)
		}
	}

	res.Versions = append(res.Versions, Version{
		Label:   label,
		Triples: append([]domain.Triple(nil), res.Triples...),
		Content: append([]byte(nil), res.Content...),
	})
	o.repo.record("POST", o.path+"/fcr:versions")
	return nil
}

// datastreamHandle is a binary in the repository.
type datastreamHandle struct {
	handle
}

var _ driven.DatastreamResource = (*datastreamHandle)(nil)

// UpdateContent replaces the binary content.
func (d *datastreamHandle) UpdateContent(_ context.Context, content domain.Content) error {
	body, err := readContent(content)
	if err != nil {
		return err
	}

	d.repo.mu.Lock()
	defer d.repo.mu.Unlock()
	res, err := d.repo.lookup(d.path)
	if err != nil {
		return err
	}
	res.Content = body
	if content.MIMEType != "" {
		res.MIMEType = content.MIMEType
	}
	d.repo.record("PUT", d.path)
	return nil
}

// deleteWhere removes every instantiation of patterns over all solutions
// that match every pattern at once. Patterns sharing no variables are solved
// independently: the full solution set is the product of the groups, so it
// is empty when any group has no solution and otherwise deletes the union of
// each group's matches.
func deleteWhere(graph, patterns []domain.Triple) []domain.Triple {
	if len(patterns) == 0 {
		return graph
	}

	doomed := make(map[domain.Triple]bool)
	for _, group := range groupPatterns(patterns) {
		solutions := solve(graph, group, map[string]domain.Term{})
		if len(solutions) == 0 {
			return graph
		}
		for _, binding := range solutions {
			for _, p := range group {
				doomed[instantiate(p, binding)] = true
			}
		}
	}

	kept := graph[:0:0]
	for _, t := range graph {
		if !doomed[t] {
			kept = append(kept, t)
		}
	}
	return kept
}

// groupPatterns partitions patterns into groups connected by shared
// variables, keeping pattern order within each group.
func groupPatterns(patterns []domain.Triple) [][]domain.Triple {
	parent := make([]int, len(patterns))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	owner := make(map[string]int)
	for i, p := range patterns {
		for _, term := range [3]domain.Term{p.Subject, p.Predicate, p.Object} {
			if term.Kind != domain.TermVariable {
				continue
			}
			if j, ok := owner[term.Value]; ok {
				parent[find(i)] = find(j)
			} else {
				owner[term.Value] = i
			}
		}
	}

	index := make(map[int]int)
	var groups [][]domain.Triple
	for i, p := range patterns {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], p)
	}
	return groups
}

// solve returns every variable binding under which all patterns match graph.
func solve(graph, patterns []domain.Triple, binding map[string]domain.Term) []map[string]domain.Term {
	if len(patterns) == 0 {
		solution := make(map[string]domain.Term, len(binding))
		for k, v := range binding {
			solution[k] = v
		}
		return []map[string]domain.Term{solution}
	}

	var solutions []map[string]domain.Term
	for _, t := range graph {
		next, ok := match(patterns[0], t, binding)
		if ok {
			solutions = append(solutions, solve(graph, patterns[1:], next)...)
		}
	}
	return solutions
}

// match unifies pattern with t, returning the extended binding.
func match(pattern, t domain.Triple, binding map[string]domain.Term) (map[string]domain.Term, bool) {
	next := binding
	copied := false
	for _, pair := range [3][2]domain.Term{
		{pattern.Subject, t.Subject},
		{pattern.Predicate, t.Predicate},
		{pattern.Object, t.Object},
	} {
		p, v := pair[0], pair[1]
		if p.Kind != domain.TermVariable {
			if p != v {
				return nil, false
			}
			continue
		}
		if bound, ok := next[p.Value]; ok {
			if bound != v {
				return nil, false
			}
			continue
		}
		if !copied {
			next = make(map[string]domain.Term, len(binding)+1)
			for k, val := range binding {
				next[k] = val
			}
			copied = true
		}
		next[p.Value] = v
	}
	return next, true
}

func instantiate(pattern domain.Triple, binding map[string]domain.Term) domain.Triple {
	resolve := func(t domain.Term) domain.Term {
		if t.Kind == domain.TermVariable {
			return binding[t.Value]
		}
		return t
	}
	return domain.Triple{
		Subject:   resolve(pattern.Subject),
		Predicate: resolve(pattern.Predicate),
		Object:    resolve(pattern.Object),
	}
}

// insertData adds triples, giving each blank label of the request a fresh
// node. Triples already present are not duplicated.
func insertData(graph, triples []domain.Triple) []domain.Triple {
	fresh := make(map[string]domain.Term)
	relabel := func(t domain.Term) domain.Term {
		if t.Kind != domain.TermBlank {
			return t
		}
		if b, ok := fresh[t.Value]; ok {
			return b
		}
		b := domain.Blank(uuid.New().String())
		fresh[t.Value] = b
		return b
	}

	present := make(map[domain.Triple]bool, len(graph))
	for _, t := range graph {
		present[t] = true
	}
	for _, t := range triples {
		t = domain.Triple{Subject: relabel(t.Subject), Predicate: t.Predicate, Object: relabel(t.Object)}
		if present[t] {
			continue
		}
		present[t] = true
		graph = append(graph, t)
	}
	return graph
}
