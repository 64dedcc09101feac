package reconciler_test

import (
	"context"
	"fmt"
	"slices"

	"github.com/agentstation/boorusync/pkg/catalogs"
	"github.com/agentstation/boorusync/pkg/errors"
)

// fakeTarget records every write and keeps a tiny in-memory catalog.
type fakeTarget struct {
	nextID int

	categories []catalogs.Category
	tags       []catalogs.Tag
	attached   map[int][]string
	sources    map[int][]string

	createdCategories []string
	createdTags       []string
	updatedTags       []string
	attachCalls       []string
	sourceReads       int
	sourceWrites      [][]string

	// conflictOnAttach makes AddTagToPost report "already attached".
	conflictOnAttach bool
	failCreateTag    error
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{
		nextID:   100,
		attached: make(map[int][]string),
		sources:  make(map[int][]string),
	}
}

func (f *fakeTarget) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeTarget) CreateCategory(_ context.Context, name, color string, order int) (catalogs.Category, error) {
	c := catalogs.Category{ID: f.id(), Name: name, Color: color, Order: order}
	f.categories = append(f.categories, c)
	f.createdCategories = append(f.createdCategories, name)
	return c, nil
}

func (f *fakeTarget) CreateTag(_ context.Context, name string, categoryID *int) (catalogs.Tag, error) {
	if f.failCreateTag != nil {
		return catalogs.Tag{}, f.failCreateTag
	}
	t := catalogs.Tag{ID: f.id(), Name: name, CategoryID: categoryID}
	f.tags = append(f.tags, t)
	f.createdTags = append(f.createdTags, name)
	return t, nil
}

func (f *fakeTarget) UpdateTag(_ context.Context, id int, name string, categoryID *int) (catalogs.Tag, error) {
	f.updatedTags = append(f.updatedTags, fmt.Sprintf("%s->%s", name, catalogs.FormatCategoryID(categoryID)))
	return catalogs.Tag{ID: id, Name: name, CategoryID: categoryID}, nil
}

func (f *fakeTarget) AddTagToPost(_ context.Context, postID int, tagName string) (bool, error) {
	f.attachCalls = append(f.attachCalls, tagName)
	if f.conflictOnAttach || slices.Contains(f.attached[postID], tagName) {
		return false, nil
	}
	f.attached[postID] = append(f.attached[postID], tagName)
	return true, nil
}

func (f *fakeTarget) PostSources(_ context.Context, postID int) ([]string, error) {
	f.sourceReads++
	return slices.Clone(f.sources[postID]), nil
}

func (f *fakeTarget) SetPostSources(_ context.Context, postID int, sources []string) error {
	f.sourceWrites = append(f.sourceWrites, slices.Clone(sources))
	f.sources[postID] = slices.Clone(sources)
	return nil
}

// writes counts every mutating call.
func (f *fakeTarget) writes() int {
	return len(f.createdCategories) + len(f.createdTags) + len(f.updatedTags) + len(f.attachCalls) + len(f.sourceWrites)
}

// postTags renders what is attached to postID as post tags.
func (f *fakeTarget) postTags(postID int) []catalogs.PostTag {
	var out []catalogs.PostTag
	for _, name := range f.attached[postID] {
		out = append(out, catalogs.PostTag{Name: name})
	}
	return out
}

var errBoom = errors.New("boom")

