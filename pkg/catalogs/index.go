package catalogs

// CategoryIndex is the in-memory record of the target catalog's categories,
// keyed by CanonicalKey. It is filled once from a full listing and then
// updated on every successful create; it is never re-read from the remote.
// It is not safe for concurrent use.
type CategoryIndex struct {
	byKey map[CanonicalKey]Category
}

// NewCategoryIndex builds an index from a full category listing. When the
// listing holds several categories with the same key, the last one wins.
func NewCategoryIndex(categories []Category) *CategoryIndex {
	idx := &CategoryIndex{byKey: make(map[CanonicalKey]Category, len(categories))}
	for _, c := range categories {
		idx.Put(c)
	}
	return idx
}

// Get returns the category whose name has the same key as name.
func (idx *CategoryIndex) Get(name string) (Category, bool) {
	c, ok := idx.byKey[Key(name)]
	return c, ok
}

// Put records c under its own name's key, replacing any previous entry.
func (idx *CategoryIndex) Put(c Category) {
	idx.PutAs(c.Name, c)
}

// PutAs records c under the key of name. The reconciler uses it so that a
// category stays reachable by the name it was requested under even if the
// remote normalized the stored name.
func (idx *CategoryIndex) PutAs(name string, c Category) {
	if k := Key(name); !k.IsZero() {
		idx.byKey[k] = c
	}
}

// Len returns the number of indexed categories.
func (idx *CategoryIndex) Len() int {
	return len(idx.byKey)
}

// TagIndex is the in-memory record of the target catalog's tags, with the
// same population and update rules as CategoryIndex.
type TagIndex struct {
	byKey map[CanonicalKey]Tag
}

// NewTagIndex builds an index from a full tag listing.
func NewTagIndex(tags []Tag) *TagIndex {
	idx := &TagIndex{byKey: make(map[CanonicalKey]Tag, len(tags))}
	for _, t := range tags {
		idx.Put(t)
	}
	return idx
}

// Get returns the tag whose name has the same key as name.
func (idx *TagIndex) Get(name string) (Tag, bool) {
	t, ok := idx.byKey[Key(name)]
	return t, ok
}

// Put records t under its own name's key, replacing any previous entry.
func (idx *TagIndex) Put(t Tag) {
	idx.PutAs(t.Name, t)
}

// PutAs records t under the key of name.
func (idx *TagIndex) PutAs(name string, t Tag) {
	if k := Key(name); !k.IsZero() {
		idx.byKey[k] = t
	}
}

// Len returns the number of indexed tags.
func (idx *TagIndex) Len() int {
	return len(idx.byKey)
}

// OriginCategories is the origin catalog's category metadata keyed by
// CanonicalKey, loaded once at startup.
type OriginCategories struct {
	byKey map[CanonicalKey]OriginCategory
}

// NewOriginCategories indexes categories, skipping those with a blank name.
func NewOriginCategories(categories []OriginCategory) *OriginCategories {
	oc := &OriginCategories{byKey: make(map[CanonicalKey]OriginCategory, len(categories))}
	for _, c := range categories {
		if k := Key(c.Name); !k.IsZero() {
			oc.byKey[k] = c
		}
	}
	return oc
}

// Lookup returns the origin metadata for the category named name.
func (oc *OriginCategories) Lookup(name string) (OriginCategory, bool) {
	if oc == nil {
		return OriginCategory{}, false
	}
	c, ok := oc.byKey[Key(name)]
	return c, ok
}

// Len returns the number of known origin categories.
func (oc *OriginCategories) Len() int {
	if oc == nil {
		return 0
	}
	return len(oc.byKey)
}
