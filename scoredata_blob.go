package mertio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/hupe1980/mertio/blobstore"
	"github.com/hupe1980/mertio/codec"
	"github.com/hupe1980/mertio/internal/compress"
)

// CatalogName is the manifest blob written under the prefix by SaveBlob.
const CatalogName = "catalog.json"

// Catalog lists the blobs of a saved ScoreData in group order.
type Catalog struct {
	Codec      string         `json:"codec"`
	MetricType string         `json:"metric_type"`
	Binary     bool           `json:"binary"`
	Entries    []CatalogEntry `json:"entries"`
}

// CatalogEntry describes one saved ScoreArray.
type CatalogEntry struct {
	Group   string `json:"group"`
	Blob    string `json:"blob"`
	Records int    `json:"records"`
	Arity   int    `json:"arity"`
}

// emptyGroupBlob names the blob of the empty group index. url.PathEscape
// always escapes a literal '%', so no other group can map to it.
const emptyGroupBlob = "%"

// blobName returns a per-group blob name. Group indices may contain slashes
// or be empty; the mapping is injective.
func blobName(group string, c compress.Type) string {
	name := url.PathEscape(group)
	if name == "" {
		name = emptyGroupBlob
	}
	return name + ".scores" + c.Ext()
}

// SaveBlob writes one blob per group under prefix, then the catalog. The
// catalog is written last so a reader never sees entries without data.
func (d *ScoreData) SaveBlob(ctx context.Context, store blobstore.BlobStore, prefix string, binary bool) error {
	cat := Catalog{
		Codec:      d.opts.codec.Name(),
		MetricType: d.metricType,
		Binary:     binary,
	}

	if err := d.validate(binary); err != nil {
		return err
	}

	seen := make(map[string]string, len(d.arrays))
	for _, a := range d.arrays {
		name := blobName(a.GroupIndex(), d.opts.compression)
		if other, dup := seen[name]; dup {
			return fmt.Errorf("%w: groups %q and %q both map to %s", ErrDuplicateBlob, other, a.GroupIndex(), name)
		}
		seen[name] = a.GroupIndex()
	}

	for _, a := range d.arrays {
		name := blobName(a.GroupIndex(), d.opts.compression)
		if err := a.SaveBlob(ctx, store, path.Join(prefix, name), d.metricType, binary); err != nil {
			return fmt.Errorf("mertio: save group %q: %w", a.GroupIndex(), err)
		}
		cat.Entries = append(cat.Entries, CatalogEntry{
			Group:   a.GroupIndex(),
			Blob:    name,
			Records: a.Size(),
			Arity:   a.NumberOfScores(),
		})
	}

	data, err := d.opts.codec.Marshal(cat)
	if err != nil {
		return err
	}
	return store.Put(ctx, path.Join(prefix, CatalogName), data)
}

// LoadBlob reads the catalog under prefix and loads every listed blob.
func (d *ScoreData) LoadBlob(ctx context.Context, store blobstore.BlobStore, prefix string) error {
	cat, err := ReadCatalog(ctx, store, prefix)
	if err != nil {
		return err
	}
	if d.metricType == "" {
		d.metricType = cat.MetricType
	}

	for _, e := range cat.Entries {
		name := path.Join(prefix, e.Blob)
		a := NewScoreArray(d.optFns...)
		if err := a.LoadBlob(ctx, store, name); err != nil {
			return fmt.Errorf("mertio: load group %q: %w", e.Group, err)
		}
		if a.Size() != e.Records {
			d.opts.logger.WithPath(name).WarnContext(ctx, "record count differs from catalog",
				"group", e.Group,
				"catalog", e.Records,
				"loaded", a.Size(),
			)
		}
		if a.Size() == 0 {
			// Empty arrays are stored as empty blobs without a header.
			a.SetGroupIndex(e.Group)
			a.SetNumberOfScores(e.Arity)
		}
		d.Add(a)
	}
	return nil
}

// ReadCatalog decodes the catalog under prefix with the codec it names and
// checks that groups and blob names are unique.
func ReadCatalog(ctx context.Context, store blobstore.BlobStore, prefix string) (*Catalog, error) {
	blob, err := store.Open(ctx, path.Join(prefix, CatalogName))
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data := make([]byte, blob.Size())
	if len(data) > 0 {
		if _, err := blob.ReadAt(ctx, data, 0); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	var cat Catalog
	if _, err := codec.Decode(data, &cat); err != nil {
		return nil, fmt.Errorf("mertio: decode catalog: %w", err)
	}

	groups := make(map[string]bool, len(cat.Entries))
	blobs := make(map[string]bool, len(cat.Entries))
	for _, e := range cat.Entries {
		if groups[e.Group] || blobs[e.Blob] {
			return nil, fmt.Errorf("%w: group %q or blob %s listed twice", ErrDuplicateBlob, e.Group, e.Blob)
		}
		groups[e.Group] = true
		blobs[e.Blob] = true
	}
	return &cat, nil
}
