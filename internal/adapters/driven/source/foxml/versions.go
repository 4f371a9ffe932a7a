package foxml

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

var _ driven.ObjectProcessor = (*objectProcessor)(nil)

// objectProcessor exposes one parsed FOXML object.
type objectProcessor struct {
	obj  *digitalObject
	http *http.Client
}

// Object returns the identity of the object.
func (p *objectProcessor) Object() domain.ObjectInfo {
	info := domain.ObjectInfo{PID: p.obj.PID}
	for _, prop := range p.obj.Properties {
		if prop.Name == vocabulary.Fedora3Label {
			info.Label = prop.Value
		}
	}
	return info
}

// dsEntry is a datastream version with its position in the datastream.
type dsEntry struct {
	ds      datastream
	version datastreamVersion
	created time.Time
	first   bool
	last    bool
}

// Versions groups datastream versions by creation instant.
func (p *objectProcessor) Versions(ctx context.Context) ([]domain.ObjectVersion, error) {
	info := p.Object()
	props := make([]domain.ObjectProperty, 0, len(p.obj.Properties))
	for _, prop := range p.obj.Properties {
		props = append(props, domain.ObjectProperty{Name: prop.Name, Value: prop.Value})
	}

	var entries []dsEntry
	for _, ds := range p.obj.Datastreams {
		dsEntries := make([]dsEntry, 0, len(ds.Versions))
		for _, v := range ds.Versions {
			created, err := time.Parse(time.RFC3339Nano, v.Created)
			if err != nil {
				return nil, fmt.Errorf("%w: %s has invalid CREATED %q", domain.ErrStructural, v.ID, v.Created)
			}
			dsEntries = append(dsEntries, dsEntry{ds: ds, version: v, created: created})
		}
		sort.SliceStable(dsEntries, func(i, j int) bool { return dsEntries[i].created.Before(dsEntries[j].created) })
		if n := len(dsEntries); n > 0 {
			dsEntries[0].first = true
			dsEntries[n-1].last = true
		}
		entries = append(entries, dsEntries...)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].created.Before(entries[j].created) })

	var versions []domain.ObjectVersion
	for i := 0; i < len(entries); {
		instant := entries[i].created
		version := domain.ObjectVersion{
			Object:       info,
			VersionDate:  entries[i].version.Created,
			VersionIndex: len(versions) + 1,
			Properties:   props,
		}
		for ; i < len(entries) && entries[i].created.Equal(instant); i++ {
			version.ChangedDatastreams = append(version.ChangedDatastreams, p.datastreamVersion(ctx, entries[i]))
		}
		versions = append(versions, version)
	}

	if len(versions) == 0 {
		// An object without datastreams still has its properties migrated.
		versions = append(versions, domain.ObjectVersion{Object: info, VersionIndex: 1, Properties: props})
	}
	versions[0].IsFirst = true
	versions[len(versions)-1].IsLast = true
	return versions, nil
}

// datastreamVersion converts an entry to its domain form.
func (p *objectProcessor) datastreamVersion(ctx context.Context, e dsEntry) domain.DatastreamVersion {
	v := domain.DatastreamVersion{
		DatastreamID:  e.ds.ID,
		VersionID:     e.version.ID,
		ControlGroup:  domain.ControlGroup(e.ds.ControlGroup),
		State:         e.ds.State,
		MIMEType:      e.version.MIMEType,
		Created:       e.version.Created,
		Label:         e.version.Label,
		FormatURI:     e.version.FormatURI,
		FirstInObject: e.first,
		LastInObject:  e.last,
	}

	switch {
	case e.version.XMLContent != nil:
		inner := e.version.XMLContent.Inner
		v.Open = func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(strings.TrimSpace(inner))), nil
		}
	case e.version.BinaryContent != nil:
		encoded := strings.Join(strings.Fields(*e.version.BinaryContent), "")
		v.Open = func() (io.ReadCloser, error) {
			return io.NopCloser(base64.NewDecoder(base64.StdEncoding, strings.NewReader(encoded))), nil
		}
	case e.version.ContentLocation != nil:
		loc := *e.version.ContentLocation
		if loc.Type == "URL" {
			v.ExternalOrRedirectURL = loc.Ref
			v.Open = func() (io.ReadCloser, error) { return p.fetch(ctx, loc.Ref) }
		} else {
			v.Open = func() (io.ReadCloser, error) {
				return nil, fmt.Errorf("%w: content location type %q of %s", domain.ErrNoContent, loc.Type, e.version.ID)
			}
		}
	}
	return v
}

// fetch retrieves URL content. The body is buffered so that a failure
// surfaces when the content is opened.
func (p *objectProcessor) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}
