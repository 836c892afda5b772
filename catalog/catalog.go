// Package catalog models plugin marketplace catalogs: the marketplace.json
// index a marketplace publishes and the plugin.json manifest each plugin repo
// carries. Both file types are checked against embedded schema documents
// before being decoded into typed values.
package catalog

import (
	_ "embed"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	shapecheck "github.com/shapecheck/shapecheck"
)

// Conventional in-repo locations for both file types.
const (
	ManifestPath    = ".claude-plugin/plugin.json"
	MarketplacePath = ".claude-plugin/marketplace.json"
)

//go:embed plugin.schema.json
var manifestSchemaJSON []byte

//go:embed marketplace.schema.json
var marketplaceSchemaJSON []byte

var (
	manifestDoc    = sync.OnceValue(func() *shapecheck.Document { return mustLoad(manifestSchemaJSON) })
	marketplaceDoc = sync.OnceValue(func() *shapecheck.Document { return mustLoad(marketplaceSchemaJSON) })
)

func mustLoad(raw []byte) *shapecheck.Document {
	doc, err := shapecheck.LoadBytes(raw)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded schema is broken: %v", err))
	}
	return doc
}

// ManifestSchema returns the compiled plugin.json schema.
func ManifestSchema() *shapecheck.Document { return manifestDoc() }

// MarketplaceSchema returns the compiled marketplace.json schema.
func MarketplaceSchema() *shapecheck.Document { return marketplaceDoc() }

// Author identifies a plugin or marketplace author.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Source says where a plugin lives. Type discriminates the variant: "github"
// carries Repo, "url" carries URL.
type Source struct {
	Type string `json:"type"`
	Repo string `json:"repo,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Plugin is one marketplace catalog entry.
type Plugin struct {
	Name        string   `json:"name"`
	Source      Source   `json:"source"`
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version,omitempty"`
	Author      *Author  `json:"author,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Metadata carries marketplace-level bookkeeping.
type Metadata struct {
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// Marketplace is the full catalog document.
type Marketplace struct {
	Name     string    `json:"name"`
	Owner    *Author   `json:"owner,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Plugins  []Plugin  `json:"plugins"`
}

// Manifest mirrors a plugin repo's plugin.json.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description,omitempty"`
	Author      *Author  `json:"author,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	License     string   `json:"license,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// ValidateManifest checks raw plugin.json bytes against the manifest schema.
func ValidateManifest(raw []byte) (shapecheck.Violations, error) {
	return ManifestSchema().ValidateBytes(raw)
}

// ValidateMarketplace checks raw marketplace.json bytes against the
// marketplace schema.
func ValidateMarketplace(raw []byte) (shapecheck.Violations, error) {
	return MarketplaceSchema().ValidateBytes(raw)
}

// ParseManifest validates and decodes a plugin.json. Violations come back as
// the returned error (shapecheck.Violations implements error).
func ParseManifest(raw []byte) (*Manifest, error) {
	vs, err := ValidateManifest(raw)
	if err != nil {
		return nil, err
	}
	if len(vs) > 0 {
		return nil, vs
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &shapecheck.CandidateParseError{Err: err}
	}
	return &m, nil
}

// ParseMarketplace validates and decodes a marketplace.json.
func ParseMarketplace(raw []byte) (*Marketplace, error) {
	vs, err := ValidateMarketplace(raw)
	if err != nil {
		return nil, err
	}
	if len(vs) > 0 {
		return nil, vs
	}
	var m Marketplace
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &shapecheck.CandidateParseError{Err: err}
	}
	return &m, nil
}

// Merge overlays manifest-provided fields onto a catalog entry; the manifest
// wins for version, description, author, category, and tags.
func Merge(entry Plugin, m Manifest) Plugin {
	if m.Version != "" {
		entry.Version = m.Version
	}
	if m.Description != "" {
		entry.Description = m.Description
	}
	if m.Author != nil {
		a := *m.Author
		entry.Author = &a
	}
	if m.Category != "" {
		entry.Category = m.Category
	}
	if len(m.Tags) > 0 {
		entry.Tags = append([]string(nil), m.Tags...)
	}
	return entry
}

// BumpVersion increments the last segment of a dotted version string.
func BumpVersion(v string) (string, error) {
	parts := strings.Split(v, ".")
	last := parts[len(parts)-1]
	n, err := strconv.Atoi(last)
	if err != nil {
		return "", fmt.Errorf("catalog: version segment %q is not a number: %w", last, err)
	}
	parts[len(parts)-1] = strconv.Itoa(n + 1)
	return strings.Join(parts, "."), nil
}

// Refresh merges locally supplied manifests into catalog entries, keyed by
// the entry's github repo, and bumps the marketplace version only when plugin
// data actually changed. It reports whether anything changed.
func (m *Marketplace) Refresh(manifests map[string]Manifest) (bool, error) {
	changed := false
	for i := range m.Plugins {
		man, ok := manifests[m.Plugins[i].Source.Repo]
		if !ok {
			continue
		}
		merged := Merge(m.Plugins[i], man)
		if !reflect.DeepEqual(merged, m.Plugins[i]) {
			m.Plugins[i] = merged
			changed = true
		}
	}
	if !changed {
		return false, nil
	}
	current := "0.0.0"
	if m.Metadata != nil && m.Metadata.Version != "" {
		current = m.Metadata.Version
	}
	next, err := BumpVersion(current)
	if err != nil {
		return true, err
	}
	if m.Metadata == nil {
		m.Metadata = &Metadata{}
	}
	m.Metadata.Version = next
	return true, nil
}

// Encode renders the catalog as indented JSON with a trailing newline, the
// form marketplace files are committed in.
func (m *Marketplace) Encode() ([]byte, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
