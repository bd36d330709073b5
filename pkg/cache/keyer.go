package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
)

// Keyer builds cache keys.
type Keyer interface {
	// TreeKey identifies a tree by its category and insertion order.
	TreeKey(category string, values []string) string
	// ArtifactKey identifies one rendering of a tree.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Radius float64 `json:"radius"`
	Gap    float64 `json:"gap,omitempty"`
	Margin float64 `json:"margin,omitempty"`
	Order  string  `json:"order,omitempty"`
	Crop   bool    `json:"crop,omitempty"`

	Highlight []string `json:"highlight,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TreeKey returns "tree:<hex>". Every value is length-prefixed, so the same
// values in another order, or split differently, give another key.
func (DefaultKeyer) TreeKey(category string, values []string) string {
	h := sha256.New()
	writeField(h, category)
	for _, v := range values {
		writeField(h, v)
	}
	return "tree:" + hex.EncodeToString(h.Sum(nil))
}

// ArtifactKey returns "artifact:<hex>" over the tree hash and opts as JSON.
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	data, _ := json.Marshal(opts)
	h := sha256.New()
	writeField(h, treeHash)
	h.Write(data)
	return "artifact:" + hex.EncodeToString(h.Sum(nil))
}

func writeField(w io.Writer, s string) {
	w.Write(binary.AppendUvarint(nil, uint64(len(s))))
	io.WriteString(w, s)
}

// Hash returns the 64-character hex SHA-256 of data. Tree hashes and file
// cache paths are built from it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
