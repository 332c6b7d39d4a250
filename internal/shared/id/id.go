// Package id generates the IDs synthesized into spec metadata.
//
// IDs are built on ULIDs so they sort by creation time. Spec metadata IDs
// follow the "<identifier>-<unixMillis>-<random>" layout that generated
// component descriptions use; the random part is taken from ULID entropy.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SpecID identifies a generated Spec node
type SpecID string

// randomLength is the number of entropy characters kept in a SpecID
const randomLength = 9

// Generator generates ULIDs and derived IDs
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator reading randomness from
// entropy, which makes generated IDs reproducible for a fixed reader.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID stamped with t
func (g *Generator) Generate(t time.Time) ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), g.entropy)
}

// SpecID builds a metadata ID of the form "<identifier>-<unixMillis>-<random>"
func (g *Generator) SpecID(identifier string, at time.Time) SpecID {
	raw := g.Generate(at).String()
	// The first 10 characters of a ULID encode the timestamp.
	random := strings.ToLower(raw[len(raw)-randomLength:])
	return SpecID(fmt.Sprintf("%s-%d-%s", identifier, at.UnixMilli(), random))
}

func (id SpecID) String() string { return string(id) }
