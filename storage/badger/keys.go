package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/sokbolag/branschmatch/core"
)

// Key prefixes for different data types
const (
	vectorPrefix = "vecrec"
)

// makeVectorKey generates a composite key for a cached vector.
// Format: prefix:len(model):model:fingerprint. The model segment is
// length-prefixed so that one model name can never be a key prefix of
// another ("m" vs "m:x").
func makeVectorKey(model string, id core.ID) []byte {
	prefixBytes := makeModelPrefix(model)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeModelPrefix generates the key prefix covering all vectors of one model.
func makeModelPrefix(model string) []byte {
	return []byte(fmt.Sprintf("%s:%d:%s:", vectorPrefix, len(model), model))
}
