package cache

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Key is a 32-byte BLAKE3 digest identifying one cache entry.
type Key [32]byte

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

type domainKey [32]byte

// Domain separation keys, ASCII zero-padded to 32 bytes. Changing them
// invalidates every key stored in a remote tier.
var (
	treeDomainKey = domainKey{
		'r', 'u', 'l', 'e', 'f', 'o', 'r', 'g', 'e', '.', 'c', 'a', 'c', 'h', 'e', '.',
		't', 'r', 'e', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	itemDomainKey = domainKey{
		'r', 'u', 'l', 'e', 'f', 'o', 'r', 'g', 'e', '.', 'c', 'a', 'c', 'h', 'e', '.',
		'i', 't', 'e', 'm', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	fileDomainKey = domainKey{
		'r', 'u', 'l', 'e', 'f', 'o', 'r', 'g', 'e', '.', 'c', 'a', 'c', 'h', 'e', '.',
		'f', 'i', 'l', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// digest hashes the category, the ordered file identities and the payloads.
// Every part is length-prefixed so no two inputs share an encoding.
func digest(key domainKey, category string, files []string, payloads ...[]byte) Key {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("cache: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	writeField(hasher, []byte(category))
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(files)))
	_, _ = hasher.Write(n[:])
	for _, f := range files {
		writeField(hasher, []byte(f))
	}
	binary.BigEndian.PutUint64(n[:], uint64(len(payloads)))
	_, _ = hasher.Write(n[:])
	for _, p := range payloads {
		writeField(hasher, p)
	}

	var out Key
	copy(out[:], hasher.Sum(nil))
	return out
}

func writeField(h *blake3.Hasher, b []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	_, _ = h.Write(n[:])
	_, _ = h.Write(b)
}

// FileIdentity names a definition file by path and content, so an edited
// file never hits entries cached for its previous content.
func FileIdentity(name string, data []byte) string {
	hasher, err := blake3.NewKeyed(fileDomainKey[:])
	if err != nil {
		panic("cache: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(data)
	return name + "@" + hex.EncodeToString(hasher.Sum(nil)[:16])
}
