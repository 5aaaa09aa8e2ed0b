package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest_FieldsAreUnambiguous(t *testing.T) {
	assert.NotEqual(t,
		digest(treeDomainKey, "rules", []string{"ab", "c"}, nil),
		digest(treeDomainKey, "rules", []string{"a", "bc"}, nil),
	)
	assert.NotEqual(t,
		digest(treeDomainKey, "rules", []string{"a"}, []byte("b")),
		digest(treeDomainKey, "rules", []string{"a", "b"}, nil),
	)
	assert.NotEqual(t,
		digest(treeDomainKey, "rules", nil, nil),
		digest(itemDomainKey, "rules", nil, nil),
	)
	assert.Equal(t,
		digest(itemDomainKey, "weapons", []string{"w.yaml"}, []byte{1, 2}),
		digest(itemDomainKey, "weapons", []string{"w.yaml"}, []byte{1, 2}),
	)
	assert.NotEqual(t,
		digest(itemDomainKey, "rules", nil, []byte("a"), []byte("b")),
		digest(itemDomainKey, "rules", nil, []byte("ab")),
	)
	assert.Len(t, digest(treeDomainKey, "", nil, nil).String(), 64)
}
