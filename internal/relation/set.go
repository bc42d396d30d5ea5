package relation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// 分隔符与原始数据兼容：一列文本存放逗号连接的用户 ID 集合。
const separator = ","

// Set is an unordered collection of user identifiers backing the
// denormalized followers/following columns. Mutating a Set changes
// nothing in the database by itself: the owner must Encode the set and
// hand the new text to the repository.
type Set map[uint]struct{}

// NewSet builds a set from the given ids.
func NewSet(ids ...uint) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Decode parses the stored text form. Empty or blank text yields an
// empty set; a non-numeric token means the column is corrupt.
func Decode(text string) (Set, error) {
	s := Set{}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return s, nil
	}
	for _, token := range strings.Split(trimmed, separator) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("relation: invalid id %q: %w", token, err)
		}
		s[uint(id)] = struct{}{}
	}
	return s, nil
}

// Encode renders the set as sorted, comma-joined text. Sorting keeps the
// encoding deterministic so equal sets always produce equal columns.
func (s Set) Encode() string {
	if len(s) == 0 {
		return ""
	}
	ids := s.IDs()
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, separator)
}

// Add inserts an id; adding an existing id is a no-op.
func (s Set) Add(id uint) {
	s[id] = struct{}{}
}

// Remove deletes an id; removing a missing id is a no-op.
func (s Set) Remove(id uint) {
	delete(s, id)
}

// Has reports whether the id is present.
func (s Set) Has(id uint) bool {
	_, ok := s[id]
	return ok
}

// Len returns the set cardinality.
func (s Set) Len() int {
	return len(s)
}

// IDs returns the members in ascending order.
func (s Set) IDs() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
