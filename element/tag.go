package element

import (
	"strings"

	"github.com/google/uuid"
)

const uniquePrefix = "unique:"

// Tag identifies an element inside a display. Two tags made by [NewTag] with
// the same id are equal; a tag made by [NewUniqueTag] equals only itself.
//
// Tag is comparable and can be used as a map key.
type Tag struct {
	id     string
	unique bool
}

func NewTag(id string) Tag {
	return Tag{id: id}
}

func NewUniqueTag() Tag {
	return Tag{id: uuid.NewString(), unique: true}
}

// ID returns the id given to [NewTag], or the generated id of a unique tag.
func (t Tag) ID() string {
	return t.id
}

// Unique reports whether the tag was made by [NewUniqueTag].
func (t Tag) Unique() bool {
	return t.unique
}

func (t Tag) String() string {
	if t.unique {
		return uniquePrefix + t.id
	}
	return t.id
}

// ParseTag is the inverse of [Tag.String].
func ParseTag(s string) Tag {
	if id, ok := strings.CutPrefix(s, uniquePrefix); ok {
		return Tag{id: id, unique: true}
	}
	return Tag{id: s}
}
