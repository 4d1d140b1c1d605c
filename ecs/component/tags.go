package component

// Tag is one capability flag. The set is closed: collision rules are keyed
// on these bits instead of free-form strings, so a typo cannot silently
// create an unmatched category.
type Tag uint32

const (
	TagPlayer Tag = 1 << iota
	TagEnemy
	TagPlatform
	TagExit
	TagProjectile
	TagCapture
)

// Tags is the capability set carried by an entity.
type Tags uint32

func NewTags(tags ...Tag) Tags {
	var t Tags
	for _, tag := range tags {
		t |= Tags(tag)
	}
	return t
}

func (t Tags) Has(tag Tag) bool {
	return t&Tags(tag) != 0
}

var TagsComponent = NewComponent[Tags]()
