package domain

// Kind is implemented by the zero-size marker types that name an entity kind.
// The marker is the type parameter of ID, so IDs of different kinds are
// different types.
//
//	var userTag = domain.MustTag("user")
//
//	type User struct{}
//
//	func (User) Tag() domain.Tag { return userTag }
//
// Tag must return the same value for every call.
type Kind interface {
	Tag() Tag
}

// Untagged is the kind with tag 0.
type Untagged struct{}

// Tag returns 0.
func (Untagged) Tag() Tag { return 0 }

// KindInfo describes a kind registered at runtime.
type KindInfo struct {
	Name string
	Tag  Tag
}

func tagOf[K Kind]() Tag {
	var k K
	return k.Tag()
}
