package feed

// ScopeKind selects which posts a listing contains.
type ScopeKind string

const (
	ScopeAll       ScopeKind = "all"
	ScopeGroup     ScopeKind = "group"
	ScopeAuthor    ScopeKind = "author"
	ScopeFollowing ScopeKind = "following"
)

// Scope is the filter applied before pagination. Key is the group slug, the
// author username or the follower's user id depending on Kind.
type Scope struct {
	Kind ScopeKind
	Key  string
}

func All() Scope { return Scope{Kind: ScopeAll} }

func Group(slug string) Scope { return Scope{Kind: ScopeGroup, Key: slug} }

func Author(username string) Scope { return Scope{Kind: ScopeAuthor, Key: username} }

func Following(userID string) Scope { return Scope{Kind: ScopeFollowing, Key: userID} }

func (s Scope) String() string {
	if s.Key == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + ":" + s.Key
}
