package domain

// AccessScope captures who is asking and how far they may see. Repositories
// receive it instead of scattering role checks: a non-admin scope restricts
// list queries to the caller's own records, an admin scope does not.
type AccessScope struct {
	UserID int64
	Admin  bool
}

// ScopeFor builds the access scope for an authenticated user
func ScopeFor(u *User) AccessScope {
	return AccessScope{UserID: u.ID, Admin: u.IsAdmin()}
}

// CanRead reports whether the scope may read a record owned by ownerID.
// Admins read across users; everyone reads their own records.
func (s AccessScope) CanRead(ownerID int64) bool {
	return s.Admin || s.UserID == ownerID
}

// Owns reports whether the scope belongs to the record owner. Mutations that
// are owner-gated (goal and expense updates) use this, never CanRead.
func (s AccessScope) Owns(ownerID int64) bool {
	return s.UserID == ownerID
}
