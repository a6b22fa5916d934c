package domain

// UserPatch is a partial update of a user. Only set fields change.
type UserPatch struct {
	Username Optional[string] `json:"username"`
	Email    Optional[string] `json:"email"`
	Bio      Optional[string] `json:"bio"`
	Image    Optional[string] `json:"image"`
	Password Optional[string] `json:"password"`
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return !p.Username.Set && !p.Email.Set && !p.Bio.Set && !p.Image.Set && !p.Password.Set
}

// Apply copies the set profile fields onto u, normalizing username and email.
// The password is not touched; it needs a hasher, see User.SetPassword.
func (p UserPatch) Apply(u *User) {
	if v, ok := p.Username.Get(); ok {
		u.Username = NormalizeUsername(v)
	}
	if v, ok := p.Email.Get(); ok {
		u.Email = NormalizeEmail(v)
	}
	if v, ok := p.Bio.Get(); ok {
		u.Bio = v
	}
	if v, ok := p.Image.Get(); ok {
		u.Image = v
	}
}
