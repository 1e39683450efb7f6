package domain

// Account is a mail account record as submitted to the account store.
// The identity key is (Username, Domain); the store enforces its uniqueness.
type Account struct {
	Username string `json:"username"`
	Domain   string `json:"domain"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Key returns the account's identity key in username@domain form.
func (a Account) Key() string {
	return a.Username + "@" + a.Domain
}

// AccountRef identifies a created account without its credential.
type AccountRef struct {
	Username string `json:"username"`
	Domain   string `json:"domain"`
	Role     string `json:"role"`
}
