package shared

// ClientAuth is the persisted identity: the token plus the last-known user
// record from the who-am-i probe. Stored as auth.json in the home dir.
type ClientAuth struct {
	Token string `json:"token"`
	Host  string `json:"host,omitempty"`
	User  User   `json:"user"`
}
