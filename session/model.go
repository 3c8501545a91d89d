package session

// UserRecord is the persisted shape of the client-held identity.
//
// UserRecord instances are written only by the Manager and only as a complete
// record; there are no partial updates at the storage layer.
type UserRecord struct {
	ID    string
	Email string
	Name  string
	Plan  string
}

// TokenRecord is the persisted shape of the credential pair. Both fields are
// always present together: the Manager never persists half a pair.
type TokenRecord struct {
	AccessToken  string
	RefreshToken string
}

// Slots names the two durable slots for one manager instance.
type Slots struct {
	User   string
	Tokens string
}

// DefaultSlots derives slot names from a prefix, "auth" yielding the
// "auth:user" and "auth:tokens" slots.
func DefaultSlots(prefix string) Slots {
	if prefix == "" {
		prefix = "auth"
	}
	return Slots{
		User:   prefix + ":user",
		Tokens: prefix + ":tokens",
	}
}
