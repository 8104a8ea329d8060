// Package common contains shared constants and sentinel errors used across
// MoneyTalk client components.
package common

// Keys under which the local session store persists credentials. The two keys
// are always written and cleared together.
const (
	SessionTokenKey = "token"
	SessionUserKey  = "user"
)
