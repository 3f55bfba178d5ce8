package model

import "time"

// Account is a signed-up user. Credential is stored and compared verbatim;
// hashing it is the caller's job.
type Account struct {
	Username   string `json:"username"`
	Credential string `json:"credential"`
}

type rawAccount struct {
	Username   *string `mapstructure:"username"`
	Credential *string `mapstructure:"credential"`
	Password   *string `mapstructure:"password"` // legacy key
}

func (a Account) ToDocument() Document {
	return Document{
		"username":   a.Username,
		"credential": a.Credential,
	}
}

func AccountFromDocument(doc Document) Account {
	var raw rawAccount
	decodeLenient(doc, &raw)

	credential := valueOr(raw.Credential, "")
	if raw.Credential == nil {
		credential = valueOr(raw.Password, "")
	}
	return Account{
		Username:   valueOr(raw.Username, ""),
		Credential: credential,
	}
}

// Session records who is logged in on this machine.
type Session struct {
	Username   string `yaml:"username"`
	Pid        int    `yaml:"pid"`
	LoggedInAt string `yaml:"logged_in_at"`
}

func NewSession(username string, pid int, t time.Time) Session {
	return Session{Username: username, Pid: pid, LoggedInAt: Timestamp(t)}
}
