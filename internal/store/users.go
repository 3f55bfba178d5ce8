package store

import (
	"log"

	"github.com/nakachan-ing/todo-cli/internal/model"
)

// Directory is the credential store: accounts keyed by username in one
// JSON document. It does not enforce username uniqueness.
type Directory struct {
	file *FlatFile
}

func NewDirectory(config model.Config, logger *log.Logger) *Directory {
	return &Directory{file: NewFlatFile(config.UsersPath(), logger)}
}

func (d *Directory) LoadAll() []model.Account {
	docs := d.file.Load()
	accounts := make([]model.Account, 0, len(docs))
	for _, doc := range docs {
		accounts = append(accounts, model.AccountFromDocument(doc))
	}
	return accounts
}

func (d *Directory) SaveAll(accounts []model.Account) error {
	docs := make([]model.Document, 0, len(accounts))
	for _, a := range accounts {
		docs = append(docs, a.ToDocument())
	}
	return d.file.Save(docs)
}

// FindByUsername returns the first account whose username matches exactly.
func FindByUsername(accounts []model.Account, username string) (model.Account, bool) {
	for _, a := range accounts {
		if a.Username == username {
			return a, true
		}
	}
	return model.Account{}, false
}
