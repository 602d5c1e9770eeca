package help

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

const CategoryEmergency = "emergency"

//go:embed contacts.yaml
var rawContacts []byte

type Contact struct {
	Name        string `yaml:"name" json:"name"`
	Contact     string `yaml:"contact" json:"contact"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"`
	Hours       string `yaml:"hours" json:"hours"`
}

var (
	contactsOnce sync.Once
	contacts     []Contact
	contactsErr  error
)

func load() ([]Contact, error) {
	contactsOnce.Do(func() {
		var f struct {
			Contacts []Contact `yaml:"contacts"`
		}
		if err := yaml.Unmarshal(rawContacts, &f); err != nil {
			contactsErr = fmt.Errorf("decode help contacts: %w", err)
			return
		}
		contacts = f.Contacts
	})
	return contacts, contactsErr
}

// Contacts returns all contacts, or only those in category when it is non-empty.
func Contacts(category string) ([]Contact, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	out := make([]Contact, 0, len(all))
	for _, c := range all {
		if category == "" || c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

// Split separates emergency contacts from the rest.
func Split() (emergency []Contact, other []Contact, err error) {
	all, err := load()
	if err != nil {
		return nil, nil, err
	}
	for _, c := range all {
		if c.Category == CategoryEmergency {
			emergency = append(emergency, c)
		} else {
			other = append(other, c)
		}
	}
	return emergency, other, nil
}
