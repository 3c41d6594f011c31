package models

// Option is a selectable {id, label} pair from a backend catalog.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// CatalogSnapshot holds the read-only reference data the form needs.
// It is fetched when the form opens and only ever replaced wholesale,
// never mutated in place.
type CatalogSnapshot struct {
	Accounts      []Option      `yaml:"accounts"`
	Types         []Option      `yaml:"types"`
	Goals         []Option      `yaml:"goals"`
	Debts         []Option      `yaml:"debts"`
	BudgetEntries []BudgetEntry `yaml:"budget_entries"`
	Tags          []string      `yaml:"tags"`
}

// FindOption returns the option with the given id, if present.
func FindOption(opts []Option, id string) (Option, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// TypeByID looks up a transaction type by id.
func (c *CatalogSnapshot) TypeByID(id string) (Option, bool) {
	return FindOption(c.Types, id)
}

// AccountByID looks up an account by id.
func (c *CatalogSnapshot) AccountByID(id string) (Option, bool) {
	return FindOption(c.Accounts, id)
}

// BudgetEntryByID looks up a budget entry by id.
func (c *CatalogSnapshot) BudgetEntryByID(id string) (BudgetEntry, bool) {
	for _, e := range c.BudgetEntries {
		if e.ID == id {
			return e, true
		}
	}
	return BudgetEntry{}, false
}
