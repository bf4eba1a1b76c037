package stores

import "gorm.io/gorm"

// Registry bundles the four stores so the application root can construct them
// once and hand them to the HTTP layer explicitly.
type Registry struct {
	Company  *Company
	Settings *Settings
	Draft    *Draft
	History  *History
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		Company:  NewCompany(db),
		Settings: NewSettings(db),
		Draft:    NewDraft(db),
		History:  NewHistory(db),
	}
}

// SubscribeAll registers one callback on every store.
func (r *Registry) SubscribeAll(fn func(Event)) {
	r.Company.Subscribe(fn)
	r.Settings.Subscribe(fn)
	r.Draft.Subscribe(fn)
	r.History.Subscribe(fn)
}
