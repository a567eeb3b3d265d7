package mock

import "github.com/dhalloran/adorn"

var _ adorn.Injector = (*Injector)(nil)

// Injector is a mock implementation of adorn.Injector.
type Injector struct {
	InjectFn func(html string, slots []adorn.Slot) (*adorn.InjectResult, error)
}

func (i *Injector) Inject(html string, slots []adorn.Slot) (*adorn.InjectResult, error) {
	return i.InjectFn(html, slots)
}
