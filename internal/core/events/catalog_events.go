package events

const (
	EventCatalogReloaded     = "catalog.reloaded"
	EventCatalogReloadFailed = "catalog.reload_failed"
)

// CatalogReloaded is published after a new catalog snapshot replaced the previous one.
type CatalogReloaded struct {
	BaseEvent
	Countries int
	Providers int
	Added     []string
	Removed   []string
}

func NewCatalogReloaded(countries, providers int, added, removed []string) CatalogReloaded {
	return CatalogReloaded{
		BaseEvent: NewBaseEvent(EventCatalogReloaded, map[string]interface{}{
			"countries":         countries,
			"providers":         providers,
			"providers_added":   added,
			"providers_removed": removed,
		}),
		Countries: countries,
		Providers: providers,
		Added:     added,
		Removed:   removed,
	}
}

type CatalogReloadFailed struct {
	BaseEvent
	Err         error
	HasPrevious bool
}

func NewCatalogReloadFailed(err error, hasPrevious bool) CatalogReloadFailed {
	return CatalogReloadFailed{
		BaseEvent: NewBaseEvent(EventCatalogReloadFailed, map[string]interface{}{
			"error":        err.Error(),
			"has_previous": hasPrevious,
		}),
		Err:         err,
		HasPrevious: hasPrevious,
	}
}
