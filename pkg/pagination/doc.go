// Package pagination loads Pokémon page by page.
//
// A Controller owns the PageState (offset, page size, total ceiling) and
// turns each explicit trigger into one page request. The final page is
// clamped so that no request ever asks for zero or a negative number of
// records, and once it has been issued the controller reports itself
// exhausted. The Loader resolves one page: it fetches the summary references
// from the list endpoint, then fetches every detail concurrently and joins
// on all of them. A single failed detail fails the whole page.
//
// Example usage:
//
//	loader := pagination.NewLoader(apiClient, pagination.DefaultLoaderConfig())
//	ctrl, err := pagination.NewController(loader, pagination.DefaultConfig())
//	for !ctrl.Exhausted() {
//		page, err := ctrl.Advance(ctx)
//		...
//	}
package pagination
