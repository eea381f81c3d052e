package handlers

import "context"

// PageCache fronts the unauthenticated public read path. Satisfied by
// *cache.Cache.
type PageCache interface {
	GetPublicPage(ctx context.Context, username, slug string, out any) bool
	SetPublicPage(ctx context.Context, username, slug string, payload any)
	InvalidateHost(ctx context.Context, username string)
}
