package common

const (
	// PublicPageSize is the archive page length on the public site.
	PublicPageSize = 5
	// AdminPageSize is the back-office table page length.
	AdminPageSize = 10
	// FeaturedLimit caps the featured strip on the home page.
	FeaturedLimit = 6
	// MaxRequestBody limits JSON request bodies.
	MaxRequestBody = 1 << 20
	// MaxLogoBytes limits uploaded logo size.
	MaxLogoBytes = 2 << 20
)
