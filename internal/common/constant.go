package common

// Cookie names under which the token pair is delivered to browsers.
const (
	AccessTokenCookieName  = "access-token"
	RefreshTokenCookieName = "refresh-token"
)
