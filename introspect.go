package rgbim

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessTokenExpiry extracts the exp claim from a JWT access token without
// verifying the signature — the client holds no key and treats the token as
// opaque for every other purpose. Non-JWT tokens and tokens without exp yield
// the zero time.
func accessTokenExpiry(token string) time.Time {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
