package domain

// PrincipalKind tells how a request was authenticated.
type PrincipalKind string

const (
	// PrincipalAPIKey is a caller that presented a static API key.
	PrincipalAPIKey PrincipalKind = "api_key"
	// PrincipalBearer is a caller that presented a valid access token.
	PrincipalBearer PrincipalKind = "bearer"
)

// Principal is the authenticated identity attached to a request by the gate.
type Principal struct {
	Kind PrincipalKind
	// Subject is the token subject for bearer principals and empty for API keys.
	Subject string
	// Claims is set for bearer principals.
	Claims *Claims
}
