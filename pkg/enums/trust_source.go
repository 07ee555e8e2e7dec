package enums

// TrustSource identifies which credential strategy authenticated a request.
type TrustSource string

const (
	TrustSourceLocal    TrustSource = "local"
	TrustSourceExternal TrustSource = "external"
)

// String implements fmt.Stringer.
func (t TrustSource) String() string {
	return string(t)
}
