package types

// ------------------------------
// Request Types
// ------------------------------

// Reserved parameter keys. They are consumed while building the request and
// never reach the query string.
const (
	ParamID     = "id"
	ParamUserID = "userId"
	ParamToken  = "token"
)

// Params is the per-call parameter bag of a resource request. Keys other
// than the reserved ones are sent verbatim as query parameters, e.g.
// start_date, end_date, detail.
type Params map[string]string

// Clone returns a copy of p so callers' maps are never mutated.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Take removes key from p and returns its value. A present but empty value
// counts as absent.
func (p Params) Take(key string) (string, bool) {
	v, ok := p[key]
	delete(p, key)
	return v, ok && v != ""
}
