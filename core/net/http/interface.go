package http

// Clienter is implemented by Client; the request wrapper depends on it.
type Clienter interface {
	Request(method, url string, body any, opts ...func(*RequestOption)) (*Response, error)
}
