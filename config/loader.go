package config

// Loader fills a target struct and can notify about source changes.
type Loader interface {
	Load(target any) error
	// Watch invokes callback whenever the underlying source changes.
	Watch(callback func()) error
}
