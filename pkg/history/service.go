package history

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

// Service persists recently played video ids between runs so a restart does
// not replay the videos the duplicate guard already suppressed.
type Service interface {
	Initialize() error
	Videos() []string
	AddVideo(id string) error
	Reset() error
}
