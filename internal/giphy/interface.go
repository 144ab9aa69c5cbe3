package giphy

// Client fetches reaction GIFs for challenge banter.
type Client interface {
	DuelGif() (string, error)
}
