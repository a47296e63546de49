//go:build headless

package frontend

// NewWindow returns ErrUnavailable, binaries built with the headless tag do
// not contain the window frontend.
func NewWindow(int) (Frontend, error) {
	return nil, ErrUnavailable
}
