//go:build !windows

package automation

// NewBridge returns the automation bridge for this platform. COM automation
// only exists on Windows, so the bridge reports unavailable and refuses
// every session.
func NewBridge() Bridge { return unavailableBridge{} }

type unavailableBridge struct{}

func (unavailableBridge) Available() bool { return false }

func (unavailableBridge) Word() (WordSession, error) { return nil, ErrUnavailable }

func (unavailableBridge) Excel() (ExcelSession, error) { return nil, ErrUnavailable }

func (unavailableBridge) PowerPoint() (PowerPointSession, error) { return nil, ErrUnavailable }
