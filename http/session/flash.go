package session

const (
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
)

// A Flash is a one-time message shown on the next page a visitor loads.
type Flash struct {
	Class string `json:"class"`
	Msg   string `json:"msg"`
}
