package domain

// Email is a single mailbox record relayed from the backing store. The
// payload is opaque to the core; fields are passed through as received and
// order is preserved as returned by the store.
type Email struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body,omitempty"`
	Date    string `json:"date,omitempty"`
}

// OutboundMessage is a submission relayed to the backing store's outbound
// queue. The store owns delivery; the gateway performs a single hop.
type OutboundMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
