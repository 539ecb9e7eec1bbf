package types

// MessageEnvelope is the body shape the auth endpoints share with the original web client.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    any    `json:"user,omitempty"`
}

// ErrorEnvelope carries the public message at the top level so `res.data.message` keeps working.
type ErrorEnvelope struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}
